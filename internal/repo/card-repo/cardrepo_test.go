package cardrepo

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cardColumnNames = []string{
	"id", "card_id", "card_type", "country_code", "country_name", "price", "value", "available_count",
	"is_available", "is_deleted", "reserved_by", "reserved_at", "created_at", "updated_at", "deleted_at",
}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB), mockDB
}

func cardRow(c domain.Card) []any {
	return []any{
		c.ID, c.CardID, c.CardType, c.CountryCode, c.CountryName, c.Price, c.Value, c.AvailableCount,
		c.IsAvailable, c.IsDeleted, c.ReservedBy, c.ReservedAt, c.CreatedAt, c.UpdatedAt, c.DeletedAt,
	}
}

func sampleCard(now time.Time) domain.Card {
	return domain.Card{
		ID:             1,
		CardID:         "c-1",
		CardType:       "VISA",
		CountryCode:    "US",
		CountryName:    "United States",
		Price:          decimal.NewFromInt(20),
		Value:          decimal.NewFromInt(25),
		AvailableCount: 2,
		IsAvailable:    true,
		ReservedBy:     (*int64)(nil),
		ReservedAt:     (*time.Time)(nil),
		CreatedAt:      now,
		UpdatedAt:      now,
		DeletedAt:      (*time.Time)(nil),
	}
}

func TestRepository_GetCard(t *testing.T) {
	repo, mock := NewMock(t)
	card := sampleCard(time.Now())

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Card
	}{
		{
			name: "Card exists",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryGetCard)).
					WithArgs("c-1").
					WillReturnRows(pgxmock.NewRows(cardColumnNames).AddRow(cardRow(card)...))
			},
			result: &card,
		},
		{
			name: "Card does not exist",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryGetCard)).
					WithArgs("c-1").
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryGetCard)).
					WithArgs("c-1").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			result, err := repo.GetCard(context.Background(), "c-1")

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_ListAvailable(t *testing.T) {
	repo, mock := NewMock(t)
	card := sampleCard(time.Now())
	filter := domain.CardFilter{CountryCode: "US"}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    []domain.Card
	}{
		{
			name: "Returns available cards",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryListAvailable)).
					WithArgs("US", "").
					WillReturnRows(pgxmock.NewRows(cardColumnNames).AddRow(cardRow(card)...))
			},
			result: []domain.Card{card},
		},
		{
			name: "Empty inventory",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryListAvailable)).
					WithArgs("US", "").
					WillReturnRows(pgxmock.NewRows(cardColumnNames))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryListAvailable)).
					WithArgs("US", "").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			result, err := repo.ListAvailable(context.Background(), filter)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_ListGroups(t *testing.T) {
	repo, mock := NewMock(t)
	price := decimal.NewFromInt(20)

	mock.ExpectQuery(regexp.QuoteMeta(queryListGroups)).
		WithArgs("", "").
		WillReturnRows(pgxmock.NewRows([]string{"country_code", "card_type", "price", "country_name", "count", "card_ids"}).
			AddRow("US", "VISA", price, "United States", 3, []string{"c-1", "c-2"}).
			AddRow("DE", "MASTERCARD", price, "Germany", 1, []string{"c-3"}))

	groups, err := repo.ListGroups(context.Background(), domain.CardFilter{})

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, domain.GroupKey{CountryCode: "US", CardType: "VISA", Price: price}, groups[0].GroupKey)
	assert.Equal(t, 3, groups[0].Count)
	assert.Equal(t, []string{"c-1", "c-2"}, groups[0].CardIDs)
	assert.Equal(t, "Germany", groups[1].CountryName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ReserveOne(t *testing.T) {
	repo, mock := NewMock(t)
	key := domain.GroupKey{CountryCode: "US", CardType: "VISA", Price: decimal.NewFromInt(20)}
	buyer := int64(555)
	now := time.Now()
	reserved := sampleCard(now)
	reserved.AvailableCount = 1
	reserved.ReservedBy = &buyer
	reserved.ReservedAt = &now

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Card
	}{
		{
			name: "Unit reserved",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryReserveOne)).
					WithArgs("US", "VISA", key.Price, buyer).
					WillReturnRows(pgxmock.NewRows(cardColumnNames).AddRow(cardRow(reserved)...))
			},
			result: &reserved,
		},
		{
			name: "Group sold out",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryReserveOne)).
					WithArgs("US", "VISA", key.Price, buyer).
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectQuery(regexp.QuoteMeta(queryGroupInStock)).
					WithArgs("US", "VISA", key.Price).
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
			},
		},
		{
			name: "Concurrent buyer took the picked row, stock remains",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryReserveOne)).
					WithArgs("US", "VISA", key.Price, buyer).
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectQuery(regexp.QuoteMeta(queryGroupInStock)).
					WithArgs("US", "VISA", key.Price).
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectQuery(regexp.QuoteMeta(queryReserveOne)).
					WithArgs("US", "VISA", key.Price, buyer).
					WillReturnRows(pgxmock.NewRows(cardColumnNames).AddRow(cardRow(reserved)...))
			},
			result: &reserved,
		},
		{
			name: "Stock check fails",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryReserveOne)).
					WithArgs("US", "VISA", key.Price, buyer).
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectQuery(regexp.QuoteMeta(queryGroupInStock)).
					WithArgs("US", "VISA", key.Price).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryReserveOne)).
					WithArgs("US", "VISA", key.Price, buyer).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			result, err := repo.ReserveOne(context.Background(), key, buyer)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_ReserveOne_GivesUpAfterRepeatedRaces(t *testing.T) {
	repo, mock := NewMock(t)
	key := domain.GroupKey{CountryCode: "US", CardType: "VISA", Price: decimal.NewFromInt(20)}

	for i := 0; i < reserveAttempts; i++ {
		mock.ExpectQuery(regexp.QuoteMeta(queryReserveOne)).
			WithArgs("US", "VISA", key.Price, int64(555)).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectQuery(regexp.QuoteMeta(queryGroupInStock)).
			WithArgs("US", "VISA", key.Price).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	}

	result, err := repo.ReserveOne(context.Background(), key, 555)

	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Locked rows are waited for, never skipped.
func TestQueries_ReservationWaitsForLockedRows(t *testing.T) {
	assert.NotContains(t, queryReserveOne, "SKIP LOCKED")
	assert.Contains(t, queryReserveOne, "FOR UPDATE")
	assert.Equal(t, 2, strings.Count(queryReserveOne, "available_count > 0 AND NOT is_deleted"))
	assert.Contains(t, queryRelease, "is_available = NOT is_deleted")
}

func TestRepository_BulkAdd(t *testing.T) {
	repo, mock := NewMock(t)
	spec := domain.CardSpec{
		CardType:    "VISA",
		CountryCode: "US",
		CountryName: "United States",
		Price:       decimal.NewFromInt(20),
		Value:       decimal.NewFromInt(25),
	}
	card := sampleCard(time.Now())
	card.AvailableCount = 7

	mock.ExpectQuery(regexp.QuoteMeta(queryBulkAdd)).
		WithArgs(pgxmock.AnyArg(), "VISA", "US", "United States", spec.Price, spec.Value, 5).
		WillReturnRows(pgxmock.NewRows(cardColumnNames).AddRow(cardRow(card)...))

	result, err := repo.BulkAdd(context.Background(), spec, 5)

	require.NoError(t, err)
	assert.Equal(t, 7, result.AvailableCount)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(regexp.QuoteMeta(queryBulkAdd)).
		WithArgs(pgxmock.AnyArg(), "VISA", "US", "United States", spec.Price, spec.Value, 5).
		WillReturnError(errors.New("database error"))

	result, err = repo.BulkAdd(context.Background(), spec, 5)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestRepository_Mutations(t *testing.T) {
	repo, mock := NewMock(t)
	key := domain.GroupKey{CountryCode: "US", CardType: "VISA", Price: decimal.NewFromInt(20)}

	tests := []struct {
		name      string
		mockSetup func()
		call      func() (int64, error)
		expected  int64
		expectErr bool
	}{
		{
			name: "Release returns unit",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(queryRelease)).
					WithArgs("c-1").
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			call:     func() (int64, error) { ok, err := repo.Release(context.Background(), "c-1"); return boolCount(ok), err },
			expected: 1,
		},
		{
			name: "Soft delete of already deleted card",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(querySoftDelete)).
					WithArgs("c-1").
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			call: func() (int64, error) { ok, err := repo.SoftDelete(context.Background(), "c-1"); return boolCount(ok), err },
		},
		{
			name: "Soft delete group",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(querySoftDeleteGroup)).
					WithArgs("US", "VISA", key.Price).
					WillReturnResult(pgxmock.NewResult("UPDATE", 3))
			},
			call:     func() (int64, error) { return repo.SoftDeleteGroup(context.Background(), key) },
			expected: 3,
		},
		{
			name: "Restore",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(queryRestore)).
					WithArgs("c-1").
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			call:     func() (int64, error) { ok, err := repo.Restore(context.Background(), "c-1"); return boolCount(ok), err },
			expected: 1,
		},
		{
			name: "Restore clashes with live record",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(queryRestore)).
					WithArgs("c-1").
					WillReturnError(&pgconn.PgError{Code: "23505"})
			},
			call:      func() (int64, error) { ok, err := repo.Restore(context.Background(), "c-1"); return boolCount(ok), err },
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			result, err := tt.call()

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func boolCount(ok bool) int64 {
	if ok {
		return 1
	}
	return 0
}
