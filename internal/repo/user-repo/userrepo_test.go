package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"user_id", "username", "first_name", "last_name", "balance", "created_at", "is_active"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB), mockDB
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	balance := decimal.RequireFromString("42.50")

	tests := []struct {
		name      string
		userID    int64
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name:   "User exists",
			userID: 100,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryFindByID)).
					WithArgs(int64(100)).
					WillReturnRows(pgxmock.NewRows(userColumns).AddRow(int64(100), "alice", "Alice", "", balance, now, true))
			},
			result: &domain.User{UserID: 100, Username: "alice", FirstName: "Alice", Balance: balance, CreatedAt: now, IsActive: true},
		},
		{
			name:   "User not found",
			userID: 101,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryFindByID)).
					WithArgs(int64(101)).
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name:   "Database error",
			userID: 102,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryFindByID)).
					WithArgs(int64(102)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			result, err := repo.FindByID(context.Background(), tt.userID)

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

func TestRepository_Upsert(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	balance := decimal.RequireFromString("5.00")
	user := &domain.User{UserID: 100, Username: "alice", FirstName: "Alice", LastName: "Smith"}
	columns := append(append([]string{}, userColumns...), "created")

	tests := []struct {
		name            string
		mockSetup       func()
		expectErr       bool
		expectedCreated bool
	}{
		{
			name: "New user",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryUpsert)).
					WithArgs(int64(100), "alice", "Alice", "Smith").
					WillReturnRows(pgxmock.NewRows(columns).AddRow(int64(100), "alice", "Alice", "Smith", balance, now, true, true))
			},
			expectedCreated: true,
		},
		{
			name: "Returning user keeps balance",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryUpsert)).
					WithArgs(int64(100), "alice", "Alice", "Smith").
					WillReturnRows(pgxmock.NewRows(columns).AddRow(int64(100), "alice", "Alice", "Smith", balance, now, true, false))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryUpsert)).
					WithArgs(int64(100), "alice", "Alice", "Smith").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			saved, created, err := repo.Upsert(context.Background(), user)

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, saved)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedCreated, created)
				assert.Equal(t, balance, saved.Balance)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Count(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(queryCount)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(12)))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
}
