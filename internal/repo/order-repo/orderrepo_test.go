package orderrepo

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

var orderColumnNames = []string{
	"id", "order_id", "user_id", "card_id", "country_code", "card_type", "amount", "status",
	"created_at", "updated_at", "completed_at", "cancelled_at",
}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB), mockDB
}

func orderRow(o domain.Order) []any {
	return []any{
		o.ID, o.OrderID, o.UserID, o.CardID, o.CountryCode, o.CardType, o.Amount, o.Status,
		o.CreatedAt, o.UpdatedAt, o.CompletedAt, o.CancelledAt,
	}
}

func sampleOrder(now time.Time) domain.Order {
	return domain.Order{
		ID:          1,
		OrderID:     "o-1",
		UserID:      100,
		CardID:      "c-1",
		CountryCode: "US",
		CardType:    "VISA",
		Amount:      decimal.NewFromInt(20),
		Status:      domain.OrderPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		CompletedAt: (*time.Time)(nil),
		CancelledAt: (*time.Time)(nil),
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	order := sampleOrder(time.Now())

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Order saved",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryCreate)).
					WithArgs("o-1", int64(100), "c-1", "US", "VISA", order.Amount).
					WillReturnRows(pgxmock.NewRows(orderColumnNames).AddRow(orderRow(order)...))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryCreate)).
					WithArgs("o-1", int64(100), "c-1", "US", "VISA", order.Amount).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			saved, err := repo.Create(context.Background(), &order)

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, saved)
			} else {
				require.NoError(t, err)
				assert.Equal(t, &order, saved)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByOrderID(t *testing.T) {
	repo, mock := NewMock(t)
	order := sampleOrder(time.Now())

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Order
	}{
		{
			name: "Order exists",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryFindByOrderID)).
					WithArgs("o-1").
					WillReturnRows(pgxmock.NewRows(orderColumnNames).AddRow(orderRow(order)...))
			},
			result: &order,
		},
		{
			name: "Order does not exist",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryFindByOrderID)).
					WithArgs("o-1").
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryFindByOrderID)).
					WithArgs("o-1").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			result, err := repo.FindByOrderID(context.Background(), "o-1")

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

func TestRepository_Lists(t *testing.T) {
	repo, mock := NewMock(t)
	order := sampleOrder(time.Now())

	mock.ExpectQuery(regexp.QuoteMeta(queryFindByStatus)).
		WithArgs(domain.OrderPending, 10).
		WillReturnRows(pgxmock.NewRows(orderColumnNames).AddRow(orderRow(order)...))

	pending, err := repo.FindByStatus(context.Background(), domain.OrderPending, 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.Order{order}, pending)

	mock.ExpectQuery(regexp.QuoteMeta(queryFindByUserID)).
		WithArgs(int64(100), 20).
		WillReturnRows(pgxmock.NewRows(orderColumnNames))

	mine, err := repo.FindByUserID(context.Background(), 100, 20)
	require.NoError(t, err)
	assert.Empty(t, mine)

	mock.ExpectQuery(regexp.QuoteMeta(queryFindByUserID)).
		WithArgs(int64(100), 20).
		WillReturnError(errors.New("database error"))

	_, err = repo.FindByUserID(context.Background(), 100, 20)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Transition(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	completed := sampleOrder(now)
	completed.Status = domain.OrderCompleted
	completed.CompletedAt = &now
	cancelled := sampleOrder(now)
	cancelled.Status = domain.OrderCancelled
	cancelled.CancelledAt = &now

	tests := []struct {
		name      string
		status    domain.OrderStatus
		mockSetup func()
		expectErr bool
		result    *domain.Order
	}{
		{
			name:   "Complete pending order",
			status: domain.OrderCompleted,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryComplete)).
					WithArgs("o-1").
					WillReturnRows(pgxmock.NewRows(orderColumnNames).AddRow(orderRow(completed)...))
			},
			result: &completed,
		},
		{
			name:   "Cancel pending order",
			status: domain.OrderCancelled,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryCancel)).
					WithArgs("o-1").
					WillReturnRows(pgxmock.NewRows(orderColumnNames).AddRow(orderRow(cancelled)...))
			},
			result: &cancelled,
		},
		{
			name:   "Order already terminal",
			status: domain.OrderCompleted,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryComplete)).
					WithArgs("o-1").
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name:      "Back to pending is rejected",
			status:    domain.OrderPending,
			mockSetup: func() {},
			expectErr: true,
		},
		{
			name:   "Database error",
			status: domain.OrderCancelled,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryCancel)).
					WithArgs("o-1").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			result, err := repo.Transition(context.Background(), "o-1", tt.status)

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

func TestRepository_Stats(t *testing.T) {
	repo, mock := NewMock(t)
	total := decimal.NewFromInt(60)

	mock.ExpectQuery(regexp.QuoteMeta(queryStats)).
		WillReturnRows(pgxmock.NewRows([]string{"status", "count", "sum"}).
			AddRow(domain.OrderCompleted, 3, total).
			AddRow(domain.OrderPending, 1, decimal.NewFromInt(20)))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, domain.OrderCompleted, stats[0].Status)
	assert.Equal(t, 3, stats[0].Count)
	assert.True(t, total.Equal(stats[0].Total))
}
