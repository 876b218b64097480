package balance

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/dto"
	"github.com/GlebRadaev/cardstore/internal/service/ledgerservice"
	"github.com/GlebRadaev/cardstore/internal/service/userservice"
	"github.com/GlebRadaev/cardstore/pkg/auth"
)

func NewMock(t *testing.T) (*BalanceHandler, *MockService, *MockCharger) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	charger := NewMockCharger(ctrl)
	return New(service, charger), service, charger
}

func withUser(r *http.Request, userID int64) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), auth.UserIDKey, userID))
}

func TestGetBalance(t *testing.T) {
	handler, service, _ := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expected     string
	}{
		{
			name: "Balance returned",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), int64(7)).Return(decimal.RequireFromString("80.5"), nil)
			},
			expectedCode: http.StatusOK,
			expected:     "80.5",
		},
		{
			name: "Store failure",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), int64(7)).Return(decimal.Zero, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rec := httptest.NewRecorder()
			handler.GetBalance(rec, withUser(httptest.NewRequest(http.MethodGet, "/api/user/balance", nil), 7))

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expected != "" {
				var got dto.BalanceResponseDTO
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, tt.expected, got.Balance.String())
			}
		})
	}
}

func TestGetTransactions(t *testing.T) {
	handler, service, _ := NewMock(t)

	service.EXPECT().History(gomock.Any(), int64(7), 0).Return([]domain.Transaction{
		{Type: domain.TransactionCardPurchase, Amount: decimal.NewFromInt(-20), Timestamp: time.Now()},
	}, nil)
	rec := httptest.NewRecorder()
	handler.GetTransactions(rec, withUser(httptest.NewRequest(http.MethodGet, "/api/user/transactions", nil), 7))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got []dto.TransactionResponseDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "card_purchase", got[0].Type)

	service.EXPECT().History(gomock.Any(), int64(7), 3).Return(nil, nil)
	rec = httptest.NewRecorder()
	handler.GetTransactions(rec, withUser(httptest.NewRequest(http.MethodGet, "/api/user/transactions?limit=3", nil), 7))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestChargeUser(t *testing.T) {
	handler, _, charger := NewMock(t)
	router := chi.NewRouter()
	router.Post("/users/{id}/charge", handler.ChargeUser)

	tests := []struct {
		name         string
		url          string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Charged",
			url:  "/users/7/charge",
			body: `{"amount":"50","note":"deposit"}`,
			prepareMock: func() {
				charger.EXPECT().Charge(gomock.Any(), int64(7), gomock.Any(), "deposit").
					DoAndReturn(func(_ context.Context, _ int64, amount decimal.Decimal, _ string) (decimal.Decimal, error) {
						assert.Equal(t, "50", amount.String())
						return decimal.NewFromInt(130), nil
					})
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Bad user id",
			url:          "/users/abc/charge",
			body:         `{"amount":"50"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Unknown user",
			url:  "/users/7/charge",
			body: `{"amount":"50"}`,
			prepareMock: func() {
				charger.EXPECT().Charge(gomock.Any(), int64(7), gomock.Any(), "").Return(decimal.Zero, userservice.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Zero amount",
			url:  "/users/7/charge",
			body: `{"amount":"0"}`,
			prepareMock: func() {
				charger.EXPECT().Charge(gomock.Any(), int64(7), gomock.Any(), "").Return(decimal.Zero, ledgerservice.ErrInvalidAmount)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Correction above the balance",
			url:  "/users/7/charge",
			body: `{"amount":"-100"}`,
			prepareMock: func() {
				charger.EXPECT().Charge(gomock.Any(), int64(7), gomock.Any(), "").Return(decimal.Zero, userservice.ErrInsufficientBalance)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.url, bytes.NewBufferString(tt.body)))

			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}
