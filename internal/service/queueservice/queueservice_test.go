package queueservice

import (
	"context"
	"errors"
	"testing"

	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	return New(repo), repo
}

func TestEnqueue(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name          string
		typ           domain.NotificationType
		payload       domain.Payload
		prepareMock   func()
		expectedError error
	}{
		{
			name:    "New order goes to the operator",
			typ:     domain.NotificationNewOrder,
			payload: domain.NewOrderPayload{OrderID: "o-1", User: domain.OrderUser{ID: 7}, Card: domain.OrderCard{CardID: "c-1", Price: decimal.NewFromInt(20)}},
			prepareMock: func() {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n *domain.Notification) error {
					assert.Equal(t, domain.NotificationNewOrder, n.Type)
					assert.Equal(t, domain.AudienceOperator, n.Audience)
					assert.JSONEq(t, `{"order_id":"o-1","user":{"id":7},"card":{"card_id":"c-1","card_type":"","price":"20"},"timestamp":"0001-01-01T00:00:00Z"}`, string(n.Data))
					return nil
				})
			},
		},
		{
			name:    "Delivery goes to the customer",
			typ:     domain.NotificationDeliverCard,
			payload: domain.DeliverCardPayload{UserID: 7, OrderID: "o-1", CardDetails: "CODE"},
			prepareMock: func() {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n *domain.Notification) error {
					assert.Equal(t, domain.AudienceCustomer, n.Audience)
					return nil
				})
			},
		},
		{
			name:          "Malformed payload is refused",
			typ:           domain.NotificationDeliverCard,
			payload:       domain.DeliverCardPayload{OrderID: "o-1", CardDetails: "CODE"},
			expectedError: domain.ErrMalformedPayload,
		},
		{
			name:          "Unknown type is refused",
			typ:           domain.NotificationType("refund_issued"),
			payload:       domain.UserUnblockedPayload{UserID: 7},
			expectedError: ErrUnknownType,
		},
		{
			name:    "Store failure",
			typ:     domain.NotificationUserUnblocked,
			payload: domain.UserUnblockedPayload{UserID: 7},
			prepareMock: func() {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}

			id, err := service.Enqueue(context.Background(), tt.typ, tt.payload)

			if tt.expectedError != nil {
				assert.Error(t, err)
				if !errors.Is(err, tt.expectedError) {
					assert.EqualError(t, err, tt.expectedError.Error())
				}
				assert.Empty(t, id)
				return
			}
			require.NoError(t, err)
			parsed, err := uuid.Parse(id)
			require.NoError(t, err)
			assert.Equal(t, uuid.Version(7), parsed.Version())
		})
	}
}

func TestEnqueue_IDsAreTimeOrdered(t *testing.T) {
	service, repo := NewMock(t)
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	first, err := service.Enqueue(context.Background(), domain.NotificationUserBlocked, domain.UserBlockedPayload{UserID: 1})
	require.NoError(t, err)
	second, err := service.Enqueue(context.Background(), domain.NotificationUserBlocked, domain.UserBlockedPayload{UserID: 1})
	require.NoError(t, err)

	assert.Less(t, first, second)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name          string
		typ           domain.NotificationType
		data          string
		expected      domain.Payload
		expectedError error
	}{
		{
			name:     "Deliver card",
			typ:      domain.NotificationDeliverCard,
			data:     `{"user_id":7,"order_id":"o-1","card_details":"CODE"}`,
			expected: domain.DeliverCardPayload{UserID: 7, OrderID: "o-1", CardDetails: "CODE"},
		},
		{
			name:     "Image bytes are base64",
			typ:      domain.NotificationDeliverCardImage,
			data:     `{"user_id":7,"order_id":"o-1","image":"iVBO","caption":"card"}`,
			expected: domain.DeliverCardImagePayload{UserID: 7, OrderID: "o-1", Image: []byte{0x89, 0x50, 0x4e}, Caption: "card"},
		},
		{
			name:          "Deliver card without user",
			typ:           domain.NotificationDeliverCard,
			data:          `{"order_id":"o-1","card_details":"CODE"}`,
			expectedError: domain.ErrMalformedPayload,
		},
		{
			name:          "Not json",
			typ:           domain.NotificationOrderCompleted,
			data:          `not json`,
			expectedError: domain.ErrMalformedPayload,
		},
		{
			name:          "Unknown type",
			typ:           domain.NotificationType("refund_issued"),
			data:          `{}`,
			expectedError: ErrUnknownType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := Decode(tt.typ, []byte(tt.data))

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, payload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, payload)
		})
	}
}

func TestDrainAndMark(t *testing.T) {
	service, repo := NewMock(t)

	repo.EXPECT().FindPending(gomock.Any(), domain.AudienceCustomer, 100).
		Return([]domain.Notification{{NotificationID: "n-1"}}, nil)
	pending, err := service.DrainPending(context.Background(), domain.AudienceCustomer, 100)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	repo.EXPECT().MarkProcessed(gomock.Any(), "n-1").Return(nil).Times(2)
	assert.NoError(t, service.MarkProcessed(context.Background(), "n-1"))
	assert.NoError(t, service.MarkProcessed(context.Background(), "n-1"))

	repo.EXPECT().CountPending(gomock.Any(), domain.AudienceCustomer).Return(int64(0), nil)
	n, err := service.CountPending(context.Background(), domain.AudienceCustomer)
	require.NoError(t, err)
	assert.Zero(t, n)
}
