package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/cardstore/internal/config"
	"github.com/GlebRadaev/cardstore/internal/domain"
)

func NewMock(t *testing.T, handlers map[domain.NotificationType]Handler) (*Service, *MockQueue) {
	ctrl := gomock.NewController(t)
	queue := NewMockQueue(ctrl)
	cfg := &config.Config{
		Workers:      1,
		BatchSize:    100,
		PollInterval: 10 * time.Millisecond,
		ErrorBackoff: 20 * time.Millisecond,
	}
	return New(cfg, domain.AudienceCustomer, queue, NewDispatcher(handlers)), queue
}

func unblocked(id string, data string) domain.Notification {
	return domain.Notification{
		NotificationID: id,
		Type:           domain.NotificationUserUnblocked,
		Audience:       domain.AudienceCustomer,
		Data:           []byte(data),
	}
}

func TestService_processBatch(t *testing.T) {
	errTransient := errors.New("bot api unavailable")

	tests := []struct {
		name          string
		notifications []domain.Notification
		handlerErr    error
		fetchErr      error
		expectMarked  []string
		expectHealthy bool
	}{
		{
			name:          "Delivered notifications are marked",
			notifications: []domain.Notification{unblocked("n-1", `{"user_id":7}`), unblocked("n-2", `{"user_id":8}`)},
			expectMarked:  []string{"n-1", "n-2"},
			expectHealthy: true,
		},
		{
			name:          "Malformed payload is dropped",
			notifications: []domain.Notification{unblocked("n-1", `{"user_id":0}`)},
			expectMarked:  []string{"n-1"},
			expectHealthy: true,
		},
		{
			name: "Unknown type is dropped",
			notifications: []domain.Notification{{
				NotificationID: "n-1",
				Type:           domain.NotificationType("refund_issued"),
				Data:           []byte(`{}`),
			}},
			expectMarked:  []string{"n-1"},
			expectHealthy: true,
		},
		{
			name:          "Unreachable recipient is dropped",
			notifications: []domain.Notification{unblocked("n-1", `{"user_id":7}`)},
			handlerErr:    domain.ErrRecipientUnreachable,
			expectMarked:  []string{"n-1"},
			expectHealthy: true,
		},
		{
			name:          "Transient failure stays pending",
			notifications: []domain.Notification{unblocked("n-1", `{"user_id":7}`)},
			handlerErr:    errTransient,
		},
		{
			name:     "Store failure",
			fetchErr: errors.New("database error"),
		},
		{
			name:          "Nothing pending",
			expectHealthy: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, queue := NewMock(t, map[domain.NotificationType]Handler{
				domain.NotificationUserUnblocked: func(context.Context, domain.Payload) error {
					return tt.handlerErr
				},
			})

			queue.EXPECT().DrainPending(gomock.Any(), domain.AudienceCustomer, 100).Return(tt.notifications, tt.fetchErr)
			if tt.fetchErr == nil {
				queue.EXPECT().CountPending(gomock.Any(), domain.AudienceCustomer).Return(int64(len(tt.notifications)), nil)
			}
			for _, id := range tt.expectMarked {
				queue.EXPECT().MarkProcessed(gomock.Any(), id).Return(nil)
			}

			healthy := service.processBatch(context.Background())

			assert.Equal(t, tt.expectHealthy, healthy)
		})
	}
}

func TestService_processBatch_KeepsDrainOrder(t *testing.T) {
	batch := make([]domain.Notification, 0, 5)
	for i := 1; i <= 5; i++ {
		batch = append(batch, unblocked(fmt.Sprintf("n-%d", i), fmt.Sprintf(`{"user_id":%d}`, i)))
	}

	for run := 0; run < 50; run++ {
		var (
			mu  sync.Mutex
			got []int64
		)
		service, queue := NewMock(t, map[domain.NotificationType]Handler{
			domain.NotificationUserUnblocked: func(_ context.Context, p domain.Payload) error {
				mu.Lock()
				defer mu.Unlock()
				got = append(got, p.(domain.UserUnblockedPayload).UserID)
				return nil
			},
		})

		queue.EXPECT().DrainPending(gomock.Any(), gomock.Any(), gomock.Any()).Return(batch, nil)
		queue.EXPECT().CountPending(gomock.Any(), gomock.Any()).Return(int64(len(batch)), nil)
		queue.EXPECT().MarkProcessed(gomock.Any(), gomock.Any()).Return(nil).Times(len(batch))

		require.True(t, service.processBatch(context.Background()))
		require.Equal(t, []int64{1, 2, 3, 4, 5}, got, "run %d", run)
	}
}

func TestService_processBatch_SkipsInFlight(t *testing.T) {
	calls := 0
	service, queue := NewMock(t, map[domain.NotificationType]Handler{
		domain.NotificationUserUnblocked: func(context.Context, domain.Payload) error {
			calls++
			return nil
		},
	})
	service.inFlight.Store("n-1", struct{}{})

	queue.EXPECT().DrainPending(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.Notification{unblocked("n-1", `{"user_id":7}`)}, nil)
	queue.EXPECT().CountPending(gomock.Any(), gomock.Any()).Return(int64(1), nil)

	assert.True(t, service.processBatch(context.Background()))
	assert.Zero(t, calls)
}

func TestService_processBatch_MarkFailureIsRetried(t *testing.T) {
	service, queue := NewMock(t, map[domain.NotificationType]Handler{
		domain.NotificationUserUnblocked: func(context.Context, domain.Payload) error { return nil },
	})

	queue.EXPECT().DrainPending(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.Notification{unblocked("n-1", `{"user_id":7}`)}, nil)
	queue.EXPECT().CountPending(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	queue.EXPECT().MarkProcessed(gomock.Any(), "n-1").Return(errors.New("database error"))

	assert.False(t, service.processBatch(context.Background()))
	_, stillInFlight := service.inFlight.Load("n-1")
	assert.False(t, stillInFlight)
}

func TestService_StartStop(t *testing.T) {
	service, queue := NewMock(t, nil)

	queue.EXPECT().DrainPending(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	queue.EXPECT().CountPending(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	service.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-service.Done():
	case <-time.After(time.Second):
		t.Fatal("notifier did not stop")
	}
}

func TestDispatcher(t *testing.T) {
	var got domain.Payload
	d := NewDispatcher(map[domain.NotificationType]Handler{
		domain.NotificationUserUnblocked: func(_ context.Context, p domain.Payload) error {
			got = p
			return nil
		},
	})

	require.NoError(t, d.Dispatch(context.Background(), unblocked("n-1", `{"user_id":7}`)))
	assert.Equal(t, domain.UserUnblockedPayload{UserID: 7}, got)

	err := d.Dispatch(context.Background(), domain.Notification{Type: domain.NotificationNewOrder, Data: []byte(`{}`)})
	assert.True(t, permanent(err))
}
