package queueservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/metrics"
	"go.uber.org/zap"
)

type Repo interface {
	Insert(ctx context.Context, n *domain.Notification) error
	FindPending(ctx context.Context, audience domain.Audience, limit int) ([]domain.Notification, error)
	MarkProcessed(ctx context.Context, notificationID string) error
	CountPending(ctx context.Context, audience domain.Audience) (int64, error)
}

var ErrUnknownType = errors.New("unknown notification type")

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

// Enqueue stores a pending notification and returns its id. The payload must
// decode back as typ, so a producer cannot write what no consumer can read.
func (s *Service) Enqueue(ctx context.Context, typ domain.NotificationType, payload domain.Payload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode %s payload: %w", typ, err)
	}
	if _, err := Decode(typ, data); err != nil {
		return "", err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate notification id: %w", err)
	}

	n := &domain.Notification{
		NotificationID: id.String(),
		Type:           typ,
		Audience:       typ.Audience(),
		Data:           data,
	}
	if err := s.repo.Insert(ctx, n); err != nil {
		return "", err
	}

	metrics.NotificationsEnqueued.WithLabelValues(string(typ)).Inc()
	zap.L().Debug("notification enqueued",
		zap.String("notification_id", n.NotificationID),
		zap.String("type", string(typ)),
		zap.String("audience", string(n.Audience)))
	return n.NotificationID, nil
}

// DrainPending returns up to limit pending notifications for audience,
// oldest first.
func (s *Service) DrainPending(ctx context.Context, audience domain.Audience, limit int) ([]domain.Notification, error) {
	return s.repo.FindPending(ctx, audience, limit)
}

// MarkProcessed is idempotent; unknown ids are not an error.
func (s *Service) MarkProcessed(ctx context.Context, notificationID string) error {
	return s.repo.MarkProcessed(ctx, notificationID)
}

func (s *Service) CountPending(ctx context.Context, audience domain.Audience) (int64, error) {
	n, err := s.repo.CountPending(ctx, audience)
	if err != nil {
		return 0, err
	}
	metrics.NotificationsPending.WithLabelValues(string(audience)).Set(float64(n))
	return n, nil
}

// Decode parses data as the payload of typ and validates it.
func Decode(typ domain.NotificationType, data []byte) (domain.Payload, error) {
	var (
		payload domain.Payload
		err     error
	)
	switch typ {
	case domain.NotificationNewOrder:
		payload, err = unmarshal[domain.NewOrderPayload](data)
	case domain.NotificationDeliverCard:
		payload, err = unmarshal[domain.DeliverCardPayload](data)
	case domain.NotificationDeliverCardImage:
		payload, err = unmarshal[domain.DeliverCardImagePayload](data)
	case domain.NotificationOrderCompleted:
		payload, err = unmarshal[domain.OrderCompletedPayload](data)
	case domain.NotificationOrderCancelled:
		payload, err = unmarshal[domain.OrderCancelledPayload](data)
	case domain.NotificationBalanceUpdated:
		payload, err = unmarshal[domain.BalanceUpdatedPayload](data)
	case domain.NotificationUserBlocked:
		payload, err = unmarshal[domain.UserBlockedPayload](data)
	case domain.NotificationUserUnblocked:
		payload, err = unmarshal[domain.UserUnblockedPayload](data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
	if err != nil {
		return nil, err
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	return payload, nil
}

func unmarshal[T domain.Payload](data []byte) (domain.Payload, error) {
	var p T
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	return p, nil
}
