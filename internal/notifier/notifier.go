package notifier

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/cardstore/internal/config"
	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/metrics"
	"github.com/GlebRadaev/cardstore/internal/service/queueservice"
)

type Queue interface {
	DrainPending(ctx context.Context, audience domain.Audience, limit int) ([]domain.Notification, error)
	MarkProcessed(ctx context.Context, notificationID string) error
	CountPending(ctx context.Context, audience domain.Audience) (int64, error)
}

// Service drains the notifications addressed to one audience.
type Service struct {
	audience   domain.Audience
	queue      Queue
	dispatcher *Dispatcher
	workerPool WorkerPoolI
	batchSize  int
	interval   time.Duration
	backoff    time.Duration

	inFlight sync.Map
	done     chan struct{}
}

func New(cfg *config.Config, audience domain.Audience, queue Queue, dispatcher *Dispatcher) *Service {
	return &Service{
		audience:   audience,
		queue:      queue,
		dispatcher: dispatcher,
		workerPool: NewWorkerPool(cfg.Workers),
		batchSize:  cfg.BatchSize,
		interval:   cfg.PollInterval,
		backoff:    cfg.ErrorBackoff,
		done:       make(chan struct{}),
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("notifier started",
		zap.String("audience", string(s.audience)),
		zap.Duration("interval", s.interval))
	go s.run(ctx)
}

// Done is closed once the loop has exited and in-flight work finished.
func (s *Service) Done() <-chan struct{} {
	return s.done
}

func (s *Service) run(ctx context.Context) {
	defer close(s.done)
	defer s.workerPool.Close()

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("notifier stopped", zap.String("audience", string(s.audience)))
			return
		case <-timer.C:
			next := s.interval
			if !s.processBatch(ctx) {
				next = s.backoff
			}
			timer.Reset(next)
		}
	}
}

// processBatch handles one poll. It reports false when the store could not
// be read or every notification failed transiently, so the caller backs off.
func (s *Service) processBatch(ctx context.Context) bool {
	notifications, err := s.queue.DrainPending(ctx, s.audience, s.batchSize)
	if err != nil {
		zap.L().Error("failed to fetch pending notifications", zap.String("audience", string(s.audience)), zap.Error(err))
		return false
	}
	if _, err := s.queue.CountPending(ctx, s.audience); err != nil {
		zap.L().Warn("failed to count pending notifications", zap.Error(err))
	}
	if len(notifications) == 0 {
		return true
	}

	var (
		wg         sync.WaitGroup
		dispatched atomic.Int32
		failed     atomic.Int32
	)
	// Tasks are submitted from this goroutine in drain order; with a single
	// worker they also run in that order.
	for _, n := range notifications {
		if _, loaded := s.inFlight.LoadOrStore(n.NotificationID, struct{}{}); loaded {
			continue
		}
		dispatched.Add(1)
		wg.Add(1)

		err := s.workerPool.AddTask(ctx, func() error {
			defer wg.Done()
			defer s.inFlight.Delete(n.NotificationID)
			if !s.handle(ctx, n) {
				failed.Add(1)
			}
			return nil
		})
		if err != nil {
			wg.Done()
			s.inFlight.Delete(n.NotificationID)
			failed.Add(1)
			zap.L().Error("error dispatching notifications", zap.Error(err))
			break
		}
	}
	wg.Wait()

	return dispatched.Load() == 0 || failed.Load() < dispatched.Load()
}

// handle dispatches n and marks it processed unless the failure is worth
// retrying. It reports false on a transient failure.
func (s *Service) handle(ctx context.Context, n domain.Notification) bool {
	log := zap.L().With(
		zap.String("notification_id", n.NotificationID),
		zap.String("type", string(n.Type)))

	err := s.dispatcher.Dispatch(ctx, n)
	outcome := metrics.OutcomeDelivered
	switch {
	case err == nil:
		log.Debug("notification delivered")
	case permanent(err):
		outcome = metrics.OutcomeDropped
		log.Warn("notification dropped", zap.Error(err))
	default:
		metrics.RecordNotification(string(s.audience), string(n.Type), metrics.OutcomeRetry)
		log.Error("notification failed, will retry", zap.Error(err))
		return false
	}

	if err := s.queue.MarkProcessed(ctx, n.NotificationID); err != nil {
		metrics.RecordNotification(string(s.audience), string(n.Type), metrics.OutcomeRetry)
		log.Error("failed to mark notification processed", zap.Error(err))
		return false
	}
	metrics.RecordNotification(string(s.audience), string(n.Type), outcome)
	return true
}

func permanent(err error) bool {
	return errors.Is(err, domain.ErrMalformedPayload) ||
		errors.Is(err, queueservice.ErrUnknownType) ||
		errors.Is(err, domain.ErrRecipientUnreachable) ||
		errors.Is(err, domain.ErrDeliveryRejected)
}
