package orderservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/metrics"
	"github.com/GlebRadaev/cardstore/internal/pg"
	"github.com/GlebRadaev/cardstore/internal/service/inventoryservice"
	"github.com/GlebRadaev/cardstore/internal/service/ledgerservice"
	"github.com/GlebRadaev/cardstore/internal/service/userservice"
	"go.uber.org/zap"
)

type Repo interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByOrderID(ctx context.Context, orderID string) (*domain.Order, error)
	FindByStatus(ctx context.Context, status domain.OrderStatus, limit int) ([]domain.Order, error)
	FindByUserID(ctx context.Context, userID int64, limit int) ([]domain.Order, error)
	Transition(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
	Stats(ctx context.Context) ([]domain.OrderStats, error)
}

type Inventory interface {
	ReserveOne(ctx context.Context, key domain.GroupKey, buyerID int64) (*domain.Card, error)
	Release(ctx context.Context, cardID string) error
}

type Ledger interface {
	GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
	Debit(ctx context.Context, userID int64, amount decimal.Decimal, typ domain.TransactionType, description string) (decimal.Decimal, error)
	Adjust(ctx context.Context, userID int64, amount decimal.Decimal, typ domain.TransactionType, description string) (decimal.Decimal, error)
}

type Users interface {
	Get(ctx context.Context, userID int64) (*domain.User, error)
	IsBlocked(ctx context.Context, userID int64) (bool, error)
}

type Queue interface {
	Enqueue(ctx context.Context, typ domain.NotificationType, payload domain.Payload) (string, error)
}

var (
	ErrUserBlocked         = errors.New("user is blocked")
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrCardUnavailable     = errors.New("card is not available")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderTerminal       = errors.New("order is already completed or cancelled")
	ErrEmptyDelivery       = errors.New("delivery has neither card details nor image")
	ErrInvalidStatus       = errors.New("invalid order status")
)

const DefaultListLimit = 10

const (
	completedMessage = "Your order %s is complete. Thank you for your purchase!"
	cancelledMessage = "Your order %s was cancelled and %s USDT returned to your balance."
)

type Service struct {
	repo      Repo
	inventory Inventory
	ledger    Ledger
	users     Users
	queue     Queue
	txManager pg.TXManager
}

func New(repo Repo, inventory Inventory, ledger Ledger, users Users, queue Queue, txManager pg.TXManager) *Service {
	return &Service{
		repo:      repo,
		inventory: inventory,
		ledger:    ledger,
		users:     users,
		queue:     queue,
		txManager: txManager,
	}
}

// Place buys one unit of the group for userID. Reservation, debit, order
// row and the new_order notification commit together or not at all.
func (s *Service) Place(ctx context.Context, userID int64, key domain.GroupKey) (*domain.Order, error) {
	blocked, err := s.users.IsBlocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrUserBlocked
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	balance, err := s.ledger.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance.LessThan(key.Price) {
		return nil, ErrInsufficientBalance
	}

	var order *domain.Order
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		card, err := s.inventory.ReserveOne(ctx, key, userID)
		if err != nil {
			if errors.Is(err, inventoryservice.ErrCardUnavailable) {
				return ErrCardUnavailable
			}
			return err
		}

		orderID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generate order id: %w", err)
		}

		description := fmt.Sprintf("%s %s card, order %s", card.CountryCode, card.CardType, orderID)
		if _, err := s.ledger.Debit(ctx, userID, card.Price, domain.TransactionCardPurchase, description); err != nil {
			if errors.Is(err, ledgerservice.ErrInsufficientBalance) {
				return ErrInsufficientBalance
			}
			return err
		}

		order, err = s.repo.Create(ctx, &domain.Order{
			OrderID:     orderID.String(),
			UserID:      userID,
			CardID:      card.CardID,
			CountryCode: card.CountryCode,
			CardType:    card.CardType,
			Amount:      card.Price,
		})
		if err != nil {
			return err
		}

		_, err = s.queue.Enqueue(ctx, domain.NotificationNewOrder, domain.NewOrderPayload{
			OrderID: order.OrderID,
			User: domain.OrderUser{
				ID:        user.UserID,
				Username:  user.Username,
				FirstName: user.FirstName,
			},
			Card: domain.OrderCard{
				CardID:      card.CardID,
				CardType:    card.CardType,
				CountryCode: card.CountryCode,
				CountryName: card.CountryName,
				Price:       card.Price,
			},
			Timestamp: order.CreatedAt.UTC().Truncate(time.Second),
		})
		return err
	})
	if err != nil {
		zap.L().Info("order not placed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues(string(domain.OrderPending)).Inc()
	zap.L().Info("order placed",
		zap.String("order_id", order.OrderID),
		zap.Int64("user_id", userID),
		zap.String("amount", order.Amount.String()))
	return order, nil
}

// Complete closes a pending order and tells the buyer.
func (s *Service) Complete(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.complete(ctx, orderID, nil)
}

// Fulfill hands the operator supplied delivery to the buyer and completes
// the order. The delivery is queued ahead of the completion message.
func (s *Service) Fulfill(ctx context.Context, orderID string, delivery domain.Delivery) (*domain.Order, error) {
	if delivery.Text == "" && !delivery.IsImage() {
		return nil, ErrEmptyDelivery
	}

	return s.complete(ctx, orderID, func(ctx context.Context, order *domain.Order) error {
		if delivery.IsImage() {
			_, err := s.queue.Enqueue(ctx, domain.NotificationDeliverCardImage, domain.DeliverCardImagePayload{
				UserID:  order.UserID,
				OrderID: order.OrderID,
				Image:   delivery.Image,
				Caption: delivery.Caption,
			})
			return err
		}
		_, err := s.queue.Enqueue(ctx, domain.NotificationDeliverCard, domain.DeliverCardPayload{
			UserID:      order.UserID,
			OrderID:     order.OrderID,
			CardDetails: delivery.Text,
		})
		return err
	})
}

func (s *Service) complete(ctx context.Context, orderID string, deliver func(context.Context, *domain.Order) error) (*domain.Order, error) {
	var order *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.transition(ctx, orderID, domain.OrderCompleted)
		if err != nil {
			return err
		}

		if deliver != nil {
			if err := deliver(ctx, order); err != nil {
				return err
			}
		}

		_, err = s.queue.Enqueue(ctx, domain.NotificationOrderCompleted, domain.OrderCompletedPayload{
			UserID:  order.UserID,
			OrderID: order.OrderID,
			Message: fmt.Sprintf(completedMessage, order.OrderID),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues(string(domain.OrderCompleted)).Inc()
	zap.L().Info("order completed", zap.String("order_id", orderID), zap.Bool("delivered", deliver != nil))
	return order, nil
}

// Cancel closes a pending order, credits the amount back and returns the
// card unit to stock.
func (s *Service) Cancel(ctx context.Context, orderID, reason string) (*domain.Order, error) {
	var order *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.transition(ctx, orderID, domain.OrderCancelled)
		if err != nil {
			return err
		}

		description := fmt.Sprintf("refund for order %s", order.OrderID)
		if reason != "" {
			description += ": " + reason
		}
		if _, err := s.ledger.Adjust(ctx, order.UserID, order.Amount, domain.TransactionRefund, description); err != nil {
			return err
		}

		if err := s.inventory.Release(ctx, order.CardID); err != nil {
			if !errors.Is(err, inventoryservice.ErrCardNotFound) {
				return err
			}
			zap.L().Warn("cancelled order references a missing card",
				zap.String("order_id", order.OrderID), zap.String("card_id", order.CardID))
		}

		_, err = s.queue.Enqueue(ctx, domain.NotificationOrderCancelled, domain.OrderCancelledPayload{
			UserID:   order.UserID,
			OrderID:  order.OrderID,
			Refunded: order.Amount,
			Message:  fmt.Sprintf(cancelledMessage, order.OrderID, order.Amount.StringFixed(2)),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues(string(domain.OrderCancelled)).Inc()
	zap.L().Info("order cancelled", zap.String("order_id", orderID), zap.String("reason", reason))
	return order, nil
}

// transition moves a pending order to status. A miss is told apart into
// unknown and already terminal orders.
func (s *Service) transition(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.repo.Transition(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	if order != nil {
		return order, nil
	}

	existing, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrOrderNotFound
	}
	return nil, ErrOrderTerminal
}

func (s *Service) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *Service) ListPending(ctx context.Context, limit int) ([]domain.Order, error) {
	return s.ListByStatus(ctx, domain.OrderPending, limit)
}

func (s *Service) ListByStatus(ctx context.Context, status domain.OrderStatus, limit int) ([]domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.repo.FindByStatus(ctx, status, limit)
}

func (s *Service) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.repo.FindByUserID(ctx, userID, limit)
}

func (s *Service) Stats(ctx context.Context) ([]domain.OrderStats, error) {
	return s.repo.Stats(ctx)
}
