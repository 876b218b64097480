package orderrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const orderColumns = `id, order_id, user_id, card_id, country_code, card_type, amount, status,
	created_at, updated_at, completed_at, cancelled_at`

const (
	queryCreate = `
		INSERT INTO orders (order_id, user_id, card_id, country_code, card_type, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		RETURNING ` + orderColumns
	queryFindByOrderID = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE order_id = $1
	`
	queryFindByStatus = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE status = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2
	`
	queryFindByUserID = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	// Transitions only leave pending; a terminal order matches nothing.
	queryComplete = `
		UPDATE orders
		SET status = 'completed', completed_at = NOW(), updated_at = NOW()
		WHERE order_id = $1 AND status = 'pending'
		RETURNING ` + orderColumns
	queryCancel = `
		UPDATE orders
		SET status = 'cancelled', cancelled_at = NOW(), updated_at = NOW()
		WHERE order_id = $1 AND status = 'pending'
		RETURNING ` + orderColumns
	queryStats = `
		SELECT status, COUNT(*), COALESCE(SUM(amount), 0)
		FROM orders
		GROUP BY status
		ORDER BY status
	`
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.OrderID, &o.UserID, &o.CardID, &o.CountryCode, &o.CardType, &o.Amount, &o.Status,
		&o.CreatedAt, &o.UpdatedAt, &o.CompletedAt, &o.CancelledAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	saved, err := scanOrder(r.db.QueryRow(ctx, queryCreate,
		order.OrderID, order.UserID, order.CardID, order.CountryCode, order.CardType, order.Amount))
	if err != nil {
		zap.L().Error("can't save order", zap.String("order_id", order.OrderID), zap.Error(err))
		return nil, err
	}
	return saved, nil
}

func (r *Repository) FindByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, queryFindByOrderID, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find order", zap.String("order_id", orderID), zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (r *Repository) FindByStatus(ctx context.Context, status domain.OrderStatus, limit int) ([]domain.Order, error) {
	return r.list(ctx, queryFindByStatus, status, limit)
}

func (r *Repository) FindByUserID(ctx context.Context, userID int64, limit int) ([]domain.Order, error) {
	return r.list(ctx, queryFindByUserID, userID, limit)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			zap.L().Error("can't scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

// Transition moves a pending order to status. It returns nil when no
// pending order with that id exists.
func (r *Repository) Transition(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	var query string
	switch status {
	case domain.OrderCompleted:
		query = queryComplete
	case domain.OrderCancelled:
		query = queryCancel
	default:
		return nil, errors.New("unsupported order transition: " + string(status))
	}

	order, err := scanOrder(r.db.QueryRow(ctx, query, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("failed to update order", zap.String("order_id", orderID), zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (r *Repository) Stats(ctx context.Context) ([]domain.OrderStats, error) {
	rows, err := r.db.Query(ctx, queryStats)
	if err != nil {
		zap.L().Error("can't get order stats", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var stats []domain.OrderStats
	for rows.Next() {
		var s domain.OrderStats
		if err := rows.Scan(&s.Status, &s.Count, &s.Total); err != nil {
			zap.L().Error("can't scan order stats row", zap.Error(err))
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
