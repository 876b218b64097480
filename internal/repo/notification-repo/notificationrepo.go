package notificationrepo

import (
	"context"

	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/pg"
	"go.uber.org/zap"
)

const (
	queryInsert = `
		INSERT INTO notifications (notification_id, type, audience, data, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING id, created_at
	`
	queryFindPending = `
		SELECT id, notification_id, type, audience, data, status, created_at, processed_at
		FROM notifications
		WHERE audience = $1 AND status = 'pending'
		ORDER BY created_at ASC, id ASC
		LIMIT $2
	`
	// processed_at keeps the first mark so repeated marks are no-ops.
	queryMarkProcessed = `
		UPDATE notifications
		SET status = 'processed', processed_at = COALESCE(processed_at, NOW())
		WHERE notification_id = $1
	`
	queryCountPending = `
		SELECT COUNT(*)
		FROM notifications
		WHERE audience = $1 AND status = 'pending'
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

func (r *Repository) Insert(ctx context.Context, n *domain.Notification) error {
	err := r.db.QueryRow(ctx, queryInsert, n.NotificationID, n.Type, n.Audience, n.Data).
		Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		zap.L().Error("can't save notification", zap.String("type", string(n.Type)), zap.Error(err))
		return err
	}
	n.Status = domain.NotificationPending
	return nil
}

func (r *Repository) FindPending(ctx context.Context, audience domain.Audience, limit int) ([]domain.Notification, error) {
	rows, err := r.db.Query(ctx, queryFindPending, audience, limit)
	if err != nil {
		zap.L().Error("can't get pending notifications", zap.String("audience", string(audience)), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		err := rows.Scan(&n.ID, &n.NotificationID, &n.Type, &n.Audience, &n.Data, &n.Status, &n.CreatedAt, &n.ProcessedAt)
		if err != nil {
			zap.L().Error("can't scan notification row", zap.Error(err))
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *Repository) MarkProcessed(ctx context.Context, notificationID string) error {
	_, err := r.db.Exec(ctx, queryMarkProcessed, notificationID)
	if err != nil {
		zap.L().Error("failed to mark notification processed", zap.String("notification_id", notificationID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) CountPending(ctx context.Context, audience domain.Audience) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, queryCountPending, audience).Scan(&n); err != nil {
		zap.L().Error("can't count pending notifications", zap.Error(err))
		return 0, err
	}
	return n, nil
}
