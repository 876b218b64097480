package blacklistrepo

import (
	"context"

	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/pg"
	"go.uber.org/zap"
)

const (
	queryAdd = `
		INSERT INTO blacklist (user_id, reason)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`
	queryRemove = `DELETE FROM blacklist WHERE user_id = $1`
	queryExists = `SELECT EXISTS (SELECT 1 FROM blacklist WHERE user_id = $1)`
	queryList   = `
		SELECT user_id, reason, added_at
		FROM blacklist
		ORDER BY added_at DESC
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

// Add reports false when the user was already blocked.
func (r *Repository) Add(ctx context.Context, userID int64, reason string) (bool, error) {
	tag, err := r.db.Exec(ctx, queryAdd, userID, reason)
	if err != nil {
		zap.L().Error("can't block user", zap.Int64("user_id", userID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) Remove(ctx context.Context, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, queryRemove, userID)
	if err != nil {
		zap.L().Error("can't unblock user", zap.Int64("user_id", userID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) IsBlocked(ctx context.Context, userID int64) (bool, error) {
	var blocked bool
	if err := r.db.QueryRow(ctx, queryExists, userID).Scan(&blocked); err != nil {
		zap.L().Error("can't check blacklist", zap.Int64("user_id", userID), zap.Error(err))
		return false, err
	}
	return blocked, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.BlacklistEntry, error) {
	rows, err := r.db.Query(ctx, queryList)
	if err != nil {
		zap.L().Error("can't get blacklist", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []domain.BlacklistEntry
	for rows.Next() {
		var e domain.BlacklistEntry
		if err := rows.Scan(&e.UserID, &e.Reason, &e.AddedAt); err != nil {
			zap.L().Error("can't scan blacklist row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
