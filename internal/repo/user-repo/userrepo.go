package userrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	queryFindByID = `
		SELECT user_id, username, first_name, last_name, balance, created_at, is_active
		FROM users
		WHERE user_id = $1
	`
	// Profile fields follow the chat platform; balance is never touched here.
	queryUpsert = `
		INSERT INTO users (user_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name
		RETURNING user_id, username, first_name, last_name, balance, created_at, is_active, (xmax = 0)
	`
	queryCount = `SELECT COUNT(*) FROM users`
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) FindByID(ctx context.Context, userID int64) (*domain.User, error) {
	var user domain.User
	err := repo.db.QueryRow(ctx, queryFindByID, userID).
		Scan(&user.UserID, &user.Username, &user.FirstName, &user.LastName, &user.Balance, &user.CreatedAt, &user.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// Upsert stores the profile and reports whether the row was created.
func (repo *Repository) Upsert(ctx context.Context, user *domain.User) (*domain.User, bool, error) {
	var (
		saved   domain.User
		created bool
	)
	err := repo.db.QueryRow(ctx, queryUpsert, user.UserID, user.Username, user.FirstName, user.LastName).
		Scan(&saved.UserID, &saved.Username, &saved.FirstName, &saved.LastName, &saved.Balance, &saved.CreatedAt, &saved.IsActive, &created)
	if err != nil {
		zap.L().Error("can't save user", zap.Int64("user_id", user.UserID), zap.Error(err))
		return nil, false, err
	}
	return &saved, created, nil
}

func (repo *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := repo.db.QueryRow(ctx, queryCount).Scan(&n); err != nil {
		zap.L().Error("can't count users", zap.Error(err))
		return 0, err
	}
	return n, nil
}
