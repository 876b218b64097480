package ledgerrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/pg"
	"go.uber.org/zap"
)

const (
	queryGetBalance = `
		SELECT COALESCE((SELECT balance FROM users WHERE user_id = $1), 0)
	`
	queryAdjust = `
		UPDATE users
		SET balance = balance + $2
		WHERE user_id = $1
		RETURNING balance
	`
	// Debits only apply while the result stays non-negative, so two
	// concurrent purchases cannot overdraw the same balance.
	queryAdjustGuarded = `
		UPDATE users
		SET balance = balance + $2
		WHERE user_id = $1 AND balance + $2 >= 0
		RETURNING balance
	`
	queryInsertTransaction = `
		INSERT INTO transactions (user_id, type, amount, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, timestamp
	`
	queryHistory = `
		SELECT id, user_id, type, amount, description, timestamp
		FROM transactions
		WHERE user_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT $2
	`
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	if err := r.db.QueryRow(ctx, queryGetBalance, userID).Scan(&balance); err != nil {
		zap.L().Error("failed to get user balance", zap.Int64("user_id", userID), zap.Error(err))
		return decimal.Zero, err
	}
	return balance, nil
}

// Apply moves the balance by t.Amount and records t in one transaction.
// With requireFunds the move is refused if it would leave the balance
// negative. applied is false when the user is absent or the guard refused.
func (r *Repository) Apply(ctx context.Context, t *domain.Transaction, requireFunds bool) (balance decimal.Decimal, applied bool, err error) {
	query := queryAdjust
	if requireFunds {
		query = queryAdjustGuarded
	}

	err = r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, query, t.UserID, t.Amount).Scan(&balance)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			zap.L().Error("failed to update user balance", zap.Int64("user_id", t.UserID), zap.Error(err))
			return err
		}

		err = r.db.QueryRow(ctx, queryInsertTransaction, t.UserID, t.Type, t.Amount, t.Description).
			Scan(&t.ID, &t.Timestamp)
		if err != nil {
			zap.L().Error("failed to record transaction", zap.Int64("user_id", t.UserID), zap.Error(err))
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return decimal.Zero, false, err
	}
	return balance, applied, nil
}

func (r *Repository) History(ctx context.Context, userID int64, limit int) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, queryHistory, userID, limit)
	if err != nil {
		zap.L().Error("can't get transactions", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Description, &t.Timestamp); err != nil {
			zap.L().Error("can't scan transaction row", zap.Error(err))
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
