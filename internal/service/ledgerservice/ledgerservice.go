package ledgerservice

import (
	"context"
	"errors"

	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultHistoryLimit = 10

type Repo interface {
	GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
	Apply(ctx context.Context, t *domain.Transaction, requireFunds bool) (decimal.Decimal, bool, error)
	History(ctx context.Context, userID int64, limit int) ([]domain.Transaction, error)
}

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidAmount       = errors.New("invalid amount")
)

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

// GetBalance reads the stored balance; unknown users have zero.
func (s *Service) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return s.repo.GetBalance(ctx, userID)
}

// Adjust applies a signed amount unconditionally and records it.
func (s *Service) Adjust(ctx context.Context, userID int64, amount decimal.Decimal, typ domain.TransactionType, description string) (decimal.Decimal, error) {
	if amount.IsZero() {
		return decimal.Zero, ErrInvalidAmount
	}
	balance, applied, err := s.repo.Apply(ctx, &domain.Transaction{
		UserID:      userID,
		Type:        typ,
		Amount:      amount,
		Description: description,
	}, false)
	if err != nil {
		return decimal.Zero, err
	}
	if !applied {
		return decimal.Zero, ErrUserNotFound
	}
	zap.L().Info("balance adjusted",
		zap.Int64("user_id", userID),
		zap.String("type", string(typ)),
		zap.String("amount", amount.String()),
		zap.String("balance", balance.String()))
	return balance, nil
}

// Debit takes a positive amount only while the balance covers it.
func (s *Service) Debit(ctx context.Context, userID int64, amount decimal.Decimal, typ domain.TransactionType, description string) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	balance, applied, err := s.repo.Apply(ctx, &domain.Transaction{
		UserID:      userID,
		Type:        typ,
		Amount:      amount.Neg(),
		Description: description,
	}, true)
	if err != nil {
		return decimal.Zero, err
	}
	if !applied {
		return decimal.Zero, ErrInsufficientBalance
	}
	return balance, nil
}

func (s *Service) History(ctx context.Context, userID int64, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.repo.History(ctx, userID, limit)
}
