package userservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/pg"
	"github.com/GlebRadaev/cardstore/internal/service/ledgerservice"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repo interface {
	FindByID(ctx context.Context, userID int64) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) (*domain.User, bool, error)
	Count(ctx context.Context) (int64, error)
}

type BlacklistRepo interface {
	Add(ctx context.Context, userID int64, reason string) (bool, error)
	Remove(ctx context.Context, userID int64) (bool, error)
	IsBlocked(ctx context.Context, userID int64) (bool, error)
	List(ctx context.Context) ([]domain.BlacklistEntry, error)
}

type Ledger interface {
	Adjust(ctx context.Context, userID int64, amount decimal.Decimal, typ domain.TransactionType, description string) (decimal.Decimal, error)
	Debit(ctx context.Context, userID int64, amount decimal.Decimal, typ domain.TransactionType, description string) (decimal.Decimal, error)
}

type Queue interface {
	Enqueue(ctx context.Context, typ domain.NotificationType, payload domain.Payload) (string, error)
}

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrAlreadyBlocked = errors.New("user is already blocked")
	ErrNotBlocked     = errors.New("user is not blocked")
	ErrInvalidUser    = errors.New("invalid user id")

	ErrInsufficientBalance = errors.New("correction exceeds the balance")
)

type Service struct {
	userRepo      Repo
	blacklistRepo BlacklistRepo
	ledger        Ledger
	queue         Queue
	txManager     pg.TXManager
}

func New(repo Repo, blacklistRepo BlacklistRepo, ledger Ledger, queue Queue, txManager pg.TXManager) *Service {
	return &Service{
		userRepo:      repo,
		blacklistRepo: blacklistRepo,
		ledger:        ledger,
		queue:         queue,
		txManager:     txManager,
	}
}

// Register creates the user on first contact and refreshes the profile
// afterwards. The balance of a returning user is left alone.
func (s *Service) Register(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.UserID == 0 {
		return nil, ErrInvalidUser
	}
	saved, created, err := s.userRepo.Upsert(ctx, user)
	if err != nil {
		zap.L().Error("can't register user", zap.Int64("user_id", user.UserID), zap.Error(err))
		return nil, err
	}
	if created {
		zap.L().Info("user registered", zap.Int64("user_id", saved.UserID), zap.String("username", saved.Username))
	}
	return saved, nil
}

func (s *Service) Get(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}

func (s *Service) IsBlocked(ctx context.Context, userID int64) (bool, error) {
	return s.blacklistRepo.IsBlocked(ctx, userID)
}

func (s *Service) Blacklist(ctx context.Context) ([]domain.BlacklistEntry, error) {
	return s.blacklistRepo.List(ctx)
}

// Block blacklists the user and queues the notice in the same transaction.
func (s *Service) Block(ctx context.Context, userID int64, reason string) error {
	if userID == 0 {
		return ErrInvalidUser
	}
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		added, err := s.blacklistRepo.Add(ctx, userID, reason)
		if err != nil {
			return err
		}
		if !added {
			return ErrAlreadyBlocked
		}
		_, err = s.queue.Enqueue(ctx, domain.NotificationUserBlocked, domain.UserBlockedPayload{UserID: userID, Reason: reason})
		return err
	})
	if err != nil {
		return err
	}
	zap.L().Info("user blocked", zap.Int64("user_id", userID), zap.String("reason", reason))
	return nil
}

func (s *Service) Unblock(ctx context.Context, userID int64) error {
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		removed, err := s.blacklistRepo.Remove(ctx, userID)
		if err != nil {
			return err
		}
		if !removed {
			return ErrNotBlocked
		}
		_, err = s.queue.Enqueue(ctx, domain.NotificationUserUnblocked, domain.UserUnblockedPayload{UserID: userID})
		return err
	})
	if err != nil {
		return err
	}
	zap.L().Info("user unblocked", zap.Int64("user_id", userID))
	return nil
}

// Charge credits a user's balance on behalf of the operator, or with a
// negative amount corrects it down. A correction never takes the balance
// below zero.
func (s *Service) Charge(ctx context.Context, userID int64, amount decimal.Decimal, note string) (decimal.Decimal, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return decimal.Zero, err
	}
	description := note
	if description == "" {
		description = "balance charged by operator"
	}

	var balance decimal.Decimal
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		if amount.IsNegative() {
			balance, err = s.ledger.Debit(ctx, userID, amount.Neg(), domain.TransactionAdminCharge, description)
			if errors.Is(err, ledgerservice.ErrInsufficientBalance) {
				return ErrInsufficientBalance
			}
		} else {
			balance, err = s.ledger.Adjust(ctx, userID, amount, domain.TransactionAdminCharge, description)
		}
		if err != nil {
			return err
		}

		_, err = s.queue.Enqueue(ctx, domain.NotificationBalanceUpdated, domain.BalanceUpdatedPayload{
			UserID:  userID,
			Amount:  amount,
			Balance: balance,
			Message: fmt.Sprintf("Your balance was updated by %s USDT. Current balance: %s USDT.", amount.StringFixed(2), balance.StringFixed(2)),
		})
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
