package inventoryservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/metrics"
	"github.com/GlebRadaev/cardstore/internal/pg"
	"go.uber.org/zap"
)

type Repo interface {
	GetCard(ctx context.Context, cardID string) (*domain.Card, error)
	ListAvailable(ctx context.Context, filter domain.CardFilter) ([]domain.Card, error)
	ListGroups(ctx context.Context, filter domain.CardFilter) ([]domain.CardGroup, error)
	ReserveOne(ctx context.Context, key domain.GroupKey, buyerID int64) (*domain.Card, error)
	Release(ctx context.Context, cardID string) (bool, error)
	BulkAdd(ctx context.Context, spec domain.CardSpec, quantity int) (*domain.Card, error)
	SoftDelete(ctx context.Context, cardID string) (bool, error)
	SoftDeleteGroup(ctx context.Context, key domain.GroupKey) (int64, error)
	Restore(ctx context.Context, cardID string) (bool, error)
}

var (
	ErrCardUnavailable = errors.New("card is not available")
	ErrCardNotFound    = errors.New("card not found")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidSpec     = errors.New("invalid card spec")
	ErrRestoreConflict = errors.New("a live record with the same spec already exists")
	ErrGroupNotFound   = errors.New("card group not found")
	ErrInvalidGroupKey = errors.New("invalid card group key")
)

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) ListAvailable(ctx context.Context, filter domain.CardFilter) ([]domain.Card, error) {
	return s.repo.ListAvailable(ctx, normalizeFilter(filter))
}

func (s *Service) ListGroups(ctx context.Context, filter domain.CardFilter) ([]domain.CardGroup, error) {
	return s.repo.ListGroups(ctx, normalizeFilter(filter))
}

func (s *Service) GetCard(ctx context.Context, cardID string) (*domain.Card, error) {
	card, err := s.repo.GetCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrCardNotFound
	}
	return card, nil
}

// ReserveOne takes one unit of the group for buyerID. Losing a race for the
// last unit yields ErrCardUnavailable with nothing mutated.
func (s *Service) ReserveOne(ctx context.Context, key domain.GroupKey, buyerID int64) (*domain.Card, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	card, err := s.repo.ReserveOne(ctx, key, buyerID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		metrics.ReservationConflicts.Inc()
		zap.L().Info("no unit left to reserve",
			zap.String("country_code", key.CountryCode),
			zap.String("card_type", key.CardType),
			zap.String("price", key.Price.String()),
			zap.Int64("buyer_id", buyerID))
		return nil, ErrCardUnavailable
	}
	return card, nil
}

func (s *Service) Release(ctx context.Context, cardID string) error {
	ok, err := s.repo.Release(ctx, cardID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCardNotFound
	}
	return nil
}

func (s *Service) BulkAdd(ctx context.Context, spec domain.CardSpec, quantity int) (*domain.Card, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	spec.CountryCode = strings.ToUpper(strings.TrimSpace(spec.CountryCode))
	spec.CardType = strings.ToUpper(strings.TrimSpace(spec.CardType))
	spec.CountryName = strings.TrimSpace(spec.CountryName)
	switch {
	case spec.CountryCode == "":
		return nil, fmt.Errorf("%w: country code is required", ErrInvalidSpec)
	case spec.CardType == "":
		return nil, fmt.Errorf("%w: card type is required", ErrInvalidSpec)
	case !spec.Price.IsPositive():
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidSpec)
	case spec.Value.IsNegative():
		return nil, fmt.Errorf("%w: value must not be negative", ErrInvalidSpec)
	}

	card, err := s.repo.BulkAdd(ctx, spec, quantity)
	if err != nil {
		return nil, err
	}
	zap.L().Info("cards added",
		zap.String("card_id", card.CardID),
		zap.Int("quantity", quantity),
		zap.Int("available", card.AvailableCount))
	return card, nil
}

func (s *Service) SoftDelete(ctx context.Context, cardID string) error {
	ok, err := s.repo.SoftDelete(ctx, cardID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCardNotFound
	}
	return nil
}

func (s *Service) SoftDeleteGroup(ctx context.Context, key domain.GroupKey) (int64, error) {
	if err := validateKey(key); err != nil {
		return 0, err
	}
	n, err := s.repo.SoftDeleteGroup(ctx, key)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrGroupNotFound
	}
	return n, nil
}

func (s *Service) Restore(ctx context.Context, cardID string) error {
	ok, err := s.repo.Restore(ctx, cardID)
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return ErrRestoreConflict
		}
		return err
	}
	if !ok {
		return ErrCardNotFound
	}
	return nil
}

func validateKey(key domain.GroupKey) error {
	if key.CountryCode == "" || key.CardType == "" || !key.Price.IsPositive() {
		return ErrInvalidGroupKey
	}
	return nil
}

func normalizeFilter(f domain.CardFilter) domain.CardFilter {
	f.CountryCode = strings.ToUpper(strings.TrimSpace(f.CountryCode))
	f.CardType = strings.ToUpper(strings.TrimSpace(f.CardType))
	return f
}
