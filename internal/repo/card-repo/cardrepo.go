package cardrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/pg"
	"go.uber.org/zap"
)

const cardColumns = `id, card_id, card_type, country_code, country_name, price, value, available_count,
	is_available, is_deleted, reserved_by, reserved_at, created_at, updated_at, deleted_at`

const (
	queryGetCard = `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE card_id = $1
	`
	queryListAvailable = `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE is_available AND NOT is_deleted
			AND ($1 = '' OR country_code = $1)
			AND ($2 = '' OR card_type = $2)
		ORDER BY price, card_type, id
	`
	queryListGroups = `
		SELECT country_code, card_type, price, MAX(country_name),
			SUM(available_count)::int, array_agg(card_id ORDER BY id)
		FROM cards
		WHERE is_available AND NOT is_deleted
			AND ($1 = '' OR country_code = $1)
			AND ($2 = '' OR card_type = $2)
		GROUP BY country_code, card_type, price
		ORDER BY price, card_type, country_code
	`
	// The inner select waits for a concurrent buyer's lock and then re-reads
	// the row; the outer predicate re-checks the count so the decrement can
	// never go negative.
	queryReserveOne = `
		UPDATE cards
		SET available_count = available_count - 1,
			is_available = available_count - 1 > 0,
			reserved_by = $4,
			reserved_at = NOW(),
			updated_at = NOW()
		WHERE id = (
			SELECT id FROM cards
			WHERE country_code = $1 AND card_type = $2 AND price = $3
				AND available_count > 0 AND NOT is_deleted
			ORDER BY id
			LIMIT 1
			FOR UPDATE
		) AND available_count > 0 AND NOT is_deleted
		RETURNING ` + cardColumns
	queryGroupInStock = `
		SELECT EXISTS (
			SELECT 1 FROM cards
			WHERE country_code = $1 AND card_type = $2 AND price = $3
				AND available_count > 0 AND NOT is_deleted
		)
	`
	queryRelease = `
		UPDATE cards
		SET available_count = available_count + 1,
			is_available = NOT is_deleted,
			reserved_by = NULL,
			reserved_at = NULL,
			updated_at = NOW()
		WHERE card_id = $1
	`
	queryBulkAdd = `
		INSERT INTO cards (card_id, card_type, country_code, country_name, price, value, available_count, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		ON CONFLICT (country_code, card_type, price, value) WHERE NOT is_deleted
		DO UPDATE SET available_count = cards.available_count + EXCLUDED.available_count,
			is_available = TRUE,
			updated_at = NOW()
		RETURNING ` + cardColumns
	querySoftDelete = `
		UPDATE cards
		SET is_deleted = TRUE, is_available = FALSE, deleted_at = NOW(), updated_at = NOW()
		WHERE card_id = $1 AND NOT is_deleted
	`
	querySoftDeleteGroup = `
		UPDATE cards
		SET is_deleted = TRUE, is_available = FALSE, deleted_at = NOW(), updated_at = NOW()
		WHERE country_code = $1 AND card_type = $2 AND price = $3 AND NOT is_deleted
	`
	queryRestore = `
		UPDATE cards
		SET is_deleted = FALSE, is_available = available_count > 0, deleted_at = NULL, updated_at = NOW()
		WHERE card_id = $1 AND is_deleted
	`
)

// A reservation that loses the row it picked to a concurrent buyer is
// retried while the group still has stock elsewhere.
const reserveAttempts = 3

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanCard(row pgx.Row) (*domain.Card, error) {
	var card domain.Card
	err := row.Scan(
		&card.ID, &card.CardID, &card.CardType, &card.CountryCode, &card.CountryName,
		&card.Price, &card.Value, &card.AvailableCount, &card.IsAvailable, &card.IsDeleted,
		&card.ReservedBy, &card.ReservedAt, &card.CreatedAt, &card.UpdatedAt, &card.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *Repository) GetCard(ctx context.Context, cardID string) (*domain.Card, error) {
	card, err := scanCard(r.db.QueryRow(ctx, queryGetCard, cardID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get card", zap.String("card_id", cardID), zap.Error(err))
		return nil, err
	}
	return card, nil
}

func (r *Repository) ListAvailable(ctx context.Context, filter domain.CardFilter) ([]domain.Card, error) {
	rows, err := r.db.Query(ctx, queryListAvailable, filter.CountryCode, filter.CardType)
	if err != nil {
		zap.L().Error("can't list available cards", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			zap.L().Error("can't scan card row", zap.Error(err))
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, rows.Err()
}

func (r *Repository) ListGroups(ctx context.Context, filter domain.CardFilter) ([]domain.CardGroup, error) {
	rows, err := r.db.Query(ctx, queryListGroups, filter.CountryCode, filter.CardType)
	if err != nil {
		zap.L().Error("can't list card groups", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var groups []domain.CardGroup
	for rows.Next() {
		var g domain.CardGroup
		err := rows.Scan(&g.CountryCode, &g.CardType, &g.Price, &g.CountryName, &g.Count, &g.CardIDs)
		if err != nil {
			zap.L().Error("can't scan card group row", zap.Error(err))
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// ReserveOne takes one unit from the group for buyerID. It returns nil only
// when the group has nothing left.
func (r *Repository) ReserveOne(ctx context.Context, key domain.GroupKey, buyerID int64) (*domain.Card, error) {
	for attempt := 1; attempt <= reserveAttempts; attempt++ {
		card, err := scanCard(r.db.QueryRow(ctx, queryReserveOne, key.CountryCode, key.CardType, key.Price, buyerID))
		if err == nil {
			return card, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			zap.L().Error("failed to reserve card", zap.Error(err))
			return nil, err
		}

		var inStock bool
		if err := r.db.QueryRow(ctx, queryGroupInStock, key.CountryCode, key.CardType, key.Price).Scan(&inStock); err != nil {
			zap.L().Error("failed to check group stock", zap.Error(err))
			return nil, err
		}
		if !inStock {
			return nil, nil
		}
		zap.L().Debug("reservation lost a race, retrying",
			zap.String("country_code", key.CountryCode), zap.String("card_type", key.CardType), zap.Int("attempt", attempt))
	}
	return nil, nil
}

func (r *Repository) Release(ctx context.Context, cardID string) (bool, error) {
	tag, err := r.db.Exec(ctx, queryRelease, cardID)
	if err != nil {
		zap.L().Error("failed to release card", zap.String("card_id", cardID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// BulkAdd increments the live record matching spec, or creates one.
func (r *Repository) BulkAdd(ctx context.Context, spec domain.CardSpec, quantity int) (*domain.Card, error) {
	card, err := scanCard(r.db.QueryRow(ctx, queryBulkAdd,
		uuid.NewString(), spec.CardType, spec.CountryCode, spec.CountryName, spec.Price, spec.Value, quantity))
	if err != nil {
		zap.L().Error("failed to add cards", zap.Error(err))
		return nil, err
	}
	return card, nil
}

func (r *Repository) SoftDelete(ctx context.Context, cardID string) (bool, error) {
	tag, err := r.db.Exec(ctx, querySoftDelete, cardID)
	if err != nil {
		zap.L().Error("failed to delete card", zap.String("card_id", cardID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) SoftDeleteGroup(ctx context.Context, key domain.GroupKey) (int64, error) {
	tag, err := r.db.Exec(ctx, querySoftDeleteGroup, key.CountryCode, key.CardType, key.Price)
	if err != nil {
		zap.L().Error("failed to delete card group", zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) Restore(ctx context.Context, cardID string) (bool, error) {
	tag, err := r.db.Exec(ctx, queryRestore, cardID)
	if err != nil {
		if !pg.IsUniqueViolation(err) {
			zap.L().Error("failed to restore card", zap.String("card_id", cardID), zap.Error(err))
		}
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
