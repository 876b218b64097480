package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Card struct {
	ID             int64           `db:"id"`
	CardID         string          `db:"card_id"`
	CardType       string          `db:"card_type"`
	CountryCode    string          `db:"country_code"`
	CountryName    string          `db:"country_name"`
	Price          decimal.Decimal `db:"price"`
	Value          decimal.Decimal `db:"value"`
	AvailableCount int             `db:"available_count"`
	IsAvailable    bool            `db:"is_available"`
	IsDeleted      bool            `db:"is_deleted"`
	ReservedBy     *int64          `db:"reserved_by"`
	ReservedAt     *time.Time      `db:"reserved_at"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
	DeletedAt      *time.Time      `db:"deleted_at"`
}

// GroupKey identifies interchangeable cards for listing, purchase and removal.
type GroupKey struct {
	CountryCode string
	CardType    string
	Price       decimal.Decimal
}

type CardGroup struct {
	GroupKey
	CountryName string
	Count       int
	CardIDs     []string
}

// CardSpec describes a bulk-add request. Records match on all four of
// country code, type, price and value.
type CardSpec struct {
	CardType    string
	CountryCode string
	CountryName string
	Price       decimal.Decimal
	Value       decimal.Decimal
}

type CardFilter struct {
	CountryCode string
	CardType    string
}

type User struct {
	UserID    int64           `db:"user_id"`
	Username  string          `db:"username"`
	FirstName string          `db:"first_name"`
	LastName  string          `db:"last_name"`
	Balance   decimal.Decimal `db:"balance"`
	CreatedAt time.Time       `db:"created_at"`
	IsActive  bool            `db:"is_active"`
}

type BlacklistEntry struct {
	UserID  int64     `db:"user_id"`
	Reason  string    `db:"reason"`
	AddedAt time.Time `db:"added_at"`
}

type TransactionType string

const (
	TransactionDeposit      TransactionType = "deposit"
	TransactionAdminCharge  TransactionType = "admin_charge"
	TransactionCardPurchase TransactionType = "card_purchase"
	TransactionPurchase     TransactionType = "purchase"
	TransactionRefund       TransactionType = "refund"
)

type Transaction struct {
	ID          int64           `db:"id"`
	UserID      int64           `db:"user_id"`
	Type        TransactionType `db:"type"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	Timestamp   time.Time       `db:"timestamp"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

func (s OrderStatus) Valid() bool {
	return s == OrderPending || s.Terminal()
}

type Order struct {
	ID          int64           `db:"id"`
	OrderID     string          `db:"order_id"`
	UserID      int64           `db:"user_id"`
	CardID      string          `db:"card_id"`
	CountryCode string          `db:"country_code"`
	CardType    string          `db:"card_type"`
	Amount      decimal.Decimal `db:"amount"`
	Status      OrderStatus     `db:"status"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	CompletedAt *time.Time      `db:"completed_at"`
	CancelledAt *time.Time      `db:"cancelled_at"`
}

type OrderStats struct {
	Status OrderStatus
	Count  int
	Total  decimal.Decimal
}

// Delivery is the fulfilment data an operator supplies for an order:
// either card details as text or an image.
type Delivery struct {
	Text    string
	Image   []byte
	Caption string
}

func (d Delivery) IsImage() bool {
	return len(d.Image) > 0
}
