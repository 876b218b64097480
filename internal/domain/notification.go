package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrMalformedPayload marks a notification that can never be handled.
	ErrMalformedPayload = errors.New("malformed notification payload")
	// ErrRecipientUnreachable is a permanent transport failure: the user blocked
	// the bot, deleted the account or the chat does not exist.
	ErrRecipientUnreachable = errors.New("recipient unreachable")
	// ErrDeliveryRejected is a permanent transport failure for a well formed
	// request the chat platform refuses to accept.
	ErrDeliveryRejected = errors.New("delivery rejected")
)

type NotificationType string

const (
	NotificationNewOrder         NotificationType = "new_order"
	NotificationDeliverCard      NotificationType = "deliver_card"
	NotificationDeliverCardImage NotificationType = "deliver_card_image"
	NotificationOrderCompleted   NotificationType = "order_completed"
	NotificationOrderCancelled   NotificationType = "order_cancelled"
	NotificationBalanceUpdated   NotificationType = "balance_updated"
	NotificationUserBlocked      NotificationType = "user_blocked"
	NotificationUserUnblocked    NotificationType = "user_unblocked"
)

// Audience is the process that drains a notification.
type Audience string

const (
	AudienceCustomer Audience = "customer"
	AudienceOperator Audience = "operator"
)

func (t NotificationType) Audience() Audience {
	if t == NotificationNewOrder {
		return AudienceOperator
	}
	return AudienceCustomer
}

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationNewOrder,
		NotificationDeliverCard,
		NotificationDeliverCardImage,
		NotificationOrderCompleted,
		NotificationOrderCancelled,
		NotificationBalanceUpdated,
		NotificationUserBlocked,
		NotificationUserUnblocked:
		return true
	}
	return false
}

type NotificationStatus string

const (
	NotificationPending   NotificationStatus = "pending"
	NotificationProcessed NotificationStatus = "processed"
)

type Notification struct {
	ID             int64              `db:"id"`
	NotificationID string             `db:"notification_id"`
	Type           NotificationType   `db:"type"`
	Audience       Audience           `db:"audience"`
	Data           []byte             `db:"data"`
	Status         NotificationStatus `db:"status"`
	CreatedAt      time.Time          `db:"created_at"`
	ProcessedAt    *time.Time         `db:"processed_at"`
}

// Payload is the type specific body of a notification.
type Payload interface {
	Validate() error
}

func missing(field string) error {
	return fmt.Errorf("%w: %s is required", ErrMalformedPayload, field)
}

type OrderUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
}

type OrderCard struct {
	CardID      string          `json:"card_id"`
	CardType    string          `json:"card_type"`
	CountryCode string          `json:"country_code,omitempty"`
	CountryName string          `json:"country_name,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

type NewOrderPayload struct {
	OrderID   string    `json:"order_id"`
	User      OrderUser `json:"user"`
	Card      OrderCard `json:"card"`
	Timestamp time.Time `json:"timestamp"`
}

func (p NewOrderPayload) Validate() error {
	switch {
	case p.OrderID == "":
		return missing("order_id")
	case p.User.ID == 0:
		return missing("user.id")
	case p.Card.CardID == "":
		return missing("card.card_id")
	}
	return nil
}

type DeliverCardPayload struct {
	UserID      int64  `json:"user_id"`
	OrderID     string `json:"order_id"`
	CardDetails string `json:"card_details"`
}

func (p DeliverCardPayload) Validate() error {
	switch {
	case p.UserID == 0:
		return missing("user_id")
	case p.OrderID == "":
		return missing("order_id")
	case p.CardDetails == "":
		return missing("card_details")
	}
	return nil
}

// DeliverCardImagePayload carries the image bytes themselves: file ids issued
// to the operator bot are not valid for the customer bot.
type DeliverCardImagePayload struct {
	UserID  int64  `json:"user_id"`
	OrderID string `json:"order_id"`
	Image   []byte `json:"image"`
	Caption string `json:"caption,omitempty"`
}

func (p DeliverCardImagePayload) Validate() error {
	switch {
	case p.UserID == 0:
		return missing("user_id")
	case p.OrderID == "":
		return missing("order_id")
	case len(p.Image) == 0:
		return missing("image")
	}
	return nil
}

type OrderCompletedPayload struct {
	UserID  int64  `json:"user_id"`
	OrderID string `json:"order_id"`
	Message string `json:"message"`
}

func (p OrderCompletedPayload) Validate() error {
	switch {
	case p.UserID == 0:
		return missing("user_id")
	case p.OrderID == "":
		return missing("order_id")
	case p.Message == "":
		return missing("message")
	}
	return nil
}

type OrderCancelledPayload struct {
	UserID   int64           `json:"user_id"`
	OrderID  string          `json:"order_id"`
	Refunded decimal.Decimal `json:"refunded"`
	Message  string          `json:"message,omitempty"`
}

func (p OrderCancelledPayload) Validate() error {
	switch {
	case p.UserID == 0:
		return missing("user_id")
	case p.OrderID == "":
		return missing("order_id")
	}
	return nil
}

type BalanceUpdatedPayload struct {
	UserID  int64           `json:"user_id"`
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
	Message string          `json:"message,omitempty"`
}

func (p BalanceUpdatedPayload) Validate() error {
	switch {
	case p.UserID == 0:
		return missing("user_id")
	case p.Amount.IsZero():
		return missing("amount")
	}
	return nil
}

type UserBlockedPayload struct {
	UserID int64  `json:"user_id"`
	Reason string `json:"reason,omitempty"`
}

func (p UserBlockedPayload) Validate() error {
	if p.UserID == 0 {
		return missing("user_id")
	}
	return nil
}

type UserUnblockedPayload struct {
	UserID int64 `json:"user_id"`
}

func (p UserUnblockedPayload) Validate() error {
	if p.UserID == 0 {
		return missing("user_id")
	}
	return nil
}
