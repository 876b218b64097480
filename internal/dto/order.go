package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type PlaceOrderRequestDTO struct {
	GroupKey string `json:"group_key" example:"US|VISA|20"`
}

type OrderResponseDTO struct {
	OrderID     string          `json:"order_id" example:"0190c1a2-7b2e-7000-8000-000000000001"`
	UserID      int64           `json:"user_id" example:"123456789"`
	CardID      string          `json:"card_id" example:"6a3c0c7e-3d55-4d8a-9d0b-58a0b3b7c1f1"`
	CountryCode string          `json:"country_code" example:"US"`
	CardType    string          `json:"card_type" example:"VISA"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"20"`
	Status      string          `json:"status" example:"pending"`
	CreatedAt   time.Time       `json:"created_at" example:"2026-01-02T03:04:05Z"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CancelledAt *time.Time      `json:"cancelled_at,omitempty"`
}

type CancelOrderRequestDTO struct {
	Reason string `json:"reason,omitempty" example:"card out of stock at supplier"`
}

// DeliverOrderRequestDTO carries either card details or an image.
type DeliverOrderRequestDTO struct {
	Text    string `json:"text,omitempty" example:"CODE-1234-5678"`
	Image   []byte `json:"image,omitempty" swaggertype:"string" format:"base64"`
	Caption string `json:"caption,omitempty" example:"Your card"`
}

type OrderStatsResponseDTO struct {
	Status string          `json:"status" example:"completed"`
	Count  int             `json:"count" example:"12"`
	Total  decimal.Decimal `json:"total" swaggertype:"string" example:"240"`
}
