package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type BalanceResponseDTO struct {
	Balance decimal.Decimal `json:"balance" swaggertype:"string" example:"80.5"`
}

type TransactionResponseDTO struct {
	Type        string          `json:"type" example:"card_purchase"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"-20"`
	Description string          `json:"description" example:"US VISA card"`
	Timestamp   time.Time       `json:"timestamp" example:"2026-01-02T03:04:05Z"`
}

type ChargeRequestDTO struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"50"`
	Note   string          `json:"note,omitempty" example:"USDT deposit tx 0xabc"`
}
