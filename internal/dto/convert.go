package dto

import (
	"github.com/GlebRadaev/cardstore/internal/domain"
)

func NewOrderResponse(o domain.Order) OrderResponseDTO {
	return OrderResponseDTO{
		OrderID:     o.OrderID,
		UserID:      o.UserID,
		CardID:      o.CardID,
		CountryCode: o.CountryCode,
		CardType:    o.CardType,
		Amount:      o.Amount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		CompletedAt: o.CompletedAt,
		CancelledAt: o.CancelledAt,
	}
}

func NewOrdersResponse(orders []domain.Order) []OrderResponseDTO {
	response := make([]OrderResponseDTO, 0, len(orders))
	for _, o := range orders {
		response = append(response, NewOrderResponse(o))
	}
	return response
}

func NewCardResponse(c domain.Card) CardResponseDTO {
	return CardResponseDTO{
		CardID:         c.CardID,
		CountryCode:    c.CountryCode,
		CardType:       c.CardType,
		Price:          c.Price,
		Value:          c.Value,
		AvailableCount: c.AvailableCount,
	}
}
