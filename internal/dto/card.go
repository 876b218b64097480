package dto

import "github.com/shopspring/decimal"

type CardGroupResponseDTO struct {
	CountryCode string          `json:"country_code" example:"US"`
	CountryName string          `json:"country_name" example:"United States"`
	CardType    string          `json:"card_type" example:"VISA"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"20"`
	Available   int             `json:"available" example:"5"`
	// GroupKey is passed back as-is when placing an order.
	GroupKey string `json:"group_key" example:"US|VISA|20"`
}

type AddCardsRequestDTO struct {
	CountryCode string          `json:"country_code" example:"US"`
	CountryName string          `json:"country_name" example:"United States"`
	CardType    string          `json:"card_type" example:"VISA"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"20"`
	Value       decimal.Decimal `json:"value" swaggertype:"string" example:"25"`
	Quantity    int             `json:"quantity" example:"5"`
}

type CardResponseDTO struct {
	CardID         string          `json:"card_id" example:"6a3c0c7e-3d55-4d8a-9d0b-58a0b3b7c1f1"`
	CountryCode    string          `json:"country_code" example:"US"`
	CardType       string          `json:"card_type" example:"VISA"`
	Price          decimal.Decimal `json:"price" swaggertype:"string" example:"20"`
	Value          decimal.Decimal `json:"value" swaggertype:"string" example:"25"`
	AvailableCount int             `json:"available_count" example:"5"`
}

type DeleteGroupRequestDTO struct {
	GroupKey string `json:"group_key" example:"US|VISA|20"`
}

type DeleteGroupResponseDTO struct {
	Deleted int64 `json:"deleted" example:"3"`
}
