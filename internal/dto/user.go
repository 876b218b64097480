package dto

import "time"

type BlockRequestDTO struct {
	Reason string `json:"reason,omitempty" example:"chargeback"`
}

type BlacklistEntryDTO struct {
	UserID  int64     `json:"user_id" example:"123456789"`
	Reason  string    `json:"reason" example:"chargeback"`
	AddedAt time.Time `json:"added_at" example:"2026-01-02T03:04:05Z"`
}
