package dto

import "time"

type BalanceResponseDTO struct {
	Balance float64 `json:"balance" example:"12.5"`
}

type PricingEntryDTO struct {
	Operation    string  `json:"operation" example:"story_generation"`
	Cost         float64 `json:"cost" example:"1"`
	Description  string  `json:"description,omitempty" example:"One generated story"`
	DisplayName  string  `json:"display_name,omitempty" example:"Story"`
	IsImageModel bool    `json:"is_image_model" example:"false"`
}

type UsageEntryDTO struct {
	ID          string    `json:"id" example:"7a6c2b1e-9d44-4f1b-8c5e-2f0a6b3d9e11"`
	JobID       string    `json:"job_id" example:"3f2d8c4a-1b6e-4e9d-9a7c-5d0e8f2b4c6a"`
	JobKind     string    `json:"job_kind" example:"story"`
	Amount      float64   `json:"amount" example:"1"`
	Status      string    `json:"status" example:"confirmed"`
	Description string    `json:"description,omitempty" example:"Story generation"`
	ReservedAt  time.Time `json:"reserved_at" example:"2025-01-09T16:09:57+03:00"`
}
