package dto

// PaymentEventRequestDTO is one payment-provider event delivered to the
// webhook. Purchases carry the credited amount; refunds reference the
// purchase through the checkout session id.
type PaymentEventRequestDTO struct {
	UserID    string         `json:"user_id" validate:"required,uuid" example:"7a6c2b1e-9d44-4f1b-8c5e-2f0a6b3d9e11"`
	Amount    float64        `json:"amount" validate:"required,gt=0" example:"10"`
	Kind      string         `json:"kind" validate:"required,oneof=purchase refund" example:"purchase"`
	SessionID string         `json:"session_id,omitempty" example:"cs_test_a1b2c3"`
	EventID   string         `json:"event_id,omitempty" example:"evt_1Nv0k2"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type PaymentEventResponseDTO struct {
	Message string `json:"message"`
}
