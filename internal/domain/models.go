package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	BatchSourcePurchase    = "purchase"
	BatchSourceSignupBonus = "signup_bonus"
)

const (
	ReservationStatusReserved  = "reserved"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusReleased  = "released"
)

const (
	JobKindStory = "story"
	JobKindBook  = "book"
)

const (
	TransactionKindPurchase = "purchase"
	TransactionKindRefund   = "refund"
)

const (
	TransactionStatusCompleted = "completed"
	TransactionStatusRefunded  = "refunded"
)

type User struct {
	ID           uuid.UUID `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// CreditBatch is one discrete grant of credit with its own remaining
// balance. Batches are consumed oldest-first and never deleted.
type CreditBatch struct {
	ID              uuid.UUID       `db:"id"`
	UserID          uuid.UUID       `db:"user_id"`
	OriginalAmount  decimal.Decimal `db:"original_amount"`
	RemainingAmount decimal.Decimal `db:"remaining_amount"`
	Source          string          `db:"source"`
	TransactionID   *uuid.UUID      `db:"transaction_id"`
	IsRefunded      bool            `db:"is_refunded"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// BatchDraw records how much of a reservation was funded by one batch.
// The ordered draw list is what Release walks to restore balances.
type BatchDraw struct {
	BatchID uuid.UUID       `json:"batch_id"`
	Amount  decimal.Decimal `json:"amount"`
}

// Reservation is the audit record for one attempted charge. Status moves
// from reserved to exactly one of confirmed or released.
type Reservation struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.UUID       `db:"user_id"`
	JobID       uuid.UUID       `db:"job_id"`
	JobKind     string          `db:"job_kind"`
	Amount      decimal.Decimal `db:"amount"`
	Status      string          `db:"status"`
	Description string          `db:"description"`
	Metadata    map[string]any  `db:"metadata"`
	Consumption []BatchDraw     `db:"consumption"`
	ReservedAt  time.Time       `db:"reserved_at"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// Transaction is one immutable external payment event. A refund never
// rewrites the purchase row; it flips its status and adds a refund row.
type Transaction struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.UUID       `db:"user_id"`
	Amount    decimal.Decimal `db:"amount"`
	Kind      string          `db:"kind"`
	Status    string          `db:"status"`
	SessionID string          `db:"session_id"`
	EventID   string          `db:"event_id"`
	Metadata  map[string]any  `db:"metadata"`
	CreatedAt time.Time       `db:"created_at"`
}

type PricingEntry struct {
	ID           uuid.UUID       `db:"id"`
	Operation    string          `db:"operation"`
	Cost         decimal.Decimal `db:"cost"`
	Description  string          `db:"description"`
	DisplayName  string          `db:"display_name"`
	IsImageModel bool            `db:"is_image_model"`
	DisplayOrder int             `db:"display_order"`
	IsActive     bool            `db:"is_active"`
}
