package payments

import (
	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SetPricingInput carries the manually priced totals for a move.
type SetPricingInput struct {
	MoveID    uuid.UUID
	ActorID   uuid.UUID
	ActorRole enums.UserRole
	Base      decimal.Decimal
	Surcharge decimal.Decimal
	Discount  decimal.Decimal
}

// SetPricingResult reports the computed totals.
type SetPricingResult struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	TokenAmount   decimal.Decimal `json:"token_amount"`
	InvoiceNumber string          `json:"invoice_number"`
}

// InitiateTokenInput carries a customer's token payment submission.
type InitiateTokenInput struct {
	MoveID        uuid.UUID
	UserID        uuid.UUID
	Mode          enums.PaymentMode
	TransactionID *string
	Notes         *string
}

// PayBalanceInput carries a customer's balance settlement submission.
type PayBalanceInput struct {
	MoveID        uuid.UUID
	UserID        uuid.UUID
	Mode          enums.PaymentMode
	TransactionID *string
	Notes         *string
}

// PayOnlineInput carries an auto-verified online payment of any amount.
type PayOnlineInput struct {
	MoveID        uuid.UUID
	UserID        uuid.UUID
	Amount        decimal.Decimal
	Mode          enums.PaymentMode
	TransactionID *string
}

// VerifyInput carries an admin's approve/reject decision on a payment.
type VerifyInput struct {
	PaymentID uuid.UUID
	AdminID   uuid.UUID
	Approve   bool
	Notes     *string
}

// MarkCashInput records cash collected in person by the assigned agent.
type MarkCashInput struct {
	MoveID  uuid.UUID
	AgentID uuid.UUID
	Amount  decimal.Decimal
	Notes   *string
}

// AdminMarkPaidInput records an out-of-band settlement entered by an admin.
type AdminMarkPaidInput struct {
	MoveID  uuid.UUID
	AdminID uuid.UUID
	Amount  decimal.Decimal
	Mode    enums.PaymentMode
	Notes   *string
}

// ListPendingResult wraps payments awaiting verification plus the next cursor.
type ListPendingResult struct {
	Items  []models.Payment `json:"items"`
	Cursor string           `json:"cursor"`
}
