package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amitsingh12ap/moveassist/pkg/enums"
)

// Payment records a single token or balance settlement attempt on a move.
// A partial unique index keeps at most one under_verification row per
// (move_id, payment_type).
type Payment struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MoveID uuid.UUID `gorm:"column:move_id;type:uuid;not null;index"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`

	Amount      decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	Mode        enums.PaymentMode   `gorm:"column:mode;type:text;not null"`
	Status      enums.PaymentStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	PaymentType enums.PaymentType   `gorm:"column:payment_type;type:text;not null"`

	TransactionID *string `gorm:"column:transaction_id;type:text"`
	GatewayRef    *string `gorm:"column:gateway_ref;type:text"`
	Notes         *string `gorm:"column:notes;type:text"`

	RecordedBy *uuid.UUID `gorm:"column:recorded_by;type:uuid"`
	VerifiedBy *uuid.UUID `gorm:"column:verified_by;type:uuid"`
	VerifiedAt *time.Time `gorm:"column:verified_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
