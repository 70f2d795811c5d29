package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amitsingh12ap/moveassist/pkg/enums"
)

// Move is the aggregate root for a household relocation.
type Move struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Title  string    `gorm:"column:title;type:text;not null"`

	FromAddress string   `gorm:"column:from_address;type:text;not null"`
	FromCity    string   `gorm:"column:from_city;type:text;not null"`
	FromLat     *float64 `gorm:"column:from_lat"`
	FromLng     *float64 `gorm:"column:from_lng"`
	ToAddress   string   `gorm:"column:to_address;type:text;not null"`
	ToCity      string   `gorm:"column:to_city;type:text;not null"`
	ToLat       *float64 `gorm:"column:to_lat"`
	ToLng       *float64 `gorm:"column:to_lng"`

	BHKType     *enums.BHKType `gorm:"column:bhk_type;type:text"`
	FloorFrom   int            `gorm:"column:floor_from;not null;default:0"`
	FloorTo     int            `gorm:"column:floor_to;not null;default:0"`
	HasLiftFrom bool           `gorm:"column:has_lift_from;not null;default:false"`
	HasLiftTo   bool           `gorm:"column:has_lift_to;not null;default:false"`
	MoveDate    *time.Time     `gorm:"column:move_date"`

	Status        enums.MoveStatus        `gorm:"column:status;type:text;not null;default:'created'"`
	PaymentStatus enums.MovePaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'"`

	AmountTotal   decimal.Decimal  `gorm:"column:amount_total;type:numeric(12,2);not null;default:0"`
	AmountPaid    decimal.Decimal  `gorm:"column:amount_paid;type:numeric(12,2);not null;default:0"`
	TokenAmount   decimal.Decimal  `gorm:"column:token_amount;type:numeric(12,2);not null;default:0"`
	TokenPaid     bool             `gorm:"column:token_paid;not null;default:false"`
	TokenPaidAt   *time.Time       `gorm:"column:token_paid_at"`
	FinalAmount   *decimal.Decimal `gorm:"column:final_amount;type:numeric(12,2)"`
	EstimatedCost *decimal.Decimal `gorm:"column:estimated_cost;type:numeric(12,2)"`
	InvoiceNumber *string          `gorm:"column:invoice_number;type:text"`

	QuoteStatus *enums.QuoteStatus `gorm:"column:quote_status;type:text"`
	AgentID     *uuid.UUID         `gorm:"column:agent_id;type:uuid;index"`

	ActivatedAt *time.Time `gorm:"column:activated_at"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	Rated       bool       `gorm:"column:rated;not null;default:false"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
