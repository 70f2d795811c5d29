package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amitsingh12ap/moveassist/pkg/types"
)

// AgentQuote is the single active quote an agent keeps on a move (upserted).
type AgentQuote struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MoveID  uuid.UUID `gorm:"column:move_id;type:uuid;not null;uniqueIndex"`
	AgentID uuid.UUID `gorm:"column:agent_id;type:uuid;not null;index"`

	BasePrice     decimal.Decimal `gorm:"column:base_price;type:numeric(12,2);not null"`
	FloorCharge   decimal.Decimal `gorm:"column:floor_charge;type:numeric(12,2);not null;default:0"`
	FragileCharge decimal.Decimal `gorm:"column:fragile_charge;type:numeric(12,2);not null;default:0"`
	ExtraCharge   decimal.Decimal `gorm:"column:extra_charge;type:numeric(12,2);not null;default:0"`
	Discount      decimal.Decimal `gorm:"column:discount;type:numeric(12,2);not null;default:0"`
	Subtotal      decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Tax           decimal.Decimal `gorm:"column:tax;type:numeric(12,2);not null"`
	Total         decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`

	Notes         *string        `gorm:"column:notes;type:text"`
	ItemsSnapshot *types.JSONMap `gorm:"column:items_snapshot;type:jsonb;serializer:json"`
	SubmittedAt   time.Time      `gorm:"column:submitted_at;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
