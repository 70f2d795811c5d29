package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingConfig holds the tunable inputs of the pricing engine. One config
// is flagged default; city-scoped configs win over it when they match.
type PricingConfig struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;type:text;not null"`
	City      *string   `gorm:"column:city;type:text;index"`
	IsDefault bool      `gorm:"column:is_default;not null;default:false"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`

	BaseStudio decimal.Decimal `gorm:"column:base_studio;type:numeric(12,2);not null"`
	Base1BHK   decimal.Decimal `gorm:"column:base_1bhk;type:numeric(12,2);not null"`
	Base2BHK   decimal.Decimal `gorm:"column:base_2bhk;type:numeric(12,2);not null"`
	Base3BHK   decimal.Decimal `gorm:"column:base_3bhk;type:numeric(12,2);not null"`
	Base4BHK   decimal.Decimal `gorm:"column:base_4bhk;type:numeric(12,2);not null"`

	RatePerKmLocal     decimal.Decimal `gorm:"column:rate_per_km_local;type:numeric(12,2);not null;default:0"`
	RatePerKmRegional  decimal.Decimal `gorm:"column:rate_per_km_regional;type:numeric(12,2);not null;default:0"`
	RatePerKmIntercity decimal.Decimal `gorm:"column:rate_per_km_intercity;type:numeric(12,2);not null;default:0"`
	LocalMaxKm         int             `gorm:"column:local_max_km;not null;default:50"`
	RegionalMaxKm      int             `gorm:"column:regional_max_km;not null;default:300"`

	ItemRate  decimal.Decimal `gorm:"column:item_rate;type:numeric(12,2);not null;default:0"`
	BoxRate   decimal.Decimal `gorm:"column:box_rate;type:numeric(12,2);not null;default:0"`
	FloorRate decimal.Decimal `gorm:"column:floor_rate;type:numeric(12,2);not null;default:0"`

	PackingPercent decimal.Decimal `gorm:"column:packing_percent;type:numeric(6,2);not null;default:0"`
	FragileFlat    decimal.Decimal `gorm:"column:fragile_flat;type:numeric(12,2);not null;default:0"`
	FragilePercent decimal.Decimal `gorm:"column:fragile_percent;type:numeric(6,2);not null;default:0"`

	LaborCostPerPerson decimal.Decimal `gorm:"column:labor_cost_per_person;type:numeric(12,2);not null;default:0"`
	LaborCrewSize      int             `gorm:"column:labor_crew_size;not null;default:0"`

	GSTPercent        decimal.Decimal `gorm:"column:gst_percent;type:numeric(6,2);not null;default:18"`
	ProfitMarginPct   decimal.Decimal `gorm:"column:profit_margin_pct;type:numeric(6,2);not null;default:0"`
	SeasonalAdjustPct decimal.Decimal `gorm:"column:seasonal_adjust_pct;type:numeric(6,2);not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// PricingOverride replaces base and distance pricing when a route or
// distance range matches. Route overrides win over distance-range ones.
type PricingOverride struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name     string    `gorm:"column:name;type:text;not null"`
	IsActive bool      `gorm:"column:is_active;not null;default:true"`

	FromCity *string `gorm:"column:from_city;type:text"`
	ToCity   *string `gorm:"column:to_city;type:text"`
	MinKm    *int    `gorm:"column:min_km"`
	MaxKm    *int    `gorm:"column:max_km"`

	BaseStudio *decimal.Decimal `gorm:"column:base_studio;type:numeric(12,2)"`
	Base1BHK   *decimal.Decimal `gorm:"column:base_1bhk;type:numeric(12,2)"`
	Base2BHK   *decimal.Decimal `gorm:"column:base_2bhk;type:numeric(12,2)"`
	Base3BHK   *decimal.Decimal `gorm:"column:base_3bhk;type:numeric(12,2)"`
	Base4BHK   *decimal.Decimal `gorm:"column:base_4bhk;type:numeric(12,2)"`
	RatePerKm  *decimal.Decimal `gorm:"column:rate_per_km;type:numeric(12,2)"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// MoveEstimate persists the latest pricing breakdown computed for a move.
type MoveEstimate struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MoveID uuid.UUID `gorm:"column:move_id;type:uuid;not null;uniqueIndex"`

	BaseCost       decimal.Decimal `gorm:"column:base_cost;type:numeric(12,2);not null"`
	DistanceCharge decimal.Decimal `gorm:"column:distance_charge;type:numeric(12,2);not null;default:0"`
	FloorCharge    decimal.Decimal `gorm:"column:floor_charge;type:numeric(12,2);not null;default:0"`
	ItemsCharge    decimal.Decimal `gorm:"column:items_charge;type:numeric(12,2);not null;default:0"`
	BoxesCharge    decimal.Decimal `gorm:"column:boxes_charge;type:numeric(12,2);not null;default:0"`
	PackingCharge  decimal.Decimal `gorm:"column:packing_charge;type:numeric(12,2);not null;default:0"`
	FragileCharge  decimal.Decimal `gorm:"column:fragile_charge;type:numeric(12,2);not null;default:0"`
	LaborCharge    decimal.Decimal `gorm:"column:labor_charge;type:numeric(12,2);not null;default:0"`
	Subtotal       decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Tax            decimal.Decimal `gorm:"column:tax;type:numeric(12,2);not null"`
	Total          decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
	EstimateLow    decimal.Decimal `gorm:"column:estimate_low;type:numeric(12,2);not null"`
	EstimateHigh   decimal.Decimal `gorm:"column:estimate_high;type:numeric(12,2);not null"`

	ConfigID *uuid.UUID `gorm:"column:config_id;type:uuid"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
