package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	"github.com/amitsingh12ap/moveassist/pkg/geo"
)

// Input captures everything the engine needs to price a move. The engine is
// pure: identical inputs against the same config always produce the same
// breakdown.
type Input struct {
	BHKType        *enums.BHKType
	DistanceKm     float64
	FloorFrom      int
	FloorTo        int
	HasLiftFrom    bool
	HasLiftTo      bool
	HasFragile     bool
	FurnitureCount int
	BoxCount       int
	FromCity       string
	ToCity         string
}

// Breakdown is the line-by-line pricing result. Every line is rounded to
// whole rupees before summing.
type Breakdown struct {
	BaseCost       decimal.Decimal `json:"base_cost"`
	DistanceCharge decimal.Decimal `json:"distance_charge"`
	FloorCharge    decimal.Decimal `json:"floor_charge"`
	ItemsCharge    decimal.Decimal `json:"items_charge"`
	BoxesCharge    decimal.Decimal `json:"boxes_charge"`
	PackingCharge  decimal.Decimal `json:"packing_charge"`
	FragileCharge  decimal.Decimal `json:"fragile_charge"`
	LaborCharge    decimal.Decimal `json:"labor_charge"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
	EstimateLow    decimal.Decimal `json:"estimate_low"`
	EstimateHigh   decimal.Decimal `json:"estimate_high"`

	DistanceTier enums.DistanceTier `json:"distance_tier"`
}

var hundred = decimal.NewFromInt(100)

// Compute prices the input against the config, consulting overrides for
// route- or distance-matched replacements of base and per-km rates.
func Compute(cfg *models.PricingConfig, overrides []models.PricingOverride, input Input) Breakdown {
	override := matchOverride(overrides, input)

	base := baseFor(cfg, override, input.BHKType).Round(0)

	tier := tierFor(cfg, input.DistanceKm)
	rate := rateForTier(cfg, tier)
	if override != nil && override.RatePerKm != nil {
		rate = *override.RatePerKm
	}
	distance := decimal.NewFromFloat(input.DistanceKm).Mul(rate).Round(0)

	floor := decimal.Zero
	if input.FloorFrom > 0 && !input.HasLiftFrom {
		floor = floor.Add(cfg.FloorRate.Mul(decimal.NewFromInt(int64(input.FloorFrom))))
	}
	if input.FloorTo > 0 && !input.HasLiftTo {
		floor = floor.Add(cfg.FloorRate.Mul(decimal.NewFromInt(int64(input.FloorTo))))
	}
	floor = floor.Round(0)

	items := cfg.ItemRate.Mul(decimal.NewFromInt(int64(input.FurnitureCount))).Round(0)
	boxes := cfg.BoxRate.Mul(decimal.NewFromInt(int64(input.BoxCount))).Round(0)

	packing := base.Mul(cfg.PackingPercent).Div(hundred).Round(0)

	fragile := decimal.Zero
	if input.HasFragile {
		fragile = cfg.FragileFlat.Add(base.Mul(cfg.FragilePercent).Div(hundred)).Round(0)
	}

	labor := cfg.LaborCostPerPerson.Mul(decimal.NewFromInt(int64(cfg.LaborCrewSize))).Round(0)

	subtotal := base.Add(distance).Add(floor).Add(items).Add(boxes).Add(packing).Add(fragile).Add(labor)
	tax := subtotal.Mul(cfg.GSTPercent).Div(hundred).Round(0)
	total := subtotal.Add(tax)

	if cfg.ProfitMarginPct.IsPositive() {
		total = total.Mul(hundred.Add(cfg.ProfitMarginPct)).Div(hundred).Round(0)
	}
	if !cfg.SeasonalAdjustPct.IsZero() {
		total = total.Mul(hundred.Add(cfg.SeasonalAdjustPct)).Div(hundred).Round(0)
	}

	return Breakdown{
		BaseCost:       base,
		DistanceCharge: distance,
		FloorCharge:    floor,
		ItemsCharge:    items,
		BoxesCharge:    boxes,
		PackingCharge:  packing,
		FragileCharge:  fragile,
		LaborCharge:    labor,
		Subtotal:       subtotal,
		Tax:            tax,
		Total:          total,
		EstimateLow:    total.Mul(decimal.NewFromFloat(0.9)).Round(0),
		EstimateHigh:   total.Mul(decimal.NewFromFloat(1.1)).Round(0),
		DistanceTier:   tier,
	}
}

// TokenAmount returns the booking token, fixed at the given percent of total.
func TokenAmount(total decimal.Decimal, percent int) decimal.Decimal {
	return total.Mul(decimal.NewFromInt(int64(percent))).Div(hundred).Round(0)
}

func baseFor(cfg *models.PricingConfig, override *models.PricingOverride, bhk *enums.BHKType) decimal.Decimal {
	kind := enums.BHK2
	if bhk != nil {
		kind = *bhk
	}
	if override != nil {
		if v := overrideBase(override, kind); v != nil {
			return *v
		}
	}
	switch kind {
	case enums.BHKStudio:
		return cfg.BaseStudio
	case enums.BHK1:
		return cfg.Base1BHK
	case enums.BHK2:
		return cfg.Base2BHK
	case enums.BHK3:
		return cfg.Base3BHK
	case enums.BHK4:
		return cfg.Base4BHK
	default:
		// Proportional fallback for unmapped sizes, scaled off the 2bhk base.
		return cfg.Base2BHK.Mul(decimal.NewFromInt(int64(bhkNumber(kind)))).Div(decimal.NewFromInt(2))
	}
}

func overrideBase(override *models.PricingOverride, kind enums.BHKType) *decimal.Decimal {
	switch kind {
	case enums.BHKStudio:
		return override.BaseStudio
	case enums.BHK1:
		return override.Base1BHK
	case enums.BHK2:
		return override.Base2BHK
	case enums.BHK3:
		return override.Base3BHK
	case enums.BHK4:
		return override.Base4BHK
	default:
		return nil
	}
}

func bhkNumber(kind enums.BHKType) int {
	switch kind {
	case enums.BHKStudio, enums.BHK1:
		return 1
	case enums.BHK2:
		return 2
	case enums.BHK3:
		return 3
	case enums.BHK4:
		return 4
	default:
		return 2
	}
}

func tierFor(cfg *models.PricingConfig, km float64) enums.DistanceTier {
	switch {
	case km <= float64(cfg.LocalMaxKm):
		return enums.DistanceTierLocal
	case km <= float64(cfg.RegionalMaxKm):
		return enums.DistanceTierRegional
	default:
		return enums.DistanceTierIntercity
	}
}

func rateForTier(cfg *models.PricingConfig, tier enums.DistanceTier) decimal.Decimal {
	switch tier {
	case enums.DistanceTierLocal:
		return cfg.RatePerKmLocal
	case enums.DistanceTierRegional:
		return cfg.RatePerKmRegional
	default:
		return cfg.RatePerKmIntercity
	}
}

// matchOverride returns the first applicable override. Route matches win over
// distance-range matches.
func matchOverride(overrides []models.PricingOverride, input Input) *models.PricingOverride {
	var rangeMatch *models.PricingOverride
	from := geo.NormalizeCity(input.FromCity)
	to := geo.NormalizeCity(input.ToCity)

	for i := range overrides {
		o := &overrides[i]
		if !o.IsActive {
			continue
		}
		if o.FromCity != nil && o.ToCity != nil {
			if geo.NormalizeCity(*o.FromCity) == from && geo.NormalizeCity(*o.ToCity) == to {
				return o
			}
			continue
		}
		if rangeMatch == nil && o.MinKm != nil && o.MaxKm != nil {
			if input.DistanceKm >= float64(*o.MinKm) && input.DistanceKm <= float64(*o.MaxKm) {
				rangeMatch = o
			}
		}
	}
	return rangeMatch
}
