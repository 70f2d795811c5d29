package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
)

func standardConfig() *models.PricingConfig {
	return &models.PricingConfig{
		Name:               "standard",
		IsDefault:          true,
		IsActive:           true,
		BaseStudio:         decimal.NewFromInt(2999),
		Base1BHK:           decimal.NewFromInt(4999),
		Base2BHK:           decimal.NewFromInt(7999),
		Base3BHK:           decimal.NewFromInt(11999),
		Base4BHK:           decimal.NewFromInt(16999),
		LocalMaxKm:         50,
		RegionalMaxKm:      300,
		ItemRate:           decimal.NewFromInt(150),
		BoxRate:            decimal.NewFromInt(80),
		FloorRate:          decimal.NewFromInt(500),
		FragileFlat:        decimal.NewFromInt(999),
		GSTPercent:         decimal.NewFromInt(18),
		PackingPercent:     decimal.Zero,
		FragilePercent:     decimal.Zero,
		LaborCostPerPerson: decimal.Zero,
		ProfitMarginPct:    decimal.Zero,
		SeasonalAdjustPct:  decimal.Zero,
	}
}

func TestComputeStandardScenario(t *testing.T) {
	bhk := enums.BHK2
	got := Compute(standardConfig(), nil, Input{
		BHKType:     &bhk,
		FloorFrom:   3,
		FloorTo:     0,
		HasLiftFrom: false,
		HasLiftTo:   true,
		HasFragile:  true,
	})

	require.True(t, got.BaseCost.Equal(decimal.NewFromInt(7999)), "base %s", got.BaseCost)
	require.True(t, got.FloorCharge.Equal(decimal.NewFromInt(1500)), "floor %s", got.FloorCharge)
	require.True(t, got.FragileCharge.Equal(decimal.NewFromInt(999)), "fragile %s", got.FragileCharge)
	require.True(t, got.Subtotal.Equal(decimal.NewFromInt(10498)), "subtotal %s", got.Subtotal)
	require.True(t, got.Tax.Equal(decimal.NewFromInt(1890)), "tax %s", got.Tax)
	require.True(t, got.Total.Equal(decimal.NewFromInt(12388)), "total %s", got.Total)
}

func TestTokenAmount(t *testing.T) {
	token := TokenAmount(decimal.NewFromInt(12388), 10)
	require.True(t, token.Equal(decimal.NewFromInt(1239)), "token %s", token)
}

func TestComputeDeterministic(t *testing.T) {
	bhk := enums.BHK3
	input := Input{
		BHKType:        &bhk,
		DistanceKm:     42.5,
		FloorFrom:      2,
		FloorTo:        4,
		HasFragile:     true,
		FurnitureCount: 7,
		BoxCount:       12,
	}
	cfg := standardConfig()
	cfg.RatePerKmLocal = decimal.NewFromInt(30)

	first := Compute(cfg, nil, input)
	second := Compute(cfg, nil, input)
	require.Equal(t, first, second)
}

func TestComputeDistanceTiers(t *testing.T) {
	cfg := standardConfig()
	cfg.RatePerKmLocal = decimal.NewFromInt(30)
	cfg.RatePerKmRegional = decimal.NewFromInt(20)
	cfg.RatePerKmIntercity = decimal.NewFromInt(12)
	bhk := enums.BHK1

	cases := []struct {
		name string
		km   float64
		tier enums.DistanceTier
		want int64
	}{
		{"local", 10, enums.DistanceTierLocal, 300},
		{"regional", 120, enums.DistanceTierRegional, 2400},
		{"intercity", 500, enums.DistanceTierIntercity, 6000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Compute(cfg, nil, Input{BHKType: &bhk, DistanceKm: tc.km})
			require.Equal(t, tc.tier, got.DistanceTier)
			require.True(t, got.DistanceCharge.Equal(decimal.NewFromInt(tc.want)), "distance %s", got.DistanceCharge)
		})
	}
}

func TestComputeRouteOverrideWins(t *testing.T) {
	cfg := standardConfig()
	cfg.RatePerKmIntercity = decimal.NewFromInt(12)
	bhk := enums.BHK2

	from := "Bengaluru"
	to := "Chennai"
	routeRate := decimal.NewFromInt(9)
	routeBase := decimal.NewFromInt(8999)
	minKm := 200
	maxKm := 600
	rangeRate := decimal.NewFromInt(11)

	overrides := []models.PricingOverride{
		{
			Name:      "long haul",
			IsActive:  true,
			MinKm:     &minKm,
			MaxKm:     &maxKm,
			RatePerKm: &rangeRate,
		},
		{
			Name:      "blr-maa corridor",
			IsActive:  true,
			FromCity:  &from,
			ToCity:    &to,
			RatePerKm: &routeRate,
			Base2BHK:  &routeBase,
		},
	}

	got := Compute(cfg, overrides, Input{
		BHKType:    &bhk,
		DistanceKm: 350,
		FromCity:   "bengaluru",
		ToCity:     " Chennai ",
	})
	require.True(t, got.BaseCost.Equal(routeBase), "base %s", got.BaseCost)
	require.True(t, got.DistanceCharge.Equal(decimal.NewFromInt(3150)), "distance %s", got.DistanceCharge)

	// Without a route match the distance-range override applies instead.
	got = Compute(cfg, overrides, Input{
		BHKType:    &bhk,
		DistanceKm: 350,
		FromCity:   "Mumbai",
		ToCity:     "Pune",
	})
	require.True(t, got.DistanceCharge.Equal(decimal.NewFromInt(3850)), "distance %s", got.DistanceCharge)
}

func TestComputeBaseFallbackWithoutBHK(t *testing.T) {
	got := Compute(standardConfig(), nil, Input{})
	require.True(t, got.BaseCost.Equal(decimal.NewFromInt(7999)), "base %s", got.BaseCost)
}

func TestComputeCompoundingAdjustments(t *testing.T) {
	cfg := standardConfig()
	cfg.ProfitMarginPct = decimal.NewFromInt(10)
	cfg.SeasonalAdjustPct = decimal.NewFromInt(5)
	bhk := enums.BHKStudio

	got := Compute(cfg, nil, Input{BHKType: &bhk})
	// 2999 + 18% GST = 3539; ×1.10 = 3893; ×1.05 = 4088 (rounded per step).
	require.True(t, got.Total.Equal(decimal.NewFromInt(4088)), "total %s", got.Total)
	require.True(t, got.EstimateLow.Equal(decimal.NewFromInt(3679)), "low %s", got.EstimateLow)
	require.True(t, got.EstimateHigh.Equal(decimal.NewFromInt(4497)), "high %s", got.EstimateHigh)
}
