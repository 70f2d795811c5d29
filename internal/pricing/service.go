package pricing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
)

// EstimateInput extends the engine input with an optional move to persist
// the breakdown against.
type EstimateInput struct {
	Input
	MoveID *uuid.UUID
}

// Service exposes the pricing engine plus admin config management.
type Service interface {
	Estimate(ctx context.Context, input EstimateInput) (*Breakdown, error)
	EstimateTx(ctx context.Context, tx *gorm.DB, input EstimateInput) (*Breakdown, error)
	GetMoveEstimate(ctx context.Context, moveID uuid.UUID) (*models.MoveEstimate, error)
	ListConfigs(ctx context.Context) ([]models.PricingConfig, error)
	CreateConfig(ctx context.Context, cfg *models.PricingConfig) (*models.PricingConfig, error)
	UpdateConfig(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListOverrides(ctx context.Context) ([]models.PricingOverride, error)
	CreateOverride(ctx context.Context, override *models.PricingOverride) (*models.PricingOverride, error)
	UpdateOverride(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteOverride(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a pricing service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Estimate(ctx context.Context, input EstimateInput) (*Breakdown, error) {
	return s.EstimateTx(ctx, nil, input)
}

// EstimateTx computes a breakdown and, when a move id is supplied, upserts
// the persisted estimate inside the caller's transaction.
func (s *service) EstimateTx(ctx context.Context, tx *gorm.DB, input EstimateInput) (*Breakdown, error) {
	if input.DistanceKm < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distance cannot be negative")
	}
	if input.FloorFrom < 0 || input.FloorTo < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "floor numbers cannot be negative")
	}
	if input.BHKType != nil && !input.BHKType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid bhk type")
	}

	repo := s.repo.WithTx(tx)

	cfg, err := s.resolveConfig(ctx, repo, input.FromCity)
	if err != nil {
		return nil, err
	}
	overrides, err := repo.ListActiveOverrides(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pricing overrides")
	}

	breakdown := Compute(cfg, overrides, input.Input)

	if input.MoveID != nil {
		configID := cfg.ID
		estimate := &models.MoveEstimate{
			MoveID:         *input.MoveID,
			BaseCost:       breakdown.BaseCost,
			DistanceCharge: breakdown.DistanceCharge,
			FloorCharge:    breakdown.FloorCharge,
			ItemsCharge:    breakdown.ItemsCharge,
			BoxesCharge:    breakdown.BoxesCharge,
			PackingCharge:  breakdown.PackingCharge,
			FragileCharge:  breakdown.FragileCharge,
			LaborCharge:    breakdown.LaborCharge,
			Subtotal:       breakdown.Subtotal,
			Tax:            breakdown.Tax,
			Total:          breakdown.Total,
			EstimateLow:    breakdown.EstimateLow,
			EstimateHigh:   breakdown.EstimateHigh,
			ConfigID:       &configID,
		}
		if err := repo.UpsertEstimate(ctx, estimate); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist estimate")
		}
	}
	return &breakdown, nil
}

func (s *service) resolveConfig(ctx context.Context, repo Repository, fromCity string) (*models.PricingConfig, error) {
	if fromCity != "" {
		cfg, err := repo.FindConfigForCity(ctx, fromCity)
		if err == nil {
			return cfg, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load city pricing config")
		}
	}
	cfg, err := repo.FindDefaultConfig(ctx)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeDependency, "no active pricing config")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load default pricing config")
	}
	return cfg, nil
}

func (s *service) GetMoveEstimate(ctx context.Context, moveID uuid.UUID) (*models.MoveEstimate, error) {
	if moveID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id required")
	}
	estimate, err := s.repo.FindEstimateByMove(ctx, moveID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "estimate not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load estimate")
	}
	return estimate, nil
}

func (s *service) ListConfigs(ctx context.Context) ([]models.PricingConfig, error) {
	configs, err := s.repo.ListConfigs(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pricing configs")
	}
	return configs, nil
}

func (s *service) CreateConfig(ctx context.Context, cfg *models.PricingConfig) (*models.PricingConfig, error) {
	if cfg == nil || cfg.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "config name required")
	}
	created, err := s.repo.CreateConfig(ctx, cfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create pricing config")
	}
	return created, nil
}

func (s *service) UpdateConfig(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "config id required")
	}
	if len(updates) == 0 {
		return nil
	}
	if err := s.repo.UpdateConfig(ctx, id, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update pricing config")
	}
	return nil
}

func (s *service) ListOverrides(ctx context.Context) ([]models.PricingOverride, error) {
	overrides, err := s.repo.ListOverrides(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pricing overrides")
	}
	return overrides, nil
}

func (s *service) CreateOverride(ctx context.Context, override *models.PricingOverride) (*models.PricingOverride, error) {
	if override == nil || override.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "override name required")
	}
	routeScoped := override.FromCity != nil && override.ToCity != nil
	rangeScoped := override.MinKm != nil && override.MaxKm != nil
	if !routeScoped && !rangeScoped {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "override needs a route or a distance range")
	}
	created, err := s.repo.CreateOverride(ctx, override)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create pricing override")
	}
	return created, nil
}

func (s *service) UpdateOverride(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "override id required")
	}
	if len(updates) == 0 {
		return nil
	}
	if err := s.repo.UpdateOverride(ctx, id, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update pricing override")
	}
	return nil
}

func (s *service) DeleteOverride(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "override id required")
	}
	if err := s.repo.DeleteOverride(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete pricing override")
	}
	return nil
}
