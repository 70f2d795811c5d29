package pricing

import (
	"context"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for pricing configs, overrides
// and persisted move estimates.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindDefaultConfig(ctx context.Context) (*models.PricingConfig, error)
	FindConfigForCity(ctx context.Context, city string) (*models.PricingConfig, error)
	FindConfig(ctx context.Context, id uuid.UUID) (*models.PricingConfig, error)
	ListConfigs(ctx context.Context) ([]models.PricingConfig, error)
	CreateConfig(ctx context.Context, cfg *models.PricingConfig) (*models.PricingConfig, error)
	UpdateConfig(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListActiveOverrides(ctx context.Context) ([]models.PricingOverride, error)
	ListOverrides(ctx context.Context) ([]models.PricingOverride, error)
	CreateOverride(ctx context.Context, override *models.PricingOverride) (*models.PricingOverride, error)
	UpdateOverride(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteOverride(ctx context.Context, id uuid.UUID) error
	UpsertEstimate(ctx context.Context, estimate *models.MoveEstimate) error
	FindEstimateByMove(ctx context.Context, moveID uuid.UUID) (*models.MoveEstimate, error)
}
