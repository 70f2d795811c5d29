package pricing

import (
	"context"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/geo"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a pricing repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindDefaultConfig(ctx context.Context) (*models.PricingConfig, error) {
	var cfg models.PricingConfig
	err := r.db.WithContext(ctx).
		Where("is_default = TRUE AND is_active = TRUE").
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *repository) FindConfigForCity(ctx context.Context, city string) (*models.PricingConfig, error) {
	var cfg models.PricingConfig
	err := r.db.WithContext(ctx).
		Where("is_active = TRUE AND LOWER(city) = ?", geo.NormalizeCity(city)).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *repository) FindConfig(ctx context.Context, id uuid.UUID) (*models.PricingConfig, error) {
	var cfg models.PricingConfig
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *repository) ListConfigs(ctx context.Context) ([]models.PricingConfig, error) {
	var configs []models.PricingConfig
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&configs).Error
	return configs, err
}

func (r *repository) CreateConfig(ctx context.Context, cfg *models.PricingConfig) (*models.PricingConfig, error) {
	if err := r.db.WithContext(ctx).Create(cfg).Error; err != nil {
		return nil, err
	}
	return cfg, nil
}

func (r *repository) UpdateConfig(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.PricingConfig{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ListActiveOverrides(ctx context.Context) ([]models.PricingOverride, error) {
	var overrides []models.PricingOverride
	err := r.db.WithContext(ctx).
		Where("is_active = TRUE").
		Order("created_at ASC").
		Find(&overrides).Error
	return overrides, err
}

func (r *repository) ListOverrides(ctx context.Context) ([]models.PricingOverride, error) {
	var overrides []models.PricingOverride
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&overrides).Error
	return overrides, err
}

func (r *repository) CreateOverride(ctx context.Context, override *models.PricingOverride) (*models.PricingOverride, error) {
	if err := r.db.WithContext(ctx).Create(override).Error; err != nil {
		return nil, err
	}
	return override, nil
}

func (r *repository) UpdateOverride(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.PricingOverride{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteOverride(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.PricingOverride{}).Error
}

// UpsertEstimate keeps at most one estimate row per move.
func (r *repository) UpsertEstimate(ctx context.Context, estimate *models.MoveEstimate) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "move_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"base_cost", "distance_charge", "floor_charge", "items_charge",
				"boxes_charge", "packing_charge", "fragile_charge", "labor_charge",
				"subtotal", "tax", "total", "estimate_low", "estimate_high",
				"config_id", "updated_at",
			}),
		}).
		Create(estimate).Error
}

func (r *repository) FindEstimateByMove(ctx context.Context, moveID uuid.UUID) (*models.MoveEstimate, error) {
	var estimate models.MoveEstimate
	err := r.db.WithContext(ctx).
		Where("move_id = ?", moveID).
		First(&estimate).Error
	if err != nil {
		return nil, err
	}
	return &estimate, nil
}
