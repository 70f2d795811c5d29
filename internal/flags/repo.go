package flags

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
)

// Repository persists feature flags.
type Repository interface {
	Find(ctx context.Context, key string) (*models.FeatureFlag, error)
	List(ctx context.Context) ([]models.FeatureFlag, error)
	Upsert(ctx context.Context, flag *models.FeatureFlag) (*models.FeatureFlag, error)
	Delete(ctx context.Context, key string) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a GORM-backed flags repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Find(ctx context.Context, key string) (*models.FeatureFlag, error) {
	var flag models.FeatureFlag
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&flag).Error; err != nil {
		return nil, err
	}
	return &flag, nil
}

func (r *repository) List(ctx context.Context) ([]models.FeatureFlag, error) {
	var out []models.FeatureFlag
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) Upsert(ctx context.Context, flag *models.FeatureFlag) (*models.FeatureFlag, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"enabled", "description", "updated_at"}),
		}).
		Create(flag).Error
	if err != nil {
		return nil, err
	}
	return r.Find(ctx, flag.Key)
}

func (r *repository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&models.FeatureFlag{}).Error
}
