package plans

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository returns a GORM-backed plans repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Upsert(ctx context.Context, plan *models.MovePlan) (*models.MovePlan, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "move_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"agent_id", "vehicle_type", "vehicle_count", "crew_size",
				"boxes_small", "boxes_medium", "boxes_large", "bubble_wrap_rolls", "tape_rolls",
				"scheduled_start", "scheduled_end", "notes", "status", "updated_at",
			}),
		}).
		Create(plan).Error
	if err != nil {
		return nil, err
	}
	return r.FindByMove(ctx, plan.MoveID)
}

func (r *repository) FindByMove(ctx context.Context, moveID uuid.UUID) (*models.MovePlan, error) {
	var plan models.MovePlan
	if err := r.db.WithContext(ctx).Where("move_id = ?", moveID).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.MovePlan{}).Where("id = ?", id).Updates(updates).Error
}
