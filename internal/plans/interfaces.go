package plans

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
)

// Repository persists move plans, one per move.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, plan *models.MovePlan) (*models.MovePlan, error)
	FindByMove(ctx context.Context, moveID uuid.UUID) (*models.MovePlan, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}
