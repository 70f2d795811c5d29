package disputes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
)

// ListFilters narrow dispute listings.
type ListFilters struct {
	MoveID *uuid.UUID
	Status *enums.DisputeStatus
}

// Repository defines persistence operations for disputes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, dispute *models.Dispute) (*models.Dispute, error)
	Find(ctx context.Context, id uuid.UUID) (*models.Dispute, error)
	List(ctx context.Context, filters ListFilters) ([]models.Dispute, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}
