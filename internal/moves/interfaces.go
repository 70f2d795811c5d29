package moves

import (
	"context"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	"github.com/amitsingh12ap/moveassist/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFilters describe the inputs supported by the move lists.
type ListFilters struct {
	UserID  *uuid.UUID
	AgentID *uuid.UUID
	Status  *enums.MoveStatus
}

// Repository defines persistence operations for moves and the related
// inventory rows consulted during completion.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, move *models.Move) (*models.Move, error)
	Find(ctx context.Context, id uuid.UUID) (*models.Move, error)
	FindForUpdate(ctx context.Context, id uuid.UUID) (*models.Move, error)
	FindByBoxQR(ctx context.Context, qrCode string) (*models.Move, error)
	FindByFurnitureItem(ctx context.Context, itemID uuid.UUID) (*models.Move, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Move, *pagination.Cursor, error)
	CountUndeliveredBoxes(ctx context.Context, moveID uuid.UUID) (int64, error)
	ListFurnitureMissingCondition(ctx context.Context, moveID uuid.UUID) ([]string, error)
	ListFurnitureMissingAfterPhoto(ctx context.Context, moveID uuid.UUID) ([]string, error)
}
