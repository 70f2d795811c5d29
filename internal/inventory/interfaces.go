package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
)

// Repository persists boxes, their scan history, and furniture items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateBox(ctx context.Context, box *models.Box) (*models.Box, error)
	NextBoxNumber(ctx context.Context, moveID uuid.UUID) (int, error)
	FindBox(ctx context.Context, id uuid.UUID) (*models.Box, error)
	FindBoxByQR(ctx context.Context, qrCode string) (*models.Box, error)
	ListBoxesByMove(ctx context.Context, moveID uuid.UUID) ([]models.Box, error)
	UpdateBox(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteBox(ctx context.Context, id uuid.UUID) error
	CreateScan(ctx context.Context, scan *models.BoxScan) error

	CreateFurniture(ctx context.Context, item *models.FurnitureItem) (*models.FurnitureItem, error)
	FindFurniture(ctx context.Context, id uuid.UUID) (*models.FurnitureItem, error)
	ListFurnitureByMove(ctx context.Context, moveID uuid.UUID) ([]models.FurnitureItem, error)
	UpdateFurniture(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteFurniture(ctx context.Context, id uuid.UUID) error
	AddPhoto(ctx context.Context, photo *models.FurniturePhoto) (*models.FurniturePhoto, error)
}
