package documents

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
)

// Repository defines persistence operations for move documents.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, document *models.MoveDocument) (*models.MoveDocument, error)
	Find(ctx context.Context, id uuid.UUID) (*models.MoveDocument, error)
	ListByMove(ctx context.Context, moveID uuid.UUID) ([]models.MoveDocument, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a GORM-backed documents repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, document *models.MoveDocument) (*models.MoveDocument, error) {
	if err := r.db.WithContext(ctx).Create(document).Error; err != nil {
		return nil, err
	}
	return document, nil
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.MoveDocument, error) {
	var document models.MoveDocument
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&document).Error; err != nil {
		return nil, err
	}
	return &document, nil
}

func (r *repository) ListByMove(ctx context.Context, moveID uuid.UUID) ([]models.MoveDocument, error) {
	var documents []models.MoveDocument
	err := r.db.WithContext(ctx).
		Where("move_id = ?", moveID).
		Order("created_at DESC").
		Find(&documents).Error
	if err != nil {
		return nil, err
	}
	return documents, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MoveDocument{}).Error
}
