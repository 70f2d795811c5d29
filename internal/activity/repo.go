package activity

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/pagination"
)

// Repository exposes persistence helpers for move activities.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, activity *models.Activity) error
	ListByMove(ctx context.Context, moveID uuid.UUID, params pagination.Params) ([]models.Activity, *pagination.Cursor, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an activity repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *repositoryImpl) ListByMove(ctx context.Context, moveID uuid.UUID, params pagination.Params) ([]models.Activity, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Activity{}).Where("move_id = ?", moveID)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var activities []models.Activity
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&activities).Error; err != nil {
		return nil, nil, err
	}

	if len(activities) > normalized {
		next := activities[normalized]
		activities = activities[:normalized]
		return activities, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return activities, nil, nil
}
