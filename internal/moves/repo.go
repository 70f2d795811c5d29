package moves

import (
	"context"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	"github.com/amitsingh12ap/moveassist/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a moves repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, move *models.Move) (*models.Move, error) {
	if err := r.db.WithContext(ctx).Create(move).Error; err != nil {
		return nil, err
	}
	return move, nil
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.Move, error) {
	var move models.Move
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&move).Error
	if err != nil {
		return nil, err
	}
	return &move, nil
}

// FindForUpdate takes a row lock so money-moving transitions serialize on the
// move record. Must be called inside a transaction.
func (r *repository) FindForUpdate(ctx context.Context, id uuid.UUID) (*models.Move, error) {
	var move models.Move
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&move).Error
	if err != nil {
		return nil, err
	}
	return &move, nil
}

func (r *repository) FindByBoxQR(ctx context.Context, qrCode string) (*models.Move, error) {
	var move models.Move
	err := r.db.WithContext(ctx).
		Joins("JOIN boxes ON boxes.move_id = moves.id").
		Where("boxes.qr_code = ?", qrCode).
		First(&move).Error
	if err != nil {
		return nil, err
	}
	return &move, nil
}

func (r *repository) FindByFurnitureItem(ctx context.Context, itemID uuid.UUID) (*models.Move, error) {
	var move models.Move
	err := r.db.WithContext(ctx).
		Joins("JOIN furniture_items ON furniture_items.move_id = moves.id").
		Where("furniture_items.id = ?", itemID).
		First(&move).Error
	if err != nil {
		return nil, err
	}
	return &move, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Move{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Move{}).Error
}

func (r *repository) List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Move, *pagination.Cursor, error) {
	query := r.db.WithContext(ctx).Model(&models.Move{})
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.AgentID != nil {
		query = query.Where("agent_id = ?", *filters.AgentID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, nil, err
		}
		if cursor != nil {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	limit := pagination.NormalizeLimit(params.Limit)
	var rows []models.Move
	err := query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	var next *pagination.Cursor
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return rows, next, nil
}

func (r *repository) CountUndeliveredBoxes(ctx context.Context, moveID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Box{}).
		Where("move_id = ?", moveID).
		Where("status <> ?", enums.BoxStatusDelivered).
		Count(&count).Error
	return count, err
}

func (r *repository) ListFurnitureMissingCondition(ctx context.Context, moveID uuid.UUID) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.FurnitureItem{}).
		Where("move_id = ?", moveID).
		Where("condition_after IS NULL").
		Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}

func (r *repository) ListFurnitureMissingAfterPhoto(ctx context.Context, moveID uuid.UUID) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.FurnitureItem{}).
		Where("move_id = ?", moveID).
		Where("condition_after IS NOT NULL").
		Where("NOT EXISTS (SELECT 1 FROM furniture_photos WHERE furniture_photos.furniture_id = furniture_items.id AND furniture_photos.photo_type = ?)", "after").
		Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}
