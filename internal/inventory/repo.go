package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository returns a GORM-backed inventory repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateBox(ctx context.Context, box *models.Box) (*models.Box, error) {
	if err := r.db.WithContext(ctx).Create(box).Error; err != nil {
		return nil, err
	}
	return box, nil
}

func (r *repository) NextBoxNumber(ctx context.Context, moveID uuid.UUID) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&models.Box{}).
		Where("move_id = ?", moveID).
		Select("MAX(box_number)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

func (r *repository) FindBox(ctx context.Context, id uuid.UUID) (*models.Box, error) {
	var box models.Box
	err := r.db.WithContext(ctx).
		Preload("Scans", func(db *gorm.DB) *gorm.DB {
			return db.Order("scanned_at ASC")
		}).
		Where("id = ?", id).
		First(&box).Error
	if err != nil {
		return nil, err
	}
	return &box, nil
}

func (r *repository) FindBoxByQR(ctx context.Context, qrCode string) (*models.Box, error) {
	var box models.Box
	if err := r.db.WithContext(ctx).Where("qr_code = ?", qrCode).First(&box).Error; err != nil {
		return nil, err
	}
	return &box, nil
}

func (r *repository) ListBoxesByMove(ctx context.Context, moveID uuid.UUID) ([]models.Box, error) {
	var boxes []models.Box
	err := r.db.WithContext(ctx).
		Preload("Scans", func(db *gorm.DB) *gorm.DB {
			return db.Order("scanned_at ASC")
		}).
		Where("move_id = ?", moveID).
		Order("box_number ASC").
		Find(&boxes).Error
	if err != nil {
		return nil, err
	}
	return boxes, nil
}

func (r *repository) UpdateBox(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.Box{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) DeleteBox(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Box{}).Error
}

func (r *repository) CreateScan(ctx context.Context, scan *models.BoxScan) error {
	return r.db.WithContext(ctx).Create(scan).Error
}

func (r *repository) CreateFurniture(ctx context.Context, item *models.FurnitureItem) (*models.FurnitureItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) FindFurniture(ctx context.Context, id uuid.UUID) (*models.FurnitureItem, error) {
	var item models.FurnitureItem
	err := r.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListFurnitureByMove(ctx context.Context, moveID uuid.UUID) ([]models.FurnitureItem, error) {
	var items []models.FurnitureItem
	err := r.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("move_id = ?", moveID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateFurniture(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.FurnitureItem{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) DeleteFurniture(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.FurnitureItem{}).Error
}

func (r *repository) AddPhoto(ctx context.Context, photo *models.FurniturePhoto) (*models.FurniturePhoto, error) {
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		return nil, err
	}
	return photo, nil
}
