package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/amitsingh12ap/moveassist/pkg/enums"
)

// FurnitureItem tracks a large item's condition across the move.
type FurnitureItem struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MoveID uuid.UUID `gorm:"column:move_id;type:uuid;not null;index"`

	Name            string                `gorm:"column:name;type:text;not null"`
	Category        *string               `gorm:"column:category;type:text"`
	Status          enums.FurnitureStatus `gorm:"column:status;type:text;not null;default:'listed'"`
	ConditionBefore *string               `gorm:"column:condition_before;type:text"`
	ConditionAfter  *string               `gorm:"column:condition_after;type:text"`
	DamageNotes     *string               `gorm:"column:damage_notes;type:text"`

	Photos []FurniturePhoto `gorm:"foreignKey:FurnitureID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// FurniturePhoto references an externally stored photo of a furniture item.
type FurniturePhoto struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FurnitureID uuid.UUID `gorm:"column:furniture_id;type:uuid;not null;index"`

	PhotoURL          string     `gorm:"column:photo_url;type:text;not null"`
	PhotoType         string     `gorm:"column:photo_type;type:text;not null;default:'before'"`
	DamageTagged      bool       `gorm:"column:damage_tagged;not null;default:false"`
	DamageDescription *string    `gorm:"column:damage_description;type:text"`
	UploadedBy        *uuid.UUID `gorm:"column:uploaded_by;type:uuid"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
