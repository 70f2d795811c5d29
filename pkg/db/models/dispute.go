package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/amitsingh12ap/moveassist/pkg/enums"
)

// Dispute is a customer-raised issue against a move, optionally tied to a
// damaged furniture item.
type Dispute struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MoveID      uuid.UUID  `gorm:"column:move_id;type:uuid;not null;index"`
	RaisedBy    uuid.UUID  `gorm:"column:raised_by;type:uuid;not null"`
	FurnitureID *uuid.UUID `gorm:"column:furniture_id;type:uuid"`

	Description string  `gorm:"column:description;type:text;not null"`
	PhotoURL    *string `gorm:"column:photo_url;type:text"`

	Status     enums.DisputeStatus `gorm:"column:status;type:text;not null;default:'open'"`
	AdminNotes *string             `gorm:"column:admin_notes;type:text"`
	ResolvedBy *uuid.UUID          `gorm:"column:resolved_by;type:uuid"`
	ResolvedAt *time.Time          `gorm:"column:resolved_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
