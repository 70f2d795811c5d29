package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/amitsingh12ap/moveassist/pkg/enums"
)

// Box is a QR-labelled packing box belonging to a move.
type Box struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MoveID uuid.UUID `gorm:"column:move_id;type:uuid;not null;index"`

	QRCode    string          `gorm:"column:qr_code;type:text;not null;uniqueIndex"`
	BoxNumber int             `gorm:"column:box_number;not null"`
	Label     string          `gorm:"column:label;type:text;not null"`
	Category  *string         `gorm:"column:category;type:text"`
	Contents  *string         `gorm:"column:contents;type:text"`
	Fragile   bool            `gorm:"column:fragile;not null;default:false"`
	Status    enums.BoxStatus `gorm:"column:status;type:text;not null;default:'created'"`

	Scans []BoxScan `gorm:"foreignKey:BoxID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// BoxScan is one append-only entry in a box's scan history.
type BoxScan struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BoxID     uuid.UUID       `gorm:"column:box_id;type:uuid;not null;index"`
	Status    enums.BoxStatus `gorm:"column:status;type:text;not null"`
	ScannedBy uuid.UUID       `gorm:"column:scanned_by;type:uuid;not null"`
	Location  *string         `gorm:"column:location;type:text"`
	Notes     *string         `gorm:"column:notes;type:text"`
	ScannedAt time.Time       `gorm:"column:scanned_at;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
