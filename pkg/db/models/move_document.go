package models

import (
	"time"

	"github.com/google/uuid"
)

// MoveDocument is metadata for an externally stored file tied to a move.
type MoveDocument struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MoveID     uuid.UUID `gorm:"column:move_id;type:uuid;not null;index"`
	UploadedBy uuid.UUID `gorm:"column:uploaded_by;type:uuid;not null"`

	Name    string `gorm:"column:name;type:text;not null"`
	DocType string `gorm:"column:doc_type;type:text;not null;default:'other'"`
	FileURL string `gorm:"column:file_url;type:text;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
