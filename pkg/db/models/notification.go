package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/amitsingh12ap/moveassist/pkg/enums"
)

// Notification stores in-app notification payloads scoped to users.
type Notification struct {
	ID     uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	MoveID *uuid.UUID `gorm:"column:move_id;type:uuid;index"`

	Type  enums.NotificationType `gorm:"column:type;type:text;not null"`
	Title string                 `gorm:"column:title;type:text;not null"`
	Body  string                 `gorm:"column:body;type:text;not null"`

	ReadAt    *time.Time `gorm:"column:read_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
