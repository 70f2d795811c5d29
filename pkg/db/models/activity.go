package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/amitsingh12ap/moveassist/pkg/enums"
	"github.com/amitsingh12ap/moveassist/pkg/types"
)

// Activity is one append-only entry on a move's timeline.
type Activity struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MoveID    uuid.UUID          `gorm:"column:move_id;type:uuid;not null;index"`
	ActorID   *uuid.UUID         `gorm:"column:actor_id;type:uuid"`
	ActorRole *enums.UserRole    `gorm:"column:actor_role;type:text"`
	Type      enums.ActivityType `gorm:"column:type;type:text;not null"`

	Title       string         `gorm:"column:title;type:text;not null"`
	Description *string        `gorm:"column:description;type:text"`
	Metadata    *types.JSONMap `gorm:"column:metadata;type:jsonb;serializer:json"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
