package models

import (
	"time"

	"github.com/google/uuid"
)

// MoveRating is the single customer rating on a completed move.
type MoveRating struct {
	ID      uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MoveID  uuid.UUID  `gorm:"column:move_id;type:uuid;not null;uniqueIndex"`
	UserID  uuid.UUID  `gorm:"column:user_id;type:uuid;not null"`
	AgentID *uuid.UUID `gorm:"column:agent_id;type:uuid;index"`

	Rating int     `gorm:"column:rating;not null"`
	Review *string `gorm:"column:review;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
