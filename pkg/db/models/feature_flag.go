package models

import (
	"time"

	"github.com/google/uuid"
)

// FeatureFlag is fetched fresh per request; there is no process cache.
type FeatureFlag struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Key         string    `gorm:"column:key;type:text;not null;uniqueIndex"`
	Enabled     bool      `gorm:"column:enabled;not null;default:false"`
	Description *string   `gorm:"column:description;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
