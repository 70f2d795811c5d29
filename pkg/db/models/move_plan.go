package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/amitsingh12ap/moveassist/pkg/enums"
)

// MovePlan is the single logistics plan an agent keeps on a move (upserted).
type MovePlan struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MoveID  uuid.UUID `gorm:"column:move_id;type:uuid;not null;uniqueIndex"`
	AgentID uuid.UUID `gorm:"column:agent_id;type:uuid;not null"`

	VehicleType    *string `gorm:"column:vehicle_type;type:text"`
	VehicleCount   int     `gorm:"column:vehicle_count;not null;default:1"`
	CrewSize       int     `gorm:"column:crew_size;not null;default:2"`
	BoxesSmall     int     `gorm:"column:boxes_small;not null;default:0"`
	BoxesMedium    int     `gorm:"column:boxes_medium;not null;default:0"`
	BoxesLarge     int     `gorm:"column:boxes_large;not null;default:0"`
	BubbleWrapRoll int     `gorm:"column:bubble_wrap_rolls;not null;default:0"`
	TapeRolls      int     `gorm:"column:tape_rolls;not null;default:0"`

	ScheduledStart *time.Time `gorm:"column:scheduled_start"`
	ScheduledEnd   *time.Time `gorm:"column:scheduled_end"`
	Notes          *string    `gorm:"column:notes;type:text"`

	Status      enums.PlanStatus `gorm:"column:status;type:text;not null;default:'draft'"`
	ConfirmedAt *time.Time       `gorm:"column:confirmed_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
