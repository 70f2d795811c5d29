package moves

import (
	"time"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	"github.com/google/uuid"
)

// CreateMoveInput carries the fields a customer supplies when booking a move.
type CreateMoveInput struct {
	UserID      uuid.UUID
	Title       string
	FromAddress string
	FromCity    string
	FromLat     *float64
	FromLng     *float64
	ToAddress   string
	ToCity      string
	ToLat       *float64
	ToLng       *float64
	BHKType     *enums.BHKType
	FloorFrom   int
	FloorTo     int
	HasLiftFrom bool
	HasLiftTo   bool
	MoveDate    *time.Time
}

// UpdateMoveInput carries pre-activation edits to a move's details.
type UpdateMoveInput struct {
	MoveID      uuid.UUID
	ActorID     uuid.UUID
	ActorRole   enums.UserRole
	Title       *string
	FromAddress *string
	FromCity    *string
	FromLat     *float64
	FromLng     *float64
	ToAddress   *string
	ToCity      *string
	ToLat       *float64
	ToLng       *float64
	BHKType     *enums.BHKType
	FloorFrom   *int
	FloorTo     *int
	HasLiftFrom *bool
	HasLiftTo   *bool
	MoveDate    *time.Time
}

// UpdateStatusInput requests an operational status change by the assigned agent.
type UpdateStatusInput struct {
	MoveID    uuid.UUID
	ActorID   uuid.UUID
	ActorRole enums.UserRole
	Status    enums.MoveStatus
}

// CompleteInput requests completion of a move.
type CompleteInput struct {
	MoveID    uuid.UUID
	ActorID   uuid.UUID
	ActorRole enums.UserRole
}

// GetInput identifies the move and the caller for an authorized read.
type GetInput struct {
	MoveID    uuid.UUID
	ActorID   uuid.UUID
	ActorRole enums.UserRole
}

// ListInput configures a paginated move list scoped to the caller.
type ListInput struct {
	ActorID   uuid.UUID
	ActorRole enums.UserRole
	Status    *enums.MoveStatus
	Limit     int
	Cursor    string
}

// ListResult wraps returned moves and the cursor for the next page.
type ListResult struct {
	Items  []models.Move `json:"items"`
	Cursor string        `json:"cursor"`
}
