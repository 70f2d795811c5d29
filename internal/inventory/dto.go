package inventory

import (
	"github.com/google/uuid"

	"github.com/amitsingh12ap/moveassist/pkg/enums"
)

// Actor identifies who is performing an inventory operation.
type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
}

// CreateBoxInput describes a new packing box.
type CreateBoxInput struct {
	MoveID   uuid.UUID
	Actor    Actor
	Label    string
	Category *string
	Contents *string
	Fragile  bool
}

// UpdateBoxInput carries partial box edits.
type UpdateBoxInput struct {
	BoxID    uuid.UUID
	Actor    Actor
	Label    *string
	Category *string
	Contents *string
	Fragile  *bool
}

// ScanBoxInput records a QR scan moving a box through the packing flow.
type ScanBoxInput struct {
	QRCode   string
	Actor    Actor
	Status   enums.BoxStatus
	Location *string
	Notes    *string
}

// CreateFurnitureInput describes a new furniture item.
type CreateFurnitureInput struct {
	MoveID          uuid.UUID
	Actor           Actor
	Name            string
	Category        *string
	ConditionBefore *string
}

// UpdateFurnitureInput carries partial furniture edits, including the
// post-delivery condition.
type UpdateFurnitureInput struct {
	ItemID         uuid.UUID
	Actor          Actor
	Name           *string
	Category       *string
	Status         *enums.FurnitureStatus
	ConditionAfter *string
	DamageNotes    *string
}

// AddPhotoInput attaches an externally stored photo to a furniture item.
type AddPhotoInput struct {
	ItemID            uuid.UUID
	Actor             Actor
	PhotoURL          string
	PhotoType         string
	DamageTagged      bool
	DamageDescription *string
}
