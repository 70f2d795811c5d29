package enums

import "fmt"

// BoxStatus tracks a box through packing, transit and delivery.
type BoxStatus string

const (
	BoxStatusCreated   BoxStatus = "created"
	BoxStatusPacked    BoxStatus = "packed"
	BoxStatusLoaded    BoxStatus = "loaded"
	BoxStatusInTransit BoxStatus = "in_transit"
	BoxStatusDelivered BoxStatus = "delivered"
	BoxStatusMissing   BoxStatus = "missing"
)

var validBoxStatuses = []BoxStatus{
	BoxStatusCreated,
	BoxStatusPacked,
	BoxStatusLoaded,
	BoxStatusInTransit,
	BoxStatusDelivered,
	BoxStatusMissing,
}

// String implements fmt.Stringer.
func (b BoxStatus) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BoxStatus.
func (b BoxStatus) IsValid() bool {
	for _, candidate := range validBoxStatuses {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBoxStatus converts raw input into a BoxStatus.
func ParseBoxStatus(value string) (BoxStatus, error) {
	for _, candidate := range validBoxStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid box status %q", value)
}

// FurnitureStatus tracks a furniture item through the move.
type FurnitureStatus string

const (
	FurnitureStatusListed     FurnitureStatus = "listed"
	FurnitureStatusWrapped    FurnitureStatus = "wrapped"
	FurnitureStatusLoaded     FurnitureStatus = "loaded"
	FurnitureStatusDelivered  FurnitureStatus = "delivered"
	FurnitureStatusAssembled  FurnitureStatus = "assembled"
	FurnitureStatusDamaged    FurnitureStatus = "damaged"
)

var validFurnitureStatuses = []FurnitureStatus{
	FurnitureStatusListed,
	FurnitureStatusWrapped,
	FurnitureStatusLoaded,
	FurnitureStatusDelivered,
	FurnitureStatusAssembled,
	FurnitureStatusDamaged,
}

// String implements fmt.Stringer.
func (f FurnitureStatus) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FurnitureStatus.
func (f FurnitureStatus) IsValid() bool {
	for _, candidate := range validFurnitureStatuses {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFurnitureStatus converts raw input into a FurnitureStatus.
func ParseFurnitureStatus(value string) (FurnitureStatus, error) {
	for _, candidate := range validFurnitureStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid furniture status %q", value)
}
