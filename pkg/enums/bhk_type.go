package enums

import "fmt"

// BHKType sizes a household for pricing.
type BHKType string

const (
	BHKStudio BHKType = "studio"
	BHK1      BHKType = "1bhk"
	BHK2      BHKType = "2bhk"
	BHK3      BHKType = "3bhk"
	BHK4      BHKType = "4bhk"
)

var validBHKTypes = []BHKType{
	BHKStudio,
	BHK1,
	BHK2,
	BHK3,
	BHK4,
}

// String implements fmt.Stringer.
func (b BHKType) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BHKType.
func (b BHKType) IsValid() bool {
	for _, candidate := range validBHKTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBHKType converts raw input into a BHKType.
func ParseBHKType(value string) (BHKType, error) {
	for _, candidate := range validBHKTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid bhk type %q", value)
}

// DistanceTier buckets a move by distance for pricing.
type DistanceTier string

const (
	DistanceTierLocal     DistanceTier = "local"
	DistanceTierRegional  DistanceTier = "regional"
	DistanceTierIntercity DistanceTier = "intercity"
)

var validDistanceTiers = []DistanceTier{
	DistanceTierLocal,
	DistanceTierRegional,
	DistanceTierIntercity,
}

// String implements fmt.Stringer.
func (d DistanceTier) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DistanceTier.
func (d DistanceTier) IsValid() bool {
	for _, candidate := range validDistanceTiers {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDistanceTier converts raw input into a DistanceTier.
func ParseDistanceTier(value string) (DistanceTier, error) {
	for _, candidate := range validDistanceTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid distance tier %q", value)
}
