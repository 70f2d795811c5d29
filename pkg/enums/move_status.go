package enums

import "fmt"

// MoveStatus tracks the lifecycle of a move.
type MoveStatus string

const (
	MoveStatusCreated                  MoveStatus = "created"
	MoveStatusPaymentPending           MoveStatus = "payment_pending"
	MoveStatusPaymentUnderVerification MoveStatus = "payment_under_verification"
	MoveStatusActive                   MoveStatus = "active"
	MoveStatusInProgress               MoveStatus = "in_progress"
	MoveStatusPacking                  MoveStatus = "packing"
	MoveStatusInTransit                MoveStatus = "in_transit"
	MoveStatusCompleted                MoveStatus = "completed"
	MoveStatusClosed                   MoveStatus = "closed"
)

var validMoveStatuses = []MoveStatus{
	MoveStatusCreated,
	MoveStatusPaymentPending,
	MoveStatusPaymentUnderVerification,
	MoveStatusActive,
	MoveStatusInProgress,
	MoveStatusPacking,
	MoveStatusInTransit,
	MoveStatusCompleted,
	MoveStatusClosed,
}

// String implements fmt.Stringer.
func (m MoveStatus) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MoveStatus.
func (m MoveStatus) IsValid() bool {
	for _, candidate := range validMoveStatuses {
		if candidate == m {
			return true
		}
	}
	return false
}

// IsPreActive reports whether the move has not yet been activated by payment.
func (m MoveStatus) IsPreActive() bool {
	switch m {
	case MoveStatusCreated, MoveStatusPaymentPending, MoveStatusPaymentUnderVerification:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed.
func (m MoveStatus) IsTerminal() bool {
	return m == MoveStatusClosed
}

// ParseMoveStatus converts raw input into a MoveStatus.
func ParseMoveStatus(value string) (MoveStatus, error) {
	for _, candidate := range validMoveStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid move status %q", value)
}
