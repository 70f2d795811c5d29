package enums

import "fmt"

// MovePaymentStatus tracks the aggregate payment state on a move.
type MovePaymentStatus string

const (
	MovePaymentStatusPending           MovePaymentStatus = "pending"
	MovePaymentStatusUnderVerification MovePaymentStatus = "under_verification"
	MovePaymentStatusTokenVerified     MovePaymentStatus = "token_verified"
	MovePaymentStatusPartial           MovePaymentStatus = "partial"
	MovePaymentStatusVerified          MovePaymentStatus = "verified"
	MovePaymentStatusFullyPaid         MovePaymentStatus = "fully_paid"
	MovePaymentStatusFailed            MovePaymentStatus = "failed"
	MovePaymentStatusWaived            MovePaymentStatus = "waived"
)

var validMovePaymentStatuses = []MovePaymentStatus{
	MovePaymentStatusPending,
	MovePaymentStatusUnderVerification,
	MovePaymentStatusTokenVerified,
	MovePaymentStatusPartial,
	MovePaymentStatusVerified,
	MovePaymentStatusFullyPaid,
	MovePaymentStatusFailed,
	MovePaymentStatusWaived,
}

// String implements fmt.Stringer.
func (p MovePaymentStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known MovePaymentStatus.
func (p MovePaymentStatus) IsValid() bool {
	for _, candidate := range validMovePaymentStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseMovePaymentStatus converts raw input into a MovePaymentStatus.
func ParseMovePaymentStatus(value string) (MovePaymentStatus, error) {
	for _, candidate := range validMovePaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid move payment status %q", value)
}

// PaymentStatus tracks the lifecycle of an individual payment record.
type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusUnderVerification PaymentStatus = "under_verification"
	PaymentStatusVerified          PaymentStatus = "verified"
	PaymentStatusFailed            PaymentStatus = "failed"
)

var validPaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusUnderVerification,
	PaymentStatusVerified,
	PaymentStatusFailed,
}

// String implements fmt.Stringer.
func (p PaymentStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentStatus.
func (p PaymentStatus) IsValid() bool {
	for _, candidate := range validPaymentStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentStatus converts raw input into a PaymentStatus.
func ParsePaymentStatus(value string) (PaymentStatus, error) {
	for _, candidate := range validPaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment status %q", value)
}
