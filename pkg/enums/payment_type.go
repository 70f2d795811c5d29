package enums

import "fmt"

// PaymentType distinguishes the token advance from the balance settlement.
type PaymentType string

const (
	PaymentTypeToken   PaymentType = "token"
	PaymentTypeBalance PaymentType = "balance"
	PaymentTypeFull    PaymentType = "full"
)

var validPaymentTypes = []PaymentType{
	PaymentTypeToken,
	PaymentTypeBalance,
	PaymentTypeFull,
}

// String implements fmt.Stringer.
func (t PaymentType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known PaymentType.
func (t PaymentType) IsValid() bool {
	for _, candidate := range validPaymentTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParsePaymentType converts raw input into a PaymentType.
func ParsePaymentType(value string) (PaymentType, error) {
	for _, candidate := range validPaymentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment type %q", value)
}
