package enums

import "fmt"

// PaymentMode identifies how a customer settled a payment.
type PaymentMode string

const (
	PaymentModeUPI          PaymentMode = "upi"
	PaymentModeCard         PaymentMode = "card"
	PaymentModeNetbanking   PaymentMode = "netbanking"
	PaymentModeWallet       PaymentMode = "wallet"
	PaymentModeCash         PaymentMode = "cash"
	PaymentModeBankTransfer PaymentMode = "bank_transfer"
	PaymentModeCheque       PaymentMode = "cheque"
)

var validPaymentModes = []PaymentMode{
	PaymentModeUPI,
	PaymentModeCard,
	PaymentModeNetbanking,
	PaymentModeWallet,
	PaymentModeCash,
	PaymentModeBankTransfer,
	PaymentModeCheque,
}

// String implements fmt.Stringer.
func (m PaymentMode) String() string {
	return string(m)
}

// IsValid reports whether the value is a known PaymentMode.
func (m PaymentMode) IsValid() bool {
	for _, candidate := range validPaymentModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// AutoVerify reports whether payments in this mode confirm instantly.
// Offline modes queue for manual verification instead.
func (m PaymentMode) AutoVerify() bool {
	switch m {
	case PaymentModeUPI, PaymentModeCard, PaymentModeNetbanking, PaymentModeWallet:
		return true
	default:
		return false
	}
}

// ParsePaymentMode converts raw input into a PaymentMode.
func ParsePaymentMode(value string) (PaymentMode, error) {
	for _, candidate := range validPaymentModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment mode %q", value)
}
