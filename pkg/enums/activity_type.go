package enums

import "fmt"

// ActivityType labels entries on a move's activity timeline.
type ActivityType string

const (
	ActivityTypeMoveCreated      ActivityType = "move_created"
	ActivityTypeStatusChanged    ActivityType = "status_changed"
	ActivityTypeAgentAssigned    ActivityType = "agent_assigned"
	ActivityTypePriceSet         ActivityType = "price_set"
	ActivityTypePaymentInitiated ActivityType = "payment_initiated"
	ActivityTypePaymentVerified  ActivityType = "payment_verified"
	ActivityTypePaymentRejected  ActivityType = "payment_rejected"
	ActivityTypeQuoteSubmitted   ActivityType = "quote_submitted"
	ActivityTypeBoxScanned       ActivityType = "box_scanned"
	ActivityTypeFurnitureUpdated ActivityType = "furniture_updated"
	ActivityTypePlanUpdated      ActivityType = "plan_updated"
	ActivityTypeDocumentUploaded ActivityType = "document_uploaded"
	ActivityTypeDisputeOpened    ActivityType = "dispute_opened"
	ActivityTypeDisputeResolved  ActivityType = "dispute_resolved"
	ActivityTypeRatingSubmitted  ActivityType = "rating_submitted"
	ActivityTypeNote             ActivityType = "note"
)

var validActivityTypes = []ActivityType{
	ActivityTypeMoveCreated,
	ActivityTypeStatusChanged,
	ActivityTypeAgentAssigned,
	ActivityTypePriceSet,
	ActivityTypePaymentInitiated,
	ActivityTypePaymentVerified,
	ActivityTypePaymentRejected,
	ActivityTypeQuoteSubmitted,
	ActivityTypeBoxScanned,
	ActivityTypeFurnitureUpdated,
	ActivityTypePlanUpdated,
	ActivityTypeDocumentUploaded,
	ActivityTypeDisputeOpened,
	ActivityTypeDisputeResolved,
	ActivityTypeRatingSubmitted,
	ActivityTypeNote,
}

// String implements fmt.Stringer.
func (a ActivityType) String() string {
	return string(a)
}

// IsValid reports whether the value is a known ActivityType.
func (a ActivityType) IsValid() bool {
	for _, candidate := range validActivityTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseActivityType converts raw input into an ActivityType.
func ParseActivityType(value string) (ActivityType, error) {
	for _, candidate := range validActivityTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid activity type %q", value)
}
