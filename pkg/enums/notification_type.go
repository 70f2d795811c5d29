package enums

import "fmt"

// NotificationType categorizes in-app notifications.
type NotificationType string

const (
	NotificationTypeMoveCreated       NotificationType = "move_created"
	NotificationTypeAgentAssigned     NotificationType = "agent_assigned"
	NotificationTypePriceSet          NotificationType = "price_set"
	NotificationTypePaymentReceived   NotificationType = "payment_received"
	NotificationTypePaymentVerified   NotificationType = "payment_verified"
	NotificationTypePaymentRejected   NotificationType = "payment_rejected"
	NotificationTypeQuoteSubmitted    NotificationType = "quote_submitted"
	NotificationTypePlanConfirmed     NotificationType = "plan_confirmed"
	NotificationTypeMoveStatusChanged NotificationType = "move_status_changed"
	NotificationTypeBoxUpdate         NotificationType = "box_update"
	NotificationTypeDisputeUpdate     NotificationType = "dispute_update"
	NotificationTypeRatingReceived    NotificationType = "rating_received"
	NotificationTypeGeneral           NotificationType = "general"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeMoveCreated,
	NotificationTypeAgentAssigned,
	NotificationTypePriceSet,
	NotificationTypePaymentReceived,
	NotificationTypePaymentVerified,
	NotificationTypePaymentRejected,
	NotificationTypeQuoteSubmitted,
	NotificationTypePlanConfirmed,
	NotificationTypeMoveStatusChanged,
	NotificationTypeBoxUpdate,
	NotificationTypeDisputeUpdate,
	NotificationTypeRatingReceived,
	NotificationTypeGeneral,
}

// String implements fmt.Stringer.
func (n NotificationType) String() string {
	return string(n)
}

// IsValid reports whether the value is a known NotificationType.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw input into a NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
