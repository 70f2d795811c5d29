package enums

import "fmt"

// PlanStatus tracks a move plan from draft to completion.
type PlanStatus string

const (
	PlanStatusDraft      PlanStatus = "draft"
	PlanStatusConfirmed  PlanStatus = "confirmed"
	PlanStatusInProgress PlanStatus = "in_progress"
	PlanStatusCompleted  PlanStatus = "completed"
	PlanStatusCancelled  PlanStatus = "cancelled"
)

var validPlanStatuses = []PlanStatus{
	PlanStatusDraft,
	PlanStatusConfirmed,
	PlanStatusInProgress,
	PlanStatusCompleted,
	PlanStatusCancelled,
}

// String implements fmt.Stringer.
func (p PlanStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PlanStatus.
func (p PlanStatus) IsValid() bool {
	for _, candidate := range validPlanStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePlanStatus converts raw input into a PlanStatus.
func ParsePlanStatus(value string) (PlanStatus, error) {
	for _, candidate := range validPlanStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid plan status %q", value)
}
