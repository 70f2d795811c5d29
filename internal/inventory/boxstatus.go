package inventory

import "github.com/amitsingh12ap/moveassist/pkg/enums"

// Scan history only moves forward through the packing flow. A box can be
// flagged missing at any point and rejoins the flow when found again.
var boxStatusOrder = map[enums.BoxStatus]int{
	enums.BoxStatusCreated:   0,
	enums.BoxStatusPacked:    1,
	enums.BoxStatusLoaded:    2,
	enums.BoxStatusInTransit: 3,
	enums.BoxStatusDelivered: 4,
}

// CanTransitionBox reports whether a scan may move a box between statuses.
func CanTransitionBox(current, next enums.BoxStatus) bool {
	if next == enums.BoxStatusMissing {
		return current != enums.BoxStatusMissing
	}
	if current == enums.BoxStatusMissing {
		_, ok := boxStatusOrder[next]
		return ok
	}
	currentOrder, ok := boxStatusOrder[current]
	if !ok {
		return false
	}
	nextOrder, ok := boxStatusOrder[next]
	if !ok {
		return false
	}
	return nextOrder > currentOrder
}
