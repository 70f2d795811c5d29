package moves

import (
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
)

// Event is something that happened to a move which may change its lifecycle
// or payment state.
type Event string

const (
	EventPricingSet          Event = "pricing_set"
	EventTokenSubmitted      Event = "token_submitted"
	EventTokenApproved       Event = "token_approved"
	EventTokenRejected       Event = "token_rejected"
	EventQuoteSubmitted      Event = "quote_submitted"
	EventFullPaymentReceived Event = "full_payment_received"
	EventBalanceSubmitted    Event = "balance_submitted"
	EventBalanceApproved     Event = "balance_approved"
	EventBalanceRejected     Event = "balance_rejected"
	EventPackingStarted      Event = "packing_started"
	EventTransitStarted      Event = "transit_started"
	EventCompleted           Event = "completed"
	EventForceActivated      Event = "force_activated"
)

// State is the pair of move lifecycle status and aggregate payment status.
// Every handler routes transitions through Apply so there is exactly one
// definition of which moves are legal.
type State struct {
	Status  enums.MoveStatus
	Payment enums.MovePaymentStatus
}

// Apply returns the state resulting from event, or a state-conflict error
// when the transition is not allowed from the current state.
func Apply(current State, event Event) (State, error) {
	next, ok := transition(current, event)
	if !ok {
		return current, pkgerrors.New(pkgerrors.CodeStateConflict, "transition not allowed").WithDetails(map[string]any{
			"status":         current.Status,
			"payment_status": current.Payment,
			"event":          event,
		})
	}
	return next, nil
}

func transition(current State, event Event) (State, bool) {
	switch event {
	case EventPricingSet:
		if current.Status == enums.MoveStatusCreated || current.Status == enums.MoveStatusPaymentPending {
			return State{enums.MoveStatusPaymentPending, enums.MovePaymentStatusPending}, true
		}
	case EventTokenSubmitted:
		if current.Status == enums.MoveStatusPaymentPending {
			return State{enums.MoveStatusPaymentUnderVerification, enums.MovePaymentStatusUnderVerification}, true
		}
	case EventTokenApproved:
		if current.Status == enums.MoveStatusPaymentUnderVerification {
			return State{enums.MoveStatusActive, enums.MovePaymentStatusTokenVerified}, true
		}
	case EventTokenRejected:
		if current.Status == enums.MoveStatusPaymentUnderVerification {
			return State{enums.MoveStatusPaymentPending, enums.MovePaymentStatusFailed}, true
		}
	case EventQuoteSubmitted:
		if current.Status == enums.MoveStatusActive {
			return current, true
		}
	case EventFullPaymentReceived:
		if current.Status == enums.MoveStatusActive {
			return State{enums.MoveStatusInProgress, enums.MovePaymentStatusFullyPaid}, true
		}
	case EventBalanceSubmitted:
		if current.Status == enums.MoveStatusActive {
			return State{enums.MoveStatusPaymentUnderVerification, enums.MovePaymentStatusUnderVerification}, true
		}
	case EventBalanceApproved:
		if current.Status == enums.MoveStatusPaymentUnderVerification {
			return State{enums.MoveStatusInProgress, enums.MovePaymentStatusFullyPaid}, true
		}
	case EventBalanceRejected:
		// The token stays verified, so a rejected balance returns the move
		// to active rather than payment_pending.
		if current.Status == enums.MoveStatusPaymentUnderVerification {
			return State{enums.MoveStatusActive, enums.MovePaymentStatusFailed}, true
		}
	case EventPackingStarted:
		if current.Status == enums.MoveStatusInProgress {
			return State{enums.MoveStatusPacking, current.Payment}, true
		}
	case EventTransitStarted:
		if current.Status == enums.MoveStatusPacking {
			return State{enums.MoveStatusInTransit, current.Payment}, true
		}
	case EventCompleted:
		switch current.Status {
		case enums.MoveStatusInProgress, enums.MoveStatusPacking, enums.MoveStatusInTransit:
			return State{enums.MoveStatusCompleted, current.Payment}, true
		}
	case EventForceActivated:
		if current.Status.IsPreActive() {
			return State{enums.MoveStatusActive, enums.MovePaymentStatusWaived}, true
		}
	}
	return current, false
}
