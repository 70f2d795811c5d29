package moves

import (
	"testing"

	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestApplyTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    State
		event   Event
		want    State
		wantErr bool
	}{
		{
			name:  "pricing set from created",
			from:  State{enums.MoveStatusCreated, enums.MovePaymentStatusPending},
			event: EventPricingSet,
			want:  State{enums.MoveStatusPaymentPending, enums.MovePaymentStatusPending},
		},
		{
			name:  "pricing reset while payment pending",
			from:  State{enums.MoveStatusPaymentPending, enums.MovePaymentStatusFailed},
			event: EventPricingSet,
			want:  State{enums.MoveStatusPaymentPending, enums.MovePaymentStatusPending},
		},
		{
			name:  "token submitted",
			from:  State{enums.MoveStatusPaymentPending, enums.MovePaymentStatusPending},
			event: EventTokenSubmitted,
			want:  State{enums.MoveStatusPaymentUnderVerification, enums.MovePaymentStatusUnderVerification},
		},
		{
			name:  "token approved activates the move",
			from:  State{enums.MoveStatusPaymentUnderVerification, enums.MovePaymentStatusUnderVerification},
			event: EventTokenApproved,
			want:  State{enums.MoveStatusActive, enums.MovePaymentStatusTokenVerified},
		},
		{
			name:  "token rejected returns to payment pending",
			from:  State{enums.MoveStatusPaymentUnderVerification, enums.MovePaymentStatusUnderVerification},
			event: EventTokenRejected,
			want:  State{enums.MoveStatusPaymentPending, enums.MovePaymentStatusFailed},
		},
		{
			name:  "quote submitted leaves state unchanged",
			from:  State{enums.MoveStatusActive, enums.MovePaymentStatusTokenVerified},
			event: EventQuoteSubmitted,
			want:  State{enums.MoveStatusActive, enums.MovePaymentStatusTokenVerified},
		},
		{
			name:  "full payment received",
			from:  State{enums.MoveStatusActive, enums.MovePaymentStatusTokenVerified},
			event: EventFullPaymentReceived,
			want:  State{enums.MoveStatusInProgress, enums.MovePaymentStatusFullyPaid},
		},
		{
			name:  "balance submitted",
			from:  State{enums.MoveStatusActive, enums.MovePaymentStatusTokenVerified},
			event: EventBalanceSubmitted,
			want:  State{enums.MoveStatusPaymentUnderVerification, enums.MovePaymentStatusUnderVerification},
		},
		{
			name:  "balance approved",
			from:  State{enums.MoveStatusPaymentUnderVerification, enums.MovePaymentStatusUnderVerification},
			event: EventBalanceApproved,
			want:  State{enums.MoveStatusInProgress, enums.MovePaymentStatusFullyPaid},
		},
		{
			name:  "balance rejected returns to active",
			from:  State{enums.MoveStatusPaymentUnderVerification, enums.MovePaymentStatusUnderVerification},
			event: EventBalanceRejected,
			want:  State{enums.MoveStatusActive, enums.MovePaymentStatusFailed},
		},
		{
			name:  "packing starts from in progress",
			from:  State{enums.MoveStatusInProgress, enums.MovePaymentStatusFullyPaid},
			event: EventPackingStarted,
			want:  State{enums.MoveStatusPacking, enums.MovePaymentStatusFullyPaid},
		},
		{
			name:  "transit starts from packing",
			from:  State{enums.MoveStatusPacking, enums.MovePaymentStatusFullyPaid},
			event: EventTransitStarted,
			want:  State{enums.MoveStatusInTransit, enums.MovePaymentStatusFullyPaid},
		},
		{
			name:  "completion from in transit",
			from:  State{enums.MoveStatusInTransit, enums.MovePaymentStatusFullyPaid},
			event: EventCompleted,
			want:  State{enums.MoveStatusCompleted, enums.MovePaymentStatusFullyPaid},
		},
		{
			name:  "force activate waives payment",
			from:  State{enums.MoveStatusPaymentPending, enums.MovePaymentStatusFailed},
			event: EventForceActivated,
			want:  State{enums.MoveStatusActive, enums.MovePaymentStatusWaived},
		},
		{
			name:    "token submit before pricing",
			from:    State{enums.MoveStatusCreated, enums.MovePaymentStatusPending},
			event:   EventTokenSubmitted,
			wantErr: true,
		},
		{
			name:    "full payment before activation",
			from:    State{enums.MoveStatusPaymentPending, enums.MovePaymentStatusPending},
			event:   EventFullPaymentReceived,
			wantErr: true,
		},
		{
			name:    "completion from active",
			from:    State{enums.MoveStatusActive, enums.MovePaymentStatusTokenVerified},
			event:   EventCompleted,
			wantErr: true,
		},
		{
			name:    "force activate after activation",
			from:    State{enums.MoveStatusActive, enums.MovePaymentStatusTokenVerified},
			event:   EventForceActivated,
			wantErr: true,
		},
		{
			name:    "pricing after activation",
			from:    State{enums.MoveStatusInProgress, enums.MovePaymentStatusFullyPaid},
			event:   EventPricingSet,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Apply(tc.from, tc.event)
			if tc.wantErr {
				require.Error(t, err)
				typed := pkgerrors.As(err)
				require.NotNil(t, typed)
				require.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
