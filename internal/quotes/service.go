package quotes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/internal/activity"
	"github.com/amitsingh12ap/moveassist/internal/moves"
	"github.com/amitsingh12ap/moveassist/internal/notifications"
	"github.com/amitsingh12ap/moveassist/pkg/config"
	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
	"github.com/amitsingh12ap/moveassist/pkg/types"
)

var hundred = decimal.NewFromInt(100)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SubmitInput carries the agent's on-site quote for a move.
type SubmitInput struct {
	MoveID  uuid.UUID
	AgentID uuid.UUID

	BasePrice     decimal.Decimal
	FloorCharge   decimal.Decimal
	FragileCharge decimal.Decimal
	ExtraCharge   decimal.Decimal
	Discount      decimal.Decimal

	Notes         *string
	ItemsSnapshot map[string]any
}

// GetInput identifies a quote lookup and who is asking.
type GetInput struct {
	MoveID    uuid.UUID
	ActorID   uuid.UUID
	ActorRole enums.UserRole
}

// Service manages the single active quote an agent keeps on a move.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*models.AgentQuote, error)
	Get(ctx context.Context, input GetInput) (*models.AgentQuote, error)
}

type service struct {
	repo     Repository
	moves    moves.Repository
	tx       txRunner
	recorder activity.Recorder
	notifier notifications.Service
	cfg      config.PricingConfig
}

// NewService builds a quotes service with the required dependencies.
func NewService(repo Repository, movesRepo moves.Repository, tx txRunner, recorder activity.Recorder, notifier notifications.Service, cfg config.PricingConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quotes repository required")
	}
	if movesRepo == nil {
		return nil, fmt.Errorf("moves repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("activity recorder required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifications service required")
	}
	return &service{
		repo:     repo,
		moves:    movesRepo,
		tx:       tx,
		recorder: recorder,
		notifier: notifier,
		cfg:      cfg,
	}, nil
}

// Submit upserts the agent's quote on an active move and records the quoted
// total as the move's final amount. Re-submitting replaces the previous quote.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*models.AgentQuote, error) {
	if input.MoveID == uuid.Nil || input.AgentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id and agent id required")
	}
	if input.BasePrice.IsNegative() || input.FloorCharge.IsNegative() ||
		input.FragileCharge.IsNegative() || input.ExtraCharge.IsNegative() ||
		input.Discount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote amounts must not be negative")
	}

	var saved *models.AgentQuote
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		movesRepo := s.moves.WithTx(tx)
		move, err := movesRepo.FindForUpdate(ctx, input.MoveID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "move not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load move")
		}
		if move.AgentID == nil || *move.AgentID != input.AgentID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the assigned agent may quote this move")
		}
		if !move.TokenPaid && move.PaymentStatus != enums.MovePaymentStatusWaived {
			return pkgerrors.New(pkgerrors.CodePaymentRequired, "token payment required before quoting")
		}
		if move.Status != enums.MoveStatusActive {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "move must be active to accept a quote").
				WithDetails(map[string]any{"status": move.Status})
		}

		subtotal := input.BasePrice.
			Add(input.FloorCharge).
			Add(input.FragileCharge).
			Add(input.ExtraCharge).
			Sub(input.Discount).
			Round(0)
		if subtotal.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "discount exceeds quoted charges")
		}
		tax := subtotal.Mul(decimal.NewFromInt(int64(s.cfg.GSTPercent))).Div(hundred).Round(0)
		total := subtotal.Add(tax)

		quote := &models.AgentQuote{
			MoveID:        move.ID,
			AgentID:       input.AgentID,
			BasePrice:     input.BasePrice,
			FloorCharge:   input.FloorCharge,
			FragileCharge: input.FragileCharge,
			ExtraCharge:   input.ExtraCharge,
			Discount:      input.Discount,
			Subtotal:      subtotal,
			Tax:           tax,
			Total:         total,
			Notes:         input.Notes,
			SubmittedAt:   time.Now().UTC(),
		}
		if input.ItemsSnapshot != nil {
			snapshot := types.JSONMap(input.ItemsSnapshot)
			quote.ItemsSnapshot = &snapshot
		}
		saved, err = s.repo.WithTx(tx).Upsert(ctx, quote)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save quote")
		}

		quoteStatus := enums.QuoteStatusPending
		if err := movesRepo.Update(ctx, move.ID, map[string]any{
			"final_amount": total,
			"quote_status": quoteStatus,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update move quote fields")
		}

		actorRole := enums.UserRoleAgent
		if err := s.recorder.Record(ctx, tx, activity.RecordInput{
			MoveID:    move.ID,
			ActorID:   &input.AgentID,
			ActorRole: &actorRole,
			Type:      enums.ActivityTypeQuoteSubmitted,
			Title:     fmt.Sprintf("Quote submitted for %s", total.StringFixed(2)),
			Metadata: map[string]any{
				"subtotal": subtotal.String(),
				"tax":      tax.String(),
				"total":    total.String(),
			},
		}); err != nil {
			return err
		}

		balance := total.Sub(move.AmountPaid)
		if balance.IsNegative() {
			balance = decimal.Zero
		}
		moveID := move.ID
		return s.notifier.Notify(ctx, tx, notifications.NotifyInput{
			UserID: move.UserID,
			MoveID: &moveID,
			Type:   enums.NotificationTypeQuoteSubmitted,
			Title:  "Final quote ready",
			Body:   fmt.Sprintf("Your agent quoted %s. Balance due: %s.", total.StringFixed(2), balance.StringFixed(2)),
		})
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Get returns the quote on a move, visible to the owner, the assigned agent,
// and admins.
func (s *service) Get(ctx context.Context, input GetInput) (*models.AgentQuote, error) {
	move, err := s.moves.Find(ctx, input.MoveID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "move not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load move")
	}
	if input.ActorRole != enums.UserRoleAdmin &&
		move.UserID != input.ActorID &&
		(move.AgentID == nil || *move.AgentID != input.ActorID) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to view this quote")
	}

	quote, err := s.repo.FindByMove(ctx, input.MoveID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no quote submitted for this move")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	return quote, nil
}
