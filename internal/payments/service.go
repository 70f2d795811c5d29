package payments

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/internal/activity"
	"github.com/amitsingh12ap/moveassist/internal/moves"
	"github.com/amitsingh12ap/moveassist/internal/notifications"
	"github.com/amitsingh12ap/moveassist/internal/pricing"
	"github.com/amitsingh12ap/moveassist/pkg/config"
	"github.com/amitsingh12ap/moveassist/pkg/db"
	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
	"github.com/amitsingh12ap/moveassist/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type adminLister interface {
	ListAdminIDs(ctx context.Context) ([]uuid.UUID, error)
}

// Service defines the multi-stage payment workflow on moves.
type Service interface {
	SetPricing(ctx context.Context, input SetPricingInput) (*SetPricingResult, error)
	InitiateToken(ctx context.Context, input InitiateTokenInput) (*models.Payment, error)
	VerifyToken(ctx context.Context, input VerifyInput) error
	PayBalance(ctx context.Context, input PayBalanceInput) (*models.Payment, error)
	VerifyBalance(ctx context.Context, input VerifyInput) error
	PayOnline(ctx context.Context, input PayOnlineInput) (*models.Payment, error)
	MarkCashReceived(ctx context.Context, input MarkCashInput) (*models.Payment, error)
	AdminVerifyPayment(ctx context.Context, input VerifyInput) error
	AdminMarkPaid(ctx context.Context, input AdminMarkPaidInput) (*models.Payment, error)
	ListByMove(ctx context.Context, moveID, actorID uuid.UUID, role enums.UserRole) ([]models.Payment, error)
	ListPendingVerifications(ctx context.Context, params pagination.Params) (*ListPendingResult, error)
}

type service struct {
	repo     Repository
	moves    moves.Repository
	tx       txRunner
	recorder activity.Recorder
	notifier notifications.Service
	admins   adminLister
	cfg      config.PricingConfig
}

// NewService builds a payments service with the required dependencies.
func NewService(repo Repository, movesRepo moves.Repository, tx txRunner, recorder activity.Recorder, notifier notifications.Service, admins adminLister, cfg config.PricingConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
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
	if admins == nil {
		return nil, fmt.Errorf("admin lister required")
	}
	return &service{
		repo:     repo,
		moves:    movesRepo,
		tx:       tx,
		recorder: recorder,
		notifier: notifier,
		admins:   admins,
		cfg:      cfg,
	}, nil
}

var one = decimal.NewFromInt(1)

func (s *service) SetPricing(ctx context.Context, input SetPricingInput) (*SetPricingResult, error) {
	if input.MoveID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id required")
	}
	if input.ActorRole != enums.UserRoleAdmin && input.ActorRole != enums.UserRoleAgent {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only admins and agents can set pricing")
	}
	if !input.Base.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base amount must be positive")
	}

	subtotal := input.Base.Add(input.Surcharge).Sub(input.Discount).Round(0)
	if subtotal.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount exceeds the priced amount")
	}
	gst := decimal.NewFromInt(int64(s.cfg.GSTPercent))
	tax := subtotal.Mul(gst).Div(decimal.NewFromInt(100)).Round(0)
	total := subtotal.Add(tax)
	token := pricing.TokenAmount(total, s.cfg.TokenPercent)

	var result *SetPricingResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		movesRepo := s.moves.WithTx(tx)
		move, err := s.lockMove(ctx, movesRepo, input.MoveID)
		if err != nil {
			return err
		}

		next, err := moves.Apply(moves.State{Status: move.Status, Payment: move.PaymentStatus}, moves.EventPricingSet)
		if err != nil {
			return err
		}

		invoice := invoiceNumber()
		if move.InvoiceNumber != nil {
			invoice = *move.InvoiceNumber
		}
		updates := map[string]any{
			"status":         next.Status,
			"payment_status": next.Payment,
			"amount_total":   total,
			"token_amount":   token,
			"invoice_number": invoice,
		}
		if err := movesRepo.Update(ctx, move.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update move pricing")
		}

		role := input.ActorRole
		if err := s.recorder.Record(ctx, tx, activity.RecordInput{
			MoveID:    move.ID,
			ActorID:   &input.ActorID,
			ActorRole: &role,
			Type:      enums.ActivityTypePriceSet,
			Title:     "Pricing set",
			Metadata: map[string]any{
				"subtotal":     subtotal,
				"tax":          tax,
				"total":        total,
				"token_amount": token,
				"invoice":      invoice,
			},
		}); err != nil {
			return err
		}

		moveID := move.ID
		if err := s.notifier.Notify(ctx, tx, notifications.NotifyInput{
			UserID: move.UserID,
			MoveID: &moveID,
			Type:   enums.NotificationTypePriceSet,
			Title:  "Your move has been priced",
			Body:   fmt.Sprintf("Total ₹%s. Pay the token of ₹%s to confirm your booking.", total, token),
		}); err != nil {
			return err
		}

		result = &SetPricingResult{
			Subtotal:      subtotal,
			Tax:           tax,
			Total:         total,
			TokenAmount:   token,
			InvoiceNumber: invoice,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) InitiateToken(ctx context.Context, input InitiateTokenInput) (*models.Payment, error) {
	if input.MoveID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id required")
	}
	if !input.Mode.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment mode")
	}

	var payment *models.Payment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		movesRepo := s.moves.WithTx(tx)
		move, err := s.lockMove(ctx, movesRepo, input.MoveID)
		if err != nil {
			return err
		}
		if move.UserID != input.UserID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "move does not belong to user")
		}
		if move.TokenPaid {
			return pkgerrors.New(pkgerrors.CodeTokenAlreadyPaid, "token payment already completed")
		}
		if !move.TokenAmount.IsPositive() {
			return pkgerrors.New(pkgerrors.CodePriceNotSet, "pricing must be set before paying the token")
		}

		next, err := moves.Apply(moves.State{Status: move.Status, Payment: move.PaymentStatus}, moves.EventTokenSubmitted)
		if err != nil {
			return err
		}

		repo := s.repo.WithTx(tx)
		payment = &models.Payment{
			MoveID:        move.ID,
			UserID:        input.UserID,
			Amount:        move.TokenAmount,
			Mode:          input.Mode,
			Status:        enums.PaymentStatusUnderVerification,
			PaymentType:   enums.PaymentTypeToken,
			TransactionID: input.TransactionID,
			Notes:         input.Notes,
		}
		if _, err := repo.CreatePayment(ctx, payment); err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.New(pkgerrors.CodeConflict, "a token payment is already awaiting verification")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create token payment")
		}

		updates := map[string]any{
			"status":         next.Status,
			"payment_status": next.Payment,
		}

		autoVerified := input.Mode.AutoVerify()
		if autoVerified {
			now := time.Now().UTC()
			if err := repo.UpdatePayment(ctx, payment.ID, map[string]any{
				"status":      enums.PaymentStatusVerified,
				"verified_at": now,
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "auto-verify token payment")
			}
			payment.Status = enums.PaymentStatusVerified
			payment.VerifiedAt = &now

			next, err = moves.Apply(next, moves.EventTokenApproved)
			if err != nil {
				return err
			}
			paid, err := repo.SumVerifiedByMove(ctx, move.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum verified payments")
			}
			updates["status"] = next.Status
			updates["payment_status"] = next.Payment
			updates["amount_paid"] = paid
			updates["token_paid"] = true
			updates["token_paid_at"] = now
			updates["activated_at"] = now
		}
		if err := movesRepo.Update(ctx, move.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update move payment state")
		}

		role := enums.UserRoleCustomer
		if err := s.recorder.Record(ctx, tx, activity.RecordInput{
			MoveID:    move.ID,
			ActorID:   &input.UserID,
			ActorRole: &role,
			Type:      enums.ActivityTypePaymentInitiated,
			Title:     "Token payment submitted",
			Metadata: map[string]any{
				"amount":        move.TokenAmount,
				"mode":          input.Mode,
				"auto_verified": autoVerified,
			},
		}); err != nil {
			return err
		}

		return s.notifyAdmins(ctx, tx, move.ID, enums.NotificationTypePaymentReceived,
			"Token payment submitted",
			fmt.Sprintf("Token of ₹%s paid via %s for %s", move.TokenAmount, input.Mode, move.Title))
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *service) VerifyToken(ctx context.Context, input VerifyInput) error {
	expect := enums.PaymentTypeToken
	return s.verify(ctx, input, &expect)
}

func (s *service) VerifyBalance(ctx context.Context, input VerifyInput) error {
	expect := enums.PaymentTypeBalance
	return s.verify(ctx, input, &expect)
}

// AdminVerifyPayment approves or rejects any payment awaiting verification,
// regardless of type.
func (s *service) AdminVerifyPayment(ctx context.Context, input VerifyInput) error {
	return s.verify(ctx, input, nil)
}

func (s *service) verify(ctx context.Context, input VerifyInput, expect *enums.PaymentType) error {
	if input.PaymentID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment id required")
	}
	if input.AdminID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		payment, err := repo.FindPayment(ctx, input.PaymentID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
		}
		if expect != nil && payment.PaymentType != *expect {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("payment is not a %s payment", *expect))
		}
		if payment.Status != enums.PaymentStatusUnderVerification {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "payment is not awaiting verification")
		}

		movesRepo := s.moves.WithTx(tx)
		move, err := s.lockMove(ctx, movesRepo, payment.MoveID)
		if err != nil {
			return err
		}

		if input.Approve {
			return s.approve(ctx, tx, repo, movesRepo, move, payment, input)
		}
		return s.reject(ctx, tx, repo, movesRepo, move, payment, input)
	})
}

func (s *service) approve(ctx context.Context, tx *gorm.DB, repo Repository, movesRepo moves.Repository, move *models.Move, payment *models.Payment, input VerifyInput) error {
	event := moves.EventBalanceApproved
	if payment.PaymentType == enums.PaymentTypeToken {
		event = moves.EventTokenApproved
	}
	next, err := moves.Apply(moves.State{Status: move.Status, Payment: move.PaymentStatus}, event)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := repo.UpdatePayment(ctx, payment.ID, map[string]any{
		"status":      enums.PaymentStatusVerified,
		"verified_by": input.AdminID,
		"verified_at": now,
		"notes":       input.Notes,
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify payment")
	}

	paid, err := repo.SumVerifiedByMove(ctx, move.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum verified payments")
	}

	updates := map[string]any{
		"status":         next.Status,
		"payment_status": next.Payment,
		"amount_paid":    paid,
	}
	if payment.PaymentType == enums.PaymentTypeToken {
		updates["token_paid"] = true
		updates["token_paid_at"] = now
		updates["activated_at"] = now
	}
	if err := movesRepo.Update(ctx, move.ID, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update move after verification")
	}

	role := enums.UserRoleAdmin
	if err := s.recorder.Record(ctx, tx, activity.RecordInput{
		MoveID:    move.ID,
		ActorID:   &input.AdminID,
		ActorRole: &role,
		Type:      enums.ActivityTypePaymentVerified,
		Title:     fmt.Sprintf("Payment verified (%s)", payment.PaymentType),
		Metadata: map[string]any{
			"payment_id": payment.ID,
			"amount":     payment.Amount,
			"mode":       payment.Mode,
		},
	}); err != nil {
		return err
	}

	moveID := move.ID
	return s.notifier.Notify(ctx, tx, notifications.NotifyInput{
		UserID: move.UserID,
		MoveID: &moveID,
		Type:   enums.NotificationTypePaymentVerified,
		Title:  "Payment verified",
		Body:   fmt.Sprintf("Your %s payment of ₹%s has been verified.", payment.PaymentType, payment.Amount),
	})
}

func (s *service) reject(ctx context.Context, tx *gorm.DB, repo Repository, movesRepo moves.Repository, move *models.Move, payment *models.Payment, input VerifyInput) error {
	event := moves.EventBalanceRejected
	if payment.PaymentType == enums.PaymentTypeToken {
		event = moves.EventTokenRejected
	}
	next, err := moves.Apply(moves.State{Status: move.Status, Payment: move.PaymentStatus}, event)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := repo.UpdatePayment(ctx, payment.ID, map[string]any{
		"status":      enums.PaymentStatusFailed,
		"verified_by": input.AdminID,
		"verified_at": now,
		"notes":       input.Notes,
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reject payment")
	}

	if err := movesRepo.Update(ctx, move.ID, map[string]any{
		"status":         next.Status,
		"payment_status": next.Payment,
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update move after rejection")
	}

	role := enums.UserRoleAdmin
	if err := s.recorder.Record(ctx, tx, activity.RecordInput{
		MoveID:    move.ID,
		ActorID:   &input.AdminID,
		ActorRole: &role,
		Type:      enums.ActivityTypePaymentRejected,
		Title:     fmt.Sprintf("Payment rejected (%s)", payment.PaymentType),
		Metadata: map[string]any{
			"payment_id": payment.ID,
			"amount":     payment.Amount,
		},
	}); err != nil {
		return err
	}

	moveID := move.ID
	return s.notifier.Notify(ctx, tx, notifications.NotifyInput{
		UserID: move.UserID,
		MoveID: &moveID,
		Type:   enums.NotificationTypePaymentRejected,
		Title:  "Payment rejected",
		Body:   fmt.Sprintf("Your %s payment of ₹%s was rejected. Please resubmit.", payment.PaymentType, payment.Amount),
	})
}

func (s *service) PayBalance(ctx context.Context, input PayBalanceInput) (*models.Payment, error) {
	if input.MoveID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id required")
	}
	if !input.Mode.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment mode")
	}

	var payment *models.Payment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		movesRepo := s.moves.WithTx(tx)
		move, err := s.lockMove(ctx, movesRepo, input.MoveID)
		if err != nil {
			return err
		}
		if move.UserID != input.UserID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "move does not belong to user")
		}

		balance := balanceDue(move)
		if !balance.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeNoBalanceDue, "no balance due on this move")
		}

		next, err := moves.Apply(moves.State{Status: move.Status, Payment: move.PaymentStatus}, moves.EventBalanceSubmitted)
		if err != nil {
			return err
		}

		repo := s.repo.WithTx(tx)
		payment = &models.Payment{
			MoveID:        move.ID,
			UserID:        input.UserID,
			Amount:        balance,
			Mode:          input.Mode,
			Status:        enums.PaymentStatusUnderVerification,
			PaymentType:   enums.PaymentTypeBalance,
			TransactionID: input.TransactionID,
			Notes:         input.Notes,
		}
		if _, err := repo.CreatePayment(ctx, payment); err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.New(pkgerrors.CodeConflict, "a balance payment is already awaiting verification")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create balance payment")
		}

		updates := map[string]any{
			"status":         next.Status,
			"payment_status": next.Payment,
		}

		autoVerified := input.Mode.AutoVerify()
		if autoVerified {
			now := time.Now().UTC()
			if err := repo.UpdatePayment(ctx, payment.ID, map[string]any{
				"status":      enums.PaymentStatusVerified,
				"verified_at": now,
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "auto-verify balance payment")
			}
			payment.Status = enums.PaymentStatusVerified
			payment.VerifiedAt = &now

			next, err = moves.Apply(next, moves.EventBalanceApproved)
			if err != nil {
				return err
			}
			paid, err := repo.SumVerifiedByMove(ctx, move.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum verified payments")
			}
			updates["status"] = next.Status
			updates["payment_status"] = next.Payment
			updates["amount_paid"] = paid
		}
		if err := movesRepo.Update(ctx, move.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update move payment state")
		}

		role := enums.UserRoleCustomer
		if err := s.recorder.Record(ctx, tx, activity.RecordInput{
			MoveID:    move.ID,
			ActorID:   &input.UserID,
			ActorRole: &role,
			Type:      enums.ActivityTypePaymentInitiated,
			Title:     "Balance payment submitted",
			Metadata: map[string]any{
				"amount":        balance,
				"mode":          input.Mode,
				"auto_verified": autoVerified,
			},
		}); err != nil {
			return err
		}

		return s.notifyAdmins(ctx, tx, move.ID, enums.NotificationTypePaymentReceived,
			"Balance payment submitted",
			fmt.Sprintf("Balance of ₹%s paid via %s for %s", balance, input.Mode, move.Title))
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *service) PayOnline(ctx context.Context, input PayOnlineInput) (*models.Payment, error) {
	if input.MoveID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id required")
	}
	if !input.Mode.IsValid() || !input.Mode.AutoVerify() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "online payment requires an auto-verified mode")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	var payment *models.Payment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		movesRepo := s.moves.WithTx(tx)
		move, err := s.lockMove(ctx, movesRepo, input.MoveID)
		if err != nil {
			return err
		}
		if move.UserID != input.UserID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "move does not belong to user")
		}
		if move.Status != enums.MoveStatusActive {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "online payments require an active move")
		}

		balance := balanceDue(move)
		if !balance.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeNoBalanceDue, "no balance due on this move")
		}

		amount := input.Amount.Round(0)
		paymentType := enums.PaymentTypeBalance
		if !move.TokenPaid {
			paymentType = enums.PaymentTypeFull
		}

		now := time.Now().UTC()
		repo := s.repo.WithTx(tx)
		payment = &models.Payment{
			MoveID:        move.ID,
			UserID:        input.UserID,
			Amount:        amount,
			Mode:          input.Mode,
			Status:        enums.PaymentStatusVerified,
			PaymentType:   paymentType,
			TransactionID: input.TransactionID,
			VerifiedAt:    &now,
		}
		if _, err := repo.CreatePayment(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create online payment")
		}

		paid, err := repo.SumVerifiedByMove(ctx, move.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum verified payments")
		}

		updates := map[string]any{"amount_paid": paid}
		if amount.Cmp(balance) >= 0 {
			next, err := moves.Apply(moves.State{Status: move.Status, Payment: move.PaymentStatus}, moves.EventFullPaymentReceived)
			if err != nil {
				return err
			}
			updates["status"] = next.Status
			updates["payment_status"] = next.Payment
		} else {
			// Partial settlement keeps the move active; only the payment
			// ledger state changes.
			updates["payment_status"] = enums.MovePaymentStatusPartial
		}
		if err := movesRepo.Update(ctx, move.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update move payment state")
		}

		role := enums.UserRoleCustomer
		if err := s.recorder.Record(ctx, tx, activity.RecordInput{
			MoveID:    move.ID,
			ActorID:   &input.UserID,
			ActorRole: &role,
			Type:      enums.ActivityTypePaymentVerified,
			Title:     "Online payment received",
			Metadata: map[string]any{
				"amount":        amount,
				"mode":          input.Mode,
				"auto_verified": true,
			},
		}); err != nil {
			return err
		}

		return s.notifyAdmins(ctx, tx, move.ID, enums.NotificationTypePaymentReceived,
			"Online payment received",
			fmt.Sprintf("₹%s received via %s for %s", amount, input.Mode, move.Title))
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *service) MarkCashReceived(ctx context.Context, input MarkCashInput) (*models.Payment, error) {
	if input.MoveID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id required")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	var payment *models.Payment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		movesRepo := s.moves.WithTx(tx)
		move, err := s.lockMove(ctx, movesRepo, input.MoveID)
		if err != nil {
			return err
		}
		if move.AgentID == nil || *move.AgentID != input.AgentID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the assigned agent can record cash")
		}

		repo := s.repo.WithTx(tx)
		quote, err := repo.FindQuoteByMove(ctx, move.ID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodePriceNotSet, "an agent quote is required before recording cash")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load agent quote")
		}

		remaining := quote.Total.Sub(move.AmountPaid)
		if input.Amount.Sub(remaining).Abs().Cmp(one) > 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cash amount must match the balance due within one rupee").WithDetails(map[string]any{
				"expected": remaining,
				"received": input.Amount,
			})
		}

		next, err := moves.Apply(moves.State{Status: move.Status, Payment: move.PaymentStatus}, moves.EventFullPaymentReceived)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		paymentType := enums.PaymentTypeBalance
		if !move.TokenPaid {
			paymentType = enums.PaymentTypeFull
		}
		payment = &models.Payment{
			MoveID:      move.ID,
			UserID:      move.UserID,
			Amount:      input.Amount.Round(0),
			Mode:        enums.PaymentModeCash,
			Status:      enums.PaymentStatusVerified,
			PaymentType: paymentType,
			Notes:       input.Notes,
			RecordedBy:  &input.AgentID,
			VerifiedBy:  &input.AgentID,
			VerifiedAt:  &now,
		}
		if _, err := repo.CreatePayment(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record cash payment")
		}

		paid, err := repo.SumVerifiedByMove(ctx, move.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum verified payments")
		}
		if err := movesRepo.Update(ctx, move.ID, map[string]any{
			"status":         next.Status,
			"payment_status": next.Payment,
			"amount_paid":    paid,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update move payment state")
		}

		role := enums.UserRoleAgent
		if err := s.recorder.Record(ctx, tx, activity.RecordInput{
			MoveID:    move.ID,
			ActorID:   &input.AgentID,
			ActorRole: &role,
			Type:      enums.ActivityTypePaymentVerified,
			Title:     "Cash payment collected",
			Metadata: map[string]any{
				"amount": payment.Amount,
			},
		}); err != nil {
			return err
		}

		moveID := move.ID
		return s.notifier.Notify(ctx, tx, notifications.NotifyInput{
			UserID: move.UserID,
			MoveID: &moveID,
			Type:   enums.NotificationTypePaymentReceived,
			Title:  "Cash payment recorded",
			Body:   fmt.Sprintf("₹%s in cash was collected by your agent.", payment.Amount),
		})
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *service) AdminMarkPaid(ctx context.Context, input AdminMarkPaidInput) (*models.Payment, error) {
	if input.MoveID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id required")
	}
	if !input.Mode.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment mode")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	var payment *models.Payment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		movesRepo := s.moves.WithTx(tx)
		move, err := s.lockMove(ctx, movesRepo, input.MoveID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		paymentType := enums.PaymentTypeBalance
		if !move.TokenPaid {
			paymentType = enums.PaymentTypeFull
		}
		repo := s.repo.WithTx(tx)
		payment = &models.Payment{
			MoveID:      move.ID,
			UserID:      move.UserID,
			Amount:      input.Amount.Round(0),
			Mode:        input.Mode,
			Status:      enums.PaymentStatusVerified,
			PaymentType: paymentType,
			Notes:       input.Notes,
			RecordedBy:  &input.AdminID,
			VerifiedBy:  &input.AdminID,
			VerifiedAt:  &now,
		}
		if _, err := repo.CreatePayment(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record manual payment")
		}

		paid, err := repo.SumVerifiedByMove(ctx, move.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum verified payments")
		}

		updates := map[string]any{"amount_paid": paid}
		due := dueAmount(move)
		if move.Status == enums.MoveStatusActive && due.IsPositive() && paid.Cmp(due) >= 0 {
			next, err := moves.Apply(moves.State{Status: move.Status, Payment: move.PaymentStatus}, moves.EventFullPaymentReceived)
			if err != nil {
				return err
			}
			updates["status"] = next.Status
			updates["payment_status"] = next.Payment
		} else if due.IsPositive() && paid.Cmp(due) < 0 {
			updates["payment_status"] = enums.MovePaymentStatusPartial
		} else {
			updates["payment_status"] = enums.MovePaymentStatusVerified
		}
		if err := movesRepo.Update(ctx, move.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update move payment state")
		}

		role := enums.UserRoleAdmin
		if err := s.recorder.Record(ctx, tx, activity.RecordInput{
			MoveID:    move.ID,
			ActorID:   &input.AdminID,
			ActorRole: &role,
			Type:      enums.ActivityTypePaymentVerified,
			Title:     "Payment recorded by admin",
			Metadata: map[string]any{
				"amount": payment.Amount,
				"mode":   input.Mode,
			},
		}); err != nil {
			return err
		}

		moveID := move.ID
		return s.notifier.Notify(ctx, tx, notifications.NotifyInput{
			UserID: move.UserID,
			MoveID: &moveID,
			Type:   enums.NotificationTypePaymentReceived,
			Title:  "Payment recorded",
			Body:   fmt.Sprintf("A payment of ₹%s was recorded on your move.", payment.Amount),
		})
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *service) ListByMove(ctx context.Context, moveID, actorID uuid.UUID, role enums.UserRole) ([]models.Payment, error) {
	if moveID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id required")
	}

	move, err := s.moves.Find(ctx, moveID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "move not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load move")
	}
	if role != enums.UserRoleAdmin && move.UserID != actorID && (move.AgentID == nil || *move.AgentID != actorID) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "move does not belong to user")
	}

	payments, err := s.repo.ListByMove(ctx, moveID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return payments, nil
}

func (s *service) ListPendingVerifications(ctx context.Context, params pagination.Params) (*ListPendingResult, error) {
	rows, next, err := s.repo.ListUnderVerification(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending payments")
	}
	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListPendingResult{Items: rows, Cursor: cursor}, nil
}

func (s *service) lockMove(ctx context.Context, repo moves.Repository, moveID uuid.UUID) (*models.Move, error) {
	move, err := repo.FindForUpdate(ctx, moveID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "move not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load move")
	}
	return move, nil
}

func (s *service) notifyAdmins(ctx context.Context, tx *gorm.DB, moveID uuid.UUID, kind enums.NotificationType, title, body string) error {
	adminIDs, err := s.admins.ListAdminIDs(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list admins")
	}
	for _, adminID := range adminIDs {
		id := moveID
		if err := s.notifier.Notify(ctx, tx, notifications.NotifyInput{
			UserID: adminID,
			MoveID: &id,
			Type:   kind,
			Title:  title,
			Body:   body,
		}); err != nil {
			return err
		}
	}
	return nil
}

// dueAmount is the authoritative amount owed: the agent's final quote when
// one exists, otherwise the priced total.
func dueAmount(move *models.Move) decimal.Decimal {
	if move.FinalAmount != nil && move.FinalAmount.IsPositive() {
		return *move.FinalAmount
	}
	return move.AmountTotal
}

func balanceDue(move *models.Move) decimal.Decimal {
	balance := dueAmount(move).Sub(move.AmountPaid)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

func invoiceNumber() string {
	return "MA-" + strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
}
