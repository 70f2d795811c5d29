package moves

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/internal/activity"
	"github.com/amitsingh12ap/moveassist/internal/notifications"
	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
	"github.com/amitsingh12ap/moveassist/pkg/geo"
	"github.com/amitsingh12ap/moveassist/pkg/pagination"
)

const flagIntraCityOnly = "intra_city_only"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type flagChecker interface {
	Enabled(ctx context.Context, key string) (bool, error)
}

// Service defines move lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateMoveInput) (*models.Move, error)
	Get(ctx context.Context, input GetInput) (*models.Move, error)
	List(ctx context.Context, input ListInput) (*ListResult, error)
	Update(ctx context.Context, input UpdateMoveInput) (*models.Move, error)
	Delete(ctx context.Context, input GetInput) error
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Move, error)
	Complete(ctx context.Context, input CompleteInput) (*models.Move, error)
	ForceActivate(ctx context.Context, moveID, adminID uuid.UUID) (*models.Move, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	recorder activity.Recorder
	notifier notifications.Service
	flags    flagChecker
}

// NewService builds a move service with the required dependencies.
func NewService(repo Repository, tx txRunner, recorder activity.Recorder, notifier notifications.Service, flags flagChecker) (Service, error) {
	if repo == nil {
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
	if flags == nil {
		return nil, fmt.Errorf("feature flag checker required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		recorder: recorder,
		notifier: notifier,
		flags:    flags,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateMoveInput) (*models.Move, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	if input.FromAddress == "" || input.FromCity == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "origin address and city required")
	}
	if input.ToAddress == "" || input.ToCity == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "destination address and city required")
	}
	if input.BHKType != nil && !input.BHKType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid bhk type")
	}
	if input.FloorFrom < 0 || input.FloorTo < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "floor numbers cannot be negative")
	}

	intraOnly, err := s.flags.Enabled(ctx, flagIntraCityOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check feature flag")
	}
	if intraOnly && geo.NormalizeCity(input.FromCity) != geo.NormalizeCity(input.ToCity) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "only moves within the same city are currently supported")
	}

	move := &models.Move{
		UserID:        input.UserID,
		Title:         input.Title,
		FromAddress:   input.FromAddress,
		FromCity:      input.FromCity,
		FromLat:       input.FromLat,
		FromLng:       input.FromLng,
		ToAddress:     input.ToAddress,
		ToCity:        input.ToCity,
		ToLat:         input.ToLat,
		ToLng:         input.ToLng,
		BHKType:       input.BHKType,
		FloorFrom:     input.FloorFrom,
		FloorTo:       input.FloorTo,
		HasLiftFrom:   input.HasLiftFrom,
		HasLiftTo:     input.HasLiftTo,
		MoveDate:      input.MoveDate,
		Status:        enums.MoveStatusCreated,
		PaymentStatus: enums.MovePaymentStatusPending,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).Create(ctx, move); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create move")
		}
		role := enums.UserRoleCustomer
		return s.recorder.Record(ctx, tx, activity.RecordInput{
			MoveID:    move.ID,
			ActorID:   &input.UserID,
			ActorRole: &role,
			Type:      enums.ActivityTypeMoveCreated,
			Title:     "Move created",
		})
	})
	if err != nil {
		return nil, err
	}
	return move, nil
}

func (s *service) Get(ctx context.Context, input GetInput) (*models.Move, error) {
	if input.MoveID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id required")
	}

	move, err := s.repo.Find(ctx, input.MoveID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "move not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load move")
	}
	if err := authorizeRead(move, input.ActorID, input.ActorRole); err != nil {
		return nil, err
	}
	return move, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if input.ActorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	filters := ListFilters{Status: input.Status}
	switch input.ActorRole {
	case enums.UserRoleCustomer:
		userID := input.ActorID
		filters.UserID = &userID
	case enums.UserRoleAgent:
		agentID := input.ActorID
		filters.AgentID = &agentID
	case enums.UserRoleAdmin:
		// Admins see everything.
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "unknown role")
	}

	rows, next, err := s.repo.List(ctx, filters, pagination.Params{Limit: input.Limit, Cursor: input.Cursor})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list moves")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: rows, Cursor: cursor}, nil
}

func (s *service) Update(ctx context.Context, input UpdateMoveInput) (*models.Move, error) {
	if input.MoveID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id required")
	}
	if input.BHKType != nil && !input.BHKType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid bhk type")
	}

	var updated *models.Move
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		move, err := repo.FindForUpdate(ctx, input.MoveID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "move not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load move")
		}
		if move.UserID != input.ActorID && input.ActorRole != enums.UserRoleAdmin {
			return pkgerrors.New(pkgerrors.CodeForbidden, "move does not belong to user")
		}
		if !move.Status.IsPreActive() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "move details can only be edited before activation")
		}

		updates := buildMoveUpdates(input)
		if len(updates) == 0 {
			updated = move
			return nil
		}
		if err := repo.Update(ctx, move.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update move")
		}

		role := input.ActorRole
		if err := s.recorder.Record(ctx, tx, activity.RecordInput{
			MoveID:    move.ID,
			ActorID:   &input.ActorID,
			ActorRole: &role,
			Type:      enums.ActivityTypeNote,
			Title:     "Move details updated",
		}); err != nil {
			return err
		}

		updated, err = repo.Find(ctx, move.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload move")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a move that has not been activated yet. Once money has
// moved the record stays for audit and can only be closed, not deleted.
func (s *service) Delete(ctx context.Context, input GetInput) error {
	if input.MoveID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "move id required")
	}

	move, err := s.repo.Find(ctx, input.MoveID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "move not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load move")
	}
	if input.ActorRole != enums.UserRoleAdmin && move.UserID != input.ActorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "move does not belong to user")
	}
	if input.ActorRole != enums.UserRoleAdmin && !move.Status.IsPreActive() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "active moves cannot be deleted").
			WithDetails(map[string]any{"move_status": move.Status})
	}

	if err := s.repo.Delete(ctx, move.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete move")
	}
	return nil
}

func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Move, error) {
	if input.MoveID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id required")
	}

	var event Event
	switch input.Status {
	case enums.MoveStatusPacking:
		event = EventPackingStarted
	case enums.MoveStatusInTransit:
		event = EventTransitStarted
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be packing or in_transit")
	}

	var updated *models.Move
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		move, err := repo.FindForUpdate(ctx, input.MoveID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "move not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load move")
		}
		if err := authorizeAgentAction(move, input.ActorID, input.ActorRole); err != nil {
			return err
		}

		next, err := Apply(State{Status: move.Status, Payment: move.PaymentStatus}, event)
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, move.ID, map[string]any{"status": next.Status}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update move status")
		}

		if err := s.recordStatusChange(ctx, tx, move, next, input.ActorID, input.ActorRole); err != nil {
			return err
		}

		move.Status = next.Status
		updated = move
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Complete(ctx context.Context, input CompleteInput) (*models.Move, error) {
	if input.MoveID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id required")
	}

	var updated *models.Move
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		move, err := repo.FindForUpdate(ctx, input.MoveID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "move not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load move")
		}
		if err := authorizeAgentAction(move, input.ActorID, input.ActorRole); err != nil {
			return err
		}

		if err := checkCompletionReadiness(ctx, repo, move.ID); err != nil {
			return err
		}

		next, err := Apply(State{Status: move.Status, Payment: move.PaymentStatus}, EventCompleted)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"status":       next.Status,
			"completed_at": now,
		}
		if err := repo.Update(ctx, move.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete move")
		}

		if err := s.recordStatusChange(ctx, tx, move, next, input.ActorID, input.ActorRole); err != nil {
			return err
		}

		move.Status = next.Status
		move.CompletedAt = &now
		updated = move
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) ForceActivate(ctx context.Context, moveID, adminID uuid.UUID) (*models.Move, error) {
	if moveID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id required")
	}
	if adminID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var updated *models.Move
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		move, err := repo.FindForUpdate(ctx, moveID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "move not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load move")
		}

		next, err := Apply(State{Status: move.Status, Payment: move.PaymentStatus}, EventForceActivated)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"status":         next.Status,
			"payment_status": next.Payment,
			"activated_at":   now,
		}
		if err := repo.Update(ctx, move.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "force activate move")
		}

		if err := s.recordStatusChange(ctx, tx, move, next, adminID, enums.UserRoleAdmin); err != nil {
			return err
		}

		move.Status = next.Status
		move.PaymentStatus = next.Payment
		move.ActivatedAt = &now
		updated = move
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// checkCompletionReadiness enforces the delivery preconditions before a move
// can complete: every box delivered, every furniture item inspected, and an
// after photo on every inspected item.
func checkCompletionReadiness(ctx context.Context, repo Repository, moveID uuid.UUID) error {
	pending, err := repo.CountUndeliveredBoxes(ctx, moveID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count undelivered boxes")
	}
	if pending > 0 {
		return pkgerrors.New(pkgerrors.CodeBoxesPending, "boxes not yet delivered").WithDetails(map[string]any{
			"pending_boxes": pending,
		})
	}

	missingCondition, err := repo.ListFurnitureMissingCondition(ctx, moveID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check furniture conditions")
	}
	if len(missingCondition) > 0 {
		return pkgerrors.New(pkgerrors.CodeFurniturePending, "furniture items missing delivery condition").WithDetails(map[string]any{
			"items": missingCondition,
		})
	}

	missingPhoto, err := repo.ListFurnitureMissingAfterPhoto(ctx, moveID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check delivery photos")
	}
	if len(missingPhoto) > 0 {
		return pkgerrors.New(pkgerrors.CodeMissingDeliveryPhoto, "delivery photo missing").WithDetails(map[string]any{
			"items": missingPhoto,
		})
	}
	return nil
}

// recordStatusChange appends the activity entry and, when the actor is not
// the move owner, a notification, inside the caller's transaction.
func (s *service) recordStatusChange(ctx context.Context, tx *gorm.DB, move *models.Move, next State, actorID uuid.UUID, actorRole enums.UserRole) error {
	role := actorRole
	if err := s.recorder.Record(ctx, tx, activity.RecordInput{
		MoveID:    move.ID,
		ActorID:   &actorID,
		ActorRole: &role,
		Type:      enums.ActivityTypeStatusChanged,
		Title:     fmt.Sprintf("Move moved to %s", next.Status),
		Metadata: map[string]any{
			"from_status":    move.Status,
			"to_status":      next.Status,
			"payment_status": next.Payment,
		},
	}); err != nil {
		return err
	}

	if actorID == move.UserID {
		return nil
	}
	moveID := move.ID
	return s.notifier.Notify(ctx, tx, notifications.NotifyInput{
		UserID: move.UserID,
		MoveID: &moveID,
		Type:   enums.NotificationTypeMoveStatusChanged,
		Title:  "Move status updated",
		Body:   fmt.Sprintf("%s is now %s", move.Title, next.Status),
	})
}

func authorizeRead(move *models.Move, actorID uuid.UUID, role enums.UserRole) error {
	if role == enums.UserRoleAdmin {
		return nil
	}
	if move.UserID == actorID {
		return nil
	}
	if move.AgentID != nil && *move.AgentID == actorID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "move does not belong to user")
}

func authorizeAgentAction(move *models.Move, actorID uuid.UUID, role enums.UserRole) error {
	if role == enums.UserRoleAdmin {
		return nil
	}
	if role == enums.UserRoleAgent && move.AgentID != nil && *move.AgentID == actorID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "only the assigned agent can perform this action")
}

func buildMoveUpdates(input UpdateMoveInput) map[string]any {
	updates := map[string]any{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.FromAddress != nil {
		updates["from_address"] = *input.FromAddress
	}
	if input.FromCity != nil {
		updates["from_city"] = *input.FromCity
	}
	if input.FromLat != nil {
		updates["from_lat"] = *input.FromLat
	}
	if input.FromLng != nil {
		updates["from_lng"] = *input.FromLng
	}
	if input.ToAddress != nil {
		updates["to_address"] = *input.ToAddress
	}
	if input.ToCity != nil {
		updates["to_city"] = *input.ToCity
	}
	if input.ToLat != nil {
		updates["to_lat"] = *input.ToLat
	}
	if input.ToLng != nil {
		updates["to_lng"] = *input.ToLng
	}
	if input.BHKType != nil {
		updates["bhk_type"] = *input.BHKType
	}
	if input.FloorFrom != nil {
		updates["floor_from"] = *input.FloorFrom
	}
	if input.FloorTo != nil {
		updates["floor_to"] = *input.FloorTo
	}
	if input.HasLiftFrom != nil {
		updates["has_lift_from"] = *input.HasLiftFrom
	}
	if input.HasLiftTo != nil {
		updates["has_lift_to"] = *input.HasLiftTo
	}
	if input.MoveDate != nil {
		updates["move_date"] = *input.MoveDate
	}
	return updates
}
