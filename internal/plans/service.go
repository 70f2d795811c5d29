package plans

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/internal/activity"
	"github.com/amitsingh12ap/moveassist/internal/moves"
	"github.com/amitsingh12ap/moveassist/internal/notifications"
	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// UpsertInput carries the agent's logistics plan for a move.
type UpsertInput struct {
	MoveID  uuid.UUID
	AgentID uuid.UUID

	VehicleType    *string
	VehicleCount   int
	CrewSize       int
	BoxesSmall     int
	BoxesMedium    int
	BoxesLarge     int
	BubbleWrapRoll int
	TapeRolls      int

	ScheduledStart *time.Time
	ScheduledEnd   *time.Time
	Notes          *string
}

// GetInput identifies a plan lookup and who is asking.
type GetInput struct {
	MoveID    uuid.UUID
	ActorID   uuid.UUID
	ActorRole enums.UserRole
}

// Service manages the single logistics plan on a move.
type Service interface {
	Upsert(ctx context.Context, input UpsertInput) (*models.MovePlan, error)
	Confirm(ctx context.Context, moveID, agentID uuid.UUID) (*models.MovePlan, error)
	Get(ctx context.Context, input GetInput) (*models.MovePlan, error)
}

type service struct {
	repo     Repository
	moves    moves.Repository
	tx       txRunner
	recorder activity.Recorder
	notifier notifications.Service
}

// NewService builds a plans service with the required dependencies.
func NewService(repo Repository, movesRepo moves.Repository, tx txRunner, recorder activity.Recorder, notifier notifications.Service) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("plans repository required")
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
	}, nil
}

// Upsert saves the plan as a draft. Re-submitting replaces the previous plan
// and drops any earlier confirmation.
func (s *service) Upsert(ctx context.Context, input UpsertInput) (*models.MovePlan, error) {
	if input.MoveID == uuid.Nil || input.AgentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id and agent id required")
	}
	if input.VehicleCount < 1 || input.CrewSize < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle count and crew size must be at least 1")
	}
	if input.ScheduledStart != nil && input.ScheduledEnd != nil && input.ScheduledEnd.Before(*input.ScheduledStart) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "scheduled end must not precede start")
	}

	var saved *models.MovePlan
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		move, err := s.authorizeAgent(ctx, tx, input.MoveID, input.AgentID)
		if err != nil {
			return err
		}

		plan := &models.MovePlan{
			MoveID:         move.ID,
			AgentID:        input.AgentID,
			VehicleType:    input.VehicleType,
			VehicleCount:   input.VehicleCount,
			CrewSize:       input.CrewSize,
			BoxesSmall:     input.BoxesSmall,
			BoxesMedium:    input.BoxesMedium,
			BoxesLarge:     input.BoxesLarge,
			BubbleWrapRoll: input.BubbleWrapRoll,
			TapeRolls:      input.TapeRolls,
			ScheduledStart: input.ScheduledStart,
			ScheduledEnd:   input.ScheduledEnd,
			Notes:          input.Notes,
			Status:         enums.PlanStatusDraft,
		}
		saved, err = s.repo.WithTx(tx).Upsert(ctx, plan)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save plan")
		}

		actorRole := enums.UserRoleAgent
		return s.recorder.Record(ctx, tx, activity.RecordInput{
			MoveID:    move.ID,
			ActorID:   &input.AgentID,
			ActorRole: &actorRole,
			Type:      enums.ActivityTypePlanUpdated,
			Title:     "Move plan drafted",
			Metadata: map[string]any{
				"crew_size":     input.CrewSize,
				"vehicle_count": input.VehicleCount,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Confirm locks the drafted plan in and notifies the customer.
func (s *service) Confirm(ctx context.Context, moveID, agentID uuid.UUID) (*models.MovePlan, error) {
	if moveID == uuid.Nil || agentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id and agent id required")
	}

	var confirmed *models.MovePlan
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		move, err := s.authorizeAgent(ctx, tx, moveID, agentID)
		if err != nil {
			return err
		}

		repo := s.repo.WithTx(tx)
		plan, err := repo.FindByMove(ctx, moveID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "no plan drafted for this move")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load plan")
		}
		if plan.Status == enums.PlanStatusConfirmed {
			confirmed = plan
			return nil
		}
		if plan.Status != enums.PlanStatusDraft {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "only a drafted plan can be confirmed").
				WithDetails(map[string]any{"status": plan.Status})
		}

		now := time.Now().UTC()
		if err := repo.Update(ctx, plan.ID, map[string]any{
			"status":       enums.PlanStatusConfirmed,
			"confirmed_at": now,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "confirm plan")
		}
		plan.Status = enums.PlanStatusConfirmed
		plan.ConfirmedAt = &now
		confirmed = plan

		actorRole := enums.UserRoleAgent
		if err := s.recorder.Record(ctx, tx, activity.RecordInput{
			MoveID:    move.ID,
			ActorID:   &agentID,
			ActorRole: &actorRole,
			Type:      enums.ActivityTypePlanUpdated,
			Title:     "Move plan confirmed",
		}); err != nil {
			return err
		}

		body := "Your agent has confirmed the logistics plan for your move."
		if plan.ScheduledStart != nil {
			body = fmt.Sprintf("Your move is scheduled for %s.", plan.ScheduledStart.Format("02 Jan 2006 15:04"))
		}
		planMoveID := move.ID
		return s.notifier.Notify(ctx, tx, notifications.NotifyInput{
			UserID: move.UserID,
			MoveID: &planMoveID,
			Type:   enums.NotificationTypePlanConfirmed,
			Title:  "Move plan confirmed",
			Body:   body,
		})
	})
	if err != nil {
		return nil, err
	}
	return confirmed, nil
}

// Get returns the plan on a move, visible to the owner, the assigned agent,
// and admins.
func (s *service) Get(ctx context.Context, input GetInput) (*models.MovePlan, error) {
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
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to view this plan")
	}

	plan, err := s.repo.FindByMove(ctx, input.MoveID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no plan drafted for this move")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load plan")
	}
	return plan, nil
}

func (s *service) authorizeAgent(ctx context.Context, tx *gorm.DB, moveID, agentID uuid.UUID) (*models.Move, error) {
	move, err := s.moves.WithTx(tx).FindForUpdate(ctx, moveID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "move not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load move")
	}
	if move.AgentID == nil || *move.AgentID != agentID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the assigned agent may plan this move")
	}
	return move, nil
}
