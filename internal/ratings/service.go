package ratings

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/internal/activity"
	"github.com/amitsingh12ap/moveassist/internal/moves"
	"github.com/amitsingh12ap/moveassist/internal/notifications"
	"github.com/amitsingh12ap/moveassist/pkg/db"
	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type agentUpdater interface {
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

// SubmitInput is the customer's rating of a completed move.
type SubmitInput struct {
	MoveID     uuid.UUID
	CustomerID uuid.UUID
	Rating     int
	Review     *string
}

// Service records customer ratings and keeps the agent aggregate current.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*models.MoveRating, error)
	GetByMove(ctx context.Context, moveID uuid.UUID) (*models.MoveRating, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID) ([]models.MoveRating, error)
}

type service struct {
	repo     Repository
	moves    moves.Repository
	agents   agentUpdater
	tx       txRunner
	recorder activity.Recorder
	notifier notifications.Service
}

// NewService builds a ratings service with the required dependencies.
func NewService(repo Repository, movesRepo moves.Repository, agents agentUpdater, tx txRunner, recorder activity.Recorder, notifier notifications.Service) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ratings repository required")
	}
	if movesRepo == nil {
		return nil, fmt.Errorf("moves repository required")
	}
	if agents == nil {
		return nil, fmt.Errorf("agent updater required")
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
		agents:   agents,
		tx:       tx,
		recorder: recorder,
		notifier: notifier,
	}, nil
}

// Submit records the one rating a customer leaves on their completed move and
// refreshes the assigned agent's average.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*models.MoveRating, error) {
	if input.MoveID == uuid.Nil || input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id and customer id required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	var saved *models.MoveRating
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		movesRepo := s.moves.WithTx(tx)
		move, err := movesRepo.FindForUpdate(ctx, input.MoveID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "move not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load move")
		}
		if move.UserID != input.CustomerID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the move owner may rate it")
		}
		if move.Status != enums.MoveStatusCompleted && move.Status != enums.MoveStatusClosed {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "only completed moves can be rated").
				WithDetails(map[string]any{"status": move.Status})
		}
		if move.Rated {
			return pkgerrors.New(pkgerrors.CodeConflict, "move already rated")
		}

		repo := s.repo.WithTx(tx)
		saved, err = repo.Create(ctx, &models.MoveRating{
			MoveID:  move.ID,
			UserID:  input.CustomerID,
			AgentID: move.AgentID,
			Rating:  input.Rating,
			Review:  input.Review,
		})
		if err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.New(pkgerrors.CodeConflict, "move already rated")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save rating")
		}

		if err := movesRepo.Update(ctx, move.ID, map[string]any{"rated": true}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark move rated")
		}

		if move.AgentID != nil {
			average, _, err := repo.AverageForAgent(ctx, *move.AgentID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "compute agent average")
			}
			rounded := math.Round(average*100) / 100
			if err := s.agents.Update(ctx, *move.AgentID, map[string]any{"rating": rounded}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update agent rating")
			}
		}

		actorRole := enums.UserRoleCustomer
		if err := s.recorder.Record(ctx, tx, activity.RecordInput{
			MoveID:    move.ID,
			ActorID:   &input.CustomerID,
			ActorRole: &actorRole,
			Type:      enums.ActivityTypeRatingSubmitted,
			Title:     fmt.Sprintf("Move rated %d/5", input.Rating),
			Metadata:  map[string]any{"rating": input.Rating},
		}); err != nil {
			return err
		}

		if move.AgentID != nil {
			moveID := move.ID
			return s.notifier.Notify(ctx, tx, notifications.NotifyInput{
				UserID: *move.AgentID,
				MoveID: &moveID,
				Type:   enums.NotificationTypeRatingReceived,
				Title:  "You received a rating",
				Body:   fmt.Sprintf("A customer rated their move %d/5.", input.Rating),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *service) GetByMove(ctx context.Context, moveID uuid.UUID) (*models.MoveRating, error) {
	rating, err := s.repo.FindByMove(ctx, moveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "move not rated yet")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rating")
	}
	return rating, nil
}

func (s *service) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]models.MoveRating, error) {
	out, err := s.repo.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list agent ratings")
	}
	return out, nil
}
