package disputes

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

type adminLister interface {
	ListAdminIDs(ctx context.Context) ([]uuid.UUID, error)
}

type furnitureFinder interface {
	FindFurniture(ctx context.Context, id uuid.UUID) (*models.FurnitureItem, error)
}

// RaiseInput opens a dispute on a move, optionally against one furniture item.
type RaiseInput struct {
	MoveID      uuid.UUID
	RaisedBy    uuid.UUID
	FurnitureID *uuid.UUID
	Description string
	PhotoURL    *string
}

// ResolveInput is an admin's decision on an open dispute.
type ResolveInput struct {
	DisputeID  uuid.UUID
	AdminID    uuid.UUID
	Status     enums.DisputeStatus
	AdminNotes *string
}

// Service manages customer disputes from opening through resolution.
type Service interface {
	Raise(ctx context.Context, input RaiseInput) (*models.Dispute, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Dispute, error)
	List(ctx context.Context, filters ListFilters) ([]models.Dispute, error)
	Resolve(ctx context.Context, input ResolveInput) (*models.Dispute, error)
}

type service struct {
	repo      Repository
	moves     moves.Repository
	furniture furnitureFinder
	tx        txRunner
	recorder  activity.Recorder
	notifier  notifications.Service
	admins    adminLister
}

// NewService builds a disputes service with the required dependencies.
func NewService(repo Repository, movesRepo moves.Repository, furniture furnitureFinder, tx txRunner, recorder activity.Recorder, notifier notifications.Service, admins adminLister) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("disputes repository required")
	}
	if movesRepo == nil {
		return nil, fmt.Errorf("moves repository required")
	}
	if furniture == nil {
		return nil, fmt.Errorf("furniture finder required")
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
		repo:      repo,
		moves:     movesRepo,
		furniture: furniture,
		tx:        tx,
		recorder:  recorder,
		notifier:  notifier,
		admins:    admins,
	}, nil
}

// Raise opens a dispute on behalf of the move owner and alerts every admin.
func (s *service) Raise(ctx context.Context, input RaiseInput) (*models.Dispute, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description required")
	}

	var saved *models.Dispute
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		move, err := s.moves.WithTx(tx).Find(ctx, input.MoveID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "move not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load move")
		}
		if move.UserID != input.RaisedBy {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the move owner may raise a dispute")
		}
		if input.FurnitureID != nil {
			item, err := s.furniture.FindFurniture(ctx, *input.FurnitureID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "furniture item not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load furniture item")
			}
			if item.MoveID != move.ID {
				return pkgerrors.New(pkgerrors.CodeValidation, "furniture item belongs to a different move")
			}
		}

		saved, err = s.repo.WithTx(tx).Create(ctx, &models.Dispute{
			MoveID:      move.ID,
			RaisedBy:    input.RaisedBy,
			FurnitureID: input.FurnitureID,
			Description: description,
			PhotoURL:    input.PhotoURL,
			Status:      enums.DisputeStatusOpen,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save dispute")
		}

		actorRole := enums.UserRoleCustomer
		if err := s.recorder.Record(ctx, tx, activity.RecordInput{
			MoveID:    move.ID,
			ActorID:   &input.RaisedBy,
			ActorRole: &actorRole,
			Type:      enums.ActivityTypeDisputeOpened,
			Title:     "Dispute opened",
			Metadata:  map[string]any{"dispute_id": saved.ID},
		}); err != nil {
			return err
		}

		adminIDs, err := s.admins.ListAdminIDs(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list admins")
		}
		moveID := move.ID
		for _, adminID := range adminIDs {
			if err := s.notifier.Notify(ctx, tx, notifications.NotifyInput{
				UserID: adminID,
				MoveID: &moveID,
				Type:   enums.NotificationTypeDisputeUpdate,
				Title:  "New dispute raised",
				Body:   fmt.Sprintf("A customer raised a dispute on move %s.", move.ID),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Dispute, error) {
	dispute, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "dispute not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dispute")
	}
	return dispute, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]models.Dispute, error) {
	out, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list disputes")
	}
	return out, nil
}

// Resolve records an admin decision and notifies the customer who raised it.
func (s *service) Resolve(ctx context.Context, input ResolveInput) (*models.Dispute, error) {
	switch input.Status {
	case enums.DisputeStatusUnderReview, enums.DisputeStatusResolved,
		enums.DisputeStatusRejected, enums.DisputeStatusEscalated:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid dispute status").
			WithDetails(map[string]any{"status": input.Status})
	}

	var updated *models.Dispute
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		dispute, err := repo.Find(ctx, input.DisputeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "dispute not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dispute")
		}
		if dispute.Status == enums.DisputeStatusResolved || dispute.Status == enums.DisputeStatusRejected {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "dispute already closed").
				WithDetails(map[string]any{"status": dispute.Status})
		}

		updates := map[string]any{"status": input.Status}
		if input.AdminNotes != nil {
			updates["admin_notes"] = *input.AdminNotes
		}
		if input.Status == enums.DisputeStatusResolved || input.Status == enums.DisputeStatusRejected {
			now := time.Now().UTC()
			updates["resolved_by"] = input.AdminID
			updates["resolved_at"] = now
		}
		if err := repo.Update(ctx, dispute.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update dispute")
		}
		updated, err = repo.Find(ctx, dispute.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload dispute")
		}

		actorRole := enums.UserRoleAdmin
		if err := s.recorder.Record(ctx, tx, activity.RecordInput{
			MoveID:    dispute.MoveID,
			ActorID:   &input.AdminID,
			ActorRole: &actorRole,
			Type:      enums.ActivityTypeDisputeResolved,
			Title:     fmt.Sprintf("Dispute marked %s", input.Status),
			Metadata:  map[string]any{"dispute_id": dispute.ID, "status": input.Status},
		}); err != nil {
			return err
		}

		moveID := dispute.MoveID
		return s.notifier.Notify(ctx, tx, notifications.NotifyInput{
			UserID: dispute.RaisedBy,
			MoveID: &moveID,
			Type:   enums.NotificationTypeDisputeUpdate,
			Title:  "Dispute updated",
			Body:   fmt.Sprintf("Your dispute is now %s.", input.Status),
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
