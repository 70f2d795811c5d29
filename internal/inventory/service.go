package inventory

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

// Service manages the physical inventory tracked on a move.
type Service interface {
	CreateBox(ctx context.Context, input CreateBoxInput) (*models.Box, error)
	ListBoxes(ctx context.Context, moveID uuid.UUID, actor Actor) ([]models.Box, error)
	ScanBox(ctx context.Context, input ScanBoxInput) (*models.Box, error)
	UpdateBox(ctx context.Context, input UpdateBoxInput) (*models.Box, error)
	DeleteBox(ctx context.Context, boxID uuid.UUID, actor Actor) error

	CreateFurniture(ctx context.Context, input CreateFurnitureInput) (*models.FurnitureItem, error)
	ListFurniture(ctx context.Context, moveID uuid.UUID, actor Actor) ([]models.FurnitureItem, error)
	UpdateFurniture(ctx context.Context, input UpdateFurnitureInput) (*models.FurnitureItem, error)
	DeleteFurniture(ctx context.Context, itemID uuid.UUID, actor Actor) error
	AddFurniturePhoto(ctx context.Context, input AddPhotoInput) (*models.FurniturePhoto, error)
}

type service struct {
	repo     Repository
	moves    moves.Repository
	tx       txRunner
	recorder activity.Recorder
	notifier notifications.Service
}

// NewService builds an inventory service with the required dependencies.
func NewService(repo Repository, movesRepo moves.Repository, tx txRunner, recorder activity.Recorder, notifier notifications.Service) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
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

// CreateBox registers a new box under the move with a fresh QR code and the
// next sequential box number.
func (s *service) CreateBox(ctx context.Context, input CreateBoxInput) (*models.Box, error) {
	if input.MoveID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id required")
	}
	if input.Label == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "box label required")
	}

	var created *models.Box
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		move, err := s.authorizeManage(ctx, tx, input.MoveID, input.Actor)
		if err != nil {
			return err
		}
		if move.Status.IsPreActive() {
			return pkgerrors.New(pkgerrors.CodePaymentRequired, "move is not active yet")
		}

		repo := s.repo.WithTx(tx)
		number, err := repo.NextBoxNumber(ctx, move.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "allocate box number")
		}

		box := &models.Box{
			MoveID:    move.ID,
			QRCode:    uuid.NewString(),
			BoxNumber: number,
			Label:     input.Label,
			Category:  input.Category,
			Contents:  input.Contents,
			Fragile:   input.Fragile,
			Status:    enums.BoxStatusCreated,
		}
		created, err = repo.CreateBox(ctx, box)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create box")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListBoxes returns all boxes on the move with their full scan history.
func (s *service) ListBoxes(ctx context.Context, moveID uuid.UUID, actor Actor) ([]models.Box, error) {
	if _, err := s.authorizeView(ctx, moveID, actor); err != nil {
		return nil, err
	}
	boxes, err := s.repo.ListBoxesByMove(ctx, moveID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list boxes")
	}
	return boxes, nil
}

// ScanBox appends a scan entry for the box behind the QR code and advances
// its status. History is never rewritten.
func (s *service) ScanBox(ctx context.Context, input ScanBoxInput) (*models.Box, error) {
	if input.QRCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qr code required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid box status")
	}

	var scanned *models.Box
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		box, err := repo.FindBoxByQR(ctx, input.QRCode)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "box not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load box")
		}

		move, err := s.authorizeManage(ctx, tx, box.MoveID, input.Actor)
		if err != nil {
			return err
		}

		if !CanTransitionBox(box.Status, input.Status) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "illegal box status transition").
				WithDetails(map[string]any{"status": box.Status, "requested": input.Status})
		}

		now := time.Now().UTC()
		scan := &models.BoxScan{
			BoxID:     box.ID,
			Status:    input.Status,
			ScannedBy: input.Actor.ID,
			Location:  input.Location,
			Notes:     input.Notes,
			ScannedAt: now,
		}
		if err := repo.CreateScan(ctx, scan); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record scan")
		}
		if err := repo.UpdateBox(ctx, box.ID, map[string]any{"status": input.Status}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update box status")
		}
		box.Status = input.Status
		box.Scans = append(box.Scans, *scan)
		scanned = box

		actorRole := input.Actor.Role
		if err := s.recorder.Record(ctx, tx, activity.RecordInput{
			MoveID:    move.ID,
			ActorID:   &input.Actor.ID,
			ActorRole: &actorRole,
			Type:      enums.ActivityTypeBoxScanned,
			Title:     fmt.Sprintf("Box #%d scanned as %s", box.BoxNumber, input.Status),
			Metadata: map[string]any{
				"box_id":     box.ID,
				"box_number": box.BoxNumber,
				"status":     input.Status,
			},
		}); err != nil {
			return err
		}

		// Customers only hear about the scans they care about.
		if input.Status == enums.BoxStatusDelivered || input.Status == enums.BoxStatusMissing {
			moveID := move.ID
			return s.notifier.Notify(ctx, tx, notifications.NotifyInput{
				UserID: move.UserID,
				MoveID: &moveID,
				Type:   enums.NotificationTypeBoxUpdate,
				Title:  fmt.Sprintf("Box #%d %s", box.BoxNumber, input.Status),
				Body:   fmt.Sprintf("Box %q is now %s.", box.Label, input.Status),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scanned, nil
}

// UpdateBox edits box metadata. Status changes go through ScanBox.
func (s *service) UpdateBox(ctx context.Context, input UpdateBoxInput) (*models.Box, error) {
	updates := map[string]any{}
	if input.Label != nil {
		if *input.Label == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "box label must not be empty")
		}
		updates["label"] = *input.Label
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Contents != nil {
		updates["contents"] = *input.Contents
	}
	if input.Fragile != nil {
		updates["fragile"] = *input.Fragile
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no box fields to update")
	}

	var updated *models.Box
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		box, err := repo.FindBox(ctx, input.BoxID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "box not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load box")
		}
		if _, err := s.authorizeManage(ctx, tx, box.MoveID, input.Actor); err != nil {
			return err
		}
		if err := repo.UpdateBox(ctx, box.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update box")
		}
		updated, err = repo.FindBox(ctx, box.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload box")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteBox removes a box and its scan history.
func (s *service) DeleteBox(ctx context.Context, boxID uuid.UUID, actor Actor) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		box, err := repo.FindBox(ctx, boxID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "box not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load box")
		}
		if _, err := s.authorizeManage(ctx, tx, box.MoveID, actor); err != nil {
			return err
		}
		if box.Status == enums.BoxStatusDelivered {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "delivered boxes cannot be deleted")
		}
		if err := repo.DeleteBox(ctx, box.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete box")
		}
		return nil
	})
}

// CreateFurniture registers a furniture item on the move.
func (s *service) CreateFurniture(ctx context.Context, input CreateFurnitureInput) (*models.FurnitureItem, error) {
	if input.MoveID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "furniture name required")
	}

	var created *models.FurnitureItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		move, err := s.authorizeManage(ctx, tx, input.MoveID, input.Actor)
		if err != nil {
			return err
		}
		if move.Status.IsPreActive() {
			return pkgerrors.New(pkgerrors.CodePaymentRequired, "move is not active yet")
		}

		item := &models.FurnitureItem{
			MoveID:          move.ID,
			Name:            input.Name,
			Category:        input.Category,
			Status:          enums.FurnitureStatusListed,
			ConditionBefore: input.ConditionBefore,
		}
		created, err = s.repo.WithTx(tx).CreateFurniture(ctx, item)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create furniture item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListFurniture returns all furniture on the move with photos.
func (s *service) ListFurniture(ctx context.Context, moveID uuid.UUID, actor Actor) ([]models.FurnitureItem, error) {
	if _, err := s.authorizeView(ctx, moveID, actor); err != nil {
		return nil, err
	}
	items, err := s.repo.ListFurnitureByMove(ctx, moveID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list furniture")
	}
	return items, nil
}

// UpdateFurniture edits a furniture item. Setting the after-condition is part
// of the delivery record and lands on the activity timeline.
func (s *service) UpdateFurniture(ctx context.Context, input UpdateFurnitureInput) (*models.FurnitureItem, error) {
	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "furniture name must not be empty")
		}
		updates["name"] = *input.Name
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid furniture status")
		}
		updates["status"] = *input.Status
	}
	if input.ConditionAfter != nil {
		updates["condition_after"] = *input.ConditionAfter
	}
	if input.DamageNotes != nil {
		updates["damage_notes"] = *input.DamageNotes
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no furniture fields to update")
	}

	var updated *models.FurnitureItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		item, err := repo.FindFurniture(ctx, input.ItemID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "furniture item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load furniture item")
		}
		move, err := s.authorizeManage(ctx, tx, item.MoveID, input.Actor)
		if err != nil {
			return err
		}
		if err := repo.UpdateFurniture(ctx, item.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update furniture item")
		}
		updated, err = repo.FindFurniture(ctx, item.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload furniture item")
		}

		if input.ConditionAfter != nil {
			actorRole := input.Actor.Role
			return s.recorder.Record(ctx, tx, activity.RecordInput{
				MoveID:    move.ID,
				ActorID:   &input.Actor.ID,
				ActorRole: &actorRole,
				Type:      enums.ActivityTypeFurnitureUpdated,
				Title:     fmt.Sprintf("Delivery condition recorded for %s", item.Name),
				Metadata: map[string]any{
					"furniture_id":    item.ID,
					"condition_after": *input.ConditionAfter,
				},
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteFurniture removes a furniture item and its photos.
func (s *service) DeleteFurniture(ctx context.Context, itemID uuid.UUID, actor Actor) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		item, err := repo.FindFurniture(ctx, itemID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "furniture item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load furniture item")
		}
		if _, err := s.authorizeManage(ctx, tx, item.MoveID, actor); err != nil {
			return err
		}
		if err := repo.DeleteFurniture(ctx, item.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete furniture item")
		}
		return nil
	})
}

// AddFurniturePhoto attaches an externally stored photo. "after" photos are
// what the completion check looks for on conditioned items.
func (s *service) AddFurniturePhoto(ctx context.Context, input AddPhotoInput) (*models.FurniturePhoto, error) {
	if input.PhotoURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "photo url required")
	}
	if input.PhotoType != "before" && input.PhotoType != "after" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "photo type must be before or after")
	}

	var created *models.FurniturePhoto
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		item, err := repo.FindFurniture(ctx, input.ItemID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "furniture item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load furniture item")
		}
		if _, err := s.authorizeManage(ctx, tx, item.MoveID, input.Actor); err != nil {
			return err
		}

		uploadedBy := input.Actor.ID
		photo := &models.FurniturePhoto{
			FurnitureID:       item.ID,
			PhotoURL:          input.PhotoURL,
			PhotoType:         input.PhotoType,
			DamageTagged:      input.DamageTagged,
			DamageDescription: input.DamageDescription,
			UploadedBy:        &uploadedBy,
		}
		created, err = repo.AddPhoto(ctx, photo)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save photo")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) authorizeManage(ctx context.Context, tx *gorm.DB, moveID uuid.UUID, actor Actor) (*models.Move, error) {
	move, err := s.moves.WithTx(tx).Find(ctx, moveID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "move not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load move")
	}
	if actor.Role == enums.UserRoleAdmin {
		return move, nil
	}
	if actor.Role == enums.UserRoleAgent && move.AgentID != nil && *move.AgentID == actor.ID {
		return move, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the assigned agent may manage inventory")
}

func (s *service) authorizeView(ctx context.Context, moveID uuid.UUID, actor Actor) (*models.Move, error) {
	move, err := s.moves.Find(ctx, moveID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "move not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load move")
	}
	if actor.Role == enums.UserRoleAdmin ||
		move.UserID == actor.ID ||
		(move.AgentID != nil && *move.AgentID == actor.ID) {
		return move, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to view this inventory")
}
