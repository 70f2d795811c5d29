package activity

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
	"github.com/amitsingh12ap/moveassist/pkg/pagination"
	"github.com/amitsingh12ap/moveassist/pkg/types"
)

// Recorder appends timeline entries, joining the caller's transaction so the
// trail commits or rolls back with the operation it describes.
type Recorder interface {
	Record(ctx context.Context, tx *gorm.DB, input RecordInput) error
	ListByMove(ctx context.Context, moveID uuid.UUID, params pagination.Params) (*ListResult, error)
}

// RecordInput captures one timeline entry.
type RecordInput struct {
	MoveID      uuid.UUID
	ActorID     *uuid.UUID
	ActorRole   *enums.UserRole
	Type        enums.ActivityType
	Title       string
	Description *string
	Metadata    map[string]any
}

// ListResult wraps returned activities and the cursor for the next page.
type ListResult struct {
	Items  []models.Activity `json:"items"`
	Cursor string            `json:"cursor"`
}

type recorder struct {
	repo Repository
}

// NewRecorder wires the activity recorder.
func NewRecorder(repo Repository) (Recorder, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "activity repository required")
	}
	return &recorder{repo: repo}, nil
}

func (r *recorder) Record(ctx context.Context, tx *gorm.DB, input RecordInput) error {
	if input.MoveID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "move id required")
	}
	if !input.Type.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid activity type")
	}
	if input.Title == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "activity title required")
	}

	entry := &models.Activity{
		MoveID:      input.MoveID,
		ActorID:     input.ActorID,
		ActorRole:   input.ActorRole,
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
	}
	if len(input.Metadata) > 0 {
		metadata := types.JSONMap(input.Metadata)
		entry.Metadata = &metadata
	}

	if err := r.repo.WithTx(tx).Create(ctx, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create activity")
	}
	return nil
}

func (r *recorder) ListByMove(ctx context.Context, moveID uuid.UUID, params pagination.Params) (*ListResult, error) {
	if moveID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id required")
	}

	rows, next, err := r.repo.ListByMove(ctx, moveID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list activities")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: rows, Cursor: cursor}, nil
}
