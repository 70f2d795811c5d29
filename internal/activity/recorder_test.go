package activity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
	"github.com/amitsingh12ap/moveassist/pkg/pagination"
)

type fakeRepo struct {
	created []*models.Activity
	listed  []models.Activity
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, activity *models.Activity) error {
	f.created = append(f.created, activity)
	return nil
}

func (f *fakeRepo) ListByMove(ctx context.Context, moveID uuid.UUID, params pagination.Params) ([]models.Activity, *pagination.Cursor, error) {
	return f.listed, nil, nil
}

func TestRecorder_Record(t *testing.T) {
	repo := &fakeRepo{}
	rec, err := NewRecorder(repo)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	moveID := uuid.New()
	actorID := uuid.New()
	role := enums.UserRoleAgent
	err = rec.Record(context.Background(), nil, RecordInput{
		MoveID:    moveID,
		ActorID:   &actorID,
		ActorRole: &role,
		Type:      enums.ActivityTypeBoxScanned,
		Title:     "Box scanned",
		Metadata:  map[string]any{"box_number": 3},
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(repo.created))
	}
	entry := repo.created[0]
	if entry.MoveID != moveID {
		t.Fatalf("unexpected move id %s", entry.MoveID)
	}
	if entry.Metadata == nil || (*entry.Metadata)["box_number"] != 3 {
		t.Fatalf("metadata not preserved: %+v", entry.Metadata)
	}
}

func TestRecorder_RecordValidation(t *testing.T) {
	rec, _ := NewRecorder(&fakeRepo{})

	tests := []struct {
		name  string
		input RecordInput
	}{
		{"missing move", RecordInput{Type: enums.ActivityTypeNote, Title: "x"}},
		{"bad type", RecordInput{MoveID: uuid.New(), Type: "bogus", Title: "x"}},
		{"missing title", RecordInput{MoveID: uuid.New(), Type: enums.ActivityTypeNote}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rec.Record(context.Background(), nil, tt.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation code, got %v", err)
			}
		})
	}
}

func TestRecorder_ListByMove(t *testing.T) {
	repo := &fakeRepo{listed: []models.Activity{{ID: uuid.New()}, {ID: uuid.New()}}}
	rec, _ := NewRecorder(repo)

	result, err := rec.ListByMove(context.Background(), uuid.New(), pagination.Params{Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(result.Items))
	}
	if result.Cursor != "" {
		t.Fatalf("expected empty cursor, got %q", result.Cursor)
	}
}
