package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/internal/activity"
	"github.com/amitsingh12ap/moveassist/internal/moves"
	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

var allowedDocTypes = map[string]struct{}{
	"contract": {},
	"invoice":  {},
	"receipt":  {},
	"id_proof": {},
	"photo":    {},
	"other":    {},
}

// Actor identifies who is acting on a document.
type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
}

// UploadInput registers metadata for an externally stored file.
type UploadInput struct {
	MoveID  uuid.UUID
	Actor   Actor
	Name    string
	DocType string
	FileURL string
}

// Service manages document metadata attached to moves.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*models.MoveDocument, error)
	ListByMove(ctx context.Context, moveID uuid.UUID, actor Actor) ([]models.MoveDocument, error)
	Delete(ctx context.Context, documentID uuid.UUID, actor Actor) error
}

type service struct {
	repo     Repository
	moves    moves.Repository
	tx       txRunner
	recorder activity.Recorder
}

// NewService builds a documents service with the required dependencies.
func NewService(repo Repository, movesRepo moves.Repository, tx txRunner, recorder activity.Recorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("documents repository required")
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
	return &service{repo: repo, moves: movesRepo, tx: tx, recorder: recorder}, nil
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*models.MoveDocument, error) {
	name := strings.TrimSpace(input.Name)
	fileURL := strings.TrimSpace(input.FileURL)
	if name == "" || fileURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and file url required")
	}
	docType := strings.ToLower(strings.TrimSpace(input.DocType))
	if docType == "" {
		docType = "other"
	}
	if _, ok := allowedDocTypes[docType]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown document type").
			WithDetails(map[string]any{"doc_type": docType})
	}

	var saved *models.MoveDocument
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		move, err := s.loadMove(ctx, input.MoveID)
		if err != nil {
			return err
		}
		if !canAccess(move, input.Actor) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to manage this move's documents")
		}

		saved, err = s.repo.WithTx(tx).Create(ctx, &models.MoveDocument{
			MoveID:     move.ID,
			UploadedBy: input.Actor.ID,
			Name:       name,
			DocType:    docType,
			FileURL:    fileURL,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save document")
		}

		actorRole := input.Actor.Role
		return s.recorder.Record(ctx, tx, activity.RecordInput{
			MoveID:    move.ID,
			ActorID:   &input.Actor.ID,
			ActorRole: &actorRole,
			Type:      enums.ActivityTypeDocumentUploaded,
			Title:     fmt.Sprintf("Document %q uploaded", name),
			Metadata:  map[string]any{"document_id": saved.ID, "doc_type": docType},
		})
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *service) ListByMove(ctx context.Context, moveID uuid.UUID, actor Actor) ([]models.MoveDocument, error) {
	move, err := s.loadMove(ctx, moveID)
	if err != nil {
		return nil, err
	}
	if !canAccess(move, actor) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to view this move's documents")
	}
	documents, err := s.repo.ListByMove(ctx, moveID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list documents")
	}
	return documents, nil
}

func (s *service) Delete(ctx context.Context, documentID uuid.UUID, actor Actor) error {
	document, err := s.repo.Find(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "document not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load document")
	}
	if actor.Role != enums.UserRoleAdmin && document.UploadedBy != actor.ID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the uploader or an admin may delete a document")
	}
	if err := s.repo.Delete(ctx, documentID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete document")
	}
	return nil
}

func (s *service) loadMove(ctx context.Context, moveID uuid.UUID) (*models.Move, error) {
	move, err := s.moves.Find(ctx, moveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "move not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load move")
	}
	return move, nil
}

func canAccess(move *models.Move, actor Actor) bool {
	if actor.Role == enums.UserRoleAdmin {
		return true
	}
	if move.UserID == actor.ID {
		return true
	}
	return move.AgentID != nil && *move.AgentID == actor.ID
}
