package documents

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/internal/activity"
	"github.com/amitsingh12ap/moveassist/internal/moves"
	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
	"github.com/amitsingh12ap/moveassist/pkg/pagination"
)

type stubDocumentsRepo struct {
	documents map[uuid.UUID]*models.MoveDocument
}

func newStubDocumentsRepo() *stubDocumentsRepo {
	return &stubDocumentsRepo{documents: map[uuid.UUID]*models.MoveDocument{}}
}

func (s *stubDocumentsRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubDocumentsRepo) Create(ctx context.Context, document *models.MoveDocument) (*models.MoveDocument, error) {
	document.ID = uuid.New()
	s.documents[document.ID] = document
	return document, nil
}

func (s *stubDocumentsRepo) Find(ctx context.Context, id uuid.UUID) (*models.MoveDocument, error) {
	document, ok := s.documents[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return document, nil
}

func (s *stubDocumentsRepo) ListByMove(ctx context.Context, moveID uuid.UUID) ([]models.MoveDocument, error) {
	var out []models.MoveDocument
	for _, document := range s.documents {
		if document.MoveID == moveID {
			out = append(out, *document)
		}
	}
	return out, nil
}

func (s *stubDocumentsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.documents, id)
	return nil
}

type stubMovesRepo struct {
	move *models.Move
}

func (s *stubMovesRepo) WithTx(tx *gorm.DB) moves.Repository { return s }

func (s *stubMovesRepo) Create(ctx context.Context, move *models.Move) (*models.Move, error) {
	panic("not used")
}

func (s *stubMovesRepo) Find(ctx context.Context, id uuid.UUID) (*models.Move, error) {
	if s.move == nil || s.move.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.move, nil
}

func (s *stubMovesRepo) FindForUpdate(ctx context.Context, id uuid.UUID) (*models.Move, error) {
	return s.Find(ctx, id)
}

func (s *stubMovesRepo) FindByBoxQR(ctx context.Context, qrCode string) (*models.Move, error) {
	panic("not used")
}

func (s *stubMovesRepo) FindByFurnitureItem(ctx context.Context, itemID uuid.UUID) (*models.Move, error) {
	panic("not used")
}

func (s *stubMovesRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	panic("not used")
}

func (s *stubMovesRepo) Delete(ctx context.Context, id uuid.UUID) error {
	panic("not used")
}

func (s *stubMovesRepo) List(ctx context.Context, filters moves.ListFilters, params pagination.Params) ([]models.Move, *pagination.Cursor, error) {
	panic("not used")
}

func (s *stubMovesRepo) CountUndeliveredBoxes(ctx context.Context, moveID uuid.UUID) (int64, error) {
	panic("not used")
}

func (s *stubMovesRepo) ListFurnitureMissingCondition(ctx context.Context, moveID uuid.UUID) ([]string, error) {
	panic("not used")
}

func (s *stubMovesRepo) ListFurnitureMissingAfterPhoto(ctx context.Context, moveID uuid.UUID) ([]string, error) {
	panic("not used")
}

type stubRecorder struct {
	records []activity.RecordInput
}

func (s *stubRecorder) Record(ctx context.Context, tx *gorm.DB, input activity.RecordInput) error {
	s.records = append(s.records, input)
	return nil
}

func (s *stubRecorder) ListByMove(ctx context.Context, moveID uuid.UUID, params pagination.Params) (*activity.ListResult, error) {
	panic("not used")
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, move *models.Move) (Service, *stubDocumentsRepo, *stubRecorder) {
	t.Helper()
	repo := newStubDocumentsRepo()
	recorder := &stubRecorder{}
	svc, err := NewService(repo, &stubMovesRepo{move: move}, stubTxRunner{}, recorder)
	require.NoError(t, err)
	return svc, repo, recorder
}

func activeMove(agentID uuid.UUID) *models.Move {
	return &models.Move{
		ID:      uuid.New(),
		UserID:  uuid.New(),
		Status:  enums.MoveStatusActive,
		AgentID: &agentID,
	}
}

func TestUploadDocument(t *testing.T) {
	agentID := uuid.New()
	move := activeMove(agentID)
	svc, _, recorder := newTestService(t, move)

	document, err := svc.Upload(context.Background(), UploadInput{
		MoveID:  move.ID,
		Actor:   Actor{ID: agentID, Role: enums.UserRoleAgent},
		Name:    "  Packing contract  ",
		DocType: "Contract",
		FileURL: "https://files.example.com/contract.pdf",
	})
	require.NoError(t, err)
	require.Equal(t, "Packing contract", document.Name)
	require.Equal(t, "contract", document.DocType)
	require.Equal(t, agentID, document.UploadedBy)

	require.Len(t, recorder.records, 1)
	require.Equal(t, enums.ActivityTypeDocumentUploaded, recorder.records[0].Type)
}

func TestUploadDocumentValidation(t *testing.T) {
	agentID := uuid.New()
	move := activeMove(agentID)
	svc, _, _ := newTestService(t, move)
	actor := Actor{ID: agentID, Role: enums.UserRoleAgent}

	_, err := svc.Upload(context.Background(), UploadInput{MoveID: move.ID, Actor: actor, Name: "x"})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Upload(context.Background(), UploadInput{
		MoveID:  move.ID,
		Actor:   actor,
		Name:    "x",
		DocType: "screenshot",
		FileURL: "https://files.example.com/x.png",
	})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUploadDocumentForbiddenForStrangers(t *testing.T) {
	move := activeMove(uuid.New())
	svc, _, _ := newTestService(t, move)

	_, err := svc.Upload(context.Background(), UploadInput{
		MoveID:  move.ID,
		Actor:   Actor{ID: uuid.New(), Role: enums.UserRoleCustomer},
		Name:    "invoice",
		FileURL: "https://files.example.com/invoice.pdf",
	})
	require.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}

func TestDeleteDocumentUploaderOrAdmin(t *testing.T) {
	agentID := uuid.New()
	move := activeMove(agentID)
	svc, repo, _ := newTestService(t, move)

	document, err := svc.Upload(context.Background(), UploadInput{
		MoveID:  move.ID,
		Actor:   Actor{ID: agentID, Role: enums.UserRoleAgent},
		Name:    "receipt",
		FileURL: "https://files.example.com/receipt.pdf",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), document.ID, Actor{ID: move.UserID, Role: enums.UserRoleCustomer})
	require.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	err = svc.Delete(context.Background(), document.ID, Actor{ID: uuid.New(), Role: enums.UserRoleAdmin})
	require.NoError(t, err)
	require.Empty(t, repo.documents)

	err = svc.Delete(context.Background(), document.ID, Actor{ID: agentID, Role: enums.UserRoleAgent})
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
