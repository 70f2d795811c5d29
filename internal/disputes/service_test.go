package disputes

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/internal/activity"
	"github.com/amitsingh12ap/moveassist/internal/moves"
	"github.com/amitsingh12ap/moveassist/internal/notifications"
	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
	"github.com/amitsingh12ap/moveassist/pkg/pagination"
)

type stubDisputesRepo struct {
	disputes map[uuid.UUID]*models.Dispute
}

func newStubDisputesRepo() *stubDisputesRepo {
	return &stubDisputesRepo{disputes: map[uuid.UUID]*models.Dispute{}}
}

func (s *stubDisputesRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubDisputesRepo) Create(ctx context.Context, dispute *models.Dispute) (*models.Dispute, error) {
	dispute.ID = uuid.New()
	s.disputes[dispute.ID] = dispute
	return dispute, nil
}

func (s *stubDisputesRepo) Find(ctx context.Context, id uuid.UUID) (*models.Dispute, error) {
	dispute, ok := s.disputes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return dispute, nil
}

func (s *stubDisputesRepo) List(ctx context.Context, filters ListFilters) ([]models.Dispute, error) {
	var out []models.Dispute
	for _, dispute := range s.disputes {
		if filters.MoveID != nil && dispute.MoveID != *filters.MoveID {
			continue
		}
		if filters.Status != nil && dispute.Status != *filters.Status {
			continue
		}
		out = append(out, *dispute)
	}
	return out, nil
}

func (s *stubDisputesRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	dispute := s.disputes[id]
	if status, ok := updates["status"].(enums.DisputeStatus); ok {
		dispute.Status = status
	}
	if notes, ok := updates["admin_notes"].(string); ok {
		dispute.AdminNotes = &notes
	}
	if resolvedBy, ok := updates["resolved_by"].(uuid.UUID); ok {
		dispute.ResolvedBy = &resolvedBy
	}
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

type stubFurniture struct {
	item *models.FurnitureItem
}

func (s *stubFurniture) FindFurniture(ctx context.Context, id uuid.UUID) (*models.FurnitureItem, error) {
	if s.item == nil || s.item.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.item, nil
}

type stubAdmins struct {
	ids []uuid.UUID
}

func (s *stubAdmins) ListAdminIDs(ctx context.Context) ([]uuid.UUID, error) {
	return s.ids, nil
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

type stubNotifier struct {
	sent []notifications.NotifyInput
}

func (s *stubNotifier) Notify(ctx context.Context, tx *gorm.DB, input notifications.NotifyInput) error {
	s.sent = append(s.sent, input)
	return nil
}

func (s *stubNotifier) List(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	panic("not used")
}

func (s *stubNotifier) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	panic("not used")
}

func (s *stubNotifier) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	panic("not used")
}

func (s *stubNotifier) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	panic("not used")
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type testEnv struct {
	svc      Service
	repo     *stubDisputesRepo
	recorder *stubRecorder
	notifier *stubNotifier
	admins   *stubAdmins
}

func newTestEnv(t *testing.T, move *models.Move, furniture *models.FurnitureItem) testEnv {
	t.Helper()
	repo := newStubDisputesRepo()
	recorder := &stubRecorder{}
	notifier := &stubNotifier{}
	admins := &stubAdmins{ids: []uuid.UUID{uuid.New(), uuid.New()}}
	svc, err := NewService(repo, &stubMovesRepo{move: move}, &stubFurniture{item: furniture}, stubTxRunner{}, recorder, notifier, admins)
	require.NoError(t, err)
	return testEnv{svc: svc, repo: repo, recorder: recorder, notifier: notifier, admins: admins}
}

func inTransitMove() *models.Move {
	return &models.Move{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: enums.MoveStatusInTransit,
	}
}

func TestRaiseDisputeNotifiesAdmins(t *testing.T) {
	move := inTransitMove()
	env := newTestEnv(t, move, nil)

	dispute, err := env.svc.Raise(context.Background(), RaiseInput{
		MoveID:      move.ID,
		RaisedBy:    move.UserID,
		Description: "  Sofa arrived with a torn cover  ",
	})
	require.NoError(t, err)
	require.Equal(t, enums.DisputeStatusOpen, dispute.Status)
	require.Equal(t, "Sofa arrived with a torn cover", dispute.Description)

	require.Len(t, env.recorder.records, 1)
	require.Equal(t, enums.ActivityTypeDisputeOpened, env.recorder.records[0].Type)

	require.Len(t, env.notifier.sent, len(env.admins.ids))
	for i, sent := range env.notifier.sent {
		require.Equal(t, env.admins.ids[i], sent.UserID)
		require.Equal(t, enums.NotificationTypeDisputeUpdate, sent.Type)
	}
}

func TestRaiseDisputeOwnerOnly(t *testing.T) {
	move := inTransitMove()
	env := newTestEnv(t, move, nil)

	_, err := env.svc.Raise(context.Background(), RaiseInput{
		MoveID:      move.ID,
		RaisedBy:    uuid.New(),
		Description: "not my move",
	})
	require.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}

func TestRaiseDisputeFurnitureMustBelongToMove(t *testing.T) {
	move := inTransitMove()
	item := &models.FurnitureItem{ID: uuid.New(), MoveID: uuid.New(), Name: "Wardrobe"}
	env := newTestEnv(t, move, item)

	_, err := env.svc.Raise(context.Background(), RaiseInput{
		MoveID:      move.ID,
		RaisedBy:    move.UserID,
		FurnitureID: &item.ID,
		Description: "wardrobe scratched",
	})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	item.MoveID = move.ID
	dispute, err := env.svc.Raise(context.Background(), RaiseInput{
		MoveID:      move.ID,
		RaisedBy:    move.UserID,
		FurnitureID: &item.ID,
		Description: "wardrobe scratched",
	})
	require.NoError(t, err)
	require.Equal(t, item.ID, *dispute.FurnitureID)
}

func TestResolveDisputeNotifiesRaiser(t *testing.T) {
	move := inTransitMove()
	env := newTestEnv(t, move, nil)

	dispute, err := env.svc.Raise(context.Background(), RaiseInput{
		MoveID:      move.ID,
		RaisedBy:    move.UserID,
		Description: "box missing",
	})
	require.NoError(t, err)
	env.notifier.sent = nil

	adminID := uuid.New()
	notes := "replacement box credited"
	resolved, err := env.svc.Resolve(context.Background(), ResolveInput{
		DisputeID:  dispute.ID,
		AdminID:    adminID,
		Status:     enums.DisputeStatusResolved,
		AdminNotes: &notes,
	})
	require.NoError(t, err)
	require.Equal(t, enums.DisputeStatusResolved, resolved.Status)
	require.Equal(t, notes, *resolved.AdminNotes)
	require.Equal(t, adminID, *resolved.ResolvedBy)

	require.Len(t, env.notifier.sent, 1)
	require.Equal(t, move.UserID, env.notifier.sent[0].UserID)

	_, err = env.svc.Resolve(context.Background(), ResolveInput{
		DisputeID: dispute.ID,
		AdminID:   adminID,
		Status:    enums.DisputeStatusRejected,
	})
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestResolveDisputeRejectsInvalidStatus(t *testing.T) {
	env := newTestEnv(t, inTransitMove(), nil)

	_, err := env.svc.Resolve(context.Background(), ResolveInput{
		DisputeID: uuid.New(),
		AdminID:   uuid.New(),
		Status:    enums.DisputeStatusOpen,
	})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
