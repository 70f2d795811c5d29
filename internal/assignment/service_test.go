package assignment

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
	"github.com/amitsingh12ap/moveassist/pkg/pagination"
)

type stubAssignmentRepo struct {
	agents    []models.User
	workloads map[uuid.UUID]int64
}

func (s *stubAssignmentRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubAssignmentRepo) ListAvailableAgents(ctx context.Context) ([]models.User, error) {
	return s.agents, nil
}

func (s *stubAssignmentRepo) FindAgent(ctx context.Context, id uuid.UUID) (*models.User, error) {
	for i := range s.agents {
		if s.agents[i].ID == id {
			return &s.agents[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAssignmentRepo) CountActiveMovesByAgent(ctx context.Context, agentIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return s.workloads, nil
}

type stubMovesRepo struct {
	move    *models.Move
	updates map[string]any
}

func (s *stubMovesRepo) WithTx(tx *gorm.DB) moves.Repository { return s }

func (s *stubMovesRepo) Create(ctx context.Context, move *models.Move) (*models.Move, error) {
	panic("not used")
}

func (s *stubMovesRepo) Find(ctx context.Context, id uuid.UUID) (*models.Move, error) {
	return s.move, nil
}

func (s *stubMovesRepo) FindForUpdate(ctx context.Context, id uuid.UUID) (*models.Move, error) {
	if s.move == nil || s.move.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.move, nil
}

func (s *stubMovesRepo) FindByBoxQR(ctx context.Context, qrCode string) (*models.Move, error) {
	panic("not used")
}

func (s *stubMovesRepo) FindByFurnitureItem(ctx context.Context, itemID uuid.UUID) (*models.Move, error) {
	panic("not used")
}

func (s *stubMovesRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	return nil
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

func newTestService(t *testing.T, repo *stubAssignmentRepo, movesRepo *stubMovesRepo) (Service, *stubRecorder, *stubNotifier) {
	t.Helper()
	recorder := &stubRecorder{}
	notifier := &stubNotifier{}
	svc, err := NewService(repo, movesRepo, stubTxRunner{}, recorder, notifier)
	require.NoError(t, err)
	return svc, recorder, notifier
}

func activeMove() *models.Move {
	return &models.Move{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Title:    "3BHK shift",
		FromCity: "Bengaluru",
		FromLat:  floatPtr(targetLat),
		FromLng:  floatPtr(targetLng),
		ToCity:   "Bengaluru",
		ToLat:    floatPtr(targetLat),
		ToLng:    floatPtr(targetLng),
		Status:   enums.MoveStatusActive,
	}
}

func TestAutoAssignPicksBestAgent(t *testing.T) {
	ratingA := 4.5
	ratingB := 5.0
	agentA := models.User{
		ID:        uuid.New(),
		Name:      "Ravi",
		City:      strPtr("Bengaluru"),
		Latitude:  floatPtr(targetLat + 2.0/111.19),
		Longitude: floatPtr(targetLng),
		Rating:    &ratingA,
	}
	agentB := models.User{
		ID:        uuid.New(),
		Name:      "Sunil",
		City:      strPtr("Bengaluru"),
		Latitude:  floatPtr(targetLat + 50.0/111.19),
		Longitude: floatPtr(targetLng),
		Rating:    &ratingB,
	}
	repo := &stubAssignmentRepo{
		agents:    []models.User{agentA, agentB},
		workloads: map[uuid.UUID]int64{agentA.ID: 1},
	}
	move := activeMove()
	movesRepo := &stubMovesRepo{move: move}
	svc, recorder, notifier := newTestService(t, repo, movesRepo)

	result, err := svc.AutoAssign(context.Background(), move.ID, uuid.Nil, enums.UserRoleAdmin)
	require.NoError(t, err)
	require.Equal(t, OutcomeAssigned, result.Outcome)
	require.Equal(t, agentA.ID, result.Agent.ID)
	require.InDelta(t, 90.0, result.Score, 0.1)
	require.Equal(t, agentA.ID, movesRepo.updates["agent_id"])

	require.Len(t, recorder.records, 1)
	require.Equal(t, enums.ActivityTypeAgentAssigned, recorder.records[0].Type)

	require.Len(t, notifier.sent, 2)
	require.Equal(t, agentA.ID, notifier.sent[0].UserID)
	require.Equal(t, move.UserID, notifier.sent[1].UserID)
	for _, n := range notifier.sent {
		require.Equal(t, enums.NotificationTypeAgentAssigned, n.Type)
	}
}

func TestAutoAssignAlreadyAssignedIsNoOp(t *testing.T) {
	existing := uuid.New()
	move := activeMove()
	move.AgentID = &existing
	movesRepo := &stubMovesRepo{move: move}
	svc, recorder, notifier := newTestService(t, &stubAssignmentRepo{}, movesRepo)

	result, err := svc.AutoAssign(context.Background(), move.ID, uuid.New(), enums.UserRoleAdmin)
	require.NoError(t, err)
	require.Equal(t, OutcomeAlreadyAssigned, result.Outcome)
	require.Nil(t, result.Agent)
	require.Nil(t, movesRepo.updates)
	require.Empty(t, recorder.records)
	require.Empty(t, notifier.sent)
}

func TestAutoAssignNoCityData(t *testing.T) {
	move := activeMove()
	move.FromCity = ""
	move.ToCity = ""
	movesRepo := &stubMovesRepo{move: move}
	svc, _, notifier := newTestService(t, &stubAssignmentRepo{}, movesRepo)

	result, err := svc.AutoAssign(context.Background(), move.ID, uuid.New(), enums.UserRoleAdmin)
	require.NoError(t, err)
	require.Equal(t, OutcomeNoCityData, result.Outcome)
	require.Empty(t, notifier.sent)
}

func TestAutoAssignNoAgentsAvailable(t *testing.T) {
	move := activeMove()
	movesRepo := &stubMovesRepo{move: move}
	svc, _, notifier := newTestService(t, &stubAssignmentRepo{}, movesRepo)

	result, err := svc.AutoAssign(context.Background(), move.ID, uuid.New(), enums.UserRoleAdmin)
	require.NoError(t, err)
	require.Equal(t, OutcomeNoAgentsAvailable, result.Outcome)
	require.Empty(t, notifier.sent)
}

func TestManualAssign(t *testing.T) {
	agent := models.User{ID: uuid.New(), Name: "Kiran"}
	repo := &stubAssignmentRepo{agents: []models.User{agent}}
	move := activeMove()
	movesRepo := &stubMovesRepo{move: move}
	svc, recorder, notifier := newTestService(t, repo, movesRepo)

	updated, err := svc.Assign(context.Background(), move.ID, agent.ID, uuid.New())
	require.NoError(t, err)
	require.Equal(t, agent.ID, *updated.AgentID)
	require.Equal(t, agent.ID, movesRepo.updates["agent_id"])
	require.Len(t, recorder.records, 1)
	require.Len(t, notifier.sent, 2)
}
