package ratings

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

type stubRatingsRepo struct {
	ratings []models.MoveRating
}

func (s *stubRatingsRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRatingsRepo) Create(ctx context.Context, rating *models.MoveRating) (*models.MoveRating, error) {
	rating.ID = uuid.New()
	s.ratings = append(s.ratings, *rating)
	return rating, nil
}

func (s *stubRatingsRepo) FindByMove(ctx context.Context, moveID uuid.UUID) (*models.MoveRating, error) {
	for i := range s.ratings {
		if s.ratings[i].MoveID == moveID {
			return &s.ratings[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRatingsRepo) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]models.MoveRating, error) {
	var out []models.MoveRating
	for _, rating := range s.ratings {
		if rating.AgentID != nil && *rating.AgentID == agentID {
			out = append(out, rating)
		}
	}
	return out, nil
}

func (s *stubRatingsRepo) AverageForAgent(ctx context.Context, agentID uuid.UUID) (float64, int64, error) {
	var sum, count int64
	for _, rating := range s.ratings {
		if rating.AgentID != nil && *rating.AgentID == agentID {
			sum += int64(rating.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
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

type stubAgents struct {
	updates map[uuid.UUID]map[string]any
}

func (s *stubAgents) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if s.updates == nil {
		s.updates = map[uuid.UUID]map[string]any{}
	}
	s.updates[id] = updates
	return nil
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

func completedMove(agentID uuid.UUID) *models.Move {
	return &models.Move{
		ID:      uuid.New(),
		UserID:  uuid.New(),
		Status:  enums.MoveStatusCompleted,
		AgentID: &agentID,
	}
}

func newTestService(t *testing.T, repo *stubRatingsRepo, movesRepo *stubMovesRepo, agents *stubAgents) (Service, *stubNotifier) {
	t.Helper()
	notifier := &stubNotifier{}
	svc, err := NewService(repo, movesRepo, agents, stubTxRunner{}, &stubRecorder{}, notifier)
	require.NoError(t, err)
	return svc, notifier
}

func TestSubmitRating(t *testing.T) {
	agentID := uuid.New()
	move := completedMove(agentID)
	repo := &stubRatingsRepo{}
	movesRepo := &stubMovesRepo{move: move}
	agents := &stubAgents{}
	svc, notifier := newTestService(t, repo, movesRepo, agents)

	rating, err := svc.Submit(context.Background(), SubmitInput{
		MoveID:     move.ID,
		CustomerID: move.UserID,
		Rating:     4,
	})
	require.NoError(t, err)
	require.Equal(t, 4, rating.Rating)
	require.Equal(t, agentID, *rating.AgentID)

	require.Equal(t, true, movesRepo.updates["rated"])
	require.Equal(t, 4.0, agents.updates[agentID]["rating"])

	require.Len(t, notifier.sent, 1)
	require.Equal(t, agentID, notifier.sent[0].UserID)
	require.Equal(t, enums.NotificationTypeRatingReceived, notifier.sent[0].Type)
}

func TestSubmitRatingAveragesAcrossMoves(t *testing.T) {
	agentID := uuid.New()
	repo := &stubRatingsRepo{}
	earlier := models.MoveRating{ID: uuid.New(), MoveID: uuid.New(), AgentID: &agentID, Rating: 5}
	repo.ratings = append(repo.ratings, earlier)

	move := completedMove(agentID)
	movesRepo := &stubMovesRepo{move: move}
	agents := &stubAgents{}
	svc, _ := newTestService(t, repo, movesRepo, agents)

	_, err := svc.Submit(context.Background(), SubmitInput{
		MoveID:     move.ID,
		CustomerID: move.UserID,
		Rating:     4,
	})
	require.NoError(t, err)
	require.Equal(t, 4.5, agents.updates[agentID]["rating"])
}

func TestSubmitRatingGuards(t *testing.T) {
	agentID := uuid.New()
	move := completedMove(agentID)
	svc, _ := newTestService(t, &stubRatingsRepo{}, &stubMovesRepo{move: move}, &stubAgents{})

	_, err := svc.Submit(context.Background(), SubmitInput{MoveID: move.ID, CustomerID: move.UserID, Rating: 6})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Submit(context.Background(), SubmitInput{MoveID: move.ID, CustomerID: uuid.New(), Rating: 4})
	require.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	move.Status = enums.MoveStatusInProgress
	_, err = svc.Submit(context.Background(), SubmitInput{MoveID: move.ID, CustomerID: move.UserID, Rating: 4})
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	move.Status = enums.MoveStatusCompleted
	move.Rated = true
	_, err = svc.Submit(context.Background(), SubmitInput{MoveID: move.ID, CustomerID: move.UserID, Rating: 4})
	require.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}
