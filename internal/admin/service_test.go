package admin

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/internal/users"
	"github.com/amitsingh12ap/moveassist/pkg/config"
	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
	"github.com/amitsingh12ap/moveassist/pkg/security"
)

type stubStatsRepo struct {
	stats DashboardStats
}

func (s *stubStatsRepo) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	return &s.stats, nil
}

type stubUserRepo struct {
	byID    map[uuid.UUID]*models.User
	byEmail map[string]*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:    map[uuid.UUID]*models.User{},
		byEmail: map[string]*models.User{},
	}
}

func (s *stubUserRepo) add(user *models.User) {
	s.byID[user.ID] = user
	s.byEmail[user.Email] = user
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if _, exists := s.byEmail[dto.Email]; exists {
		return nil, gorm.ErrDuplicatedKey
	}
	user := dto.ToModel()
	user.ID = uuid.New()
	s.add(user)
	return user, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	user := s.byID[id]
	if role, ok := updates["role"].(enums.UserRole); ok {
		user.Role = role
	}
	if active, ok := updates["is_active"].(bool); ok {
		user.IsActive = active
	}
	return nil
}

func (s *stubUserRepo) ListByRole(ctx context.Context, role enums.UserRole) ([]models.User, error) {
	var out []models.User
	for _, user := range s.byID {
		if user.Role == role && user.IsActive {
			out = append(out, *user)
		}
	}
	return out, nil
}

func newTestService(t *testing.T, repo *stubUserRepo) Service {
	t.Helper()
	svc, err := NewService(&stubStatsRepo{}, repo, config.PasswordConfig{BcryptCost: 4})
	require.NoError(t, err)
	return svc
}

func TestCreateAgent(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo)

	result, err := svc.CreateAgent(context.Background(), CreateAgentInput{
		Name:  "Ravi Kumar",
		Email: "  Ravi@Example.com ",
		City:  strPtr("  Bengaluru "),
	})
	require.NoError(t, err)
	require.Equal(t, "ravi@example.com", result.User.Email)
	require.Equal(t, enums.UserRoleAgent, result.User.Role)
	require.Equal(t, "bengaluru", *result.User.City)
	require.Len(t, result.TempPassword, tempPasswordLength)

	stored := repo.byEmail["ravi@example.com"]
	valid, err := security.VerifyPassword(result.TempPassword, stored.PasswordHash)
	require.NoError(t, err)
	require.True(t, valid)
	require.NotEqual(t, result.TempPassword, stored.PasswordHash)
}

func TestCreateAgentDuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo)

	_, err := svc.CreateAgent(context.Background(), CreateAgentInput{Name: "A", Email: "dup@example.com"})
	require.NoError(t, err)

	_, err = svc.CreateAgent(context.Background(), CreateAgentInput{Name: "B", Email: "dup@example.com"})
	require.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestSetUserRole(t *testing.T) {
	repo := newStubUserRepo()
	user := &models.User{ID: uuid.New(), Email: "c@example.com", Role: enums.UserRoleCustomer, IsActive: true}
	repo.add(user)
	svc := newTestService(t, repo)

	updated, err := svc.SetUserRole(context.Background(), user.ID, enums.UserRoleAgent)
	require.NoError(t, err)
	require.Equal(t, enums.UserRoleAgent, updated.Role)
	require.Equal(t, enums.UserRoleAgent, repo.byID[user.ID].Role)

	_, err = svc.SetUserRole(context.Background(), user.ID, enums.UserRole("superuser"))
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.SetUserRole(context.Background(), uuid.New(), enums.UserRoleAdmin)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestSetUserActive(t *testing.T) {
	repo := newStubUserRepo()
	user := &models.User{ID: uuid.New(), Email: "d@example.com", Role: enums.UserRoleAgent, IsActive: true}
	repo.add(user)
	svc := newTestService(t, repo)

	require.NoError(t, svc.SetUserActive(context.Background(), user.ID, false))
	require.False(t, repo.byID[user.ID].IsActive)
}

func strPtr(s string) *string { return &s }
