package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/internal/users"
	"github.com/amitsingh12ap/moveassist/pkg/config"
	"github.com/amitsingh12ap/moveassist/pkg/db"
	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
	"github.com/amitsingh12ap/moveassist/pkg/geo"
	"github.com/amitsingh12ap/moveassist/pkg/security"
)

const tempPasswordLength = 12

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListByRole(ctx context.Context, role enums.UserRole) ([]models.User, error)
}

// CreateAgentInput provisions a new agent account.
type CreateAgentInput struct {
	Name      string
	Email     string
	Phone     *string
	City      *string
	Latitude  *float64
	Longitude *float64
}

// CreateAgentResult carries the new account plus its one-time credential.
type CreateAgentResult struct {
	User         *users.UserResponse `json:"user"`
	TempPassword string              `json:"temp_password"`
}

// Service exposes admin-only operations over users and platform stats.
type Service interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	CreateAgent(ctx context.Context, input CreateAgentInput) (*CreateAgentResult, error)
	ListUsers(ctx context.Context, role enums.UserRole) ([]users.UserResponse, error)
	SetUserRole(ctx context.Context, userID uuid.UUID, role enums.UserRole) (*users.UserResponse, error)
	SetUserActive(ctx context.Context, userID uuid.UUID, active bool) error
}

type service struct {
	repo        Repository
	users       userRepository
	passwordCfg config.PasswordConfig
}

// NewService builds an admin service with the required dependencies.
func NewService(repo Repository, userRepo userRepository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("admin repository required")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, users: userRepo, passwordCfg: passwordCfg}, nil
}

func (s *service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats, err := s.repo.DashboardStats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dashboard stats")
	}
	return stats, nil
}

// CreateAgent provisions an agent with a generated temporary password. The
// password is returned once and never stored in the clear.
func (s *service) CreateAgent(ctx context.Context, input CreateAgentInput) (*CreateAgentResult, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and email required")
	}

	tempPassword, err := security.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
	}
	hash, err := security.HashPassword(tempPassword, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash temp password")
	}

	var city *string
	if input.City != nil {
		normalized := geo.NormalizeCity(*input.City)
		city = &normalized
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        input.Phone,
		Role:         enums.UserRoleAgent,
		City:         city,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create agent")
	}
	return &CreateAgentResult{User: users.FromModel(user), TempPassword: tempPassword}, nil
}

func (s *service) ListUsers(ctx context.Context, role enums.UserRole) ([]users.UserResponse, error) {
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role").
			WithDetails(map[string]any{"role": role})
	}
	rows, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	out := make([]users.UserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *users.FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) SetUserRole(ctx context.Context, userID uuid.UUID, role enums.UserRole) (*users.UserResponse, error) {
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role").
			WithDetails(map[string]any{"role": role})
	}
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return users.FromModel(user), nil
	}
	if err := s.users.Update(ctx, userID, map[string]any{"role": role}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user role")
	}
	user.Role = role
	return users.FromModel(user), nil
}

func (s *service) SetUserActive(ctx context.Context, userID uuid.UUID, active bool) error {
	if _, err := s.loadUser(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Update(ctx, userID, map[string]any{"is_active": active}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return nil
}

func (s *service) loadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}
