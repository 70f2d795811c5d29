package flags

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
)

// KeyIntraCityOnly restricts move creation to same-city relocations when
// enabled.
const KeyIntraCityOnly = "intra_city_only"

// SetInput creates or updates a flag.
type SetInput struct {
	Key         string
	Enabled     bool
	Description *string
}

// Service reads and manages feature flags. Enabled hits the store on every
// call so a toggle takes effect immediately across all instances.
type Service interface {
	Enabled(ctx context.Context, key string) (bool, error)
	List(ctx context.Context) ([]models.FeatureFlag, error)
	Set(ctx context.Context, input SetInput) (*models.FeatureFlag, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	repo Repository
}

// NewService builds a flags service over the given repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("flags repository required")
	}
	return &service{repo: repo}, nil
}

// Enabled reports whether a flag is on. Unknown flags are off.
func (s *service) Enabled(ctx context.Context, key string) (bool, error) {
	flag, err := s.repo.Find(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load flag")
	}
	return flag.Enabled, nil
}

func (s *service) List(ctx context.Context) ([]models.FeatureFlag, error) {
	flags, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list flags")
	}
	return flags, nil
}

func (s *service) Set(ctx context.Context, input SetInput) (*models.FeatureFlag, error) {
	key := strings.TrimSpace(strings.ToLower(input.Key))
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "flag key required")
	}

	flag, err := s.repo.Upsert(ctx, &models.FeatureFlag{
		Key:         key,
		Enabled:     input.Enabled,
		Description: input.Description,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save flag")
	}
	return flag, nil
}

func (s *service) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "flag key required")
	}
	if err := s.repo.Delete(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete flag")
	}
	return nil
}
