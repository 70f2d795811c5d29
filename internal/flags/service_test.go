package flags

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
)

type stubFlagsRepo struct {
	flags map[string]*models.FeatureFlag
}

func newStubFlagsRepo() *stubFlagsRepo {
	return &stubFlagsRepo{flags: map[string]*models.FeatureFlag{}}
}

func (s *stubFlagsRepo) Find(ctx context.Context, key string) (*models.FeatureFlag, error) {
	flag, ok := s.flags[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return flag, nil
}

func (s *stubFlagsRepo) List(ctx context.Context) ([]models.FeatureFlag, error) {
	var out []models.FeatureFlag
	for _, flag := range s.flags {
		out = append(out, *flag)
	}
	return out, nil
}

func (s *stubFlagsRepo) Upsert(ctx context.Context, flag *models.FeatureFlag) (*models.FeatureFlag, error) {
	if flag.ID == uuid.Nil {
		flag.ID = uuid.New()
	}
	s.flags[flag.Key] = flag
	return flag, nil
}

func (s *stubFlagsRepo) Delete(ctx context.Context, key string) error {
	delete(s.flags, key)
	return nil
}

func TestEnabledUnknownFlagIsOff(t *testing.T) {
	svc, err := NewService(newStubFlagsRepo())
	require.NoError(t, err)

	enabled, err := svc.Enabled(context.Background(), KeyIntraCityOnly)
	require.NoError(t, err)
	require.False(t, enabled)
}

func TestSetAndToggle(t *testing.T) {
	repo := newStubFlagsRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	flag, err := svc.Set(context.Background(), SetInput{Key: " Intra_City_Only ", Enabled: true})
	require.NoError(t, err)
	require.Equal(t, KeyIntraCityOnly, flag.Key)

	enabled, err := svc.Enabled(context.Background(), KeyIntraCityOnly)
	require.NoError(t, err)
	require.True(t, enabled)

	_, err = svc.Set(context.Background(), SetInput{Key: KeyIntraCityOnly, Enabled: false})
	require.NoError(t, err)
	enabled, err = svc.Enabled(context.Background(), KeyIntraCityOnly)
	require.NoError(t, err)
	require.False(t, enabled)
}

func TestSetRequiresKey(t *testing.T) {
	svc, err := NewService(newStubFlagsRepo())
	require.NoError(t, err)

	_, err = svc.Set(context.Background(), SetInput{Key: "  "})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
