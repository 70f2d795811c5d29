package ratings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
)

// Repository persists move ratings and the derived agent aggregates.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, rating *models.MoveRating) (*models.MoveRating, error)
	FindByMove(ctx context.Context, moveID uuid.UUID) (*models.MoveRating, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID) ([]models.MoveRating, error)
	AverageForAgent(ctx context.Context, agentID uuid.UUID) (float64, int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a GORM-backed ratings repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, rating *models.MoveRating) (*models.MoveRating, error) {
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return nil, err
	}
	return rating, nil
}

func (r *repository) FindByMove(ctx context.Context, moveID uuid.UUID) (*models.MoveRating, error) {
	var rating models.MoveRating
	if err := r.db.WithContext(ctx).Where("move_id = ?", moveID).First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *repository) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]models.MoveRating, error) {
	var out []models.MoveRating
	err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) AverageForAgent(ctx context.Context, agentID uuid.UUID) (float64, int64, error) {
	var row struct {
		Avg   *float64
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.MoveRating{}).
		Where("agent_id = ?", agentID).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	if row.Avg == nil {
		return 0, 0, nil
	}
	return *row.Avg, row.Count, nil
}
