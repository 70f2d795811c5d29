package assignment

import (
	"context"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// workloadStatuses are the move statuses that count against an agent's load.
var workloadStatuses = []enums.MoveStatus{
	enums.MoveStatusActive,
	enums.MoveStatusInProgress,
	enums.MoveStatusPacking,
	enums.MoveStatusInTransit,
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an assignment repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListAvailableAgents(ctx context.Context) ([]models.User, error) {
	var agents []models.User
	err := r.db.WithContext(ctx).
		Where("role = ?", enums.UserRoleAgent).
		Where("is_active = TRUE").
		Where("is_available = TRUE").
		Order("created_at ASC").
		Find(&agents).Error
	return agents, err
}

func (r *repository) FindAgent(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var agent models.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("role = ?", enums.UserRoleAgent).
		First(&agent).Error
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *repository) CountActiveMovesByAgent(ctx context.Context, agentIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	workloads := make(map[uuid.UUID]int64, len(agentIDs))
	if len(agentIDs) == 0 {
		return workloads, nil
	}

	type row struct {
		AgentID uuid.UUID
		Count   int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Move{}).
		Select("agent_id, COUNT(*) AS count").
		Where("agent_id IN ?", agentIDs).
		Where("status IN ?", workloadStatuses).
		Group("agent_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		workloads[r.AgentID] = r.Count
	}
	return workloads, nil
}
