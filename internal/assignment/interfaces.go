package assignment

import (
	"context"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the agent-pool queries behind assignment.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListAvailableAgents(ctx context.Context) ([]models.User, error)
	FindAgent(ctx context.Context, id uuid.UUID) (*models.User, error)
	CountActiveMovesByAgent(ctx context.Context, agentIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}
