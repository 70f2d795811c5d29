package quotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
)

// Repository persists agent quotes. A move carries at most one quote, so
// writes go through an upsert keyed on move_id.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, quote *models.AgentQuote) (*models.AgentQuote, error)
	FindByMove(ctx context.Context, moveID uuid.UUID) (*models.AgentQuote, error)
}
