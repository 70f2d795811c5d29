package quotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository returns a GORM-backed quotes repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Upsert(ctx context.Context, quote *models.AgentQuote) (*models.AgentQuote, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "move_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"agent_id", "base_price", "floor_charge", "fragile_charge", "extra_charge",
				"discount", "subtotal", "tax", "total", "notes", "items_snapshot",
				"submitted_at", "updated_at",
			}),
		}).
		Create(quote).Error
	if err != nil {
		return nil, err
	}
	return r.FindByMove(ctx, quote.MoveID)
}

func (r *repository) FindByMove(ctx context.Context, moveID uuid.UUID) (*models.AgentQuote, error) {
	var quote models.AgentQuote
	if err := r.db.WithContext(ctx).Where("move_id = ?", moveID).First(&quote).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}
