package payments

import (
	"context"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository defines persistence operations for payments and agent quotes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	FindPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListByMove(ctx context.Context, moveID uuid.UUID) ([]models.Payment, error)
	ListUnderVerification(ctx context.Context, params pagination.Params) ([]models.Payment, *pagination.Cursor, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, updates map[string]any) error
	SumVerifiedByMove(ctx context.Context, moveID uuid.UUID) (decimal.Decimal, error)
	FindQuoteByMove(ctx context.Context, moveID uuid.UUID) (*models.AgentQuote, error)
}
