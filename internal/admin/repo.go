package admin

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
)

// DashboardStats aggregates the headline numbers for the admin console.
type DashboardStats struct {
	TotalMoves           int64                      `json:"total_moves"`
	MovesByStatus        map[enums.MoveStatus]int64 `json:"moves_by_status"`
	ActiveAgents         int64                      `json:"active_agents"`
	PendingVerifications int64                      `json:"pending_verifications"`
	OpenDisputes         int64                      `json:"open_disputes"`
	VerifiedRevenue      decimal.Decimal            `json:"verified_revenue"`
}

// Repository runs the aggregate queries behind the admin dashboard.
type Repository interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a GORM-backed admin repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		MovesByStatus:   map[enums.MoveStatus]int64{},
		VerifiedRevenue: decimal.Zero,
	}

	if err := r.db.WithContext(ctx).Model(&models.Move{}).Count(&stats.TotalMoves).Error; err != nil {
		return nil, err
	}

	var byStatus []struct {
		Status enums.MoveStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Move{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.MovesByStatus[row.Status] = row.Count
	}

	err = r.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ? AND is_active = ? AND is_available = ?", enums.UserRoleAgent, true, true).
		Count(&stats.ActiveAgents).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("status = ?", enums.PaymentStatusUnderVerification).
		Count(&stats.PendingVerifications).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&models.Dispute{}).
		Where("status IN ?", []enums.DisputeStatus{enums.DisputeStatusOpen, enums.DisputeStatusUnderReview, enums.DisputeStatusEscalated}).
		Count(&stats.OpenDisputes).Error
	if err != nil {
		return nil, err
	}

	var revenue struct {
		Total decimal.NullDecimal
	}
	err = r.db.WithContext(ctx).Model(&models.Payment{}).
		Select("SUM(amount) AS total").
		Where("status = ?", enums.PaymentStatusVerified).
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	if revenue.Total.Valid {
		stats.VerifiedRevenue = revenue.Total.Decimal
	}
	return stats, nil
}
