package repositories

import (
	"context"

	"gorm.io/gorm"

	"chatgate/internal/catalog"
	"chatgate/internal/models/db_models"
)

// PlanStatsRow is the per-plan rollup consumed by the analytics service.
type PlanStatsRow struct {
	TotalSubscribers  int64
	ActiveSubscribers int64
	TotalRevenue      int64
	MonthlyRevenue    int64
	TotalTokensUsed   int64
}

type IAnalyticsRepository interface {
	CountAccounts(ctx context.Context) (int64, error)
	CountSubscriptions(ctx context.Context) (int64, error)
	CountActiveSubscriptions(ctx context.Context, now int64) (int64, error)
	SumRevenue(ctx context.Context) (int64, error)
	SumRevenueSince(ctx context.Context, cutoff int64) (int64, error)
	CountChatMessages(ctx context.Context) (int64, error)
	SumTokensUsed(ctx context.Context) (int64, error)

	PlanStats(ctx context.Context, planType string, now, cutoff int64) (PlanStatsRow, error)

	// CountFreeAccounts counts accounts whose every subscription row (if any)
	// is on the Free tier. Accounts with zero rows are implicit Free members.
	CountFreeAccounts(ctx context.Context) (int64, error)
}

type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) IAnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) CountAccounts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&db_models.Account{}).Count(&n).Error
	return n, err
}

func (r *AnalyticsRepository) CountSubscriptions(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&db_models.Subscription{}).Count(&n).Error
	return n, err
}

func (r *AnalyticsRepository) CountActiveSubscriptions(ctx context.Context, now int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&db_models.Subscription{}).
		Where("is_paid = ? AND expires_at IS NOT NULL AND expires_at > ?", true, now).
		Count(&n).Error
	return n, err
}

func (r *AnalyticsRepository) SumRevenue(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&db_models.Subscription{}).
		Where("is_paid = ?", true).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *AnalyticsRepository) SumRevenueSince(ctx context.Context, cutoff int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&db_models.Subscription{}).
		Where("is_paid = ? AND paid_at IS NOT NULL AND paid_at >= ?", true, cutoff).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *AnalyticsRepository) CountChatMessages(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&db_models.ChatHistory{}).Count(&n).Error
	return n, err
}

func (r *AnalyticsRepository) SumTokensUsed(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&db_models.Subscription{}).
		Select("COALESCE(SUM(tokens_used), 0)").
		Scan(&total).Error
	return total, err
}

func (r *AnalyticsRepository) planQuery(ctx context.Context, planType string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&db_models.Subscription{}).Where("plan_type = ?", planType)
}

func (r *AnalyticsRepository) PlanStats(ctx context.Context, planType string, now, cutoff int64) (PlanStatsRow, error) {
	var row PlanStatsRow

	if err := r.planQuery(ctx, planType).Count(&row.TotalSubscribers).Error; err != nil {
		return row, err
	}
	if err := r.planQuery(ctx, planType).
		Where("is_paid = ? AND expires_at IS NOT NULL AND expires_at > ?", true, now).
		Count(&row.ActiveSubscribers).Error; err != nil {
		return row, err
	}
	if err := r.planQuery(ctx, planType).
		Where("is_paid = ?", true).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&row.TotalRevenue).Error; err != nil {
		return row, err
	}
	if err := r.planQuery(ctx, planType).
		Where("is_paid = ? AND paid_at IS NOT NULL AND paid_at >= ?", true, cutoff).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&row.MonthlyRevenue).Error; err != nil {
		return row, err
	}
	if err := r.planQuery(ctx, planType).
		Select("COALESCE(SUM(tokens_used), 0)").
		Scan(&row.TotalTokensUsed).Error; err != nil {
		return row, err
	}

	return row, nil
}

func (r *AnalyticsRepository) CountFreeAccounts(ctx context.Context) (int64, error) {
	paid := r.db.Model(&db_models.Subscription{}).
		Select("account_id").
		Where("plan_type <> ?", catalog.FreePlanName)

	var n int64
	err := r.db.WithContext(ctx).Model(&db_models.Account{}).
		Where("id NOT IN (?)", paid).
		Count(&n).Error
	return n, err
}
