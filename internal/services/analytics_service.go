package services

import (
	"context"
	"time"

	"chatgate/internal/catalog"
	"chatgate/internal/models/response_models"
	"chatgate/internal/repositories"
	"chatgate/pkg/utils"
)

type AnalyticsServiceInterface interface {
	// GetSystemAnalytics computes a point-in-time snapshot; the figures may
	// be stale by the time they are returned.
	GetSystemAnalytics(ctx context.Context) (*response_models.SystemAnalytics, error)
}

type AnalyticsService struct {
	repo  repositories.IAnalyticsRepository
	plans *catalog.Catalog
}

func NewAnalyticsService(repo repositories.IAnalyticsRepository, plans *catalog.Catalog) AnalyticsServiceInterface {
	return &AnalyticsService{
		repo:  repo,
		plans: plans,
	}
}

func (s *AnalyticsService) GetSystemAnalytics(ctx context.Context) (*response_models.SystemAnalytics, error) {
	now := time.Now().Unix()
	cutoff := time.Now().AddDate(0, 0, -30).Unix()

	totalUsers, err := s.repo.CountAccounts(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	totalSubscriptions, err := s.repo.CountSubscriptions(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	activeSubscriptions, err := s.repo.CountActiveSubscriptions(ctx, now)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	totalRevenue, err := s.repo.SumRevenue(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	monthlyRevenue, err := s.repo.SumRevenueSince(ctx, cutoff)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	totalChatMessages, err := s.repo.CountChatMessages(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	totalTokensUsed, err := s.repo.SumTokensUsed(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	var planAnalytics []response_models.PlanAnalytics
	for _, plan := range s.plans.List() {
		row, err := s.repo.PlanStats(ctx, plan.Name, now, cutoff)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		planAnalytics = append(planAnalytics, response_models.PlanAnalytics{
			PlanType:          plan.Name,
			Price:             plan.Price,
			TokenLimit:        plan.TokenLimit,
			DurationDays:      plan.DurationDays,
			Features:          plan.Features,
			TotalSubscribers:  row.TotalSubscribers,
			ActiveSubscribers: row.ActiveSubscribers,
			TotalRevenue:      row.TotalRevenue,
			MonthlyRevenue:    row.MonthlyRevenue,
			TotalTokensUsed:   row.TotalTokensUsed,
		})
	}

	// Synthetic Free bucket: accounts with no paid rows count as Free
	// subscribers even when they have no subscription row at all.
	freeUsers, err := s.repo.CountFreeAccounts(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	freeRow, err := s.repo.PlanStats(ctx, catalog.FreePlanName, now, cutoff)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	freePlan := catalog.FreePlan()
	planAnalytics = append(planAnalytics, response_models.PlanAnalytics{
		PlanType:          freePlan.Name,
		Price:             0,
		TokenLimit:        freePlan.TokenLimit,
		DurationDays:      0,
		Features:          freePlan.Features,
		TotalSubscribers:  freeUsers,
		ActiveSubscribers: freeUsers,
		TotalRevenue:      0,
		MonthlyRevenue:    0,
		TotalTokensUsed:   freeRow.TotalTokensUsed,
	})

	return &response_models.SystemAnalytics{
		TotalUsers:          totalUsers,
		TotalSubscriptions:  totalSubscriptions,
		ActiveSubscriptions: activeSubscriptions,
		TotalRevenue:        totalRevenue,
		MonthlyRevenue:      monthlyRevenue,
		TotalChatMessages:   totalChatMessages,
		TotalTokensUsed:     totalTokensUsed,
		PlanAnalytics:       planAnalytics,
	}, nil
}
