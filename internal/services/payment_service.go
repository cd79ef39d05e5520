package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"chatgate/internal/catalog"
	"chatgate/internal/models/db_models"
	"chatgate/internal/models/request_models"
	"chatgate/internal/models/response_models"
	"chatgate/internal/repositories"
	mem "chatgate/pkg/memcache"
	"chatgate/pkg/utils"
)

type PaymentServiceInterface interface {
	// ProcessPayment records a settled payment reported by the gateway. The
	// gateway itself is a collaborator; amount, method and transaction id are
	// trusted as supplied.
	ProcessPayment(ctx context.Context, accountID uuid.UUID, request request_models.PaymentRequest) (*response_models.PaymentResponse, error)
	GetSubscriptionStatus(ctx context.Context, accountID uuid.UUID) (*response_models.SubscriptionStatusResponse, error)
	// UpdateSubscription is the privileged admin override.
	UpdateSubscription(ctx context.Context, accountID uuid.UUID, planType string, isPaid bool) (*response_models.SubscriptionStatusResponse, error)
}

type PaymentService struct {
	subRepo repositories.ISubscriptionRepository
	plans   *catalog.Catalog
	locks   *mem.AccountLocks
}

func NewPaymentService(subRepo repositories.ISubscriptionRepository, plans *catalog.Catalog, locks *mem.AccountLocks) PaymentServiceInterface {
	return &PaymentService{
		subRepo: subRepo,
		plans:   plans,
		locks:   locks,
	}
}

func (s *PaymentService) ProcessPayment(ctx context.Context, accountID uuid.UUID, request request_models.PaymentRequest) (*response_models.PaymentResponse, error) {
	plan, ok := s.plans.Lookup(request.PlanType)
	if !ok {
		return nil, utils.ErrPlanNotFound
	}
	if request.Amount <= 0 {
		return nil, utils.ErrInvalidAmount
	}

	s.locks.Lock(accountID)
	defer s.locks.Unlock(accountID)

	now := time.Now().Unix()
	expiresAt := time.Now().AddDate(0, 0, plan.DurationDays).Unix()

	sub, err := s.subRepo.GetByAccountAndPlan(ctx, accountID, request.PlanType)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	if sub != nil {
		// Renewal refreshes the paid window and limit. tokens_used is left
		// untouched: usage carries across periods of the same plan.
		sub.IsPaid = true
		sub.PaidAt = &now
		sub.ExpiresAt = &expiresAt
		sub.Amount = request.Amount
		sub.PaymentMethod = request.PaymentMethod
		sub.TransactionID = request.TransactionID
		sub.TokensLimit = plan.TokenLimit

		if err := s.subRepo.Save(ctx, sub); err != nil {
			return nil, utils.ErrDatabaseError
		}
	} else {
		sub = &db_models.Subscription{
			AccountID:     accountID,
			PlanType:      request.PlanType,
			IsPaid:        true,
			PaidAt:        &now,
			ExpiresAt:     &expiresAt,
			Amount:        request.Amount,
			PaymentMethod: request.PaymentMethod,
			TransactionID: request.TransactionID,
			TokensUsed:    0,
			TokensLimit:   plan.TokenLimit,
		}
		if err := s.subRepo.Create(ctx, sub); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	return &response_models.PaymentResponse{
		SubscriptionID: sub.ID,
		PlanType:       sub.PlanType,
		Amount:         sub.Amount,
		PaidAt:         now,
		ExpiresAt:      expiresAt,
		NewTokenLimit:  sub.TokensLimit,
	}, nil
}

func (s *PaymentService) GetSubscriptionStatus(ctx context.Context, accountID uuid.UUID) (*response_models.SubscriptionStatusResponse, error) {
	s.locks.Lock(accountID)
	defer s.locks.Unlock(accountID)

	sub, err := s.subRepo.GetCurrent(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	if sub == nil {
		sub = &db_models.Subscription{
			AccountID:   accountID,
			PlanType:    catalog.FreePlanName,
			IsPaid:      false,
			TokensUsed:  0,
			TokensLimit: catalog.FreeTokenLimit,
		}
		if err := s.subRepo.Create(ctx, sub); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	return subscriptionStatus(sub), nil
}

func (s *PaymentService) UpdateSubscription(ctx context.Context, accountID uuid.UUID, planType string, isPaid bool) (*response_models.SubscriptionStatusResponse, error) {
	plan, inCatalog := s.plans.Lookup(planType)
	if !inCatalog && planType != catalog.FreePlanName {
		return nil, utils.ErrPlanNotFound
	}

	tokensLimit := int64(catalog.FreeTokenLimit)
	if inCatalog {
		tokensLimit = plan.TokenLimit
	}

	s.locks.Lock(accountID)
	defer s.locks.Unlock(accountID)

	sub, err := s.subRepo.GetCurrent(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	created := false
	if sub == nil {
		sub = &db_models.Subscription{
			AccountID:   accountID,
			PlanType:    planType,
			IsPaid:      isPaid,
			TokensUsed:  0,
			TokensLimit: tokensLimit,
		}
		created = true
	} else {
		// Override retargets the most recent row regardless of its plan.
		sub.PlanType = planType
		sub.IsPaid = isPaid
		sub.TokensLimit = tokensLimit
	}

	if isPaid {
		now := time.Now().Unix()
		sub.PaidAt = &now
		if inCatalog {
			expiresAt := time.Now().AddDate(0, 0, plan.DurationDays).Unix()
			sub.ExpiresAt = &expiresAt
			sub.Amount = plan.Price
		}
	} else {
		sub.PaidAt = nil
		sub.ExpiresAt = nil
		sub.Amount = 0
	}

	if created {
		err = s.subRepo.Create(ctx, sub)
	} else {
		err = s.subRepo.Save(ctx, sub)
	}
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return subscriptionStatus(sub), nil
}

func subscriptionStatus(sub *db_models.Subscription) *response_models.SubscriptionStatusResponse {
	now := time.Now().Unix()
	return &response_models.SubscriptionStatusResponse{
		ID:          sub.ID,
		PlanType:    sub.PlanType,
		IsPaid:      sub.IsPaid,
		PaidAt:      sub.PaidAt,
		ExpiresAt:   sub.ExpiresAt,
		Amount:      sub.Amount,
		TokensUsed:  sub.TokensUsed,
		TokensLimit: sub.TokensLimit,
		Remaining:   sub.Remaining(),
		IsActive:    sub.Active(now),
	}
}
