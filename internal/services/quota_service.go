package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"chatgate/internal/catalog"
	"chatgate/internal/models/db_models"
	"chatgate/internal/repositories"
	mem "chatgate/pkg/memcache"
	"chatgate/pkg/utils"
)

type QuotaServiceInterface interface {
	HasPermission(ctx context.Context, accountID uuid.UUID) (bool, error)
	RemainingTokens(ctx context.Context, accountID uuid.UUID) (int64, error)
}

type QuotaService struct {
	subRepo repositories.ISubscriptionRepository
	locks   *mem.AccountLocks
}

func NewQuotaService(subRepo repositories.ISubscriptionRepository, locks *mem.AccountLocks) QuotaServiceInterface {
	return &QuotaService{
		subRepo: subRepo,
		locks:   locks,
	}
}

// HasPermission reports whether the account may start a chat. An account with
// no entitlement row gets a default Free one created here; the per-account
// lock guarantees two concurrent first calls produce exactly one row.
// Free-tier accounts always pass regardless of balance; the send pipeline
// still rejects at zero remaining.
func (s *QuotaService) HasPermission(ctx context.Context, accountID uuid.UUID) (bool, error) {
	s.locks.Lock(accountID)
	defer s.locks.Unlock(accountID)

	sub, err := s.subRepo.GetCurrent(ctx, accountID)
	if err != nil {
		return false, utils.ErrDatabaseError
	}

	if sub == nil {
		free := &db_models.Subscription{
			AccountID:   accountID,
			PlanType:    catalog.FreePlanName,
			IsPaid:      false,
			TokensUsed:  0,
			TokensLimit: catalog.FreeTokenLimit,
		}
		if err := s.subRepo.Create(ctx, free); err != nil {
			return false, utils.ErrDatabaseError
		}
		return true, nil
	}

	if sub.PlanType == catalog.FreePlanName {
		return true, nil
	}

	return sub.Active(time.Now().Unix()), nil
}

// RemainingTokens reads the balance without side effects. When no row exists
// it reports the Free default WITHOUT creating one: lazy initialization
// belongs to HasPermission, so callers must check permission before reading
// the balance or they see a figure for a row that is not there yet.
func (s *QuotaService) RemainingTokens(ctx context.Context, accountID uuid.UUID) (int64, error) {
	sub, err := s.subRepo.GetCurrent(ctx, accountID)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}

	if sub == nil {
		return catalog.FreeTokenLimit, nil
	}

	return sub.Remaining(), nil
}
