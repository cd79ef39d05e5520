package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"chatgate/internal/models/db_models"
	"chatgate/pkg/utils"
)

type ISubscriptionRepository interface {
	// GetCurrent returns the most recently created row for the account,
	// newest created_at first with id as the tiebreak, or nil if none.
	GetCurrent(ctx context.Context, accountID uuid.UUID) (*db_models.Subscription, error)
	GetByAccountAndPlan(ctx context.Context, accountID uuid.UUID, planType string) (*db_models.Subscription, error)
	Create(ctx context.Context, sub *db_models.Subscription) error
	Save(ctx context.Context, sub *db_models.Subscription) error

	// AppendHistoryAndDebit commits the chat log entry and the token debit in
	// one transaction. The debit is a guarded arithmetic UPDATE so two
	// concurrent sends can never lose an increment or push tokens_used past
	// tokens_limit; if the guard fails the whole transaction rolls back and
	// utils.ErrBudgetExceeded is returned.
	AppendHistoryAndDebit(ctx context.Context, entry *db_models.ChatHistory, subscriptionID uuid.UUID, amount int64) error
}

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) ISubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) GetCurrent(ctx context.Context, accountID uuid.UUID) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").
		First(&sub).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &sub, nil
}

func (r *SubscriptionRepository) GetByAccountAndPlan(ctx context.Context, accountID uuid.UUID, planType string) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND plan_type = ?", accountID, planType).
		Order("created_at DESC, id DESC").
		First(&sub).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &sub, nil
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *db_models.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *SubscriptionRepository) Save(ctx context.Context, sub *db_models.Subscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

func (r *SubscriptionRepository) AppendHistoryAndDebit(ctx context.Context, entry *db_models.ChatHistory, subscriptionID uuid.UUID, amount int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		res := tx.Model(&db_models.Subscription{}).
			Where("id = ? AND tokens_used + ? <= tokens_limit", subscriptionID, amount).
			Updates(map[string]interface{}{
				"tokens_used": gorm.Expr("tokens_used + ?", amount),
				"updated_at":  time.Now().Unix(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrBudgetExceeded
		}
		return nil
	})
}
