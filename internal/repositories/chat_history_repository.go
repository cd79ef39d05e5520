package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"chatgate/internal/models/db_models"
)

type IChatHistoryRepository interface {
	ListByAccount(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]db_models.ChatHistory, error)
	// StatsByAccount returns the message count and the unix time of the most
	// recent message, nil if the account has never chatted.
	StatsByAccount(ctx context.Context, accountID uuid.UUID) (int64, *int64, error)
}

type ChatHistoryRepository struct {
	db *gorm.DB
}

func NewChatHistoryRepository(db *gorm.DB) IChatHistoryRepository {
	return &ChatHistoryRepository{db: db}
}

func (r *ChatHistoryRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]db_models.ChatHistory, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var entries []db_models.ChatHistory
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error

	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *ChatHistoryRepository) StatsByAccount(ctx context.Context, accountID uuid.UUID) (int64, *int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&db_models.ChatHistory{}).
		Where("account_id = ?", accountID).
		Count(&count).Error; err != nil {
		return 0, nil, err
	}

	if count == 0 {
		return 0, nil, nil
	}

	var last int64
	if err := r.db.WithContext(ctx).
		Model(&db_models.ChatHistory{}).
		Where("account_id = ?", accountID).
		Select("MAX(created_at)").
		Scan(&last).Error; err != nil {
		return 0, nil, err
	}

	return count, &last, nil
}
