package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"chatgate/internal/models/db_models"
	"chatgate/internal/models/request_models"
	"chatgate/internal/models/response_models"
	"chatgate/internal/repositories"
	mem "chatgate/pkg/memcache"
	"chatgate/pkg/utils"
)

const defaultChatModel = "gpt-3.5-turbo"

type ChatServiceInterface interface {
	SendMessage(ctx context.Context, accountID uuid.UUID, request request_models.ChatRequest) (*response_models.ChatResponse, error)
	GetChatHistory(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]response_models.ChatHistoryEntry, error)
}

type ChatService struct {
	quotaService QuotaServiceInterface
	subRepo      repositories.ISubscriptionRepository
	historyRepo  repositories.IChatHistoryRepository
	completion   utils.CompletionClientInterface
	locks        *mem.AccountLocks
}

func NewChatService(
	quotaService QuotaServiceInterface,
	subRepo repositories.ISubscriptionRepository,
	historyRepo repositories.IChatHistoryRepository,
	completion utils.CompletionClientInterface,
	locks *mem.AccountLocks,
) ChatServiceInterface {
	return &ChatService{
		quotaService: quotaService,
		subRepo:      subRepo,
		historyRepo:  historyRepo,
		completion:   completion,
		locks:        locks,
	}
}

// SendMessage runs the metered send: permission gate, balance gate, provider
// call, then validate-and-commit. The provider call can block for up to two
// minutes, so the account lock is NOT held across it; the balance is
// re-checked against a fresh row before committing the debit.
func (s *ChatService) SendMessage(ctx context.Context, accountID uuid.UUID, request request_models.ChatRequest) (*response_models.ChatResponse, error) {
	model := request.Model
	if model == "" {
		model = defaultChatModel
	}

	ok, err := s.quotaService.HasPermission(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.ErrNoActiveSubscription
	}

	remaining, err := s.quotaService.RemainingTokens(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if remaining <= 0 {
		return nil, utils.ErrQuotaExhausted
	}

	text, tokensUsed, err := s.completion.Complete(ctx, request.Message, model)
	if err != nil {
		// No local state has changed at this point.
		return nil, err
	}

	s.locks.Lock(accountID)
	defer s.locks.Unlock(accountID)

	sub, err := s.subRepo.GetCurrent(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if sub == nil {
		return nil, utils.ErrSubscriptionNotFound
	}

	if tokensUsed > sub.Remaining() {
		// The provider has already billed this call and there is nowhere to
		// record that cost locally, so at least make the loss observable.
		s.logAccountingLoss(accountID, model, tokensUsed, sub.Remaining())
		return nil, utils.ErrBudgetExceeded
	}

	entry := &db_models.ChatHistory{
		AccountID:   accountID,
		UserMessage: request.Message,
		AiResponse:  text,
		TokensUsed:  tokensUsed,
		Model:       model,
	}

	if err := s.subRepo.AppendHistoryAndDebit(ctx, entry, sub.ID, tokensUsed); err != nil {
		if errors.Is(err, utils.ErrBudgetExceeded) {
			s.logAccountingLoss(accountID, model, tokensUsed, sub.Remaining())
			return nil, err
		}
		return nil, utils.ErrDatabaseError
	}

	return &response_models.ChatResponse{
		Response:   text,
		TokensUsed: tokensUsed,
		Model:      model,
		Timestamp:  time.Now().UTC(),
	}, nil
}

func (s *ChatService) logAccountingLoss(accountID uuid.UUID, model string, cost, remaining int64) {
	slog.Warn("accounting loss: completion cost incurred but rejected",
		"account_id", accountID.String(),
		"model", model,
		"cost", cost,
		"remaining", remaining,
	)
}

func (s *ChatService) GetChatHistory(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]response_models.ChatHistoryEntry, error) {
	rows, err := s.historyRepo.ListByAccount(ctx, accountID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	entries := make([]response_models.ChatHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, response_models.ChatHistoryEntry{
			ID:          row.ID,
			UserMessage: row.UserMessage,
			AiResponse:  row.AiResponse,
			TokensUsed:  row.TokensUsed,
			Model:       row.Model,
			CreatedAt:   row.CreatedAt,
		})
	}

	return entries, nil
}
