package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatgate/internal/models/db_models"
	"chatgate/internal/models/request_models"
	mem "chatgate/pkg/memcache"
	"chatgate/pkg/utils"
)

func newChatFixture(completion *fakeCompletionClient) (*fakeSubscriptionRepo, *fakeChatHistoryRepo, ChatServiceInterface) {
	subRepo := newFakeSubscriptionRepo()
	historyRepo := &fakeChatHistoryRepo{}
	locks := mem.NewAccountLocks()
	quota := NewQuotaService(subRepo, locks)
	svc := NewChatService(quota, subRepo, historyRepo, completion, locks)
	return subRepo, historyRepo, svc
}

func paidSub(accountID uuid.UUID, used, limit int64) *db_models.Subscription {
	expires := time.Now().Add(24 * time.Hour).Unix()
	return &db_models.Subscription{
		AccountID:   accountID,
		PlanType:    "Basic",
		IsPaid:      true,
		ExpiresAt:   &expires,
		TokensUsed:  used,
		TokensLimit: limit,
	}
}

func TestSendMessageSuccess(t *testing.T) {
	accountID := uuid.New()
	completion := &fakeCompletionClient{text: "hello there", tokens: 42}
	subRepo, _, svc := newChatFixture(completion)
	sub := paidSub(accountID, 0, 10000)
	require.NoError(t, subRepo.Create(context.Background(), sub))

	resp, err := svc.SendMessage(context.Background(), accountID, request_models.ChatRequest{Message: "hi"})
	require.NoError(t, err)

	assert.Equal(t, "hello there", resp.Response)
	assert.Equal(t, int64(42), resp.TokensUsed)
	assert.Equal(t, "gpt-3.5-turbo", resp.Model, "model defaults when the request leaves it empty")

	after := subRepo.subByID(sub.ID)
	require.NotNil(t, after)
	assert.Equal(t, int64(42), after.TokensUsed)
	assert.Equal(t, 1, subRepo.historyCount())
}

func TestSendMessageRespectsRequestedModel(t *testing.T) {
	accountID := uuid.New()
	completion := &fakeCompletionClient{text: "ok", tokens: 10}
	subRepo, _, svc := newChatFixture(completion)
	require.NoError(t, subRepo.Create(context.Background(), paidSub(accountID, 0, 10000)))

	resp, err := svc.SendMessage(context.Background(), accountID, request_models.ChatRequest{Message: "hi", Model: "gpt-4"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4", resp.Model)
}

func TestSendMessageDeniedWithoutActiveSubscription(t *testing.T) {
	accountID := uuid.New()
	completion := &fakeCompletionClient{text: "ok", tokens: 10}
	subRepo, _, svc := newChatFixture(completion)

	expired := time.Now().Add(-time.Hour).Unix()
	require.NoError(t, subRepo.Create(context.Background(), &db_models.Subscription{
		AccountID:   accountID,
		PlanType:    "Basic",
		IsPaid:      true,
		ExpiresAt:   &expired,
		TokensLimit: 10000,
	}))

	_, err := svc.SendMessage(context.Background(), accountID, request_models.ChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, utils.ErrNoActiveSubscription)
	assert.Zero(t, completion.callCount(), "the provider must not be called for a denied account")
}

func TestSendMessageQuotaExhausted(t *testing.T) {
	accountID := uuid.New()
	completion := &fakeCompletionClient{text: "ok", tokens: 10}
	subRepo, _, svc := newChatFixture(completion)
	require.NoError(t, subRepo.Create(context.Background(), paidSub(accountID, 10000, 10000)))

	_, err := svc.SendMessage(context.Background(), accountID, request_models.ChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, utils.ErrQuotaExhausted)
	assert.Zero(t, completion.callCount())
}

func TestSendMessageUpstreamErrorPassesThrough(t *testing.T) {
	accountID := uuid.New()
	upstream := utils.NewUpstreamError(utils.UpstreamRateLimited, assert.AnError)
	completion := &fakeCompletionClient{err: upstream}
	subRepo, _, svc := newChatFixture(completion)
	sub := paidSub(accountID, 0, 10000)
	require.NoError(t, subRepo.Create(context.Background(), sub))

	_, err := svc.SendMessage(context.Background(), accountID, request_models.ChatRequest{Message: "hi"})

	var ue *utils.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, utils.UpstreamRateLimited, ue.Kind)

	after := subRepo.subByID(sub.ID)
	assert.Zero(t, after.TokensUsed, "a failed provider call must not debit the quota")
	assert.Zero(t, subRepo.historyCount())
}

func TestSendMessageBudgetExceededAfterProviderCall(t *testing.T) {
	accountID := uuid.New()
	completion := &fakeCompletionClient{text: "long answer", tokens: 700}
	subRepo, _, svc := newChatFixture(completion)
	sub := paidSub(accountID, 9500, 10000)
	require.NoError(t, subRepo.Create(context.Background(), sub))

	_, err := svc.SendMessage(context.Background(), accountID, request_models.ChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, utils.ErrBudgetExceeded)
	assert.Equal(t, 1, completion.callCount())

	after := subRepo.subByID(sub.ID)
	assert.Equal(t, int64(9500), after.TokensUsed, "a rejected cost must leave the balance untouched")
	assert.Zero(t, subRepo.historyCount())
}

// Twenty goroutines race a 1000-token budget at 100 tokens per send. Exactly
// ten may win and the balance must land exactly on the limit with one history
// row per winner.
func TestSendMessageConcurrentDebitsNeverOversell(t *testing.T) {
	accountID := uuid.New()
	completion := &fakeCompletionClient{text: "ok", tokens: 100}
	subRepo, _, svc := newChatFixture(completion)
	sub := paidSub(accountID, 0, 1000)
	require.NoError(t, subRepo.Create(context.Background(), sub))

	const senders = 20
	var wg sync.WaitGroup
	errs := make([]error, senders)
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.SendMessage(context.Background(), accountID, request_models.ChatRequest{Message: "hi"})
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		if !assert.True(t, err == utils.ErrQuotaExhausted || err == utils.ErrBudgetExceeded, "unexpected error: %v", err) {
			t.FailNow()
		}
	}

	after := subRepo.subByID(sub.ID)
	assert.Equal(t, int64(successes*100), after.TokensUsed)
	assert.LessOrEqual(t, after.TokensUsed, after.TokensLimit)
	assert.Equal(t, successes, subRepo.historyCount())
	assert.Equal(t, 10, successes)
}

func TestGetChatHistoryNewestFirst(t *testing.T) {
	accountID := uuid.New()
	completion := &fakeCompletionClient{}
	_, historyRepo, svc := newChatFixture(completion)

	historyRepo.entries = []db_models.ChatHistory{
		{BaseModel: db_models.BaseModel{ID: uuid.New(), CreatedAt: 100}, AccountID: accountID, UserMessage: "first", AiResponse: "a", TokensUsed: 5},
		{BaseModel: db_models.BaseModel{ID: uuid.New(), CreatedAt: 200}, AccountID: accountID, UserMessage: "second", AiResponse: "b", TokensUsed: 7},
		{BaseModel: db_models.BaseModel{ID: uuid.New(), CreatedAt: 300}, AccountID: uuid.New(), UserMessage: "other account", AiResponse: "c", TokensUsed: 9},
	}

	entries, err := svc.GetChatHistory(context.Background(), accountID, 1, 20)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].UserMessage)
	assert.Equal(t, "first", entries[1].UserMessage)
}
