package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"chatgate/internal/models/db_models"
	"chatgate/pkg/utils"
)

// fakeSubscriptionRepo is an in-memory ISubscriptionRepository. All methods
// take the internal mutex so it is safe under the race detector, matching the
// guarantees of the real postgres-backed repository.
type fakeSubscriptionRepo struct {
	mu      sync.Mutex
	subs    []db_models.Subscription
	history []db_models.ChatHistory

	getCurrentErr error
	createErr     error
	saveErr       error
	debitErr      error

	createCalls int
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{}
}

func (f *fakeSubscriptionRepo) GetCurrent(_ context.Context, accountID uuid.UUID) (*db_models.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getCurrentErr != nil {
		return nil, f.getCurrentErr
	}

	for i := len(f.subs) - 1; i >= 0; i-- {
		if f.subs[i].AccountID == accountID {
			sub := f.subs[i]
			return &sub, nil
		}
	}
	return nil, nil
}

func (f *fakeSubscriptionRepo) GetByAccountAndPlan(_ context.Context, accountID uuid.UUID, planType string) (*db_models.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := len(f.subs) - 1; i >= 0; i-- {
		if f.subs[i].AccountID == accountID && f.subs[i].PlanType == planType {
			sub := f.subs[i]
			return &sub, nil
		}
	}
	return nil, nil
}

func (f *fakeSubscriptionRepo) Create(_ context.Context, sub *db_models.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	f.subs = append(f.subs, *sub)
	return nil
}

func (f *fakeSubscriptionRepo) Save(_ context.Context, sub *db_models.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return f.saveErr
	}
	for i := range f.subs {
		if f.subs[i].ID == sub.ID {
			f.subs[i] = *sub
			return nil
		}
	}
	f.subs = append(f.subs, *sub)
	return nil
}

func (f *fakeSubscriptionRepo) AppendHistoryAndDebit(_ context.Context, entry *db_models.ChatHistory, subscriptionID uuid.UUID, amount int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.debitErr != nil {
		return f.debitErr
	}
	for i := range f.subs {
		if f.subs[i].ID == subscriptionID {
			if f.subs[i].TokensUsed+amount > f.subs[i].TokensLimit {
				return utils.ErrBudgetExceeded
			}
			f.subs[i].TokensUsed += amount
			if entry.ID == uuid.Nil {
				entry.ID = uuid.New()
			}
			f.history = append(f.history, *entry)
			return nil
		}
	}
	return utils.ErrSubscriptionNotFound
}

func (f *fakeSubscriptionRepo) subByID(id uuid.UUID) *db_models.Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.subs {
		if f.subs[i].ID == id {
			sub := f.subs[i]
			return &sub
		}
	}
	return nil
}

func (f *fakeSubscriptionRepo) historyCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.history)
}

type fakeChatHistoryRepo struct {
	mu      sync.Mutex
	entries []db_models.ChatHistory
	listErr error
}

func (f *fakeChatHistoryRepo) ListByAccount(_ context.Context, accountID uuid.UUID, page, pageSize int) ([]db_models.ChatHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}

	var out []db_models.ChatHistory
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].AccountID == accountID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *fakeChatHistoryRepo) StatsByAccount(_ context.Context, accountID uuid.UUID) (int64, *int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	var last *int64
	for i := range f.entries {
		if f.entries[i].AccountID == accountID {
			count++
			created := f.entries[i].CreatedAt
			if last == nil || created > *last {
				last = &created
			}
		}
	}
	return count, last, nil
}

// fakeCompletionClient returns a canned reply and records how often the
// provider was actually called.
type fakeCompletionClient struct {
	mu     sync.Mutex
	text   string
	tokens int64
	err    error
	calls  int
}

func (f *fakeCompletionClient) Complete(_ context.Context, _ string, _ string) (string, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return "", 0, f.err
	}
	return f.text, f.tokens, nil
}

func (f *fakeCompletionClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
