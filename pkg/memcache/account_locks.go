// pkg/memcache/account_locks.go
package mem

import (
	"sync"

	"github.com/google/uuid"
)

// AccountLocks hands out one mutex per account so entitlement updates for a
// given user are serialized in-process. Locks are created on first use and
// never evicted; the map grows with the number of distinct active accounts,
// which is bounded enough for a single-instance deployment.
//
// The lock must NOT be held across the completion-provider call. Callers
// lock to snapshot, release, call out, then re-lock to validate and commit.
type AccountLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewAccountLocks() *AccountLocks {
	return &AccountLocks{
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (l *AccountLocks) get(accountID uuid.UUID) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[accountID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[accountID] = m
	}
	return m
}

func (l *AccountLocks) Lock(accountID uuid.UUID) {
	l.get(accountID).Lock()
}

func (l *AccountLocks) Unlock(accountID uuid.UUID) {
	l.get(accountID).Unlock()
}
