package db_models

import (
	"github.com/google/uuid"
)

// Subscription is append-style: one row per (account, plan) period. The row
// with the newest created_at is the account's current entitlement.
type Subscription struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;index"`

	PlanType string `gorm:"size:50;index"` // "Free", "Basic", "Premium"
	IsPaid   bool   `gorm:"default:false"`

	PaidAt    *int64
	ExpiresAt *int64

	Amount        int64  `gorm:"default:0"` // minor units, as supplied by the gateway
	PaymentMethod string `gorm:"size:100"`
	TransactionID string `gorm:"size:200"`

	TokensUsed  int64 `gorm:"not null;default:0"`
	TokensLimit int64 `gorm:"not null;default:500"`

	Account Account `gorm:"foreignKey:AccountID"`
}

// Remaining never goes negative even if a guarded debit was bypassed.
func (s *Subscription) Remaining() int64 {
	if s.TokensLimit <= s.TokensUsed {
		return 0
	}
	return s.TokensLimit - s.TokensUsed
}

// Active reports whether a paid entitlement is currently usable.
// The Free tier is handled separately and never counts as active.
func (s *Subscription) Active(now int64) bool {
	return s.IsPaid && s.ExpiresAt != nil && *s.ExpiresAt > now
}
