package response_models

import "github.com/google/uuid"

type SubscriptionStatusResponse struct {
	ID          uuid.UUID `json:"id"`
	PlanType    string    `json:"plan_type"`
	IsPaid      bool      `json:"is_paid"`
	PaidAt      *int64    `json:"paid_at,omitempty"`
	ExpiresAt   *int64    `json:"expires_at,omitempty"`
	Amount      int64     `json:"amount"`
	TokensUsed  int64     `json:"tokens_used"`
	TokensLimit int64     `json:"tokens_limit"`
	Remaining   int64     `json:"remaining"`
	IsActive    bool      `json:"is_active"`
}

type PaymentResponse struct {
	SubscriptionID uuid.UUID `json:"subscription_id"`
	PlanType       string    `json:"plan_type"`
	Amount         int64     `json:"amount"`
	PaidAt         int64     `json:"paid_at"`
	ExpiresAt      int64     `json:"expires_at"`
	NewTokenLimit  int64     `json:"new_token_limit"`
}
