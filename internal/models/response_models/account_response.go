package response_models

import "github.com/google/uuid"

type LoginResponse struct {
	Token    string    `json:"token"`
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

type UserWithSubscription struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt int64     `json:"created_at"`
	UpdatedAt int64     `json:"updated_at"`

	SubscriptionID *uuid.UUID `json:"subscription_id,omitempty"`
	PlanType       string     `json:"plan_type"`
	IsPaid         bool       `json:"is_paid"`
	PaidAt         *int64     `json:"paid_at,omitempty"`
	ExpiresAt      *int64     `json:"expires_at,omitempty"`
	Amount         int64      `json:"amount"`
	PaymentMethod  string     `json:"payment_method"`
	TokensUsed     int64      `json:"tokens_used"`
	TokensLimit    int64      `json:"tokens_limit"`

	TotalChatMessages int64  `json:"total_chat_messages"`
	LastChatAt        *int64 `json:"last_chat_at,omitempty"`
}
