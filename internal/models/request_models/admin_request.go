package request_models

import "github.com/google/uuid"

type UpdateSubscriptionRequest struct {
	UserID   uuid.UUID `json:"user_id" binding:"required"`
	PlanType string    `json:"plan_type" binding:"required"`
	IsPaid   bool      `json:"is_paid"`
}
