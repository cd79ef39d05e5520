package response_models

import (
	"time"

	"github.com/google/uuid"
)

type ChatResponse struct {
	Response   string    `json:"response"`
	TokensUsed int64     `json:"tokens_used"`
	Model      string    `json:"model"`
	Timestamp  time.Time `json:"timestamp"`
}

type ChatHistoryEntry struct {
	ID          uuid.UUID `json:"id"`
	UserMessage string    `json:"user_message"`
	AiResponse  string    `json:"ai_response"`
	TokensUsed  int64     `json:"tokens_used"`
	Model       string    `json:"model"`
	CreatedAt   int64     `json:"created_at"`
}

type ChatPermissionResponse struct {
	HasPermission   bool   `json:"has_permission"`
	RemainingTokens int64  `json:"remaining_tokens"`
	Message         string `json:"message"`
}
