package db_models

import (
	"github.com/google/uuid"
)

// ChatHistory rows are append-only; nothing in the service mutates or
// deletes them after the send that created them.
type ChatHistory struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;index"`

	UserMessage string `gorm:"type:text;not null"`
	AiResponse  string `gorm:"type:text;not null"`
	TokensUsed  int64  `gorm:"default:0"`
	Model       string `gorm:"size:100"`

	Account Account `gorm:"foreignKey:AccountID"`
}
