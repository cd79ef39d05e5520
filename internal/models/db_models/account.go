package db_models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Account struct {
	BaseModel
	Username     string `gorm:"size:50;uniqueIndex"`
	PasswordHash string
	Role         string `gorm:"size:20;default:user"`

	Subscriptions []Subscription `gorm:"foreignKey:AccountID"`
	ChatHistories []ChatHistory  `gorm:"foreignKey:AccountID"`
}
