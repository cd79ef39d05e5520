package response_models

type PlanAnalytics struct {
	PlanType          string   `json:"plan_type"`
	Price             int64    `json:"price"`
	TokenLimit        int64    `json:"token_limit"`
	DurationDays      int      `json:"duration_days"`
	Features          []string `json:"features"`
	TotalSubscribers  int64    `json:"total_subscribers"`
	ActiveSubscribers int64    `json:"active_subscribers"`
	TotalRevenue      int64    `json:"total_revenue"`
	MonthlyRevenue    int64    `json:"monthly_revenue"`
	TotalTokensUsed   int64    `json:"total_tokens_used"`
}

type SystemAnalytics struct {
	TotalUsers          int64           `json:"total_users"`
	TotalSubscriptions  int64           `json:"total_subscriptions"`
	ActiveSubscriptions int64           `json:"active_subscriptions"`
	TotalRevenue        int64           `json:"total_revenue"`
	MonthlyRevenue      int64           `json:"monthly_revenue"`
	TotalChatMessages   int64           `json:"total_chat_messages"`
	TotalTokensUsed     int64           `json:"total_tokens_used"`
	PlanAnalytics       []PlanAnalytics `json:"plan_analytics"`
}
