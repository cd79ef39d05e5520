package response_models

type PlanInfo struct {
	Name         string   `json:"name"`
	Price        int64    `json:"price"`
	TokenLimit   int64    `json:"token_limit"`
	DurationDays int      `json:"duration_days"`
	Features     []string `json:"features"`
}
