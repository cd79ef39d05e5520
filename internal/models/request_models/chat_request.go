package request_models

type ChatRequest struct {
	Message string `json:"message" binding:"required,min=1,max=4000"`
	Model   string `json:"model"`
}
