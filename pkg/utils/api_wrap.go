package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	v, _ := c.Get("trace_id")
	s, _ := v.(string)
	return s
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service errors onto HTTP statuses. Policy denials
// keep their sentinel messages; faults collapse to opaque 5xx responses.
func HandleServiceError(c *gin.Context, err error) {
	var upstream *UpstreamError

	switch {
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrSubscriptionNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrPlanNotFound),
		errors.Is(err, ErrInvalidAmount):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, ErrUsernameTaken):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrNoActiveSubscription):
		RespondError(c, http.StatusForbidden,
			"You need an active subscription to use the chatbot. Please upgrade your plan.")
	case errors.Is(err, ErrQuotaExhausted):
		RespondError(c, http.StatusForbidden,
			"You have exceeded your token limit. Please upgrade your plan or wait for next month.")
	case errors.Is(err, ErrBudgetExceeded):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.As(err, &upstream):
		log.Printf("Upstream provider error: %v", err)
		RespondError(c, http.StatusBadGateway, "AI provider error, please try again later")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
