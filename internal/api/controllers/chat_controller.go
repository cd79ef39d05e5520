package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"chatgate/internal/models/request_models"
	"chatgate/internal/models/response_models"
	"chatgate/internal/services"
	"chatgate/pkg/utils"
)

type ChatController struct {
	chatService  services.ChatServiceInterface
	quotaService services.QuotaServiceInterface
}

func NewChatController(chatService services.ChatServiceInterface, quotaService services.QuotaServiceInterface) *ChatController {
	return &ChatController{
		chatService:  chatService,
		quotaService: quotaService,
	}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString("user_id")
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// SendMessage godoc
// @Summary Send a message to the AI chatbot
// @Description Metered send: checks the entitlement and token budget, calls the completion provider, then records history and debits the quota
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body request_models.ChatRequest true "Chat Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /chat/send [post]
func (ct *ChatController) SendMessage(c *gin.Context) {
	var request request_models.ChatRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	accountID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	resp, err := ct.chatService.SendMessage(c.Request.Context(), accountID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Message sent successfully")
}

func (ct *ChatController) GetChatHistory(c *gin.Context) {
	accountID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	entries, err := ct.chatService.GetChatHistory(c.Request.Context(), accountID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entries, fmt.Sprintf("Retrieved %d chat records", len(entries)))
}

// CheckPermission reports whether the account may chat and how many tokens
// remain. HasPermission runs first on purpose: it lazily creates the default
// Free entitlement, so the remaining-token read that follows sees it.
func (ct *ChatController) CheckPermission(c *gin.Context) {
	accountID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	hasPermission, err := ct.quotaService.HasPermission(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	remaining, err := ct.quotaService.RemainingTokens(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	message := "You need an active subscription to use the chatbot"
	if hasPermission {
		message = fmt.Sprintf("You have %d tokens remaining", remaining)
	}

	utils.RespondSuccess(c, response_models.ChatPermissionResponse{
		HasPermission:   hasPermission,
		RemainingTokens: remaining,
		Message:         message,
	}, "Permission checked")
}

func (ct *ChatController) GetRemainingTokens(c *gin.Context) {
	accountID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	remaining, err := ct.quotaService.RemainingTokens(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"remaining_tokens": remaining}, "")
}
