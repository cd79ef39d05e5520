package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatgate/internal/models/request_models"
	"chatgate/internal/services"
	"chatgate/pkg/utils"
)

type AdminController struct {
	paymentService   services.PaymentServiceInterface
	analyticsService services.AnalyticsServiceInterface
	accountService   services.AccountServiceInterface
}

func NewAdminController(
	paymentService services.PaymentServiceInterface,
	analyticsService services.AnalyticsServiceInterface,
	accountService services.AccountServiceInterface,
) *AdminController {
	return &AdminController{
		paymentService:   paymentService,
		analyticsService: analyticsService,
		accountService:   accountService,
	}
}

// UpdateSubscription godoc
// @Summary Override a user's subscription plan and paid flag
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.UpdateSubscriptionRequest true "Update Subscription Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/subscription [put]
func (a *AdminController) UpdateSubscription(c *gin.Context) {
	var request request_models.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	status, err := a.paymentService.UpdateSubscription(c.Request.Context(), request.UserID, request.PlanType, request.IsPaid)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, status, "Subscription updated successfully")
}

func (a *AdminController) GetSystemAnalytics(c *gin.Context) {
	analytics, err := a.analyticsService.GetSystemAnalytics(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, analytics, "")
}

func (a *AdminController) ListUsers(c *gin.Context) {
	users, err := a.accountService.ListUsersWithSubscriptions(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, users, "")
}
