package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatgate/internal/models/request_models"
	"chatgate/internal/services"
	"chatgate/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentServiceInterface
	planService    services.PlanServiceInterface
}

func NewPaymentController(paymentService services.PaymentServiceInterface, planService services.PlanServiceInterface) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		planService:    planService,
	}
}

// ProcessPayment godoc
// @Summary Record a settled payment and grant the plan entitlement
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body request_models.PaymentRequest true "Payment Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payment/process [post]
func (p *PaymentController) ProcessPayment(c *gin.Context) {
	var request request_models.PaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	accountID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	resp, err := p.paymentService.ProcessPayment(c.Request.Context(), accountID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Payment processed successfully")
}

func (p *PaymentController) GetSubscriptionStatus(c *gin.Context) {
	accountID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	status, err := p.paymentService.GetSubscriptionStatus(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, status, "")
}

// ListPlans is public: clients show the plan catalog before sign-in.
func (p *PaymentController) ListPlans(c *gin.Context) {
	utils.RespondSuccess(c, p.planService.ListPlans(), "")
}

func (p *PaymentController) GetPlan(c *gin.Context) {
	plan, err := p.planService.GetPlan(c.Param("name"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "")
}
