package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// budgetHandler handles HTTP requests related to monthly budgets.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := &budgetHandler{budgetService: budgetService}

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
	}
}

// createBudget godoc
// @Summary Create a monthly budget
// @Description Creates a spending limit for one category and re-evaluates badges
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budget body dto.CreateBudgetRequest true "Budget details"
// @Success 201 {object} dto.CreateBudgetResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid category or limit"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "A budget for this category already exists"
// @Failure 500 {object} dto.ErrorResponse "Failed to save budget"
// @Security BearerAuth
// @Router /budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to create budget", slog.String("category", req.Category))

	status, eval, err := h.budgetService.CreateBudget(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to save budget")
		return
	}

	resp := dto.CreateBudgetResponse{
		Budget:        dto.ToBudgetResponse(status),
		NewlyUnlocked: []dto.BadgeResponse{},
	}
	if eval != nil {
		resp.NewlyUnlocked = dto.ToBadgeResponses(eval.NewlyUnlocked)
	}

	logger.Info("Budget created successfully", slog.String("budget_id", status.ID))
	c.JSON(http.StatusCreated, resp)
}

// listBudgets godoc
// @Summary List budgets
// @Description Lists the caller's budgets with this month's spending
// @Tags budgets
// @Produce  json
// @Success 200 {array} dto.BudgetResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list budgets"
// @Security BearerAuth
// @Router /budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	statuses, err := h.budgetService.ListBudgets(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list budgets")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponses(statuses))
}
