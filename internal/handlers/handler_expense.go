package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests related to expenses.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

// newExpenseHandler creates a new expenseHandler.
func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{
		expenseService: es,
	}
}

// registerExpenseRoutes registers routes related to expenses.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.recordExpense)
		expenses.GET("", h.listExpenses)
	}
}

// recordExpense godoc
// @Summary Record a new expense
// @Description Stores an expense dated today, awards points, advances the streak and re-evaluates badges
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.RecordExpenseResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount, description or category"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to save expense"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) recordExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to record expense", slog.String("category", req.Category))

	result, err := h.expenseService.RecordExpense(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to save expense")
		return
	}

	logger.Info("Expense recorded successfully",
		slog.String("expense_id", result.Expense.ID),
		slog.Int("newly_unlocked", len(result.NewlyUnlocked)),
		slog.Int("warnings", len(result.Warnings)))
	c.JSON(http.StatusCreated, dto.ToRecordExpenseResponse(result))
}

// listExpenses godoc
// @Summary List expenses
// @Description Lists the caller's expenses with optional category filter, description search and sort order
// @Tags expenses
// @Produce  json
// @Param   category query string false "Category filter, 'All' for every category"
// @Param   search query string false "Case-insensitive description search"
// @Param   sort query string false "Sort order" Enums(newest, oldest, highest, lowest) default(newest)
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list expenses"
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListExpenses", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.expenseService.ListExpenses(c.Request.Context(), userID, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list expenses")
		return
	}

	logger.Debug("Expenses listed", slog.Int("count", len(page.Expenses)))
	c.JSON(http.StatusOK, dto.ToListExpensesResponse(page))
}
