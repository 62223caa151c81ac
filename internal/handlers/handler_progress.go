package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type progressHandler struct {
	progressService portssvc.ProgressSvcFacade
}

func registerProgressRoutes(rg *gin.RouterGroup, progressService portssvc.ProgressSvcFacade) {
	h := &progressHandler{progressService: progressService}

	rg.GET("/progress", h.getProgress)
	rg.GET("/dashboard", h.getDashboard)
}

// getProgress godoc
// @Summary Get progress
// @Description Returns the caller's points, level, streak and level progress
// @Tags progress
// @Produce  json
// @Success 200 {object} dto.GameStateResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to load progress"
// @Security BearerAuth
// @Router /progress [get]
func (h *progressHandler) getProgress(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	state, err := h.progressService.GetGameState(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to load progress")
		return
	}

	c.JSON(http.StatusOK, dto.ToGameStateResponse(state))
}

// getDashboard godoc
// @Summary Get dashboard
// @Description Returns total spent, the three most recent expenses and the caller's progress
// @Tags progress
// @Produce  json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to load dashboard"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *progressHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	dashboard, err := h.progressService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(dashboard))
}
