package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type achievementHandler struct {
	achievementService portssvc.AchievementSvcFacade
}

func registerAchievementRoutes(rg *gin.RouterGroup, achievementService portssvc.AchievementSvcFacade) {
	h := &achievementHandler{achievementService: achievementService}

	rg.GET("/achievements", h.listBadges)
}

// listBadges godoc
// @Summary List achievements
// @Description Returns every badge in catalog order with its unlocked flag and progress
// @Tags achievements
// @Produce  json
// @Success 200 {object} dto.ListBadgesResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to load achievements"
// @Security BearerAuth
// @Router /achievements [get]
func (h *achievementHandler) listBadges(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	badges, err := h.achievementService.ListBadges(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to load achievements")
		return
	}

	resp := dto.ToListBadgesResponse(badges)
	logger.Debug("Achievements listed", slog.Int("unlocked", resp.UnlockedCount), slog.Int("total", resp.TotalCount))
	c.JSON(http.StatusOK, resp)
}
