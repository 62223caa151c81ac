package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
	"github.com/SscSPs/expense_tracker_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles the phone sign-in flow and session endpoints.
type AuthHandler struct {
	authService   portssvc.AuthSvcFacade
	posthogClient *utils.PosthogClientWrapper
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AuthSvcFacade, posthogClient *utils.PosthogClientWrapper) *AuthHandler {
	return &AuthHandler{
		authService:   as,
		posthogClient: posthogClient,
	}
}

// registerPublicAuthRoutes sets up the unauthenticated OTP routes behind the rate limiter.
func registerPublicAuthRoutes(r *gin.Engine, h *AuthHandler, limit gin.HandlerFunc) {
	otp := r.Group("/api/v1/auth/otp", limit)
	{
		otp.POST("/send", h.SendCode)
		otp.POST("/confirm", h.ConfirmCode)
	}
}

// registerSessionRoutes sets up the routes that need a live session.
func registerSessionRoutes(rg *gin.RouterGroup, h *AuthHandler) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signout", h.SignOut)
		auth.GET("/me", h.Me)
	}
}

// SendCode godoc
// @Summary Send a one-time code
// @Description Normalises the phone number to E.164 and sends a 6-digit code by SMS
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SendCodeRequest true "Phone number"
// @Success 200 {object} dto.SendCodeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/otp/send [post]
func (h *AuthHandler) SendCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SendCode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Please enter your phone number"})
		return
	}

	pending, err := h.authService.SendVerificationCode(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		respondWithError(c, logger, err, "Failed to send OTP")
		return
	}

	c.JSON(http.StatusOK, dto.ToSendCodeResponse(pending))
}

// ConfirmCode godoc
// @Summary Confirm a one-time code
// @Description Checks the code and returns a session token on success
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ConfirmCodeRequest true "Verification handle and code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/otp/confirm [post]
func (h *AuthHandler) ConfirmCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConfirmCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConfirmCode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Please enter the 6-digit code"})
		return
	}

	session, err := h.authService.ConfirmCode(c.Request.Context(), req.VerificationID, req.Code)
	if err != nil {
		respondWithError(c, logger, err, "OTP confirmation failed")
		return
	}

	if h.posthogClient.IsInitialized() {
		h.posthogClient.Enqueue(session.Identity.UserID, "user_signed_in", map[string]any{"method": "phone_otp"})
	}
	c.JSON(http.StatusOK, dto.ToLoginResponse(session))
}

// SignOut godoc
// @Summary Sign out
// @Description Ends the current session; its token stops working immediately
// @Tags auth
// @Produce json
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/signout [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity, ok := h.authService.CurrentUser(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), *identity); err != nil {
		respondWithError(c, logger, err, "Sign out failed")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "user_signed_out", nil)
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary Current user
// @Description Returns the signed-in user
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := h.authService.CurrentUser(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(identity))
}
