package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondWithError maps a service error to its HTTP status and body.
// fallback is the message shown for unexpected failures.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var validationErr *apperrors.ValidationError
	var authErr *apperrors.AuthError

	switch {
	case errors.As(err, &validationErr):
		logger.Warn("Validation error", slog.String("field", validationErr.Field), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validationErr.Message, Title: validationErr.Title})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &authErr):
		logger.Warn("Authentication failed", slog.String("op", authErr.Op), slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: authErr.Message})
	case errors.Is(err, apperrors.ErrUnauthorized):
		logger.Warn("Unauthorized", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not found"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback + ". Please try again."})
	}
}

// requireUserID reads the caller from the context set by the auth middleware.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
