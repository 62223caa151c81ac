package handlers

import (
	"fmt"

	"github.com/SscSPs/expense_tracker_app/cmd/docs"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
	"github.com/SscSPs/expense_tracker_app/internal/platform/config"
	"github.com/SscSPs/expense_tracker_app/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	authHandler := NewAuthHandler(services.Auth, posthogClient)

	// Public OTP routes, rate limited per client IP
	ipLimiter, err := middleware.NewIPLimiter(cfg.AuthRateLimit)
	if err != nil {
		return fmt.Errorf("failed to build auth rate limiter: %w", err)
	}
	registerPublicAuthRoutes(r, authHandler, middleware.RateLimit(ipLimiter))

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, authHandler, posthogClient)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	authHandler *AuthHandler,
	posthogClient *utils.PosthogClientWrapper,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret, service.Auth),
		middleware.PosthogMiddleware(posthogClient),
	)

	registerSessionRoutes(v1, authHandler)
	registerExpenseRoutes(v1, service.Expense)
	registerProgressRoutes(v1, service.Progress)
	registerAchievementRoutes(v1, service.Achievement)
	registerBudgetRoutes(v1, service.Budget)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
