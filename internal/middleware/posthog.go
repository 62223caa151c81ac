package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/expense_tracker_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// routeEvents names the analytics event captured for a successful request, keyed by "METHOD route".
// Routes missing here fall back to a name derived from the route path.
var routeEvents = map[string]string{
	"POST /api/v1/expenses":    "expense_recorded",
	"GET /api/v1/expenses":     "expenses_listed",
	"GET /api/v1/progress":     "progress_viewed",
	"GET /api/v1/dashboard":    "dashboard_viewed",
	"GET /api/v1/achievements": "achievements_viewed",
	"POST /api/v1/budgets":     "budget_created",
	"GET /api/v1/budgets":      "budgets_listed",
}

// untracked routes are handled elsewhere (sign-in/out) or carry no user.
var untracked = map[string]bool{
	"/health":              true,
	"/api/v1/auth/signout": true,
	"/api/v1/auth/me":      true,
}

// eventNameFor maps a matched route to its analytics event name; "" means do not track.
func eventNameFor(method, route string) string {
	if route == "" || untracked[route] {
		return ""
	}
	if name, ok := routeEvents[method+" "+route]; ok {
		return name
	}
	name := strings.TrimPrefix(route, "/api/v1/")
	name = strings.Trim(strings.ReplaceAll(name, "/", "_"), "_")
	return strings.ToLower(method) + "_" + name
}

// PosthogMiddleware captures one event per successful authenticated request.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if posthogClient == nil || !posthogClient.IsInitialized() {
			return
		}
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		eventName := eventNameFor(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}
		identity, ok := IdentityFromCtx(c.Request.Context())
		if !ok {
			return
		}

		posthogClient.Enqueue(identity.UserID, eventName, map[string]any{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
			"session_id":  identity.SessionID,
		})
	}
}

// PosthogEvent sends a custom event for the signed-in user of c.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if posthogClient == nil || !posthogClient.IsInitialized() {
		return
	}
	userID, exists := GetUserIDFromContext(c)
	if !exists {
		return
	}
	if properties == nil {
		properties = make(map[string]any)
	}
	properties["route"] = c.FullPath()
	posthogClient.Enqueue(userID, eventName, properties)
}
