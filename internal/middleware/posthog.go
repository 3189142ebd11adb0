package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/subscription_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// untrackedPaths are infrastructure endpoints polled by probes and scrapers.
var untrackedPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// routeEventName derives a stable analytics event from a route template.
// The API prefix and path parameters are dropped so every subscription id
// maps to the same event: "POST /api/v1/subscriptions/:subscriptionID/advance"
// becomes "post_subscriptions_advance".
func routeEventName(method, route string) string {
	segments := make([]string, 0, 4)
	for _, seg := range strings.Split(route, "/") {
		switch {
		case seg == "", seg == "api", seg == "v1":
		case strings.HasPrefix(seg, ":"), strings.HasPrefix(seg, "*"):
		default:
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return ""
	}
	return strings.ToLower(method) + "_" + strings.Join(segments, "_")
}

// PosthogMiddleware records one event per successful authenticated request.
// It is a no-op when the client was not configured.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || untrackedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		status := c.Writer.Status()
		if len(c.Errors) > 0 || status >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		event := routeEventName(c.Request.Method, c.FullPath())
		if event == "" {
			return
		}

		props := map[string]any{
			"route":       c.FullPath(),
			"status_code": status,
		}
		if id := c.Param("subscriptionID"); id != "" {
			props["subscription_id"] = id
		}
		if id := c.Param("categoryID"); id != "" {
			props["category_id"] = id
		}
		if cur := c.Query("currency"); cur != "" {
			props["currency"] = strings.ToUpper(cur)
		}

		posthogClient.Enqueue(userID, event, props)
	}
}
