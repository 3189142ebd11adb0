package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/subscription_tracker/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRouteEventName(t *testing.T) {
	tests := []struct {
		method, route, want string
	}{
		{http.MethodGet, "/api/v1/subscriptions", "get_subscriptions"},
		{http.MethodPost, "/api/v1/subscriptions", "post_subscriptions"},
		{http.MethodPut, "/api/v1/subscriptions/:subscriptionID", "put_subscriptions"},
		{http.MethodPost, "/api/v1/subscriptions/:subscriptionID/advance", "post_subscriptions_advance"},
		{http.MethodGet, "/api/v1/rates/:base", "get_rates"},
		{http.MethodGet, "/api/v1/currencies/convert", "get_currencies_convert"},
		{http.MethodGet, "/swagger/*any", "get_swagger"},
		{http.MethodGet, "/", ""},
		{http.MethodGet, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.route, func(t *testing.T) {
			assert.Equal(t, tt.want, routeEventName(tt.method, tt.route))
		})
	}
}

func TestPosthogMiddleware_UninitializedClientPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, client := range []*utils.PosthogClientWrapper{nil, {}} {
		r := gin.New()
		r.Use(PosthogMiddleware(client))
		r.GET("/api/v1/subscriptions", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}
