package middleware

import (
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/coverbridge/coverbridge/internal/config"
	"github.com/coverbridge/coverbridge/internal/types"
)

// SentryMiddleware returns a middleware that captures errors and performance data
func SentryMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Sentry.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// SentryContextMiddleware sets organization_id and user_id on the Sentry
// scope when present in the request context. Add this after
// RequestContextMiddleware so auto-captured spans carry the tags.
func SentryContextMiddleware(c *gin.Context) {
	hub := sentrygin.GetHubFromContext(c)
	if hub == nil {
		c.Next()
		return
	}
	ctx := c.Request.Context()
	if orgID := types.GetOrganizationID(ctx); orgID != "" {
		hub.Scope().SetTag("organization_id", orgID)
	}
	if userID := types.GetUserID(ctx); userID != "" {
		hub.Scope().SetTag("user_id", userID)
	}
	c.Next()
}
