package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/types"
)

// Identity headers set by the upstream auth gateway. This service trusts
// them; authentication itself happens before requests reach it.
const (
	HeaderRequestID      = "X-Request-ID"
	HeaderOrganizationID = "X-Organization-ID"
	HeaderUserID         = "X-User-ID"
	HeaderAccessScope    = "X-Access-Scope"
)

// RequestContextMiddleware moves caller identity from gateway headers into
// the request context, along with the client IP and user agent the audit
// trail records. Requests without an organization or user are rejected.
func RequestContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID := c.GetHeader(HeaderOrganizationID)
		userID := c.GetHeader(HeaderUserID)
		if orgID == "" || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ierr.NewErrorResponse(
				ierr.NewError("missing caller identity").
					WithHint("X-Organization-ID and X-User-ID headers are required").
					Mark(ierr.ErrPermissionDenied),
			))
			return
		}

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST)
		}

		scope := types.AccessScope(c.GetHeader(HeaderAccessScope))
		if scope == "" {
			scope = types.AccessScopeOwn
		}
		if err := scope.Validate(); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, ierr.NewErrorResponse(err))
			return
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
		ctx = context.WithValue(ctx, types.CtxOrganizationID, orgID)
		ctx = context.WithValue(ctx, types.CtxUserID, userID)
		ctx = context.WithValue(ctx, types.CtxAccessScope, scope)
		ctx = context.WithValue(ctx, types.CtxClientIP, c.ClientIP())
		ctx = context.WithValue(ctx, types.CtxUserAgent, c.Request.UserAgent())

		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}
