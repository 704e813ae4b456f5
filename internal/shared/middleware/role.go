package middleware

import (
	"github.com/gin-gonic/gin"

	"bookstore/internal/shared/auth"
	"bookstore/internal/shared/response"
)

// RequireRole lets the request through only when the principal holds one of roles.
// It must run after Authenticate.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := auth.FromContext(c.Request.Context())
		if !ok {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		if !principal.HasRole(roles...) {
			response.Forbidden(c, "insufficient role")
			c.Abort()
			return
		}

		c.Next()
	}
}
