package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore/internal/shared/auth"
	"bookstore/internal/shared/response"
	"bookstore/pkg/jwt"
)

// TokenValidator validates a raw bearer token.
type TokenValidator interface {
	Validate(token string) (*jwt.Claims, error)
}

// Authenticate requires a valid bearer token and stores the resulting
// principal in the request context.
func Authenticate(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := tokens.Validate(strings.TrimSpace(token))
		if err != nil {
			log.Debug().
				Str("request_id", c.GetString(RequestIDKey)).
				Err(err).
				Msg("[AUTH] token rejected")
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		principal := &auth.Principal{
			UserID:    claims.UserID,
			Username:  claims.Username,
			Email:     claims.Email,
			Roles:     claims.Roles,
			TokenID:   claims.TokenID,
			IssuedAt:  claims.IssuedAt,
			ExpiresAt: claims.ExpiresAt,
			Claims:    claims.All,
		}
		c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), principal))

		c.Next()
	}
}
