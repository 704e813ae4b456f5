package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionKey = "ui_session"

// Session assigns every browser a random session id kept in an HttpOnly cookie.
// The cookie lives as long as the browser session; the token behind it expires
// with the token store entry.
func Session(cookieName string, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil {
			id = ""
		} else if _, err := uuid.Parse(id); err != nil {
			id = ""
		}

		if id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, id, 0, "/", "", secure, true)
		}

		c.Set(sessionKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
