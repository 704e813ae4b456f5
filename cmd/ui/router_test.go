package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore/internal/config"
	"bookstore/internal/ui/apiclient"
	"bookstore/internal/ui/tokenstore"
	"bookstore/pkg/container"
)

func TestSetupRouter_RendersHome(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App: config.AppConfig{Environment: "test"},
		JWT: config.JWTConfig{Duration: time.Hour},
		UI:  config.UIConfig{SessionCookie: "sid", APIBaseURL: "http://127.0.0.1:1"},
	}
	c := container.NewUIContainer(cfg, tokenstore.NewMemoryStore(time.Hour), apiclient.New(cfg.UI.APIBaseURL))
	defer c.Cleanup()

	w := httptest.NewRecorder()
	SetupRouter(c).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Book Store")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var sid *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "sid" {
			sid = ck
		}
	}
	require.NotNil(t, sid)
	assert.True(t, sid.HttpOnly)
	assert.False(t, sid.Secure)
}
