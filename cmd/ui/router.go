package main

import (
	"github.com/gin-gonic/gin"

	"bookstore/internal/shared/middleware"
	"bookstore/internal/ui/handler"
	"bookstore/pkg/container"
)

func SetupRouter(c *container.UIContainer) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(handler.Templates())

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		handler.Session(c.Config.UI.SessionCookie, c.Config.App.Environment == "production"),
	)

	pages := handler.NewPageHandler(c.Auth, c.AuthState, c.Tokens, c.API)
	pages.RegisterRoutes(router)

	return router
}
