package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookstore/internal/shared/auth"
	"bookstore/internal/shared/middleware"
	"bookstore/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.CORS(),
	)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(api, c)
		setupAuthorRoutes(api, c)
		setupBookRoutes(api, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(api *gin.RouterGroup, c *container.Container) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", c.AuthHandler.Register)
		authGroup.POST("/login", c.AuthHandler.Login)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
// Authors are intentionally open: unlike books they carry no authorization
// requirement. See DESIGN.md.
func setupAuthorRoutes(api *gin.RouterGroup, c *container.Container) {
	authors := api.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.POST("", c.AuthorHandler.Create)
		authors.PUT("/:id", c.AuthorHandler.Update)
		authors.DELETE("/:id", c.AuthorHandler.Delete)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(api *gin.RouterGroup, c *container.Container) {
	books := api.Group("/books")
	books.Use(middleware.Authenticate(c.JWTManager))
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/:id", c.BookHandler.GetBookDetail)

		admin := books.Group("")
		admin.Use(middleware.RequireRole(auth.RoleAdministrator))
		{
			admin.POST("", c.BookHandler.CreateBook)
			admin.PUT("/:id", c.BookHandler.UpdateBook)
			admin.DELETE("/:id", c.BookHandler.DeleteBook)
		}
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "ok"
		if c.DB == nil {
			dbStatus = "not configured"
		} else {
			pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
			defer cancel()
			if err := c.DB.Ping(pingCtx); err != nil {
				dbStatus = "error"
			}
		}

		storageStatus := "disabled"
		if c.Storage != nil {
			storageStatus = "enabled"
		}

		statusCode := http.StatusOK
		if dbStatus == "error" {
			statusCode = http.StatusServiceUnavailable
		}

		ctx.JSON(statusCode, gin.H{
			"status":  http.StatusText(statusCode),
			"version": c.Config.App.Version,
			"time":    time.Now().UTC().Format(time.RFC3339),
			"checks": gin.H{
				"database": dbStatus,
				"storage":  storageStatus,
			},
		})
	}
}
