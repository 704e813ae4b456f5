package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore/internal/domains/user"
	"bookstore/internal/shared/middleware"
	"bookstore/internal/shared/response"
	"bookstore/internal/shared/utils"
)

type AuthHandler struct {
	service user.Service
}

func NewAuthHandler(service user.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register - POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.service.Register(c.Request.Context(), &req); err != nil {
		h.handleError(c, "register", err)
		return
	}

	response.Accepted(c)
}

// Login - POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, "login", err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

func (h *AuthHandler) handleError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.ValidationFailed(c, map[string]string{"email": "email is already taken"})

	case errors.Is(err, user.ErrPasswordTooLong):
		response.ValidationFailed(c, map[string]string{"password": user.ErrPasswordTooLong.Error()})

	// Same body for unknown email and wrong password.
	case errors.Is(err, user.ErrInvalidCredentials):
		response.Unauthorized(c, user.ErrInvalidCredentials.Error())

	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("operation", "auth."+op).
			Msg("request failed")
		response.InternalServerError(c)
	}
}
