package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore/internal/domains/author"
	"bookstore/internal/shared/middleware"
	"bookstore/internal/shared/response"
	"bookstore/internal/shared/utils"
)

type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(svc author.Service) *AuthorHandler {
	return &AuthorHandler{service: svc}
}

// List - GET /api/authors
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, "list", 0, err)
		return
	}

	response.JSON(c, http.StatusOK, author.ToResponses(authors))
}

// GetByID - GET /api/authors/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, "get", id, err)
		return
	}

	response.JSON(c, http.StatusOK, a.ToResponse())
}

// Create - POST /api/authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateAuthorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, "create", 0, err)
		return
	}

	response.Created(c, "/api/authors/"+strconv.Itoa(created.ID), created.ToResponse())
}

// Update - PUT /api/authors/:id
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}

	var req author.UpdateAuthorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.service.Update(c.Request.Context(), id, &req); err != nil {
		h.handleError(c, "update", id, err)
		return
	}

	response.NoContent(c)
}

// Delete - DELETE /api/authors/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, "delete", id, err)
		return
	}

	response.NoContent(c)
}

func (h *AuthorHandler) handleError(c *gin.Context, op string, id int, err error) {
	switch author.ToHTTPStatus(err) {
	case http.StatusNotFound:
		response.NotFound(c)
	case http.StatusBadRequest:
		response.BadRequest(c, err.Error())
	case http.StatusConflict:
		response.Conflict(c, err.Error())
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("operation", "author."+op).
			Int("id", id).
			Msg("request failed")
		response.InternalServerError(c)
	}
}
