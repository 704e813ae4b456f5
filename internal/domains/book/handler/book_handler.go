package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore/internal/domains/book/model"
	"bookstore/internal/domains/book/service"
	"bookstore/internal/shared/middleware"
	"bookstore/internal/shared/response"
	"bookstore/internal/shared/utils"
)

// Handler - HTTP Handler (single file)
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListBooks - GET /api/books
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.service.ListBooks(c.Request.Context())
	if err != nil {
		h.handleError(c, "list", 0, err)
		return
	}

	response.JSON(c, http.StatusOK, model.ToResponses(books))
}

// GetBookDetail - GET /api/books/:id
func (h *Handler) GetBookDetail(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}

	book, err := h.service.GetBookDetail(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, "get", id, err)
		return
	}

	response.JSON(c, http.StatusOK, book.ToDetailsResponse())
}

// CreateBook - POST /api/books
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	created, err := h.service.CreateBook(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, "create", 0, err)
		return
	}

	response.Created(c, "/api/books/"+strconv.Itoa(created.ID), created.ToDetailsResponse())
}

// UpdateBook - PUT /api/books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateBookRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.service.UpdateBook(c.Request.Context(), id, &req); err != nil {
		h.handleError(c, "update", id, err)
		return
	}

	response.NoContent(c)
}

// DeleteBook - DELETE /api/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), id); err != nil {
		h.handleError(c, "delete", id, err)
		return
	}

	response.NoContent(c)
}

func (h *Handler) handleError(c *gin.Context, op string, id int, err error) {
	status, field, message, known := model.ErrorInfo(err)
	if !known {
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("operation", "book."+op).
			Int("id", id).
			Msg("request failed")
		response.InternalServerError(c)
		return
	}

	switch {
	case status == http.StatusNotFound:
		response.NotFound(c)
	case field != "":
		response.ValidationFailed(c, map[string]string{field: message})
	case status == http.StatusConflict:
		response.Conflict(c, message)
	default:
		response.BadRequest(c, message)
	}
}
