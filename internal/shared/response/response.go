package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// InternalErrorMessage is the only text a caller ever sees for an unexpected failure.
const InternalErrorMessage = "An error occurred while completing your request. Please try again later."

// Error codes used in the error envelope.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeBadRequest       = "BAD_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeConflict         = "CONFLICT"
	CodeInternal         = "INTERNAL_SERVER_ERROR"
)

// Response is the error envelope. Successful responses carry the DTO itself.
type Response struct {
	Success bool   `json:"success"`
	Error   *Error `json:"error,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// JSON writes data as the response body.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Created writes 201 with a Location header pointing at the new resource.
func Created(c *gin.Context, location string, data interface{}) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, data)
}

// NoContent writes 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Accepted writes 202 with no body.
func Accepted(c *gin.Context) {
	c.Status(http.StatusAccepted)
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// ValidationFailed reports per-field messages keyed by JSON field name.
func ValidationFailed(c *gin.Context, fields map[string]string) {
	ErrorWithDetails(c, http.StatusBadRequest, CodeValidationFailed, "One or more validation errors occurred", fields)
}

func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, CodeBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, CodeForbidden, message)
}

// NotFound writes a bare 404.
func NotFound(c *gin.Context) {
	c.Status(http.StatusNotFound)
}

func Conflict(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, CodeConflict, message)
}

func InternalServerError(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, CodeInternal, InternalErrorMessage)
}
