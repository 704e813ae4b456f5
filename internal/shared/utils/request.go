package utils

import (
	"encoding/json"
	"errors"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"

	"bookstore/internal/shared/response"
)

// BindAndValidate decodes the JSON body into req and runs its Validate method.
// On failure the 400 response has already been written and false is returned.
func BindAndValidate(c *gin.Context, req validation.Validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			response.ValidationFailed(c, map[string]string{typeErr.Field: "invalid value type"})
			return false
		}
		response.BadRequest(c, "Invalid request body")
		return false
	}

	if err := req.Validate(); err != nil {
		details := ValidationDetails(err)
		if details == nil {
			response.BadRequest(c, err.Error())
			return false
		}
		response.ValidationFailed(c, details)
		return false
	}
	return true
}

// ValidationDetails flattens ozzo validation errors into field -> message.
// Nested fields are joined with a dot. Returns nil for other error types.
func ValidationDetails(err error) map[string]string {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return nil
	}
	out := make(map[string]string, len(errs))
	flatten("", errs, out)
	return out
}

func flatten(prefix string, errs validation.Errors, out map[string]string) {
	for field, e := range errs {
		key := field
		if prefix != "" {
			key = prefix + "." + field
		}
		var nested validation.Errors
		if errors.As(e, &nested) {
			flatten(key, nested, out)
			continue
		}
		out[key] = e.Error()
	}
}

// ParseID reads a positive integer path parameter.
// On failure a 400 has already been written.
func ParseID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.ValidationFailed(c, map[string]string{name: "must be a positive integer"})
		return 0, false
	}
	return id, true
}
