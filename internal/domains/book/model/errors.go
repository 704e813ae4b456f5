package model

import (
	"errors"
	"net/http"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrIDMismatch        = errors.New("path id does not match body id")
	ErrISBNAlreadyExists = errors.New("ISBN already exists")
	ErrAuthorNotFound    = errors.New("author not found")
	ErrNoRowsAffected    = errors.New("no rows affected")

	ErrImageStorageUnavailable = errors.New("image upload is not available")
	ErrInvalidImage            = errors.New("image is invalid")
)

// Field names reported in validation details.
const (
	FieldAuthorID  = "authorId"
	FieldImageData = "imageData"
)

var bookErrorMap = map[error]struct {
	Status  int
	Field   string
	Message string
}{
	ErrBookNotFound:            {Status: http.StatusNotFound},
	ErrIDMismatch:              {Status: http.StatusBadRequest, Message: "The id in the path does not match the id in the body"},
	ErrISBNAlreadyExists:       {Status: http.StatusConflict, Message: "This ISBN is already used by another book"},
	ErrAuthorNotFound:          {Status: http.StatusBadRequest, Field: FieldAuthorID, Message: "The specified author does not exist"},
	ErrImageStorageUnavailable: {Status: http.StatusBadRequest, Field: FieldImageData, Message: "Image upload is not configured on this server"},
	ErrInvalidImage:            {Status: http.StatusBadRequest, Field: FieldImageData, Message: "Image must be a JPEG or PNG no larger than 5MB"},
}

// ErrorInfo describes how err should be reported. ok is false for unexpected errors.
func ErrorInfo(err error) (status int, field, message string, ok bool) {
	for target, info := range bookErrorMap {
		if errors.Is(err, target) {
			return info.Status, info.Field, info.Message, true
		}
	}
	return http.StatusInternalServerError, "", "", false
}
