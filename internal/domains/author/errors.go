package author

import (
	"errors"
	"net/http"
)

var (
	ErrAuthorNotFound = errors.New("author not found")
	ErrIDMismatch     = errors.New("path id does not match body id")
	ErrAuthorHasBooks = errors.New("cannot delete author with linked books")

	// ErrNoRowsAffected is returned by Update when the row disappeared between load and save.
	ErrNoRowsAffected = errors.New("no rows affected")
)

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrIDMismatch):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthorHasBooks):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
