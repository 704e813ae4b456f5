package author

import "context"

// Service defines business logic operations for Author domain
type Service interface {
	List(ctx context.Context) ([]Author, error)

	// GetByID errors: ErrAuthorNotFound
	GetByID(ctx context.Context, id int) (*Author, error)

	Create(ctx context.Context, req *CreateAuthorRequest) (*Author, error)

	// Update rejects a body id that differs from id before touching storage.
	// A row deleted concurrently with the save is reported as ErrAuthorNotFound.
	// Errors: ErrIDMismatch, ErrAuthorNotFound
	Update(ctx context.Context, id int, req *UpdateAuthorRequest) error

	// Delete errors: ErrAuthorNotFound, ErrAuthorHasBooks
	Delete(ctx context.Context, id int) error
}
