package author

import "context"

// Repository defines the interface for Author data access operations
type Repository interface {
	// List returns every author ordered by id.
	List(ctx context.Context) ([]Author, error)

	// GetByID returns ErrAuthorNotFound if the row does not exist.
	GetByID(ctx context.Context, id int) (*Author, error)

	// Create inserts a and returns it with the generated id.
	Create(ctx context.Context, a *Author) (*Author, error)

	// Update overwrites all columns of the row with a.ID.
	// Returns ErrNoRowsAffected when the row no longer exists.
	Update(ctx context.Context, a *Author) error

	// Delete removes the row.
	// Errors: ErrAuthorNotFound, ErrAuthorHasBooks
	Delete(ctx context.Context, id int) error

	Exists(ctx context.Context, id int) (bool, error)
}
