package repository

import (
	"context"

	"bookstore/internal/domains/book/model"
)

// RepositoryInterface - data access for books
type RepositoryInterface interface {
	// ListWithAuthors projects the books/authors join straight into list rows.
	ListWithAuthors(ctx context.Context) ([]model.BookWithAuthor, error)

	// GetWithAuthor returns model.ErrBookNotFound when the row is absent.
	GetWithAuthor(ctx context.Context, id int) (*model.BookWithAuthor, error)

	GetByID(ctx context.Context, id int) (*model.Book, error)

	// Create inserts the book and returns it joined with its author.
	// Errors: model.ErrISBNAlreadyExists, model.ErrAuthorNotFound
	Create(ctx context.Context, book *model.Book) (*model.BookWithAuthor, error)

	// Update overwrites every column of the row with book.ID.
	// Errors: model.ErrNoRowsAffected, model.ErrISBNAlreadyExists, model.ErrAuthorNotFound
	Update(ctx context.Context, book *model.Book) error

	// Delete errors: model.ErrBookNotFound
	Delete(ctx context.Context, id int) error

	Exists(ctx context.Context, id int) (bool, error)
}
