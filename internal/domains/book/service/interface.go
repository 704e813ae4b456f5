package service

import (
	"context"

	"bookstore/internal/domains/book/model"
)

// ServiceInterface - business logic for books
type ServiceInterface interface {
	ListBooks(ctx context.Context) ([]model.BookWithAuthor, error)
	GetBookDetail(ctx context.Context, id int) (*model.BookWithAuthor, error)
	CreateBook(ctx context.Context, req *model.CreateBookRequest) (*model.BookWithAuthor, error)
	UpdateBook(ctx context.Context, id int, req *model.UpdateBookRequest) error
	DeleteBook(ctx context.Context, id int) error
}

// ObjectStorage stores uploaded covers. Implemented by storage.MinIOStorage.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ImageProcessor is implemented by storage.ImageProcessor.
type ImageProcessor interface {
	ValidateImage(data []byte) error
	ProcessCover(data []byte) ([]byte, error)
}
