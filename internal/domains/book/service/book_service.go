package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookstore/internal/domains/book/model"
	"bookstore/internal/domains/book/repository"
)

const coverKeyPrefix = "covers/"

type bookService struct {
	repo      repository.RepositoryInterface
	storage   ObjectStorage
	processor ImageProcessor
}

// NewBookService wires the service. storage and processor may both be nil,
// in which case requests carrying imageData are rejected.
func NewBookService(repo repository.RepositoryInterface, storage ObjectStorage, processor ImageProcessor) ServiceInterface {
	return &bookService{
		repo:      repo,
		storage:   storage,
		processor: processor,
	}
}

func (s *bookService) ListBooks(ctx context.Context) ([]model.BookWithAuthor, error) {
	return s.repo.ListWithAuthors(ctx)
}

func (s *bookService) GetBookDetail(ctx context.Context, id int) (*model.BookWithAuthor, error) {
	return s.repo.GetWithAuthor(ctx, id)
}

func (s *bookService) CreateBook(ctx context.Context, req *model.CreateBookRequest) (*model.BookWithAuthor, error) {
	book := req.ToEntity()

	key, err := s.uploadCover(ctx, req.ImageData, req.OriginalImageName, book)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		s.discardCover(ctx, key)
		return nil, err
	}
	return created, nil
}

func (s *bookService) UpdateBook(ctx context.Context, id int, req *model.UpdateBookRequest) error {
	if req.ID != id {
		return model.ErrIDMismatch
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	req.ApplyToEntity(book)

	key, err := s.uploadCover(ctx, req.ImageData, req.OriginalImageName, book)
	if err != nil {
		return err
	}

	err = s.repo.Update(ctx, book)
	if err == nil {
		return nil
	}
	s.discardCover(ctx, key)

	if !errors.Is(err, model.ErrNoRowsAffected) {
		return err
	}

	// The row vanished between load and save.
	exists, existsErr := s.repo.Exists(ctx, id)
	if existsErr != nil {
		return fmt.Errorf("recheck book %d after failed update: %w", id, existsErr)
	}
	if !exists {
		return model.ErrBookNotFound
	}
	return fmt.Errorf("update book %d: %w", id, err)
}

func (s *bookService) DeleteBook(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// uploadCover validates, resizes and stores imageData, then points book.Image at it.
// It returns the object key so a failed save can remove the orphan.
func (s *bookService) uploadCover(ctx context.Context, imageData, originalName string, book *model.Book) (string, error) {
	if imageData == "" {
		return "", nil
	}
	if s.storage == nil || s.processor == nil {
		return "", model.ErrImageStorageUnavailable
	}

	raw, err := base64.StdEncoding.DecodeString(imageData)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInvalidImage, err)
	}
	if err := s.processor.ValidateImage(raw); err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInvalidImage, err)
	}
	cover, err := s.processor.ProcessCover(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInvalidImage, err)
	}

	key := coverKeyPrefix + uuid.NewString() + ".jpg"
	url, err := s.storage.Upload(ctx, key, cover, "image/jpeg", map[string]string{
		"original-name": originalName,
	})
	if err != nil {
		return "", fmt.Errorf("upload cover: %w", err)
	}

	book.Image = &url
	return key, nil
}

func (s *bookService) discardCover(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[BOOK] failed to remove orphaned cover")
	}
}
