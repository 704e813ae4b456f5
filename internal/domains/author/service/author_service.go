package service

import (
	"context"
	"errors"
	"fmt"

	"bookstore/internal/domains/author"
)

// authorService implements author.Service interface
type authorService struct {
	repo author.Repository
}

// NewAuthorService creates a new author service instance
func NewAuthorService(repo author.Repository) author.Service {
	return &authorService{repo: repo}
}

func (s *authorService) List(ctx context.Context) ([]author.Author, error) {
	return s.repo.List(ctx)
}

func (s *authorService) GetByID(ctx context.Context, id int) (*author.Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) Create(ctx context.Context, req *author.CreateAuthorRequest) (*author.Author, error) {
	return s.repo.Create(ctx, req.ToEntity())
}

func (s *authorService) Update(ctx context.Context, id int, req *author.UpdateAuthorRequest) error {
	if req.ID != id {
		return author.ErrIDMismatch
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	req.ApplyToEntity(existing)

	err = s.repo.Update(ctx, existing)
	if err == nil {
		return nil
	}
	if !errors.Is(err, author.ErrNoRowsAffected) {
		return err
	}

	// The row vanished between load and save.
	exists, existsErr := s.repo.Exists(ctx, id)
	if existsErr != nil {
		return fmt.Errorf("recheck author %d after failed update: %w", id, existsErr)
	}
	if !exists {
		return author.ErrAuthorNotFound
	}
	return fmt.Errorf("update author %d: %w", id, err)
}

func (s *authorService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
