package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bookstore/internal/domains/author"
	"bookstore/internal/infrastructure/database"
)

const pgForeignKeyViolation = "23503"

// postgresRepository implements author.Repository
type postgresRepository struct {
	db database.DBTX
}

// NewPostgresRepository creates a new author repository instance
func NewPostgresRepository(db database.DBTX) author.Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) List(ctx context.Context) ([]author.Author, error) {
	query := `
        SELECT id, first_name, last_name, bio
        FROM authors
        ORDER BY id
    `

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]author.Author, 0)
	for rows.Next() {
		var a author.Author
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Bio); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int) (*author.Author, error) {
	query := `
        SELECT id, first_name, last_name, bio
        FROM authors
        WHERE id = $1
    `

	var a author.Author
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.FirstName, &a.LastName, &a.Bio)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author %d: %w", id, err)
	}

	return &a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
        INSERT INTO authors (first_name, last_name, bio)
        VALUES ($1, $2, $3)
        RETURNING id, first_name, last_name, bio
    `

	var created author.Author
	err := r.db.QueryRow(ctx, query, a.FirstName, a.LastName, a.Bio).
		Scan(&created.ID, &created.FirstName, &created.LastName, &created.Bio)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) error {
	query := `
        UPDATE authors
        SET first_name = $2, last_name = $3, bio = $4
        WHERE id = $1
    `

	tag, err := r.db.Exec(ctx, query, a.ID, a.FirstName, a.LastName, a.Bio)
	if err != nil {
		return fmt.Errorf("failed to update author %d: %w", a.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrNoRowsAffected
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return author.ErrAuthorHasBooks
		}
		return fmt.Errorf("failed to delete author %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	return nil
}

func (r *postgresRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author %d: %w", id, err)
	}
	return exists, nil
}
