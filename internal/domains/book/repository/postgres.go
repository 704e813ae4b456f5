package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bookstore/internal/domains/book/model"
	"bookstore/internal/infrastructure/database"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	isbnConstraint   = "books_isbn_key"
	authorConstraint = "books_author_id_fkey"
)

const selectWithAuthor = `
        SELECT b.id, b.title, b.year, b.isbn, b.price, b.summary, b.image, b.author_id,
               a.first_name || ' ' || a.last_name AS author_name
        FROM books b
        JOIN authors a ON a.id = b.author_id
`

type postgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) RepositoryInterface {
	return &postgresRepository{db: db}
}

func scanWithAuthor(row pgx.Row) (*model.BookWithAuthor, error) {
	var b model.BookWithAuthor
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Year,
		&b.ISBN,
		&b.Price,
		&b.Summary,
		&b.Image,
		&b.AuthorID,
		&b.AuthorName,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepository) ListWithAuthors(ctx context.Context) ([]model.BookWithAuthor, error) {
	rows, err := r.db.Query(ctx, selectWithAuthor+` ORDER BY b.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.BookWithAuthor, 0)
	for rows.Next() {
		b, err := scanWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) GetWithAuthor(ctx context.Context, id int) (*model.BookWithAuthor, error) {
	b, err := scanWithAuthor(r.db.QueryRow(ctx, selectWithAuthor+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book %d: %w", id, err)
	}
	return b, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int) (*model.Book, error) {
	query := `
        SELECT id, title, year, isbn, price, summary, image, author_id
        FROM books
        WHERE id = $1
    `

	var b model.Book
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.Year, &b.ISBN, &b.Price, &b.Summary, &b.Image, &b.AuthorID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book %d: %w", id, err)
	}
	return &b, nil
}

func (r *postgresRepository) Create(ctx context.Context, book *model.Book) (*model.BookWithAuthor, error) {
	query := `
        WITH inserted AS (
            INSERT INTO books (title, year, isbn, price, summary, image, author_id)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
            RETURNING id, title, year, isbn, price, summary, image, author_id
        )
        SELECT i.id, i.title, i.year, i.isbn, i.price, i.summary, i.image, i.author_id,
               a.first_name || ' ' || a.last_name AS author_name
        FROM inserted i
        JOIN authors a ON a.id = i.author_id
    `

	created, err := scanWithAuthor(r.db.QueryRow(ctx, query,
		book.Title,
		book.Year,
		book.ISBN,
		book.Price,
		book.Summary,
		book.Image,
		book.AuthorID,
	))
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, book *model.Book) error {
	query := `
        UPDATE books
        SET title = $2, year = $3, isbn = $4, price = $5, summary = $6, image = $7, author_id = $8
        WHERE id = $1
    `

	tag, err := r.db.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Year,
		book.ISBN,
		book.Price,
		book.Summary,
		book.Image,
		book.AuthorID,
	)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to update book %d: %w", book.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNoRowsAffected
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check book %d: %w", id, err)
	}
	return exists, nil
}

// mapConstraintError turns the ISBN unique index and the author foreign key into domain errors.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch {
	case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == isbnConstraint:
		return model.ErrISBNAlreadyExists
	case pgErr.Code == pgForeignKeyViolation && pgErr.ConstraintName == authorConstraint:
		return model.ErrAuthorNotFound
	}
	return nil
}
