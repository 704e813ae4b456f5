package model

import (
	"github.com/shopspring/decimal"
)

// Prices go over the wire as JSON numbers. Quoted input is still accepted.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Book - Domain Entity (from database)
type Book struct {
	ID       int             `json:"id" db:"id"`
	Title    string          `json:"title" db:"title"`
	Year     *int            `json:"year" db:"year"`
	ISBN     string          `json:"isbn" db:"isbn"`
	Price    decimal.Decimal `json:"price" db:"price"`
	Summary  *string         `json:"summary" db:"summary"`
	Image    *string         `json:"image" db:"image"`
	AuthorID int             `json:"author_id" db:"author_id"`
}

// BookWithAuthor is a Book joined with its author's display name.
// It is read straight from the books/authors join, never materialised from entities.
type BookWithAuthor struct {
	Book
	AuthorName string `json:"author_name" db:"author_name"`
}

// AuthorFullName is the display name projected into book responses.
// The SQL projection builds the same string with first_name || ' ' || last_name.
func AuthorFullName(firstName, lastName string) string {
	return firstName + " " + lastName
}
