package model

import (
	"encoding/base64"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

const (
	MaxTitleLength   = 50
	MaxISBNLength    = 50
	MaxSummaryLength = 250
	MaxImageLength   = 250
	MinYear          = 1000
)

// price is stored as numeric(18,2)
var maxPrice = decimal.New(1, 16)

// ============ REQUEST DTOs ============

// CreateBookRequest - POST /api/books
// ImageData is an optional base64 cover. When present it replaces Image.
type CreateBookRequest struct {
	Title             string          `json:"title"`
	Year              *int            `json:"year,omitempty"`
	ISBN              string          `json:"isbn"`
	Summary           *string         `json:"summary,omitempty"`
	Image             *string         `json:"image,omitempty"`
	Price             decimal.Decimal `json:"price"`
	AuthorID          int             `json:"authorId"`
	ImageData         string          `json:"imageData,omitempty"`
	OriginalImageName string          `json:"originalImageName,omitempty"`
}

func (r *CreateBookRequest) Validate() error {
	return validation.ValidateStruct(r, bookFieldRules(&bookFields{
		title: &r.Title, year: &r.Year, isbn: &r.ISBN, summary: &r.Summary, image: &r.Image,
		price: &r.Price, authorID: &r.AuthorID, imageData: &r.ImageData, originalImageName: &r.OriginalImageName,
	})...)
}

// UpdateBookRequest - PUT /api/books/:id
type UpdateBookRequest struct {
	ID                int             `json:"id"`
	Title             string          `json:"title"`
	Year              *int            `json:"year,omitempty"`
	ISBN              string          `json:"isbn"`
	Summary           *string         `json:"summary,omitempty"`
	Image             *string         `json:"image,omitempty"`
	Price             decimal.Decimal `json:"price"`
	AuthorID          int             `json:"authorId"`
	ImageData         string          `json:"imageData,omitempty"`
	OriginalImageName string          `json:"originalImageName,omitempty"`
}

func (r *UpdateBookRequest) Validate() error {
	rules := append([]*validation.FieldRules{
		validation.Field(&r.ID, validation.Required.Error("id is required")),
	}, bookFieldRules(&bookFields{
		title: &r.Title, year: &r.Year, isbn: &r.ISBN, summary: &r.Summary, image: &r.Image,
		price: &r.Price, authorID: &r.AuthorID, imageData: &r.ImageData, originalImageName: &r.OriginalImageName,
	})...)
	return validation.ValidateStruct(r, rules...)
}

type bookFields struct {
	title, isbn, imageData, originalImageName *string
	summary, image                            **string
	year                                      **int
	price                                     *decimal.Decimal
	authorID                                  *int
}

func bookFieldRules(f *bookFields) []*validation.FieldRules {
	hasImageData := *f.imageData != ""
	return []*validation.FieldRules{
		validation.Field(f.title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, MaxTitleLength),
		),
		validation.Field(f.year, validation.Min(MinYear)),
		validation.Field(f.isbn,
			validation.Required.Error("isbn is required"),
			validation.RuneLength(1, MaxISBNLength),
		),
		validation.Field(f.summary, validation.RuneLength(0, MaxSummaryLength)),
		validation.Field(f.image, validation.RuneLength(0, MaxImageLength)),
		validation.Field(f.price, validation.By(validPrice)),
		validation.Field(f.authorID,
			validation.Required.Error("authorId is required"),
			validation.Min(1),
		),
		validation.Field(f.imageData, validation.When(hasImageData, validation.By(validBase64))),
		validation.Field(f.originalImageName,
			validation.When(hasImageData, validation.Required.Error("originalImageName is required with imageData")),
			validation.RuneLength(0, 255),
		),
	}
}

func validPrice(value interface{}) error {
	p, _ := value.(decimal.Decimal)
	if p.IsNegative() {
		return errors.New("price must not be negative")
	}
	if p.GreaterThanOrEqual(maxPrice) {
		return errors.New("price is too large")
	}
	if !p.Equal(p.Round(2)) {
		return errors.New("price must have at most two decimal places")
	}
	return nil
}

func validBase64(value interface{}) error {
	s, _ := value.(string)
	if _, err := base64.StdEncoding.DecodeString(s); err != nil {
		return errors.New("imageData must be base64 encoded")
	}
	return nil
}

// ============ RESPONSE DTOs ============

// BookResponse - list item
type BookResponse struct {
	ID         int             `json:"id"`
	Title      string          `json:"title"`
	Image      *string         `json:"image"`
	Price      decimal.Decimal `json:"price"`
	AuthorID   int             `json:"authorId"`
	AuthorName string          `json:"authorName"`
}

// BookDetailsResponse - GET /api/books/:id
type BookDetailsResponse struct {
	BookResponse
	Year    *int    `json:"year"`
	ISBN    string  `json:"isbn"`
	Summary *string `json:"summary"`
}

// ============ MAPPING ============

func (b *BookWithAuthor) ToResponse() BookResponse {
	return BookResponse{
		ID:         b.ID,
		Title:      b.Title,
		Image:      b.Image,
		Price:      b.Price,
		AuthorID:   b.AuthorID,
		AuthorName: b.AuthorName,
	}
}

func (b *BookWithAuthor) ToDetailsResponse() *BookDetailsResponse {
	return &BookDetailsResponse{
		BookResponse: b.ToResponse(),
		Year:         b.Year,
		ISBN:         b.ISBN,
		Summary:      b.Summary,
	}
}

// ToResponses maps a projected list in one pass.
func ToResponses(books []BookWithAuthor) []BookResponse {
	out := make([]BookResponse, len(books))
	for i := range books {
		out[i] = books[i].ToResponse()
	}
	return out
}

func (r *CreateBookRequest) ToEntity() *Book {
	return &Book{
		Title:    r.Title,
		Year:     r.Year,
		ISBN:     r.ISBN,
		Price:    r.Price,
		Summary:  r.Summary,
		Image:    r.Image,
		AuthorID: r.AuthorID,
	}
}

// ApplyToEntity overwrites every mutable field of b.
func (r *UpdateBookRequest) ApplyToEntity(b *Book) {
	b.Title = r.Title
	b.Year = r.Year
	b.ISBN = r.ISBN
	b.Price = r.Price
	b.Summary = r.Summary
	b.Image = r.Image
	b.AuthorID = r.AuthorID
}
