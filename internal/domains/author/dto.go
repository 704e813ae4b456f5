package author

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxNameLength = 50
	MaxBioLength  = 250
)

// CreateAuthorRequest - POST /api/authors
type CreateAuthorRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Bio       *string `json:"bio,omitempty"`
}

func (r *CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last name is required"),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.Bio, validation.RuneLength(0, MaxBioLength)),
	)
}

// UpdateAuthorRequest - PUT /api/authors/:id
// Every field overwrites the stored value.
type UpdateAuthorRequest struct {
	ID        int     `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Bio       *string `json:"bio,omitempty"`
}

func (r *UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required.Error("id is required")),
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last name is required"),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.Bio, validation.RuneLength(0, MaxBioLength)),
	)
}

// AuthorResponse is the read shape for both list and detail.
type AuthorResponse struct {
	ID        int     `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Bio       *string `json:"bio"`
}

// ToResponse converts Author entity to AuthorResponse DTO
func (a *Author) ToResponse() *AuthorResponse {
	return &AuthorResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Bio:       a.Bio,
	}
}

// ToResponses maps a slice in one pass.
func ToResponses(authors []Author) []AuthorResponse {
	out := make([]AuthorResponse, len(authors))
	for i := range authors {
		out[i] = *authors[i].ToResponse()
	}
	return out
}

// ToEntity converts CreateAuthorRequest to Author entity
func (r *CreateAuthorRequest) ToEntity() *Author {
	return &Author{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
	}
}

// ApplyToEntity overwrites the mutable fields of a.
func (r *UpdateAuthorRequest) ApplyToEntity(a *Author) {
	a.FirstName = r.FirstName
	a.LastName = r.LastName
	a.Bio = r.Bio
}
