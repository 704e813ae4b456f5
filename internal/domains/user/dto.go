package user

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

const (
	MinPasswordLength = 6
	MaxPasswordLength = 128
	// bcrypt refuses longer input.
	MaxPasswordBytes = 72
	MaxNameLength     = 50
)

var (
	hasUpper    = regexp.MustCompile(`[A-Z]`)
	hasLower    = regexp.MustCompile(`[a-z]`)
	hasDigit    = regexp.MustCompile(`[0-9]`)
	hasNonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

func passwordBytes(value interface{}) error {
	s, _ := value.(string)
	if len([]byte(s)) > MaxPasswordBytes {
		return errors.New("password must be at most 72 bytes")
	}
	return nil
}

// RegisterRequest - POST /api/auth/register
// Role is required on the wire but every new account is created as User.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(3, 256),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(MinPasswordLength, MaxPasswordLength).Error("password must be 6-128 characters"),
			validation.By(passwordBytes),
			validation.Match(hasUpper).Error("password must contain at least one uppercase letter"),
			validation.Match(hasLower).Error("password must contain at least one lowercase letter"),
			validation.Match(hasDigit).Error("password must contain at least one number"),
			validation.Match(hasNonAlnum).Error("password must contain at least one non-alphanumeric character"),
		),
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last name is required"),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.Role, validation.Required.Error("role is required")),
	)
}

// LoginRequest - POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	UserID uuid.UUID `json:"userId"`
	Token  string    `json:"token"`
	Email  string    `json:"email"`
}
