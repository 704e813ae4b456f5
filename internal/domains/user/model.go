package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"bookstore/internal/shared/auth"
)

// User is an account row from the users table.
type User struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Email           string    `db:"email" json:"email"`
	NormalizedEmail string    `db:"normalized_email" json:"-"`
	PasswordHash    string    `db:"password_hash" json:"-"` // Never expose in JSON
	FirstName       string    `db:"first_name" json:"first_name"`
	LastName        string    `db:"last_name" json:"last_name"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Username is the login name. It is always the email address.
func (u *User) Username() string {
	return u.Email
}

// Role is one of the fixed roles seeded by the schema migration.
type Role string

const (
	RoleUser          Role = auth.RoleUser
	RoleAdministrator Role = auth.RoleAdministrator
)

// Fixed role ids from the identity migration.
var (
	RoleUserID          = uuid.MustParse("afc22088-a6f4-40a4-8250-d933d35adce0")
	RoleAdministratorID = uuid.MustParse("f0482d99-62b3-44f3-86f9-52d079dc1085")
)

// ID returns the seeded id of the role.
func (r Role) ID() (uuid.UUID, bool) {
	switch r {
	case RoleUser:
		return RoleUserID, true
	case RoleAdministrator:
		return RoleAdministratorID, true
	}
	return uuid.Nil, false
}

// Claim is a persisted per-user claim added to every token issued for the user.
type Claim struct {
	Type  string `db:"claim_type"`
	Value string `db:"claim_value"`
}

// NormalizeEmail is the lookup key for emails.
func NormalizeEmail(email string) string {
	return strings.ToUpper(strings.TrimSpace(email))
}
