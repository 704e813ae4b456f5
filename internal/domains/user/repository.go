package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for accounts, role memberships and claims.
type Repository interface {
	// CreateWithRole inserts the user and its single role membership atomically.
	// Errors: ErrEmailAlreadyExists
	CreateWithRole(ctx context.Context, u *User, role Role) error

	// FindByEmail looks the user up by normalized email.
	// Errors: ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	GetRoles(ctx context.Context, userID uuid.UUID) ([]string, error)

	GetClaims(ctx context.Context, userID uuid.UUID) ([]Claim, error)
}
