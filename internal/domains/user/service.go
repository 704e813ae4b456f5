package user

import "context"

// Service defines account registration and login.
type Service interface {
	// Register creates a User account.
	// Errors: ErrEmailAlreadyExists
	Register(ctx context.Context, req *RegisterRequest) error

	// Login verifies credentials and issues a token.
	// Unknown email and wrong password both return ErrInvalidCredentials.
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)

	// EnsureAccount creates the account with role unless the email is already taken.
	// It reports whether an account was created.
	EnsureAccount(ctx context.Context, email, password string, role Role) (bool, error)
}
