package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"bookstore/internal/domains/user"
	"bookstore/pkg/jwt"
)

// TokenIssuer signs access tokens. Implemented by *jwt.Manager.
type TokenIssuer interface {
	Generate(s jwt.Subject) (string, error)
}

// userService implement user.Service interface
type userService struct {
	repo       user.Repository
	tokens     TokenIssuer
	bcryptCost int
	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

// NewUserService creates the service. bcryptCost outside bcrypt's range falls back to the default.
func NewUserService(repo user.Repository, tokens TokenIssuer, bcryptCost int) user.Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcryptCost)
	return &userService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}
}

// Register creates the account with the User role regardless of req.Role.
func (s *userService) Register(ctx context.Context, req *user.RegisterRequest) error {
	if !strings.EqualFold(req.Role, string(user.RoleUser)) {
		log.Debug().Str("requested_role", req.Role).Msg("[AUTH] requested role ignored, assigning User")
	}
	_, err := s.create(ctx, req.Email, req.Password, req.FirstName, req.LastName, user.RoleUser)
	return err
}

func (s *userService) create(ctx context.Context, email, password, firstName, lastName string, role user.Role) (*user.User, error) {
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, user.ErrPasswordTooLong
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:              uuid.New(),
		Email:           strings.TrimSpace(email),
		NormalizedEmail: user.NormalizeEmail(email),
		PasswordHash:    string(passwordHash),
		FirstName:       firstName,
		LastName:        lastName,
	}

	// The unique index still guards against a concurrent registration.
	if err := s.repo.CreateWithRole(ctx, u, role); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Login(ctx context.Context, req *user.LoginRequest) (*user.AuthResponse, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if errors.Is(err, user.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	roles, err := s.repo.GetRoles(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	claims, err := s.repo.GetClaims(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("load claims: %w", err)
	}

	extra := make(map[string][]string, len(claims))
	for _, c := range claims {
		extra[c.Type] = append(extra[c.Type], c.Value)
	}

	token, err := s.tokens.Generate(jwt.Subject{
		UserID:   u.ID.String(),
		Username: u.Username(),
		Email:    u.Email,
		Roles:    roles,
		Extra:    extra,
	})
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &user.AuthResponse{
		UserID: u.ID,
		Token:  token,
		Email:  u.Email,
	}, nil
}

func (s *userService) EnsureAccount(ctx context.Context, email, password string, role user.Role) (bool, error) {
	if _, ok := role.ID(); !ok {
		return false, user.ErrInvalidRole
	}

	_, err := s.create(ctx, email, password, "System", string(role), role)
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
