package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bookstore/internal/domains/user"
	"bookstore/internal/infrastructure/database"
	pkgdb "bookstore/pkg/database"
)

const (
	pgUniqueViolation = "23505"
	emailConstraint   = "users_normalized_email_key"
)

// DB is satisfied by *pgxpool.Pool.
type DB interface {
	database.DBTX
	pkgdb.Beginner
}

// postgresRepository is the pgx implementation of user.Repository
type postgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) user.Repository {
	return &postgresRepository{db: db}
}

// CreateWithRole inserts the user row and its role membership in one transaction.
func (r *postgresRepository) CreateWithRole(ctx context.Context, u *user.User, role user.Role) error {
	roleID, ok := role.ID()
	if !ok {
		return user.ErrInvalidRole
	}

	return pkgdb.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO users (id, email, normalized_email, password_hash, first_name, last_name)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_at, updated_at
		`
		err := tx.QueryRow(ctx, query,
			u.ID,
			u.Email,
			u.NormalizedEmail,
			u.PasswordHash,
			u.FirstName,
			u.LastName,
		).Scan(&u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == emailConstraint {
				return user.ErrEmailAlreadyExists
			}
			return fmt.Errorf("failed to insert user: %w", err)
		}

		if _, err := tx.Exec(ctx, `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, u.ID, roleID); err != nil {
			return fmt.Errorf("failed to assign role %s: %w", role, err)
		}
		return nil
	})
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, email, normalized_email, password_hash, first_name, last_name, created_at, updated_at
		FROM users
		WHERE normalized_email = $1
	`

	var u user.User
	err := r.db.QueryRow(ctx, query, user.NormalizeEmail(email)).Scan(
		&u.ID,
		&u.Email,
		&u.NormalizedEmail,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &u, nil
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE normalized_email = $1)`,
		user.NormalizeEmail(email),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) GetRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := `
		SELECT r.name
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = $1
		ORDER BY r.name
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}
	defer rows.Close()

	roles := make([]string, 0, 1)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, name)
	}
	return roles, rows.Err()
}

func (r *postgresRepository) GetClaims(ctx context.Context, userID uuid.UUID) ([]user.Claim, error) {
	rows, err := r.db.Query(ctx,
		`SELECT claim_type, claim_value FROM user_claims WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load claims: %w", err)
	}
	defer rows.Close()

	var claims []user.Claim
	for rows.Next() {
		var c user.Claim
		if err := rows.Scan(&c.Type, &c.Value); err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
