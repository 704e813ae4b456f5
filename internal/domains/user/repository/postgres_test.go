package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore/internal/domains/user"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func newUser() *user.User {
	return &user.User{
		ID:              uuid.New(),
		Email:           "alice@example.com",
		NormalizedEmail: "ALICE@EXAMPLE.COM",
		PasswordHash:    "hash",
		FirstName:       "Alice",
		LastName:        "Liddell",
	}
}

func TestCreateWithRole_Commits(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresRepository(mock)
	u := newUser()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(u.ID, u.Email, u.NormalizedEmail, u.PasswordHash, u.FirstName, u.LastName).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(`INSERT INTO user_roles`).
		WithArgs(u.ID, user.RoleUserID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateWithRole(context.Background(), u, user.RoleUser))
	assert.Equal(t, now, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithRole_DuplicateEmailRollsBack(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_normalized_email_key"})
	mock.ExpectRollback()

	err := repo.CreateWithRole(context.Background(), newUser(), user.RoleUser)
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithRole_RoleInsertFailureRollsBack(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresRepository(mock)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(`INSERT INTO user_roles`).WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	assert.Error(t, repo.CreateWithRole(context.Background(), newUser(), user.RoleAdministrator))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithRole_UnknownRole(t *testing.T) {
	mock := newMock(t)
	err := NewPostgresRepository(mock).CreateWithRole(context.Background(), newUser(), user.Role("Root"))
	assert.ErrorIs(t, err, user.ErrInvalidRole)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmail_UsesNormalizedEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresRepository(mock)

	mock.ExpectQuery(`WHERE normalized_email = \$1`).
		WithArgs("ALICE@EXAMPLE.COM").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestGetRolesAndClaims(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresRepository(mock)
	id := uuid.New()

	mock.ExpectQuery(`SELECT r\.name`).WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"name"}).AddRow("Administrator").AddRow("User"))
	mock.ExpectQuery(`FROM user_claims`).WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"claim_type", "claim_value"}).AddRow("department", "sales"))

	roles, err := repo.GetRoles(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Administrator", "User"}, roles)

	claims, err := repo.GetClaims(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []user.Claim{{Type: "department", Value: "sales"}}, claims)
}
