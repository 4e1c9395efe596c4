package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/institute/internal/app/models"
	"github.com/yigit/institute/internal/pkg/apperrors"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestUserRepository_CreateUser(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users \(name,email,password_hash,role,contact_details\)`).
		WithArgs("Ann", "ann@example.com", "hash", "ADMIN", "").
		WillReturnRows(mock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	user := &models.User{Name: "Ann", Email: "ann@example.com", Password: "hash", Role: models.RoleAdmin}
	id, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, now, user.CreatedAt)
}

func TestUserRepository_CreateUserDuplicateEmail(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.CreateUser(context.Background(), &models.User{Name: "Ann", Email: "ann@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, name, email, password_hash, role, contact_details, created_at, updated_at FROM users WHERE email = \$1 LIMIT 1`).
		WithArgs("ann@example.com").
		WillReturnRows(mock.NewRows(userSelectColumns).
			AddRow(int64(3), "Ann", "ann@example.com", "hash", "TEACHER", "555-0100", now, now))

	user, err := repo.GetUserByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.Equal(t, "hash", user.Password)
	assert.Equal(t, "555-0100", user.ContactDetails)
}

func TestUserRepository_GetUserByIDNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetUserByID(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestUserRepository_EmailExists(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`SELECT EXISTS \( SELECT 1 FROM users WHERE email = \$1 \)`).
		WithArgs("ann@example.com").
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "ann@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_ListUsersQueryError(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)
	boom := errors.New("connection reset")

	mock.ExpectQuery(`FROM users ORDER BY id ASC`).WillReturnError(boom)

	_, err := repo.ListUsers(context.Background())
	assert.ErrorIs(t, err, boom)
}
