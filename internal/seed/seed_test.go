package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/institute/internal/app/models"
	"github.com/yigit/institute/internal/app/repositories/memory"
	"github.com/yigit/institute/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateDefaultData(t *testing.T) {
	auth.BcryptCost = bcrypt.MinCost
	repos, store := memory.NewRepositories()
	ctx := context.Background()
	admin := Admin{Name: "Root", Email: " Admin@Institute.Test ", Password: "admin-pass-123"}

	require.NoError(t, CreateDefaultData(ctx, repos.UserRepository, admin, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(ctx, repos.UserRepository, admin, zerolog.Nop()))
	assert.Equal(t, 1, store.Counts()["users"])

	user, err := repos.UserRepository.GetUserByEmail(ctx, "admin@institute.test")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, auth.CheckPassword(user.Password, "admin-pass-123"))
}

func TestCreateDefaultData_NoPasswordSkips(t *testing.T) {
	repos, store := memory.NewRepositories()

	require.NoError(t, CreateDefaultData(context.Background(), repos.UserRepository, Admin{Email: "a@b.c"}, zerolog.Nop()))
	assert.Equal(t, 0, store.Counts()["users"])
}
