package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/institute/internal/app/models"
	appRepos "github.com/yigit/institute/internal/app/repositories"
	"github.com/yigit/institute/internal/pkg/auth"
)

// Admin describes the default administrator account
type Admin struct {
	Name     string
	Email    string
	Password string
}

// CreateDefaultData creates the default admin user when it does not exist yet.
// Without a configured password nothing is created.
func CreateDefaultData(ctx context.Context, users appRepos.IUserRepository, admin Admin, lgr zerolog.Logger) error {
	if admin.Password == "" {
		lgr.Info().Msg("No admin password configured, skipping admin creation")
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(admin.Email))
	exists, err := users.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("error checking if admin user exists: %w", err)
	}
	if exists {
		lgr.Info().Str("email", email).Msg("Admin user already exists, skipping creation")
		return nil
	}

	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	id, err := users.CreateUser(ctx, &appModels.User{
		Name:     admin.Name,
		Email:    email,
		Role:     appModels.RoleAdmin,
		Password: hash,
	})
	if err != nil {
		return fmt.Errorf("error creating admin user: %w", err)
	}

	lgr.Info().Int64("adminID", id).Str("email", email).Msg("Default admin user created successfully")
	return nil
}
