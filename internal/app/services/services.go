// Package services holds the business rules of the institute API: input checks,
// association lookups before writes, and projection of stored graphs onto DTOs.
//
// Services defined in this package:
//   - AuthService: login, registration and the user listing
//   - TeacherService, CourseService, BatchService, StudentService: resource CRUD
//   - ReportService: read-only aggregate views
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/institute/internal/app/models"
	"github.com/yigit/institute/internal/app/models/dto"
	"github.com/yigit/institute/internal/app/repositories"
	"github.com/yigit/institute/internal/pkg/apperrors"
	"github.com/yigit/institute/internal/pkg/auth"
)

// Services groups every service the controllers depend on
type Services struct {
	AuthService    *AuthService
	TeacherService TeacherService
	CourseService  CourseService
	BatchService   BatchService
	StudentService StudentService
	ReportService  ReportService
}

// NewServices builds all services over one set of repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, logger zerolog.Logger) *Services {
	users := newUserProvisioner(repos.UserRepository)
	return &Services{
		AuthService:    NewAuthService(repos.UserRepository, jwtService, logger),
		TeacherService: NewTeacherService(repos.TeacherRepository, users, repos.TxManager, logger),
		CourseService:  NewCourseService(repos.CourseRepository, repos.TeacherRepository, repos.TxManager, logger),
		BatchService:   NewBatchService(repos.BatchRepository, repos.CourseRepository, repos.TxManager, logger),
		StudentService: NewStudentService(StudentServiceDeps{
			Students:    repos.StudentRepository,
			Batches:     repos.BatchRepository,
			Courses:     repos.CourseRepository,
			Enrollments: repos.EnrollmentRepository,
			Users:       users,
			Tx:          repos.TxManager,
		}, logger),
		ReportService: NewReportService(repos.ReportRepository),
	}
}

func validateID(id int64, what string) error {
	if id <= 0 {
		return apperrors.NewValidationError(fmt.Sprintf("invalid %s ID", what))
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// missingDependency turns a NotFound on a referenced row into DependencyMissing
func missingDependency(err error, what string, id int64) error {
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return apperrors.NewDependencyMissingError(fmt.Sprintf("%s %d does not exist", what, id))
	}
	return err
}

type existsFunc func(ctx context.Context, id int64) (bool, error)

// requireExisting fails with DependencyMissing when exists reports no row for id
func requireExisting(ctx context.Context, exists existsFunc, what string, id int64) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking %s: %w", what, err)
	}
	if !ok {
		return apperrors.NewDependencyMissingError(fmt.Sprintf("%s %d does not exist", what, id))
	}
	return nil
}

// userProvisioner resolves the user a teacher or student profile belongs to,
// creating it inline when the request carries new user details.
type userProvisioner struct {
	users repositories.IUserRepository
}

func newUserProvisioner(users repositories.IUserRepository) *userProvisioner {
	return &userProvisioner{users: users}
}

func (p *userProvisioner) resolve(ctx context.Context, userID int64, inline *dto.UserInput, role models.RoleType) (int64, error) {
	if userID > 0 {
		if _, err := p.users.GetUserByID(ctx, userID); err != nil {
			return 0, missingDependency(err, "user", userID)
		}
		return userID, nil
	}

	if !inline.Complete() {
		return 0, apperrors.NewValidationError("userId or user name, email and password are required")
	}

	user := inline.ToUser(role)
	user.Email = normalizeEmail(user.Email)
	exists, err := p.users.EmailExists(ctx, user.Email)
	if err != nil {
		return 0, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return 0, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(inline.Password)
	if err != nil {
		return 0, fmt.Errorf("error hashing password: %w", err)
	}
	user.Password = hash

	id, err := p.users.CreateUser(ctx, user)
	if err != nil {
		return 0, fmt.Errorf("user creation error: %w", err)
	}
	return id, nil
}

func (p *userProvisioner) exists(ctx context.Context, id int64) (bool, error) {
	_, err := p.users.GetUserByID(ctx, id)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return false, nil
	}
	return err == nil, err
}
