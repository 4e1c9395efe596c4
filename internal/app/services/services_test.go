package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/institute/internal/app/models/dto"
	"github.com/yigit/institute/internal/app/repositories/memory"
	"github.com/yigit/institute/internal/pkg/apperrors"
	"github.com/yigit/institute/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	*Services
	store *memory.Store
	jwt   *auth.JWTService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	auth.BcryptCost = bcrypt.MinCost
	repos, store := memory.NewRepositories()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "institute.test",
	})
	return &testEnv{
		Services: NewServices(repos, jwtService, zerolog.New(io.Discard)),
		store:    store,
		jwt:      jwtService,
	}
}

func strPtr(s string) *string { return &s }
func idPtr(v int64) *int64    { return &v }

func (e *testEnv) mustTeacher(t *testing.T, email string) *dto.TeacherDTO {
	t.Helper()
	teacher, err := e.TeacherService.CreateTeacher(context.Background(), &dto.CreateTeacherRequest{
		User:                  &dto.UserInput{Name: "Tess", Email: email, Password: "password123"},
		SubjectSpecialization: "Physics",
	})
	require.NoError(t, err)
	return teacher
}

func (e *testEnv) mustCourse(t *testing.T, teacherID int64) *dto.CourseDTO {
	t.Helper()
	course, err := e.CourseService.CreateCourse(context.Background(), &dto.CreateCourseRequest{
		Name:      "Mechanics",
		TeacherID: teacherID,
	})
	require.NoError(t, err)
	return course
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.AuthService.Register(ctx, &dto.RegisterRequest{
		Name:     "Tess",
		Email:    "Tess@Example.com",
		Password: "password123",
		Role:     "teacher",
	})
	require.NoError(t, err)
	assert.Positive(t, reg.UserID)

	resp, err := env.AuthService.Login(ctx, &dto.LoginRequest{Email: "tess@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Equal(t, int64(3600), resp.Token.ExpiresIn)
	assert.Equal(t, "TEACHER", resp.User.Role)

	claims, err := env.jwt.ValidateAndExtractClaims(resp.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, claims.UserID)
	assert.Equal(t, "TEACHER", claims.Role)
}

func TestAuthService_LoginFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.AuthService.Register(ctx, &dto.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = env.AuthService.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = env.AuthService.Login(ctx, &dto.LoginRequest{Email: "ann@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_RegisterRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.AuthService.Register(ctx, &dto.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = env.AuthService.Register(ctx, &dto.RegisterRequest{Name: "Ann 2", Email: "ANN@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = env.AuthService.Register(ctx, &dto.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "password123", Role: "janitor"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	assert.Equal(t, 1, env.store.Counts()["users"])

	users, err := env.AuthService.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "STUDENT", users[0].Role)
}

func TestCourseService_CreateResolvesTeacherGraph(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustTeacher(t, "tess@example.com")

	course, err := env.CourseService.CreateCourse(context.Background(), &dto.CreateCourseRequest{
		Name:    "Algorithms",
		Teacher: &dto.TeacherRef{ID: teacher.ID},
	})
	require.NoError(t, err)
	require.NotNil(t, course.TeacherID)
	assert.Equal(t, teacher.ID, *course.TeacherID)
	require.NotNil(t, course.Teacher)
	require.NotNil(t, course.Teacher.User)
	assert.Equal(t, "tess@example.com", course.Teacher.User.Email)
}

func TestCourseService_CreateRejectsMissingTeacher(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.CourseService.CreateCourse(ctx, &dto.CreateCourseRequest{Name: "Algorithms", TeacherID: 404})
	assert.ErrorIs(t, err, apperrors.ErrDependencyMissing)

	_, err = env.CourseService.CreateCourse(ctx, &dto.CreateCourseRequest{Name: "Algorithms"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	assert.Equal(t, 0, env.store.Counts()["courses"])
}

func TestCourseService_PartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.mustTeacher(t, "tess@example.com")
	course := env.mustCourse(t, teacher.ID)

	updated, err := env.CourseService.UpdateCourse(ctx, course.ID, &dto.UpdateCourseRequest{
		Name:        strPtr(""),
		Description: strPtr("Newtonian"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Mechanics", updated.Name)
	assert.Equal(t, "Newtonian", updated.Description)
	assert.Equal(t, teacher.ID, *updated.TeacherID)

	_, err = env.CourseService.UpdateCourse(ctx, course.ID, &dto.UpdateCourseRequest{TeacherID: idPtr(999)})
	assert.ErrorIs(t, err, apperrors.ErrDependencyMissing)

	_, err = env.CourseService.UpdateCourse(ctx, 999, &dto.UpdateCourseRequest{})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestBatchService_CreateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.mustTeacher(t, "tess@example.com")
	course := env.mustCourse(t, teacher.ID)

	_, err := env.BatchService.CreateBatch(ctx, &dto.CreateBatchRequest{Name: "Morning", CourseID: 999})
	assert.ErrorIs(t, err, apperrors.ErrDependencyMissing)
	assert.Equal(t, 0, env.store.Counts()["batches"])

	batch, err := env.BatchService.CreateBatch(ctx, &dto.CreateBatchRequest{
		Name:   "Morning",
		Timing: "08:00-10:00",
		Course: &dto.CourseRef{ID: course.ID},
	})
	require.NoError(t, err)
	require.NotNil(t, batch.Course)
	require.NotNil(t, batch.Course.Teacher)
	assert.Equal(t, "Tess", batch.Course.Teacher.User.Name)

	require.NoError(t, env.BatchService.DeleteBatch(ctx, batch.ID))
	assert.ErrorIs(t, env.BatchService.DeleteBatch(ctx, batch.ID), apperrors.ErrResourceNotFound)
}

func TestTeacherService_UserAlreadyLinked(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustTeacher(t, "tess@example.com")

	_, err := env.TeacherService.CreateTeacher(context.Background(), &dto.CreateTeacherRequest{
		UserID:                teacher.UserID,
		SubjectSpecialization: "Chemistry",
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, 1, env.store.Counts()["teachers"])
}

func TestStudentService_InlineUserIsAtomic(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.StudentService.CreateStudent(ctx, &dto.CreateStudentRequest{
		User:    &dto.UserInput{Name: "Sam", Email: "sam@example.com", Password: "password123"},
		BatchID: idPtr(77),
	})
	assert.ErrorIs(t, err, apperrors.ErrDependencyMissing)
	assert.Equal(t, 0, env.store.Counts()["users"])
	assert.Equal(t, 0, env.store.Counts()["students"])

	_, err = env.StudentService.CreateStudent(ctx, &dto.CreateStudentRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	student, err := env.StudentService.CreateStudent(ctx, &dto.CreateStudentRequest{
		User: &dto.UserInput{Name: "Sam", Email: "sam@example.com", Password: "password123"},
	})
	require.NoError(t, err)
	require.NotNil(t, student.User)
	assert.Equal(t, "STUDENT", student.User.Role)
	assert.Nil(t, student.Batch)
	assert.Empty(t, student.Enrollments)

	_, err = env.StudentService.CreateStudent(ctx, &dto.CreateStudentRequest{
		User: &dto.UserInput{Name: "Sam again", Email: "sam@example.com", Password: "password123"},
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, 1, env.store.Counts()["users"])
}

func TestStudentService_UpdateEnrollAndReport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.mustTeacher(t, "tess@example.com")
	course := env.mustCourse(t, teacher.ID)
	batch, err := env.BatchService.CreateBatch(ctx, &dto.CreateBatchRequest{Name: "Morning", CourseID: course.ID})
	require.NoError(t, err)

	student, err := env.StudentService.CreateStudent(ctx, &dto.CreateStudentRequest{
		User: &dto.UserInput{Name: "Sam", Email: "sam@example.com", Password: "password123"},
	})
	require.NoError(t, err)

	unchanged, err := env.StudentService.UpdateStudent(ctx, student.ID, &dto.UpdateStudentRequest{})
	require.NoError(t, err)
	assert.Equal(t, student.UserID, unchanged.UserID)
	assert.Nil(t, unchanged.BatchID)

	moved, err := env.StudentService.UpdateStudent(ctx, student.ID, &dto.UpdateStudentRequest{Batch: &dto.BatchRef{ID: batch.ID}})
	require.NoError(t, err)
	require.NotNil(t, moved.Batch)
	assert.Equal(t, "Morning", moved.Batch.Name)

	_, err = env.StudentService.UpdateStudent(ctx, student.ID, &dto.UpdateStudentRequest{BatchID: idPtr(999)})
	assert.ErrorIs(t, err, apperrors.ErrDependencyMissing)

	_, err = env.StudentService.Enroll(ctx, &dto.EnrollRequest{StudentID: student.ID, CourseID: 999})
	assert.ErrorIs(t, err, apperrors.ErrDependencyMissing)

	enrollment, err := env.StudentService.Enroll(ctx, &dto.EnrollRequest{StudentID: student.ID, CourseID: course.ID})
	require.NoError(t, err)
	require.NotNil(t, enrollment.Course)
	assert.Equal(t, "Mechanics", enrollment.Course.Name)

	batches, err := env.StudentService.BatchesForStudent(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, batch.ID, batches[0].ID)

	_, err = env.StudentService.BatchesForStudent(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	full, err := env.StudentService.GetStudent(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, full.Enrollments, 1)
	assert.Equal(t, "Tess", full.Enrollments[0].Course.Teacher.User.Name)

	report, err := env.ReportService.StudentReport(ctx)
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, "Sam", report[0].UserName)
	assert.Equal(t, int64(1), report[0].EnrolledCourses)
	require.NotNil(t, report[0].BatchName)
	assert.Equal(t, "Morning", *report[0].BatchName)
}

func TestStudentService_DeleteIsNotFoundTheSecondTime(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	student, err := env.StudentService.CreateStudent(ctx, &dto.CreateStudentRequest{
		User: &dto.UserInput{Name: "Sam", Email: "sam@example.com", Password: "password123"},
	})
	require.NoError(t, err)

	require.NoError(t, env.StudentService.DeleteStudent(ctx, student.ID))
	assert.ErrorIs(t, env.StudentService.DeleteStudent(ctx, student.ID), apperrors.ErrResourceNotFound)
	assert.ErrorIs(t, env.StudentService.DeleteStudent(ctx, 0), apperrors.ErrValidationFailed)
}

func TestProfiles_RejectUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.TeacherService.CreateTeacher(ctx, &dto.CreateTeacherRequest{UserID: 999, SubjectSpecialization: "Physics"})
	assert.ErrorIs(t, err, apperrors.ErrDependencyMissing)

	_, err = env.TeacherService.CreateTeacher(ctx, &dto.CreateTeacherRequest{
		User:                  &dto.UserInput{ID: 999},
		SubjectSpecialization: "Physics",
	})
	assert.ErrorIs(t, err, apperrors.ErrDependencyMissing)

	_, err = env.StudentService.CreateStudent(ctx, &dto.CreateStudentRequest{UserID: 999})
	assert.ErrorIs(t, err, apperrors.ErrDependencyMissing)

	counts := env.store.Counts()
	assert.Equal(t, 0, counts["users"])
	assert.Equal(t, 0, counts["teachers"])
	assert.Equal(t, 0, counts["students"])
}

func TestDelete_NotFoundForEveryFamily(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.mustTeacher(t, "tess@example.com")
	course := env.mustCourse(t, teacher.ID)
	batch, err := env.BatchService.CreateBatch(ctx, &dto.CreateBatchRequest{Name: "Morning", CourseID: course.ID})
	require.NoError(t, err)
	student, err := env.StudentService.CreateStudent(ctx, &dto.CreateStudentRequest{
		User: &dto.UserInput{Name: "Sam", Email: "sam@example.com", Password: "password123"},
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		id     int64
		delete func(ctx context.Context, id int64) error
	}{
		{"batch", batch.ID, env.BatchService.DeleteBatch},
		{"course", course.ID, env.CourseService.DeleteCourse},
		{"teacher", teacher.ID, env.TeacherService.DeleteTeacher},
		{"student", student.ID, env.StudentService.DeleteStudent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.delete(ctx, tt.id))
			assert.ErrorIs(t, tt.delete(ctx, tt.id), apperrors.ErrResourceNotFound)
			assert.ErrorIs(t, tt.delete(ctx, tt.id), apperrors.ErrResourceNotFound)
			assert.ErrorIs(t, tt.delete(ctx, 424242), apperrors.ErrResourceNotFound)
		})
	}
}
