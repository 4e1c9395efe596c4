package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/institute/internal/app/models"
	"github.com/yigit/institute/internal/app/repositories"
	"github.com/yigit/institute/internal/pkg/apperrors"
)

type fixture struct {
	repos   *repositories.Repositories
	store   *Store
	teacher *models.Teacher
	course  *models.Course
	batch   *models.Batch
	student *models.Student
}

func seedGraph(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	repos, store := NewRepositories()

	tu := &models.User{Name: "Tess", Email: "tess@example.com", Role: models.RoleTeacher}
	_, err := repos.UserRepository.CreateUser(ctx, tu)
	require.NoError(t, err)
	teacher := &models.Teacher{UserID: tu.ID, SubjectSpecialization: "Physics"}
	_, err = repos.TeacherRepository.CreateTeacher(ctx, teacher)
	require.NoError(t, err)

	course := &models.Course{Name: "Mechanics", TeacherID: &teacher.ID}
	_, err = repos.CourseRepository.CreateCourse(ctx, course)
	require.NoError(t, err)
	batch := &models.Batch{Name: "Morning", CourseID: &course.ID}
	_, err = repos.BatchRepository.CreateBatch(ctx, batch)
	require.NoError(t, err)

	su := &models.User{Name: "Sam", Email: "sam@example.com", Role: models.RoleStudent}
	_, err = repos.UserRepository.CreateUser(ctx, su)
	require.NoError(t, err)
	student := &models.Student{UserID: su.ID, BatchID: &batch.ID}
	_, err = repos.StudentRepository.CreateStudent(ctx, student)
	require.NoError(t, err)

	return fixture{repos: repos, store: store, teacher: teacher, course: course, batch: batch, student: student}
}

func TestStore_FullDepthResolvesGraph(t *testing.T) {
	f := seedGraph(t)
	ctx := context.Background()

	_, err := f.repos.EnrollmentRepository.CreateEnrollment(ctx, &models.Enrollment{StudentID: f.student.ID, CourseID: f.course.ID})
	require.NoError(t, err)

	st, err := f.repos.StudentRepository.GetStudentByID(ctx, f.student.ID, repositories.DepthFull)
	require.NoError(t, err)
	require.NotNil(t, st.User)
	require.NotNil(t, st.Batch)
	require.NotNil(t, st.Batch.Course)
	require.NotNil(t, st.Batch.Course.Teacher)
	assert.Equal(t, "Tess", st.Batch.Course.Teacher.User.Name)
	require.Len(t, st.Enrollments, 1)
	assert.Equal(t, "Mechanics", st.Enrollments[0].Course.Name)

	shallow, err := f.repos.StudentRepository.GetStudentByID(ctx, f.student.ID, repositories.DepthShallow)
	require.NoError(t, err)
	assert.NotNil(t, shallow.User)
	assert.Nil(t, shallow.Batch)
	assert.Nil(t, shallow.Enrollments)
}

func TestStore_UniqueRules(t *testing.T) {
	f := seedGraph(t)
	ctx := context.Background()

	_, err := f.repos.UserRepository.CreateUser(ctx, &models.User{Name: "Other", Email: "tess@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	_, err = f.repos.TeacherRepository.CreateTeacher(ctx, &models.Teacher{UserID: f.teacher.UserID})
	assert.ErrorIs(t, err, apperrors.ErrUserAlreadyLinked)

	_, err = f.repos.StudentRepository.CreateStudent(ctx, &models.Student{UserID: 9999})
	assert.ErrorIs(t, err, apperrors.ErrDependencyMissing)
}

func TestStore_DeleteRules(t *testing.T) {
	f := seedGraph(t)
	ctx := context.Background()
	_, err := f.repos.EnrollmentRepository.CreateEnrollment(ctx, &models.Enrollment{StudentID: f.student.ID, CourseID: f.course.ID})
	require.NoError(t, err)

	require.NoError(t, f.repos.TeacherRepository.DeleteTeacher(ctx, f.teacher.ID))
	course, err := f.repos.CourseRepository.GetCourseByID(ctx, f.course.ID, repositories.DepthFull)
	require.NoError(t, err)
	assert.Nil(t, course.TeacherID)
	assert.Nil(t, course.Teacher)

	require.NoError(t, f.repos.CourseRepository.DeleteCourse(ctx, f.course.ID))
	batch, err := f.repos.BatchRepository.GetBatchByID(ctx, f.batch.ID, repositories.DepthFull)
	require.NoError(t, err)
	assert.Nil(t, batch.CourseID)
	assert.Equal(t, 0, f.store.Counts()["student_courses"])

	require.NoError(t, f.repos.BatchRepository.DeleteBatch(ctx, f.batch.ID))
	st, err := f.repos.StudentRepository.GetStudentByID(ctx, f.student.ID, repositories.DepthFull)
	require.NoError(t, err)
	assert.Nil(t, st.BatchID)
	assert.Nil(t, st.Batch)

	assert.ErrorIs(t, f.repos.BatchRepository.DeleteBatch(ctx, f.batch.ID), apperrors.ErrResourceNotFound)
}

func TestStore_WithinTxRollsBack(t *testing.T) {
	repos, store := NewRepositories()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(ctx context.Context) error {
		_, err := repos.UserRepository.CreateUser(ctx, &models.User{Name: "Ann", Email: "ann@example.com"})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.Counts()["users"])

	err = store.WithinTx(ctx, func(ctx context.Context) error {
		_, err := repos.UserRepository.CreateUser(ctx, &models.User{Name: "Ann", Email: "ann@example.com"})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.Counts()["users"])
}

func TestStore_WithinTxKeepsOtherCommits(t *testing.T) {
	repos, store := NewRepositories()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(txCtx context.Context) error {
		_, err := repos.UserRepository.CreateUser(txCtx, &models.User{Name: "Ann", Email: "ann@example.com"})
		require.NoError(t, err)

		// another request commits outside this unit of work
		_, err = repos.UserRepository.CreateUser(ctx, &models.User{Name: "Bob", Email: "bob@example.com"})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, store.Counts()["users"])

	_, err = repos.UserRepository.GetUserByEmail(ctx, "bob@example.com")
	assert.NoError(t, err)
	_, err = repos.UserRepository.GetUserByEmail(ctx, "ann@example.com")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestStore_WithinTxRevertsCascades(t *testing.T) {
	f := seedGraph(t)
	ctx := context.Background()
	_, err := f.repos.EnrollmentRepository.CreateEnrollment(ctx, &models.Enrollment{StudentID: f.student.ID, CourseID: f.course.ID})
	require.NoError(t, err)
	before := f.store.Counts()

	err = f.store.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, f.repos.CourseRepository.DeleteCourse(ctx, f.course.ID))
		return errors.New("abort")
	})
	require.Error(t, err)
	assert.Equal(t, before, f.store.Counts())

	batch, err := f.repos.BatchRepository.GetBatchByID(ctx, f.batch.ID, repositories.DepthShallow)
	require.NoError(t, err)
	require.NotNil(t, batch.CourseID)
	assert.Equal(t, f.course.ID, *batch.CourseID)
}

func TestStore_ReportsAndStudentBatches(t *testing.T) {
	f := seedGraph(t)
	ctx := context.Background()

	batches, err := f.repos.BatchRepository.ListBatchesForStudent(ctx, f.student.ID)
	require.NoError(t, err)
	assert.Empty(t, batches)

	for i := 0; i < 2; i++ {
		_, err := f.repos.EnrollmentRepository.CreateEnrollment(ctx, &models.Enrollment{StudentID: f.student.ID, CourseID: f.course.ID})
		require.NoError(t, err)
	}

	batches, err = f.repos.BatchRepository.ListBatchesForStudent(ctx, f.student.ID)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, f.batch.ID, batches[0].ID)

	reports, err := f.repos.ReportRepository.StudentReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Sam", reports[0].UserName)
	require.NotNil(t, reports[0].BatchName)
	assert.Equal(t, "Morning", *reports[0].BatchName)
	assert.Equal(t, int64(2), reports[0].EnrolledCourses)
}
