package repositories

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/institute/internal/app/models"
	"github.com/yigit/institute/internal/pkg/apperrors"
)

func int64Ptr(v int64) *int64 { return &v }

func TestTeacherRepository_CreateTeacherUserAlreadyLinked(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTeacherRepository(mock)

	mock.ExpectQuery(`INSERT INTO teachers \(user_id,subject_specialization\)`).
		WithArgs(int64(4), "Math").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.CreateTeacher(context.Background(), &models.Teacher{UserID: 4, SubjectSpecialization: "Math"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestTeacherRepository_CreateTeacherMissingUser(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTeacherRepository(mock)

	mock.ExpectQuery(`INSERT INTO teachers`).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := repo.CreateTeacher(context.Background(), &models.Teacher{UserID: 4})
	assert.ErrorIs(t, err, apperrors.ErrDependencyMissing)
}

func TestCourseRepository_CreateCourse(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCourseRepository(mock)

	mock.ExpectQuery(`INSERT INTO courses \(course_name,description,teacher_id\) VALUES \(\$1,\$2,\$3\) RETURNING id`).
		WithArgs("Algebra", "Intro", int64Ptr(5)).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow(int64(11)))

	course := &models.Course{Name: "Algebra", Description: "Intro", TeacherID: int64Ptr(5)}
	id, err := repo.CreateCourse(context.Background(), course)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.Equal(t, int64(11), course.ID)
}

func TestCourseRepository_UpdateCourseNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCourseRepository(mock)

	mock.ExpectExec(`UPDATE courses SET`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateCourse(context.Background(), &models.Course{ID: 42, Name: "Algebra"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestBatchRepository_DeleteBatch(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBatchRepository(mock)

	mock.ExpectExec(`DELETE FROM batches WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM batches WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.DeleteBatch(context.Background(), 2))
	assert.ErrorIs(t, repo.DeleteBatch(context.Background(), 2), apperrors.ErrBatchNotFound)
}

func TestStudentRepository_StudentExists(t *testing.T) {
	mock := newMockPool(t)
	repo := NewStudentRepository(mock)

	mock.ExpectQuery(`SELECT EXISTS \( SELECT 1 FROM students WHERE id = \$1 \)`).
		WithArgs(int64(8)).
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.StudentExists(context.Background(), 8)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStudentRepository_UpdateStudentMissingBatch(t *testing.T) {
	mock := newMockPool(t)
	repo := NewStudentRepository(mock)

	mock.ExpectExec(`UPDATE students SET`).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.UpdateStudent(context.Background(), &models.Student{ID: 1, UserID: 2, BatchID: int64Ptr(77)})
	assert.ErrorIs(t, err, apperrors.ErrDependencyMissing)
}

func TestEnrollmentRepository_CreateEnrollmentMissingCourse(t *testing.T) {
	mock := newMockPool(t)
	repo := NewEnrollmentRepository(mock)

	mock.ExpectQuery(`INSERT INTO student_courses \(student_id,course_id\)`).
		WithArgs(int64(1), int64(99)).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := repo.CreateEnrollment(context.Background(), &models.Enrollment{StudentID: 1, CourseID: 99})
	assert.ErrorIs(t, err, apperrors.ErrDependencyMissing)
}

func TestCourseRepository_SelectJoinsFollowDepth(t *testing.T) {
	repo := NewCourseRepository(nil)

	shallow, _, err := repo.selectCourses(DepthShallow).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, shallow, "JOIN")

	full, _, err := repo.selectCourses(DepthFull).ToSql()
	require.NoError(t, err)
	assert.Contains(t, full, "LEFT JOIN teachers t ON t.id = c.teacher_id")
	assert.Contains(t, full, "LEFT JOIN users tu ON tu.id = t.user_id")
}

func TestStudentRepository_FullSelectReachesTeacherUser(t *testing.T) {
	repo := NewStudentRepository(nil)

	sql, _, err := repo.selectStudents(DepthFull).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "LEFT JOIN batches b ON b.id = s.batch_id")
	assert.Contains(t, sql, "LEFT JOIN courses bc ON bc.id = b.course_id")
	assert.Contains(t, sql, "LEFT JOIN users btu ON btu.id = bt.user_id")
}

func TestNullGraph_AbsentRelationsProjectToNil(t *testing.T) {
	var batch nullBatch
	name := "Morning"
	id := int64(3)
	batch.ID = &id
	batch.Name = &name

	model := batch.model()
	require.NotNil(t, model)
	assert.Equal(t, "Morning", model.Name)
	assert.Nil(t, model.CourseID)
	assert.Nil(t, model.Course)

	var course nullCourse
	assert.Nil(t, course.model())
}
