package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/institute/internal/app/models"
)

func ptr[T any](v T) *T { return &v }

func TestFromStudent_NilRelations(t *testing.T) {
	out := FromStudent(&models.Student{ID: 3, UserID: 9})
	require.NotNil(t, out)
	assert.Nil(t, out.User)
	assert.Nil(t, out.Batch)
	assert.Nil(t, out.BatchID)
	assert.NotNil(t, out.Enrollments)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"studentId":3,"userId":9,"batchId":null,"user":null,"batch":null,"enrollments":[]}`, string(raw))
}

func TestFromStudent_FullGraph(t *testing.T) {
	teacher := &models.Teacher{ID: 2, UserID: 1, User: &models.User{ID: 1, Name: "Tess", Role: models.RoleTeacher, Password: "hash"}}
	course := &models.Course{ID: 4, Name: "Mechanics", TeacherID: ptr(int64(2)), Teacher: teacher}
	batch := &models.Batch{ID: 5, Name: "Evening", CourseID: ptr(int64(4)), Course: course}
	student := &models.Student{
		ID:          6,
		UserID:      7,
		BatchID:     ptr(int64(5)),
		User:        &models.User{ID: 7, Name: "Sam", Role: models.RoleStudent},
		Batch:       batch,
		Enrollments: []*models.Enrollment{{ID: 8, StudentID: 6, CourseID: 4, Course: course}, nil},
	}

	out := FromStudent(student)
	require.NotNil(t, out.Batch)
	require.NotNil(t, out.Batch.Course)
	require.NotNil(t, out.Batch.Course.Teacher)
	assert.Equal(t, "Tess", out.Batch.Course.Teacher.User.Name)
	assert.Equal(t, "TEACHER", out.Batch.Course.Teacher.User.Role)
	require.Len(t, out.Enrollments, 1)
	assert.Equal(t, int64(4), out.Enrollments[0].Course.ID)

	// the projection copies ids instead of aliasing the entity
	*student.BatchID = 99
	assert.Equal(t, int64(5), *out.BatchID)
}

func TestFromUser_OmitsPassword(t *testing.T) {
	raw, err := json.Marshal(FromUser(&models.User{ID: 1, Email: "a@b.c", Password: "hash"}))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
	assert.Nil(t, FromUser(nil))
}

func TestFromTeacher_CoursesOnlyWhenLoaded(t *testing.T) {
	out := FromTeacher(&models.Teacher{ID: 1})
	assert.Nil(t, out.Courses)

	out = FromTeacher(&models.Teacher{ID: 1, Courses: []*models.Course{{ID: 3, Name: "Optics"}}})
	require.Len(t, out.Courses, 1)
	assert.Nil(t, out.Courses[0].Teacher)
}

func TestUpdateCourseRequest_Apply(t *testing.T) {
	course := &models.Course{ID: 1, Name: "Mechanics", Description: "Old", TeacherID: ptr(int64(2))}

	(&UpdateCourseRequest{Description: ptr("New")}).Apply(course)
	assert.Equal(t, "Mechanics", course.Name)
	assert.Equal(t, "New", course.Description)
	assert.Equal(t, int64(2), *course.TeacherID)

	// empty strings and zero ids leave stored values alone
	(&UpdateCourseRequest{Name: ptr(""), TeacherID: ptr(int64(0))}).Apply(course)
	assert.Equal(t, "Mechanics", course.Name)
	assert.Equal(t, int64(2), *course.TeacherID)

	(&UpdateCourseRequest{Teacher: &TeacherRef{ID: 5}}).Apply(course)
	assert.Equal(t, int64(5), *course.TeacherID)
}

func TestUpdateBatchRequest_NewCourseID(t *testing.T) {
	id, ok := (&UpdateBatchRequest{}).NewCourseID()
	assert.False(t, ok)
	assert.Zero(t, id)

	id, ok = (&UpdateBatchRequest{CourseID: ptr(int64(3)), Course: &CourseRef{ID: 4}}).NewCourseID()
	assert.True(t, ok)
	assert.Equal(t, int64(3), id)
}

func TestUpdateStudentRequest_Apply(t *testing.T) {
	student := &models.Student{ID: 1, UserID: 2}

	(&UpdateStudentRequest{Batch: &BatchRef{ID: 7}}).Apply(student)
	require.NotNil(t, student.BatchID)
	assert.Equal(t, int64(7), *student.BatchID)
	assert.Equal(t, int64(2), student.UserID)
}

func TestCreateRequests_ReferencedIDs(t *testing.T) {
	assert.Equal(t, int64(4), (&CreateCourseRequest{Teacher: &TeacherRef{ID: 4}}).ReferencedTeacherID())
	assert.Equal(t, int64(3), (&CreateCourseRequest{TeacherID: 3, Teacher: &TeacherRef{ID: 4}}).ReferencedTeacherID())
	assert.Zero(t, (&CreateCourseRequest{}).ReferencedTeacherID())

	assert.Equal(t, int64(6), (&CreateBatchRequest{Course: &CourseRef{ID: 6}}).ReferencedCourseID())
	assert.Equal(t, int64(8), (&CreateTeacherRequest{User: &UserInput{ID: 8}}).ReferencedUserID())

	s := (&CreateStudentRequest{UserID: 1}).ToStudent(1)
	assert.Nil(t, s.BatchID)
	s = (&CreateStudentRequest{UserID: 1, BatchID: ptr(int64(2))}).ToStudent(1)
	assert.Equal(t, int64(2), *s.BatchID)
}

func TestUserInput_Complete(t *testing.T) {
	var nilInput *UserInput
	assert.False(t, nilInput.Complete())
	assert.False(t, (&UserInput{Name: "A", Email: "a@b.c"}).Complete())
	assert.True(t, (&UserInput{Name: "A", Email: "a@b.c", Password: "password1"}).Complete())
}
