package repositories

import (
	"time"

	"github.com/yigit/institute/internal/app/models"
)

// The null* types scan one LEFT JOINed slice of the association graph. Every column is a
// pointer so that an absent relation scans as NULLs and projects to a nil model.

func userColumns(alias string) []string {
	return []string{
		alias + ".id",
		alias + ".name",
		alias + ".email",
		alias + ".role",
		alias + ".contact_details",
		alias + ".created_at",
		alias + ".updated_at",
	}
}

func teacherColumns(teacher, user string) []string {
	return append([]string{
		teacher + ".id",
		teacher + ".user_id",
		teacher + ".subject_specialization",
	}, userColumns(user)...)
}

func courseColumns(depth Depth, course, teacher, user string) []string {
	cols := []string{
		course + ".id",
		course + ".course_name",
		course + ".description",
		course + ".teacher_id",
	}
	if depth == DepthFull {
		cols = append(cols, teacherColumns(teacher, user)...)
	}
	return cols
}

func batchColumns(depth Depth, batch, course, teacher, user string) []string {
	cols := []string{
		batch + ".id",
		batch + ".batch_name",
		batch + ".batch_timing",
		batch + ".batch_type",
		batch + ".course_id",
	}
	if depth == DepthFull {
		cols = append(cols, courseColumns(DepthFull, course, teacher, user)...)
	}
	return cols
}

// courseJoins returns the joins hanging teacher and teacher user off a course alias
func courseJoins(course, teacher, user string) []string {
	return []string{
		"teachers " + teacher + " ON " + teacher + ".id = " + course + ".teacher_id",
		"users " + user + " ON " + user + ".id = " + teacher + ".user_id",
	}
}

type nullUser struct {
	ID             *int64
	Name           *string
	Email          *string
	Role           *string
	ContactDetails *string
	CreatedAt      *time.Time
	UpdatedAt      *time.Time
}

func (n *nullUser) targets() []any {
	return []any{&n.ID, &n.Name, &n.Email, &n.Role, &n.ContactDetails, &n.CreatedAt, &n.UpdatedAt}
}

func (n *nullUser) model() *models.User {
	if n.ID == nil {
		return nil
	}
	u := &models.User{
		ID:             *n.ID,
		Name:           deref(n.Name),
		Email:          deref(n.Email),
		Role:           models.RoleType(deref(n.Role)),
		ContactDetails: deref(n.ContactDetails),
	}
	if n.CreatedAt != nil {
		u.CreatedAt = *n.CreatedAt
	}
	if n.UpdatedAt != nil {
		u.UpdatedAt = *n.UpdatedAt
	}
	return u
}

type nullTeacher struct {
	ID                    *int64
	UserID                *int64
	SubjectSpecialization *string
	User                  nullUser
}

func (n *nullTeacher) targets() []any {
	return append([]any{&n.ID, &n.UserID, &n.SubjectSpecialization}, n.User.targets()...)
}

func (n *nullTeacher) model() *models.Teacher {
	if n.ID == nil {
		return nil
	}
	return &models.Teacher{
		ID:                    *n.ID,
		UserID:                derefInt(n.UserID),
		SubjectSpecialization: deref(n.SubjectSpecialization),
		User:                  n.User.model(),
	}
}

type nullCourse struct {
	ID          *int64
	Name        *string
	Description *string
	TeacherID   *int64
	Teacher     nullTeacher
}

func (n *nullCourse) targets(depth Depth) []any {
	t := []any{&n.ID, &n.Name, &n.Description, &n.TeacherID}
	if depth == DepthFull {
		t = append(t, n.Teacher.targets()...)
	}
	return t
}

func (n *nullCourse) model() *models.Course {
	if n.ID == nil {
		return nil
	}
	return &models.Course{
		ID:          *n.ID,
		Name:        deref(n.Name),
		Description: deref(n.Description),
		TeacherID:   n.TeacherID,
		Teacher:     n.Teacher.model(),
	}
}

type nullBatch struct {
	ID       *int64
	Name     *string
	Timing   *string
	Type     *string
	CourseID *int64
	Course   nullCourse
}

func (n *nullBatch) targets(depth Depth) []any {
	t := []any{&n.ID, &n.Name, &n.Timing, &n.Type, &n.CourseID}
	if depth == DepthFull {
		t = append(t, n.Course.targets(DepthFull)...)
	}
	return t
}

func (n *nullBatch) model() *models.Batch {
	if n.ID == nil {
		return nil
	}
	return &models.Batch{
		ID:       *n.ID,
		Name:     deref(n.Name),
		Timing:   deref(n.Timing),
		Type:     deref(n.Type),
		CourseID: n.CourseID,
		Course:   n.Course.model(),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}
