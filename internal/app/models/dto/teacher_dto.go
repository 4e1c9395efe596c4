package dto

import "github.com/yigit/institute/internal/app/models"

// TeacherDTO is the wire shape of a teacher
type TeacherDTO struct {
	ID                    int64       `json:"teacherId" example:"7"`
	UserID                int64       `json:"userId" example:"12"`
	SubjectSpecialization string      `json:"subjectSpecialization" example:"Mathematics"`
	User                  *UserDTO    `json:"user,omitempty"`
	Courses               []CourseDTO `json:"courses,omitempty"`
}

// TeacherRef points at an existing teacher from inside another DTO
type TeacherRef struct {
	ID int64 `json:"teacherId"`
}

// CreateTeacherRequest creates a teacher for an existing user (userId) or an inline new user.
type CreateTeacherRequest struct {
	UserID                int64      `json:"userId" binding:"omitempty,gt=0"`
	User                  *UserInput `json:"user"`
	SubjectSpecialization string     `json:"subjectSpecialization" binding:"required"`
}

// UpdateTeacherRequest carries the fields to change; omitted fields stay as stored.
type UpdateTeacherRequest struct {
	UserID                *int64  `json:"userId"`
	SubjectSpecialization *string `json:"subjectSpecialization"`
}

// FromTeacher projects a teacher with whatever part of its graph is loaded
func FromTeacher(t *models.Teacher) *TeacherDTO {
	if t == nil {
		return nil
	}
	out := &TeacherDTO{
		ID:                    t.ID,
		UserID:                t.UserID,
		SubjectSpecialization: t.SubjectSpecialization,
		User:                  FromUser(t.User),
	}
	if len(t.Courses) > 0 {
		out.Courses = FromCourses(t.Courses)
	}
	return out
}

// FromTeachers projects a list of teachers
func FromTeachers(teachers []*models.Teacher) []TeacherDTO {
	out := make([]TeacherDTO, 0, len(teachers))
	for _, t := range teachers {
		if t != nil {
			out = append(out, *FromTeacher(t))
		}
	}
	return out
}

// ReferencedUserID is the existing user the request points at, or 0.
func (r *CreateTeacherRequest) ReferencedUserID() int64 {
	if r.User != nil {
		return firstID(r.UserID, r.User.ID)
	}
	return r.UserID
}

// ToTeacher builds the new teacher row
func (r *CreateTeacherRequest) ToTeacher(userID int64) *models.Teacher {
	return &models.Teacher{
		UserID:                userID,
		SubjectSpecialization: r.SubjectSpecialization,
	}
}

// NewUserID is the user the update moves the teacher to, if any
func (r *UpdateTeacherRequest) NewUserID() (int64, bool) {
	return providedID(r.UserID)
}

// Apply copies the provided fields onto t
func (r *UpdateTeacherRequest) Apply(t *models.Teacher) {
	if id, ok := providedID(r.UserID); ok {
		t.UserID = id
	}
	if v, ok := providedString(r.SubjectSpecialization); ok {
		t.SubjectSpecialization = v
	}
}
