package dto

import "github.com/yigit/institute/internal/app/models"

// CourseDTO is the wire shape of a course
type CourseDTO struct {
	ID          int64       `json:"courseId" example:"3"`
	Name        string      `json:"courseName" example:"Algorithms"`
	Description string      `json:"description" example:"Design and analysis of algorithms"`
	TeacherID   *int64      `json:"teacherId,omitempty" example:"7"`
	Teacher     *TeacherDTO `json:"teacher,omitempty"`
}

// CourseRef points at an existing course from inside another DTO
type CourseRef struct {
	ID int64 `json:"courseId"`
}

// CreateCourseRequest needs a teacher, given as teacherId or teacher.teacherId.
type CreateCourseRequest struct {
	Name        string      `json:"courseName" binding:"required,max=200"`
	Description string      `json:"description"`
	TeacherID   int64       `json:"teacherId" binding:"omitempty,gt=0"`
	Teacher     *TeacherRef `json:"teacher"`
}

// UpdateCourseRequest carries the fields to change; omitted fields stay as stored.
type UpdateCourseRequest struct {
	Name        *string     `json:"courseName"`
	Description *string     `json:"description"`
	TeacherID   *int64      `json:"teacherId"`
	Teacher     *TeacherRef `json:"teacher"`
}

// FromCourse projects a course with whatever part of its graph is loaded
func FromCourse(c *models.Course) *CourseDTO {
	if c == nil {
		return nil
	}
	out := &CourseDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Teacher:     FromTeacher(c.Teacher),
	}
	if c.TeacherID != nil {
		out.TeacherID = int64Ptr(*c.TeacherID)
	}
	return out
}

// FromCourses projects a list of courses
func FromCourses(courses []*models.Course) []CourseDTO {
	out := make([]CourseDTO, 0, len(courses))
	for _, c := range courses {
		if c != nil {
			out = append(out, *FromCourse(c))
		}
	}
	return out
}

// ReferencedTeacherID is the teacher the new course points at, or 0.
func (r *CreateCourseRequest) ReferencedTeacherID() int64 {
	if r.Teacher != nil {
		return firstID(r.TeacherID, r.Teacher.ID)
	}
	return r.TeacherID
}

// ToCourse builds the new course row
func (r *CreateCourseRequest) ToCourse(teacherID int64) *models.Course {
	return &models.Course{
		Name:        r.Name,
		Description: r.Description,
		TeacherID:   int64Ptr(teacherID),
	}
}

// NewTeacherID is the teacher the update moves the course to, if any
func (r *UpdateCourseRequest) NewTeacherID() (int64, bool) {
	if id, ok := providedID(r.TeacherID); ok {
		return id, true
	}
	if r.Teacher != nil && r.Teacher.ID > 0 {
		return r.Teacher.ID, true
	}
	return 0, false
}

// Apply copies the provided fields onto c
func (r *UpdateCourseRequest) Apply(c *models.Course) {
	if v, ok := providedString(r.Name); ok {
		c.Name = v
	}
	if v, ok := providedString(r.Description); ok {
		c.Description = v
	}
	if id, ok := r.NewTeacherID(); ok {
		c.TeacherID = int64Ptr(id)
	}
}
