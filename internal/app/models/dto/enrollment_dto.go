package dto

import (
	"time"

	"github.com/yigit/institute/internal/app/models"
)

// EnrollmentDTO is the wire shape of a student-course enrollment
type EnrollmentDTO struct {
	ID         int64      `json:"enrollmentId" example:"90"`
	StudentID  int64      `json:"studentId" example:"21"`
	CourseID   int64      `json:"courseId" example:"3"`
	EnrolledAt time.Time  `json:"enrolledAt"`
	Course     *CourseDTO `json:"course,omitempty"`
}

// EnrollRequest enrolls a student in a course
type EnrollRequest struct {
	StudentID int64 `json:"studentId" binding:"required,gt=0"`
	CourseID  int64 `json:"courseId" binding:"required,gt=0"`
}

// FromEnrollment projects an enrollment
func FromEnrollment(e *models.Enrollment) *EnrollmentDTO {
	if e == nil {
		return nil
	}
	return &EnrollmentDTO{
		ID:         e.ID,
		StudentID:  e.StudentID,
		CourseID:   e.CourseID,
		EnrolledAt: e.EnrolledAt,
		Course:     FromCourse(e.Course),
	}
}

// FromEnrollments always returns a non-nil slice so the field encodes as [].
func FromEnrollments(enrollments []*models.Enrollment) []EnrollmentDTO {
	out := make([]EnrollmentDTO, 0, len(enrollments))
	for _, e := range enrollments {
		if e != nil {
			out = append(out, *FromEnrollment(e))
		}
	}
	return out
}

// ToEnrollment builds the new enrollment row
func (r *EnrollRequest) ToEnrollment() *models.Enrollment {
	return &models.Enrollment{
		StudentID: r.StudentID,
		CourseID:  r.CourseID,
	}
}
