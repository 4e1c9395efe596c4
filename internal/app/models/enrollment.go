package models

import "time"

// Enrollment links a student to a course ('student_courses' table).
// The same pair may appear more than once.
type Enrollment struct {
	ID         int64     `json:"id" db:"id"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	EnrolledAt time.Time `json:"enrolledAt" db:"enrolled_at"`

	Course *Course `json:"course,omitempty"`
}
