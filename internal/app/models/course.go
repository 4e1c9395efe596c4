package models

// Course represents a course, optionally taught by a teacher.
type Course struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"courseName" db:"course_name"`
	Description string `json:"description" db:"description"`
	TeacherID   *int64 `json:"teacherId,omitempty" db:"teacher_id"` // Nullable

	// Relations (populated when needed)
	Teacher *Teacher `json:"teacher,omitempty"`
}
