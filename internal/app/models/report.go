package models

// StudentReport is a derived, read-only row: one per student.
type StudentReport struct {
	StudentID       int64
	UserName        string
	BatchName       *string
	EnrolledCourses int64
}
