package models

// Teacher defines the teacher model based on the 'teachers' table
type Teacher struct {
	ID                    int64  `json:"id" db:"id"`
	UserID                int64  `json:"userId" db:"user_id"`
	SubjectSpecialization string `json:"subjectSpecialization" db:"subject_specialization"`

	// Relations (populated when needed)
	User    *User     `json:"user,omitempty"`
	Courses []*Course `json:"courses,omitempty"`
}
