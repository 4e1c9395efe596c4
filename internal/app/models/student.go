package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID      int64  `json:"id" db:"id"`
	UserID  int64  `json:"userId" db:"user_id"`
	BatchID *int64 `json:"batchId,omitempty" db:"batch_id"` // Nullable

	// Relations (populated when needed)
	User        *User         `json:"user,omitempty"`
	Batch       *Batch        `json:"batch,omitempty"`
	Enrollments []*Enrollment `json:"enrollments,omitempty"`
}
