package models

// Batch is a timed group running one course.
type Batch struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"batchName" db:"batch_name"`
	Timing   string `json:"batchTiming" db:"batch_timing"`
	Type     string `json:"batchType" db:"batch_type"`
	CourseID *int64 `json:"courseId,omitempty" db:"course_id"` // Nullable

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
}
