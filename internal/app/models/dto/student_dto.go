package dto

import "github.com/yigit/institute/internal/app/models"

// StudentDTO is the wire shape of a student
type StudentDTO struct {
	ID          int64           `json:"studentId" example:"21"`
	UserID      int64           `json:"userId" example:"30"`
	BatchID     *int64          `json:"batchId" example:"4"`
	User        *UserDTO        `json:"user"`
	Batch       *BatchDTO       `json:"batch"`
	Enrollments []EnrollmentDTO `json:"enrollments"`
}

// CreateStudentRequest creates a student for an existing user (userId) or an inline new user.
// The batch is optional.
type CreateStudentRequest struct {
	UserID  int64      `json:"userId" binding:"omitempty,gt=0"`
	User    *UserInput `json:"user"`
	BatchID *int64     `json:"batchId"`
	Batch   *BatchRef  `json:"batch"`
}

// UpdateStudentRequest carries the fields to change; omitted fields stay as stored.
type UpdateStudentRequest struct {
	UserID  *int64    `json:"userId"`
	BatchID *int64    `json:"batchId"`
	Batch   *BatchRef `json:"batch"`
}

// FromStudent projects a student; a missing batch or user becomes null, never an error.
func FromStudent(s *models.Student) *StudentDTO {
	if s == nil {
		return nil
	}
	out := &StudentDTO{
		ID:          s.ID,
		UserID:      s.UserID,
		User:        FromUser(s.User),
		Batch:       FromBatch(s.Batch),
		Enrollments: FromEnrollments(s.Enrollments),
	}
	if s.BatchID != nil {
		out.BatchID = int64Ptr(*s.BatchID)
	}
	return out
}

// FromStudents projects a list of students
func FromStudents(students []*models.Student) []StudentDTO {
	out := make([]StudentDTO, 0, len(students))
	for _, s := range students {
		if s != nil {
			out = append(out, *FromStudent(s))
		}
	}
	return out
}

// ReferencedUserID is the existing user the request points at, or 0.
func (r *CreateStudentRequest) ReferencedUserID() int64 {
	if r.User != nil {
		return firstID(r.UserID, r.User.ID)
	}
	return r.UserID
}

// ReferencedBatchID is the batch the new student joins, or 0.
func (r *CreateStudentRequest) ReferencedBatchID() int64 {
	if id, ok := providedID(r.BatchID); ok {
		return id
	}
	if r.Batch != nil && r.Batch.ID > 0 {
		return r.Batch.ID
	}
	return 0
}

// ToStudent builds the new student row
func (r *CreateStudentRequest) ToStudent(userID int64) *models.Student {
	s := &models.Student{UserID: userID}
	if id := r.ReferencedBatchID(); id > 0 {
		s.BatchID = int64Ptr(id)
	}
	return s
}

// NewUserID is the user the update moves the student to, if any
func (r *UpdateStudentRequest) NewUserID() (int64, bool) {
	return providedID(r.UserID)
}

// NewBatchID is the batch the update moves the student to, if any
func (r *UpdateStudentRequest) NewBatchID() (int64, bool) {
	if id, ok := providedID(r.BatchID); ok {
		return id, true
	}
	if r.Batch != nil && r.Batch.ID > 0 {
		return r.Batch.ID, true
	}
	return 0, false
}

// Apply copies the provided fields onto s
func (r *UpdateStudentRequest) Apply(s *models.Student) {
	if id, ok := r.NewUserID(); ok {
		s.UserID = id
	}
	if id, ok := r.NewBatchID(); ok {
		s.BatchID = int64Ptr(id)
	}
}
