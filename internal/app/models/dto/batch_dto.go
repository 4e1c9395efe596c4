package dto

import "github.com/yigit/institute/internal/app/models"

// BatchDTO is the wire shape of a batch
type BatchDTO struct {
	ID       int64      `json:"batchId" example:"4"`
	Name     string     `json:"batchName" example:"Evening A"`
	Timing   string     `json:"batchTiming" example:"18:00-20:00"`
	Type     string     `json:"batchType" example:"Weekday"`
	CourseID *int64     `json:"courseId,omitempty" example:"3"`
	Course   *CourseDTO `json:"course,omitempty"`
}

// BatchRef points at an existing batch from inside another DTO
type BatchRef struct {
	ID int64 `json:"batchId"`
}

// CreateBatchRequest needs a course, given as courseId or course.courseId.
type CreateBatchRequest struct {
	Name     string     `json:"batchName" binding:"required,max=200"`
	Timing   string     `json:"batchTiming"`
	Type     string     `json:"batchType"`
	CourseID int64      `json:"courseId" binding:"omitempty,gt=0"`
	Course   *CourseRef `json:"course"`
}

// UpdateBatchRequest carries the fields to change; omitted fields stay as stored.
type UpdateBatchRequest struct {
	Name     *string    `json:"batchName"`
	Timing   *string    `json:"batchTiming"`
	Type     *string    `json:"batchType"`
	CourseID *int64     `json:"courseId"`
	Course   *CourseRef `json:"course"`
}

// FromBatch projects a batch with whatever part of its graph is loaded
func FromBatch(b *models.Batch) *BatchDTO {
	if b == nil {
		return nil
	}
	out := &BatchDTO{
		ID:     b.ID,
		Name:   b.Name,
		Timing: b.Timing,
		Type:   b.Type,
		Course: FromCourse(b.Course),
	}
	if b.CourseID != nil {
		out.CourseID = int64Ptr(*b.CourseID)
	}
	return out
}

// FromBatches projects a list of batches
func FromBatches(batches []*models.Batch) []BatchDTO {
	out := make([]BatchDTO, 0, len(batches))
	for _, b := range batches {
		if b != nil {
			out = append(out, *FromBatch(b))
		}
	}
	return out
}

// ReferencedCourseID is the course the new batch points at, or 0.
func (r *CreateBatchRequest) ReferencedCourseID() int64 {
	if r.Course != nil {
		return firstID(r.CourseID, r.Course.ID)
	}
	return r.CourseID
}

// ToBatch builds the new batch row
func (r *CreateBatchRequest) ToBatch(courseID int64) *models.Batch {
	return &models.Batch{
		Name:     r.Name,
		Timing:   r.Timing,
		Type:     r.Type,
		CourseID: int64Ptr(courseID),
	}
}

// NewCourseID is the course the update moves the batch to, if any
func (r *UpdateBatchRequest) NewCourseID() (int64, bool) {
	if id, ok := providedID(r.CourseID); ok {
		return id, true
	}
	if r.Course != nil && r.Course.ID > 0 {
		return r.Course.ID, true
	}
	return 0, false
}

// Apply copies the provided fields onto b
func (r *UpdateBatchRequest) Apply(b *models.Batch) {
	if v, ok := providedString(r.Name); ok {
		b.Name = v
	}
	if v, ok := providedString(r.Timing); ok {
		b.Timing = v
	}
	if v, ok := providedString(r.Type); ok {
		b.Type = v
	}
	if id, ok := r.NewCourseID(); ok {
		b.CourseID = int64Ptr(id)
	}
}
