package dto

import "github.com/yigit/institute/internal/app/models"

// StudentReportDTO is one row of the student enrollment report
type StudentReportDTO struct {
	StudentID       int64   `json:"studentId"`
	UserName        string  `json:"userName"`
	BatchName       *string `json:"batchName"`
	EnrolledCourses int64   `json:"enrolledCourses"`
}

// FromStudentReports projects report rows
func FromStudentReports(rows []*models.StudentReport) []StudentReportDTO {
	out := make([]StudentReportDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, StudentReportDTO{
			StudentID:       r.StudentID,
			UserName:        r.UserName,
			BatchName:       r.BatchName,
			EnrolledCourses: r.EnrolledCourses,
		})
	}
	return out
}
