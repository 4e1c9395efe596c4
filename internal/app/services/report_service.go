package services

import (
	"context"
	"fmt"

	"github.com/yigit/institute/internal/app/models/dto"
	"github.com/yigit/institute/internal/app/repositories"
)

// ReportService serves read-only aggregate views
type ReportService interface {
	StudentReport(ctx context.Context) ([]dto.StudentReportDTO, error)
}

type reportServiceImpl struct {
	reportRepo repositories.IReportRepository
}

// NewReportService creates a new report service instance
func NewReportService(reportRepo repositories.IReportRepository) ReportService {
	return &reportServiceImpl{reportRepo: reportRepo}
}

// StudentReport lists every student with batch name and number of enrollments
func (s *reportServiceImpl) StudentReport(ctx context.Context) ([]dto.StudentReportDTO, error) {
	rows, err := s.reportRepo.StudentReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("error building student report: %w", err)
	}
	return dto.FromStudentReports(rows), nil
}
