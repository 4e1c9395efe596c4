package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/institute/internal/app/models"
	"github.com/yigit/institute/internal/db"
	"github.com/yigit/institute/internal/pkg/logger"
)

// ReportRepository serves aggregate read models
type ReportRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(conn db.DBTX) *ReportRepository {
	return &ReportRepository{
		db: conn,
		sb: statementBuilder(),
	}
}

// StudentReports returns one row per student with its user name, batch name and enrollment count
func (r *ReportRepository) StudentReports(ctx context.Context) ([]*models.StudentReport, error) {
	sql, args, err := r.sb.Select(
		"s.id",
		"u.name",
		"b.batch_name",
		"(SELECT COUNT(*) FROM student_courses sc WHERE sc.student_id = s.id)",
	).
		From("students s").
		Join("users u ON u.id = s.user_id").
		LeftJoin("batches b ON b.id = s.batch_id").
		OrderBy("s.id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building student report SQL")
		return nil, fmt.Errorf("failed to build student report query: %w", err)
	}

	rows, err := db.Conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing student report query")
		return nil, fmt.Errorf("error querying student report: %w", err)
	}
	defer rows.Close()

	reports := []*models.StudentReport{}
	for rows.Next() {
		report := &models.StudentReport{}
		if err := rows.Scan(&report.StudentID, &report.UserName, &report.BatchName, &report.EnrolledCourses); err != nil {
			return nil, fmt.Errorf("error scanning student report row: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student report rows: %w", err)
	}
	return reports, nil
}
