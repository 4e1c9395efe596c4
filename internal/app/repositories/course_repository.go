package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/institute/internal/app/models"
	"github.com/yigit/institute/internal/db"
	"github.com/yigit/institute/internal/pkg/apperrors"
	"github.com/yigit/institute/internal/pkg/dberrors"
	"github.com/yigit/institute/internal/pkg/logger"
)

// CourseRepository handles course database operations
type CourseRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(conn db.DBTX) *CourseRepository {
	return &CourseRepository{
		db: conn,
		sb: statementBuilder(),
	}
}

func (r *CourseRepository) selectCourses(depth Depth) squirrel.SelectBuilder {
	q := r.sb.Select(courseColumns(depth, "c", "t", "tu")...).From("courses c")
	if depth == DepthFull {
		for _, join := range courseJoins("c", "t", "tu") {
			q = q.LeftJoin(join)
		}
	}
	return q
}

// CreateCourse inserts a course and returns its id
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("course_name", "description", "teacher_id").
		Values(course.Name, course.Description, course.TeacherID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := db.Conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&course.ID); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return 0, apperrors.NewDependencyMissingError("teacher does not exist")
		}
		logger.Error().Err(err).Str("name", course.Name).Msg("Error executing create course query")
		return 0, fmt.Errorf("error creating course: %w", err)
	}
	return course.ID, nil
}

// GetCourseByID retrieves a course, with teacher and teacher user at DepthFull
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64, depth Depth) (*models.Course, error) {
	sql, args, err := r.selectCourses(depth).
		Where(squirrel.Eq{"c.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	var row nullCourse
	if err := db.Conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(row.targets(depth)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return row.model(), nil
}

// ListCourses retrieves all courses ordered by id
func (r *CourseRepository) ListCourses(ctx context.Context, depth Depth) ([]*models.Course, error) {
	sql, args, err := r.selectCourses(depth).
		OrderBy("c.id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := db.Conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		var row nullCourse
		if err := rows.Scan(row.targets(depth)...); err != nil {
			logger.Error().Err(err).Msg("Error scanning course row during list")
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, row.model())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// UpdateCourse writes every column of course back to its row
func (r *CourseRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"course_name": course.Name,
			"description": course.Description,
			"teacher_id":  course.TeacherID,
		}).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update course SQL")
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	tag, err := db.Conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.NewDependencyMissingError("teacher does not exist")
		}
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// DeleteCourse deletes a course; batches keep existing and enrollments go with it
func (r *CourseRepository) DeleteCourse(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, r.sb, "courses", id, apperrors.ErrCourseNotFound)
}

// CourseExists checks if a course exists
func (r *CourseRepository) CourseExists(ctx context.Context, id int64) (bool, error) {
	return existsByID(ctx, r.db, r.sb, "courses", id)
}
