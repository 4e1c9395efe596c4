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

// TeacherRepository handles teacher database operations
type TeacherRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(conn db.DBTX) *TeacherRepository {
	return &TeacherRepository{
		db: conn,
		sb: statementBuilder(),
	}
}

func (r *TeacherRepository) selectTeachers() squirrel.SelectBuilder {
	return r.sb.Select(teacherColumns("t", "u")...).
		From("teachers t").
		LeftJoin("users u ON u.id = t.user_id")
}

// CreateTeacher inserts a teacher profile for an existing user
func (r *TeacherRepository) CreateTeacher(ctx context.Context, teacher *models.Teacher) (int64, error) {
	sql, args, err := r.sb.Insert("teachers").
		Columns("user_id", "subject_specialization").
		Values(teacher.UserID, teacher.SubjectSpecialization).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create teacher SQL")
		return 0, fmt.Errorf("failed to build create teacher query: %w", err)
	}

	if err := db.Conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&teacher.ID); err != nil {
		switch {
		case dberrors.IsDuplicateKeyError(err):
			return 0, apperrors.ErrUserAlreadyLinked
		case dberrors.IsForeignKeyError(err):
			return 0, apperrors.NewDependencyMissingError("user does not exist")
		}
		logger.Error().Err(err).Int64("userID", teacher.UserID).Msg("Error executing create teacher query")
		return 0, fmt.Errorf("error creating teacher: %w", err)
	}
	return teacher.ID, nil
}

// GetTeacherByID retrieves a teacher with its user, and its courses at DepthFull
func (r *TeacherRepository) GetTeacherByID(ctx context.Context, id int64, depth Depth) (*models.Teacher, error) {
	sql, args, err := r.selectTeachers().
		Where(squirrel.Eq{"t.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get teacher by ID SQL")
		return nil, fmt.Errorf("failed to build get teacher query: %w", err)
	}

	var row nullTeacher
	if err := db.Conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(row.targets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		logger.Error().Err(err).Int64("teacherID", id).Msg("Error scanning teacher row")
		return nil, fmt.Errorf("error getting teacher by ID: %w", err)
	}

	teacher := row.model()
	if depth == DepthFull {
		if err := r.attachCourses(ctx, []*models.Teacher{teacher}); err != nil {
			return nil, err
		}
	}
	return teacher, nil
}

// ListTeachers retrieves all teachers ordered by id
func (r *TeacherRepository) ListTeachers(ctx context.Context, depth Depth) ([]*models.Teacher, error) {
	sql, args, err := r.selectTeachers().
		OrderBy("t.id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list teachers SQL")
		return nil, fmt.Errorf("failed to build list teachers query: %w", err)
	}

	rows, err := db.Conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list teachers query")
		return nil, fmt.Errorf("error querying teachers: %w", err)
	}
	defer rows.Close()

	teachers := []*models.Teacher{}
	for rows.Next() {
		var row nullTeacher
		if err := rows.Scan(row.targets()...); err != nil {
			logger.Error().Err(err).Msg("Error scanning teacher row during list")
			return nil, fmt.Errorf("error scanning teacher row: %w", err)
		}
		teachers = append(teachers, row.model())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teacher rows: %w", err)
	}
	rows.Close()

	if depth == DepthFull && len(teachers) > 0 {
		if err := r.attachCourses(ctx, teachers); err != nil {
			return nil, err
		}
	}
	return teachers, nil
}

// attachCourses loads the shallow courses of every teacher in one query
func (r *TeacherRepository) attachCourses(ctx context.Context, teachers []*models.Teacher) error {
	ids := make([]int64, 0, len(teachers))
	byID := make(map[int64]*models.Teacher, len(teachers))
	for _, t := range teachers {
		ids = append(ids, t.ID)
		byID[t.ID] = t
		t.Courses = []*models.Course{}
	}

	sql, args, err := r.sb.Select(courseColumns(DepthShallow, "c", "", "")...).
		From("courses c").
		Where(squirrel.Expr("c.teacher_id = ANY(?)", ids)).
		OrderBy("c.id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build teacher courses query: %w", err)
	}

	rows, err := db.Conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing teacher courses query")
		return fmt.Errorf("error querying teacher courses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row nullCourse
		if err := rows.Scan(row.targets(DepthShallow)...); err != nil {
			return fmt.Errorf("error scanning teacher course row: %w", err)
		}
		course := row.model()
		if course.TeacherID == nil {
			continue
		}
		if t, ok := byID[*course.TeacherID]; ok {
			t.Courses = append(t.Courses, course)
		}
	}
	return rows.Err()
}

// UpdateTeacher writes every column of teacher back to its row
func (r *TeacherRepository) UpdateTeacher(ctx context.Context, teacher *models.Teacher) error {
	sql, args, err := r.sb.Update("teachers").
		SetMap(map[string]interface{}{
			"user_id":                teacher.UserID,
			"subject_specialization": teacher.SubjectSpecialization,
		}).
		Where(squirrel.Eq{"id": teacher.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update teacher SQL")
		return fmt.Errorf("failed to build update teacher query: %w", err)
	}

	tag, err := db.Conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		switch {
		case dberrors.IsDuplicateKeyError(err):
			return apperrors.ErrUserAlreadyLinked
		case dberrors.IsForeignKeyError(err):
			return apperrors.NewDependencyMissingError("user does not exist")
		}
		logger.Error().Err(err).Int64("teacherID", teacher.ID).Msg("Error executing update teacher query")
		return fmt.Errorf("error updating teacher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}

// DeleteTeacher deletes a teacher; its courses keep existing without one
func (r *TeacherRepository) DeleteTeacher(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, r.sb, "teachers", id, apperrors.ErrTeacherNotFound)
}

// TeacherExists checks if a teacher exists
func (r *TeacherRepository) TeacherExists(ctx context.Context, id int64) (bool, error) {
	return existsByID(ctx, r.db, r.sb, "teachers", id)
}
