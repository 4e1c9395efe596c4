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

// StudentRepository handles student database operations
type StudentRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(conn db.DBTX) *StudentRepository {
	return &StudentRepository{
		db: conn,
		sb: statementBuilder(),
	}
}

type studentRow struct {
	ID      int64
	UserID  int64
	BatchID *int64
	User    nullUser
	Batch   nullBatch
}

func (s *studentRow) targets(depth Depth) []any {
	t := append([]any{&s.ID, &s.UserID, &s.BatchID}, s.User.targets()...)
	if depth == DepthFull {
		t = append(t, s.Batch.targets(DepthFull)...)
	}
	return t
}

func (s *studentRow) model() *models.Student {
	return &models.Student{
		ID:      s.ID,
		UserID:  s.UserID,
		BatchID: s.BatchID,
		User:    s.User.model(),
		Batch:   s.Batch.model(),
	}
}

func (r *StudentRepository) selectStudents(depth Depth) squirrel.SelectBuilder {
	cols := append([]string{"s.id", "s.user_id", "s.batch_id"}, userColumns("u")...)
	if depth == DepthFull {
		cols = append(cols, batchColumns(DepthFull, "b", "bc", "bt", "btu")...)
	}

	q := r.sb.Select(cols...).
		From("students s").
		LeftJoin("users u ON u.id = s.user_id")
	if depth == DepthFull {
		q = q.LeftJoin("batches b ON b.id = s.batch_id").
			LeftJoin("courses bc ON bc.id = b.course_id")
		for _, join := range courseJoins("bc", "bt", "btu") {
			q = q.LeftJoin(join)
		}
	}
	return q
}

// CreateStudent inserts a student profile for an existing user
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("user_id", "batch_id").
		Values(student.UserID, student.BatchID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := db.Conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&student.ID); err != nil {
		switch {
		case dberrors.IsDuplicateKeyError(err):
			return 0, apperrors.ErrUserAlreadyLinked
		case dberrors.IsForeignKeyError(err):
			return 0, apperrors.NewDependencyMissingError("user or batch does not exist")
		}
		logger.Error().Err(err).Int64("userID", student.UserID).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}
	return student.ID, nil
}

// GetStudentByID retrieves a student with its user, plus batch graph and enrollments at DepthFull
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64, depth Depth) (*models.Student, error) {
	sql, args, err := r.selectStudents(depth).
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	var row studentRow
	if err := db.Conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(row.targets(depth)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	student := row.model()
	if depth == DepthFull {
		if err := r.attachEnrollments(ctx, []*models.Student{student}); err != nil {
			return nil, err
		}
	}
	return student, nil
}

// ListStudents retrieves all students ordered by id
func (r *StudentRepository) ListStudents(ctx context.Context, depth Depth) ([]*models.Student, error) {
	sql, args, err := r.selectStudents(depth).
		OrderBy("s.id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := db.Conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		var row studentRow
		if err := rows.Scan(row.targets(depth)...); err != nil {
			logger.Error().Err(err).Msg("Error scanning student row during list")
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, row.model())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	rows.Close()

	if depth == DepthFull && len(students) > 0 {
		if err := r.attachEnrollments(ctx, students); err != nil {
			return nil, err
		}
	}
	return students, nil
}

// attachEnrollments loads enrollments with their full course graph for all students in one query
func (r *StudentRepository) attachEnrollments(ctx context.Context, students []*models.Student) error {
	ids := make([]int64, 0, len(students))
	byID := make(map[int64]*models.Student, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
		byID[s.ID] = s
		s.Enrollments = []*models.Enrollment{}
	}

	cols := append([]string{"e.id", "e.student_id", "e.course_id", "e.enrolled_at"},
		courseColumns(DepthFull, "c", "t", "tu")...)
	q := r.sb.Select(cols...).
		From("student_courses e").
		LeftJoin("courses c ON c.id = e.course_id")
	for _, join := range courseJoins("c", "t", "tu") {
		q = q.LeftJoin(join)
	}
	sql, args, err := q.Where(squirrel.Expr("e.student_id = ANY(?)", ids)).
		OrderBy("e.id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build enrollments query: %w", err)
	}

	rows, err := db.Conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing enrollments query")
		return fmt.Errorf("error querying enrollments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e      models.Enrollment
			course nullCourse
		)
		targets := append([]any{&e.ID, &e.StudentID, &e.CourseID, &e.EnrolledAt}, course.targets(DepthFull)...)
		if err := rows.Scan(targets...); err != nil {
			return fmt.Errorf("error scanning enrollment row: %w", err)
		}
		e.Course = course.model()
		if s, ok := byID[e.StudentID]; ok {
			s.Enrollments = append(s.Enrollments, &e)
		}
	}
	return rows.Err()
}

// UpdateStudent writes every column of student back to its row
func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"user_id":  student.UserID,
			"batch_id": student.BatchID,
		}).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	tag, err := db.Conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		switch {
		case dberrors.IsDuplicateKeyError(err):
			return apperrors.ErrUserAlreadyLinked
		case dberrors.IsForeignKeyError(err):
			return apperrors.NewDependencyMissingError("user or batch does not exist")
		}
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// DeleteStudent deletes a student together with its enrollments
func (r *StudentRepository) DeleteStudent(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, r.sb, "students", id, apperrors.ErrStudentNotFound)
}

// StudentExists checks if a student exists
func (r *StudentRepository) StudentExists(ctx context.Context, id int64) (bool, error) {
	return existsByID(ctx, r.db, r.sb, "students", id)
}
