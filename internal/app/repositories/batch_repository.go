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

// BatchRepository handles batch database operations
type BatchRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewBatchRepository creates a new BatchRepository
func NewBatchRepository(conn db.DBTX) *BatchRepository {
	return &BatchRepository{
		db: conn,
		sb: statementBuilder(),
	}
}

func (r *BatchRepository) selectBatches(depth Depth) squirrel.SelectBuilder {
	q := r.sb.Select(batchColumns(depth, "b", "c", "t", "tu")...).From("batches b")
	if depth == DepthFull {
		q = q.LeftJoin("courses c ON c.id = b.course_id")
		for _, join := range courseJoins("c", "t", "tu") {
			q = q.LeftJoin(join)
		}
	}
	return q
}

// CreateBatch inserts a batch and returns its id
func (r *BatchRepository) CreateBatch(ctx context.Context, batch *models.Batch) (int64, error) {
	sql, args, err := r.sb.Insert("batches").
		Columns("batch_name", "batch_timing", "batch_type", "course_id").
		Values(batch.Name, batch.Timing, batch.Type, batch.CourseID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create batch SQL")
		return 0, fmt.Errorf("failed to build create batch query: %w", err)
	}

	if err := db.Conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&batch.ID); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return 0, apperrors.NewDependencyMissingError("course does not exist")
		}
		logger.Error().Err(err).Str("name", batch.Name).Msg("Error executing create batch query")
		return 0, fmt.Errorf("error creating batch: %w", err)
	}
	return batch.ID, nil
}

// GetBatchByID retrieves a batch, with its course graph at DepthFull
func (r *BatchRepository) GetBatchByID(ctx context.Context, id int64, depth Depth) (*models.Batch, error) {
	sql, args, err := r.selectBatches(depth).
		Where(squirrel.Eq{"b.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get batch by ID SQL")
		return nil, fmt.Errorf("failed to build get batch query: %w", err)
	}

	var row nullBatch
	if err := db.Conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(row.targets(depth)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBatchNotFound
		}
		logger.Error().Err(err).Int64("batchID", id).Msg("Error scanning batch row")
		return nil, fmt.Errorf("error getting batch by ID: %w", err)
	}
	return row.model(), nil
}

// ListBatches retrieves all batches ordered by id
func (r *BatchRepository) ListBatches(ctx context.Context, depth Depth) ([]*models.Batch, error) {
	return r.list(ctx, r.selectBatches(depth).OrderBy("b.id ASC"), depth)
}

// ListBatchesForStudent returns the batches whose course the student is enrolled in
func (r *BatchRepository) ListBatchesForStudent(ctx context.Context, studentID int64) ([]*models.Batch, error) {
	q := r.selectBatches(DepthFull).
		Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM student_courses sc WHERE sc.student_id = ? AND sc.course_id = b.course_id)",
			studentID,
		)).
		OrderBy("b.id ASC")
	return r.list(ctx, q, DepthFull)
}

func (r *BatchRepository) list(ctx context.Context, q squirrel.SelectBuilder, depth Depth) ([]*models.Batch, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list batches SQL")
		return nil, fmt.Errorf("failed to build list batches query: %w", err)
	}

	rows, err := db.Conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list batches query")
		return nil, fmt.Errorf("error querying batches: %w", err)
	}
	defer rows.Close()

	batches := []*models.Batch{}
	for rows.Next() {
		var row nullBatch
		if err := rows.Scan(row.targets(depth)...); err != nil {
			logger.Error().Err(err).Msg("Error scanning batch row during list")
			return nil, fmt.Errorf("error scanning batch row: %w", err)
		}
		batches = append(batches, row.model())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating batch rows: %w", err)
	}
	return batches, nil
}

// UpdateBatch writes every column of batch back to its row
func (r *BatchRepository) UpdateBatch(ctx context.Context, batch *models.Batch) error {
	sql, args, err := r.sb.Update("batches").
		SetMap(map[string]interface{}{
			"batch_name":   batch.Name,
			"batch_timing": batch.Timing,
			"batch_type":   batch.Type,
			"course_id":    batch.CourseID,
		}).
		Where(squirrel.Eq{"id": batch.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update batch SQL")
		return fmt.Errorf("failed to build update batch query: %w", err)
	}

	tag, err := db.Conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.NewDependencyMissingError("course does not exist")
		}
		logger.Error().Err(err).Int64("batchID", batch.ID).Msg("Error executing update batch query")
		return fmt.Errorf("error updating batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrBatchNotFound
	}
	return nil
}

// DeleteBatch deletes a batch; its students stay, without a batch
func (r *BatchRepository) DeleteBatch(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, r.sb, "batches", id, apperrors.ErrBatchNotFound)
}

// BatchExists checks if a batch exists
func (r *BatchRepository) BatchExists(ctx context.Context, id int64) (bool, error) {
	return existsByID(ctx, r.db, r.sb, "batches", id)
}
