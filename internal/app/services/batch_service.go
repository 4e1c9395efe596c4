package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/institute/internal/app/models"
	"github.com/yigit/institute/internal/app/models/dto"
	"github.com/yigit/institute/internal/app/repositories"
	"github.com/yigit/institute/internal/pkg/apperrors"
)

// BatchService defines the interface for batch-related operations
type BatchService interface {
	ListBatches(ctx context.Context) ([]dto.BatchDTO, error)
	GetBatch(ctx context.Context, id int64) (*dto.BatchDTO, error)
	CreateBatch(ctx context.Context, req *dto.CreateBatchRequest) (*dto.BatchDTO, error)
	UpdateBatch(ctx context.Context, id int64, req *dto.UpdateBatchRequest) (*dto.BatchDTO, error)
	DeleteBatch(ctx context.Context, id int64) error
}

type batchServiceImpl struct {
	batchRepo  repositories.IBatchRepository
	courseRepo repositories.ICourseRepository
	tx         repositories.TxManager
	logger     zerolog.Logger
}

// NewBatchService creates a new batch service instance
func NewBatchService(
	batchRepo repositories.IBatchRepository,
	courseRepo repositories.ICourseRepository,
	tx repositories.TxManager,
	logger zerolog.Logger,
) BatchService {
	return &batchServiceImpl{
		batchRepo:  batchRepo,
		courseRepo: courseRepo,
		tx:         tx,
		logger:     logger,
	}
}

func (s *batchServiceImpl) ListBatches(ctx context.Context) ([]dto.BatchDTO, error) {
	batches, err := s.batchRepo.ListBatches(ctx, repositories.DepthFull)
	if err != nil {
		return nil, fmt.Errorf("error retrieving batches: %w", err)
	}
	return dto.FromBatches(batches), nil
}

func (s *batchServiceImpl) GetBatch(ctx context.Context, id int64) (*dto.BatchDTO, error) {
	if err := validateID(id, "batch"); err != nil {
		return nil, err
	}
	batch, err := s.batchRepo.GetBatchByID(ctx, id, repositories.DepthFull)
	if err != nil {
		return nil, err
	}
	return dto.FromBatch(batch), nil
}

// CreateBatch requires an existing course, given as courseId or course.courseId
func (s *batchServiceImpl) CreateBatch(ctx context.Context, req *dto.CreateBatchRequest) (*dto.BatchDTO, error) {
	if req.Name == "" {
		return nil, apperrors.NewValidationError("batchName is required")
	}
	courseID := req.ReferencedCourseID()
	if courseID <= 0 {
		return nil, apperrors.NewValidationError("courseId is required")
	}

	var batch *models.Batch
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := requireExisting(ctx, s.courseRepo.CourseExists, "course", courseID); err != nil {
			return err
		}
		batch = req.ToBatch(courseID)
		_, err := s.batchRepo.CreateBatch(ctx, batch)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("batchID", batch.ID).Int64("courseID", courseID).Msg("Batch created")
	return s.GetBatch(ctx, batch.ID)
}

func (s *batchServiceImpl) UpdateBatch(ctx context.Context, id int64, req *dto.UpdateBatchRequest) (*dto.BatchDTO, error) {
	if err := validateID(id, "batch"); err != nil {
		return nil, err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		batch, err := s.batchRepo.GetBatchByID(ctx, id, repositories.DepthShallow)
		if err != nil {
			return err
		}
		if courseID, ok := req.NewCourseID(); ok {
			if err := requireExisting(ctx, s.courseRepo.CourseExists, "course", courseID); err != nil {
				return err
			}
		}
		req.Apply(batch)
		return s.batchRepo.UpdateBatch(ctx, batch)
	})
	if err != nil {
		return nil, err
	}
	return s.GetBatch(ctx, id)
}

func (s *batchServiceImpl) DeleteBatch(ctx context.Context, id int64) error {
	if err := validateID(id, "batch"); err != nil {
		return err
	}
	if err := s.batchRepo.DeleteBatch(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("batchID", id).Msg("Batch deleted")
	return nil
}
