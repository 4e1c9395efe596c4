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

// TeacherService defines the interface for teacher-related operations
type TeacherService interface {
	ListTeachers(ctx context.Context) ([]dto.TeacherDTO, error)
	GetTeacher(ctx context.Context, id int64) (*dto.TeacherDTO, error)
	CreateTeacher(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherDTO, error)
	UpdateTeacher(ctx context.Context, id int64, req *dto.UpdateTeacherRequest) (*dto.TeacherDTO, error)
	DeleteTeacher(ctx context.Context, id int64) error
}

type teacherServiceImpl struct {
	teacherRepo repositories.ITeacherRepository
	users       *userProvisioner
	tx          repositories.TxManager
	logger      zerolog.Logger
}

// NewTeacherService creates a new teacher service instance
func NewTeacherService(
	teacherRepo repositories.ITeacherRepository,
	users *userProvisioner,
	tx repositories.TxManager,
	logger zerolog.Logger,
) TeacherService {
	return &teacherServiceImpl{
		teacherRepo: teacherRepo,
		users:       users,
		tx:          tx,
		logger:      logger,
	}
}

func (s *teacherServiceImpl) ListTeachers(ctx context.Context) ([]dto.TeacherDTO, error) {
	teachers, err := s.teacherRepo.ListTeachers(ctx, repositories.DepthFull)
	if err != nil {
		return nil, fmt.Errorf("error retrieving teachers: %w", err)
	}
	return dto.FromTeachers(teachers), nil
}

func (s *teacherServiceImpl) GetTeacher(ctx context.Context, id int64) (*dto.TeacherDTO, error) {
	if err := validateID(id, "teacher"); err != nil {
		return nil, err
	}
	teacher, err := s.teacherRepo.GetTeacherByID(ctx, id, repositories.DepthFull)
	if err != nil {
		return nil, err
	}
	return dto.FromTeacher(teacher), nil
}

// CreateTeacher links a teacher profile to an existing user, or to a user created in the same transaction
func (s *teacherServiceImpl) CreateTeacher(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherDTO, error) {
	if req.SubjectSpecialization == "" {
		return nil, apperrors.NewValidationError("subjectSpecialization is required")
	}

	var teacher *models.Teacher
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		userID, err := s.users.resolve(ctx, req.ReferencedUserID(), req.User, models.RoleTeacher)
		if err != nil {
			return err
		}
		teacher = req.ToTeacher(userID)
		_, err = s.teacherRepo.CreateTeacher(ctx, teacher)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("teacherID", teacher.ID).Int64("userID", teacher.UserID).Msg("Teacher created")
	return s.GetTeacher(ctx, teacher.ID)
}

// UpdateTeacher applies the provided fields; a new userId must resolve to an existing user
func (s *teacherServiceImpl) UpdateTeacher(ctx context.Context, id int64, req *dto.UpdateTeacherRequest) (*dto.TeacherDTO, error) {
	if err := validateID(id, "teacher"); err != nil {
		return nil, err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		teacher, err := s.teacherRepo.GetTeacherByID(ctx, id, repositories.DepthShallow)
		if err != nil {
			return err
		}
		if userID, ok := req.NewUserID(); ok {
			if err := requireExisting(ctx, s.users.exists, "user", userID); err != nil {
				return err
			}
		}
		req.Apply(teacher)
		return s.teacherRepo.UpdateTeacher(ctx, teacher)
	})
	if err != nil {
		return nil, err
	}
	return s.GetTeacher(ctx, id)
}

func (s *teacherServiceImpl) DeleteTeacher(ctx context.Context, id int64) error {
	if err := validateID(id, "teacher"); err != nil {
		return err
	}
	if err := s.teacherRepo.DeleteTeacher(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("teacherID", id).Msg("Teacher deleted")
	return nil
}
