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

// CourseService defines the interface for course-related operations
type CourseService interface {
	ListCourses(ctx context.Context) ([]dto.CourseDTO, error)
	AvailableCourses(ctx context.Context) ([]dto.CourseDTO, error)
	GetCourse(ctx context.Context, id int64) (*dto.CourseDTO, error)
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseDTO, error)
	UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*dto.CourseDTO, error)
	DeleteCourse(ctx context.Context, id int64) error
}

type courseServiceImpl struct {
	courseRepo  repositories.ICourseRepository
	teacherRepo repositories.ITeacherRepository
	tx          repositories.TxManager
	logger      zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(
	courseRepo repositories.ICourseRepository,
	teacherRepo repositories.ITeacherRepository,
	tx repositories.TxManager,
	logger zerolog.Logger,
) CourseService {
	return &courseServiceImpl{
		courseRepo:  courseRepo,
		teacherRepo: teacherRepo,
		tx:          tx,
		logger:      logger,
	}
}

func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]dto.CourseDTO, error) {
	courses, err := s.courseRepo.ListCourses(ctx, repositories.DepthFull)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return dto.FromCourses(courses), nil
}

// AvailableCourses is the course catalogue without teacher details
func (s *courseServiceImpl) AvailableCourses(ctx context.Context) ([]dto.CourseDTO, error) {
	courses, err := s.courseRepo.ListCourses(ctx, repositories.DepthShallow)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return dto.FromCourses(courses), nil
}

func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*dto.CourseDTO, error) {
	if err := validateID(id, "course"); err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetCourseByID(ctx, id, repositories.DepthFull)
	if err != nil {
		return nil, err
	}
	return dto.FromCourse(course), nil
}

// CreateCourse requires an existing teacher, given as teacherId or teacher.teacherId
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseDTO, error) {
	if req.Name == "" {
		return nil, apperrors.NewValidationError("courseName is required")
	}
	teacherID := req.ReferencedTeacherID()
	if teacherID <= 0 {
		return nil, apperrors.NewValidationError("teacherId is required")
	}

	var course *models.Course
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := requireExisting(ctx, s.teacherRepo.TeacherExists, "teacher", teacherID); err != nil {
			return err
		}
		course = req.ToCourse(teacherID)
		_, err := s.courseRepo.CreateCourse(ctx, course)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", course.ID).Int64("teacherID", teacherID).Msg("Course created")
	return s.GetCourse(ctx, course.ID)
}

func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*dto.CourseDTO, error) {
	if err := validateID(id, "course"); err != nil {
		return nil, err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		course, err := s.courseRepo.GetCourseByID(ctx, id, repositories.DepthShallow)
		if err != nil {
			return err
		}
		if teacherID, ok := req.NewTeacherID(); ok {
			if err := requireExisting(ctx, s.teacherRepo.TeacherExists, "teacher", teacherID); err != nil {
				return err
			}
		}
		req.Apply(course)
		return s.courseRepo.UpdateCourse(ctx, course)
	})
	if err != nil {
		return nil, err
	}
	return s.GetCourse(ctx, id)
}

func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	if err := validateID(id, "course"); err != nil {
		return err
	}
	if err := s.courseRepo.DeleteCourse(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("courseID", id).Msg("Course deleted")
	return nil
}
