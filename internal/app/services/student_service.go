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

// StudentService defines the interface for student-related operations
type StudentService interface {
	ListStudents(ctx context.Context) ([]dto.StudentDTO, error)
	GetStudent(ctx context.Context, id int64) (*dto.StudentDTO, error)
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentDTO, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*dto.StudentDTO, error)
	DeleteStudent(ctx context.Context, id int64) error
	Enroll(ctx context.Context, req *dto.EnrollRequest) (*dto.EnrollmentDTO, error)
	BatchesForStudent(ctx context.Context, id int64) ([]dto.BatchDTO, error)
}

// StudentServiceDeps lists the repositories the student service reads and writes
type StudentServiceDeps struct {
	Students    repositories.IStudentRepository
	Batches     repositories.IBatchRepository
	Courses     repositories.ICourseRepository
	Enrollments repositories.IEnrollmentRepository
	Users       *userProvisioner
	Tx          repositories.TxManager
}

type studentServiceImpl struct {
	deps   StudentServiceDeps
	logger zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(deps StudentServiceDeps, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{deps: deps, logger: logger}
}

func (s *studentServiceImpl) ListStudents(ctx context.Context) ([]dto.StudentDTO, error) {
	students, err := s.deps.Students.ListStudents(ctx, repositories.DepthFull)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return dto.FromStudents(students), nil
}

func (s *studentServiceImpl) GetStudent(ctx context.Context, id int64) (*dto.StudentDTO, error) {
	if err := validateID(id, "student"); err != nil {
		return nil, err
	}
	student, err := s.deps.Students.GetStudentByID(ctx, id, repositories.DepthFull)
	if err != nil {
		return nil, err
	}
	return dto.FromStudent(student), nil
}

// CreateStudent links a student profile to an existing or inline user, optionally placing it in a batch
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentDTO, error) {
	var student *models.Student
	err := s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if batchID := req.ReferencedBatchID(); batchID > 0 {
			if err := requireExisting(ctx, s.deps.Batches.BatchExists, "batch", batchID); err != nil {
				return err
			}
		}
		userID, err := s.deps.Users.resolve(ctx, req.ReferencedUserID(), req.User, models.RoleStudent)
		if err != nil {
			return err
		}
		student = req.ToStudent(userID)
		_, err = s.deps.Students.CreateStudent(ctx, student)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Int64("userID", student.UserID).Msg("Student created")
	return s.GetStudent(ctx, student.ID)
}

func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*dto.StudentDTO, error) {
	if err := validateID(id, "student"); err != nil {
		return nil, err
	}

	err := s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		student, err := s.deps.Students.GetStudentByID(ctx, id, repositories.DepthShallow)
		if err != nil {
			return err
		}
		if userID, ok := req.NewUserID(); ok {
			if err := requireExisting(ctx, s.deps.Users.exists, "user", userID); err != nil {
				return err
			}
		}
		if batchID, ok := req.NewBatchID(); ok {
			if err := requireExisting(ctx, s.deps.Batches.BatchExists, "batch", batchID); err != nil {
				return err
			}
		}
		req.Apply(student)
		return s.deps.Students.UpdateStudent(ctx, student)
	})
	if err != nil {
		return nil, err
	}
	return s.GetStudent(ctx, id)
}

func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if err := validateID(id, "student"); err != nil {
		return err
	}
	if err := s.deps.Students.DeleteStudent(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}

// Enroll records that a student takes a course. Repeated enrollments are kept as separate rows.
func (s *studentServiceImpl) Enroll(ctx context.Context, req *dto.EnrollRequest) (*dto.EnrollmentDTO, error) {
	if err := validateID(req.StudentID, "student"); err != nil {
		return nil, err
	}
	if err := validateID(req.CourseID, "course"); err != nil {
		return nil, err
	}

	enrollment := req.ToEnrollment()
	err := s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := requireExisting(ctx, s.deps.Students.StudentExists, "student", req.StudentID); err != nil {
			return err
		}
		if err := requireExisting(ctx, s.deps.Courses.CourseExists, "course", req.CourseID); err != nil {
			return err
		}
		_, err := s.deps.Enrollments.CreateEnrollment(ctx, enrollment)
		return err
	})
	if err != nil {
		return nil, err
	}

	course, err := s.deps.Courses.GetCourseByID(ctx, enrollment.CourseID, repositories.DepthShallow)
	if err != nil {
		return nil, err
	}
	enrollment.Course = course

	s.logger.Info().Int64("studentID", req.StudentID).Int64("courseID", req.CourseID).Msg("Student enrolled")
	return dto.FromEnrollment(enrollment), nil
}

// BatchesForStudent lists the batches running courses the student is enrolled in
func (s *studentServiceImpl) BatchesForStudent(ctx context.Context, id int64) ([]dto.BatchDTO, error) {
	if err := validateID(id, "student"); err != nil {
		return nil, err
	}
	exists, err := s.deps.Students.StudentExists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error checking student: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrStudentNotFound
	}

	batches, err := s.deps.Batches.ListBatchesForStudent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student batches: %w", err)
	}
	return dto.FromBatches(batches), nil
}
