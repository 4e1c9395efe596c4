package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/institute/internal/app/models"
	"github.com/yigit/institute/internal/db"
)

// Depth controls how much of the association graph a read resolves.
type Depth int

const (
	// DepthShallow loads the row and its owning user, nothing further.
	DepthShallow Depth = iota
	// DepthFull loads every association down to the teachers' users.
	DepthFull
)

// IUserRepository defines user persistence
type IUserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// ITeacherRepository defines teacher persistence
type ITeacherRepository interface {
	CreateTeacher(ctx context.Context, teacher *models.Teacher) (int64, error)
	GetTeacherByID(ctx context.Context, id int64, depth Depth) (*models.Teacher, error)
	ListTeachers(ctx context.Context, depth Depth) ([]*models.Teacher, error)
	UpdateTeacher(ctx context.Context, teacher *models.Teacher) error
	DeleteTeacher(ctx context.Context, id int64) error
	TeacherExists(ctx context.Context, id int64) (bool, error)
}

// ICourseRepository defines course persistence
type ICourseRepository interface {
	CreateCourse(ctx context.Context, course *models.Course) (int64, error)
	GetCourseByID(ctx context.Context, id int64, depth Depth) (*models.Course, error)
	ListCourses(ctx context.Context, depth Depth) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id int64) error
	CourseExists(ctx context.Context, id int64) (bool, error)
}

// IBatchRepository defines batch persistence
type IBatchRepository interface {
	CreateBatch(ctx context.Context, batch *models.Batch) (int64, error)
	GetBatchByID(ctx context.Context, id int64, depth Depth) (*models.Batch, error)
	ListBatches(ctx context.Context, depth Depth) ([]*models.Batch, error)
	ListBatchesForStudent(ctx context.Context, studentID int64) ([]*models.Batch, error)
	UpdateBatch(ctx context.Context, batch *models.Batch) error
	DeleteBatch(ctx context.Context, id int64) error
	BatchExists(ctx context.Context, id int64) (bool, error)
}

// IStudentRepository defines student persistence
type IStudentRepository interface {
	CreateStudent(ctx context.Context, student *models.Student) (int64, error)
	GetStudentByID(ctx context.Context, id int64, depth Depth) (*models.Student, error)
	ListStudents(ctx context.Context, depth Depth) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, id int64) error
	StudentExists(ctx context.Context, id int64) (bool, error)
}

// IEnrollmentRepository defines enrollment persistence
type IEnrollmentRepository interface {
	CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) (int64, error)
}

// IReportRepository serves derived read-only views
type IReportRepository interface {
	StudentReports(ctx context.Context) ([]*models.StudentReport, error)
}

// TxManager runs a unit of work in one storage transaction
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       IUserRepository
	TeacherRepository    ITeacherRepository
	CourseRepository     ICourseRepository
	BatchRepository      IBatchRepository
	StudentRepository    IStudentRepository
	EnrollmentRepository IEnrollmentRepository
	ReportRepository     IReportRepository
	TxManager            TxManager
}

// NewRepositories initializes all Postgres repositories over one pool
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(database.Pool),
		TeacherRepository:    NewTeacherRepository(database.Pool),
		CourseRepository:     NewCourseRepository(database.Pool),
		BatchRepository:      NewBatchRepository(database.Pool),
		StudentRepository:    NewStudentRepository(database.Pool),
		EnrollmentRepository: NewEnrollmentRepository(database.Pool),
		ReportRepository:     NewReportRepository(database.Pool),
		TxManager:            database,
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

var (
	_ IUserRepository       = (*UserRepository)(nil)
	_ ITeacherRepository    = (*TeacherRepository)(nil)
	_ ICourseRepository     = (*CourseRepository)(nil)
	_ IBatchRepository      = (*BatchRepository)(nil)
	_ IStudentRepository    = (*StudentRepository)(nil)
	_ IEnrollmentRepository = (*EnrollmentRepository)(nil)
	_ IReportRepository     = (*ReportRepository)(nil)
)
