package memory

import (
	"context"

	"github.com/yigit/institute/internal/app/models"
	"github.com/yigit/institute/internal/app/repositories"
	"github.com/yigit/institute/internal/pkg/apperrors"
)

// UserRepository is the in-memory users table
type UserRepository struct{ s *Store }

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.st.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = r.s.nextID()
	user.CreatedAt = r.s.now()
	user.UpdatedAt = user.CreatedAt
	put(r.s, ctx, usersTable, user.ID, *user)
	return user.ID, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if u := r.s.user(id); u != nil {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.st.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := []*models.User{}
	for _, id := range sortedKeys(r.s.st.users) {
		users = append(users, r.s.user(id))
	}
	return users, nil
}

// TeacherRepository is the in-memory teachers table
type TeacherRepository struct{ s *Store }

func (r *TeacherRepository) checkTeacher(row teacherRow) error {
	if _, ok := r.s.st.users[row.UserID]; !ok {
		return apperrors.NewDependencyMissingError("user does not exist")
	}
	for _, t := range r.s.st.teachers {
		if t.UserID == row.UserID && t.ID != row.ID {
			return apperrors.ErrUserAlreadyLinked
		}
	}
	return nil
}

func (r *TeacherRepository) CreateTeacher(ctx context.Context, teacher *models.Teacher) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row := teacherRow{UserID: teacher.UserID, SubjectSpecialization: teacher.SubjectSpecialization}
	if err := r.checkTeacher(row); err != nil {
		return 0, err
	}
	row.ID = r.s.nextID()
	put(r.s, ctx, teachersTable, row.ID, row)
	teacher.ID = row.ID
	return row.ID, nil
}

func (r *TeacherRepository) GetTeacherByID(ctx context.Context, id int64, depth repositories.Depth) (*models.Teacher, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if t := r.s.teacher(id, depth); t != nil {
		return t, nil
	}
	return nil, apperrors.ErrTeacherNotFound
}

func (r *TeacherRepository) ListTeachers(ctx context.Context, depth repositories.Depth) ([]*models.Teacher, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	teachers := []*models.Teacher{}
	for _, id := range sortedKeys(r.s.st.teachers) {
		teachers = append(teachers, r.s.teacher(id, depth))
	}
	return teachers, nil
}

func (r *TeacherRepository) UpdateTeacher(ctx context.Context, teacher *models.Teacher) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.st.teachers[teacher.ID]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	row := teacherRow{ID: teacher.ID, UserID: teacher.UserID, SubjectSpecialization: teacher.SubjectSpecialization}
	if err := r.checkTeacher(row); err != nil {
		return err
	}
	put(r.s, ctx, teachersTable, row.ID, row)
	return nil
}

func (r *TeacherRepository) DeleteTeacher(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.st.teachers[id]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	remove(r.s, ctx, teachersTable, id)
	for cid, c := range r.s.st.courses {
		if c.TeacherID != nil && *c.TeacherID == id {
			c.TeacherID = nil
			put(r.s, ctx, coursesTable, cid, c)
		}
	}
	return nil
}

func (r *TeacherRepository) TeacherExists(ctx context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.st.teachers[id]
	return ok, nil
}

// CourseRepository is the in-memory courses table
type CourseRepository struct{ s *Store }

func (r *CourseRepository) checkTeacher(teacherID *int64) error {
	if teacherID == nil {
		return nil
	}
	if _, ok := r.s.st.teachers[*teacherID]; !ok {
		return apperrors.NewDependencyMissingError("teacher does not exist")
	}
	return nil
}

func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkTeacher(course.TeacherID); err != nil {
		return 0, err
	}
	course.ID = r.s.nextID()
	put(r.s, ctx, coursesTable, course.ID, courseRow{
		ID:          course.ID,
		Name:        course.Name,
		Description: course.Description,
		TeacherID:   copyID(course.TeacherID),
	})
	return course.ID, nil
}

func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64, depth repositories.Depth) (*models.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if c := r.s.course(id, depth); c != nil {
		return c, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (r *CourseRepository) ListCourses(ctx context.Context, depth repositories.Depth) ([]*models.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	courses := []*models.Course{}
	for _, id := range sortedKeys(r.s.st.courses) {
		courses = append(courses, r.s.course(id, depth))
	}
	return courses, nil
}

func (r *CourseRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.st.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	if err := r.checkTeacher(course.TeacherID); err != nil {
		return err
	}
	put(r.s, ctx, coursesTable, course.ID, courseRow{
		ID:          course.ID,
		Name:        course.Name,
		Description: course.Description,
		TeacherID:   copyID(course.TeacherID),
	})
	return nil
}

func (r *CourseRepository) DeleteCourse(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.st.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	remove(r.s, ctx, coursesTable, id)
	for bid, b := range r.s.st.batches {
		if b.CourseID != nil && *b.CourseID == id {
			b.CourseID = nil
			put(r.s, ctx, batchesTable, bid, b)
		}
	}
	for eid, e := range r.s.st.enrollments {
		if e.CourseID == id {
			remove(r.s, ctx, enrollmentsTable, eid)
		}
	}
	return nil
}

func (r *CourseRepository) CourseExists(ctx context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.st.courses[id]
	return ok, nil
}

// BatchRepository is the in-memory batches table
type BatchRepository struct{ s *Store }

func (r *BatchRepository) checkCourse(courseID *int64) error {
	if courseID == nil {
		return nil
	}
	if _, ok := r.s.st.courses[*courseID]; !ok {
		return apperrors.NewDependencyMissingError("course does not exist")
	}
	return nil
}

func (r *BatchRepository) CreateBatch(ctx context.Context, batch *models.Batch) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkCourse(batch.CourseID); err != nil {
		return 0, err
	}
	batch.ID = r.s.nextID()
	put(r.s, ctx, batchesTable, batch.ID, batchRow{
		ID:       batch.ID,
		Name:     batch.Name,
		Timing:   batch.Timing,
		Type:     batch.Type,
		CourseID: copyID(batch.CourseID),
	})
	return batch.ID, nil
}

func (r *BatchRepository) GetBatchByID(ctx context.Context, id int64, depth repositories.Depth) (*models.Batch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if b := r.s.batch(id, depth); b != nil {
		return b, nil
	}
	return nil, apperrors.ErrBatchNotFound
}

func (r *BatchRepository) ListBatches(ctx context.Context, depth repositories.Depth) ([]*models.Batch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	batches := []*models.Batch{}
	for _, id := range sortedKeys(r.s.st.batches) {
		batches = append(batches, r.s.batch(id, depth))
	}
	return batches, nil
}

func (r *BatchRepository) ListBatchesForStudent(ctx context.Context, studentID int64) ([]*models.Batch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	enrolled := map[int64]bool{}
	for _, e := range r.s.st.enrollments {
		if e.StudentID == studentID {
			enrolled[e.CourseID] = true
		}
	}

	batches := []*models.Batch{}
	for _, id := range sortedKeys(r.s.st.batches) {
		b := r.s.st.batches[id]
		if b.CourseID != nil && enrolled[*b.CourseID] {
			batches = append(batches, r.s.batch(id, repositories.DepthFull))
		}
	}
	return batches, nil
}

func (r *BatchRepository) UpdateBatch(ctx context.Context, batch *models.Batch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.st.batches[batch.ID]; !ok {
		return apperrors.ErrBatchNotFound
	}
	if err := r.checkCourse(batch.CourseID); err != nil {
		return err
	}
	put(r.s, ctx, batchesTable, batch.ID, batchRow{
		ID:       batch.ID,
		Name:     batch.Name,
		Timing:   batch.Timing,
		Type:     batch.Type,
		CourseID: copyID(batch.CourseID),
	})
	return nil
}

func (r *BatchRepository) DeleteBatch(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.st.batches[id]; !ok {
		return apperrors.ErrBatchNotFound
	}
	remove(r.s, ctx, batchesTable, id)
	for sid, st := range r.s.st.students {
		if st.BatchID != nil && *st.BatchID == id {
			st.BatchID = nil
			put(r.s, ctx, studentsTable, sid, st)
		}
	}
	return nil
}

func (r *BatchRepository) BatchExists(ctx context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.st.batches[id]
	return ok, nil
}

// StudentRepository is the in-memory students table
type StudentRepository struct{ s *Store }

func (r *StudentRepository) checkStudent(row studentRow) error {
	if _, ok := r.s.st.users[row.UserID]; !ok {
		return apperrors.NewDependencyMissingError("user or batch does not exist")
	}
	if row.BatchID != nil {
		if _, ok := r.s.st.batches[*row.BatchID]; !ok {
			return apperrors.NewDependencyMissingError("user or batch does not exist")
		}
	}
	for _, st := range r.s.st.students {
		if st.UserID == row.UserID && st.ID != row.ID {
			return apperrors.ErrUserAlreadyLinked
		}
	}
	return nil
}

func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row := studentRow{UserID: student.UserID, BatchID: copyID(student.BatchID)}
	if err := r.checkStudent(row); err != nil {
		return 0, err
	}
	row.ID = r.s.nextID()
	put(r.s, ctx, studentsTable, row.ID, row)
	student.ID = row.ID
	return row.ID, nil
}

func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64, depth repositories.Depth) (*models.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if st := r.s.student(id, depth); st != nil {
		return st, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *StudentRepository) ListStudents(ctx context.Context, depth repositories.Depth) ([]*models.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	students := []*models.Student{}
	for _, id := range sortedKeys(r.s.st.students) {
		students = append(students, r.s.student(id, depth))
	}
	return students, nil
}

func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.st.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	row := studentRow{ID: student.ID, UserID: student.UserID, BatchID: copyID(student.BatchID)}
	if err := r.checkStudent(row); err != nil {
		return err
	}
	put(r.s, ctx, studentsTable, row.ID, row)
	return nil
}

func (r *StudentRepository) DeleteStudent(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.st.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	remove(r.s, ctx, studentsTable, id)
	for eid, e := range r.s.st.enrollments {
		if e.StudentID == id {
			remove(r.s, ctx, enrollmentsTable, eid)
		}
	}
	return nil
}

func (r *StudentRepository) StudentExists(ctx context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.st.students[id]
	return ok, nil
}

// EnrollmentRepository is the in-memory student_courses table
type EnrollmentRepository struct{ s *Store }

func (r *EnrollmentRepository) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, studentOK := r.s.st.students[enrollment.StudentID]
	_, courseOK := r.s.st.courses[enrollment.CourseID]
	if !studentOK || !courseOK {
		return 0, apperrors.NewDependencyMissingError("student or course does not exist")
	}

	enrollment.ID = r.s.nextID()
	enrollment.EnrolledAt = r.s.now()
	put(r.s, ctx, enrollmentsTable, enrollment.ID, enrollmentRow{
		ID:         enrollment.ID,
		StudentID:  enrollment.StudentID,
		CourseID:   enrollment.CourseID,
		EnrolledAt: enrollment.EnrolledAt,
	})
	return enrollment.ID, nil
}

// ReportRepository derives reports from the store
type ReportRepository struct{ s *Store }

func (r *ReportRepository) StudentReports(ctx context.Context) ([]*models.StudentReport, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := map[int64]int64{}
	for _, e := range r.s.st.enrollments {
		counts[e.StudentID]++
	}

	reports := []*models.StudentReport{}
	for _, id := range sortedKeys(r.s.st.students) {
		st := r.s.st.students[id]
		u, ok := r.s.st.users[st.UserID]
		if !ok {
			continue
		}
		report := &models.StudentReport{
			StudentID:       id,
			UserName:        u.Name,
			EnrolledCourses: counts[id],
		}
		if st.BatchID != nil {
			if b, ok := r.s.st.batches[*st.BatchID]; ok {
				name := b.Name
				report.BatchName = &name
			}
		}
		reports = append(reports, report)
	}
	return reports, nil
}

var (
	_ repositories.IUserRepository       = (*UserRepository)(nil)
	_ repositories.ITeacherRepository    = (*TeacherRepository)(nil)
	_ repositories.ICourseRepository     = (*CourseRepository)(nil)
	_ repositories.IBatchRepository      = (*BatchRepository)(nil)
	_ repositories.IStudentRepository    = (*StudentRepository)(nil)
	_ repositories.IEnrollmentRepository = (*EnrollmentRepository)(nil)
	_ repositories.IReportRepository     = (*ReportRepository)(nil)
	_ repositories.TxManager             = (*Store)(nil)
)
