// Package memory keeps the institute graph in process memory behind the same
// repository interfaces as the Postgres implementation. It mirrors the schema's
// unique and foreign key rules, including ON DELETE behavior.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yigit/institute/internal/app/models"
	"github.com/yigit/institute/internal/app/repositories"
)

type teacherRow struct {
	ID                    int64
	UserID                int64
	SubjectSpecialization string
}

type courseRow struct {
	ID          int64
	Name        string
	Description string
	TeacherID   *int64
}

type batchRow struct {
	ID       int64
	Name     string
	Timing   string
	Type     string
	CourseID *int64
}

type studentRow struct {
	ID      int64
	UserID  int64
	BatchID *int64
}

type enrollmentRow struct {
	ID         int64
	StudentID  int64
	CourseID   int64
	EnrolledAt time.Time
}

type state struct {
	seq         int64
	users       map[int64]models.User
	teachers    map[int64]teacherRow
	courses     map[int64]courseRow
	batches     map[int64]batchRow
	students    map[int64]studentRow
	enrollments map[int64]enrollmentRow
}

func newState() state {
	return state{
		users:       map[int64]models.User{},
		teachers:    map[int64]teacherRow{},
		courses:     map[int64]courseRow{},
		batches:     map[int64]batchRow{},
		students:    map[int64]studentRow{},
		enrollments: map[int64]enrollmentRow{},
	}
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Store is the shared in-memory database
type Store struct {
	mu  sync.RWMutex
	st  state
	now func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{st: newState(), now: time.Now}
}

func (s *Store) nextID() int64 {
	s.st.seq++
	return s.st.seq
}

type txKey struct{}

// undoLog remembers how to revert every row a unit of work wrote, newest last
type undoLog struct {
	steps []func(st *state)
}

func usersTable(st *state) map[int64]models.User { return st.users }
func teachersTable(st *state) map[int64]teacherRow { return st.teachers }
func coursesTable(st *state) map[int64]courseRow { return st.courses }
func batchesTable(st *state) map[int64]batchRow { return st.batches }
func studentsTable(st *state) map[int64]studentRow { return st.students }
func enrollmentsTable(st *state) map[int64]enrollmentRow { return st.enrollments }

// record saves the current version of row id in the undo log carried by ctx, if any.
// Caller holds the write lock.
func record[V any](s *Store, ctx context.Context, table func(*state) map[int64]V, id int64) {
	log, ok := ctx.Value(txKey{}).(*undoLog)
	if !ok {
		return
	}
	prev, existed := table(&s.st)[id]
	log.steps = append(log.steps, func(st *state) {
		if existed {
			table(st)[id] = prev
		} else {
			delete(table(st), id)
		}
	})
}

// put writes row id. Caller holds the write lock.
func put[V any](s *Store, ctx context.Context, table func(*state) map[int64]V, id int64, row V) {
	record(s, ctx, table, id)
	table(&s.st)[id] = row
}

// remove deletes row id. Caller holds the write lock.
func remove[V any](s *Store, ctx context.Context, table func(*state) map[int64]V, id int64) {
	record(s, ctx, table, id)
	delete(table(&s.st), id)
}

// WithinTx runs fn and, when it fails, reverts the rows fn wrote. Writes made by
// other callers meanwhile are kept. Ids handed out are not reused, like a sequence.
// Nested calls join the outer unit of work.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	log := &undoLog{}
	if err := fn(context.WithValue(ctx, txKey{}, log)); err != nil {
		s.mu.Lock()
		for i := len(log.steps) - 1; i >= 0; i-- {
			log.steps[i](&s.st)
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// Counts reports the number of rows per table, keyed by table name
func (s *Store) Counts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]int{
		"users":           len(s.st.users),
		"teachers":        len(s.st.teachers),
		"courses":         len(s.st.courses),
		"batches":         len(s.st.batches),
		"students":        len(s.st.students),
		"student_courses": len(s.st.enrollments),
	}
}

// NewRepositories wires every repository interface to one fresh store
func NewRepositories() (*repositories.Repositories, *Store) {
	store := NewStore()
	return &repositories.Repositories{
		UserRepository:       &UserRepository{store},
		TeacherRepository:    &TeacherRepository{store},
		CourseRepository:     &CourseRepository{store},
		BatchRepository:      &BatchRepository{store},
		StudentRepository:    &StudentRepository{store},
		EnrollmentRepository: &EnrollmentRepository{store},
		ReportRepository:     &ReportRepository{store},
		TxManager:            store,
	}, store
}

// graph resolution, caller holds at least the read lock

func (s *Store) user(id int64) *models.User {
	u, ok := s.st.users[id]
	if !ok {
		return nil
	}
	return &u
}

func (s *Store) teacher(id int64, depth repositories.Depth) *models.Teacher {
	row, ok := s.st.teachers[id]
	if !ok {
		return nil
	}
	t := &models.Teacher{
		ID:                    row.ID,
		UserID:                row.UserID,
		SubjectSpecialization: row.SubjectSpecialization,
		User:                  s.user(row.UserID),
	}
	if depth == repositories.DepthFull {
		t.Courses = []*models.Course{}
		for _, cid := range sortedKeys(s.st.courses) {
			c := s.st.courses[cid]
			if c.TeacherID != nil && *c.TeacherID == id {
				t.Courses = append(t.Courses, s.course(cid, repositories.DepthShallow))
			}
		}
	}
	return t
}

func (s *Store) course(id int64, depth repositories.Depth) *models.Course {
	row, ok := s.st.courses[id]
	if !ok {
		return nil
	}
	c := &models.Course{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		TeacherID:   copyID(row.TeacherID),
	}
	if depth == repositories.DepthFull && row.TeacherID != nil {
		c.Teacher = s.teacher(*row.TeacherID, repositories.DepthShallow)
	}
	return c
}

func (s *Store) batch(id int64, depth repositories.Depth) *models.Batch {
	row, ok := s.st.batches[id]
	if !ok {
		return nil
	}
	b := &models.Batch{
		ID:       row.ID,
		Name:     row.Name,
		Timing:   row.Timing,
		Type:     row.Type,
		CourseID: copyID(row.CourseID),
	}
	if depth == repositories.DepthFull && row.CourseID != nil {
		b.Course = s.course(*row.CourseID, repositories.DepthFull)
	}
	return b
}

func (s *Store) student(id int64, depth repositories.Depth) *models.Student {
	row, ok := s.st.students[id]
	if !ok {
		return nil
	}
	st := &models.Student{
		ID:      row.ID,
		UserID:  row.UserID,
		BatchID: copyID(row.BatchID),
		User:    s.user(row.UserID),
	}
	if depth == repositories.DepthFull {
		if row.BatchID != nil {
			st.Batch = s.batch(*row.BatchID, repositories.DepthFull)
		}
		st.Enrollments = []*models.Enrollment{}
		for _, eid := range sortedKeys(s.st.enrollments) {
			e := s.st.enrollments[eid]
			if e.StudentID != id {
				continue
			}
			st.Enrollments = append(st.Enrollments, &models.Enrollment{
				ID:         e.ID,
				StudentID:  e.StudentID,
				CourseID:   e.CourseID,
				EnrolledAt: e.EnrolledAt,
				Course:     s.course(e.CourseID, repositories.DepthFull),
			})
		}
	}
	return st
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
