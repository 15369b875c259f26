package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"exam_scheduler/internal/model"
)

var errStoreDown = errors.New("store unavailable")

type enrollKey struct {
	StudentID string
	CourseID  string
}

// memStore is an in-memory stand-in for the slot, enrollment, course and user
// stores, seeded by hand in each test. Conditional updates take the same lock
// a database row would, so booking races behave like they do against Postgres.
type memStore struct {
	mu          sync.Mutex
	slots       map[model.SlotKey]*model.Slot
	enrollments map[enrollKey]*model.Enrollment
	courses     map[string]*model.Course
	students    map[string]*model.Student
	teachers    map[string]*model.Teacher

	failSlotInsert bool
	failSetPassed  bool
}

func newMemStore() *memStore {
	return &memStore{
		slots:       make(map[model.SlotKey]*model.Slot),
		enrollments: make(map[enrollKey]*model.Enrollment),
		courses:     make(map[string]*model.Course),
		students:    make(map[string]*model.Student),
		teachers:    make(map[string]*model.Teacher),
	}
}

func (m *memStore) addCourse(id, name, teacherID string) {
	m.courses[id] = &model.Course{ID: id, Name: name, TeacherID: teacherID}
}

func (m *memStore) addStudent(id, name, surname string) {
	m.students[id] = &model.Student{ID: id, Name: name, Surname: surname}
}

func (m *memStore) addEnrollment(studentID, courseID string, passed bool) {
	m.enrollments[enrollKey{studentID, courseID}] = &model.Enrollment{
		StudentID: studentID, CourseID: courseID, Passed: passed,
	}
}

func (m *memStore) addOpenSlot(courseID, date, hour string, duration int, examDate string) {
	slot := &model.Slot{
		CourseID: courseID, SlotDate: date, SlotHour: hour,
		Duration: duration, ExamDate: examDate,
	}
	m.slots[slot.Key()] = slot
}

func (m *memStore) addReservedSlot(courseID, date, hour string, duration int, examDate, studentID string) {
	slot := &model.Slot{
		CourseID: courseID, SlotDate: date, SlotHour: hour,
		Duration: duration, ExamDate: examDate, StudentID: &studentID,
	}
	m.slots[slot.Key()] = slot
}

// --- SlotStore ---

func (m *memStore) Insert(_ context.Context, slot *model.Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSlotInsert {
		return errStoreDown
	}
	clone := *slot
	m.slots[slot.Key()] = &clone
	return nil
}

func (m *memStore) GetByKey(_ context.Context, key model.SlotKey) (*model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot, ok := m.slots[key]
	if !ok {
		return nil, nil
	}
	clone := *slot
	return &clone, nil
}

func (m *memStore) OpenForStudent(_ context.Context, studentID string) ([]*model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Slot
	for _, slot := range m.slots {
		if slot.StudentID != nil {
			continue
		}
		enr, ok := m.enrollments[enrollKey{studentID, slot.CourseID}]
		if !ok || enr.Passed {
			continue
		}
		clone := *slot
		out = append(out, &clone)
	}
	sortSlots(out)
	return out, nil
}

func (m *memStore) CallsWithStudent(_ context.Context, studentID string) ([]model.CallKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[model.CallKey]struct{})
	var out []model.CallKey
	for _, slot := range m.slots {
		if slot.StudentID == nil || *slot.StudentID != studentID {
			continue
		}
		if _, ok := seen[slot.Call()]; ok {
			continue
		}
		seen[slot.Call()] = struct{}{}
		out = append(out, slot.Call())
	}
	return out, nil
}

func (m *memStore) ForStudent(_ context.Context, studentID string) ([]*model.StudentExam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.StudentExam
	for _, slot := range m.slots {
		if slot.StudentID == nil || *slot.StudentID != studentID {
			continue
		}
		name := ""
		if course, ok := m.courses[slot.CourseID]; ok {
			name = course.Name
		}
		out = append(out, &model.StudentExam{
			CourseID:   slot.CourseID,
			CourseName: name,
			SlotDate:   slot.SlotDate,
			SlotHour:   slot.SlotHour,
			Mark:       slot.Mark,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SlotDate != out[j].SlotDate {
			return out[i].SlotDate < out[j].SlotDate
		}
		return out[i].SlotHour < out[j].SlotHour
	})
	return out, nil
}

func (m *memStore) HasCall(_ context.Context, call model.CallKey) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, slot := range m.slots {
		if slot.Call() == call {
			return true, nil
		}
	}
	return false, nil
}

func ptrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (m *memStore) UpdateOccupant(_ context.Context, key model.SlotKey, expected, next *string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot, ok := m.slots[key]
	if !ok || slot.Mark != nil || !ptrEqual(slot.StudentID, expected) {
		return false, nil
	}
	if next == nil {
		slot.StudentID = nil
	} else {
		v := *next
		slot.StudentID = &v
	}
	return true, nil
}

func (m *memStore) SetMark(_ context.Context, key model.SlotKey, studentID string, mark model.Mark) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot, ok := m.slots[key]
	if !ok || slot.Mark != nil || slot.StudentID == nil || *slot.StudentID != studentID {
		return false, nil
	}
	slot.Mark = &mark
	return true, nil
}

func sortSlots(slots []*model.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].SlotDate != slots[j].SlotDate {
			return slots[i].SlotDate < slots[j].SlotDate
		}
		return slots[i].SlotHour < slots[j].SlotHour
	})
}

// --- EnrollmentStore ---

// Get reads an enrollment back for assertions; the services themselves never
// need a point lookup.
func (m *memStore) Get(_ context.Context, studentID, courseID string) (*model.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	enr, ok := m.enrollments[enrollKey{studentID, courseID}]
	if !ok {
		return nil, nil
	}
	clone := *enr
	return &clone, nil
}

func (m *memStore) SetPassed(_ context.Context, courseID, studentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSetPassed {
		return errStoreDown
	}
	if enr, ok := m.enrollments[enrollKey{studentID, courseID}]; ok {
		enr.Passed = true
	}
	return nil
}

func (m *memStore) SelectableStudents(_ context.Context, courseID string) ([]*model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Student
	for _, enr := range m.enrollments {
		if enr.CourseID != courseID || enr.Passed {
			continue
		}
		if st, ok := m.students[enr.StudentID]; ok {
			clone := *st
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- CourseStore ---

func (m *memStore) GetByID(_ context.Context, id string) (*model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	course, ok := m.courses[id]
	if !ok {
		return nil, nil
	}
	clone := *course
	return &clone, nil
}

func (m *memStore) GetByTeacherID(_ context.Context, teacherID string) (*model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, course := range m.courses {
		if course.TeacherID == teacherID {
			clone := *course
			return &clone, nil
		}
	}
	return nil, nil
}

// --- UserStore ---

func (m *memStore) GetStudent(_ context.Context, id string) (*model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.students[id]
	if !ok {
		return nil, nil
	}
	clone := *st
	return &clone, nil
}

func (m *memStore) GetTeacher(_ context.Context, id string) (*model.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tch, ok := m.teachers[id]
	if !ok {
		return nil, nil
	}
	clone := *tch
	return &clone, nil
}

// memSelectedStore holds the selected-student roster and computes the
// overview left join against the slot table of its backing memStore.
type memSelectedStore struct {
	m          *memStore
	selected   []*model.SelectedStudent
	failInsert bool
}

func newMemSelectedStore(m *memStore) *memSelectedStore {
	return &memSelectedStore{m: m}
}

func (s *memSelectedStore) add(studentID, courseID, examDate string) {
	s.selected = append(s.selected, &model.SelectedStudent{
		StudentID: studentID, CourseID: courseID, ExamDate: examDate,
	})
}

func (s *memSelectedStore) Insert(_ context.Context, sel *model.SelectedStudent) error {
	if s.failInsert {
		return errStoreDown
	}
	clone := *sel
	s.selected = append(s.selected, &clone)
	return nil
}

func (s *memSelectedStore) OverviewRows(_ context.Context, call model.CallKey) ([]*model.OverviewRow, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []*model.OverviewRow
	for _, sel := range s.selected {
		if sel.Call() != call {
			continue
		}
		row := &model.OverviewRow{StudentID: sel.StudentID}
		if st, ok := s.m.students[sel.StudentID]; ok {
			row.Name, row.Surname = st.Name, st.Surname
		}
		for _, slot := range s.m.slots {
			if slot.Call() == call && slot.StudentID != nil && *slot.StudentID == sel.StudentID {
				date, hour := slot.SlotDate, slot.SlotHour
				row.SlotDate, row.SlotHour = &date, &hour
				row.Mark = slot.Mark
				break
			}
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, nil
}

// memSessionStore keeps login sessions with expiry.
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]struct {
		userID    string
		expiresAt time.Time
	}
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]struct {
		userID    string
		expiresAt time.Time
	})}
}

func (s *memSessionStore) Insert(_ context.Context, token, userID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = struct {
		userID    string
		expiresAt time.Time
	}{userID, expiresAt}
	return nil
}

func (s *memSessionStore) GetUserID(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok || time.Now().After(sess.expiresAt) {
		return "", nil
	}
	return sess.userID, nil
}

func (s *memSessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
