package inmemdb

import (
	"strings"

	"github.com/google/uuid"

	"github.com/shulehub/shule/core/school"
)

type schoolRepository struct {
	db *schoolTables
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db.school}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Teachers

func (repo *schoolRepository) CreateTeacher(t school.Teacher) (school.Teacher, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	repo.db.teachers[t.ID] = &t
	return t, nil
}

func (repo *schoolRepository) QueryAllTeachers() ([]school.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	teachers := make([]school.Teacher, 0, len(repo.db.teachers))
	for _, t := range repo.db.teachers {
		teachers = append(teachers, *t)
	}
	return teachers, nil
}

func (repo *schoolRepository) GetTeacherByID(id string) (school.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if t, ok := repo.db.teachers[id]; ok {
		return *t, nil
	}
	return school.Teacher{}, school.ErrNotFound
}

func (repo *schoolRepository) UpdateTeacher(t school.Teacher) (school.Teacher, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	orig, ok := repo.db.teachers[t.ID]
	if !ok {
		return school.Teacher{}, school.ErrNotFound
	}
	if t.Name != "" {
		orig.Name = t.Name
	}
	if t.Subject != "" {
		orig.Subject = t.Subject
	}
	if t.Email != "" {
		orig.Email = t.Email
	}
	if t.Phone != "" {
		orig.Phone = t.Phone
	}
	orig.UpdatedAt = t.UpdatedAt
	return *orig, nil
}

func (repo *schoolRepository) DeleteTeachersByID(ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		if _, ok := repo.db.teachers[id]; !ok {
			return school.ErrNotFound
		}
		delete(repo.db.teachers, id)
	}
	return nil
}

// Classes

func (repo *schoolRepository) CreateClass(c school.Class) (school.Class, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	repo.db.classes[c.ID] = &c
	return c, nil
}

func (repo *schoolRepository) QueryAllClasses() ([]school.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	classes := make([]school.Class, 0, len(repo.db.classes))
	for _, c := range repo.db.classes {
		classes = append(classes, *c)
	}
	return classes, nil
}

func (repo *schoolRepository) GetClassByID(id string) (school.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.classes[id]; ok {
		return *c, nil
	}
	return school.Class{}, school.ErrNotFound
}

func (repo *schoolRepository) UpdateClass(c school.Class) (school.Class, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.classes[c.ID]
	if !ok {
		return school.Class{}, school.ErrNotFound
	}
	if c.Name != "" {
		orig.Name = c.Name
	}
	if c.TeacherID != "" {
		orig.TeacherID = c.TeacherID
	}
	if c.Room != "" {
		orig.Room = c.Room
	}
	if c.Schedule != "" {
		orig.Schedule = c.Schedule
	}
	orig.UpdatedAt = c.UpdatedAt
	return *orig, nil
}

func (repo *schoolRepository) DeleteClassesByID(ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		if _, ok := repo.db.classes[id]; !ok {
			return school.ErrNotFound
		}
		delete(repo.db.classes, id)
	}
	return nil
}

// Students

func (repo *schoolRepository) CreateStudent(s school.Student) (school.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	repo.db.students[s.ID] = &s
	return s, nil
}

func (repo *schoolRepository) QueryAllStudents() ([]school.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	students := make([]school.Student, 0, len(repo.db.students))
	for _, s := range repo.db.students {
		students = append(students, *s)
	}
	return students, nil
}

func (repo *schoolRepository) GetStudentByID(id string) (school.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.db.students[id]; ok {
		return *s, nil
	}
	return school.Student{}, school.ErrNotFound
}

func (repo *schoolRepository) UpdateStudent(s school.Student, progress *int) (school.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.students[s.ID]
	if !ok {
		return school.Student{}, school.ErrNotFound
	}
	if s.Name != "" {
		orig.Name = s.Name
	}
	if s.Email != "" {
		orig.Email = s.Email
	}
	if s.ParentEmail != "" {
		orig.ParentEmail = s.ParentEmail
	}
	if s.ClassID != "" {
		orig.ClassID = s.ClassID
	}
	if s.Status != "" {
		orig.Status = s.Status
	}
	if progress != nil {
		orig.Progress = *progress
	}
	if s.Memorization != (school.Memorization{}) {
		orig.Memorization = s.Memorization
	}
	orig.UpdatedAt = s.UpdatedAt
	return *orig, nil
}

func (repo *schoolRepository) DeleteStudentsByID(ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		if _, ok := repo.db.students[id]; !ok {
			return school.ErrNotFound
		}
		delete(repo.db.students, id)
	}
	return nil
}

// Assignments

func (repo *schoolRepository) CreateAssignment(a school.Assignment) (school.Assignment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	repo.db.assignments[a.ID] = &a
	return a, nil
}

func (repo *schoolRepository) QueryAllAssignments() ([]school.Assignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	assignments := make([]school.Assignment, 0, len(repo.db.assignments))
	for _, a := range repo.db.assignments {
		assignments = append(assignments, *a)
	}
	return assignments, nil
}

func (repo *schoolRepository) GetAssignmentByID(id string) (school.Assignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if a, ok := repo.db.assignments[id]; ok {
		return *a, nil
	}
	return school.Assignment{}, school.ErrNotFound
}

func (repo *schoolRepository) UpdateAssignment(a school.Assignment) (school.Assignment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.assignments[a.ID]
	if !ok {
		return school.Assignment{}, school.ErrNotFound
	}
	if a.Title != "" {
		orig.Title = a.Title
	}
	if a.Description != "" {
		orig.Description = a.Description
	}
	if !a.DueDate.IsZero() {
		orig.DueDate = a.DueDate
	}
	orig.UpdatedAt = a.UpdatedAt
	return *orig, nil
}

func (repo *schoolRepository) DeleteAssignmentsByID(ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		if _, ok := repo.db.assignments[id]; !ok {
			return school.ErrNotFound
		}
		delete(repo.db.assignments, id)
	}
	return nil
}

// Events

func (repo *schoolRepository) CreateEvent(e school.Event) (school.Event, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	repo.db.events[e.ID] = &e
	return e, nil
}

func (repo *schoolRepository) QueryAllEvents() ([]school.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	events := make([]school.Event, 0, len(repo.db.events))
	for _, e := range repo.db.events {
		events = append(events, *e)
	}
	return events, nil
}

func (repo *schoolRepository) GetEventByID(id string) (school.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if e, ok := repo.db.events[id]; ok {
		return *e, nil
	}
	return school.Event{}, school.ErrNotFound
}

func (repo *schoolRepository) DeleteEventsByID(ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		if _, ok := repo.db.events[id]; !ok {
			return school.ErrNotFound
		}
		delete(repo.db.events, id)
	}
	return nil
}

// Activity feed

func (repo *schoolRepository) CreateActivity(a school.Activity, cap int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.activities = append([]school.Activity{a}, repo.db.activities...)
	if cap > 0 && len(repo.db.activities) > cap {
		repo.db.activities = repo.db.activities[:cap]
	}
	return nil
}

func (repo *schoolRepository) QueryActivities() ([]school.Activity, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return append([]school.Activity(nil), repo.db.activities...), nil
}
