package inmemdb

import (
	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/attendance"
)

type attendanceRepository struct {
	db *attendanceTable
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.attendance}
}

func (repo *attendanceRepository) UpsertRecord(date core.Date, classID, studentID string, rec attendance.Record) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	key := date.String()
	classes, ok := repo.db.table[key]
	if !ok {
		classes = make(map[string]map[string]attendance.Record)
		repo.db.table[key] = classes
	}
	students, ok := classes[classID]
	if !ok {
		students = make(map[string]attendance.Record)
		classes[classID] = students
	}
	students[studentID] = rec
	return nil
}

func (repo *attendanceRepository) DayRecords(date core.Date, classID string) (map[string]attendance.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	records := make(map[string]attendance.Record)
	if classes, ok := repo.db.table[date.String()]; ok {
		for studentID, rec := range classes[classID] {
			records[studentID] = rec
		}
	}
	return records, nil
}

func (repo *attendanceRepository) StudentRecords(classID, studentID string) ([]attendance.DatedRecord, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var entries []attendance.DatedRecord
	for key, classes := range repo.db.table {
		students, ok := classes[classID]
		if !ok {
			continue
		}
		rec, ok := students[studentID]
		if !ok {
			// a recorded day with no entry for this student contributes nothing
			continue
		}
		date, err := core.ParseDate(key)
		if err != nil {
			return nil, err
		}
		entries = append(entries, attendance.DatedRecord{Date: date, Record: rec})
	}
	return entries, nil
}
