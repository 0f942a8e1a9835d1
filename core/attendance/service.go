package attendance

import (
	"sort"

	"github.com/shulehub/shule/core"
)

type (
	// Repository is the date → class → student ledger of attendance records.
	// It grows monotonically; records are only ever superseded, never deleted.
	Repository interface {
		// UpsertRecord stores rec under (date, classID, studentID), creating
		// intermediate levels as needed and overwriting any prior record.
		UpsertRecord(date core.Date, classID, studentID string, rec Record) error
		// DayRecords returns the studentID → record mapping for the class on
		// that date; an empty map if nothing was recorded.
		DayRecords(date core.Date, classID string) (map[string]Record, error)
		// StudentRecords returns every dated record of the (class, student)
		// pair across all recorded dates, in no particular order.
		StudentRecords(classID, studentID string) ([]DatedRecord, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Mark records attendance for the student; marking the same triple again
// replaces the previous record (last write wins).
func (svc *Service) Mark(date core.Date, classID, studentID string, m Mark) (Record, error) {
	rec := Record{Status: m.Status, Note: m.Note}
	if err := svc.repo.UpsertRecord(date, classID, studentID, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (svc *Service) Day(date core.Date, classID string) (map[string]Record, error) {
	return svc.repo.DayRecords(date, classID)
}

// CountByStatus counts the students recorded with the given status on that day.
// Students with no record count toward no status.
func (svc *Service) CountByStatus(date core.Date, classID, status string) (int, error) {
	records, err := svc.repo.DayRecords(date, classID)
	if err != nil {
		return 0, err
	}
	var count int
	for _, rec := range records {
		if rec.Status == status {
			count++
		}
	}
	return count, nil
}

// HistoryFor aggregates the full attendance history of one (class, student)
// pair: per-status totals plus every dated record, most recent first.
func (svc *Service) HistoryFor(studentID, classID string) (History, error) {
	entries, err := svc.repo.StudentRecords(classID, studentID)
	if err != nil {
		return History{}, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date.After(entries[j].Date) })

	hist := History{Entries: entries}
	for _, e := range entries {
		switch e.Record.Status {
		case StatusPresent:
			hist.Present++
		case StatusAbsent:
			hist.Absent++
		case StatusLate:
			hist.Late++
		case StatusExcused:
			hist.Excused++
		}
	}
	return hist, nil
}
