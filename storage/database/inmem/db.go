// Package inmemdb is the in-memory storage backend. Tables are plain maps
// guarded by RWMutexes; the DB is constructed once at startup and handed to
// repositories, there is no package-level state.
package inmemdb

import (
	"sync"

	"github.com/shulehub/shule/core/attendance"
	"github.com/shulehub/shule/core/school"
	"github.com/shulehub/shule/core/user"
)

type (
	DB struct {
		user       *userTable
		school     *schoolTables
		attendance *attendanceTable
	}

	userTable struct {
		table map[string]*user.User
		mutex sync.RWMutex
	}

	schoolTables struct {
		teachers    map[string]*school.Teacher
		classes     map[string]*school.Class
		students    map[string]*school.Student
		assignments map[string]*school.Assignment
		events      map[string]*school.Event
		activities  []school.Activity // most recent first
		mutex       sync.RWMutex
	}

	// attendanceTable is the date → class → student ledger.
	// Dates are keyed by their canonical YYYY-MM-DD string.
	attendanceTable struct {
		table map[string]map[string]map[string]attendance.Record
		mutex sync.RWMutex
	}
)

func Open() (*DB, error) {
	db := &DB{
		user: &userTable{table: make(map[string]*user.User)},
		school: &schoolTables{
			teachers:    make(map[string]*school.Teacher),
			classes:     make(map[string]*school.Class),
			students:    make(map[string]*school.Student),
			assignments: make(map[string]*school.Assignment),
			events:      make(map[string]*school.Event),
		},
		attendance: &attendanceTable{table: make(map[string]map[string]map[string]attendance.Record)},
	}
	return db, nil
}

func (db *DB) Close() error { return nil }
