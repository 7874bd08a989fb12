package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/stemsi/roster-mahasiswa/internal/model"
)

var ErrDuplicateNPM = errors.New("student with this NPM already exists")

// RosterRepository keeps the roster in process memory, in insertion order.
// Every method is atomic with respect to the others.
type RosterRepository struct {
	mu       sync.RWMutex
	students []model.Student
	lastID   int64
	clock    func() time.Time
}

// NewRosterRepository creates an empty roster. A nil clock means time.Now.
func NewRosterRepository(clock func() time.Time) *RosterRepository {
	if clock == nil {
		clock = time.Now
	}
	return &RosterRepository{clock: clock}
}

// Create appends s, assigning its ID and CreatedAt. It fails with
// ErrDuplicateNPM when another record already holds the same NPM.
func (r *RosterRepository) Create(s *model.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexByNPM(s.NPM) >= 0 {
		return ErrDuplicateNPM
	}

	r.lastID++
	s.ID = r.lastID
	s.CreatedAt = r.clock()
	r.students = append(r.students, *s)
	return nil
}

// Delete removes the record with id. It returns false, leaving the roster
// untouched, when no such record exists.
func (r *RosterRepository) Delete(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexByID(id)
	if i < 0 {
		return false
	}
	r.students = append(r.students[:i:i], r.students[i+1:]...)
	return true
}

// DeleteAll empties the roster and returns how many records were removed.
func (r *RosterRepository) DeleteAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.students)
	r.students = nil
	return n
}

// List returns a copy of all records in insertion order.
func (r *RosterRepository) List() []model.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Student, len(r.students))
	copy(out, r.students)
	return out
}

// Count returns the number of records.
func (r *RosterRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.students)
}

// Stats counts all records and the Cumlaude ones.
func (r *RosterRepository) Stats() model.RosterStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return statsOf(r.students)
}

// Snapshot returns the records and their stats under one read lock.
func (r *RosterRepository) Snapshot() model.RosterSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	students := make([]model.Student, len(r.students))
	copy(students, r.students)
	return model.RosterSnapshot{Students: students, Stats: statsOf(students)}
}

func statsOf(students []model.Student) model.RosterStats {
	stats := model.RosterStats{Total: len(students)}
	for _, s := range students {
		if s.Predicate() == model.PredicateCumlaude {
			stats.Cumlaude++
		}
	}
	return stats
}

func (r *RosterRepository) indexByID(id int64) int {
	for i := range r.students {
		if r.students[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *RosterRepository) indexByNPM(npm int64) int {
	for i := range r.students {
		if r.students[i].NPM == npm {
			return i
		}
	}
	return -1
}
