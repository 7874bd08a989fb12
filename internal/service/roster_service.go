package service

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/roster-mahasiswa/internal/model"
	"github.com/stemsi/roster-mahasiswa/internal/repository"
	"github.com/stemsi/roster-mahasiswa/internal/validator"
)

// ErrEmptyRoster is returned by operations that need at least one record.
var ErrEmptyRoster = errors.New("roster is empty")

// ValidationError carries every rejected field of a submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// Publisher receives an event after every successful roster mutation.
type Publisher interface {
	Publish(event model.RosterEvent)
}

type noopPublisher struct{}

func (noopPublisher) Publish(model.RosterEvent) {}

// RosterService handles roster business logic.
type RosterService struct {
	// mu serializes mutations with their event so viewers never see snapshots out of order.
	mu        sync.Mutex
	repo      *repository.RosterRepository
	validate  *validator.Validator
	publisher Publisher
	log       zerolog.Logger
}

// NewRosterService creates a new RosterService. A nil publisher discards events.
func NewRosterService(
	repo *repository.RosterRepository,
	validate *validator.Validator,
	publisher Publisher,
	log zerolog.Logger,
) *RosterService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &RosterService{
		repo:      repo,
		validate:  validate,
		publisher: publisher,
		log:       log.With().Str("component", "roster_service").Logger(),
	}
}

// Add validates the submission and appends it to the roster.
// It returns *ValidationError when any field is invalid and
// repository.ErrDuplicateNPM when the NPM is taken. The roster is unchanged
// in both cases.
func (s *RosterService) Add(form model.StudentForm) (*model.Student, error) {
	form.Normalize()

	if fields := s.validate.ValidateForm(form); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	student, err := parseForm(form)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Create(student); err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("id", student.ID).
		Int64("npm", student.NPM).
		Str("predicate", string(student.Predicate())).
		Msg("Student added")
	s.publish(model.RosterEventAdded)

	return student, nil
}

// ValidateField checks a single field for live feedback.
func (s *RosterService) ValidateField(field, value string) (string, error) {
	return s.validate.ValidateField(field, value)
}

// Remove deletes one record. It reports false when id is not in the roster.
func (s *RosterService) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.repo.Delete(id) {
		return false
	}
	s.log.Info().Int64("id", id).Msg("Student removed")
	s.publish(model.RosterEventRemoved)
	return true
}

// Clear empties the roster and returns the number of removed records.
// An already empty roster yields ErrEmptyRoster and no event.
func (s *RosterService) Clear() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.repo.DeleteAll()
	if n == 0 {
		return 0, ErrEmptyRoster
	}
	s.log.Info().Int("count", n).Msg("Roster cleared")
	s.publish(model.RosterEventCleared)
	return n, nil
}

// List returns all records in insertion order.
func (s *RosterService) List() []model.Student {
	return s.repo.List()
}

// Stats returns the total and Cumlaude counts.
func (s *RosterService) Stats() model.RosterStats {
	return s.repo.Stats()
}

// Snapshot returns the records together with their stats.
func (s *RosterService) Snapshot() model.RosterSnapshot {
	return s.repo.Snapshot()
}

func (s *RosterService) publish(t model.RosterEventType) {
	s.publisher.Publish(model.RosterEvent{
		Type:     t,
		Snapshot: s.repo.Snapshot(),
		At:       time.Now(),
	})
}

// parseForm converts a validated form into a record.
func parseForm(form model.StudentForm) (*model.Student, error) {
	npm, err := strconv.ParseInt(form.NPM, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse npm: %w", err)
	}
	year, err := strconv.Atoi(form.EnrollmentYear)
	if err != nil {
		return nil, fmt.Errorf("parse enrollment year: %w", err)
	}
	gpa, err := strconv.ParseFloat(form.GPA, 64)
	if err != nil {
		return nil, fmt.Errorf("parse ipk: %w", err)
	}

	return &model.Student{
		Name:           form.Name,
		NPM:            npm,
		Gender:         model.Gender(form.Gender),
		BirthInfo:      form.BirthInfo,
		Address:        form.Address,
		EnrollmentYear: year,
		GPA:            gpa,
	}, nil
}
