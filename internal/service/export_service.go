package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/roster-mahasiswa/internal/exporter"
	"github.com/stemsi/roster-mahasiswa/internal/repository"
)

// ExportFile is a finished download.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
	Rows        int
}

// ExportService renders the roster into downloadable documents.
type ExportService struct {
	repo  *repository.RosterRepository
	loc   *time.Location
	clock func() time.Time
	log   zerolog.Logger
}

// NewExportService creates a new ExportService rendering timestamps in loc.
func NewExportService(repo *repository.RosterRepository, loc *time.Location, log zerolog.Logger) *ExportService {
	return &ExportService{
		repo:  repo,
		loc:   loc,
		clock: time.Now,
		log:   log.With().Str("component", "export_service").Logger(),
	}
}

// Export renders the current roster in format ("csv" or "xlsx").
// It returns exporter.ErrUnsupportedFormat for other formats and
// ErrEmptyRoster when there is nothing to export.
func (s *ExportService) Export(format string) (*ExportFile, error) {
	exp, err := exporter.ForFormat(format, s.loc)
	if err != nil {
		return nil, err
	}

	students := s.repo.List()
	if len(students) == 0 {
		return nil, ErrEmptyRoster
	}

	var buf bytes.Buffer
	if err := exp.Write(&buf, students); err != nil {
		return nil, fmt.Errorf("export %s: %w", exp.Extension(), err)
	}

	file := &ExportFile{
		Name:        fmt.Sprintf("data_mahasiswa_%d.%s", s.clock().UnixMilli(), exp.Extension()),
		ContentType: exp.ContentType(),
		Data:        buf.Bytes(),
		Rows:        len(students),
	}

	s.log.Info().Str("file", file.Name).Int("rows", file.Rows).Msg("Roster exported")
	return file, nil
}
