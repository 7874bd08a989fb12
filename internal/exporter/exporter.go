// Package exporter serializes the roster into downloadable documents.
package exporter

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/stemsi/roster-mahasiswa/internal/model"
)

// ErrUnsupportedFormat is returned by ForFormat for an unknown format name.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Header is the fixed first row of every export.
var Header = []string{
	"No", "Nama", "NPM", "Jenis Kelamin", "TTL", "Alamat",
	"Tahun Masuk", "IPK", "Predikat", "Tanggal Input",
}

// Exporter writes a complete document for the given records.
type Exporter interface {
	Write(w io.Writer, students []model.Student) error
	ContentType() string
	Extension() string
}

// ForFormat returns the exporter for "csv" or "xlsx". Timestamps are rendered in loc.
func ForFormat(format string, loc *time.Location) (Exporter, error) {
	switch format {
	case "", "csv":
		return NewCSV(loc), nil
	case "xlsx":
		return NewXLSX(loc), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// column is one cell of a data row. Quoted marks text fields.
type column struct {
	Value  string
	Quoted bool
}

func rowOf(seq int, s model.Student, loc *time.Location) []column {
	return []column{
		{strconv.Itoa(seq), false},
		{inertText(s.Name), true},
		{strconv.FormatInt(s.NPM, 10), false},
		{s.Gender.Label(), true},
		{inertText(s.BirthInfo), true},
		{inertText(s.Address), true},
		{strconv.Itoa(s.EnrollmentYear), false},
		{s.GPAText(), false},
		{string(s.Predicate()), true},
		{model.FormatTimestamp(s.CreatedAt, loc), true},
	}
}

// formulaLeads are the first characters that make spreadsheet tools evaluate a CSV cell.
const formulaLeads = "=+-@\t\r"

// inertText prefixes an apostrophe to submitted text that would otherwise open as a formula.
func inertText(s string) string {
	if s != "" && strings.ContainsRune(formulaLeads, rune(s[0])) {
		return "'" + s
	}
	return s
}
