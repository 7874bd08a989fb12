package exporter

import (
	"io"
	"strings"
	"time"

	"github.com/stemsi/roster-mahasiswa/internal/model"
)

// CSV writes comma-separated text. Text fields are always quoted and
// numeric fields never are, so spreadsheet tools keep NPM as a number.
type CSV struct {
	loc *time.Location
}

// NewCSV creates a CSV exporter rendering timestamps in loc.
func NewCSV(loc *time.Location) *CSV {
	return &CSV{loc: loc}
}

func (e *CSV) ContentType() string { return "text/csv; charset=utf-8" }
func (e *CSV) Extension() string   { return "csv" }

// Write renders the whole document in memory and writes it once.
func (e *CSV) Write(w io.Writer, students []model.Student) error {
	var b strings.Builder
	b.WriteString(strings.Join(Header, ","))
	b.WriteByte('\n')

	for i, s := range students {
		for j, col := range rowOf(i+1, s, e.loc) {
			if j > 0 {
				b.WriteByte(',')
			}
			if col.Quoted {
				b.WriteByte('"')
				b.WriteString(strings.ReplaceAll(col.Value, `"`, `""`))
				b.WriteByte('"')
			} else {
				b.WriteString(col.Value)
			}
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}
