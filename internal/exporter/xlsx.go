package exporter

import (
	"fmt"
	"io"
	"time"

	"github.com/stemsi/roster-mahasiswa/internal/model"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the exported roster.
const SheetName = "Mahasiswa"

// XLSX writes an Excel workbook with the same header and rows as CSV.
type XLSX struct {
	loc *time.Location
}

// NewXLSX creates an XLSX exporter rendering timestamps in loc.
func NewXLSX(loc *time.Location) *XLSX {
	return &XLSX{loc: loc}
}

func (e *XLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (e *XLSX) Extension() string { return "xlsx" }

func (e *XLSX) Write(w io.Writer, students []model.Student) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, s := range students {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			i + 1,
			s.Name,
			s.NPM,
			s.Gender.Label(),
			s.BirthInfo,
			s.Address,
			s.EnrollmentYear,
			s.GPAText(),
			string(s.Predicate()),
			model.FormatTimestamp(s.CreatedAt, e.loc),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(SheetName, "B", "F", 24); err != nil {
		return err
	}

	return f.Write(w)
}
