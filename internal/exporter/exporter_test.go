package exporter

import (
	"bytes"
	"testing"
	"time"

	"github.com/stemsi/roster-mahasiswa/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var wib = time.FixedZone("WIB", 7*60*60)

func sampleStudents() []model.Student {
	created := time.Date(2026, 10, 16, 7, 5, 3, 0, time.UTC)
	return []model.Student{
		{
			ID: 1, Name: "Ayu", NPM: 12345678, Gender: model.GenderFemale,
			BirthInfo: "Denpasar, 1 Januari 2004", Address: "Jl. Gatot Subroto No. 12",
			EnrollmentYear: 2022, GPA: 3.8, CreatedAt: created,
		},
		{
			ID: 2, Name: `Budi "Bud" Santoso`, NPM: 87654321, Gender: model.GenderMale,
			BirthInfo: "Tabanan, 2 Februari 2003", Address: "Jl. Raya Kediri No. 5",
			EnrollmentYear: 2021, GPA: 2.5, CreatedAt: created.Add(time.Minute),
		},
	}
}

func TestCSVWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSV(wib).Write(&buf, sampleStudents()))

	want := "No,Nama,NPM,Jenis Kelamin,TTL,Alamat,Tahun Masuk,IPK,Predikat,Tanggal Input\n" +
		`1,"Ayu",12345678,"Perempuan","Denpasar, 1 Januari 2004","Jl. Gatot Subroto No. 12",2022,3.80,"Cumlaude","16/10/2026, 14.05.03"` + "\n" +
		`2,"Budi ""Bud"" Santoso",87654321,"Laki-laki","Tabanan, 2 Februari 2003","Jl. Raya Kediri No. 5",2021,2.50,"Memuaskan","16/10/2026, 14.06.03"` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestCSVWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSV(wib).Write(&buf, nil))
	assert.Equal(t, "No,Nama,NPM,Jenis Kelamin,TTL,Alamat,Tahun Masuk,IPK,Predikat,Tanggal Input\n", buf.String())
}

func TestXLSXWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSX(wib).Write(&buf, sampleStudents()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "Ayu", rows[1][1])
	assert.Equal(t, "12345678", rows[1][2])
	assert.Equal(t, "Cumlaude", rows[1][8])
	assert.Equal(t, "Memuaskan", rows[2][8])
	assert.Equal(t, "16/10/2026, 14.06.03", rows[2][9])
}

func TestForFormat(t *testing.T) {
	e, err := ForFormat("", wib)
	require.NoError(t, err)
	assert.Equal(t, "csv", e.Extension())

	e, err = ForFormat("xlsx", wib)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", e.Extension())

	_, err = ForFormat("pdf", wib)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func formulaStudent() []model.Student {
	return []model.Student{{
		ID: 1, Name: `=HYPERLINK("http://evil.test","klik")`, NPM: 12345678, Gender: model.GenderMale,
		BirthInfo: "@SUM(1+1)", Address: "-Jl. Minus No. 1, Kuta",
		EnrollmentYear: 2022, GPA: 3.1, CreatedAt: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
	}}
}

func TestCSVWriteNeutralizesFormulas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSV(wib).Write(&buf, formulaStudent()))

	out := buf.String()
	assert.Contains(t, out, `"'=HYPERLINK(""http://evil.test"",""klik"")"`)
	assert.Contains(t, out, `"'@SUM(1+1)"`)
	assert.Contains(t, out, `"'-Jl. Minus No. 1, Kuta"`)
}

func TestXLSXWriteStoresFormulasAsText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSX(wib).Write(&buf, formulaStudent()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	formula, err := f.GetCellFormula(SheetName, "B2")
	require.NoError(t, err)
	assert.Empty(t, formula)
	value, err := f.GetCellValue(SheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, `=HYPERLINK("http://evil.test","klik")`, value)
}

func TestInertText(t *testing.T) {
	assert.Equal(t, "Ayu", inertText("Ayu"))
	assert.Equal(t, "", inertText(""))
	assert.Equal(t, "'+62 812", inertText("+62 812"))
	assert.Equal(t, "'\tx", inertText("\tx"))
}
