package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Gender represents the student's gender as submitted by the form.
type Gender string

const (
	GenderMale   Gender = "L"
	GenderFemale Gender = "P"
)

// Label returns the display name used in the list view and exports.
func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Laki-laki"
	case GenderFemale:
		return "Perempuan"
	default:
		return string(g)
	}
}

// Student is one record in the roster.
type Student struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	NPM            int64     `json:"npm"`
	Gender         Gender    `json:"gender"`
	BirthInfo      string    `json:"birth_info"`
	Address        string    `json:"address"`
	EnrollmentYear int       `json:"enrollment_year"`
	GPA            float64   `json:"ipk"`
	CreatedAt      time.Time `json:"created_at"`
}

// Predicate derives the performance category from GPA.
func (s Student) Predicate() Predicate {
	return ClassifyGPA(s.GPA)
}

// GPAText formats GPA with two decimals, as shown on cards and in exports.
func (s Student) GPAText() string {
	return fmt.Sprintf("%.2f", s.GPA)
}

// MarshalJSON adds the derived predicate to the encoded record.
func (s Student) MarshalJSON() ([]byte, error) {
	type plain Student
	return json.Marshal(struct {
		plain
		Predicate Predicate `json:"predicate"`
	}{plain(s), s.Predicate()})
}

// StudentForm is the raw form submission. Every field is kept as text so that
// malformed numbers are reported as validation errors instead of bind errors.
type StudentForm struct {
	Name           string `json:"name" form:"name" validate:"required,min=2"`
	NPM            string `json:"npm" form:"npm" validate:"required,positive_int,min=8"`
	Gender         string `json:"gender" form:"gender" validate:"required,oneof=L P"`
	BirthInfo      string `json:"birth_info" form:"birth_info" validate:"required"`
	Address        string `json:"address" form:"address" validate:"required,min=10"`
	EnrollmentYear string `json:"enrollment_year" form:"enrollment_year" validate:"required,int_range=2000:2030"`
	GPA            string `json:"ipk" form:"ipk" validate:"required,decimal_range=0:4"`
}

// UnmarshalJSON accepts every field as a JSON string or number, so API clients
// may send {"npm": 12345678, "ipk": 3.8}. Numbers keep their literal spelling
// and are judged by the validator like typed input.
func (f *StudentForm) UnmarshalJSON(data []byte) error {
	var in struct {
		Name           formText `json:"name"`
		NPM            formText `json:"npm"`
		Gender         formText `json:"gender"`
		BirthInfo      formText `json:"birth_info"`
		Address        formText `json:"address"`
		EnrollmentYear formText `json:"enrollment_year"`
		GPA            formText `json:"ipk"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*f = StudentForm{
		Name:           string(in.Name),
		NPM:            string(in.NPM),
		Gender:         string(in.Gender),
		BirthInfo:      string(in.BirthInfo),
		Address:        string(in.Address),
		EnrollmentYear: string(in.EnrollmentYear),
		GPA:            string(in.GPA),
	}
	return nil
}

// formText is a form value sent as a JSON string or number. null leaves it empty.
type formText string

func (t *formText) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = formText(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("form value must be a string or number: %w", err)
	}
	*t = formText(n.String())
	return nil
}

// Normalize trims surrounding whitespace from every field.
func (f *StudentForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.NPM = strings.TrimSpace(f.NPM)
	f.Gender = strings.TrimSpace(f.Gender)
	f.BirthInfo = strings.TrimSpace(f.BirthInfo)
	f.Address = strings.TrimSpace(f.Address)
	f.EnrollmentYear = strings.TrimSpace(f.EnrollmentYear)
	f.GPA = strings.TrimSpace(f.GPA)
}

// FormatTimestamp renders t the way the roster shows input times
// (dd/mm/yyyy, HH.MM.SS) in loc.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("02/01/2006, 15.04.05")
}
