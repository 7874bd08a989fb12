package model

// Predicate is the performance category derived from a GPA.
type Predicate string

const (
	PredicateCumlaude        Predicate = "Cumlaude"
	PredicateSangatMemuaskan Predicate = "Sangat Memuaskan"
	PredicateMemuaskan       Predicate = "Memuaskan"
	PredicatePerluPerbaikan  Predicate = "Perlu Perbaikan"
)

// Lower bounds of each category. A GPA equal to a bound belongs to the higher category.
const (
	CumlaudeMinGPA        = 3.75
	SangatMemuaskanMinGPA = 3.0
	MemuaskanMinGPA       = 2.0
)

// ClassifyGPA maps a GPA to its predicate, top-down, first match wins.
func ClassifyGPA(gpa float64) Predicate {
	switch {
	case gpa >= CumlaudeMinGPA:
		return PredicateCumlaude
	case gpa >= SangatMemuaskanMinGPA:
		return PredicateSangatMemuaskan
	case gpa >= MemuaskanMinGPA:
		return PredicateMemuaskan
	default:
		return PredicatePerluPerbaikan
	}
}

// Rank orders predicates from 0 (Perlu Perbaikan) to 3 (Cumlaude).
func (p Predicate) Rank() int {
	switch p {
	case PredicateCumlaude:
		return 3
	case PredicateSangatMemuaskan:
		return 2
	case PredicateMemuaskan:
		return 1
	default:
		return 0
	}
}

// CSSClass returns the badge class used by the list view.
func (p Predicate) CSSClass() string {
	switch p {
	case PredicateCumlaude:
		return "predikat-cumlaude"
	case PredicateSangatMemuaskan:
		return "predikat-sangat-memuaskan"
	case PredicateMemuaskan:
		return "predikat-memuaskan"
	case PredicatePerluPerbaikan:
		return "predikat-perlu-perbaikan"
	default:
		return ""
	}
}
