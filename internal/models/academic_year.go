package models

import (
	"fmt"
	"regexp"
	"time"
)

var academicYearPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

// AcademicYearLabel returns the school-year label for a date, formatted as
// "2025-2026". Callers compute the label once and pass it down explicitly so
// a long-lived request never mixes two different "current" years.
func AcademicYearLabel(t time.Time) string {
	return fmt.Sprintf("%d-%d", t.Year(), t.Year()+1)
}

// CurrentAcademicYear returns the label for today
func CurrentAcademicYear() string {
	return AcademicYearLabel(time.Now())
}

// IsAcademicYearLabel reports whether s looks like "YYYY-YYYY"
func IsAcademicYearLabel(s string) bool {
	return academicYearPattern.MatchString(s)
}
