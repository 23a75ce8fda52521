package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAcademicYearLabel(t *testing.T) {
	assert.Equal(t, "2025-2026", AcademicYearLabel(time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)))
	// The label follows the calendar year of the call, including early months
	assert.Equal(t, "2026-2027", AcademicYearLabel(time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)))
}

func TestIsAcademicYearLabel(t *testing.T) {
	assert.True(t, IsAcademicYearLabel("2025-2026"))
	assert.True(t, IsAcademicYearLabel("1999-2000"))
	assert.False(t, IsAcademicYearLabel("2025"))
	assert.False(t, IsAcademicYearLabel("25-26"))
	assert.False(t, IsAcademicYearLabel("2025/2026"))
	assert.False(t, IsAcademicYearLabel(""))
	assert.False(t, IsAcademicYearLabel("2025-2026 "))
}
