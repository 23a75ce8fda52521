package models

import (
	"time"
)

// ScheduleSlot places a course on the weekly timetable grid. Slots are keyed
// by weekday and period; conflict checks are a lookup over existing slots,
// not a solver.
type ScheduleSlot struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CourseID     uint      `gorm:"not null;index" json:"course_id"`
	ClassID      uint      `gorm:"not null;index" json:"class_id"`
	Weekday      int       `gorm:"not null" json:"weekday"` // 1=Monday .. 6=Saturday
	Period       int       `gorm:"not null" json:"period"`  // 1..8
	AcademicYear string    `gorm:"index" json:"academic_year"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Associations
	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Class  Class  `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

// TableName specifies the table name for ScheduleSlot
func (ScheduleSlot) TableName() string {
	return "schedule_slots"
}

// Timetable grid bounds
const (
	MinWeekday = 1
	MaxWeekday = 6
	MinPeriod  = 1
	MaxPeriod  = 8
)

// InGrid reports whether the slot falls inside the fixed weekly grid
func (s *ScheduleSlot) InGrid() bool {
	return s.Weekday >= MinWeekday && s.Weekday <= MaxWeekday &&
		s.Period >= MinPeriod && s.Period <= MaxPeriod
}
