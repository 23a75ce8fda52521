package models

import (
	"time"
)

// Course represents a subject taught to a class by a teacher. The teacher
// name is resolved at read time through the association; courses keep only
// the foreign key so a later rename propagates.
type Course struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Coefficient  int       `gorm:"default:1" json:"coefficient"`
	ClassID      uint      `gorm:"not null;index" json:"class_id"`
	TeacherID    *uint     `gorm:"index" json:"teacher_id"`
	WeeklyHours  int       `gorm:"default:0" json:"weekly_hours"`
	AcademicYear string    `gorm:"index" json:"academic_year"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Associations
	Class   Class    `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

// TableName specifies the table name for Course
func (Course) TableName() string {
	return "courses"
}

// CourseResponse is the JSON response format for courses
type CourseResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Coefficient  int    `json:"coefficient"`
	ClassID      uint   `json:"class_id"`
	ClassName    string `json:"class_name,omitempty"`
	TeacherID    *uint  `json:"teacher_id"`
	TeacherName  string `json:"teacher_name,omitempty"`
	WeeklyHours  int    `json:"weekly_hours"`
	AcademicYear string `json:"academic_year"`
}

// ToResponse converts Course to CourseResponse
func (c *Course) ToResponse() CourseResponse {
	resp := CourseResponse{
		ID:           c.ID,
		Name:         c.Name,
		Coefficient:  c.Coefficient,
		ClassID:      c.ClassID,
		TeacherID:    c.TeacherID,
		WeeklyHours:  c.WeeklyHours,
		AcademicYear: c.AcademicYear,
	}
	if c.Class.ID != 0 {
		resp.ClassName = c.Class.Name
	}
	if c.Teacher != nil && c.Teacher.ID != 0 {
		resp.TeacherName = c.Teacher.FullName()
	}
	return resp
}
