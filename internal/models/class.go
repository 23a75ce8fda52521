package models

import (
	"time"
)

// Class represents a class (grade level section) students are assigned to
type Class struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null" json:"name"`
	Level        string    `json:"level"`
	AcademicYear string    `gorm:"index" json:"academic_year"`
	Capacity     int       `gorm:"default:0" json:"capacity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Associations
	Students []Student `gorm:"foreignKey:ClassID" json:"students,omitempty"`
	Courses  []Course  `gorm:"foreignKey:ClassID" json:"courses,omitempty"`

	// Computed, not persisted
	StudentCount int `gorm:"-" json:"student_count"`
}

// TableName specifies the table name for Class
func (Class) TableName() string {
	return "classes"
}
