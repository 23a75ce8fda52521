package models

import (
	"time"
)

// Evaluation represents a scheduled exam or test for a course
type Evaluation struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CourseID     uint      `gorm:"not null;index" json:"course_id"`
	ClassID      uint      `gorm:"not null;index" json:"class_id"`
	Title        string    `gorm:"not null" json:"title"`
	Kind         string    `gorm:"default:test" json:"kind"`
	Date         time.Time `gorm:"type:date;not null;index" json:"date"`
	Period       int       `gorm:"not null" json:"period"`
	MaxScore     float64   `gorm:"default:20" json:"max_score"`
	Term         int       `gorm:"default:1" json:"term"`
	AcademicYear string    `gorm:"index" json:"academic_year"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Associations
	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Class  Class  `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

// TableName specifies the table name for Evaluation
func (Evaluation) TableName() string {
	return "evaluations"
}

// Evaluation kind constants
const (
	EvaluationKindTest = "test"
	EvaluationKindExam = "exam"
	EvaluationKindQuiz = "quiz"
)
