package models

import (
	"time"
)

// Student represents an enrolled student
type Student struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	FirstName      string     `gorm:"not null" json:"first_name"`
	LastName       string     `gorm:"not null" json:"last_name"`
	Gender         string     `gorm:"size:10" json:"gender"`
	BirthDate      *time.Time `gorm:"type:date" json:"birth_date"`
	GuardianName   string     `json:"guardian_name"`
	GuardianPhone  string     `json:"guardian_phone"`
	Address        *string    `json:"address"`
	ClassID        *uint      `gorm:"index" json:"class_id"`
	EnrollmentDate *time.Time `gorm:"type:date" json:"enrollment_date"`
	Status         string     `gorm:"default:enrolled;index" json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Associations
	Class *Class `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

// TableName specifies the table name for Student
func (Student) TableName() string {
	return "students"
}

// Student status constants
const (
	StudentStatusEnrolled  = "enrolled"
	StudentStatusGraduated = "graduated"
	StudentStatusWithdrawn = "withdrawn"
)

// FullName returns the student's display name
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// ClassName returns the assigned class name, or empty when unassigned
func (s *Student) ClassName() string {
	if s.Class != nil && s.Class.ID != 0 {
		return s.Class.Name
	}
	return ""
}

// StudentResponse is the JSON response format for students
type StudentResponse struct {
	ID             uint       `json:"id"`
	FullName       string     `json:"full_name"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Gender         string     `json:"gender"`
	BirthDate      *time.Time `json:"birth_date"`
	GuardianName   string     `json:"guardian_name"`
	GuardianPhone  string     `json:"guardian_phone"`
	Address        *string    `json:"address"`
	ClassID        *uint      `json:"class_id"`
	ClassName      string     `json:"class_name,omitempty"`
	EnrollmentDate *time.Time `json:"enrollment_date"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ToResponse converts Student to StudentResponse
func (s *Student) ToResponse() StudentResponse {
	return StudentResponse{
		ID:             s.ID,
		FullName:       s.FullName(),
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Gender:         s.Gender,
		BirthDate:      s.BirthDate,
		GuardianName:   s.GuardianName,
		GuardianPhone:  s.GuardianPhone,
		Address:        s.Address,
		ClassID:        s.ClassID,
		ClassName:      s.ClassName(),
		EnrollmentDate: s.EnrollmentDate,
		Status:         s.Status,
		CreatedAt:      s.CreatedAt,
	}
}
