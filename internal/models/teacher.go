package models

import (
	"time"
)

// Teacher represents a teaching staff member (not an API account)
type Teacher struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	FirstName string     `gorm:"not null" json:"first_name"`
	LastName  string     `gorm:"not null" json:"last_name"`
	Email     *string    `gorm:"uniqueIndex" json:"email"`
	Phone     string     `json:"phone"`
	Specialty string     `json:"specialty"`
	HiredAt   *time.Time `gorm:"type:date" json:"hired_at"`
	Status    string     `gorm:"default:active;index" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Associations
	Courses []Course `gorm:"foreignKey:TeacherID" json:"courses,omitempty"`
}

// TableName specifies the table name for Teacher
func (Teacher) TableName() string {
	return "teachers"
}

// Teacher status constants
const (
	TeacherStatusActive   = "active"
	TeacherStatusInactive = "inactive"
)

// FullName returns the teacher's display name
func (t *Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}
