package models

import (
	"time"
)

// FeeSchedule defines the yearly tuition for one class in one academic year.
// TermAmount is always derived from YearlyAmount on write; a stored value is
// never trusted independently.
type FeeSchedule struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ClassID         uint      `gorm:"not null;index" json:"class_id"`
	ClassName       string    `json:"class_name"`
	YearlyAmount    float64   `gorm:"type:decimal(12,2);not null" json:"yearly_amount"`
	RegistrationFee float64   `gorm:"type:decimal(12,2);default:0" json:"registration_fee"`
	TermAmount      float64   `gorm:"type:decimal(12,2);not null" json:"term_amount"`
	AcademicYear    string    `gorm:"index" json:"academic_year"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Associations
	Class Class `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

// TableName specifies the table name for FeeSchedule
func (FeeSchedule) TableName() string {
	return "fee_schedules"
}

// TermCount is the number of terms a school year is billed over
const TermCount = 3
