package models

import (
	"time"
)

// Receipt is a ledger entry for one tuition payment event. Financial fields
// are frozen at creation; only Status and the cached PDF path may change
// afterwards. StudentName and ClassName are snapshots taken at payment time
// so a later rename never rewrites a printed receipt.
type Receipt struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	TransactionID    string     `gorm:"uniqueIndex;not null" json:"transaction_id"`
	ReceiptNumber    string     `gorm:"index;not null" json:"receipt_number"`
	StudentID        uint       `gorm:"not null;index" json:"student_id"`
	StudentName      string     `gorm:"not null" json:"student_name"`
	ClassName        string     `json:"class_name"`
	OriginalAmount   float64    `gorm:"type:decimal(12,2);not null" json:"original_amount"`
	DiscountPercent  float64    `gorm:"type:decimal(5,2);default:0" json:"discount_percent"`
	FinalAmount      float64    `gorm:"type:decimal(12,2);not null" json:"final_amount"`
	Amount           float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	RemainingBalance float64    `gorm:"type:decimal(12,2);default:0" json:"remaining_balance"`
	PaymentMethod    string     `gorm:"not null" json:"payment_method"`
	PaymentDate      time.Time  `gorm:"not null;index" json:"payment_date"`
	AcademicYear     string     `gorm:"not null;index" json:"academic_year"`
	PaymentPlanID    uint       `gorm:"not null;index" json:"payment_plan_id"`
	TermNumber       *int       `json:"term_number,omitempty"`
	Status           string     `gorm:"default:paid;not null;index" json:"status"`
	IsFullPayment    bool       `gorm:"default:false" json:"is_full_payment"`
	DocumentPath     *string    `json:"-"` // cached generated PDF
	CreatedByUserID  *uint      `gorm:"index" json:"created_by_user_id"`
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Associations
	Student       Student     `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	PaymentPlan   PaymentPlan `gorm:"foreignKey:PaymentPlanID" json:"payment_plan,omitempty"`
	CreatedByUser *User       `gorm:"foreignKey:CreatedByUserID" json:"created_by_user,omitempty"`
}

// TableName specifies the table name for Receipt
func (Receipt) TableName() string {
	return "receipts"
}

// Receipt status constants
const (
	ReceiptStatusPaid    = "paid"
	ReceiptStatusPending = "pending"
	ReceiptStatusLate    = "late"
)

// Payment method constants
const (
	PaymentMethodCard     = "card"
	PaymentMethodCash     = "cash"
	PaymentMethodTransfer = "transfer"
	PaymentMethodCheck    = "check"
	PaymentMethodMobile   = "mobile"
)

// ValidPaymentMethod reports whether m is one of the accepted methods
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCard, PaymentMethodCash, PaymentMethodTransfer,
		PaymentMethodCheck, PaymentMethodMobile:
		return true
	}
	return false
}

// MayMarkPaid returns true if the receipt can transition to paid
func (r *Receipt) MayMarkPaid() bool {
	return r.Status == ReceiptStatusPending || r.Status == ReceiptStatusLate
}

// MayMarkLate returns true if the receipt can transition to late
func (r *Receipt) MayMarkLate() bool {
	return r.Status == ReceiptStatusPending
}

// ReceiptResponse is the JSON response format for receipts
type ReceiptResponse struct {
	ID               uint      `json:"id"`
	TransactionID    string    `json:"transaction_id"`
	ReceiptNumber    string    `json:"receipt_number"`
	StudentID        uint      `json:"student_id"`
	StudentName      string    `json:"student_name"`
	ClassName        string    `json:"class_name"`
	OriginalAmount   float64   `json:"original_amount"`
	DiscountPercent  float64   `json:"discount_percent"`
	FinalAmount      float64   `json:"final_amount"`
	Amount           float64   `json:"amount"`
	RemainingBalance float64   `json:"remaining_balance"`
	PaymentMethod    string    `json:"payment_method"`
	PaymentDate      time.Time `json:"payment_date"`
	AcademicYear     string    `json:"academic_year"`
	PaymentPlan      string    `json:"payment_plan,omitempty"`
	TermNumber       *int      `json:"term_number,omitempty"`
	Status           string    `json:"status"`
	IsFullPayment    bool      `json:"is_full_payment"`
	HasDocument      bool      `json:"has_document"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToResponse converts Receipt to ReceiptResponse
func (r *Receipt) ToResponse() ReceiptResponse {
	resp := ReceiptResponse{
		ID:               r.ID,
		TransactionID:    r.TransactionID,
		ReceiptNumber:    r.ReceiptNumber,
		StudentID:        r.StudentID,
		StudentName:      r.StudentName,
		ClassName:        r.ClassName,
		OriginalAmount:   r.OriginalAmount,
		DiscountPercent:  r.DiscountPercent,
		FinalAmount:      r.FinalAmount,
		Amount:           r.Amount,
		RemainingBalance: r.RemainingBalance,
		PaymentMethod:    r.PaymentMethod,
		PaymentDate:      r.PaymentDate,
		AcademicYear:     r.AcademicYear,
		TermNumber:       r.TermNumber,
		Status:           r.Status,
		IsFullPayment:    r.IsFullPayment,
		HasDocument:      r.DocumentPath != nil && *r.DocumentPath != "",
		CreatedAt:        r.CreatedAt,
	}
	if r.PaymentPlan.ID != 0 {
		resp.PaymentPlan = r.PaymentPlan.Name
	}
	return resp
}
