package models

import (
	"time"
)

// PaymentPlan is one of the fixed installment strategies. The catalog is
// seeded at startup and is not user-editable.
type PaymentPlan struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null" json:"name"`
	Description  string    `json:"description"`
	Installments int       `gorm:"not null" json:"installments"` // 1 full, 3 trimestral, 0 flexible
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for PaymentPlan
func (PaymentPlan) TableName() string {
	return "payment_plans"
}

// Payment plan name constants
const (
	PlanFull       = "full"
	PlanTrimestral = "trimestral"
	PlanFlexible   = "flexible"
)

// IsFull returns true for the single-installment plan
func (p *PaymentPlan) IsFull() bool {
	return p.Installments == 1
}

// IsTrimestral returns true for the three-term plan
func (p *PaymentPlan) IsTrimestral() bool {
	return p.Installments == TermCount
}

// IsFlexible returns true for the unconstrained plan
func (p *PaymentPlan) IsFlexible() bool {
	return p.Installments == 0
}

// DefaultPaymentPlans returns the seeded catalog
func DefaultPaymentPlans() []PaymentPlan {
	return []PaymentPlan{
		{Name: PlanFull, Description: "Paiement intégral de l'année", Installments: 1},
		{Name: PlanTrimestral, Description: "Paiement par trimestre", Installments: 3},
		{Name: PlanFlexible, Description: "Montant libre", Installments: 0},
	}
}
