package services

import (
	"context"

	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
)

// BalanceService is the read-side projection over the receipt ledger. It
// performs no writes; every summary is recomputed from the receipts.
type BalanceService struct {
	receiptRepo repository.ReceiptRepository
	studentRepo repository.StudentRepository
}

func NewBalanceService(receiptRepo repository.ReceiptRepository, studentRepo repository.StudentRepository) *BalanceService {
	return &BalanceService{
		receiptRepo: receiptRepo,
		studentRepo: studentRepo,
	}
}

// BalanceSummary is one student's financial position for one academic year
type BalanceSummary struct {
	StudentID          uint    `json:"student_id"`
	AcademicYear       string  `json:"academic_year"`
	TotalPaid          float64 `json:"total_paid"`
	TotalDue           float64 `json:"total_due"`
	HasLatePayments    bool    `json:"has_late_payments"`
	HasPendingPayments bool    `json:"has_pending_payments"`
	IsAccountSettled   bool    `json:"is_account_settled"`
}

// Summarize aggregates a student's receipts. The academic year is an
// explicit parameter computed once by the caller, never re-read from the
// wall clock mid-aggregation.
func (s *BalanceService) Summarize(ctx context.Context, studentID uint, academicYear string) (*BalanceSummary, error) {
	if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
		return nil, ErrNotFound
	}

	receipts, err := s.receiptRepo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return SummarizeReceipts(studentID, academicYear, receipts), nil
}

// SummarizeReceipts folds a receipt set into a balance summary. Pure.
//
// totalPaid counts paid receipts of the given year; totalDue is the
// remaining balance of the year's most recent receipt by payment date; the
// late/pending flags look across all years.
func SummarizeReceipts(studentID uint, academicYear string, receipts []models.Receipt) *BalanceSummary {
	summary := &BalanceSummary{
		StudentID:    studentID,
		AcademicYear: academicYear,
	}

	var latest *models.Receipt
	for i := range receipts {
		r := &receipts[i]

		switch r.Status {
		case models.ReceiptStatusLate:
			summary.HasLatePayments = true
		case models.ReceiptStatusPending:
			summary.HasPendingPayments = true
		}

		if r.AcademicYear != academicYear {
			continue
		}
		if r.Status == models.ReceiptStatusPaid {
			summary.TotalPaid += r.Amount
		}
		if latest == nil || r.PaymentDate.After(latest.PaymentDate) {
			latest = r
		}
	}

	if latest != nil {
		summary.TotalDue = latest.RemainingBalance
	}

	summary.IsAccountSettled = summary.TotalDue == 0 && summary.TotalPaid > 0
	return summary
}
