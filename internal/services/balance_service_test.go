package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nkamgang/scolaris-api/internal/models"
)

func day(d int) time.Time {
	return time.Date(2025, time.September, d, 0, 0, 0, 0, time.UTC)
}

func TestSummarizeReceiptsEmpty(t *testing.T) {
	summary := SummarizeReceipts(1, "2025-2026", nil)

	assert.Equal(t, uint(1), summary.StudentID)
	assert.Equal(t, "2025-2026", summary.AcademicYear)
	assert.Equal(t, 0.0, summary.TotalPaid)
	assert.Equal(t, 0.0, summary.TotalDue)
	assert.False(t, summary.HasLatePayments)
	assert.False(t, summary.HasPendingPayments)
	// Nothing due but nothing paid either; the account is not settled
	assert.False(t, summary.IsAccountSettled)
}

func TestSummarizeReceiptsTotalPaidCountsPaidOfYear(t *testing.T) {
	receipts := []models.Receipt{
		{Amount: 100000, RemainingBalance: 200000, Status: models.ReceiptStatusPaid, AcademicYear: "2025-2026", PaymentDate: day(1)},
		{Amount: 100000, RemainingBalance: 100000, Status: models.ReceiptStatusPaid, AcademicYear: "2025-2026", PaymentDate: day(10)},
		{Amount: 50000, RemainingBalance: 0, Status: models.ReceiptStatusPending, AcademicYear: "2025-2026", PaymentDate: day(20)},
		{Amount: 300000, RemainingBalance: 0, Status: models.ReceiptStatusPaid, AcademicYear: "2024-2025", PaymentDate: day(5)},
	}

	summary := SummarizeReceipts(1, "2025-2026", receipts)

	assert.Equal(t, 200000.0, summary.TotalPaid)
	assert.True(t, summary.HasPendingPayments)
	assert.False(t, summary.HasLatePayments)
}

func TestSummarizeReceiptsTotalDueIsLatestRemaining(t *testing.T) {
	receipts := []models.Receipt{
		{Amount: 100000, RemainingBalance: 200000, Status: models.ReceiptStatusPaid, AcademicYear: "2025-2026", PaymentDate: day(1)},
		{Amount: 100000, RemainingBalance: 100000, Status: models.ReceiptStatusPaid, AcademicYear: "2025-2026", PaymentDate: day(15)},
	}

	summary := SummarizeReceipts(1, "2025-2026", receipts)
	assert.Equal(t, 100000.0, summary.TotalDue)
	assert.False(t, summary.IsAccountSettled)
}

func TestSummarizeReceiptsLatestByPaymentDateNotOrder(t *testing.T) {
	// The newest receipt comes first in the slice; selection must go by
	// payment date, not position.
	receipts := []models.Receipt{
		{Amount: 100000, RemainingBalance: 0, Status: models.ReceiptStatusPaid, AcademicYear: "2025-2026", PaymentDate: day(20)},
		{Amount: 100000, RemainingBalance: 200000, Status: models.ReceiptStatusPaid, AcademicYear: "2025-2026", PaymentDate: day(1)},
	}

	summary := SummarizeReceipts(1, "2025-2026", receipts)
	assert.Equal(t, 0.0, summary.TotalDue)
	assert.True(t, summary.IsAccountSettled)
}

func TestSummarizeReceiptsSettledRequiresPayment(t *testing.T) {
	// A single pending receipt with zero remaining balance: due is zero but
	// nothing was actually paid.
	receipts := []models.Receipt{
		{Amount: 25000, RemainingBalance: 0, Status: models.ReceiptStatusPending, AcademicYear: "2025-2026", PaymentDate: day(1)},
	}

	summary := SummarizeReceipts(1, "2025-2026", receipts)
	assert.Equal(t, 0.0, summary.TotalDue)
	assert.Equal(t, 0.0, summary.TotalPaid)
	assert.False(t, summary.IsAccountSettled)
}

func TestSummarizeReceiptsFlagsCrossYears(t *testing.T) {
	// A late receipt from a previous year keeps flagging the account even
	// when the requested year is clean.
	receipts := []models.Receipt{
		{Amount: 100000, RemainingBalance: 0, Status: models.ReceiptStatusLate, AcademicYear: "2024-2025", PaymentDate: day(1)},
		{Amount: 300000, RemainingBalance: 0, Status: models.ReceiptStatusPaid, AcademicYear: "2025-2026", PaymentDate: day(10)},
	}

	summary := SummarizeReceipts(1, "2025-2026", receipts)

	assert.True(t, summary.HasLatePayments)
	assert.Equal(t, 300000.0, summary.TotalPaid)
	// The previous year's receipt does not feed the current year's due
	assert.Equal(t, 0.0, summary.TotalDue)
	assert.True(t, summary.IsAccountSettled)
}

func TestSummarizeTrimestralLifecycle(t *testing.T) {
	year := "2025-2026"

	first := SummarizeReceipts(1, year, []models.Receipt{
		{Amount: 100000, RemainingBalance: 200000, Status: models.ReceiptStatusPaid, AcademicYear: year, PaymentDate: day(1)},
	})
	assert.Equal(t, 100000.0, first.TotalPaid)
	assert.Equal(t, 200000.0, first.TotalDue)
	assert.False(t, first.IsAccountSettled)

	last := SummarizeReceipts(1, year, []models.Receipt{
		{Amount: 100000, RemainingBalance: 200000, Status: models.ReceiptStatusPaid, AcademicYear: year, PaymentDate: day(1)},
		{Amount: 100000, RemainingBalance: 100000, Status: models.ReceiptStatusPaid, AcademicYear: year, PaymentDate: day(10)},
		{Amount: 100000, RemainingBalance: 0, Status: models.ReceiptStatusPaid, AcademicYear: year, PaymentDate: day(20)},
	})
	assert.Equal(t, 300000.0, last.TotalPaid)
	assert.Equal(t, 0.0, last.TotalDue)
	assert.True(t, last.IsAccountSettled)
}

func TestSummarizeUnknownStudent(t *testing.T) {
	receiptRepo := &mockReceiptRepository{}
	studentRepo := &mockStudentRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Student, error) {
			return nil, errors.New("record not found")
		},
	}
	svc := NewBalanceService(receiptRepo, studentRepo)

	summary, err := svc.Summarize(context.Background(), 999, "2025-2026")
	assert.Nil(t, summary)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSummarizeReadsLedger(t *testing.T) {
	receiptRepo := &mockReceiptRepository{
		mockFindByStudent: func(ctx context.Context, studentID uint) ([]models.Receipt, error) {
			assert.Equal(t, uint(7), studentID)
			return []models.Receipt{
				{Amount: 300000, RemainingBalance: 0, Status: models.ReceiptStatusPaid, AcademicYear: "2025-2026", PaymentDate: day(2)},
			}, nil
		},
	}
	studentRepo := &mockStudentRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Student, error) {
			return &models.Student{ID: id}, nil
		},
	}
	svc := NewBalanceService(receiptRepo, studentRepo)

	summary, err := svc.Summarize(context.Background(), 7, "2025-2026")
	assert.NoError(t, err)
	assert.Equal(t, 300000.0, summary.TotalPaid)
	assert.True(t, summary.IsAccountSettled)
}
