package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nkamgang/scolaris-api/internal/config"
	"github.com/nkamgang/scolaris-api/internal/jobs"
	"github.com/nkamgang/scolaris-api/internal/models"
)

func fullPlan() *models.PaymentPlan {
	return &models.PaymentPlan{ID: 1, Name: models.PlanFull, Installments: 1}
}

func trimestralPlan() *models.PaymentPlan {
	return &models.PaymentPlan{ID: 2, Name: models.PlanTrimestral, Installments: 3}
}

func flexiblePlan() *models.PaymentPlan {
	return &models.PaymentPlan{ID: 3, Name: models.PlanFlexible, Installments: 0}
}

func intPtr(n int) *int { return &n }

func TestComputeFullPlan(t *testing.T) {
	schedule := &models.FeeSchedule{YearlyAmount: 300000, TermAmount: 100000}

	result, err := Compute(fullPlan(), schedule, ComputeInput{})
	assert.NoError(t, err)
	assert.Equal(t, 300000.0, result.OriginalAmount)
	assert.Equal(t, 0.0, result.DiscountAmount)
	assert.Equal(t, 300000.0, result.FinalAmount)
	assert.Equal(t, 300000.0, result.AmountDue)
	assert.Equal(t, 0.0, result.RemainingBalance)
	assert.True(t, result.IsFullPayment)
}

func TestComputeFullPlanWithDiscount(t *testing.T) {
	schedule := &models.FeeSchedule{YearlyAmount: 300000, TermAmount: 100000}

	result, err := Compute(fullPlan(), schedule, ComputeInput{DiscountPercent: 25})
	assert.NoError(t, err)
	assert.Equal(t, 300000.0, result.OriginalAmount)
	assert.Equal(t, 75000.0, result.DiscountAmount)
	assert.Equal(t, 225000.0, result.FinalAmount)
	assert.Equal(t, 225000.0, result.AmountDue)
	// The remaining balance of a full payment stays zero whatever the discount
	assert.Equal(t, 0.0, result.RemainingBalance)
	assert.True(t, result.IsFullPayment)
}

func TestComputeTrimestralTerms(t *testing.T) {
	schedule := &models.FeeSchedule{YearlyAmount: 300000, TermAmount: 100000}

	tests := []struct {
		term          int
		remaining     float64
		isFullPayment bool
	}{
		{term: 1, remaining: 200000, isFullPayment: false},
		{term: 2, remaining: 100000, isFullPayment: false},
		{term: 3, remaining: 0, isFullPayment: true},
	}

	for _, tt := range tests {
		result, err := Compute(trimestralPlan(), schedule, ComputeInput{TermNumber: intPtr(tt.term)})
		assert.NoError(t, err)
		assert.Equal(t, 100000.0, result.OriginalAmount, "term %d", tt.term)
		assert.Equal(t, 100000.0, result.AmountDue, "term %d", tt.term)
		assert.Equal(t, tt.remaining, result.RemainingBalance, "term %d", tt.term)
		assert.Equal(t, tt.isFullPayment, result.IsFullPayment, "term %d", tt.term)
	}
}

func TestComputeTrimestralWithDiscount(t *testing.T) {
	// Yearly 450000 gives a term of 150000
	schedule := &models.FeeSchedule{YearlyAmount: 450000, TermAmount: DeriveTermAmount(450000)}

	first, err := Compute(trimestralPlan(), schedule, ComputeInput{TermNumber: intPtr(1)})
	assert.NoError(t, err)
	assert.Equal(t, 150000.0, first.AmountDue)
	assert.Equal(t, 300000.0, first.RemainingBalance)

	// 10% discount on the last term; the remaining balance still reaches zero
	last, err := Compute(trimestralPlan(), schedule, ComputeInput{TermNumber: intPtr(3), DiscountPercent: 10})
	assert.NoError(t, err)
	assert.Equal(t, 150000.0, last.OriginalAmount)
	assert.Equal(t, 15000.0, last.DiscountAmount)
	assert.Equal(t, 135000.0, last.FinalAmount)
	assert.Equal(t, 0.0, last.RemainingBalance)
	assert.True(t, last.IsFullPayment)
}

func TestComputeFlexible(t *testing.T) {
	// Partial payment: the operator states what is still owed
	partial, err := Compute(flexiblePlan(), &models.FeeSchedule{}, ComputeInput{FreeAmount: 42500, RemainingBalance: 257500})
	assert.NoError(t, err)
	assert.Equal(t, 42500.0, partial.OriginalAmount)
	assert.Equal(t, 42500.0, partial.AmountDue)
	assert.Equal(t, 257500.0, partial.RemainingBalance)
	assert.False(t, partial.IsFullPayment)

	// Clearing payment: nothing left owed
	clearing, err := Compute(flexiblePlan(), &models.FeeSchedule{}, ComputeInput{FreeAmount: 50000})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, clearing.RemainingBalance)
	assert.True(t, clearing.IsFullPayment)
}

func TestFlexiblePartialPaymentKeepsAccountOpen(t *testing.T) {
	year := "2025-2026"
	result, err := Compute(flexiblePlan(), &models.FeeSchedule{}, ComputeInput{FreeAmount: 1000, RemainingBalance: 299000})
	assert.NoError(t, err)

	summary := SummarizeReceipts(1, year, []models.Receipt{{
		Amount:           result.AmountDue,
		RemainingBalance: result.RemainingBalance,
		Status:           models.ReceiptStatusPaid,
		AcademicYear:     year,
		PaymentDate:      day(3),
	}})
	assert.Equal(t, 1000.0, summary.TotalPaid)
	assert.Equal(t, 299000.0, summary.TotalDue)
	assert.False(t, summary.IsAccountSettled)
}

func TestComputeIsDeterministic(t *testing.T) {
	schedule := &models.FeeSchedule{YearlyAmount: 300000, TermAmount: 100000}
	in := ComputeInput{TermNumber: intPtr(2), DiscountPercent: 5}

	first, err := Compute(trimestralPlan(), schedule, in)
	assert.NoError(t, err)
	second, err := Compute(trimestralPlan(), schedule, in)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeValidation(t *testing.T) {
	schedule := &models.FeeSchedule{YearlyAmount: 300000, TermAmount: 100000}

	tests := []struct {
		name string
		plan *models.PaymentPlan
		in   ComputeInput
	}{
		{name: "negative discount", plan: fullPlan(), in: ComputeInput{DiscountPercent: -1}},
		{name: "discount over 100", plan: fullPlan(), in: ComputeInput{DiscountPercent: 101}},
		{name: "trimestral without term", plan: trimestralPlan(), in: ComputeInput{}},
		{name: "term zero", plan: trimestralPlan(), in: ComputeInput{TermNumber: intPtr(0)}},
		{name: "term four", plan: trimestralPlan(), in: ComputeInput{TermNumber: intPtr(4)}},
		{name: "flexible without amount", plan: flexiblePlan(), in: ComputeInput{}},
		{name: "flexible negative amount", plan: flexiblePlan(), in: ComputeInput{FreeAmount: -500}},
		{name: "flexible negative remaining", plan: flexiblePlan(), in: ComputeInput{FreeAmount: 1000, RemainingBalance: -1}},
		{name: "unknown plan", plan: &models.PaymentPlan{Installments: 7}, in: ComputeInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(tt.plan, schedule, tt.in)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestComputeDiscountBoundaries(t *testing.T) {
	schedule := &models.FeeSchedule{YearlyAmount: 300000, TermAmount: 100000}

	free, err := Compute(fullPlan(), schedule, ComputeInput{DiscountPercent: 100})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, free.FinalAmount)

	none, err := Compute(fullPlan(), schedule, ComputeInput{DiscountPercent: 0})
	assert.NoError(t, err)
	assert.Equal(t, 300000.0, none.FinalAmount)
}

func newTestPaymentService(studentRepo *mockStudentRepository, planRepo *mockPaymentPlanRepository, feeRepo *mockFeeScheduleRepository, receiptRepo *mockReceiptRepository) (*PaymentService, *jobs.Worker) {
	cfg := &config.Config{}
	auditSvc := NewAuditService(nil)
	notificationSvc := NewNotificationService(&mockNotificationRepository{}, &mockUserRepository{})
	receiptSvc := NewReceiptService(receiptRepo, notificationSvc, auditSvc, cfg)
	worker := jobs.NewWorker(1)
	svc := NewPaymentService(studentRepo, feeRepo, planRepo, receiptSvc, notificationSvc, auditSvc, worker)
	return svc, worker
}

func paymentTestStudent() *models.Student {
	classID := uint(4)
	return &models.Student{
		ID:        10,
		FirstName: "Aline",
		LastName:  "Mbarga",
		ClassID:   &classID,
		Class:     &models.Class{ID: 4, Name: "6ème A"},
	}
}

func TestRecordPaymentSnapshotsAndPersists(t *testing.T) {
	var saved *models.Receipt
	receiptRepo := &mockReceiptRepository{
		mockCreate: func(ctx context.Context, receipt *models.Receipt) error {
			saved = receipt
			return nil
		},
		mockCount: func(ctx context.Context) (int64, error) { return 7, nil },
	}
	studentRepo := &mockStudentRepository{
		mockFindByIDWithClass: func(ctx context.Context, id uint) (*models.Student, error) {
			return paymentTestStudent(), nil
		},
	}
	planRepo := &mockPaymentPlanRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.PaymentPlan, error) {
			return trimestralPlan(), nil
		},
	}
	feeRepo := &mockFeeScheduleRepository{
		mockFindByClassAndYear: func(ctx context.Context, classID uint, academicYear string) (*models.FeeSchedule, error) {
			assert.Equal(t, uint(4), classID)
			assert.Equal(t, "2025-2026", academicYear)
			return &models.FeeSchedule{ClassID: 4, YearlyAmount: 300000, TermAmount: 100000, AcademicYear: academicYear}, nil
		},
	}

	svc, worker := newTestPaymentService(studentRepo, planRepo, feeRepo, receiptRepo)
	defer worker.Shutdown()

	receipt, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		StudentID:     10,
		PaymentPlanID: 2,
		TermNumber:    intPtr(1),
		PaymentMethod: models.PaymentMethodCash,
		AcademicYear:  "2025-2026",
	}, 99)

	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Equal(t, "Aline Mbarga", receipt.StudentName)
	assert.Equal(t, "6ème A", receipt.ClassName)
	assert.Equal(t, 100000.0, receipt.Amount)
	assert.Equal(t, 200000.0, receipt.RemainingBalance)
	assert.Equal(t, models.ReceiptStatusPaid, receipt.Status)
	assert.Equal(t, 1, *receipt.TermNumber)
	assert.NotEmpty(t, receipt.ReceiptNumber)
	assert.NotEmpty(t, receipt.TransactionID)
	assert.False(t, receipt.PaymentDate.IsZero())
	assert.Equal(t, uint(99), *receipt.CreatedByUserID)
}

func TestRecordPaymentFlexibleSkipsSchedule(t *testing.T) {
	receiptRepo := &mockReceiptRepository{}
	studentRepo := &mockStudentRepository{
		mockFindByIDWithClass: func(ctx context.Context, id uint) (*models.Student, error) {
			// No class assignment; the flexible plan must still work
			return &models.Student{ID: 10, FirstName: "Paul", LastName: "Essomba"}, nil
		},
	}
	planRepo := &mockPaymentPlanRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.PaymentPlan, error) {
			return flexiblePlan(), nil
		},
	}
	feeRepo := &mockFeeScheduleRepository{
		mockFindByClassAndYear: func(ctx context.Context, classID uint, academicYear string) (*models.FeeSchedule, error) {
			t.Fatal("the flexible plan must not read the fee schedule")
			return nil, nil
		},
	}

	svc, worker := newTestPaymentService(studentRepo, planRepo, feeRepo, receiptRepo)
	defer worker.Shutdown()

	receipt, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		StudentID:        10,
		PaymentPlanID:    3,
		FreeAmount:       25000,
		RemainingBalance: 75000,
		PaymentMethod:    models.PaymentMethodMobile,
		AcademicYear:     "2025-2026",
	}, 1)

	assert.NoError(t, err)
	assert.Equal(t, 25000.0, receipt.Amount)
	assert.Equal(t, 75000.0, receipt.RemainingBalance)
	assert.False(t, receipt.IsFullPayment)
	assert.Nil(t, receipt.TermNumber)
}

func TestRecordPaymentValidation(t *testing.T) {
	studentRepo := &mockStudentRepository{
		mockFindByIDWithClass: func(ctx context.Context, id uint) (*models.Student, error) {
			return paymentTestStudent(), nil
		},
	}
	planRepo := &mockPaymentPlanRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.PaymentPlan, error) {
			return fullPlan(), nil
		},
	}
	feeRepo := &mockFeeScheduleRepository{
		mockFindByClassAndYear: func(ctx context.Context, classID uint, academicYear string) (*models.FeeSchedule, error) {
			return &models.FeeSchedule{YearlyAmount: 300000, TermAmount: 100000}, nil
		},
	}

	svc, worker := newTestPaymentService(studentRepo, planRepo, feeRepo, &mockReceiptRepository{})
	defer worker.Shutdown()

	tests := []struct {
		name string
		in   RecordPaymentInput
	}{
		{name: "missing student", in: RecordPaymentInput{PaymentPlanID: 1, PaymentMethod: models.PaymentMethodCash, AcademicYear: "2025-2026"}},
		{name: "missing academic year", in: RecordPaymentInput{StudentID: 10, PaymentPlanID: 1, PaymentMethod: models.PaymentMethodCash}},
		{name: "malformed academic year", in: RecordPaymentInput{StudentID: 10, PaymentPlanID: 1, PaymentMethod: models.PaymentMethodCash, AcademicYear: "2025"}},
		{name: "unknown payment method", in: RecordPaymentInput{StudentID: 10, PaymentPlanID: 1, PaymentMethod: "bitcoin", AcademicYear: "2025-2026"}},
		{name: "late as initial status", in: RecordPaymentInput{StudentID: 10, PaymentPlanID: 1, PaymentMethod: models.PaymentMethodCash, AcademicYear: "2025-2026", Status: models.ReceiptStatusLate}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			receipt, err := svc.RecordPayment(context.Background(), tt.in, 1)
			assert.Nil(t, receipt)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestRecordPaymentRequiresClassForSchedulePlans(t *testing.T) {
	studentRepo := &mockStudentRepository{
		mockFindByIDWithClass: func(ctx context.Context, id uint) (*models.Student, error) {
			return &models.Student{ID: 10, FirstName: "Paul", LastName: "Essomba"}, nil
		},
	}
	planRepo := &mockPaymentPlanRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.PaymentPlan, error) {
			return fullPlan(), nil
		},
	}

	svc, worker := newTestPaymentService(studentRepo, planRepo, &mockFeeScheduleRepository{}, &mockReceiptRepository{})
	defer worker.Shutdown()

	_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		StudentID:     10,
		PaymentPlanID: 1,
		PaymentMethod: models.PaymentMethodCash,
		AcademicYear:  "2025-2026",
	}, 1)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestPreviewWritesNothing(t *testing.T) {
	receiptRepo := &mockReceiptRepository{
		mockCreate: func(ctx context.Context, receipt *models.Receipt) error {
			t.Fatal("preview must not persist a receipt")
			return nil
		},
	}
	studentRepo := &mockStudentRepository{
		mockFindByIDWithClass: func(ctx context.Context, id uint) (*models.Student, error) {
			return paymentTestStudent(), nil
		},
	}
	planRepo := &mockPaymentPlanRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.PaymentPlan, error) {
			return fullPlan(), nil
		},
	}
	feeRepo := &mockFeeScheduleRepository{
		mockFindByClassAndYear: func(ctx context.Context, classID uint, academicYear string) (*models.FeeSchedule, error) {
			return &models.FeeSchedule{YearlyAmount: 300000, TermAmount: 100000}, nil
		},
	}

	svc, worker := newTestPaymentService(studentRepo, planRepo, feeRepo, receiptRepo)
	defer worker.Shutdown()

	result, err := svc.Preview(context.Background(), RecordPaymentInput{
		StudentID:     10,
		PaymentPlanID: 1,
		AcademicYear:  "2025-2026",
	})
	assert.NoError(t, err)
	assert.Equal(t, 300000.0, result.AmountDue)
}

func TestTuitionLifecycleAcrossTerms(t *testing.T) {
	year := "2025-2026"
	schedule := &models.FeeSchedule{YearlyAmount: 450000, TermAmount: DeriveTermAmount(450000)}

	first, err := Compute(trimestralPlan(), schedule, ComputeInput{TermNumber: intPtr(1)})
	assert.NoError(t, err)

	ledger := []models.Receipt{{
		Amount:           first.AmountDue,
		RemainingBalance: first.RemainingBalance,
		Status:           models.ReceiptStatusPaid,
		AcademicYear:     year,
		PaymentDate:      time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC),
	}}

	afterFirst := SummarizeReceipts(1, year, ledger)
	assert.Equal(t, 150000.0, afterFirst.TotalPaid)
	assert.Equal(t, 300000.0, afterFirst.TotalDue)
	assert.False(t, afterFirst.IsAccountSettled)

	last, err := Compute(trimestralPlan(), schedule, ComputeInput{TermNumber: intPtr(3), DiscountPercent: 10})
	assert.NoError(t, err)

	ledger = append(ledger, models.Receipt{
		Amount:           last.AmountDue,
		RemainingBalance: last.RemainingBalance,
		Status:           models.ReceiptStatusPaid,
		AcademicYear:     year,
		PaymentDate:      time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC),
	})

	afterLast := SummarizeReceipts(1, year, ledger)
	assert.Equal(t, 285000.0, afterLast.TotalPaid)
	assert.Equal(t, 0.0, afterLast.TotalDue)
	assert.True(t, afterLast.IsAccountSettled)
}
