package services

import (
	"context"
	"fmt"

	"github.com/nkamgang/scolaris-api/internal/jobs"
	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
)

// PaymentService computes tuition amounts and records payments in the
// receipt ledger.
type PaymentService struct {
	studentRepo     repository.StudentRepository
	feeScheduleRepo repository.FeeScheduleRepository
	planRepo        repository.PaymentPlanRepository
	receiptSvc      *ReceiptService
	notificationSvc *NotificationService
	auditSvc        *AuditService
	worker          *jobs.Worker
}

func NewPaymentService(
	studentRepo repository.StudentRepository,
	feeScheduleRepo repository.FeeScheduleRepository,
	planRepo repository.PaymentPlanRepository,
	receiptSvc *ReceiptService,
	notificationSvc *NotificationService,
	auditSvc *AuditService,
	worker *jobs.Worker,
) *PaymentService {
	return &PaymentService{
		studentRepo:     studentRepo,
		feeScheduleRepo: feeScheduleRepo,
		planRepo:        planRepo,
		receiptSvc:      receiptSvc,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		worker:          worker,
	}
}

// Plans returns the seeded payment plan catalog
func (s *PaymentService) Plans(ctx context.Context) ([]models.PaymentPlan, error) {
	return s.planRepo.FindAll(ctx)
}

// ComputeInput carries the operator's selections for one payment
type ComputeInput struct {
	DiscountPercent float64
	TermNumber      *int
	// FreeAmount and RemainingBalance are only read for the flexible plan:
	// the amount tendered and what the operator says is still owed after it.
	FreeAmount       float64
	RemainingBalance float64
}

// ComputeResult is the fully derived money breakdown for one payment
type ComputeResult struct {
	OriginalAmount   float64 `json:"original_amount"`
	DiscountAmount   float64 `json:"discount_amount"`
	FinalAmount      float64 `json:"final_amount"`
	AmountDue        float64 `json:"amount_due"`
	RemainingBalance float64 `json:"remaining_balance"`
	IsFullPayment    bool    `json:"is_full_payment"`
}

// Compute derives every amount of a payment from the plan, the class fee
// schedule and the operator inputs. Pure: same inputs, same outputs, no
// writes.
func Compute(plan *models.PaymentPlan, schedule *models.FeeSchedule, in ComputeInput) (*ComputeResult, error) {
	if in.DiscountPercent < 0 || in.DiscountPercent > 100 {
		return nil, fmt.Errorf("%w : remise entre 0 et 100", ErrValidation)
	}

	var originalAmount float64
	switch {
	case plan.IsFull():
		originalAmount = schedule.YearlyAmount
	case plan.IsTrimestral():
		if in.TermNumber == nil {
			return nil, fmt.Errorf("%w : numéro de trimestre requis", ErrValidation)
		}
		if *in.TermNumber < 1 || *in.TermNumber > models.TermCount {
			return nil, fmt.Errorf("%w : trimestre entre 1 et %d", ErrValidation, models.TermCount)
		}
		originalAmount = schedule.TermAmount
	case plan.IsFlexible():
		if in.FreeAmount <= 0 {
			return nil, fmt.Errorf("%w : montant positif requis", ErrValidation)
		}
		if in.RemainingBalance < 0 {
			return nil, fmt.Errorf("%w : le solde restant ne peut pas être négatif", ErrValidation)
		}
		originalAmount = in.FreeAmount
	default:
		return nil, fmt.Errorf("%w : plan de paiement inconnu", ErrValidation)
	}

	discountAmount := originalAmount * in.DiscountPercent / 100
	finalAmount := originalAmount - discountAmount

	result := &ComputeResult{
		OriginalAmount: originalAmount,
		DiscountAmount: discountAmount,
		FinalAmount:    finalAmount,
		AmountDue:      finalAmount,
	}

	switch {
	case plan.IsFull():
		result.RemainingBalance = 0
		result.IsFullPayment = true
	case plan.IsTrimestral():
		remaining := schedule.TermAmount * float64(models.TermCount-*in.TermNumber)
		if remaining < 0 {
			remaining = 0
		}
		result.RemainingBalance = remaining
		result.IsFullPayment = *in.TermNumber == models.TermCount
	case plan.IsFlexible():
		// Remaining balance is not derivable from a free amount; the
		// operator states what is still owed after this payment.
		result.RemainingBalance = in.RemainingBalance
		result.IsFullPayment = in.RemainingBalance == 0
	}

	return result, nil
}

// RecordPaymentInput is everything needed to record one payment
type RecordPaymentInput struct {
	StudentID        uint
	PaymentPlanID    uint
	DiscountPercent  float64
	TermNumber       *int
	FreeAmount       float64
	RemainingBalance float64
	PaymentMethod    string
	AcademicYear     string
	Status           string
}

// Preview computes the amounts for the operator without writing anything
func (s *PaymentService) Preview(ctx context.Context, in RecordPaymentInput) (*ComputeResult, error) {
	_, plan, schedule, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}
	return Compute(plan, schedule, ComputeInput{
		DiscountPercent:  in.DiscountPercent,
		TermNumber:       in.TermNumber,
		FreeAmount:       in.FreeAmount,
		RemainingBalance: in.RemainingBalance,
	})
}

// RecordPayment computes the amounts, snapshots the student and class names
// and writes one receipt to the ledger.
func (s *PaymentService) RecordPayment(ctx context.Context, in RecordPaymentInput, actorID uint) (*models.Receipt, error) {
	student, plan, schedule, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	if !models.ValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w : mode de paiement inconnu", ErrValidation)
	}

	status := in.Status
	if status == "" {
		status = models.ReceiptStatusPaid
	}
	switch status {
	case models.ReceiptStatusPaid, models.ReceiptStatusPending:
	default:
		return nil, fmt.Errorf("%w : statut initial invalide", ErrValidation)
	}

	result, err := Compute(plan, schedule, ComputeInput{
		DiscountPercent:  in.DiscountPercent,
		TermNumber:       in.TermNumber,
		FreeAmount:       in.FreeAmount,
		RemainingBalance: in.RemainingBalance,
	})
	if err != nil {
		return nil, err
	}

	receipt := &models.Receipt{
		StudentID:        student.ID,
		StudentName:      student.FullName(),
		ClassName:        student.ClassName(),
		OriginalAmount:   result.OriginalAmount,
		DiscountPercent:  in.DiscountPercent,
		FinalAmount:      result.FinalAmount,
		Amount:           result.AmountDue,
		RemainingBalance: result.RemainingBalance,
		PaymentMethod:    in.PaymentMethod,
		AcademicYear:     in.AcademicYear,
		PaymentPlanID:    plan.ID,
		TermNumber:       in.TermNumber,
		Status:           status,
		IsFullPayment:    result.IsFullPayment,
		CreatedByUserID:  &actorID,
	}
	if !plan.IsTrimestral() {
		receipt.TermNumber = nil
	}

	if err := s.receiptSvc.Create(ctx, receipt); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, "CREATE", "Receipt", receipt.ID,
		fmt.Sprintf("Reçu %s : %s, %.0f via %s", receipt.ReceiptNumber, receipt.StudentName, receipt.Amount, receipt.PaymentMethod), "", "")

	// Notify admins off the request path
	receiptNumber := receipt.ReceiptNumber
	studentName := receipt.StudentName
	amount := receipt.Amount
	s.worker.EnqueueAsync(func(jobCtx context.Context) error {
		return s.notificationSvc.NotifyAdmins(jobCtx,
			"Paiement enregistré",
			fmt.Sprintf("Reçu %s : %.0f FCFA pour %s", receiptNumber, amount, studentName),
			models.NotificationTypeReceiptCreated)
	})

	return receipt, nil
}

// resolve loads the student, plan and fee schedule a payment needs. Lookup
// misses are validation errors, not faults.
func (s *PaymentService) resolve(ctx context.Context, in RecordPaymentInput) (*models.Student, *models.PaymentPlan, *models.FeeSchedule, error) {
	if in.StudentID == 0 {
		return nil, nil, nil, fmt.Errorf("%w : élève requis", ErrValidation)
	}
	if in.AcademicYear == "" || !models.IsAcademicYearLabel(in.AcademicYear) {
		return nil, nil, nil, fmt.Errorf("%w : année scolaire requise au format 2025-2026", ErrValidation)
	}

	student, err := s.studentRepo.FindByIDWithClass(ctx, in.StudentID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w : élève introuvable", ErrValidation)
	}

	plan, err := s.planRepo.FindByID(ctx, in.PaymentPlanID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w : plan de paiement introuvable", ErrValidation)
	}

	// The flexible plan does not read the schedule; an enrolled class is
	// still required for the other plans.
	var schedule *models.FeeSchedule
	if plan.IsFlexible() {
		schedule = &models.FeeSchedule{}
	} else {
		if student.ClassID == nil {
			return nil, nil, nil, fmt.Errorf("%w : l'élève n'est affecté à aucune classe", ErrValidation)
		}
		schedule, err = s.feeScheduleRepo.FindByClassAndYear(ctx, *student.ClassID, in.AcademicYear)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w : aucun barème pour la classe en %s", ErrValidation, in.AcademicYear)
		}
	}

	return student, plan, schedule, nil
}
