package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/nkamgang/scolaris-api/internal/config"
	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
	"github.com/nkamgang/scolaris-api/internal/statemachine"
	"github.com/nkamgang/scolaris-api/pkg/logger"
)

// ReceiptService owns the receipt ledger: number/transaction-id generation,
// persistence and status transitions. Financial fields are frozen at creation
// and never recomputed here.
type ReceiptService struct {
	repo            repository.ReceiptRepository
	notificationSvc *NotificationService
	auditSvc        *AuditService
	cfg             *config.Config

	// injectable clock
	now func() time.Time
}

func NewReceiptService(repo repository.ReceiptRepository, notificationSvc *NotificationService, auditSvc *AuditService, cfg *config.Config) *ReceiptService {
	return &ReceiptService{
		repo:            repo,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		cfg:             cfg,
		now:             time.Now,
	}
}

// GenerateReceiptNumber builds the next human-readable receipt number,
// RECU-{YY}{MM}-{seq}. The sequence is global over all receipts, not
// per student. Two concurrent calls can collide; receipt numbers are a
// display artifact, uniqueness is carried by the transaction id.
func (s *ReceiptService) GenerateReceiptNumber(ctx context.Context) (string, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return "", err
	}
	now := s.now()
	return fmt.Sprintf("RECU-%02d%02d-%04d", now.Year()%100, int(now.Month()), count+1), nil
}

// GenerateTransactionID builds a unique-enough transaction identifier
func (s *ReceiptService) GenerateTransactionID() string {
	return fmt.Sprintf("TRX-%d-%d", s.now().UnixMilli(), rand.Intn(10000))
}

// Create assigns identifiers and persists the receipt. Business validation
// already happened in the payment computation; only storage faults and
// transaction-id collisions can fail here.
func (s *ReceiptService) Create(ctx context.Context, receipt *models.Receipt) error {
	number, err := s.GenerateReceiptNumber(ctx)
	if err != nil {
		return err
	}
	receipt.ReceiptNumber = number
	receipt.TransactionID = s.GenerateTransactionID()
	if receipt.PaymentDate.IsZero() {
		receipt.PaymentDate = s.now()
	}
	return s.repo.Create(ctx, receipt)
}

func (s *ReceiptService) FindByID(ctx context.Context, id uint) (*models.Receipt, error) {
	return s.repo.FindByID(ctx, id)
}

// FindByStudent returns a student's receipts in insertion order
func (s *ReceiptService) FindByStudent(ctx context.Context, studentID uint) ([]models.Receipt, error) {
	return s.repo.FindByStudent(ctx, studentID)
}

func (s *ReceiptService) List(ctx context.Context, query *repository.ListQuery) ([]models.Receipt, int64, error) {
	return s.repo.List(ctx, query)
}

// SetDocumentPath remembers where the generated PDF of a receipt is cached
func (s *ReceiptService) SetDocumentPath(ctx context.Context, id uint, path string) error {
	return s.repo.UpdateDocumentPath(ctx, id, path)
}

// UpdateStatus transitions a receipt through its state machine. Only the
// status field is written; amounts stay as recorded.
func (s *ReceiptService) UpdateStatus(ctx context.Context, id uint, newStatus string, actorID uint) (*models.Receipt, error) {
	receipt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	rfsm := statemachine.NewReceiptFSM(receipt)
	switch newStatus {
	case models.ReceiptStatusPaid:
		err = rfsm.MarkPaid(ctx)
	case models.ReceiptStatusLate:
		err = rfsm.MarkLate(ctx)
	default:
		return nil, fmt.Errorf("%w : statut inconnu %q", ErrValidation, newStatus)
	}
	if err != nil {
		return nil, ErrInvalidState
	}

	if err := s.repo.UpdateStatus(ctx, id, receipt.Status); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, "STATUS", "Receipt", id,
		fmt.Sprintf("Reçu %s : statut %s", receipt.ReceiptNumber, receipt.Status), "", "")
	return receipt, nil
}

// MarkLateReceipts flags every pending receipt older than the configured
// grace period. Runs as a scheduled job.
func (s *ReceiptService) MarkLateReceipts(ctx context.Context) error {
	cutoff := s.now().AddDate(0, 0, -s.cfg.LatePaymentGraceDays)

	receipts, err := s.repo.FindPendingBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	var marked int
	for i := range receipts {
		receipt := &receipts[i]
		rfsm := statemachine.NewReceiptFSM(receipt)
		if err := rfsm.MarkLate(ctx); err != nil {
			continue
		}
		if err := s.repo.UpdateStatus(ctx, receipt.ID, receipt.Status); err != nil {
			logger.Error("failed to mark receipt late", "receipt_id", receipt.ID, "error", err)
			continue
		}
		marked++
		s.notificationSvc.NotifyAdmins(ctx,
			"Paiement en retard",
			fmt.Sprintf("Le reçu %s de %s est en retard", receipt.ReceiptNumber, receipt.StudentName),
			models.NotificationTypePaymentLate)
	}

	if marked > 0 {
		logger.Info("late receipts marked", "count", marked)
	}
	return nil
}
