package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nkamgang/scolaris-api/internal/config"
	"github.com/nkamgang/scolaris-api/internal/models"
)

func newTestReceiptService(repo *mockReceiptRepository) *ReceiptService {
	notificationSvc := NewNotificationService(&mockNotificationRepository{}, &mockUserRepository{})
	return NewReceiptService(repo, notificationSvc, NewAuditService(nil), &config.Config{LatePaymentGraceDays: 30})
}

func TestGenerateReceiptNumber(t *testing.T) {
	repo := &mockReceiptRepository{
		mockCount: func(ctx context.Context) (int64, error) { return 41, nil },
	}
	svc := newTestReceiptService(repo)
	svc.now = func() time.Time {
		return time.Date(2025, time.September, 15, 10, 0, 0, 0, time.UTC)
	}

	number, err := svc.GenerateReceiptNumber(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "RECU-2509-0042", number)
}

func TestGenerateReceiptNumberPadsSequence(t *testing.T) {
	repo := &mockReceiptRepository{
		mockCount: func(ctx context.Context) (int64, error) { return 0, nil },
	}
	svc := newTestReceiptService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, time.January, 2, 8, 30, 0, 0, time.UTC)
	}

	number, err := svc.GenerateReceiptNumber(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "RECU-2601-0001", number)
}

func TestGenerateTransactionIDFormat(t *testing.T) {
	svc := newTestReceiptService(&mockReceiptRepository{})

	trx := svc.GenerateTransactionID()
	assert.Regexp(t, regexp.MustCompile(`^TRX-\d+-\d+$`), trx)
}

func TestCreateAssignsIdentifiersAndDate(t *testing.T) {
	var saved *models.Receipt
	repo := &mockReceiptRepository{
		mockCount:  func(ctx context.Context) (int64, error) { return 3, nil },
		mockCreate: func(ctx context.Context, receipt *models.Receipt) error { saved = receipt; return nil },
	}
	svc := newTestReceiptService(repo)
	fixed := time.Date(2025, time.October, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	receipt := &models.Receipt{StudentID: 1, Amount: 100000}
	err := svc.Create(context.Background(), receipt)

	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Equal(t, "RECU-2510-0004", receipt.ReceiptNumber)
	assert.NotEmpty(t, receipt.TransactionID)
	assert.Equal(t, fixed, receipt.PaymentDate)
}

func TestCreateKeepsExplicitPaymentDate(t *testing.T) {
	repo := &mockReceiptRepository{}
	svc := newTestReceiptService(repo)

	when := time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC)
	receipt := &models.Receipt{StudentID: 1, PaymentDate: when}
	err := svc.Create(context.Background(), receipt)

	assert.NoError(t, err)
	assert.Equal(t, when, receipt.PaymentDate)
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name      string
		from      string
		to        string
		expectErr error
	}{
		{name: "pending to paid", from: models.ReceiptStatusPending, to: models.ReceiptStatusPaid},
		{name: "late to paid", from: models.ReceiptStatusLate, to: models.ReceiptStatusPaid},
		{name: "pending to late", from: models.ReceiptStatusPending, to: models.ReceiptStatusLate},
		{name: "paid to late", from: models.ReceiptStatusPaid, to: models.ReceiptStatusLate, expectErr: ErrInvalidState},
		{name: "paid to paid", from: models.ReceiptStatusPaid, to: models.ReceiptStatusPaid, expectErr: ErrInvalidState},
		{name: "late to late", from: models.ReceiptStatusLate, to: models.ReceiptStatusLate, expectErr: ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var persisted string
			repo := &mockReceiptRepository{
				mockFindByID: func(ctx context.Context, id uint) (*models.Receipt, error) {
					return &models.Receipt{ID: id, ReceiptNumber: "RECU-2509-0001", Status: tt.from}, nil
				},
				mockUpdateStatus: func(ctx context.Context, id uint, status string) error {
					persisted = status
					return nil
				},
			}
			svc := newTestReceiptService(repo)

			receipt, err := svc.UpdateStatus(context.Background(), 1, tt.to, 1)
			if tt.expectErr != nil {
				assert.Nil(t, receipt)
				assert.True(t, errors.Is(err, tt.expectErr))
				assert.Empty(t, persisted)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.to, receipt.Status)
			assert.Equal(t, tt.to, persisted)
		})
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	repo := &mockReceiptRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Receipt, error) {
			return &models.Receipt{ID: id, Status: models.ReceiptStatusPending}, nil
		},
	}
	svc := newTestReceiptService(repo)

	_, err := svc.UpdateStatus(context.Background(), 1, "cancelled", 1)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo := &mockReceiptRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Receipt, error) {
			return nil, errors.New("record not found")
		},
	}
	svc := newTestReceiptService(repo)

	_, err := svc.UpdateStatus(context.Background(), 999, models.ReceiptStatusPaid, 1)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMarkLateReceipts(t *testing.T) {
	updated := make(map[uint]string)
	repo := &mockReceiptRepository{
		mockFindPendingBefore: func(ctx context.Context, cutoff time.Time) ([]models.Receipt, error) {
			return []models.Receipt{
				{ID: 1, ReceiptNumber: "RECU-2509-0001", StudentName: "Aline Mbarga", Status: models.ReceiptStatusPending},
				{ID: 2, ReceiptNumber: "RECU-2509-0002", StudentName: "Paul Essomba", Status: models.ReceiptStatusPending},
			}, nil
		},
		mockUpdateStatus: func(ctx context.Context, id uint, status string) error {
			updated[id] = status
			return nil
		},
	}
	svc := newTestReceiptService(repo)

	err := svc.MarkLateReceipts(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.ReceiptStatusLate, updated[1])
	assert.Equal(t, models.ReceiptStatusLate, updated[2])
}

func TestMarkLateReceiptsCutoffUsesGracePeriod(t *testing.T) {
	var gotCutoff time.Time
	repo := &mockReceiptRepository{
		mockFindPendingBefore: func(ctx context.Context, cutoff time.Time) ([]models.Receipt, error) {
			gotCutoff = cutoff
			return nil, nil
		},
	}
	svc := newTestReceiptService(repo)
	now := time.Date(2025, time.November, 30, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	err := svc.MarkLateReceipts(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -30), gotCutoff)
}
