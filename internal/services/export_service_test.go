package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nkamgang/scolaris-api/internal/config"
	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
)

func exportTestReceipts() []models.Receipt {
	return []models.Receipt{
		{
			ReceiptNumber:    "RECU-2509-0001",
			TransactionID:    "TRX-1757000000000-42",
			StudentName:      "Mbarga, Aline", // embedded comma must survive
			ClassName:        "6ème A",
			OriginalAmount:   100000,
			FinalAmount:      100000,
			Amount:           100000,
			RemainingBalance: 200000,
			PaymentMethod:    models.PaymentMethodCash,
			PaymentDate:      time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC),
			AcademicYear:     "2025-2026",
			Status:           models.ReceiptStatusPaid,
		},
	}
}

func TestExportReceiptsCSV(t *testing.T) {
	repo := &mockReceiptRepository{
		mockList: func(ctx context.Context, query *repository.ListQuery) ([]models.Receipt, int64, error) {
			assert.Equal(t, "2025-2026", query.Filters["academic_year"])
			return exportTestReceipts(), 1, nil
		},
	}
	svc := NewExportService(repo, &config.Config{})

	data, filename, err := svc.ExportReceiptsCSV(context.Background(), "2025-2026")
	assert.NoError(t, err)
	assert.Contains(t, filename, "recus_2025-2026")

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, receiptCSVHeader, rows[0])

	row := rows[1]
	assert.Equal(t, "RECU-2509-0001", row[0])
	assert.Equal(t, "Mbarga, Aline", row[2])
	assert.Equal(t, "100000.00", row[4])
	assert.Equal(t, "200000.00", row[8])
	assert.Equal(t, "2025-09-05", row[10])
	assert.Equal(t, "paid", row[12])
}

func TestExportReceiptsCSVEmptyYear(t *testing.T) {
	repo := &mockReceiptRepository{
		mockList: func(ctx context.Context, query *repository.ListQuery) ([]models.Receipt, int64, error) {
			return nil, 0, nil
		},
	}
	svc := NewExportService(repo, &config.Config{})

	data, _, err := svc.ExportReceiptsCSV(context.Background(), "2030-2031")
	assert.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	assert.NoError(t, err)
	// Header only
	assert.Len(t, rows, 1)
}

func TestReceiptPDF(t *testing.T) {
	svc := NewExportService(&mockReceiptRepository{}, &config.Config{})

	receipts := exportTestReceipts()
	data, err := svc.ReceiptPDF(&receipts[0])
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
