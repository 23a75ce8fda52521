package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/nkamgang/scolaris-api/internal/config"
	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
	"github.com/xuri/excelize/v2"
)

// ExportService renders the receipt ledger as CSV, XLSX and per-receipt PDF
type ExportService struct {
	receiptRepo repository.ReceiptRepository
	cfg         *config.Config
}

func NewExportService(receiptRepo repository.ReceiptRepository, cfg *config.Config) *ExportService {
	return &ExportService{receiptRepo: receiptRepo, cfg: cfg}
}

var receiptCSVHeader = []string{
	"N° reçu", "Transaction", "Élève", "Classe", "Montant original",
	"Remise %", "Montant final", "Montant versé", "Solde restant",
	"Mode", "Date", "Année scolaire", "Statut",
}

// ExportReceiptsCSV writes the ledger rows for one academic year. Fields go
// through encoding/csv so embedded commas and quotes survive.
func (s *ExportService) ExportReceiptsCSV(ctx context.Context, academicYear string) ([]byte, string, error) {
	receipts, err := s.receiptsForYear(ctx, academicYear)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write(receiptCSVHeader)
	for i := range receipts {
		r := &receipts[i]
		_ = writer.Write([]string{
			r.ReceiptNumber,
			r.TransactionID,
			r.StudentName,
			r.ClassName,
			fmt.Sprintf("%.2f", r.OriginalAmount),
			fmt.Sprintf("%.2f", r.DiscountPercent),
			fmt.Sprintf("%.2f", r.FinalAmount),
			fmt.Sprintf("%.2f", r.Amount),
			fmt.Sprintf("%.2f", r.RemainingBalance),
			r.PaymentMethod,
			r.PaymentDate.Format("2006-01-02"),
			r.AcademicYear,
			r.Status,
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("recus_%s_%s.csv", academicYear, time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportReceiptsXLSX writes the same ledger as a spreadsheet
func (s *ExportService) ExportReceiptsXLSX(ctx context.Context, academicYear string) ([]byte, string, error) {
	receipts, err := s.receiptsForYear(ctx, academicYear)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Reçus"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for col, title := range receiptCSVHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, title)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i := range receipts {
		r := &receipts[i]
		row := i + 2
		values := []interface{}{
			r.ReceiptNumber, r.TransactionID, r.StudentName, r.ClassName,
			r.OriginalAmount, r.DiscountPercent, r.FinalAmount, r.Amount,
			r.RemainingBalance, r.PaymentMethod,
			r.PaymentDate.Format("2006-01-02"), r.AcademicYear, r.Status,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("recus_%s_%s.xlsx", academicYear, time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ReceiptPDF renders one receipt as a printable PDF
func (s *ExportService) ReceiptPDF(receipt *models.Receipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Recu de paiement")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 8, "Numero de recu :")
	pdf.Cell(60, 8, receipt.ReceiptNumber)
	pdf.Ln(6)

	pdf.Cell(60, 8, "Transaction :")
	pdf.Cell(60, 8, receipt.TransactionID)
	pdf.Ln(6)

	pdf.Cell(60, 8, "Eleve :")
	pdf.Cell(60, 8, receipt.StudentName)
	pdf.Ln(6)

	pdf.Cell(60, 8, "Classe :")
	pdf.Cell(60, 8, receipt.ClassName)
	pdf.Ln(6)

	pdf.Cell(60, 8, "Annee scolaire :")
	pdf.Cell(60, 8, receipt.AcademicYear)
	pdf.Ln(6)

	pdf.Cell(60, 8, "Date de paiement :")
	pdf.Cell(60, 8, receipt.PaymentDate.Format("02/01/2006"))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(40, 8, "Montants")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 8, "Montant original :")
	pdf.Cell(60, 8, fmt.Sprintf("%.0f %s", receipt.OriginalAmount, s.cfg.Currency))
	pdf.Ln(6)

	if receipt.DiscountPercent > 0 {
		pdf.Cell(60, 8, "Remise :")
		pdf.Cell(60, 8, fmt.Sprintf("%.1f %%", receipt.DiscountPercent))
		pdf.Ln(6)
	}

	pdf.Cell(60, 8, "Montant verse :")
	pdf.Cell(60, 8, fmt.Sprintf("%.0f %s", receipt.Amount, s.cfg.Currency))
	pdf.Ln(6)

	pdf.Cell(60, 8, "Solde restant :")
	pdf.Cell(60, 8, fmt.Sprintf("%.0f %s", receipt.RemainingBalance, s.cfg.Currency))
	pdf.Ln(6)

	pdf.Cell(60, 8, "Mode de paiement :")
	pdf.Cell(60, 8, receipt.PaymentMethod)
	pdf.Ln(6)

	if receipt.TermNumber != nil {
		pdf.Cell(60, 8, "Trimestre :")
		pdf.Cell(60, 8, fmt.Sprintf("%d", *receipt.TermNumber))
		pdf.Ln(6)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ExportService) receiptsForYear(ctx context.Context, academicYear string) ([]models.Receipt, error) {
	query := repository.NewListQuery()
	query.PerPage = 10000
	if academicYear != "" {
		query.Filters["academic_year"] = academicYear
	}
	receipts, _, err := s.receiptRepo.List(ctx, query)
	return receipts, err
}
