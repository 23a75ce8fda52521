package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"html/template"
	"os"
	"time"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/nkamgang/scolaris-api/internal/config"
	"github.com/nkamgang/scolaris-api/internal/repository"
)

// ReportService builds the bursar-facing reports: outstanding balances and
// per-student account statements.
type ReportService struct {
	receiptRepo repository.ReceiptRepository
	studentRepo repository.StudentRepository
	balanceSvc  *BalanceService
	cfg         *config.Config
}

func NewReportService(receiptRepo repository.ReceiptRepository, studentRepo repository.StudentRepository, balanceSvc *BalanceService, cfg *config.Config) *ReportService {
	return &ReportService{
		receiptRepo: receiptRepo,
		studentRepo: studentRepo,
		balanceSvc:  balanceSvc,
		cfg:         cfg,
	}
}

// GenerateUnpaidBalancesCSV lists every student with money still due for the
// academic year
func (s *ReportService) GenerateUnpaidBalancesCSV(ctx context.Context, academicYear string) (*bytes.Buffer, error) {
	studentIDs, err := s.studentRepo.FindAllIDs(ctx)
	if err != nil {
		return nil, err
	}

	b := &bytes.Buffer{}
	writer := csv.NewWriter(b)
	_ = writer.Write([]string{"Élève", "Classe", "Total payé", "Solde dû", "Retard", "Année scolaire"})

	for _, id := range studentIDs {
		summary, err := s.balanceSvc.Summarize(ctx, id, academicYear)
		if err != nil {
			continue
		}
		if summary.TotalDue <= 0 {
			continue
		}
		student, err := s.studentRepo.FindByIDWithClass(ctx, id)
		if err != nil {
			continue
		}
		late := "non"
		if summary.HasLatePayments {
			late = "oui"
		}
		_ = writer.Write([]string{
			student.FullName(),
			student.ClassName(),
			fmt.Sprintf("%.2f", summary.TotalPaid),
			fmt.Sprintf("%.2f", summary.TotalDue),
			late,
			academicYear,
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return b, nil
}

type statementLine struct {
	ReceiptNumber string
	Date          string
	Description   string
	Amount        string
	Remaining     string
	Status        string
}

type statementData struct {
	StudentName  string
	ClassName    string
	AcademicYear string
	Currency     string
	GeneratedAt  string
	Lines        []statementLine
	TotalPaid    string
	TotalDue     string
	Settled      bool
}

// GenerateBalanceStatementPDF renders a student's account statement for one
// academic year
func (s *ReportService) GenerateBalanceStatementPDF(ctx context.Context, studentID uint, academicYear string) (*bytes.Buffer, error) {
	student, err := s.studentRepo.FindByIDWithClass(ctx, studentID)
	if err != nil {
		return nil, ErrNotFound
	}

	receipts, err := s.receiptRepo.FindByStudentAndYear(ctx, studentID, academicYear)
	if err != nil {
		return nil, err
	}

	summary := SummarizeReceipts(studentID, academicYear, receipts)

	data := statementData{
		StudentName:  student.FullName(),
		ClassName:    student.ClassName(),
		AcademicYear: academicYear,
		Currency:     s.cfg.Currency,
		GeneratedAt:  time.Now().Format("02/01/2006 15:04"),
		TotalPaid:    fmt.Sprintf("%.0f", summary.TotalPaid),
		TotalDue:     fmt.Sprintf("%.0f", summary.TotalDue),
		Settled:      summary.IsAccountSettled,
	}
	for i := range receipts {
		r := &receipts[i]
		description := "Paiement"
		if r.TermNumber != nil {
			description = fmt.Sprintf("Trimestre %d", *r.TermNumber)
		} else if r.IsFullPayment {
			description = "Année complète"
		}
		data.Lines = append(data.Lines, statementLine{
			ReceiptNumber: r.ReceiptNumber,
			Date:          r.PaymentDate.Format("02/01/2006"),
			Description:   description,
			Amount:        fmt.Sprintf("%.0f", r.Amount),
			Remaining:     fmt.Sprintf("%.0f", r.RemainingBalance),
			Status:        r.Status,
		})
	}

	return s.generatePDF("balance_statement.html", data)
}

// generatePDF renders an HTML template and converts it with wkhtmltopdf
func (s *ReportService) generatePDF(templateName string, data interface{}) (*bytes.Buffer, error) {
	tmplPath := fmt.Sprintf("internal/services/templates/reports/%s", templateName)
	if _, err := os.Stat(tmplPath); os.IsNotExist(err) {
		tmplPath = fmt.Sprintf("templates/reports/%s", templateName)
	}

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(buf.Bytes()))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}

	return pdfg.Buffer(), nil
}
