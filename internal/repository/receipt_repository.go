package repository

import (
	"context"
	"time"

	"github.com/nkamgang/scolaris-api/internal/models"
	"gorm.io/gorm"
)

// ReceiptRepository defines the interface for the payment ledger. Receipts
// are append-mostly: financial fields are never updated after Create, only
// Status and the cached document path.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *models.Receipt) error
	FindByID(ctx context.Context, id uint) (*models.Receipt, error)
	FindByStudent(ctx context.Context, studentID uint) ([]models.Receipt, error)
	FindByStudentAndYear(ctx context.Context, studentID uint, academicYear string) ([]models.Receipt, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	UpdateDocumentPath(ctx context.Context, id uint, path string) error
	List(ctx context.Context, query *ListQuery) ([]models.Receipt, int64, error)
	FindPendingBefore(ctx context.Context, cutoff time.Time) ([]models.Receipt, error)
	SumPaidByYear(ctx context.Context, academicYear string) (float64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	// SumLatestRemaining sums, over all students with at least one receipt in
	// the year, the remaining balance of each student's most recent receipt.
	SumLatestRemaining(ctx context.Context, academicYear string) (float64, error)
	MonthlyCollected(ctx context.Context, academicYear string) ([]models.RevenuePoint, error)
}

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *models.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) FindByID(ctx context.Context, id uint) (*models.Receipt, error) {
	var receipt models.Receipt
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("PaymentPlan").
		First(&receipt, id).Error
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// FindByStudent returns the student's receipts in insertion order; callers
// sort when chronology matters.
func (r *receiptRepository) FindByStudent(ctx context.Context, studentID uint) ([]models.Receipt, error) {
	var receipts []models.Receipt
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("PaymentPlan").
		Order("id ASC").
		Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) FindByStudentAndYear(ctx context.Context, studentID uint, academicYear string) ([]models.Receipt, error) {
	var receipts []models.Receipt
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND academic_year = ?", studentID, academicYear).
		Preload("PaymentPlan").
		Order("id ASC").
		Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Receipt{}).Count(&total).Error
	return total, err
}

func (r *receiptRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Receipt{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *receiptRepository) UpdateDocumentPath(ctx context.Context, id uint, path string) error {
	return r.db.WithContext(ctx).
		Model(&models.Receipt{}).
		Where("id = ?", id).
		Update("document_path", path).Error
}

func (r *receiptRepository) List(ctx context.Context, query *ListQuery) ([]models.Receipt, int64, error) {
	var receipts []models.Receipt
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Receipt{})

	if query.Search != "" {
		term := "%" + query.Search + "%"
		db = db.Where("student_name ILIKE ? OR receipt_number ILIKE ? OR transaction_id ILIKE ?", term, term, term)
	}
	if status := query.Filters["status"]; status != "" {
		db = db.Where("status = ?", status)
	}
	if year := query.Filters["academic_year"]; year != "" {
		db = db.Where("academic_year = ?", year)
	}
	if method := query.Filters["payment_method"]; method != "" {
		db = db.Where("payment_method = ?", method)
	}
	if from := query.Filters["start_date"]; from != "" {
		db = db.Where("payment_date >= ?", from)
	}
	if to := query.Filters["end_date"]; to != "" {
		db = db.Where("payment_date <= ?", to)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if query.SortBy != "" {
		dir := "ASC"
		if query.SortDir == "desc" {
			dir = "DESC"
		}
		switch query.SortBy {
		case "payment_date", "amount", "student_name", "receipt_number", "created_at":
			order = query.SortBy + " " + dir
		}
	}

	err := db.Preload("PaymentPlan").
		Order(order).
		Limit(query.PerPage).
		Offset(query.Offset()).
		Find(&receipts).Error
	return receipts, total, err
}

func (r *receiptRepository) FindPendingBefore(ctx context.Context, cutoff time.Time) ([]models.Receipt, error) {
	var receipts []models.Receipt
	err := r.db.WithContext(ctx).
		Where("status = ? AND payment_date < ?", models.ReceiptStatusPending, cutoff).
		Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) SumPaidByYear(ctx context.Context, academicYear string) (float64, error) {
	var result struct {
		Total float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Receipt{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("status = ? AND academic_year = ?", models.ReceiptStatusPaid, academicYear).
		Scan(&result).Error
	return result.Total, err
}

func (r *receiptRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Receipt{}).
		Where("status = ?", status).
		Count(&total).Error
	return total, err
}

func (r *receiptRepository) SumLatestRemaining(ctx context.Context, academicYear string) (float64, error) {
	var result struct {
		Total float64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(remaining_balance), 0) AS total FROM (
			SELECT DISTINCT ON (student_id) remaining_balance
			FROM receipts
			WHERE academic_year = ?
			ORDER BY student_id, payment_date DESC, id DESC
		) latest`, academicYear).Scan(&result).Error
	return result.Total, err
}

func (r *receiptRepository) MonthlyCollected(ctx context.Context, academicYear string) ([]models.RevenuePoint, error) {
	var points []models.RevenuePoint
	err := r.db.WithContext(ctx).Raw(`
		SELECT to_char(date_trunc('month', payment_date), 'YYYY-MM') AS month,
		       COALESCE(SUM(amount), 0) AS amount
		FROM receipts
		WHERE status = ? AND academic_year = ?
		GROUP BY 1
		ORDER BY 1`, models.ReceiptStatusPaid, academicYear).Scan(&points).Error
	return points, err
}
