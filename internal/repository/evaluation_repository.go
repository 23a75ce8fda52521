package repository

import (
	"context"
	"time"

	"github.com/nkamgang/scolaris-api/internal/models"
	"gorm.io/gorm"
)

// EvaluationRepository defines the interface for evaluation data access
type EvaluationRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Evaluation, error)
	FindByClass(ctx context.Context, classID uint, academicYear string) ([]models.Evaluation, error)
	// FindAtSlot returns evaluations already occupying a date/period cell for
	// the class.
	FindAtSlot(ctx context.Context, classID uint, date time.Time, period int) ([]models.Evaluation, error)
	Create(ctx context.Context, evaluation *models.Evaluation) error
	Update(ctx context.Context, evaluation *models.Evaluation) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Evaluation, int64, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository creates a new evaluation repository
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) FindByID(ctx context.Context, id uint) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Class").
		First(&evaluation, id).Error
	if err != nil {
		return nil, err
	}
	return &evaluation, nil
}

func (r *evaluationRepository) FindByClass(ctx context.Context, classID uint, academicYear string) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	db := r.db.WithContext(ctx).Where("class_id = ?", classID)
	if academicYear != "" {
		db = db.Where("academic_year = ?", academicYear)
	}
	err := db.Preload("Course").
		Order("date ASC, period ASC").
		Find(&evaluations).Error
	return evaluations, err
}

func (r *evaluationRepository) FindAtSlot(ctx context.Context, classID uint, date time.Time, period int) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND date = ? AND period = ?", classID, date.Format("2006-01-02"), period).
		Find(&evaluations).Error
	return evaluations, err
}

func (r *evaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).Create(evaluation).Error
}

func (r *evaluationRepository) Update(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).Save(evaluation).Error
}

func (r *evaluationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Evaluation{}, id).Error
}

func (r *evaluationRepository) List(ctx context.Context, query *ListQuery) ([]models.Evaluation, int64, error) {
	var evaluations []models.Evaluation
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Evaluation{})

	if query.Search != "" {
		db = db.Where("title ILIKE ?", "%"+query.Search+"%")
	}
	if classID := query.Filters["class_id"]; classID != "" {
		db = db.Where("class_id = ?", classID)
	}
	if term := query.Filters["term"]; term != "" {
		db = db.Where("term = ?", term)
	}
	if year := query.Filters["academic_year"]; year != "" {
		db = db.Where("academic_year = ?", year)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Course").
		Preload("Class").
		Order("date DESC, period ASC").
		Limit(query.PerPage).
		Offset(query.Offset()).
		Find(&evaluations).Error
	return evaluations, total, err
}
