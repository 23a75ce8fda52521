package repository

import (
	"context"

	"github.com/nkamgang/scolaris-api/internal/models"
	"gorm.io/gorm"
)

// FeeScheduleRepository defines the interface for fee schedule data access
type FeeScheduleRepository interface {
	FindByID(ctx context.Context, id uint) (*models.FeeSchedule, error)
	FindByClassAndYear(ctx context.Context, classID uint, academicYear string) (*models.FeeSchedule, error)
	Create(ctx context.Context, schedule *models.FeeSchedule) error
	Update(ctx context.Context, schedule *models.FeeSchedule) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.FeeSchedule, int64, error)
}

type feeScheduleRepository struct {
	db *gorm.DB
}

// NewFeeScheduleRepository creates a new fee schedule repository
func NewFeeScheduleRepository(db *gorm.DB) FeeScheduleRepository {
	return &feeScheduleRepository{db: db}
}

func (r *feeScheduleRepository) FindByID(ctx context.Context, id uint) (*models.FeeSchedule, error) {
	var schedule models.FeeSchedule
	err := r.db.WithContext(ctx).
		Preload("Class").
		First(&schedule, id).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *feeScheduleRepository) FindByClassAndYear(ctx context.Context, classID uint, academicYear string) (*models.FeeSchedule, error) {
	var schedule models.FeeSchedule
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND academic_year = ?", classID, academicYear).
		Order("created_at DESC").
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *feeScheduleRepository) Create(ctx context.Context, schedule *models.FeeSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *feeScheduleRepository) Update(ctx context.Context, schedule *models.FeeSchedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

func (r *feeScheduleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.FeeSchedule{}, id).Error
}

func (r *feeScheduleRepository) List(ctx context.Context, query *ListQuery) ([]models.FeeSchedule, int64, error) {
	var schedules []models.FeeSchedule
	var total int64

	db := r.db.WithContext(ctx).Model(&models.FeeSchedule{})

	if year := query.Filters["academic_year"]; year != "" {
		db = db.Where("academic_year = ?", year)
	}
	if classID := query.Filters["class_id"]; classID != "" {
		db = db.Where("class_id = ?", classID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Class").
		Order("academic_year DESC, class_name ASC").
		Limit(query.PerPage).
		Offset(query.Offset()).
		Find(&schedules).Error
	return schedules, total, err
}
