package repository

import (
	"context"

	"github.com/nkamgang/scolaris-api/internal/models"
	"gorm.io/gorm"
)

// ScheduleRepository defines the interface for timetable slot data access
type ScheduleRepository interface {
	FindByID(ctx context.Context, id uint) (*models.ScheduleSlot, error)
	FindByClass(ctx context.Context, classID uint, academicYear string) ([]models.ScheduleSlot, error)
	// FindConflicts returns slots in the same weekday/period cell occupied by
	// the given class or by any course of the given teacher.
	FindConflicts(ctx context.Context, weekday, period int, classID uint, teacherID *uint, academicYear string) ([]models.ScheduleSlot, error)
	Create(ctx context.Context, slot *models.ScheduleSlot) error
	Delete(ctx context.Context, id uint) error
}

type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) FindByID(ctx context.Context, id uint) (*models.ScheduleSlot, error) {
	var slot models.ScheduleSlot
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Class").
		First(&slot, id).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *scheduleRepository) FindByClass(ctx context.Context, classID uint, academicYear string) ([]models.ScheduleSlot, error) {
	var slots []models.ScheduleSlot
	db := r.db.WithContext(ctx).Where("class_id = ?", classID)
	if academicYear != "" {
		db = db.Where("academic_year = ?", academicYear)
	}
	err := db.Preload("Course").
		Preload("Course.Teacher").
		Order("weekday ASC, period ASC").
		Find(&slots).Error
	return slots, err
}

func (r *scheduleRepository) FindConflicts(ctx context.Context, weekday, period int, classID uint, teacherID *uint, academicYear string) ([]models.ScheduleSlot, error) {
	var slots []models.ScheduleSlot
	db := r.db.WithContext(ctx).
		Joins("JOIN courses ON courses.id = schedule_slots.course_id").
		Where("schedule_slots.weekday = ? AND schedule_slots.period = ?", weekday, period).
		Where("schedule_slots.academic_year = ?", academicYear)

	if teacherID != nil {
		db = db.Where("schedule_slots.class_id = ? OR courses.teacher_id = ?", classID, *teacherID)
	} else {
		db = db.Where("schedule_slots.class_id = ?", classID)
	}

	err := db.Find(&slots).Error
	return slots, err
}

func (r *scheduleRepository) Create(ctx context.Context, slot *models.ScheduleSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *scheduleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ScheduleSlot{}, id).Error
}
