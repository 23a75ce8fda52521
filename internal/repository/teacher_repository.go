package repository

import (
	"context"
	"errors"

	"github.com/nkamgang/scolaris-api/internal/models"
	"gorm.io/gorm"
)

// TeacherRepository defines the interface for teacher data access
type TeacherRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Teacher, int64, error)
	Count(ctx context.Context) (int64, error)
}

type teacherRepository struct {
	db *gorm.DB
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) FindByID(ctx context.Context, id uint) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.WithContext(ctx).First(&teacher, id).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	if err := r.db.WithContext(ctx).Create(teacher).Error; err != nil {
		if isDuplicateKeyError(err, "idx_teachers_email") {
			return errors.New("un enseignant existe déjà avec cette adresse e-mail")
		}
		return err
	}
	return nil
}

func (r *teacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	return r.db.WithContext(ctx).Save(teacher).Error
}

func (r *teacherRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Teacher{}, id).Error
}

func (r *teacherRepository) List(ctx context.Context, query *ListQuery) ([]models.Teacher, int64, error) {
	var teachers []models.Teacher
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Teacher{})

	if query.Search != "" {
		term := "%" + query.Search + "%"
		db = db.Where("first_name ILIKE ? OR last_name ILIKE ? OR specialty ILIKE ?", term, term, term)
	}
	if status := query.Filters["status"]; status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("last_name ASC, first_name ASC").
		Limit(query.PerPage).
		Offset(query.Offset()).
		Find(&teachers).Error
	return teachers, total, err
}

func (r *teacherRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Teacher{}).
		Where("status = ?", models.TeacherStatusActive).
		Count(&total).Error
	return total, err
}
