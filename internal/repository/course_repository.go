package repository

import (
	"context"

	"github.com/nkamgang/scolaris-api/internal/models"
	"gorm.io/gorm"
)

// CourseRepository defines the interface for course data access
type CourseRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Course, error)
	FindByClass(ctx context.Context, classID uint) ([]models.Course, error)
	FindByTeacher(ctx context.Context, teacherID uint) ([]models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Course, int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) FindByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).
		Preload("Class").
		Preload("Teacher").
		First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindByClass(ctx context.Context, classID uint) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.WithContext(ctx).
		Where("class_id = ?", classID).
		Preload("Teacher").
		Order("name ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepository) FindByTeacher(ctx context.Context, teacherID uint) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Preload("Class").
		Order("name ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Course{}, id).Error
}

func (r *courseRepository) List(ctx context.Context, query *ListQuery) ([]models.Course, int64, error) {
	var courses []models.Course
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Course{})

	if query.Search != "" {
		db = db.Where("name ILIKE ?", "%"+query.Search+"%")
	}
	if classID := query.Filters["class_id"]; classID != "" {
		db = db.Where("class_id = ?", classID)
	}
	if teacherID := query.Filters["teacher_id"]; teacherID != "" {
		db = db.Where("teacher_id = ?", teacherID)
	}
	if year := query.Filters["academic_year"]; year != "" {
		db = db.Where("academic_year = ?", year)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Class").
		Preload("Teacher").
		Order("name ASC").
		Limit(query.PerPage).
		Offset(query.Offset()).
		Find(&courses).Error
	return courses, total, err
}
