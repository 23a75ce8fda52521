package repository

import (
	"context"
	"errors"

	"github.com/nkamgang/scolaris-api/internal/models"
	"gorm.io/gorm"
)

// ClassRepository defines the interface for class data access
type ClassRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) error
	// DeleteWithUnassign removes the class and clears the class assignment of
	// its students inside one transaction, so a crash can not leave students
	// pointing at a missing class.
	DeleteWithUnassign(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Class, int64, error)
	Count(ctx context.Context) (int64, error)
}

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository creates a new class repository
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) FindByID(ctx context.Context, id uint) (*models.Class, error) {
	var class models.Class
	err := r.db.WithContext(ctx).First(&class, id).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepository) Create(ctx context.Context, class *models.Class) error {
	if err := r.db.WithContext(ctx).Create(class).Error; err != nil {
		if isDuplicateKeyError(err, "idx_classes_name") {
			return errors.New("une classe existe déjà avec ce nom")
		}
		return err
	}
	return nil
}

func (r *classRepository) Update(ctx context.Context, class *models.Class) error {
	return r.db.WithContext(ctx).Save(class).Error
}

func (r *classRepository) DeleteWithUnassign(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Student{}).
			Where("class_id = ?", id).
			Update("class_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Class{}, id).Error
	})
}

func (r *classRepository) List(ctx context.Context, query *ListQuery) ([]models.Class, int64, error) {
	var classes []models.Class
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Class{})

	if query.Search != "" {
		term := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR level ILIKE ?", term, term)
	}
	if year := query.Filters["academic_year"]; year != "" {
		db = db.Where("academic_year = ?", year)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("name ASC").
		Limit(query.PerPage).
		Offset(query.Offset()).
		Find(&classes).Error
	if err != nil {
		return nil, 0, err
	}

	// Fill the per-class enrollment count in one grouped query
	if len(classes) > 0 {
		type classCount struct {
			ClassID uint
			N       int
		}
		var counts []classCount
		ids := make([]uint, 0, len(classes))
		for _, c := range classes {
			ids = append(ids, c.ID)
		}
		err = r.db.WithContext(ctx).
			Model(&models.Student{}).
			Select("class_id, COUNT(*) as n").
			Where("class_id IN ?", ids).
			Group("class_id").
			Scan(&counts).Error
		if err != nil {
			return nil, 0, err
		}
		byID := make(map[uint]int, len(counts))
		for _, c := range counts {
			byID[c.ClassID] = c.N
		}
		for i := range classes {
			classes[i].StudentCount = byID[classes[i].ID]
		}
	}

	return classes, total, nil
}

func (r *classRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Class{}).Count(&total).Error
	return total, err
}
