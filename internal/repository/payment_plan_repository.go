package repository

import (
	"context"

	"github.com/nkamgang/scolaris-api/internal/models"
	"gorm.io/gorm"
)

// PaymentPlanRepository defines the interface for the seeded plan catalog
type PaymentPlanRepository interface {
	FindByID(ctx context.Context, id uint) (*models.PaymentPlan, error)
	FindByName(ctx context.Context, name string) (*models.PaymentPlan, error)
	FindAll(ctx context.Context) ([]models.PaymentPlan, error)
}

type paymentPlanRepository struct {
	db *gorm.DB
}

// NewPaymentPlanRepository creates a new payment plan repository
func NewPaymentPlanRepository(db *gorm.DB) PaymentPlanRepository {
	return &paymentPlanRepository{db: db}
}

func (r *paymentPlanRepository) FindByID(ctx context.Context, id uint) (*models.PaymentPlan, error) {
	var plan models.PaymentPlan
	err := r.db.WithContext(ctx).First(&plan, id).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *paymentPlanRepository) FindByName(ctx context.Context, name string) (*models.PaymentPlan, error) {
	var plan models.PaymentPlan
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *paymentPlanRepository) FindAll(ctx context.Context) ([]models.PaymentPlan, error) {
	var plans []models.PaymentPlan
	err := r.db.WithContext(ctx).Order("installments DESC").Find(&plans).Error
	return plans, err
}
