package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nkamgang/scolaris-api/internal/models"
)

func TestDeriveTermAmount(t *testing.T) {
	tests := []struct {
		yearly   float64
		expected float64
	}{
		{yearly: 300000, expected: 100000},
		{yearly: 450000, expected: 150000},
		// Rounds up so three terms always cover the year
		{yearly: 100, expected: 34},
		{yearly: 1, expected: 1},
		{yearly: 0, expected: 0},
		{yearly: -500, expected: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DeriveTermAmount(tt.yearly), "yearly %.0f", tt.yearly)
	}
}

func newTestFeeScheduleService(repo *mockFeeScheduleRepository, classRepo *mockClassRepository) *FeeScheduleService {
	return NewFeeScheduleService(repo, classRepo, NewAuditService(nil))
}

func TestFeeScheduleCreateRecomputesTermAmount(t *testing.T) {
	var saved *models.FeeSchedule
	repo := &mockFeeScheduleRepository{
		mockCreate: func(ctx context.Context, schedule *models.FeeSchedule) error {
			saved = schedule
			return nil
		},
		mockFindByClassAndYear: func(ctx context.Context, classID uint, academicYear string) (*models.FeeSchedule, error) {
			return nil, errors.New("record not found")
		},
	}
	classRepo := &mockClassRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Class, error) {
			return &models.Class{ID: id, Name: "6ème A"}, nil
		},
	}
	svc := newTestFeeScheduleService(repo, classRepo)

	schedule := &models.FeeSchedule{
		ClassID:      4,
		YearlyAmount: 300000,
		TermAmount:   999, // client value must be overwritten
		AcademicYear: "2025-2026",
	}
	err := svc.Create(context.Background(), schedule, 1)

	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Equal(t, 100000.0, schedule.TermAmount)
	assert.Equal(t, "6ème A", schedule.ClassName)
}

func TestFeeScheduleCreateRejectsDuplicateYear(t *testing.T) {
	repo := &mockFeeScheduleRepository{
		mockFindByClassAndYear: func(ctx context.Context, classID uint, academicYear string) (*models.FeeSchedule, error) {
			return &models.FeeSchedule{ID: 1, ClassID: classID, AcademicYear: academicYear}, nil
		},
	}
	classRepo := &mockClassRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Class, error) {
			return &models.Class{ID: id, Name: "6ème A"}, nil
		},
	}
	svc := newTestFeeScheduleService(repo, classRepo)

	err := svc.Create(context.Background(), &models.FeeSchedule{
		ClassID:      4,
		YearlyAmount: 300000,
		AcademicYear: "2025-2026",
	}, 1)
	assert.True(t, errors.Is(err, ErrDuplicate))
}

func TestFeeScheduleCreateUnknownClass(t *testing.T) {
	classRepo := &mockClassRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Class, error) {
			return nil, errors.New("record not found")
		},
	}
	svc := newTestFeeScheduleService(&mockFeeScheduleRepository{}, classRepo)

	err := svc.Create(context.Background(), &models.FeeSchedule{ClassID: 99, YearlyAmount: 100}, 1)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestFeeScheduleValidation(t *testing.T) {
	svc := newTestFeeScheduleService(&mockFeeScheduleRepository{}, &mockClassRepository{})

	tests := []struct {
		name     string
		schedule *models.FeeSchedule
	}{
		{name: "missing class", schedule: &models.FeeSchedule{YearlyAmount: 100}},
		{name: "negative yearly amount", schedule: &models.FeeSchedule{ClassID: 1, YearlyAmount: -1}},
		{name: "negative registration fee", schedule: &models.FeeSchedule{ClassID: 1, YearlyAmount: 100, RegistrationFee: -1}},
		{name: "malformed academic year", schedule: &models.FeeSchedule{ClassID: 1, YearlyAmount: 100, AcademicYear: "25-26"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(context.Background(), tt.schedule, 1)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestFeeScheduleUpdateRecomputesTermAmount(t *testing.T) {
	var saved *models.FeeSchedule
	repo := &mockFeeScheduleRepository{
		mockUpdate: func(ctx context.Context, schedule *models.FeeSchedule) error {
			saved = schedule
			return nil
		},
	}
	svc := newTestFeeScheduleService(repo, &mockClassRepository{})

	schedule := &models.FeeSchedule{ID: 1, ClassID: 4, ClassName: "6ème A", YearlyAmount: 450000, AcademicYear: "2025-2026"}
	err := svc.Update(context.Background(), schedule, 1)

	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Equal(t, 150000.0, schedule.TermAmount)
}
