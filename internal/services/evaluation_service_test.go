package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
)

type mockEvaluationRepository struct {
	repository.EvaluationRepository
	mockCreate     func(ctx context.Context, evaluation *models.Evaluation) error
	mockFindAtSlot func(ctx context.Context, classID uint, date time.Time, period int) ([]models.Evaluation, error)
}

func (m *mockEvaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, evaluation)
	}
	return nil
}

func (m *mockEvaluationRepository) FindAtSlot(ctx context.Context, classID uint, date time.Time, period int) ([]models.Evaluation, error) {
	if m.mockFindAtSlot != nil {
		return m.mockFindAtSlot(ctx, classID, date, period)
	}
	return nil, nil
}

func newTestEvaluationService(repo *mockEvaluationRepository, courseRepo *mockCourseRepository) *EvaluationService {
	return NewEvaluationService(repo, courseRepo, NewAuditService(nil))
}

func evaluationTestCourse() *mockCourseRepository {
	return &mockCourseRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Course, error) {
			return scheduleTestCourse(), nil
		},
	}
}

func TestEvaluationCreate(t *testing.T) {
	var saved *models.Evaluation
	repo := &mockEvaluationRepository{
		mockCreate: func(ctx context.Context, evaluation *models.Evaluation) error {
			saved = evaluation
			return nil
		},
	}
	svc := newTestEvaluationService(repo, evaluationTestCourse())

	evaluation := &models.Evaluation{
		CourseID: 5,
		Title:    "Devoir surveillé n°1",
		Date:     time.Date(2025, time.October, 14, 0, 0, 0, 0, time.UTC),
		Period:   2,
		Term:     1,
	}
	err := svc.Create(context.Background(), evaluation, 1)

	assert.NoError(t, err)
	assert.NotNil(t, saved)
	// Class and year are derived from the course
	assert.Equal(t, uint(4), evaluation.ClassID)
	assert.Equal(t, "2025-2026", evaluation.AcademicYear)
}

func TestEvaluationCreateRejectsOccupiedSlot(t *testing.T) {
	repo := &mockEvaluationRepository{
		mockFindAtSlot: func(ctx context.Context, classID uint, date time.Time, period int) ([]models.Evaluation, error) {
			return []models.Evaluation{{ID: 9, ClassID: classID, Period: period}}, nil
		},
	}
	svc := newTestEvaluationService(repo, evaluationTestCourse())

	err := svc.Create(context.Background(), &models.Evaluation{
		CourseID: 5,
		Title:    "Devoir surveillé n°2",
		Date:     time.Date(2025, time.October, 14, 0, 0, 0, 0, time.UTC),
		Period:   2,
		Term:     1,
	}, 1)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestEvaluationCreateValidation(t *testing.T) {
	svc := newTestEvaluationService(&mockEvaluationRepository{}, evaluationTestCourse())

	tests := []struct {
		name       string
		evaluation *models.Evaluation
	}{
		{name: "missing title", evaluation: &models.Evaluation{CourseID: 5, Period: 1, Term: 1}},
		{name: "period outside grid", evaluation: &models.Evaluation{CourseID: 5, Title: "DS", Period: 9, Term: 1}},
		{name: "term zero", evaluation: &models.Evaluation{CourseID: 5, Title: "DS", Period: 1, Term: 0}},
		{name: "term past year", evaluation: &models.Evaluation{CourseID: 5, Title: "DS", Period: 1, Term: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(context.Background(), tt.evaluation, 1)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}
