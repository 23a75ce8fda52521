package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nkamgang/scolaris-api/internal/models"
)

func scheduleTestCourse() *models.Course {
	teacherID := uint(8)
	return &models.Course{ID: 5, Name: "Mathématiques", ClassID: 4, TeacherID: &teacherID, AcademicYear: "2025-2026"}
}

func newTestScheduleService(repo *mockScheduleRepository, courseRepo *mockCourseRepository) *ScheduleService {
	return NewScheduleService(repo, courseRepo, NewAuditService(nil))
}

func TestPlaceSlot(t *testing.T) {
	var saved *models.ScheduleSlot
	repo := &mockScheduleRepository{
		mockCreate: func(ctx context.Context, slot *models.ScheduleSlot) error {
			saved = slot
			return nil
		},
	}
	courseRepo := &mockCourseRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Course, error) {
			return scheduleTestCourse(), nil
		},
	}
	svc := newTestScheduleService(repo, courseRepo)

	slot := &models.ScheduleSlot{CourseID: 5, Weekday: 1, Period: 3}
	err := svc.Place(context.Background(), slot, 1)

	assert.NoError(t, err)
	assert.NotNil(t, saved)
	// Class and year come from the course, not the client
	assert.Equal(t, uint(4), slot.ClassID)
	assert.Equal(t, "2025-2026", slot.AcademicYear)
}

func TestPlaceSlotRejectsOccupiedCell(t *testing.T) {
	repo := &mockScheduleRepository{
		mockFindConflicts: func(ctx context.Context, weekday, period int, classID uint, teacherID *uint, academicYear string) ([]models.ScheduleSlot, error) {
			assert.Equal(t, 1, weekday)
			assert.Equal(t, 3, period)
			assert.Equal(t, uint(4), classID)
			assert.Equal(t, uint(8), *teacherID)
			return []models.ScheduleSlot{{ID: 77, Weekday: weekday, Period: period}}, nil
		},
	}
	courseRepo := &mockCourseRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Course, error) {
			return scheduleTestCourse(), nil
		},
	}
	svc := newTestScheduleService(repo, courseRepo)

	err := svc.Place(context.Background(), &models.ScheduleSlot{CourseID: 5, Weekday: 1, Period: 3}, 1)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestPlaceSlotOutsideGrid(t *testing.T) {
	svc := newTestScheduleService(&mockScheduleRepository{}, &mockCourseRepository{})

	tests := []struct {
		name string
		slot *models.ScheduleSlot
	}{
		{name: "weekday zero", slot: &models.ScheduleSlot{CourseID: 5, Weekday: 0, Period: 1}},
		{name: "sunday", slot: &models.ScheduleSlot{CourseID: 5, Weekday: 7, Period: 1}},
		{name: "period zero", slot: &models.ScheduleSlot{CourseID: 5, Weekday: 1, Period: 0}},
		{name: "period past grid", slot: &models.ScheduleSlot{CourseID: 5, Weekday: 1, Period: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Place(context.Background(), tt.slot, 1)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestPlaceSlotUnknownCourse(t *testing.T) {
	courseRepo := &mockCourseRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Course, error) {
			return nil, errors.New("record not found")
		},
	}
	svc := newTestScheduleService(&mockScheduleRepository{}, courseRepo)

	err := svc.Place(context.Background(), &models.ScheduleSlot{CourseID: 99, Weekday: 1, Period: 1}, 1)
	assert.True(t, errors.Is(err, ErrValidation))
}
