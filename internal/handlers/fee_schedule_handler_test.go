package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
	"github.com/nkamgang/scolaris-api/internal/services"
)

type mockFeeScheduleRepo struct {
	repository.FeeScheduleRepository
	mockFindByID func(ctx context.Context, id uint) (*models.FeeSchedule, error)
	mockUpdate   func(ctx context.Context, schedule *models.FeeSchedule) error
}

func (m *mockFeeScheduleRepo) FindByID(ctx context.Context, id uint) (*models.FeeSchedule, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}

func (m *mockFeeScheduleRepo) Update(ctx context.Context, schedule *models.FeeSchedule) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, schedule)
	}
	return nil
}

type mockClassRepo struct {
	repository.ClassRepository
}

func storedSchedule() *models.FeeSchedule {
	return &models.FeeSchedule{
		ID:              1,
		ClassID:         4,
		ClassName:       "6ème A",
		YearlyAmount:    300000,
		RegistrationFee: 25000,
		TermAmount:      100000,
		AcademicYear:    "2025-2026",
	}
}

func TestFeeScheduleUpdatePartialBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name             string
		body             string
		wantYearly       float64
		wantRegistration float64
		wantTerm         float64
		wantYear         string
	}{
		{
			name:             "omitted amounts keep stored values",
			body:             `{"academic_year": "2026-2027"}`,
			wantYearly:       300000,
			wantRegistration: 25000,
			wantTerm:         100000,
			wantYear:         "2026-2027",
		},
		{
			name:             "new yearly amount rederives the term",
			body:             `{"yearly_amount": 450000}`,
			wantYearly:       450000,
			wantRegistration: 25000,
			wantTerm:         150000,
			wantYear:         "2025-2026",
		},
		{
			name:             "explicit zero registration fee is kept",
			body:             `{"registration_fee": 0}`,
			wantYearly:       300000,
			wantRegistration: 0,
			wantTerm:         100000,
			wantYear:         "2025-2026",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var saved *models.FeeSchedule
			repo := &mockFeeScheduleRepo{
				mockFindByID: func(ctx context.Context, id uint) (*models.FeeSchedule, error) {
					return storedSchedule(), nil
				},
				mockUpdate: func(ctx context.Context, schedule *models.FeeSchedule) error {
					saved = schedule
					return nil
				},
			}
			svc := services.NewFeeScheduleService(repo, &mockClassRepo{}, services.NewAuditService(nil))
			handler := NewFeeScheduleHandler(svc)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "schedule_id", Value: "1"}}
			c.Request = httptest.NewRequest("PUT", "/fee-schedules/1", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			handler.Update(c)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.NotNil(t, saved)
			assert.Equal(t, tt.wantYearly, saved.YearlyAmount)
			assert.Equal(t, tt.wantRegistration, saved.RegistrationFee)
			assert.Equal(t, tt.wantTerm, saved.TermAmount)
			assert.Equal(t, tt.wantYear, saved.AcademicYear)
			assert.Equal(t, uint(4), saved.ClassID)
			assert.Equal(t, "6ème A", saved.ClassName)
		})
	}
}
