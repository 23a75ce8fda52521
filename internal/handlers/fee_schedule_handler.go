package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nkamgang/scolaris-api/internal/middleware"
	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
	"github.com/nkamgang/scolaris-api/internal/services"
)

type FeeScheduleHandler struct {
	feeScheduleService *services.FeeScheduleService
}

func NewFeeScheduleHandler(feeScheduleService *services.FeeScheduleService) *FeeScheduleHandler {
	return &FeeScheduleHandler{feeScheduleService: feeScheduleService}
}

// @Summary List Fee Schedules
// @Description Get the tuition schedules, optionally filtered by year
// @Tags FeeSchedules
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param academic_year query string false "Filter by academic year"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /fee-schedules [get]
func (h *FeeScheduleHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Filters["academic_year"] = c.Query("academic_year")
	query.Filters["class_id"] = c.Query("class_id")

	schedules, total, err := h.feeScheduleService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fee_schedules": schedules, "pagination": gin.H{"total": total}})
}

// @Summary Get Fee Schedule
// @Tags FeeSchedules
// @Produce json
// @Param schedule_id path int true "Schedule ID"
// @Success 200 {object} models.FeeSchedule
// @Security BearerAuth
// @Router /fee-schedules/{schedule_id} [get]
func (h *FeeScheduleHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("schedule_id"), 10, 32)
	schedule, err := h.feeScheduleService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Barème introuvable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"fee_schedule": schedule})
}

// @Summary Create Fee Schedule
// @Description Create a tuition schedule; the term amount is derived server-side
// @Tags FeeSchedules
// @Accept json
// @Produce json
// @Param request body models.FeeSchedule true "Schedule Data"
// @Success 201 {object} models.FeeSchedule
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /fee-schedules [post]
func (h *FeeScheduleHandler) Create(c *gin.Context) {
	var schedule models.FeeSchedule
	if err := BindNestedOrFlat(c, "fee_schedule", &schedule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.feeScheduleService.Create(c.Request.Context(), &schedule, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"fee_schedule": schedule})
}

// UpdateFeeScheduleRequest carries a partial update; absent fields keep the
// stored value, so omitting yearly_amount never zeroes the tuition.
type UpdateFeeScheduleRequest struct {
	YearlyAmount    *float64 `json:"yearly_amount"`
	RegistrationFee *float64 `json:"registration_fee"`
	AcademicYear    *string  `json:"academic_year"`
}

// @Summary Update Fee Schedule
// @Tags FeeSchedules
// @Accept json
// @Produce json
// @Param schedule_id path int true "Schedule ID"
// @Param request body UpdateFeeScheduleRequest true "Schedule Data"
// @Success 200 {object} models.FeeSchedule
// @Security BearerAuth
// @Router /fee-schedules/{schedule_id} [put]
func (h *FeeScheduleHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("schedule_id"), 10, 32)

	schedule, err := h.feeScheduleService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Barème introuvable"})
		return
	}

	var req UpdateFeeScheduleRequest
	if err := BindNestedOrFlat(c, "fee_schedule", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.YearlyAmount != nil {
		schedule.YearlyAmount = *req.YearlyAmount
	}
	if req.RegistrationFee != nil {
		schedule.RegistrationFee = *req.RegistrationFee
	}
	if req.AcademicYear != nil && *req.AcademicYear != "" {
		schedule.AcademicYear = *req.AcademicYear
	}

	if err := h.feeScheduleService.Update(c.Request.Context(), schedule, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fee_schedule": schedule})
}

// @Summary Delete Fee Schedule
// @Tags FeeSchedules
// @Produce json
// @Param schedule_id path int true "Schedule ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /fee-schedules/{schedule_id} [delete]
func (h *FeeScheduleHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("schedule_id"), 10, 32)
	if err := h.feeScheduleService.Delete(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Barème supprimé"})
}
