package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nkamgang/scolaris-api/internal/middleware"
	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
	"github.com/nkamgang/scolaris-api/internal/services"
)

type ScheduleHandler struct {
	scheduleService *services.ScheduleService
}

func NewScheduleHandler(scheduleService *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// @Summary Class Timetable
// @Description Get the weekly timetable of a class
// @Tags Schedule
// @Produce json
// @Param class_id path int true "Class ID"
// @Param academic_year query string false "Academic year"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /classes/{class_id}/schedule [get]
func (h *ScheduleHandler) ByClass(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("class_id"), 10, 32)
	academicYear := c.Query("academic_year")
	if academicYear == "" {
		academicYear = models.CurrentAcademicYear()
	}

	slots, err := h.scheduleService.FindByClass(c.Request.Context(), uint(id), academicYear)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots, "academic_year": academicYear})
}

type PlaceSlotRequest struct {
	CourseID     uint   `json:"course_id" binding:"required"`
	Weekday      int    `json:"weekday" binding:"required"`
	Period       int    `json:"period" binding:"required"`
	AcademicYear string `json:"academic_year"`
}

// @Summary Place Course
// @Description Place a course on a timetable cell
// @Tags Schedule
// @Accept json
// @Produce json
// @Param request body PlaceSlotRequest true "Slot Data"
// @Success 201 {object} models.ScheduleSlot
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /schedule [post]
func (h *ScheduleHandler) Place(c *gin.Context) {
	var req PlaceSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot := &models.ScheduleSlot{
		CourseID:     req.CourseID,
		Weekday:      req.Weekday,
		Period:       req.Period,
		AcademicYear: req.AcademicYear,
	}
	if err := h.scheduleService.Place(c.Request.Context(), slot, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slot": slot})
}

// @Summary Remove Slot
// @Description Free a timetable cell
// @Tags Schedule
// @Produce json
// @Param slot_id path int true "Slot ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /schedule/{slot_id} [delete]
func (h *ScheduleHandler) Remove(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("slot_id"), 10, 32)
	if err := h.scheduleService.Remove(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Créneau libéré"})
}

type EvaluationHandler struct {
	evaluationService *services.EvaluationService
}

func NewEvaluationHandler(evaluationService *services.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService}
}

// @Summary List Evaluations
// @Tags Evaluations
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param class_id query int false "Filter by class"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /evaluations [get]
func (h *EvaluationHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Filters["class_id"] = c.Query("class_id")
	query.Filters["term"] = c.Query("term")
	query.Filters["academic_year"] = c.Query("academic_year")

	evaluations, total, err := h.evaluationService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"evaluations": evaluations, "pagination": gin.H{"total": total}})
}

type CreateEvaluationRequest struct {
	CourseID     uint    `json:"course_id" binding:"required"`
	Title        string  `json:"title" binding:"required"`
	Kind         string  `json:"kind"`
	Date         string  `json:"date" binding:"required"`
	Period       int     `json:"period" binding:"required"`
	MaxScore     float64 `json:"max_score"`
	Term         int     `json:"term"`
	AcademicYear string  `json:"academic_year"`
}

// @Summary Schedule Evaluation
// @Tags Evaluations
// @Accept json
// @Produce json
// @Param request body CreateEvaluationRequest true "Evaluation Data"
// @Success 201 {object} models.Evaluation
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /evaluations [post]
func (h *EvaluationHandler) Create(c *gin.Context) {
	var req CreateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date attendue au format 2006-01-02"})
		return
	}

	evaluation := &models.Evaluation{
		CourseID:     req.CourseID,
		Title:        req.Title,
		Kind:         req.Kind,
		Date:         date,
		Period:       req.Period,
		MaxScore:     req.MaxScore,
		Term:         req.Term,
		AcademicYear: req.AcademicYear,
	}
	if evaluation.Kind == "" {
		evaluation.Kind = models.EvaluationKindTest
	}
	if evaluation.MaxScore == 0 {
		evaluation.MaxScore = 20
	}
	if evaluation.Term == 0 {
		evaluation.Term = 1
	}

	if err := h.evaluationService.Create(c.Request.Context(), evaluation, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"evaluation": evaluation})
}

// @Summary Delete Evaluation
// @Tags Evaluations
// @Produce json
// @Param evaluation_id path int true "Evaluation ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /evaluations/{evaluation_id} [delete]
func (h *EvaluationHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("evaluation_id"), 10, 32)
	if err := h.evaluationService.Delete(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Évaluation supprimée"})
}
