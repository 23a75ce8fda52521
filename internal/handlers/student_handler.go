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

type StudentHandler struct {
	studentService *services.StudentService
	balanceService *services.BalanceService
	receiptService *services.ReceiptService
}

func NewStudentHandler(studentService *services.StudentService, balanceService *services.BalanceService, receiptService *services.ReceiptService) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		balanceService: balanceService,
		receiptService: receiptService,
	}
}

// @Summary List Students
// @Description Get a paginated list of students
// @Tags Students
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param class_id query int false "Filter by class"
// @Param status query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /students [get]
func (h *StudentHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Filters["class_id"] = c.Query("class_id")
	query.Filters["status"] = c.Query("status")

	students, total, err := h.studentService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for i := range students {
		responses = append(responses, students[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"students": responses,
		"pagination": gin.H{
			"page":     query.Page,
			"per_page": query.PerPage,
			"total":    total,
		},
	})
}

// @Summary Get Student
// @Description Get a student by ID
// @Tags Students
// @Accept json
// @Produce json
// @Param student_id path int true "Student ID"
// @Success 200 {object} models.StudentResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /students/{student_id} [get]
func (h *StudentHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("student_id"), 10, 32)
	student, err := h.studentService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Élève introuvable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"student": student.ToResponse()})
}

// @Summary Create Student
// @Description Enroll a new student
// @Tags Students
// @Accept json
// @Produce json
// @Param request body models.Student true "Student Data"
// @Success 201 {object} models.StudentResponse
// @Security BearerAuth
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var student models.Student
	if err := BindNestedOrFlat(c, "student", &student); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.studentService.Create(c.Request.Context(), &student, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"student": student.ToResponse()})
}

// @Summary Update Student
// @Description Update an existing student
// @Tags Students
// @Accept json
// @Produce json
// @Param student_id path int true "Student ID"
// @Param request body models.Student true "Student Data"
// @Success 200 {object} models.StudentResponse
// @Security BearerAuth
// @Router /students/{student_id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("student_id"), 10, 32)
	var student models.Student
	if err := BindNestedOrFlat(c, "student", &student); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	student.ID = uint(id)

	if err := h.studentService.Update(c.Request.Context(), &student, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"student": student.ToResponse()})
}

// @Summary Delete Student
// @Description Remove a student
// @Tags Students
// @Accept json
// @Produce json
// @Param student_id path int true "Student ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /students/{student_id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("student_id"), 10, 32)
	if err := h.studentService.Delete(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Élève supprimé"})
}

// @Summary Student Receipts
// @Description List a student's payment receipts
// @Tags Students
// @Accept json
// @Produce json
// @Param student_id path int true "Student ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /students/{student_id}/receipts [get]
func (h *StudentHandler) Receipts(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("student_id"), 10, 32)
	receipts, err := h.receiptService.FindByStudent(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for i := range receipts {
		responses = append(responses, receipts[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"receipts": responses})
}

// @Summary Student Balance
// @Description Summarize a student's balance for one academic year
// @Tags Students
// @Accept json
// @Produce json
// @Param student_id path int true "Student ID"
// @Param academic_year query string false "Academic year (defaults to current)"
// @Success 200 {object} services.BalanceSummary
// @Security BearerAuth
// @Router /students/{student_id}/balance [get]
func (h *StudentHandler) Balance(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("student_id"), 10, 32)

	academicYear := c.Query("academic_year")
	if academicYear == "" {
		academicYear = models.CurrentAcademicYear()
	}
	if !models.IsAcademicYearLabel(academicYear) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Année scolaire attendue au format 2025-2026"})
		return
	}

	summary, err := h.balanceService.Summarize(c.Request.Context(), uint(id), academicYear)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
