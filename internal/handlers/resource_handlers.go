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

// --- Teachers ---

type TeacherHandler struct {
	teacherService *services.TeacherService
}

func NewTeacherHandler(teacherService *services.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherService: teacherService}
}

// @Summary List Teachers
// @Description Get a paginated list of teachers
// @Tags Teachers
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /teachers [get]
func (h *TeacherHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")

	teachers, total, err := h.teacherService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teachers": teachers, "pagination": gin.H{"total": total}})
}

// @Summary Get Teacher
// @Tags Teachers
// @Produce json
// @Param teacher_id path int true "Teacher ID"
// @Success 200 {object} models.Teacher
// @Security BearerAuth
// @Router /teachers/{teacher_id} [get]
func (h *TeacherHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("teacher_id"), 10, 32)
	teacher, err := h.teacherService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Enseignant introuvable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"teacher": teacher})
}

// @Summary Create Teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param request body models.Teacher true "Teacher Data"
// @Success 201 {object} models.Teacher
// @Security BearerAuth
// @Router /teachers [post]
func (h *TeacherHandler) Create(c *gin.Context) {
	var teacher models.Teacher
	if err := BindNestedOrFlat(c, "teacher", &teacher); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.teacherService.Create(c.Request.Context(), &teacher, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"teacher": teacher})
}

// @Summary Update Teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param teacher_id path int true "Teacher ID"
// @Param request body models.Teacher true "Teacher Data"
// @Success 200 {object} models.Teacher
// @Security BearerAuth
// @Router /teachers/{teacher_id} [put]
func (h *TeacherHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("teacher_id"), 10, 32)
	var teacher models.Teacher
	if err := BindNestedOrFlat(c, "teacher", &teacher); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	teacher.ID = uint(id)

	if err := h.teacherService.Update(c.Request.Context(), &teacher, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teacher": teacher})
}

// @Summary Delete Teacher
// @Tags Teachers
// @Produce json
// @Param teacher_id path int true "Teacher ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /teachers/{teacher_id} [delete]
func (h *TeacherHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("teacher_id"), 10, 32)
	if err := h.teacherService.Delete(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Enseignant supprimé"})
}

// --- Classes ---

type ClassHandler struct {
	classService *services.ClassService
}

func NewClassHandler(classService *services.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// @Summary List Classes
// @Tags Classes
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param academic_year query string false "Filter by academic year"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /classes [get]
func (h *ClassHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Filters["academic_year"] = c.Query("academic_year")

	classes, total, err := h.classService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"classes": classes, "pagination": gin.H{"total": total}})
}

// @Summary Get Class
// @Tags Classes
// @Produce json
// @Param class_id path int true "Class ID"
// @Success 200 {object} models.Class
// @Security BearerAuth
// @Router /classes/{class_id} [get]
func (h *ClassHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("class_id"), 10, 32)
	class, err := h.classService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Classe introuvable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"class": class})
}

// @Summary Class Students
// @Description List the students assigned to a class
// @Tags Classes
// @Produce json
// @Param class_id path int true "Class ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /classes/{class_id}/students [get]
func (h *ClassHandler) Students(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("class_id"), 10, 32)
	students, err := h.classService.Students(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for i := range students {
		responses = append(responses, students[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"students": responses})
}

// @Summary Create Class
// @Tags Classes
// @Accept json
// @Produce json
// @Param request body models.Class true "Class Data"
// @Success 201 {object} models.Class
// @Security BearerAuth
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var class models.Class
	if err := BindNestedOrFlat(c, "class", &class); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.classService.Create(c.Request.Context(), &class, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"class": class})
}

// @Summary Update Class
// @Tags Classes
// @Accept json
// @Produce json
// @Param class_id path int true "Class ID"
// @Param request body models.Class true "Class Data"
// @Success 200 {object} models.Class
// @Security BearerAuth
// @Router /classes/{class_id} [put]
func (h *ClassHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("class_id"), 10, 32)
	var class models.Class
	if err := BindNestedOrFlat(c, "class", &class); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	class.ID = uint(id)

	if err := h.classService.Update(c.Request.Context(), &class, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"class": class})
}

// @Summary Delete Class
// @Description Delete a class and unassign its students
// @Tags Classes
// @Produce json
// @Param class_id path int true "Class ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /classes/{class_id} [delete]
func (h *ClassHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("class_id"), 10, 32)
	if err := h.classService.Delete(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Classe supprimée"})
}

// --- Courses ---

type CourseHandler struct {
	courseService *services.CourseService
}

func NewCourseHandler(courseService *services.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// @Summary List Courses
// @Tags Courses
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param class_id query int false "Filter by class"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /courses [get]
func (h *CourseHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Filters["class_id"] = c.Query("class_id")
	query.Filters["teacher_id"] = c.Query("teacher_id")

	courses, total, err := h.courseService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for i := range courses {
		responses = append(responses, courses[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"courses": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Course
// @Tags Courses
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {object} models.CourseResponse
// @Security BearerAuth
// @Router /courses/{course_id} [get]
func (h *CourseHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("course_id"), 10, 32)
	course, err := h.courseService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cours introuvable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"course": course.ToResponse()})
}

// @Summary Create Course
// @Tags Courses
// @Accept json
// @Produce json
// @Param request body models.Course true "Course Data"
// @Success 201 {object} models.CourseResponse
// @Security BearerAuth
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var course models.Course
	if err := BindNestedOrFlat(c, "course", &course); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.courseService.Create(c.Request.Context(), &course, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"course": course.ToResponse()})
}

// @Summary Update Course
// @Tags Courses
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID"
// @Param request body models.Course true "Course Data"
// @Success 200 {object} models.CourseResponse
// @Security BearerAuth
// @Router /courses/{course_id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("course_id"), 10, 32)
	var course models.Course
	if err := BindNestedOrFlat(c, "course", &course); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	course.ID = uint(id)

	if err := h.courseService.Update(c.Request.Context(), &course, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"course": course.ToResponse()})
}

// @Summary Delete Course
// @Tags Courses
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /courses/{course_id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("course_id"), 10, 32)
	if err := h.courseService.Delete(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cours supprimé"})
}
