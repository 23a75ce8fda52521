package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
	exportService *services.ExportService
}

func NewReportHandler(reportService *services.ReportService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportService: exportService}
}

func academicYearOrCurrent(c *gin.Context) string {
	year := c.Query("academic_year")
	if year == "" {
		return models.CurrentAcademicYear()
	}
	return year
}

// @Summary Export Receipts CSV
// @Description Download the receipt ledger for one academic year as CSV
// @Tags Reports
// @Produce text/csv
// @Param academic_year query string false "Academic year"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/receipts/csv [get]
func (h *ReportHandler) ReceiptsCSV(c *gin.Context) {
	data, filename, err := h.exportService.ExportReceiptsCSV(c.Request.Context(), academicYearOrCurrent(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// @Summary Export Receipts XLSX
// @Description Download the receipt ledger for one academic year as a spreadsheet
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param academic_year query string false "Academic year"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/receipts/xlsx [get]
func (h *ReportHandler) ReceiptsXLSX(c *gin.Context) {
	data, filename, err := h.exportService.ExportReceiptsXLSX(c.Request.Context(), academicYearOrCurrent(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// @Summary Unpaid Balances CSV
// @Description Download the list of students with money still due
// @Tags Reports
// @Produce text/csv
// @Param academic_year query string false "Academic year"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/unpaid-balances/csv [get]
func (h *ReportHandler) UnpaidBalancesCSV(c *gin.Context) {
	year := academicYearOrCurrent(c)
	buf, err := h.reportService.GenerateUnpaidBalancesCSV(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=soldes_impayes_%s.csv", year))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// @Summary Balance Statement PDF
// @Description Download a student's account statement for one academic year
// @Tags Reports
// @Produce application/pdf
// @Param student_id path int true "Student ID"
// @Param academic_year query string false "Academic year"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/students/{student_id}/statement [get]
func (h *ReportHandler) BalanceStatementPDF(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("student_id"), 10, 32)
	year := academicYearOrCurrent(c)

	buf, err := h.reportService.GenerateBalanceStatementPDF(c.Request.Context(), uint(id), year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=releve_%d_%s.pdf", id, year))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// @Summary Dashboard Overview
// @Description Aggregate counters and ledger totals for the admin dashboard
// @Tags Dashboard
// @Produce json
// @Param academic_year query string false "Academic year"
// @Success 200 {object} models.DashboardOverview
// @Security BearerAuth
// @Router /dashboard/overview [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.dashboardService.Overview(c.Request.Context(), academicYearOrCurrent(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// @Summary Monthly Collection Trend
// @Description Amounts collected per month for one academic year
// @Tags Dashboard
// @Produce json
// @Param academic_year query string false "Academic year"
// @Success 200 {object} []models.RevenuePoint
// @Security BearerAuth
// @Router /dashboard/trend [get]
func (h *DashboardHandler) Trend(c *gin.Context) {
	points, err := h.dashboardService.MonthlyTrend(c.Request.Context(), academicYearOrCurrent(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trend": points})
}
