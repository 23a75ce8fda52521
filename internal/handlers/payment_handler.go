package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nkamgang/scolaris-api/internal/middleware"
	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
	"github.com/nkamgang/scolaris-api/internal/services"
	"github.com/nkamgang/scolaris-api/internal/storage"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
	receiptService *services.ReceiptService
	exportService  *services.ExportService
	storage        *storage.LocalStorage
}

func NewPaymentHandler(paymentService *services.PaymentService, receiptService *services.ReceiptService, exportService *services.ExportService, storage *storage.LocalStorage) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		receiptService: receiptService,
		exportService:  exportService,
		storage:        storage,
	}
}

// @Summary List Payment Plans
// @Description Get the seeded payment plan catalog
// @Tags Payments
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /payment-plans [get]
func (h *PaymentHandler) Plans(c *gin.Context) {
	plans, err := h.paymentService.Plans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment_plans": plans})
}

type PaymentRequest struct {
	StudentID       uint    `json:"student_id" binding:"required"`
	PaymentPlanID   uint    `json:"payment_plan_id" binding:"required"`
	DiscountPercent float64 `json:"discount_percent"`
	TermNumber      *int    `json:"term_number"`
	FreeAmount      float64 `json:"free_amount"`
	// RemainingBalance is the operator's statement of what is still owed
	// after a flexible payment; ignored for the other plans.
	RemainingBalance float64 `json:"remaining_balance"`
	PaymentMethod    string  `json:"payment_method"`
	AcademicYear     string  `json:"academic_year"`
	Status           string  `json:"status"`
}

func (r PaymentRequest) toInput() services.RecordPaymentInput {
	return services.RecordPaymentInput{
		StudentID:        r.StudentID,
		PaymentPlanID:    r.PaymentPlanID,
		DiscountPercent:  r.DiscountPercent,
		TermNumber:       r.TermNumber,
		FreeAmount:       r.FreeAmount,
		RemainingBalance: r.RemainingBalance,
		PaymentMethod:    r.PaymentMethod,
		AcademicYear:     r.AcademicYear,
		Status:           r.Status,
	}
}

// @Summary Compute Payment
// @Description Preview the amounts of a payment without recording anything
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body PaymentRequest true "Payment Selection"
// @Success 200 {object} services.ComputeResult
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /payments/compute [post]
func (h *PaymentHandler) Compute(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.AcademicYear == "" {
		req.AcademicYear = models.CurrentAcademicYear()
	}

	result, err := h.paymentService.Preview(c.Request.Context(), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Record Payment
// @Description Compute the amounts and write one receipt to the ledger
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body PaymentRequest true "Payment Data"
// @Success 201 {object} models.ReceiptResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.AcademicYear == "" {
		req.AcademicYear = models.CurrentAcademicYear()
	}

	receipt, err := h.paymentService.RecordPayment(c.Request.Context(), req.toInput(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"receipt": receipt.ToResponse()})
}

// @Summary List Receipts
// @Description Get a paginated list of receipts
// @Tags Payments
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param academic_year query string false "Filter by academic year"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /receipts [get]
func (h *PaymentHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Filters["status"] = c.Query("status")
	query.Filters["academic_year"] = c.Query("academic_year")
	query.Filters["payment_method"] = c.Query("payment_method")

	if sort := c.Query("sort"); sort != "" {
		parts := strings.Split(sort, "-")
		query.SortBy = parts[0]
		if len(parts) > 1 {
			query.SortDir = parts[1]
		}
	}

	receipts, total, err := h.receiptService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for i := range receipts {
		responses = append(responses, receipts[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"receipts": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Receipt
// @Tags Payments
// @Produce json
// @Param receipt_id path int true "Receipt ID"
// @Success 200 {object} models.ReceiptResponse
// @Security BearerAuth
// @Router /receipts/{receipt_id} [get]
func (h *PaymentHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("receipt_id"), 10, 32)
	receipt, err := h.receiptService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reçu introuvable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"receipt": receipt.ToResponse()})
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// @Summary Update Receipt Status
// @Description Transition a receipt between pending, late and paid
// @Tags Payments
// @Accept json
// @Produce json
// @Param receipt_id path int true "Receipt ID"
// @Param request body StatusRequest true "New Status"
// @Success 200 {object} models.ReceiptResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /receipts/{receipt_id}/status [patch]
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("receipt_id"), 10, 32)
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receipt, err := h.receiptService.UpdateStatus(c.Request.Context(), uint(id), req.Status, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"receipt": receipt.ToResponse()})
}

// @Summary Download Receipt PDF
// @Description Generate (or serve the cached) printable PDF of a receipt
// @Tags Payments
// @Produce application/pdf
// @Param receipt_id path int true "Receipt ID"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /receipts/{receipt_id}/download [get]
func (h *PaymentHandler) Download(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("receipt_id"), 10, 32)
	receipt, err := h.receiptService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reçu introuvable"})
		return
	}

	filename := fmt.Sprintf("%s.pdf", receipt.ReceiptNumber)

	if receipt.DocumentPath != nil && h.storage.Exists(*receipt.DocumentPath) {
		c.FileAttachment(h.storage.GetFullPath(*receipt.DocumentPath), filename)
		return
	}

	data, err := h.exportService.ReceiptPDF(receipt)
	if err != nil {
		respondError(c, err)
		return
	}

	if path, err := h.storage.SaveBytes(data, filename, "receipts"); err == nil {
		h.receiptService.SetDocumentPath(c.Request.Context(), receipt.ID, path)
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
