package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-seating-api/internal/models"
	"github.com/noah-isme/exam-seating-api/internal/service"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
	"github.com/noah-isme/exam-seating-api/pkg/response"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeCSV  = "text/csv"
	mimePDF  = "application/pdf"
)

// SeatAllocationHandler exposes seat allocation endpoints.
type SeatAllocationHandler struct {
	allocations *service.SeatAllocationService
	exports     *service.ExportService
	metrics     *service.MetricsService
}

// NewSeatAllocationHandler constructs SeatAllocationHandler.
func NewSeatAllocationHandler(allocations *service.SeatAllocationService, exports *service.ExportService, metrics *service.MetricsService) *SeatAllocationHandler {
	return &SeatAllocationHandler{allocations: allocations, exports: exports, metrics: metrics}
}

// List godoc
// @Summary List seat allocations
// @Tags Allocations
// @Produce json
// @Param examId query string false "Filter by exam"
// @Param roomId query string false "Filter by room"
// @Param date query string false "Filter by exam date"
// @Param time query string false "Filter by slot (FN or AN)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /allocations/seats [get]
func (h *SeatAllocationHandler) List(c *gin.Context) {
	var filter models.AllocationFilter
	filter.ExamID = c.Query("examId")
	filter.RoomID = c.Query("roomId")
	filter.StudentID = c.Query("studentId")
	filter.Date = queryDate(c, "date")
	filter.Time = models.ExamSlot(c.Query("time"))
	filter.Page, filter.PageSize = queryPage(c)

	details, pagination, err := h.allocations.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details, pagination)
}

// Allocate godoc
// @Summary Run seat allocation for an exam
// @Tags Allocations
// @Accept json
// @Produce json
// @Param payload body service.AllocateSeatsRequest true "Allocation payload"
// @Success 200 {object} response.Envelope
// @Router /allocations/seats [post]
func (h *SeatAllocationHandler) Allocate(c *gin.Context) {
	var req service.AllocateSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.allocations.Allocate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordAllocationRun("seats", result.Result.Allocated)
	response.JSON(c, http.StatusOK, result, nil)
}

// Clear godoc
// @Summary Clear seat allocations for an exam
// @Tags Allocations
// @Produce json
// @Param examId path string true "Exam ID"
// @Success 204
// @Router /allocations/seats/{examId} [delete]
func (h *SeatAllocationHandler) Clear(c *gin.Context) {
	if err := h.allocations.Clear(c.Request.Context(), c.Param("examId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Availability godoc
// @Summary Room availability for a date and slot
// @Tags Allocations
// @Produce json
// @Param date query string true "Exam date"
// @Param time query string true "Slot (FN or AN)"
// @Success 200 {object} response.Envelope
// @Router /allocations/availability [get]
func (h *SeatAllocationHandler) Availability(c *gin.Context) {
	availability, err := h.allocations.Availability(c.Request.Context(), c.Query("date"), models.ExamSlot(c.Query("time")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, availability, nil)
}

func sendAttachment(c *gin.Context, payload []byte, filename, mimeType string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, mimeType, payload)
}

// ExportWorkbook godoc
// @Summary Download the seating plan as an XLSX workbook
// @Tags Allocations
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param examId path string true "Exam ID"
// @Success 200 {file} binary
// @Router /allocations/seats/{examId}/export/xlsx [get]
func (h *SeatAllocationHandler) ExportWorkbook(c *gin.Context) {
	payload, filename, err := h.exports.SeatingWorkbook(c.Request.Context(), c.Param("examId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendAttachment(c, payload, filename, mimeXLSX)
}

// ExportCSV godoc
// @Summary Download the seating plan as CSV
// @Tags Allocations
// @Produce text/csv
// @Param examId path string true "Exam ID"
// @Success 200 {file} binary
// @Router /allocations/seats/{examId}/export/csv [get]
func (h *SeatAllocationHandler) ExportCSV(c *gin.Context) {
	payload, filename, err := h.exports.SeatingCSV(c.Request.Context(), c.Param("examId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendAttachment(c, payload, filename, mimeCSV)
}

// ExportPDF godoc
// @Summary Download the printable seating chart as PDF
// @Tags Allocations
// @Produce application/pdf
// @Param examId path string true "Exam ID"
// @Success 200 {file} binary
// @Router /allocations/seats/{examId}/export/pdf [get]
func (h *SeatAllocationHandler) ExportPDF(c *gin.Context) {
	payload, filename, err := h.exports.SeatingChartPDF(c.Request.Context(), c.Param("examId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendAttachment(c, payload, filename, mimePDF)
}
