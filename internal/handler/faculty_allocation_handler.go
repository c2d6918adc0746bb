package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-seating-api/internal/models"
	"github.com/noah-isme/exam-seating-api/internal/service"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
	"github.com/noah-isme/exam-seating-api/pkg/response"
)

// FacultyAllocationHandler exposes invigilation duty endpoints.
type FacultyAllocationHandler struct {
	duties  *service.FacultyAllocationService
	exports *service.ExportService
	metrics *service.MetricsService
}

// NewFacultyAllocationHandler constructs FacultyAllocationHandler.
func NewFacultyAllocationHandler(duties *service.FacultyAllocationService, exports *service.ExportService, metrics *service.MetricsService) *FacultyAllocationHandler {
	return &FacultyAllocationHandler{duties: duties, exports: exports, metrics: metrics}
}

// List godoc
// @Summary List invigilation duties
// @Tags Allocations
// @Produce json
// @Param facultyId query string false "Filter by faculty member"
// @Param roomId query string false "Filter by room"
// @Param date query string false "Filter by exam date"
// @Param time query string false "Filter by slot (FN or AN)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /allocations/faculty [get]
func (h *FacultyAllocationHandler) List(c *gin.Context) {
	var filter models.FacultyAllocationFilter
	filter.FacultyID = c.Query("facultyId")
	filter.RoomID = c.Query("roomId")
	filter.Date = queryDate(c, "date")
	filter.Time = models.ExamSlot(c.Query("time"))
	filter.Page, filter.PageSize = queryPage(c)

	details, pagination, err := h.duties.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details, pagination)
}

// Allocate godoc
// @Summary Run invigilator allocation for a session
// @Tags Allocations
// @Accept json
// @Produce json
// @Param payload body service.AllocateFacultyRequest true "Session payload"
// @Success 200 {object} response.Envelope
// @Router /allocations/faculty [post]
func (h *FacultyAllocationHandler) Allocate(c *gin.Context) {
	var req service.AllocateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.duties.Allocate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordAllocationRun("faculty", result.Assigned)
	response.JSON(c, http.StatusOK, result, nil)
}

// Clear godoc
// @Summary Clear invigilation duties for a session
// @Tags Allocations
// @Produce json
// @Param date query string true "Exam date"
// @Param time query string true "Slot (FN or AN)"
// @Success 204
// @Router /allocations/faculty [delete]
func (h *FacultyAllocationHandler) Clear(c *gin.Context) {
	if err := h.duties.Clear(c.Request.Context(), c.Query("date"), models.ExamSlot(c.Query("time"))); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AssignDuty godoc
// @Summary Assign one invigilation duty by hand
// @Tags Allocations
// @Accept json
// @Produce json
// @Param payload body service.AssignDutyRequest true "Duty payload"
// @Success 201 {object} response.Envelope
// @Router /allocations/faculty/duties [post]
func (h *FacultyAllocationHandler) AssignDuty(c *gin.Context) {
	var req service.AssignDutyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	duty, err := h.duties.AssignDuty(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, duty)
}

// UpdateDuty godoc
// @Summary Move one invigilation duty to another room or role
// @Tags Allocations
// @Accept json
// @Produce json
// @Param id path string true "Duty ID"
// @Param payload body service.UpdateDutyRequest true "Duty payload"
// @Success 200 {object} response.Envelope
// @Router /allocations/faculty/duties/{id} [put]
func (h *FacultyAllocationHandler) UpdateDuty(c *gin.Context) {
	var req service.UpdateDutyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	duty, err := h.duties.UpdateDuty(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, duty, nil)
}

// RemoveDuty godoc
// @Summary Remove one invigilation duty
// @Tags Allocations
// @Produce json
// @Param id path string true "Duty ID"
// @Success 204
// @Router /allocations/faculty/duties/{id} [delete]
func (h *FacultyAllocationHandler) RemoveDuty(c *gin.Context) {
	if err := h.duties.RemoveDuty(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DutyRoster godoc
// @Summary Download the duty roster as CSV
// @Tags Allocations
// @Produce text/csv
// @Param date query string true "Exam date"
// @Param time query string true "Slot (FN or AN)"
// @Success 200 {file} binary
// @Router /allocations/faculty/export/csv [get]
func (h *FacultyAllocationHandler) DutyRoster(c *gin.Context) {
	payload, filename, err := h.exports.DutyRosterCSV(c.Request.Context(), c.Query("date"), models.ExamSlot(c.Query("time")))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendAttachment(c, payload, filename, mimeCSV)
}
