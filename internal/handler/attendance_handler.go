package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-seating-api/internal/models"
	"github.com/noah-isme/exam-seating-api/internal/service"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
	"github.com/noah-isme/exam-seating-api/pkg/response"
)

// AttendanceHandler exposes exam-hall attendance endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

func markedBy(c *gin.Context) string {
	if claims := claimsFromContext(c); claims != nil {
		return claims.UserID
	}
	return ""
}

// List godoc
// @Summary List attendance for a session or room
// @Tags Attendance
// @Produce json
// @Param roomId query string false "Filter by room"
// @Param date query string false "Filter by exam date"
// @Param time query string false "Filter by slot (FN or AN)"
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	var filter models.AttendanceFilter
	filter.RoomID = c.Query("roomId")
	filter.Date = queryDate(c, "date")
	filter.Time = models.ExamSlot(c.Query("time"))
	filter.Status = models.AttendanceStatus(c.Query("status"))
	filter.Page, filter.PageSize = queryPage(c)

	details, pagination, err := h.attendance.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details, pagination)
}

// Mark godoc
// @Summary Mark a student present or absent
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.MarkAttendanceRequest true "Attendance payload"
// @Success 200 {object} response.Envelope
// @Router /attendance/mark [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req service.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	detail, err := h.attendance.Mark(c.Request.Context(), req, markedBy(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// ReportMalpractice godoc
// @Summary Report malpractice against a seat
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.ReportMalpracticeRequest true "Malpractice payload"
// @Success 200 {object} response.Envelope
// @Router /attendance/malpractice [post]
func (h *AttendanceHandler) ReportMalpractice(c *gin.Context) {
	var req service.ReportMalpracticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	detail, err := h.attendance.ReportMalpractice(c.Request.Context(), req, markedBy(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Sheet godoc
// @Summary Marking sheet for one invigilator and session
// @Tags Attendance
// @Produce json
// @Param facultyId path string true "Faculty ID"
// @Param date query string true "Exam date"
// @Param time query string true "Slot (FN or AN)"
// @Success 200 {object} response.Envelope
// @Router /attendance/invigilator/{facultyId} [get]
func (h *AttendanceHandler) Sheet(c *gin.Context) {
	sheet, err := h.attendance.Sheet(c.Request.Context(), c.Param("facultyId"), c.Query("date"), models.ExamSlot(c.Query("time")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheet, nil)
}

// Report godoc
// @Summary Attendance records marked by one invigilator
// @Tags Attendance
// @Produce json
// @Param facultyId path string true "Faculty ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /attendance/report/{facultyId} [get]
func (h *AttendanceHandler) Report(c *gin.Context) {
	var filter models.AttendanceFilter
	filter.MarkedBy = c.Param("facultyId")
	filter.Date = queryDate(c, "date")
	filter.Time = models.ExamSlot(c.Query("time"))
	filter.Page, filter.PageSize = queryPage(c)

	details, pagination, err := h.attendance.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details, pagination)
}

// Summary godoc
// @Summary Attendance summary for a session
// @Tags Attendance
// @Produce json
// @Param date query string true "Exam date"
// @Param time query string true "Slot (FN or AN)"
// @Success 200 {object} response.Envelope
// @Router /attendance/summary [get]
func (h *AttendanceHandler) Summary(c *gin.Context) {
	summary, err := h.attendance.Summary(c.Request.Context(), c.Query("date"), models.ExamSlot(c.Query("time")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
