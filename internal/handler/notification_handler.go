package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-seating-api/internal/models"
	"github.com/noah-isme/exam-seating-api/internal/service"
	"github.com/noah-isme/exam-seating-api/pkg/response"
)

// NotificationHandler exposes email notification endpoints.
type NotificationHandler struct {
	notifications *service.NotificationService
	metrics       *service.MetricsService
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(notifications *service.NotificationService, metrics *service.MetricsService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, metrics: metrics}
}

func (h *NotificationHandler) respond(c *gin.Context, result *service.NotificationResult, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordNotifications(result.Sent, result.Failed)
	response.JSON(c, http.StatusOK, result, nil)
}

// NotifyStudents godoc
// @Summary Email seat assignments to students of an exam
// @Tags Notifications
// @Produce json
// @Param examId path string true "Exam ID"
// @Success 200 {object} response.Envelope
// @Router /notifications/students/{examId} [post]
func (h *NotificationHandler) NotifyStudents(c *gin.Context) {
	result, err := h.notifications.NotifySeatAssignments(c.Request.Context(), c.Param("examId"))
	h.respond(c, result, err)
}

// NotifyFaculty godoc
// @Summary Email duty assignments to invigilators of a session
// @Tags Notifications
// @Produce json
// @Param date query string true "Exam date"
// @Param time query string true "Slot (FN or AN)"
// @Success 200 {object} response.Envelope
// @Router /notifications/faculty [post]
func (h *NotificationHandler) NotifyFaculty(c *gin.Context) {
	result, err := h.notifications.NotifyFacultyDuties(c.Request.Context(), c.Query("date"), models.ExamSlot(c.Query("time")))
	h.respond(c, result, err)
}

// NotifyAbsentees godoc
// @Summary Email absence notices for a session
// @Tags Notifications
// @Produce json
// @Param date query string true "Exam date"
// @Param time query string true "Slot (FN or AN)"
// @Success 200 {object} response.Envelope
// @Router /notifications/absentees [post]
func (h *NotificationHandler) NotifyAbsentees(c *gin.Context) {
	result, err := h.notifications.NotifyAbsentees(c.Request.Context(), c.Query("date"), models.ExamSlot(c.Query("time")))
	h.respond(c, result, err)
}

// NotifyCounts godoc
// @Summary Email attendance tallies to staff on duty in a session
// @Tags Notifications
// @Produce json
// @Param date query string true "Exam date"
// @Param time query string true "Slot (FN or AN)"
// @Success 200 {object} response.Envelope
// @Router /notifications/counts [post]
func (h *NotificationHandler) NotifyCounts(c *gin.Context) {
	result, err := h.notifications.NotifySessionCounts(c.Request.Context(), c.Query("date"), models.ExamSlot(c.Query("time")))
	h.respond(c, result, err)
}

// NotifyMalpractice godoc
// @Summary Email malpractice notices for a session
// @Tags Notifications
// @Produce json
// @Param date query string true "Exam date"
// @Param time query string true "Slot (FN or AN)"
// @Success 200 {object} response.Envelope
// @Router /notifications/malpractice [post]
func (h *NotificationHandler) NotifyMalpractice(c *gin.Context) {
	result, err := h.notifications.NotifyMalpractice(c.Request.Context(), c.Query("date"), models.ExamSlot(c.Query("time")))
	h.respond(c, result, err)
}
