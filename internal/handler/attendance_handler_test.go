package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-seating-api/internal/middleware"
	"github.com/noah-isme/exam-seating-api/internal/models"
	"github.com/noah-isme/exam-seating-api/internal/service"
)

type attendanceStoreMock struct {
	details    []models.AttendanceDetail
	upserted   []models.ExamAttendance
	lastFilter models.AttendanceFilter
}

func (m *attendanceStoreMock) ListDetails(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceDetail, int, error) {
	m.lastFilter = filter
	return m.details, len(m.details), nil
}

func (m *attendanceStoreMock) FindByAllocation(ctx context.Context, allocationID string) (*models.AttendanceDetail, error) {
	for i := range m.details {
		if m.details[i].AllocationID == allocationID {
			return &m.details[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *attendanceStoreMock) Upsert(ctx context.Context, record *models.ExamAttendance) error {
	m.upserted = append(m.upserted, *record)
	for i := range m.details {
		if m.details[i].AllocationID == record.AllocationID {
			m.details[i].Status = record.Status
			m.details[i].Malpractice = record.Malpractice
			m.details[i].MalpracticeNote = record.MalpracticeNote
			m.details[i].MarkedBy = record.MarkedBy
		}
	}
	return nil
}

func (m *attendanceStoreMock) Summary(ctx context.Context, date time.Time, slot models.ExamSlot) (*models.AttendanceSummary, error) {
	return &models.AttendanceSummary{ExamDate: date, ExamTime: slot, Total: len(m.details)}, nil
}

func (m *attendanceStoreMock) ListAbsentees(ctx context.Context, date time.Time, slot models.ExamSlot) ([]models.AttendanceDetail, error) {
	return nil, nil
}

func (m *attendanceStoreMock) ListMalpractice(ctx context.Context, date time.Time, slot models.ExamSlot) ([]models.AttendanceDetail, error) {
	return nil, nil
}

func attendanceHandlerFixture() (*AttendanceHandler, *attendanceStoreMock) {
	store := &attendanceStoreMock{details: []models.AttendanceDetail{
		{AllocationID: "alloc-1", SeatNo: "A1", RegNo: "CS001", StudentName: "Asha", Status: models.AttendanceNotMarked},
	}}
	svc := service.NewAttendanceService(store, nil, nil, nil)
	return NewAttendanceHandler(svc), store
}

func TestAttendanceHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, store := attendanceHandlerFixture()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/attendance?roomId=room-1&time=FN", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "room-1", store.lastFilter.RoomID)
	assert.Equal(t, models.SlotForenoon, store.lastFilter.Time)
}

func TestAttendanceHandlerMark(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, store := attendanceHandlerFixture()

	payload, _ := json.Marshal(service.MarkAttendanceRequest{AllocationID: "alloc-1", Status: "present"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/attendance/mark", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "inv-1", Role: models.RoleInvigilator})

	handler.Mark(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.upserted, 1)
	assert.Equal(t, models.AttendancePresent, store.upserted[0].Status)
	assert.Equal(t, "inv-1", store.upserted[0].MarkedBy)
}

func TestAttendanceHandlerMarkInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := attendanceHandlerFixture()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/attendance/mark", bytes.NewBufferString(`{"allocation_id":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Mark(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceHandlerMarkUnknownSeat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := attendanceHandlerFixture()

	payload, _ := json.Marshal(service.MarkAttendanceRequest{AllocationID: "alloc-9", Status: "absent"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/attendance/mark", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Mark(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAttendanceHandlerReportMalpractice(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, store := attendanceHandlerFixture()

	payload, _ := json.Marshal(service.ReportMalpracticeRequest{AllocationID: "alloc-1", Note: "copied answers"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/attendance/malpractice", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "inv-1", Role: models.RoleInvigilator})

	handler.ReportMalpractice(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.upserted, 1)
	assert.True(t, store.upserted[0].Malpractice)
	assert.Equal(t, models.AttendancePresent, store.upserted[0].Status)
}

func TestAttendanceHandlerSummaryBadDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := attendanceHandlerFixture()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/attendance/summary?date=whenever&time=FN", nil)
	c.Request = req

	handler.Summary(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
