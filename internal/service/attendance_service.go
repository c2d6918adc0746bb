package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type attendanceStore interface {
	ListDetails(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceDetail, int, error)
	FindByAllocation(ctx context.Context, allocationID string) (*models.AttendanceDetail, error)
	Upsert(ctx context.Context, record *models.ExamAttendance) error
	Summary(ctx context.Context, date time.Time, slot models.ExamSlot) (*models.AttendanceSummary, error)
	ListAbsentees(ctx context.Context, date time.Time, slot models.ExamSlot) ([]models.AttendanceDetail, error)
	ListMalpractice(ctx context.Context, date time.Time, slot models.ExamSlot) ([]models.AttendanceDetail, error)
}

// MarkAttendanceRequest holds payload for marking one seat.
type MarkAttendanceRequest struct {
	AllocationID string `json:"allocation_id" validate:"required"`
	Status       string `json:"status" validate:"required,oneof=present absent"`
}

// ReportMalpracticeRequest holds payload for flagging one seat.
type ReportMalpracticeRequest struct {
	AllocationID string `json:"allocation_id" validate:"required"`
	Note         string `json:"note" validate:"required"`
}

// AttendanceService handles invigilator-side marking and session reports.
type AttendanceService struct {
	store     attendanceStore
	duties    dutyReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(store attendanceStore, duties dutyReader, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{store: store, duties: duties, validator: validate, logger: logger}
}

// List returns attendance details and pagination metadata. Invigilators
// filter by their assigned room and session to get their marking sheet.
func (s *AttendanceService) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceDetail, *models.Pagination, error) {
	details, total, err := s.store.ListDetails(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 100
	}
	return details, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Mark records presence for one seat. Remarking overwrites the earlier
// status but preserves any malpractice flag already on the record.
func (s *AttendanceService) Mark(ctx context.Context, req MarkAttendanceRequest, markedBy string) (*models.AttendanceDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	current, err := s.store.FindByAllocation(ctx, req.AllocationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "seat allocation not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load seat")
	}

	record := &models.ExamAttendance{
		AllocationID:    req.AllocationID,
		Status:          models.AttendanceStatus(req.Status),
		Malpractice:     current.Malpractice,
		MalpracticeNote: current.MalpracticeNote,
		MarkedBy:        markedBy,
	}
	if err := s.store.Upsert(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark attendance")
	}
	return s.store.FindByAllocation(ctx, req.AllocationID)
}

// ReportMalpractice flags one seat. A student must be in the hall to be
// reported, so an unmarked seat is promoted to present.
func (s *AttendanceService) ReportMalpractice(ctx context.Context, req ReportMalpracticeRequest, markedBy string) (*models.AttendanceDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid malpractice payload")
	}
	current, err := s.store.FindByAllocation(ctx, req.AllocationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "seat allocation not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load seat")
	}

	status := current.Status
	if status == models.AttendanceNotMarked {
		status = models.AttendancePresent
	}
	record := &models.ExamAttendance{
		AllocationID:    req.AllocationID,
		Status:          status,
		Malpractice:     true,
		MalpracticeNote: strings.TrimSpace(req.Note),
		MarkedBy:        markedBy,
	}
	if err := s.store.Upsert(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to report malpractice")
	}
	s.logger.Info("malpractice reported",
		zap.String("allocation_id", req.AllocationID),
		zap.String("marked_by", markedBy),
	)
	return s.store.FindByAllocation(ctx, req.AllocationID)
}

// InvigilatorSheet is the marking view for one invigilator: the rooms they
// are assigned to for the session and every seat in those rooms.
type InvigilatorSheet struct {
	Duties  []models.FacultyAllocationDetail `json:"duties"`
	Records []models.AttendanceDetail        `json:"records"`
	Summary models.AttendanceSummary         `json:"summary"`
}

// Sheet builds the marking sheet for one invigilator and session.
func (s *AttendanceService) Sheet(ctx context.Context, facultyID, rawDate string, slot models.ExamSlot) (*InvigilatorSheet, error) {
	date, ok := parseFlexibleDate(rawDate)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognised date format")
	}
	if !slot.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognised time slot")
	}

	sessionDuties, err := s.duties.ListBySession(ctx, date, slot)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load duties")
	}
	sheet := &InvigilatorSheet{
		Duties:  []models.FacultyAllocationDetail{},
		Records: []models.AttendanceDetail{},
		Summary: models.AttendanceSummary{ExamDate: date, ExamTime: slot},
	}
	for _, duty := range sessionDuties {
		if duty.FacultyID != facultyID {
			continue
		}
		sheet.Duties = append(sheet.Duties, duty)
	}
	if len(sheet.Duties) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no duty assigned for this session")
	}

	for _, duty := range sheet.Duties {
		records, _, err := s.store.ListDetails(ctx, models.AttendanceFilter{
			RoomID: duty.RoomID,
			Date:   &date,
			Time:   slot,
		})
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load marking sheet")
		}
		sheet.Records = append(sheet.Records, records...)
	}

	for _, rec := range sheet.Records {
		sheet.Summary.Total++
		switch rec.Status {
		case models.AttendancePresent:
			sheet.Summary.Present++
		case models.AttendanceAbsent:
			sheet.Summary.Absent++
		default:
			sheet.Summary.NotMarked++
		}
		if rec.Malpractice {
			sheet.Summary.Malpractice++
		}
	}
	return sheet, nil
}

// Summary aggregates marking progress for one session.
func (s *AttendanceService) Summary(ctx context.Context, rawDate string, slot models.ExamSlot) (*models.AttendanceSummary, error) {
	date, ok := parseFlexibleDate(rawDate)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognised date format")
	}
	if !slot.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognised time slot")
	}
	summary, err := s.store.Summary(ctx, date, slot)
	if err != nil {
		if err == sql.ErrNoRows {
			return &models.AttendanceSummary{ExamDate: date, ExamTime: slot}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load summary")
	}
	return summary, nil
}
