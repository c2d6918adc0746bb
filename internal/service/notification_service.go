package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
	"github.com/noah-isme/exam-seating-api/pkg/mail"
)

type allocationReader interface {
	ListByExam(ctx context.Context, examID string) ([]models.SeatAllocationDetail, error)
}

type dutyReader interface {
	ListBySession(ctx context.Context, date time.Time, slot models.ExamSlot) ([]models.FacultyAllocationDetail, error)
}

type attendanceReader interface {
	ListAbsentees(ctx context.Context, date time.Time, slot models.ExamSlot) ([]models.AttendanceDetail, error)
	ListMalpractice(ctx context.Context, date time.Time, slot models.ExamSlot) ([]models.AttendanceDetail, error)
	Summary(ctx context.Context, date time.Time, slot models.ExamSlot) (*models.AttendanceSummary, error)
}

// NotificationResult summarises an email fan-out.
type NotificationResult struct {
	Recipients int `json:"recipients"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
	NoAddress  int `json:"no_address"`
}

// NotificationService sends seat assignment, duty and attendance emails.
// Per-recipient failures are logged and counted, never fatal: a bounced
// address must not stop the rest of the hall hearing where to sit.
type NotificationService struct {
	allocations allocationReader
	duties      dutyReader
	attendance  attendanceReader
	mailer      mail.Mailer
	logger      *zap.Logger
}

// NewNotificationService constructs the notification service.
func NewNotificationService(
	allocations allocationReader,
	duties dutyReader,
	attendance attendanceReader,
	mailer mail.Mailer,
	logger *zap.Logger,
) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		allocations: allocations,
		duties:      duties,
		attendance:  attendance,
		mailer:      mailer,
		logger:      logger,
	}
}

func (s *NotificationService) fanOut(ctx context.Context, messages []mail.Message) *NotificationResult {
	result := &NotificationResult{Recipients: len(messages)}
	for _, msg := range messages {
		if msg.ToAddress == "" {
			result.NoAddress++
			continue
		}
		if err := s.mailer.Send(ctx, msg); err != nil {
			result.Failed++
			s.logger.Warn("notification send failed",
				zap.String("to", msg.ToAddress),
				zap.Error(err),
			)
			continue
		}
		result.Sent++
	}
	return result
}

// NotifySeatAssignments emails every allocated student their room and seat.
func (s *NotificationService) NotifySeatAssignments(ctx context.Context, examID string) (*NotificationResult, error) {
	details, err := s.allocations.ListByExam(ctx, examID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load allocations")
	}
	if len(details) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no allocations for this exam")
	}

	messages := make([]mail.Message, 0, len(details))
	for _, d := range details {
		body := fmt.Sprintf(
			"Dear %s,\n\nYour seat for %s (%s) on %s [%s] is:\n\nRoom: %s, Block %s\nSeat: %s\n\nPlease arrive 30 minutes early and carry your hall ticket.\n\nExamination Cell",
			d.StudentName, d.Subject, d.SubjectCode, d.ExamDate.Format("02 Jan 2006"), d.ExamTime, d.RoomNo, d.Block, d.SeatNo,
		)
		messages = append(messages, mail.Message{
			ToName:    d.StudentName,
			ToAddress: d.Email,
			Subject:   fmt.Sprintf("Exam seat assignment: %s on %s", d.Subject, d.ExamDate.Format("02 Jan 2006")),
			TextBody:  body,
		})
	}
	return s.fanOut(ctx, messages), nil
}

// NotifyFacultyDuties emails every staff member their invigilation duty
// for one session.
func (s *NotificationService) NotifyFacultyDuties(ctx context.Context, rawDate string, slot models.ExamSlot) (*NotificationResult, error) {
	date, ok := parseFlexibleDate(rawDate)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognised date format")
	}
	details, err := s.duties.ListBySession(ctx, date, slot)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load duties")
	}
	if len(details) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no duties for this session")
	}

	messages := make([]mail.Message, 0, len(details))
	for _, d := range details {
		body := fmt.Sprintf(
			"Dear %s,\n\nYou are assigned invigilation duty on %s [%s]:\n\nRoom: %s, Block %s\n\nPlease report to the examination cell 30 minutes before the session.\n\nExamination Cell",
			d.FacultyName, d.ExamDate.Format("02 Jan 2006"), d.ExamTime, d.RoomNo, d.Block,
		)
		messages = append(messages, mail.Message{
			ToName:    d.FacultyName,
			ToAddress: d.Email,
			Subject:   fmt.Sprintf("Invigilation duty: %s [%s]", d.ExamDate.Format("02 Jan 2006"), d.ExamTime),
			TextBody:  body,
		})
	}
	return s.fanOut(ctx, messages), nil
}

// NotifySessionCounts emails the attendance tallies for one session to
// every staff member on duty in it.
func (s *NotificationService) NotifySessionCounts(ctx context.Context, rawDate string, slot models.ExamSlot) (*NotificationResult, error) {
	date, ok := parseFlexibleDate(rawDate)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognised date format")
	}
	summary, err := s.attendance.Summary(ctx, date, slot)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance summary")
	}
	duties, err := s.duties.ListBySession(ctx, date, slot)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load duties")
	}
	if len(duties) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no duties for this session")
	}

	body := fmt.Sprintf(
		"Attendance counts for %s [%s]:\n\nTotal seated: %d\nPresent: %d\nAbsent: %d\nNot marked: %d\nMalpractice reports: %d\n\nExamination Cell",
		date.Format("02 Jan 2006"), slot, summary.Total, summary.Present, summary.Absent, summary.NotMarked, summary.Malpractice,
	)
	seen := map[string]bool{}
	messages := make([]mail.Message, 0, len(duties))
	for _, d := range duties {
		if seen[d.FacultyID] {
			continue
		}
		seen[d.FacultyID] = true
		messages = append(messages, mail.Message{
			ToName:    d.FacultyName,
			ToAddress: d.Email,
			Subject:   fmt.Sprintf("Attendance counts: %s [%s]", date.Format("02 Jan 2006"), slot),
			TextBody:  fmt.Sprintf("Dear %s,\n\n%s", d.FacultyName, body),
		})
	}
	return s.fanOut(ctx, messages), nil
}

// NotifyAbsentees emails students marked absent in one session.
func (s *NotificationService) NotifyAbsentees(ctx context.Context, rawDate string, slot models.ExamSlot) (*NotificationResult, error) {
	date, ok := parseFlexibleDate(rawDate)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognised date format")
	}
	details, err := s.attendance.ListAbsentees(ctx, date, slot)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load absentees")
	}
	if len(details) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no absentees recorded for this session")
	}

	messages := make([]mail.Message, 0, len(details))
	for _, d := range details {
		body := fmt.Sprintf(
			"Dear %s,\n\nYou were marked absent for %s on %s [%s]. If you believe this is an error, contact the examination cell within 48 hours.\n\nExamination Cell",
			d.StudentName, d.Subject, d.ExamDate.Format("02 Jan 2006"), d.ExamTime,
		)
		messages = append(messages, mail.Message{
			ToName:    d.StudentName,
			ToAddress: d.Email,
			Subject:   fmt.Sprintf("Absence recorded: %s on %s", d.Subject, d.ExamDate.Format("02 Jan 2006")),
			TextBody:  body,
		})
	}
	return s.fanOut(ctx, messages), nil
}

// NotifyMalpractice emails students flagged for malpractice in one session.
func (s *NotificationService) NotifyMalpractice(ctx context.Context, rawDate string, slot models.ExamSlot) (*NotificationResult, error) {
	date, ok := parseFlexibleDate(rawDate)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognised date format")
	}
	details, err := s.attendance.ListMalpractice(ctx, date, slot)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load malpractice reports")
	}
	if len(details) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no malpractice reports for this session")
	}

	messages := make([]mail.Message, 0, len(details))
	for _, d := range details {
		body := fmt.Sprintf(
			"Dear %s,\n\nA malpractice report was filed against you during %s on %s [%s]. You will be contacted by the disciplinary committee regarding the next steps.\n\nExamination Cell",
			d.StudentName, d.Subject, d.ExamDate.Format("02 Jan 2006"), d.ExamTime,
		)
		messages = append(messages, mail.Message{
			ToName:    d.StudentName,
			ToAddress: d.Email,
			Subject:   fmt.Sprintf("Malpractice report: %s on %s", d.Subject, d.ExamDate.Format("02 Jan 2006")),
			TextBody:  body,
		})
	}
	return s.fanOut(ctx, messages), nil
}
