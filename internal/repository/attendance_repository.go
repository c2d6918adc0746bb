package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

// AttendanceRepository manages persistence for exam attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const attendanceDetailColumns = `a.id AS allocation_id, a.seat_no, a.room_id, a.exam_date, a.exam_time,
        s.reg_no, s.name AS student_name, s.email, s.department, s.semester, s.subject,
        r.room_no, r.block,
        COALESCE(att.status, 'not_marked') AS status,
        COALESCE(att.malpractice, false) AS malpractice,
        COALESCE(att.malpractice_note, '') AS malpractice_note,
        COALESCE(att.marked_by, '') AS marked_by,
        att.marked_at`

const attendanceDetailJoins = `FROM seat_allocations a
        JOIN students s ON s.id = a.student_id
        JOIN rooms r ON r.id = a.room_id
        LEFT JOIN exam_attendance att ON att.allocation_id = a.id`

// ListDetails returns seat allocations joined with their attendance state.
// Unmarked seats surface with a not_marked status.
func (r *AttendanceRepository) ListDetails(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceDetail, int, error) {
	base := attendanceDetailJoins
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.RoomID != "" {
		conditions = append(conditions, fmt.Sprintf("a.room_id = $%d", len(args)+1))
		args = append(args, filter.RoomID)
	}
	if filter.Date != nil {
		conditions = append(conditions, fmt.Sprintf("a.exam_date::date = $%d", len(args)+1))
		args = append(args, filter.Date.Format("2006-01-02"))
	}
	if filter.Time != "" {
		conditions = append(conditions, fmt.Sprintf("a.exam_time = $%d", len(args)+1))
		args = append(args, filter.Time)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("COALESCE(att.status, 'not_marked') = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.MarkedBy != "" {
		conditions = append(conditions, fmt.Sprintf("att.marked_by = $%d", len(args)+1))
		args = append(args, filter.MarkedBy)
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 500 {
		size = 100
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s %s ORDER BY r.room_no ASC, a.seat_no ASC LIMIT %d OFFSET %d`,
		attendanceDetailColumns, base, size, offset)

	var details []models.AttendanceDetail
	if err := r.db.SelectContext(ctx, &details, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list attendance: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count attendance: %w", err)
	}
	return details, total, nil
}

// FindByAllocation fetches the attendance detail for one seat allocation.
func (r *AttendanceRepository) FindByAllocation(ctx context.Context, allocationID string) (*models.AttendanceDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE a.id = $1`, attendanceDetailColumns, attendanceDetailJoins)
	var detail models.AttendanceDetail
	if err := r.db.GetContext(ctx, &detail, query, allocationID); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Upsert writes the attendance record for one allocation, replacing any
// earlier marking.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.ExamAttendance) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	if record.MarkedAt == nil {
		record.MarkedAt = &now
	}
	const query = `INSERT INTO exam_attendance (id, allocation_id, status, malpractice, malpractice_note, marked_by, marked_at, created_at, updated_at)
        VALUES (:id, :allocation_id, :status, :malpractice, :malpractice_note, :marked_by, :marked_at, :created_at, :updated_at)
        ON CONFLICT (allocation_id) DO UPDATE SET status = EXCLUDED.status, malpractice = EXCLUDED.malpractice,
        malpractice_note = EXCLUDED.malpractice_note, marked_by = EXCLUDED.marked_by, marked_at = EXCLUDED.marked_at,
        updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

// Summary aggregates marking progress for one session.
func (r *AttendanceRepository) Summary(ctx context.Context, date time.Time, slot models.ExamSlot) (*models.AttendanceSummary, error) {
	const query = `SELECT a.exam_date, a.exam_time,
        COUNT(*) AS total,
        COUNT(*) FILTER (WHERE att.status = 'present') AS present,
        COUNT(*) FILTER (WHERE att.status = 'absent') AS absent,
        COUNT(*) FILTER (WHERE att.status IS NULL) AS not_marked,
        COUNT(*) FILTER (WHERE att.malpractice) AS malpractice
        FROM seat_allocations a
        LEFT JOIN exam_attendance att ON att.allocation_id = a.id
        WHERE a.exam_date::date = $1 AND a.exam_time = $2
        GROUP BY a.exam_date, a.exam_time`
	var summary models.AttendanceSummary
	if err := r.db.GetContext(ctx, &summary, query, date.Format("2006-01-02"), slot); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ListAbsentees returns attendance details for students marked absent in
// one session.
func (r *AttendanceRepository) ListAbsentees(ctx context.Context, date time.Time, slot models.ExamSlot) ([]models.AttendanceDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s
        WHERE a.exam_date::date = $1 AND a.exam_time = $2 AND att.status = 'absent'
        ORDER BY r.room_no ASC, a.seat_no ASC`, attendanceDetailColumns, attendanceDetailJoins)
	var details []models.AttendanceDetail
	if err := r.db.SelectContext(ctx, &details, query, date.Format("2006-01-02"), slot); err != nil {
		return nil, fmt.Errorf("list absentees: %w", err)
	}
	return details, nil
}

// ListMalpractice returns attendance details flagged for malpractice in
// one session.
func (r *AttendanceRepository) ListMalpractice(ctx context.Context, date time.Time, slot models.ExamSlot) ([]models.AttendanceDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s
        WHERE a.exam_date::date = $1 AND a.exam_time = $2 AND att.malpractice
        ORDER BY r.room_no ASC, a.seat_no ASC`, attendanceDetailColumns, attendanceDetailJoins)
	var details []models.AttendanceDetail
	if err := r.db.SelectContext(ctx, &details, query, date.Format("2006-01-02"), slot); err != nil {
		return nil, fmt.Errorf("list malpractice: %w", err)
	}
	return details, nil
}
