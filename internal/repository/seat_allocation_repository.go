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

// SeatAllocationRepository manages persistence for seat allocations.
type SeatAllocationRepository struct {
	db *sqlx.DB
}

// NewSeatAllocationRepository constructs a SeatAllocationRepository.
func NewSeatAllocationRepository(db *sqlx.DB) *SeatAllocationRepository {
	return &SeatAllocationRepository{db: db}
}

const seatAllocationDetailColumns = `a.id, a.exam_id, a.student_id, a.room_id, a.seat_no, a.exam_date, a.exam_time, a.created_at,
        s.reg_no, s.name AS student_name, s.email, s.department, s.semester, s.subject, s.subject_code,
        r.room_no, r.block`

// ListDetails returns allocations joined with student and room rows.
func (r *SeatAllocationRepository) ListDetails(ctx context.Context, filter models.AllocationFilter) ([]models.SeatAllocationDetail, int, error) {
	base := `FROM seat_allocations a
        JOIN students s ON s.id = a.student_id
        JOIN rooms r ON r.id = a.room_id`
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.ExamID != "" {
		conditions = append(conditions, fmt.Sprintf("a.exam_id = $%d", len(args)+1))
		args = append(args, filter.ExamID)
	}
	if filter.RoomID != "" {
		conditions = append(conditions, fmt.Sprintf("a.room_id = $%d", len(args)+1))
		args = append(args, filter.RoomID)
	}
	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("a.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.Date != nil {
		conditions = append(conditions, fmt.Sprintf("a.exam_date::date = $%d", len(args)+1))
		args = append(args, filter.Date.Format("2006-01-02"))
	}
	if filter.Time != "" {
		conditions = append(conditions, fmt.Sprintf("a.exam_time = $%d", len(args)+1))
		args = append(args, filter.Time)
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
		seatAllocationDetailColumns, base, size, offset)

	var details []models.SeatAllocationDetail
	if err := r.db.SelectContext(ctx, &details, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list allocations: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count allocations: %w", err)
	}
	return details, total, nil
}

// ListByExam returns every allocation detail for one exam, ordered for
// seating charts.
func (r *SeatAllocationRepository) ListByExam(ctx context.Context, examID string) ([]models.SeatAllocationDetail, error) {
	query := fmt.Sprintf(`SELECT %s FROM seat_allocations a
        JOIN students s ON s.id = a.student_id
        JOIN rooms r ON r.id = a.room_id
        WHERE a.exam_id = $1 ORDER BY r.room_no ASC, a.seat_no ASC`, seatAllocationDetailColumns)
	var details []models.SeatAllocationDetail
	if err := r.db.SelectContext(ctx, &details, query, examID); err != nil {
		return nil, fmt.Errorf("list allocations by exam: %w", err)
	}
	return details, nil
}

// ReplaceForExam atomically clears any prior allocation for the exam and
// writes the new one. Rerunning the allocator is therefore idempotent.
func (r *SeatAllocationRepository) ReplaceForExam(ctx context.Context, examID string, allocations []models.SeatAllocation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace allocations: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM seat_allocations WHERE exam_id = $1`, examID); err != nil {
		return fmt.Errorf("clear allocations: %w", err)
	}

	const insert = `INSERT INTO seat_allocations (id, exam_id, student_id, room_id, seat_no, exam_date, exam_time, created_at)
        VALUES (:id, :exam_id, :student_id, :room_id, :seat_no, :exam_date, :exam_time, :created_at)`
	now := time.Now().UTC()
	for i := range allocations {
		if allocations[i].ID == "" {
			allocations[i].ID = uuid.NewString()
		}
		if allocations[i].CreatedAt.IsZero() {
			allocations[i].CreatedAt = now
		}
		if _, err := tx.NamedExecContext(ctx, insert, allocations[i]); err != nil {
			return fmt.Errorf("insert allocation: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit allocations: %w", err)
	}
	return nil
}

// DeleteByExam removes all allocations for one exam.
func (r *SeatAllocationRepository) DeleteByExam(ctx context.Context, examID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM seat_allocations WHERE exam_id = $1`, examID); err != nil {
		return fmt.Errorf("delete allocations: %w", err)
	}
	return nil
}

// OccupiedRoomIDs returns the IDs of rooms holding at least one allocation
// in the given session.
func (r *SeatAllocationRepository) OccupiedRoomIDs(ctx context.Context, date time.Time, slot models.ExamSlot) ([]string, error) {
	const query = `SELECT DISTINCT room_id FROM seat_allocations WHERE exam_date::date = $1 AND exam_time = $2`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, date.Format("2006-01-02"), slot); err != nil {
		return nil, fmt.Errorf("occupied rooms: %w", err)
	}
	return ids, nil
}

// SessionOccupancy returns each room holding allocations in the given
// session along with its seated head count. Faculty allocation staffs
// rooms from this.
func (r *SeatAllocationRepository) SessionOccupancy(ctx context.Context, date time.Time, slot models.ExamSlot) ([]models.RoomOccupancy, error) {
	const query = `SELECT r.id, r.room_no, r.block, r.floor_no, r.capacity, r.room_type, r.active, r.created_at, r.updated_at,
        COUNT(*) AS seated
        FROM seat_allocations a
        JOIN rooms r ON r.id = a.room_id
        WHERE a.exam_date::date = $1 AND a.exam_time = $2
        GROUP BY r.id, r.room_no, r.block, r.floor_no, r.capacity, r.room_type, r.active, r.created_at, r.updated_at
        ORDER BY r.room_no ASC`
	var occupancy []models.RoomOccupancy
	if err := r.db.SelectContext(ctx, &occupancy, query, date.Format("2006-01-02"), slot); err != nil {
		return nil, fmt.Errorf("session occupancy: %w", err)
	}
	return occupancy, nil
}

// CountByExam returns the number of allocated seats for one exam.
func (r *SeatAllocationRepository) CountByExam(ctx context.Context, examID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM seat_allocations WHERE exam_id = $1`, examID); err != nil {
		return 0, fmt.Errorf("count allocations by exam: %w", err)
	}
	return count, nil
}
