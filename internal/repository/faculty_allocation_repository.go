package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

// FacultyAllocationRepository manages persistence for invigilation duties.
type FacultyAllocationRepository struct {
	db *sqlx.DB
}

// NewFacultyAllocationRepository constructs a FacultyAllocationRepository.
func NewFacultyAllocationRepository(db *sqlx.DB) *FacultyAllocationRepository {
	return &FacultyAllocationRepository{db: db}
}

const facultyAllocationDetailColumns = `a.id, a.faculty_id, a.room_id, a.exam_date, a.exam_time, a.role, a.created_at,
        f.name AS faculty_name, f.email, f.department, f.designation,
        r.room_no, r.block`

// ListDetails returns duties joined with staff and room rows.
func (r *FacultyAllocationRepository) ListDetails(ctx context.Context, filter models.FacultyAllocationFilter) ([]models.FacultyAllocationDetail, int, error) {
	base := `FROM faculty_allocations a
        JOIN faculty f ON f.id = a.faculty_id
        JOIN rooms r ON r.id = a.room_id`
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.FacultyID != "" {
		conditions = append(conditions, fmt.Sprintf("a.faculty_id = $%d", len(args)+1))
		args = append(args, filter.FacultyID)
	}
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

	query := fmt.Sprintf(`SELECT %s %s ORDER BY r.room_no ASC, f.name ASC LIMIT %d OFFSET %d`,
		facultyAllocationDetailColumns, base, size, offset)

	var details []models.FacultyAllocationDetail
	if err := r.db.SelectContext(ctx, &details, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list faculty allocations: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count faculty allocations: %w", err)
	}
	return details, total, nil
}

// ListBySession returns every duty detail for one session, ordered for
// duty rosters and notification.
func (r *FacultyAllocationRepository) ListBySession(ctx context.Context, date time.Time, slot models.ExamSlot) ([]models.FacultyAllocationDetail, error) {
	query := fmt.Sprintf(`SELECT %s FROM faculty_allocations a
        JOIN faculty f ON f.id = a.faculty_id
        JOIN rooms r ON r.id = a.room_id
        WHERE a.exam_date::date = $1 AND a.exam_time = $2 ORDER BY r.room_no ASC, f.name ASC`, facultyAllocationDetailColumns)
	var details []models.FacultyAllocationDetail
	if err := r.db.SelectContext(ctx, &details, query, date.Format("2006-01-02"), slot); err != nil {
		return nil, fmt.Errorf("list faculty allocations by session: %w", err)
	}
	return details, nil
}

// ReplaceForSession atomically clears any prior duties for the session and
// writes the new roster. Rerunning the allocator is therefore idempotent.
func (r *FacultyAllocationRepository) ReplaceForSession(ctx context.Context, date time.Time, slot models.ExamSlot, allocations []models.FacultyAllocation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace duties: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM faculty_allocations WHERE exam_date::date = $1 AND exam_time = $2`,
		date.Format("2006-01-02"), slot); err != nil {
		return fmt.Errorf("clear duties: %w", err)
	}

	const insert = `INSERT INTO faculty_allocations (id, faculty_id, room_id, exam_date, exam_time, role, created_at)
        VALUES (:id, :faculty_id, :room_id, :exam_date, :exam_time, :role, :created_at)`
	now := time.Now().UTC()
	for i := range allocations {
		if allocations[i].ID == "" {
			allocations[i].ID = uuid.NewString()
		}
		if allocations[i].CreatedAt.IsZero() {
			allocations[i].CreatedAt = now
		}
		if _, err := tx.NamedExecContext(ctx, insert, allocations[i]); err != nil {
			return fmt.Errorf("insert duty: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit duties: %w", err)
	}
	return nil
}

// Create writes one manually assigned duty.
func (r *FacultyAllocationRepository) Create(ctx context.Context, allocation *models.FacultyAllocation) error {
	if allocation.ID == "" {
		allocation.ID = uuid.NewString()
	}
	if allocation.CreatedAt.IsZero() {
		allocation.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO faculty_allocations (id, faculty_id, room_id, exam_date, exam_time, role, created_at)
        VALUES (:id, :faculty_id, :room_id, :exam_date, :exam_time, :role, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, allocation); err != nil {
		return fmt.Errorf("create duty: %w", err)
	}
	return nil
}

// Update rewrites the room and role of one duty.
func (r *FacultyAllocationRepository) Update(ctx context.Context, allocation *models.FacultyAllocation) error {
	result, err := r.db.ExecContext(ctx, `UPDATE faculty_allocations SET room_id = $1, role = $2 WHERE id = $3`,
		allocation.RoomID, allocation.Role, allocation.ID)
	if err != nil {
		return fmt.Errorf("update duty: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes one duty by id.
func (r *FacultyAllocationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM faculty_allocations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete duty: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ExistsForSession reports whether the faculty member already holds a duty
// in the session.
func (r *FacultyAllocationRepository) ExistsForSession(ctx context.Context, facultyID string, date time.Time, slot models.ExamSlot) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM faculty_allocations
        WHERE faculty_id = $1 AND exam_date::date = $2 AND exam_time = $3)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, facultyID, date.Format("2006-01-02"), slot); err != nil {
		return false, fmt.Errorf("check duty exists: %w", err)
	}
	return exists, nil
}

// ClearSession removes all duties for one session.
func (r *FacultyAllocationRepository) ClearSession(ctx context.Context, date time.Time, slot models.ExamSlot) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM faculty_allocations WHERE exam_date::date = $1 AND exam_time = $2`,
		date.Format("2006-01-02"), slot); err != nil {
		return fmt.Errorf("clear session duties: %w", err)
	}
	return nil
}
