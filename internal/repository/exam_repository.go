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

// ExamRepository manages persistence for exam schedules.
type ExamRepository struct {
	db *sqlx.DB
}

// NewExamRepository constructs an ExamRepository.
func NewExamRepository(db *sqlx.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

// List returns exam schedules matching the provided filters.
func (r *ExamRepository) List(ctx context.Context, filter models.ExamFilter) ([]models.Exam, int, error) {
	base := "FROM exams e"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(TRIM(e.department)) = $%d", len(args)+1))
		args = append(args, strings.ToLower(strings.TrimSpace(filter.Department)))
	}
	if filter.Semester != "" {
		conditions = append(conditions, fmt.Sprintf("e.semester = $%d", len(args)+1))
		args = append(args, filter.Semester)
	}
	if filter.Date != nil {
		conditions = append(conditions, fmt.Sprintf("e.date::date = $%d", len(args)+1))
		args = append(args, filter.Date.Format("2006-01-02"))
	}
	if filter.Time != "" {
		conditions = append(conditions, fmt.Sprintf("e.time = $%d", len(args)+1))
		args = append(args, filter.Time)
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"date":    "e.date",
		"subject": "e.subject",
	}
	if sortBy == "" {
		sortBy = "date"
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "e.date"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT e.id, e.subject, e.subject_code, e.department, e.semester, e.date, e.time, e.exam_type, e.created_at, e.updated_at
        %s ORDER BY %s %s, e.time ASC LIMIT %d OFFSET %d`, base, column, order, size, offset)

	var exams []models.Exam
	if err := r.db.SelectContext(ctx, &exams, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list exams: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count exams: %w", err)
	}
	return exams, total, nil
}

// FindByID fetches an exam schedule by ID.
func (r *ExamRepository) FindByID(ctx context.Context, id string) (*models.Exam, error) {
	const query = `SELECT id, subject, subject_code, department, semester, date, time, exam_type, created_at, updated_at
        FROM exams WHERE id = $1`
	var exam models.Exam
	if err := r.db.GetContext(ctx, &exam, query, id); err != nil {
		return nil, err
	}
	return &exam, nil
}

// ListBySession returns every exam scheduled on the given calendar day and
// half-day slot. Room availability uses this for conflict reporting.
func (r *ExamRepository) ListBySession(ctx context.Context, date time.Time, slot models.ExamSlot) ([]models.Exam, error) {
	const query = `SELECT id, subject, subject_code, department, semester, date, time, exam_type, created_at, updated_at
        FROM exams WHERE date::date = $1 AND time = $2 ORDER BY subject ASC`
	var exams []models.Exam
	if err := r.db.SelectContext(ctx, &exams, query, date.Format("2006-01-02"), slot); err != nil {
		return nil, fmt.Errorf("list exams by session: %w", err)
	}
	return exams, nil
}

// Create inserts a new exam schedule.
func (r *ExamRepository) Create(ctx context.Context, exam *models.Exam) error {
	if exam.ID == "" {
		exam.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if exam.CreatedAt.IsZero() {
		exam.CreatedAt = now
	}
	exam.UpdatedAt = now
	const query = `INSERT INTO exams (id, subject, subject_code, department, semester, date, time, exam_type, created_at, updated_at)
        VALUES (:id, :subject, :subject_code, :department, :semester, :date, :time, :exam_type, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, exam); err != nil {
		return fmt.Errorf("create exam: %w", err)
	}
	return nil
}

// Update modifies an existing exam schedule.
func (r *ExamRepository) Update(ctx context.Context, exam *models.Exam) error {
	exam.UpdatedAt = time.Now().UTC()
	const query = `UPDATE exams SET subject = :subject, subject_code = :subject_code, department = :department,
        semester = :semester, date = :date, time = :time, exam_type = :exam_type, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, exam); err != nil {
		return fmt.Errorf("update exam: %w", err)
	}
	return nil
}

// Delete removes an exam schedule. Seat allocations referencing it cascade.
func (r *ExamRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM exams WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete exam: %w", err)
	}
	return nil
}
