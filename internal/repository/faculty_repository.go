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

// FacultyRepository manages persistence for the invigilation staff pool.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository constructs a FacultyRepository.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

// List returns staff members matching the provided filters.
func (r *FacultyRepository) List(ctx context.Context, filter models.FacultyFilter) ([]models.FacultyMember, int, error) {
	base := "FROM faculty f"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(TRIM(f.department)) = $%d", len(args)+1))
		args = append(args, strings.ToLower(strings.TrimSpace(filter.Department)))
	}
	if filter.Designation != "" {
		conditions = append(conditions, fmt.Sprintf("f.designation = $%d", len(args)+1))
		args = append(args, filter.Designation)
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("f.active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT f.id, f.name, f.email, f.department, f.designation, f.active, f.created_at, f.updated_at
        %s ORDER BY f.name ASC LIMIT %d OFFSET %d`, base, size, offset)

	var members []models.FacultyMember
	if err := r.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list faculty: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count faculty: %w", err)
	}
	return members, total, nil
}

// ListActiveByDesignation returns the active pool for one designation.
// Faculty allocation draws from this.
func (r *FacultyRepository) ListActiveByDesignation(ctx context.Context, designation models.FacultyDesignation) ([]models.FacultyMember, error) {
	const query = `SELECT id, name, email, department, designation, active, created_at, updated_at
        FROM faculty WHERE active = true AND designation = $1 ORDER BY name ASC`
	var members []models.FacultyMember
	if err := r.db.SelectContext(ctx, &members, query, designation); err != nil {
		return nil, fmt.Errorf("list faculty pool: %w", err)
	}
	return members, nil
}

// FindByID fetches a staff member by ID.
func (r *FacultyRepository) FindByID(ctx context.Context, id string) (*models.FacultyMember, error) {
	const query = `SELECT id, name, email, department, designation, active, created_at, updated_at
        FROM faculty WHERE id = $1`
	var member models.FacultyMember
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		return nil, err
	}
	return &member, nil
}

// ExistsByEmail checks if a staff member with the given email exists,
// optionally excluding an ID.
func (r *FacultyRepository) ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM faculty WHERE LOWER(email) = LOWER($1)"
	args := []interface{}{email}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check faculty email: %w", err)
	}
	return true, nil
}

// Create inserts a new staff member.
func (r *FacultyRepository) Create(ctx context.Context, member *models.FacultyMember) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	member.UpdatedAt = now
	const query = `INSERT INTO faculty (id, name, email, department, designation, active, created_at, updated_at)
        VALUES (:id, :name, :email, :department, :designation, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("create faculty: %w", err)
	}
	return nil
}

// Update modifies an existing staff member.
func (r *FacultyRepository) Update(ctx context.Context, member *models.FacultyMember) error {
	member.UpdatedAt = time.Now().UTC()
	const query = `UPDATE faculty SET name = :name, email = :email, department = :department,
        designation = :designation, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("update faculty: %w", err)
	}
	return nil
}

// Deactivate removes a staff member from the allocation pool.
func (r *FacultyRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE faculty SET active = false, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate faculty: %w", err)
	}
	return nil
}
