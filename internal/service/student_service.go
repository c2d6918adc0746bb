package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
	ListAll(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	ExistsByRegNo(ctx context.Context, regNo string, excludeID string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Deactivate(ctx context.Context, id string) error
	Upsert(ctx context.Context, student *models.Student) error
}

// CreateStudentRequest holds payload for adding a student to the roster.
type CreateStudentRequest struct {
	RegNo       string `json:"reg_no" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Department  string `json:"department" validate:"required"`
	Semester    string `json:"semester" validate:"required"`
	Subject     string `json:"subject"`
	SubjectCode string `json:"subject_code"`
	ExamDate    string `json:"exam_date"`
	ExamType    string `json:"exam_type" validate:"omitempty,oneof=regular supply"`
}

// UpdateStudentRequest holds payload for updating a roster entry.
type UpdateStudentRequest struct {
	RegNo       string `json:"reg_no" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Department  string `json:"department" validate:"required"`
	Semester    string `json:"semester" validate:"required"`
	Subject     string `json:"subject"`
	SubjectCode string `json:"subject_code"`
	ExamDate    string `json:"exam_date"`
	ExamType    string `json:"exam_type" validate:"omitempty,oneof=regular supply"`
	Active      bool   `json:"active"`
}

// BulkImportResult summarises a roster import run.
type BulkImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// StudentService handles roster use-cases.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns students and pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 50
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return students, pagination, nil
}

// Get returns one roster entry.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

func (s *StudentService) fromCreateRequest(req CreateStudentRequest) (*models.Student, *appErrors.Error) {
	student := &models.Student{
		RegNo:       strings.TrimSpace(req.RegNo),
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Department:  strings.TrimSpace(req.Department),
		Semester:    strings.TrimSpace(req.Semester),
		Subject:     strings.TrimSpace(req.Subject),
		SubjectCode: strings.TrimSpace(req.SubjectCode),
		ExamType:    models.ExamTypeRegular,
		Active:      true,
	}
	if req.ExamType != "" {
		student.ExamType = models.ExamType(req.ExamType)
	}
	if req.ExamDate != "" {
		if parsed, ok := parseFlexibleDate(req.ExamDate); ok {
			student.ExamDate = &parsed
		} else {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognised exam date format")
		}
	}
	return student, nil
}

// Create registers one student on the roster.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	exists, err := s.repo.ExistsByRegNo(ctx, strings.TrimSpace(req.RegNo), "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate reg no")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "reg no already used")
	}
	student, appErr := s.fromCreateRequest(req)
	if appErr != nil {
		return nil, appErr
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// Update modifies an existing roster entry.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	exists, err := s.repo.ExistsByRegNo(ctx, strings.TrimSpace(req.RegNo), id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate reg no")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "reg no already used")
	}

	student := *current
	student.RegNo = strings.TrimSpace(req.RegNo)
	student.Name = strings.TrimSpace(req.Name)
	student.Email = strings.TrimSpace(req.Email)
	student.Department = strings.TrimSpace(req.Department)
	student.Semester = strings.TrimSpace(req.Semester)
	student.Subject = strings.TrimSpace(req.Subject)
	student.SubjectCode = strings.TrimSpace(req.SubjectCode)
	student.Active = req.Active
	if req.ExamType != "" {
		student.ExamType = models.ExamType(req.ExamType)
	}
	student.ExamDate = nil
	if req.ExamDate != "" {
		if parsed, ok := parseFlexibleDate(req.ExamDate); ok {
			student.ExamDate = &parsed
		} else {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognised exam date format")
		}
	}
	if err := s.repo.Update(ctx, &student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return &student, nil
}

// Deactivate removes a student from future allocations.
func (s *StudentService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate student")
	}
	return nil
}

// Spreadsheet exports rename columns freely; lookups go through aliases so
// the same upload works whether it says "Reg No" or "registration_number".
var rosterHeaderAliases = map[string][]string{
	"reg_no":       {"reg_no", "regno", "reg no", "registration number", "registration_number"},
	"name":         {"name", "student name", "student_name", "full name"},
	"email":        {"email", "mail", "email address"},
	"department":   {"department", "dept", "branch"},
	"semester":     {"semester", "sem"},
	"subject":      {"subject", "subject name", "paper"},
	"subject_code": {"subject_code", "subject code", "code", "paper code"},
	"exam_date":    {"exam_date", "exam date", "date"},
	"exam_type":    {"exam_type", "exam type", "type"},
}

func rosterField(row map[string]string, field string) string {
	aliases := rosterHeaderAliases[field]
	for key, value := range row {
		normalized := normalizeField(key)
		for _, alias := range aliases {
			if normalized == alias {
				return strings.TrimSpace(value)
			}
		}
	}
	return ""
}

// BulkImport upserts roster rows parsed from an uploaded spreadsheet.
// Rows missing a registration number or name are skipped and reported;
// unparseable exam dates import with no date rather than failing the row.
func (s *StudentService) BulkImport(ctx context.Context, rows []map[string]string) (*BulkImportResult, error) {
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "import file has no rows")
	}

	result := &BulkImportResult{}
	for i, row := range rows {
		regNo := rosterField(row, "reg_no")
		name := rosterField(row, "name")
		if regNo == "" || name == "" {
			result.Skipped++
			result.Errors = append(result.Errors, rowError(i, "missing reg no or name"))
			continue
		}

		student := &models.Student{
			RegNo:       regNo,
			Name:        name,
			Email:       rosterField(row, "email"),
			Department:  rosterField(row, "department"),
			Semester:    rosterField(row, "semester"),
			Subject:     rosterField(row, "subject"),
			SubjectCode: rosterField(row, "subject_code"),
			ExamType:    models.ExamTypeRegular,
			Active:      true,
		}
		if rawType := normalizeField(rosterField(row, "exam_type")); rawType == string(models.ExamTypeSupply) {
			student.ExamType = models.ExamTypeSupply
		}
		if rawDate := rosterField(row, "exam_date"); rawDate != "" {
			if parsed, ok := parseFlexibleDate(rawDate); ok {
				student.ExamDate = &parsed
			} else {
				s.logger.Warn("roster import: unparseable exam date", zap.Int("row", i+1), zap.String("value", rawDate))
			}
		}

		if err := s.repo.Upsert(ctx, student); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, rowError(i, "database error"))
			s.logger.Error("roster import: upsert failed", zap.Int("row", i+1), zap.Error(err))
			continue
		}
		result.Imported++
	}
	return result, nil
}

// rowError references the spreadsheet row number, offset for the header.
func rowError(index int, msg string) string {
	return fmt.Sprintf("row %d: %s", index+2, msg)
}
