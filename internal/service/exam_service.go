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

type examRepository interface {
	List(ctx context.Context, filter models.ExamFilter) ([]models.Exam, int, error)
	FindByID(ctx context.Context, id string) (*models.Exam, error)
	ListBySession(ctx context.Context, date time.Time, slot models.ExamSlot) ([]models.Exam, error)
	Create(ctx context.Context, exam *models.Exam) error
	Update(ctx context.Context, exam *models.Exam) error
	Delete(ctx context.Context, id string) error
}

// ExamRequest holds payload for creating or updating an exam schedule.
type ExamRequest struct {
	Subject     string `json:"subject" validate:"required"`
	SubjectCode string `json:"subject_code"`
	Department  string `json:"department" validate:"required"`
	Semester    string `json:"semester" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required,oneof=FN AN"`
	ExamType    string `json:"exam_type" validate:"omitempty,oneof=regular supply"`
}

// ExamService handles exam schedule use-cases.
type ExamService struct {
	repo      examRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExamService constructs the exam service.
func NewExamService(repo examRepository, validate *validator.Validate, logger *zap.Logger) *ExamService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamService{repo: repo, validator: validate, logger: logger}
}

// List returns exam schedules and pagination metadata.
func (s *ExamService) List(ctx context.Context, filter models.ExamFilter) ([]models.Exam, *models.Pagination, error) {
	exams, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list exams")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 50
	}
	return exams, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one exam schedule.
func (s *ExamService) Get(ctx context.Context, id string) (*models.Exam, error) {
	exam, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam")
	}
	return exam, nil
}

func (s *ExamService) fromRequest(req ExamRequest) (*models.Exam, *appErrors.Error) {
	date, ok := parseFlexibleDate(req.Date)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognised exam date format")
	}
	exam := &models.Exam{
		Subject:     strings.TrimSpace(req.Subject),
		SubjectCode: strings.TrimSpace(req.SubjectCode),
		Department:  strings.TrimSpace(req.Department),
		Semester:    strings.TrimSpace(req.Semester),
		Date:        date,
		Time:        models.ExamSlot(req.Time),
		ExamType:    models.ExamTypeRegular,
	}
	if req.ExamType != "" {
		exam.ExamType = models.ExamType(req.ExamType)
	}
	return exam, nil
}

// Create registers a new exam schedule.
func (s *ExamService) Create(ctx context.Context, req ExamRequest) (*models.Exam, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam payload")
	}
	exam, appErr := s.fromRequest(req)
	if appErr != nil {
		return nil, appErr
	}
	if err := s.repo.Create(ctx, exam); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create exam")
	}
	return exam, nil
}

// Update modifies an existing exam schedule.
func (s *ExamService) Update(ctx context.Context, id string, req ExamRequest) (*models.Exam, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam payload")
	}
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam")
	}
	updated, appErr := s.fromRequest(req)
	if appErr != nil {
		return nil, appErr
	}
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt
	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update exam")
	}
	return updated, nil
}

// Delete removes an exam schedule along with its allocations.
func (s *ExamService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete exam")
	}
	return nil
}

// BulkCreate registers several exam schedules in one call, reporting
// per-row errors without aborting the batch.
func (s *ExamService) BulkCreate(ctx context.Context, reqs []ExamRequest) (*BulkImportResult, error) {
	if len(reqs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no exams in payload")
	}
	result := &BulkImportResult{}
	for i, req := range reqs {
		if _, err := s.Create(ctx, req); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, rowError(i, appErrors.FromError(err).Message))
			continue
		}
		result.Imported++
	}
	return result, nil
}
