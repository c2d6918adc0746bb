package service

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/models"
	"github.com/noah-isme/exam-seating-api/pkg/config"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type facultyAllocationStore interface {
	ListDetails(ctx context.Context, filter models.FacultyAllocationFilter) ([]models.FacultyAllocationDetail, int, error)
	ListBySession(ctx context.Context, date time.Time, slot models.ExamSlot) ([]models.FacultyAllocationDetail, error)
	ReplaceForSession(ctx context.Context, date time.Time, slot models.ExamSlot, allocations []models.FacultyAllocation) error
	ClearSession(ctx context.Context, date time.Time, slot models.ExamSlot) error
	Create(ctx context.Context, allocation *models.FacultyAllocation) error
	Update(ctx context.Context, allocation *models.FacultyAllocation) error
	Delete(ctx context.Context, id string) error
	ExistsForSession(ctx context.Context, facultyID string, date time.Time, slot models.ExamSlot) (bool, error)
}

type occupancySource interface {
	SessionOccupancy(ctx context.Context, date time.Time, slot models.ExamSlot) ([]models.RoomOccupancy, error)
}

// AllocateFacultyRequest holds payload for running the invigilator
// allocator for one session.
type AllocateFacultyRequest struct {
	Date string `json:"date" validate:"required"`
	Time string `json:"time" validate:"required,oneof=FN AN"`
}

// AssignDutyRequest holds payload for assigning one duty by hand, outside
// the randomised allocator.
type AssignDutyRequest struct {
	FacultyID string `json:"faculty_id" validate:"required"`
	RoomID    string `json:"room_id" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Time      string `json:"time" validate:"required,oneof=FN AN"`
	Role      string `json:"role" validate:"omitempty,oneof=invigilator chief_invigilator supervisor"`
}

// FacultyAllocationService staffs occupied rooms with invigilators drawn
// randomly from the active pool.
type FacultyAllocationService struct {
	duties    facultyAllocationStore
	occupancy occupancySource
	faculty   facultyRepository
	cfg       config.AllocationConfig
	rng       *rand.Rand
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFacultyAllocationService constructs the faculty allocation service.
// A nil rng seeds from the clock; tests inject a fixed seed for repeatable
// rosters.
func NewFacultyAllocationService(
	duties facultyAllocationStore,
	occupancy occupancySource,
	faculty facultyRepository,
	cfg config.AllocationConfig,
	rng *rand.Rand,
	validate *validator.Validate,
	logger *zap.Logger,
) *FacultyAllocationService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SingleFacultyLimit <= 0 {
		cfg.SingleFacultyLimit = 24
	}
	if cfg.OneLabTechLimit <= cfg.SingleFacultyLimit {
		cfg.OneLabTechLimit = 36
	}
	return &FacultyAllocationService{
		duties:    duties,
		occupancy: occupancy,
		faculty:   faculty,
		cfg:       cfg,
		rng:       rng,
		validator: validate,
		logger:    logger,
	}
}

// List returns duty details and pagination metadata.
func (s *FacultyAllocationService) List(ctx context.Context, filter models.FacultyAllocationFilter) ([]models.FacultyAllocationDetail, *models.Pagination, error) {
	details, total, err := s.duties.ListDetails(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faculty allocations")
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

// Allocate staffs every occupied room of the session. Prior duties for the
// session are replaced atomically, and no staff member serves two rooms in
// the same run.
func (s *FacultyAllocationService) Allocate(ctx context.Context, req AllocateFacultyRequest) (*models.FacultyAllocationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid allocation payload")
	}
	date, ok := parseFlexibleDate(req.Date)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognised date format")
	}
	slot := models.ExamSlot(req.Time)

	occupancy, err := s.occupancy.SessionOccupancy(ctx, date, slot)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session occupancy")
	}
	if len(occupancy) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "no seat allocations exist for this session")
	}

	facultyPool, err := s.faculty.ListActiveByDesignation(ctx, models.DesignationFaculty)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty pool")
	}
	labTechPool, err := s.faculty.ListActiveByDesignation(ctx, models.DesignationLabTechnician)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lab technician pool")
	}

	result := AllocateInvigilators(occupancy, facultyPool, labTechPool, s.cfg, s.rng)
	result.Date = date
	result.Time = slot

	records := make([]models.FacultyAllocation, 0, result.Assigned)
	for _, room := range result.Rooms {
		for _, member := range room.Faculty {
			records = append(records, models.FacultyAllocation{
				FacultyID: member.ID,
				RoomID:    room.Room.ID,
				ExamDate:  date,
				ExamTime:  slot,
				Role:      models.RoleInvigilatorDuty,
			})
		}
		for _, member := range room.LabTechs {
			records = append(records, models.FacultyAllocation{
				FacultyID: member.ID,
				RoomID:    room.Room.ID,
				ExamDate:  date,
				ExamTime:  slot,
				Role:      models.RoleInvigilatorDuty,
			})
		}
	}
	if err := s.duties.ReplaceForSession(ctx, date, slot, records); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store duties")
	}

	s.logger.Info("faculty allocation stored",
		zap.String("date", dayKey(date)),
		zap.String("slot", string(slot)),
		zap.Int("assigned", result.Assigned),
	)
	return &result, nil
}

// AssignDuty writes a manual duty for one staff member. A staff member may
// hold at most one duty per session.
func (s *FacultyAllocationService) AssignDuty(ctx context.Context, req AssignDutyRequest) (*models.FacultyAllocation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid duty payload")
	}
	date, ok := parseFlexibleDate(req.Date)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognised date format")
	}
	slot := models.ExamSlot(req.Time)

	member, err := s.faculty.FindByID(ctx, req.FacultyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "faculty member not found")
	}
	if !member.Active {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "faculty member is inactive")
	}

	busy, err := s.duties.ExistsForSession(ctx, req.FacultyID, date, slot)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing duties")
	}
	if busy {
		return nil, appErrors.Clone(appErrors.ErrConflict, "faculty member already has a duty in this session")
	}

	role := models.InvigilationRole(req.Role)
	if role == "" {
		role = models.RoleInvigilatorDuty
	}
	allocation := &models.FacultyAllocation{
		FacultyID: req.FacultyID,
		RoomID:    req.RoomID,
		ExamDate:  date,
		ExamTime:  slot,
		Role:      role,
	}
	if err := s.duties.Create(ctx, allocation); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store duty")
	}

	s.logger.Info("duty assigned",
		zap.String("faculty_id", req.FacultyID),
		zap.String("room_id", req.RoomID),
		zap.String("date", dayKey(date)),
		zap.String("slot", string(slot)),
	)
	return allocation, nil
}

// UpdateDutyRequest holds payload for moving a duty to another room or
// changing its role.
type UpdateDutyRequest struct {
	RoomID string `json:"room_id" validate:"required"`
	Role   string `json:"role" validate:"required,oneof=invigilator chief_invigilator supervisor"`
}

// UpdateDuty rewrites the room and role of one duty.
func (s *FacultyAllocationService) UpdateDuty(ctx context.Context, id string, req UpdateDutyRequest) (*models.FacultyAllocation, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "duty id is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid duty payload")
	}
	allocation := &models.FacultyAllocation{
		ID:     id,
		RoomID: req.RoomID,
		Role:   models.InvigilationRole(req.Role),
	}
	if err := s.duties.Update(ctx, allocation); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "duty not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update duty")
	}
	return allocation, nil
}

// RemoveDuty deletes one duty by id.
func (s *FacultyAllocationService) RemoveDuty(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "duty id is required")
	}
	if err := s.duties.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "duty not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove duty")
	}
	return nil
}

// Clear removes all duties for one session.
func (s *FacultyAllocationService) Clear(ctx context.Context, rawDate string, slot models.ExamSlot) error {
	date, ok := parseFlexibleDate(rawDate)
	if !ok {
		return appErrors.Clone(appErrors.ErrValidation, "unrecognised date format")
	}
	if !slot.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unrecognised time slot")
	}
	if err := s.duties.ClearSession(ctx, date, slot); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear duties")
	}
	return nil
}
