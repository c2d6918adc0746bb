package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type allocationStore interface {
	ListDetails(ctx context.Context, filter models.AllocationFilter) ([]models.SeatAllocationDetail, int, error)
	ListByExam(ctx context.Context, examID string) ([]models.SeatAllocationDetail, error)
	ReplaceForExam(ctx context.Context, examID string, allocations []models.SeatAllocation) error
	DeleteByExam(ctx context.Context, examID string) error
	OccupiedRoomIDs(ctx context.Context, date time.Time, slot models.ExamSlot) ([]string, error)
	CountByExam(ctx context.Context, examID string) (int, error)
}

type availabilityCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// AllocateSeatsRequest holds payload for running the seat allocator.
// RoomIDs and RoomType both narrow the candidate venues; leaving both
// empty allocates across every active room.
type AllocateSeatsRequest struct {
	ExamID        string   `json:"exam_id" validate:"required"`
	RoomIDs       []string `json:"room_ids"`
	RoomType      string   `json:"room_type" validate:"omitempty,oneof=classroom lab drawinghall"`
	ExpectedTotal int      `json:"expected_total" validate:"gte=0"`
}

// AllocateSeatsResponse pairs the seating outcome with its consistency
// check.
type AllocateSeatsResponse struct {
	Result     models.AllocationResult     `json:"result"`
	Validation models.AllocationValidation `json:"validation"`
}

// SeatAllocationService runs the deterministic seat allocator and serves
// allocation and availability lookups.
type SeatAllocationService struct {
	allocations allocationStore
	students    studentRepository
	rooms       roomRepository
	exams       examRepository
	cache       availabilityCache
	cacheTTL    time.Duration
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewSeatAllocationService constructs the seat allocation service. The
// cache may be nil, in which case availability lookups always hit the
// database.
func NewSeatAllocationService(
	allocations allocationStore,
	students studentRepository,
	rooms roomRepository,
	exams examRepository,
	cache availabilityCache,
	cacheTTL time.Duration,
	validate *validator.Validate,
	logger *zap.Logger,
) *SeatAllocationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 2 * time.Minute
	}
	return &SeatAllocationService{
		allocations: allocations,
		students:    students,
		rooms:       rooms,
		exams:       exams,
		cache:       cache,
		cacheTTL:    cacheTTL,
		validator:   validate,
		logger:      logger,
	}
}

// List returns allocation details and pagination metadata.
func (s *SeatAllocationService) List(ctx context.Context, filter models.AllocationFilter) ([]models.SeatAllocationDetail, *models.Pagination, error) {
	details, total, err := s.allocations.ListDetails(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list allocations")
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

// Allocate seats every eligible student for the exam. Any earlier
// allocation for the exam is replaced in the same transaction, so rerunning
// after a roster correction is safe.
func (s *SeatAllocationService) Allocate(ctx context.Context, req AllocateSeatsRequest) (*AllocateSeatsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid allocation payload")
	}

	exam, err := s.exams.FindByID(ctx, req.ExamID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam")
	}

	roster, err := s.students.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}

	eligible := EligibleStudents(roster, *exam)
	if len(eligible) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoEligibleStudents, "")
	}

	rooms, err := s.candidateRooms(ctx, req.RoomIDs, models.RoomType(req.RoomType))
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "no rooms available for allocation")
	}
	capacity := 0
	for _, room := range rooms {
		capacity += room.Capacity
	}
	if capacity < len(eligible) {
		return nil, appErrors.Clone(appErrors.ErrCapacityExceeded,
			fmt.Sprintf("selected rooms seat %d students, %d eligible", capacity, len(eligible)))
	}

	result := AllocateSeats(*exam, eligible, rooms)
	validation := ValidateAllocation(result, req.ExpectedTotal)

	records := flattenAllocation(result)
	if err := s.allocations.ReplaceForExam(ctx, exam.ID, records); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store allocation")
	}
	s.invalidateAvailability(ctx)

	s.logger.Info("seat allocation stored",
		zap.String("exam_id", exam.ID),
		zap.Int("allocated", result.Allocated),
		zap.Int("unallocated", len(result.Unallocated)),
	)
	return &AllocateSeatsResponse{Result: result, Validation: validation}, nil
}

// Clear removes the stored allocation for one exam.
func (s *SeatAllocationService) Clear(ctx context.Context, examID string) error {
	if _, err := s.exams.FindByID(ctx, examID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam")
	}
	if err := s.allocations.DeleteByExam(ctx, examID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear allocation")
	}
	s.invalidateAvailability(ctx)
	return nil
}

// Availability partitions rooms into free and occupied for one session.
// Blank date or slot yields an empty report rather than an error, matching
// how the admin screen probes while the user is still typing.
func (s *SeatAllocationService) Availability(ctx context.Context, rawDate string, slot models.ExamSlot) (*models.RoomAvailability, error) {
	if rawDate == "" || slot == "" {
		return &models.RoomAvailability{Time: slot, AvailableRooms: emptyRoomSet(), OccupiedRooms: emptyRoomSet()}, nil
	}
	date, ok := parseFlexibleDate(rawDate)
	if !ok {
		return &models.RoomAvailability{Date: rawDate, Time: slot, AvailableRooms: emptyRoomSet(), OccupiedRooms: emptyRoomSet()}, nil
	}

	key := fmt.Sprintf("availability:%s:%s", dayKey(date), slot)
	if s.cache != nil {
		var cached models.RoomAvailability
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	rooms, err := s.rooms.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	occupiedIDs, err := s.allocations.OccupiedRoomIDs(ctx, date, slot)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load occupancy")
	}
	conflicts, err := s.exams.ListBySession(ctx, date, slot)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session exams")
	}

	occupied := make(map[string]struct{}, len(occupiedIDs))
	for _, id := range occupiedIDs {
		occupied[id] = struct{}{}
	}

	availability := &models.RoomAvailability{
		Date:             dayKey(date),
		Time:             slot,
		AvailableRooms:   emptyRoomSet(),
		OccupiedRooms:    emptyRoomSet(),
		ConflictingExams: conflicts,
	}
	for _, room := range rooms {
		if _, ok := occupied[room.ID]; ok {
			addToRoomSet(&availability.OccupiedRooms, room)
		} else {
			addToRoomSet(&availability.AvailableRooms, room)
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, availability, s.cacheTTL); err != nil {
			s.logger.Warn("availability cache write failed", zap.Error(err))
		}
	}
	return availability, nil
}

func (s *SeatAllocationService) candidateRooms(ctx context.Context, roomIDs []string, roomType models.RoomType) ([]models.Room, error) {
	rooms, err := s.rooms.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	wanted := make(map[string]struct{}, len(roomIDs))
	for _, id := range roomIDs {
		wanted[id] = struct{}{}
	}
	selected := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if len(wanted) > 0 {
			if _, ok := wanted[room.ID]; !ok {
				continue
			}
		}
		if roomType != "" && room.RoomType != roomType {
			continue
		}
		selected = append(selected, room)
	}
	return selected, nil
}

func (s *SeatAllocationService) invalidateAvailability(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "availability:*"); err != nil {
		s.logger.Warn("availability cache invalidation failed", zap.Error(err))
	}
}

func flattenAllocation(result models.AllocationResult) []models.SeatAllocation {
	records := make([]models.SeatAllocation, 0, result.Allocated)
	for _, room := range result.Rooms {
		for _, seat := range room.Seats {
			records = append(records, models.SeatAllocation{
				ExamID:    result.Exam.ID,
				StudentID: seat.Student.ID,
				RoomID:    room.Room.ID,
				SeatNo:    seat.SeatNo,
				ExamDate:  result.Exam.Date,
				ExamTime:  result.Exam.Time,
			})
		}
	}
	return records
}

func emptyRoomSet() models.RoomSet {
	return models.RoomSet{Rooms: []models.Room{}, CapacityByType: map[models.RoomType]int{}}
}

func addToRoomSet(set *models.RoomSet, room models.Room) {
	set.Rooms = append(set.Rooms, room)
	set.TotalCapacity += room.Capacity
	set.CapacityByType[room.RoomType] += room.Capacity
}
