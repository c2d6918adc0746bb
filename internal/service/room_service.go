package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type roomRepository interface {
	List(ctx context.Context, filter models.RoomFilter) ([]models.Room, int, error)
	ListActive(ctx context.Context) ([]models.Room, error)
	FindByID(ctx context.Context, id string) (*models.Room, error)
	ExistsByRoomNo(ctx context.Context, roomNo, block string, excludeID string) (bool, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Deactivate(ctx context.Context, id string) error
}

// RoomRequest holds payload for creating or updating a room.
type RoomRequest struct {
	RoomNo   string `json:"room_no" validate:"required"`
	Block    string `json:"block"`
	FloorNo  int    `json:"floor_no" validate:"gte=0"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
	RoomType string `json:"room_type" validate:"required,oneof=classroom lab drawinghall"`
	Active   *bool  `json:"active"`
}

// RoomService handles venue use-cases.
type RoomService struct {
	repo      roomRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoomService constructs the room service.
func NewRoomService(repo roomRepository, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{repo: repo, validator: validate, logger: logger}
}

// List returns rooms and pagination metadata.
func (s *RoomService) List(ctx context.Context, filter models.RoomFilter) ([]models.Room, *models.Pagination, error) {
	rooms, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 50
	}
	return rooms, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one room.
func (s *RoomService) Get(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}
	return room, nil
}

// Create registers a new room.
func (s *RoomService) Create(ctx context.Context, req RoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	roomNo := strings.TrimSpace(req.RoomNo)
	block := strings.TrimSpace(req.Block)
	exists, err := s.repo.ExistsByRoomNo(ctx, roomNo, block, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate room no")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "room already exists in block")
	}
	room := &models.Room{
		RoomNo:   roomNo,
		Block:    block,
		FloorNo:  req.FloorNo,
		Capacity: req.Capacity,
		RoomType: models.RoomType(req.RoomType),
		Active:   true,
	}
	if req.Active != nil {
		room.Active = *req.Active
	}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create room")
	}
	return room, nil
}

// Update modifies an existing room.
func (s *RoomService) Update(ctx context.Context, id string, req RoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}
	roomNo := strings.TrimSpace(req.RoomNo)
	block := strings.TrimSpace(req.Block)
	exists, err := s.repo.ExistsByRoomNo(ctx, roomNo, block, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate room no")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "room already exists in block")
	}

	room := *current
	room.RoomNo = roomNo
	room.Block = block
	room.FloorNo = req.FloorNo
	room.Capacity = req.Capacity
	room.RoomType = models.RoomType(req.RoomType)
	if req.Active != nil {
		room.Active = *req.Active
	}
	if err := s.repo.Update(ctx, &room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update room")
	}
	return &room, nil
}

// Deactivate withdraws a room from future allocations.
func (s *RoomService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate room")
	}
	return nil
}

// BulkCreate registers several rooms in one call, reporting per-row errors
// without aborting the batch.
func (s *RoomService) BulkCreate(ctx context.Context, reqs []RoomRequest) (*BulkImportResult, error) {
	if len(reqs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no rooms in payload")
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
