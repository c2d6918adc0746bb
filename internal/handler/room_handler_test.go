package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-seating-api/internal/models"
	"github.com/noah-isme/exam-seating-api/internal/service"
)

type roomRepoMock struct {
	rooms      []models.Room
	created    []models.Room
	lastFilter models.RoomFilter
}

func (m *roomRepoMock) List(ctx context.Context, filter models.RoomFilter) ([]models.Room, int, error) {
	m.lastFilter = filter
	return m.rooms, len(m.rooms), nil
}

func (m *roomRepoMock) ListActive(ctx context.Context) ([]models.Room, error) {
	return m.rooms, nil
}

func (m *roomRepoMock) FindByID(ctx context.Context, id string) (*models.Room, error) {
	for i := range m.rooms {
		if m.rooms[i].ID == id {
			return &m.rooms[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *roomRepoMock) ExistsByRoomNo(ctx context.Context, roomNo, block string, excludeID string) (bool, error) {
	for _, r := range m.rooms {
		if r.RoomNo == roomNo && r.Block == block && r.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *roomRepoMock) Create(ctx context.Context, room *models.Room) error {
	m.created = append(m.created, *room)
	return nil
}

func (m *roomRepoMock) Update(ctx context.Context, room *models.Room) error {
	return nil
}

func (m *roomRepoMock) Deactivate(ctx context.Context, id string) error {
	return nil
}

func roomHandlerFixture() (*RoomHandler, *roomRepoMock) {
	repo := &roomRepoMock{rooms: []models.Room{
		{ID: "room-1", RoomNo: "101", Block: "A", Capacity: 24, RoomType: models.RoomTypeClassroom, Active: true},
	}}
	svc := service.NewRoomService(repo, nil, nil)
	return NewRoomHandler(svc), repo
}

func TestRoomHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, repo := roomHandlerFixture()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/rooms?block=A&type=classroom&active=true", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "A", repo.lastFilter.Block)
	assert.Equal(t, models.RoomTypeClassroom, repo.lastFilter.RoomType)
	require.NotNil(t, repo.lastFilter.Active)
	assert.True(t, *repo.lastFilter.Active)
}

func TestRoomHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, repo := roomHandlerFixture()

	payload, _ := json.Marshal(service.RoomRequest{RoomNo: "102", Block: "A", Capacity: 30, RoomType: "lab"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/rooms", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.created, 1)
	assert.Equal(t, models.RoomTypeLab, repo.created[0].RoomType)
}

func TestRoomHandlerCreateDuplicate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := roomHandlerFixture()

	payload, _ := json.Marshal(service.RoomRequest{RoomNo: "101", Block: "A", Capacity: 24, RoomType: "classroom"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/rooms", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRoomHandlerCreateInvalidType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := roomHandlerFixture()

	payload, _ := json.Marshal(service.RoomRequest{RoomNo: "103", Block: "B", Capacity: 20, RoomType: "auditorium"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/rooms", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoomHandlerGetUnknown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := roomHandlerFixture()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/rooms/room-9", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "room-9"}}

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
