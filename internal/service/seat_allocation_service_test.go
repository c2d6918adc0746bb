package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type mockAllocationStore struct {
	replaced    map[string][]models.SeatAllocation
	occupiedIDs []string
	details     []models.SeatAllocationDetail
	deleted     []string
}

func (m *mockAllocationStore) ListDetails(ctx context.Context, filter models.AllocationFilter) ([]models.SeatAllocationDetail, int, error) {
	return m.details, len(m.details), nil
}

func (m *mockAllocationStore) ListByExam(ctx context.Context, examID string) ([]models.SeatAllocationDetail, error) {
	return m.details, nil
}

func (m *mockAllocationStore) ReplaceForExam(ctx context.Context, examID string, allocations []models.SeatAllocation) error {
	if m.replaced == nil {
		m.replaced = make(map[string][]models.SeatAllocation)
	}
	m.replaced[examID] = allocations
	return nil
}

func (m *mockAllocationStore) DeleteByExam(ctx context.Context, examID string) error {
	m.deleted = append(m.deleted, examID)
	return nil
}

func (m *mockAllocationStore) OccupiedRoomIDs(ctx context.Context, date time.Time, slot models.ExamSlot) ([]string, error) {
	return m.occupiedIDs, nil
}

func (m *mockAllocationStore) CountByExam(ctx context.Context, examID string) (int, error) {
	return len(m.replaced[examID]), nil
}

type mockRoomRepo struct {
	rooms map[string]models.Room
}

func (m *mockRoomRepo) List(ctx context.Context, filter models.RoomFilter) ([]models.Room, int, error) {
	active, _ := m.ListActive(ctx)
	return active, len(active), nil
}

func (m *mockRoomRepo) ListActive(ctx context.Context) ([]models.Room, error) {
	out := make([]models.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		if r.Active {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRoomRepo) FindByID(ctx context.Context, id string) (*models.Room, error) {
	if r, ok := m.rooms[id]; ok {
		return &r, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockRoomRepo) ExistsByRoomNo(ctx context.Context, roomNo, block string, excludeID string) (bool, error) {
	return false, nil
}

func (m *mockRoomRepo) Create(ctx context.Context, room *models.Room) error {
	if m.rooms == nil {
		m.rooms = make(map[string]models.Room)
	}
	if room.ID == "" {
		room.ID = "generated"
	}
	m.rooms[room.ID] = *room
	return nil
}

func (m *mockRoomRepo) Update(ctx context.Context, room *models.Room) error {
	m.rooms[room.ID] = *room
	return nil
}

func (m *mockRoomRepo) Deactivate(ctx context.Context, id string) error {
	if r, ok := m.rooms[id]; ok {
		r.Active = false
		m.rooms[id] = r
	}
	return nil
}

type mockExamRepo struct {
	exams   map[string]models.Exam
	session []models.Exam
}

func (m *mockExamRepo) List(ctx context.Context, filter models.ExamFilter) ([]models.Exam, int, error) {
	out := make([]models.Exam, 0, len(m.exams))
	for _, e := range m.exams {
		out = append(out, e)
	}
	return out, len(out), nil
}

func (m *mockExamRepo) FindByID(ctx context.Context, id string) (*models.Exam, error) {
	if e, ok := m.exams[id]; ok {
		return &e, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockExamRepo) ListBySession(ctx context.Context, date time.Time, slot models.ExamSlot) ([]models.Exam, error) {
	return m.session, nil
}

func (m *mockExamRepo) Create(ctx context.Context, exam *models.Exam) error {
	if m.exams == nil {
		m.exams = make(map[string]models.Exam)
	}
	if exam.ID == "" {
		exam.ID = "generated"
	}
	m.exams[exam.ID] = *exam
	return nil
}

func (m *mockExamRepo) Update(ctx context.Context, exam *models.Exam) error {
	m.exams[exam.ID] = *exam
	return nil
}

func (m *mockExamRepo) Delete(ctx context.Context, id string) error {
	delete(m.exams, id)
	return nil
}

type mockCache struct {
	store    map[string][]byte
	deleted  []string
	getCalls int
	setCalls int
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.getCalls++
	return appErrors.ErrCacheMiss
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.setCalls++
	if m.store == nil {
		m.store = make(map[string][]byte)
	}
	m.store[key] = []byte("cached")
	return nil
}

func (m *mockCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.deleted = append(m.deleted, pattern)
	return nil
}

func seatAllocationFixture() (*SeatAllocationService, *mockAllocationStore, *mockStudentRepo, *mockRoomRepo, *mockExamRepo, *mockCache) {
	examDate := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	exams := &mockExamRepo{exams: map[string]models.Exam{
		"exam-1": {ID: "exam-1", Subject: "Operating Systems", SubjectCode: "CS401", Department: "CSE", Semester: "4", Date: examDate, Time: models.SlotForenoon},
	}}
	students := &mockStudentRepo{students: map[string]models.Student{
		"s1": {ID: "s1", RegNo: "CS001", Name: "Asha", Department: "CSE", Semester: "4", SubjectCode: "CS401", Active: true},
		"s2": {ID: "s2", RegNo: "CS002", Name: "Ravi", Department: "CSE", Semester: "4", SubjectCode: "CS401", Active: true},
		"s3": {ID: "s3", RegNo: "EC001", Name: "Meena", Department: "ECE", Semester: "4", SubjectCode: "CS401", Active: true},
	}}
	rooms := &mockRoomRepo{rooms: map[string]models.Room{
		"r1": {ID: "r1", RoomNo: "101", Capacity: 2, RoomType: models.RoomTypeClassroom, Active: true},
		"r2": {ID: "r2", RoomNo: "102", Capacity: 30, RoomType: models.RoomTypeLab, Active: true},
	}}
	store := &mockAllocationStore{}
	cache := &mockCache{}
	svc := NewSeatAllocationService(store, students, rooms, exams, cache, time.Minute, validator.New(), zap.NewNop())
	return svc, store, students, rooms, exams, cache
}

func TestSeatAllocationServiceAllocate(t *testing.T) {
	svc, store, _, _, _, cache := seatAllocationFixture()

	resp, err := svc.Allocate(context.Background(), AllocateSeatsRequest{ExamID: "exam-1", ExpectedTotal: 2})
	require.NoError(t, err)

	// Only the two CSE students are seated; the ECE student is filtered out.
	assert.Equal(t, 2, resp.Result.Allocated)
	assert.Empty(t, resp.Result.Unallocated)
	assert.True(t, resp.Validation.IsValid)
	assert.True(t, resp.Validation.ExpectedMatch)

	records := store.replaced["exam-1"]
	require.Len(t, records, 2)
	assert.Equal(t, "r1", records[0].RoomID)
	assert.Equal(t, "A1", records[0].SeatNo)
	assert.Equal(t, "B1", records[1].SeatNo)

	// Availability cache is invalidated after a write.
	assert.Contains(t, cache.deleted, "availability:*")
}

func TestSeatAllocationServiceAllocateRerunReplaces(t *testing.T) {
	svc, store, _, _, _, _ := seatAllocationFixture()

	first, err := svc.Allocate(context.Background(), AllocateSeatsRequest{ExamID: "exam-1"})
	require.NoError(t, err)
	second, err := svc.Allocate(context.Background(), AllocateSeatsRequest{ExamID: "exam-1"})
	require.NoError(t, err)

	assert.Equal(t, first.Result.Allocated, second.Result.Allocated)
	assert.Len(t, store.replaced["exam-1"], second.Result.Allocated)
}

func TestSeatAllocationServiceAllocateNoEligibleStudents(t *testing.T) {
	svc, _, students, _, _, _ := seatAllocationFixture()
	students.students = map[string]models.Student{
		"s1": {ID: "s1", RegNo: "ME001", Department: "MECH", Semester: "4", Active: true},
	}

	_, err := svc.Allocate(context.Background(), AllocateSeatsRequest{ExamID: "exam-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoEligibleStudents.Code, appErrors.FromError(err).Code)
}

func TestSeatAllocationServiceAllocateUnknownExam(t *testing.T) {
	svc, _, _, _, _, _ := seatAllocationFixture()
	_, err := svc.Allocate(context.Background(), AllocateSeatsRequest{ExamID: "nope"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSeatAllocationServiceAllocateRestrictsToSelectedRooms(t *testing.T) {
	svc, store, _, _, _, _ := seatAllocationFixture()

	resp, err := svc.Allocate(context.Background(), AllocateSeatsRequest{ExamID: "exam-1", RoomIDs: []string{"r2"}})
	require.NoError(t, err)
	require.Len(t, resp.Result.Rooms, 1)
	assert.Equal(t, "r2", resp.Result.Rooms[0].Room.ID)
	for _, rec := range store.replaced["exam-1"] {
		assert.Equal(t, "r2", rec.RoomID)
	}
}

func TestSeatAllocationServiceAllocateFiltersByRoomType(t *testing.T) {
	svc, store, _, _, _, _ := seatAllocationFixture()

	resp, err := svc.Allocate(context.Background(), AllocateSeatsRequest{ExamID: "exam-1", RoomType: "lab"})
	require.NoError(t, err)
	require.Len(t, resp.Result.Rooms, 1)
	assert.Equal(t, "r2", resp.Result.Rooms[0].Room.ID)
	for _, rec := range store.replaced["exam-1"] {
		assert.Equal(t, "r2", rec.RoomID)
	}
}

func TestSeatAllocationServiceAllocateCapacityShortfall(t *testing.T) {
	svc, store, students, _, _, _ := seatAllocationFixture()
	students.students["s4"] = models.Student{ID: "s4", RegNo: "CS003", Name: "Devi", Department: "CSE", Semester: "4", SubjectCode: "CS401", Active: true}

	// Three eligible students against the two-seat classroom.
	_, err := svc.Allocate(context.Background(), AllocateSeatsRequest{ExamID: "exam-1", RoomIDs: []string{"r1"}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrCapacityExceeded.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.replaced)
}

func TestSeatAllocationServiceAvailability(t *testing.T) {
	svc, store, _, _, exams, cache := seatAllocationFixture()
	store.occupiedIDs = []string{"r1"}
	exams.session = []models.Exam{{ID: "exam-1", Subject: "Operating Systems"}}

	availability, err := svc.Availability(context.Background(), "2025-04-10", models.SlotForenoon)
	require.NoError(t, err)

	assert.Equal(t, "2025-04-10", availability.Date)
	require.Len(t, availability.OccupiedRooms.Rooms, 1)
	assert.Equal(t, "r1", availability.OccupiedRooms.Rooms[0].ID)
	require.Len(t, availability.AvailableRooms.Rooms, 1)
	assert.Equal(t, "r2", availability.AvailableRooms.Rooms[0].ID)
	assert.Equal(t, 30, availability.AvailableRooms.TotalCapacity)
	assert.Len(t, availability.ConflictingExams, 1)
	assert.Equal(t, 1, cache.setCalls)
}

func TestSeatAllocationServiceAvailabilityBlankInputs(t *testing.T) {
	svc, _, _, _, _, cache := seatAllocationFixture()

	availability, err := svc.Availability(context.Background(), "", models.SlotForenoon)
	require.NoError(t, err)
	assert.Empty(t, availability.AvailableRooms.Rooms)
	assert.Empty(t, availability.OccupiedRooms.Rooms)

	// Unparseable dates behave like a blank probe, not an error.
	availability, err = svc.Availability(context.Background(), "next tuesday", models.SlotForenoon)
	require.NoError(t, err)
	assert.Empty(t, availability.AvailableRooms.Rooms)
	assert.Zero(t, cache.setCalls)
}

func TestSeatAllocationServiceClear(t *testing.T) {
	svc, store, _, _, _, cache := seatAllocationFixture()

	err := svc.Clear(context.Background(), "exam-1")
	require.NoError(t, err)
	assert.Contains(t, store.deleted, "exam-1")
	assert.Contains(t, cache.deleted, "availability:*")
}
