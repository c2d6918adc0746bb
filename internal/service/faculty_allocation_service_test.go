package service

import (
	"context"
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/models"
	"github.com/noah-isme/exam-seating-api/pkg/config"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type mockDutyStore struct {
	replaced map[string][]models.FacultyAllocation
	cleared  []string
	details  []models.FacultyAllocationDetail
	created  []models.FacultyAllocation
	deleted  []string
}

func sessionKey(date time.Time, slot models.ExamSlot) string {
	return date.Format("2006-01-02") + ":" + string(slot)
}

func (m *mockDutyStore) ListDetails(ctx context.Context, filter models.FacultyAllocationFilter) ([]models.FacultyAllocationDetail, int, error) {
	return m.details, len(m.details), nil
}

func (m *mockDutyStore) ListBySession(ctx context.Context, date time.Time, slot models.ExamSlot) ([]models.FacultyAllocationDetail, error) {
	return m.details, nil
}

func (m *mockDutyStore) ReplaceForSession(ctx context.Context, date time.Time, slot models.ExamSlot, allocations []models.FacultyAllocation) error {
	if m.replaced == nil {
		m.replaced = make(map[string][]models.FacultyAllocation)
	}
	m.replaced[sessionKey(date, slot)] = allocations
	return nil
}

func (m *mockDutyStore) ClearSession(ctx context.Context, date time.Time, slot models.ExamSlot) error {
	m.cleared = append(m.cleared, sessionKey(date, slot))
	return nil
}

func (m *mockDutyStore) Create(ctx context.Context, allocation *models.FacultyAllocation) error {
	if allocation.ID == "" {
		allocation.ID = "duty-generated"
	}
	m.created = append(m.created, *allocation)
	return nil
}

func (m *mockDutyStore) Update(ctx context.Context, allocation *models.FacultyAllocation) error {
	for _, d := range m.details {
		if d.ID == allocation.ID {
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *mockDutyStore) Delete(ctx context.Context, id string) error {
	for _, d := range m.details {
		if d.ID == id {
			m.deleted = append(m.deleted, id)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *mockDutyStore) ExistsForSession(ctx context.Context, facultyID string, date time.Time, slot models.ExamSlot) (bool, error) {
	for _, d := range m.created {
		if d.FacultyID == facultyID && sessionKey(d.ExamDate, d.ExamTime) == sessionKey(date, slot) {
			return true, nil
		}
	}
	return false, nil
}

type mockOccupancySource struct {
	occupancy []models.RoomOccupancy
}

func (m *mockOccupancySource) SessionOccupancy(ctx context.Context, date time.Time, slot models.ExamSlot) ([]models.RoomOccupancy, error) {
	return m.occupancy, nil
}

type mockFacultyRepo struct {
	members map[string]models.FacultyMember
}

func (m *mockFacultyRepo) List(ctx context.Context, filter models.FacultyFilter) ([]models.FacultyMember, int, error) {
	out := make([]models.FacultyMember, 0, len(m.members))
	for _, f := range m.members {
		out = append(out, f)
	}
	return out, len(out), nil
}

func (m *mockFacultyRepo) ListActiveByDesignation(ctx context.Context, designation models.FacultyDesignation) ([]models.FacultyMember, error) {
	out := make([]models.FacultyMember, 0, len(m.members))
	for _, f := range m.members {
		if f.Active && f.Designation == designation {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *mockFacultyRepo) FindByID(ctx context.Context, id string) (*models.FacultyMember, error) {
	if f, ok := m.members[id]; ok {
		return &f, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockFacultyRepo) ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error) {
	return false, nil
}

func (m *mockFacultyRepo) Create(ctx context.Context, member *models.FacultyMember) error {
	if m.members == nil {
		m.members = make(map[string]models.FacultyMember)
	}
	if member.ID == "" {
		member.ID = "generated"
	}
	m.members[member.ID] = *member
	return nil
}

func (m *mockFacultyRepo) Update(ctx context.Context, member *models.FacultyMember) error {
	m.members[member.ID] = *member
	return nil
}

func (m *mockFacultyRepo) Deactivate(ctx context.Context, id string) error {
	if f, ok := m.members[id]; ok {
		f.Active = false
		m.members[id] = f
	}
	return nil
}

func facultyAllocationFixture(rng *rand.Rand) (*FacultyAllocationService, *mockDutyStore, *mockOccupancySource, *mockFacultyRepo) {
	duties := &mockDutyStore{}
	occupancy := &mockOccupancySource{occupancy: []models.RoomOccupancy{
		{Room: models.Room{ID: "r1", RoomNo: "101"}, Seated: 20},
		{Room: models.Room{ID: "r2", RoomNo: "102"}, Seated: 40},
	}}
	faculty := &mockFacultyRepo{members: map[string]models.FacultyMember{}}
	for i := 0; i < 4; i++ {
		id := string(rune('a' + i))
		faculty.members["f-"+id] = models.FacultyMember{ID: "f-" + id, Name: "Faculty " + id, Designation: models.DesignationFaculty, Active: true}
		faculty.members["l-"+id] = models.FacultyMember{ID: "l-" + id, Name: "Tech " + id, Designation: models.DesignationLabTechnician, Active: true}
	}
	cfg := config.AllocationConfig{SingleFacultyLimit: 24, OneLabTechLimit: 36}
	svc := NewFacultyAllocationService(duties, occupancy, faculty, cfg, rng, validator.New(), zap.NewNop())
	return svc, duties, occupancy, faculty
}

func TestFacultyAllocationServiceAllocate(t *testing.T) {
	svc, duties, _, _ := facultyAllocationFixture(rand.New(rand.NewSource(11)))

	result, err := svc.Allocate(context.Background(), AllocateFacultyRequest{Date: "2025-04-10", Time: "FN"})
	require.NoError(t, err)

	// 20 students need one invigilator, 40 need one plus two lab techs.
	require.Len(t, result.Rooms, 2)
	assert.Len(t, result.Rooms[0].Faculty, 1)
	assert.Empty(t, result.Rooms[0].LabTechs)
	assert.Len(t, result.Rooms[1].Faculty, 1)
	assert.Len(t, result.Rooms[1].LabTechs, 2)
	assert.Equal(t, 4, result.Assigned)

	records := duties.replaced["2025-04-10:FN"]
	require.Len(t, records, 4)
	for _, rec := range records {
		assert.Equal(t, models.RoleInvigilatorDuty, rec.Role)
	}
}

func TestFacultyAllocationServiceAllocateNoSeating(t *testing.T) {
	svc, _, occupancy, _ := facultyAllocationFixture(rand.New(rand.NewSource(11)))
	occupancy.occupancy = nil

	_, err := svc.Allocate(context.Background(), AllocateFacultyRequest{Date: "2025-04-10", Time: "FN"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
}

func TestFacultyAllocationServiceAllocateBadDate(t *testing.T) {
	svc, _, _, _ := facultyAllocationFixture(rand.New(rand.NewSource(11)))
	_, err := svc.Allocate(context.Background(), AllocateFacultyRequest{Date: "someday", Time: "FN"})
	require.Error(t, err)
}

func TestFacultyAllocationServiceStaffNotReusedAcrossRooms(t *testing.T) {
	svc, duties, _, _ := facultyAllocationFixture(rand.New(rand.NewSource(23)))

	_, err := svc.Allocate(context.Background(), AllocateFacultyRequest{Date: "2025-04-10", Time: "FN"})
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, rec := range duties.replaced["2025-04-10:FN"] {
		assert.False(t, seen[rec.FacultyID], "faculty %s assigned twice", rec.FacultyID)
		seen[rec.FacultyID] = true
	}
}

func TestFacultyAllocationServiceAssignDuty(t *testing.T) {
	svc, duties, _, _ := facultyAllocationFixture(rand.New(rand.NewSource(11)))

	duty, err := svc.AssignDuty(context.Background(), AssignDutyRequest{
		FacultyID: "f-a", RoomID: "r1", Date: "2025-04-10", Time: "FN",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleInvigilatorDuty, duty.Role)
	assert.NotEmpty(t, duty.ID)
	require.Len(t, duties.created, 1)
}

func TestFacultyAllocationServiceAssignDutyTwiceSameSession(t *testing.T) {
	svc, _, _, _ := facultyAllocationFixture(rand.New(rand.NewSource(11)))

	_, err := svc.AssignDuty(context.Background(), AssignDutyRequest{
		FacultyID: "f-a", RoomID: "r1", Date: "2025-04-10", Time: "FN",
	})
	require.NoError(t, err)

	_, err = svc.AssignDuty(context.Background(), AssignDutyRequest{
		FacultyID: "f-a", RoomID: "r2", Date: "2025-04-10", Time: "FN",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestFacultyAllocationServiceAssignDutyUnknownFaculty(t *testing.T) {
	svc, _, _, _ := facultyAllocationFixture(rand.New(rand.NewSource(11)))

	_, err := svc.AssignDuty(context.Background(), AssignDutyRequest{
		FacultyID: "f-missing", RoomID: "r1", Date: "2025-04-10", Time: "FN",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestFacultyAllocationServiceUpdateDuty(t *testing.T) {
	svc, duties, _, _ := facultyAllocationFixture(rand.New(rand.NewSource(11)))
	duties.details = []models.FacultyAllocationDetail{
		{FacultyAllocation: models.FacultyAllocation{ID: "duty-1", FacultyID: "f-a", RoomID: "r1"}},
	}

	duty, err := svc.UpdateDuty(context.Background(), "duty-1", UpdateDutyRequest{RoomID: "r2", Role: "chief_invigilator"})
	require.NoError(t, err)
	assert.Equal(t, "r2", duty.RoomID)
	assert.Equal(t, models.RoleChiefInvigilator, duty.Role)

	_, err = svc.UpdateDuty(context.Background(), "duty-9", UpdateDutyRequest{RoomID: "r2", Role: "invigilator"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestFacultyAllocationServiceRemoveDuty(t *testing.T) {
	svc, duties, _, _ := facultyAllocationFixture(rand.New(rand.NewSource(11)))
	duties.details = []models.FacultyAllocationDetail{
		{FacultyAllocation: models.FacultyAllocation{ID: "duty-1", FacultyID: "f-a", RoomID: "r1"}},
	}

	require.NoError(t, svc.RemoveDuty(context.Background(), "duty-1"))
	assert.Contains(t, duties.deleted, "duty-1")

	err := svc.RemoveDuty(context.Background(), "duty-9")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestFacultyAllocationServiceClear(t *testing.T) {
	svc, duties, _, _ := facultyAllocationFixture(rand.New(rand.NewSource(11)))

	err := svc.Clear(context.Background(), "2025-04-10", models.SlotForenoon)
	require.NoError(t, err)
	assert.Contains(t, duties.cleared, "2025-04-10:FN")
}
