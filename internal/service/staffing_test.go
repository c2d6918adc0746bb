package service

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-seating-api/internal/models"
	"github.com/noah-isme/exam-seating-api/pkg/config"
)

func defaultAllocationConfig() config.AllocationConfig {
	return config.AllocationConfig{SingleFacultyLimit: 24, OneLabTechLimit: 36}
}

func makePool(designation models.FacultyDesignation, n int) []models.FacultyMember {
	pool := make([]models.FacultyMember, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, models.FacultyMember{
			ID:          fmt.Sprintf("%s-%d", designation, i),
			Name:        fmt.Sprintf("Member %d", i),
			Designation: designation,
			Active:      true,
		})
	}
	return pool
}

func TestRequiredStaffThresholds(t *testing.T) {
	cfg := defaultAllocationConfig()
	cases := []struct {
		students int
		faculty  int
		labTechs int
	}{
		{1, 1, 0},
		{24, 1, 0},
		{25, 1, 1},
		{36, 1, 1},
		{37, 1, 2},
		{80, 1, 2},
	}
	for _, tc := range cases {
		faculty, labTechs := requiredStaff(tc.students, cfg)
		assert.Equal(t, tc.faculty, faculty, "faculty for %d students", tc.students)
		assert.Equal(t, tc.labTechs, labTechs, "lab techs for %d students", tc.students)
	}
}

func TestAllocateInvigilatorsStaffsRoomsByHeadCount(t *testing.T) {
	occupancy := []models.RoomOccupancy{
		{Room: models.Room{ID: "r1", RoomNo: "101"}, Seated: 20},
		{Room: models.Room{ID: "r2", RoomNo: "102"}, Seated: 30},
		{Room: models.Room{ID: "r3", RoomNo: "103"}, Seated: 40},
	}
	rng := rand.New(rand.NewSource(1))

	result := AllocateInvigilators(occupancy, makePool(models.DesignationFaculty, 5), makePool(models.DesignationLabTechnician, 5), defaultAllocationConfig(), rng)

	require.Len(t, result.Rooms, 3)
	assert.Len(t, result.Rooms[0].Faculty, 1)
	assert.Len(t, result.Rooms[0].LabTechs, 0)
	assert.Len(t, result.Rooms[1].Faculty, 1)
	assert.Len(t, result.Rooms[1].LabTechs, 1)
	assert.Len(t, result.Rooms[2].Faculty, 1)
	assert.Len(t, result.Rooms[2].LabTechs, 2)
	assert.Equal(t, 6, result.Assigned)
}

func TestAllocateInvigilatorsNeverReusesStaffWithinRun(t *testing.T) {
	occupancy := make([]models.RoomOccupancy, 0, 4)
	for i := 0; i < 4; i++ {
		occupancy = append(occupancy, models.RoomOccupancy{
			Room:   models.Room{ID: fmt.Sprintf("r%d", i), RoomNo: fmt.Sprintf("10%d", i)},
			Seated: 40,
		})
	}
	rng := rand.New(rand.NewSource(7))

	result := AllocateInvigilators(occupancy, makePool(models.DesignationFaculty, 10), makePool(models.DesignationLabTechnician, 10), defaultAllocationConfig(), rng)

	seen := map[string]bool{}
	for _, room := range result.Rooms {
		for _, member := range append(room.Faculty, room.LabTechs...) {
			assert.False(t, seen[member.ID], "member %s assigned twice", member.ID)
			seen[member.ID] = true
		}
	}
}

func TestAllocateInvigilatorsRecordsShortfall(t *testing.T) {
	occupancy := []models.RoomOccupancy{
		{Room: models.Room{ID: "r1", RoomNo: "101"}, Seated: 40},
		{Room: models.Room{ID: "r2", RoomNo: "102"}, Seated: 40},
	}
	rng := rand.New(rand.NewSource(3))

	// One faculty member and one lab tech for two rooms needing 1+2 each.
	result := AllocateInvigilators(occupancy, makePool(models.DesignationFaculty, 1), makePool(models.DesignationLabTechnician, 1), defaultAllocationConfig(), rng)

	require.Len(t, result.Rooms, 2)
	assert.Equal(t, 1, result.Rooms[0].Shortfall)
	assert.Equal(t, 3, result.Rooms[1].Shortfall)
	assert.Equal(t, 2, result.Assigned)
}

func TestAllocateInvigilatorsSkipsEmptyRooms(t *testing.T) {
	occupancy := []models.RoomOccupancy{
		{Room: models.Room{ID: "r1", RoomNo: "101"}, Seated: 0},
		{Room: models.Room{ID: "r2", RoomNo: "102"}, Seated: 10},
	}
	rng := rand.New(rand.NewSource(5))

	result := AllocateInvigilators(occupancy, makePool(models.DesignationFaculty, 2), makePool(models.DesignationLabTechnician, 2), defaultAllocationConfig(), rng)

	require.Len(t, result.Rooms, 1)
	assert.Equal(t, "r2", result.Rooms[0].Room.ID)
}

func TestAllocateInvigilatorsSeededRunsAreRepeatable(t *testing.T) {
	occupancy := []models.RoomOccupancy{
		{Room: models.Room{ID: "r1", RoomNo: "101"}, Seated: 30},
		{Room: models.Room{ID: "r2", RoomNo: "102"}, Seated: 30},
	}
	facultyPool := makePool(models.DesignationFaculty, 8)
	labTechPool := makePool(models.DesignationLabTechnician, 8)

	first := AllocateInvigilators(occupancy, facultyPool, labTechPool, defaultAllocationConfig(), rand.New(rand.NewSource(42)))
	second := AllocateInvigilators(occupancy, facultyPool, labTechPool, defaultAllocationConfig(), rand.New(rand.NewSource(42)))
	assert.Equal(t, first, second)
}
