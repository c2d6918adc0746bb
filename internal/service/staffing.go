package service

import (
	"math/rand"

	"github.com/noah-isme/exam-seating-api/internal/models"
	"github.com/noah-isme/exam-seating-api/pkg/config"
)

// requiredStaff returns how many faculty and lab technicians a room needs
// for the given head count.
func requiredStaff(studentCount int, cfg config.AllocationConfig) (faculty, labTechs int) {
	switch {
	case studentCount <= cfg.SingleFacultyLimit:
		return 1, 0
	case studentCount <= cfg.OneLabTechLimit:
		return 1, 1
	default:
		return 1, 2
	}
}

// shuffledPool copies and shuffles a staff pool using the provided source
// of randomness.
func shuffledPool(pool []models.FacultyMember, rng *rand.Rand) []models.FacultyMember {
	out := make([]models.FacultyMember, len(pool))
	copy(out, pool)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// AllocateInvigilators staffs each occupied room from the faculty and lab
// technician pools. Pools are shuffled once per run so duty rotates across
// sessions, and no staff member is assigned twice within a run. Rooms with
// no seated students are skipped. When a pool runs dry the room's shortfall
// is recorded and allocation continues.
func AllocateInvigilators(occupancy []models.RoomOccupancy, facultyPool, labTechPool []models.FacultyMember, cfg config.AllocationConfig, rng *rand.Rand) models.FacultyAllocationResult {
	faculty := shuffledPool(facultyPool, rng)
	labTechs := shuffledPool(labTechPool, rng)
	used := make(map[string]struct{})

	take := func(pool []models.FacultyMember, n int) []models.FacultyMember {
		taken := make([]models.FacultyMember, 0, n)
		for _, member := range pool {
			if len(taken) == n {
				break
			}
			if _, ok := used[member.ID]; ok {
				continue
			}
			used[member.ID] = struct{}{}
			taken = append(taken, member)
		}
		return taken
	}

	var result models.FacultyAllocationResult
	for _, occ := range occupancy {
		if occ.Seated == 0 {
			continue
		}
		needFaculty, needLabTechs := requiredStaff(occ.Seated, cfg)
		staffing := models.RoomStaffing{
			Room:         occ.Room,
			StudentCount: occ.Seated,
			Faculty:      take(faculty, needFaculty),
			LabTechs:     take(labTechs, needLabTechs),
		}
		staffing.Shortfall = (needFaculty - len(staffing.Faculty)) + (needLabTechs - len(staffing.LabTechs))
		result.Assigned += len(staffing.Faculty) + len(staffing.LabTechs)
		result.Rooms = append(result.Rooms, staffing)
	}
	return result
}
