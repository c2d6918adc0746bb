package service

import (
	"fmt"
	"sort"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

// seatLabel names the i-th seat of a room. Seats alternate between the A
// and B columns so neighbouring indexes never share a bench column.
func seatLabel(i int) string {
	column := "A"
	if i%2 == 1 {
		column = "B"
	}
	return fmt.Sprintf("%s%d", column, i/2+1)
}

// dedupeByRegNo drops later duplicates of the same registration number,
// keeping the first occurrence.
func dedupeByRegNo(students []models.Student) []models.Student {
	seen := make(map[string]struct{}, len(students))
	out := make([]models.Student, 0, len(students))
	for _, s := range students {
		if _, ok := seen[s.RegNo]; ok {
			continue
		}
		seen[s.RegNo] = struct{}{}
		out = append(out, s)
	}
	return out
}

// AllocateSeats assigns students to rooms deterministically. Students are
// deduplicated by registration number and seated in registration order;
// rooms fill smallest first so large venues stay free for large cohorts.
// Students beyond the combined capacity are returned unallocated. The
// function is pure: identical input always yields identical seating.
func AllocateSeats(exam models.Exam, students []models.Student, rooms []models.Room) models.AllocationResult {
	unique := dedupeByRegNo(students)
	sorted := make([]models.Student, len(unique))
	copy(sorted, unique)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].RegNo < sorted[j].RegNo })

	orderedRooms := make([]models.Room, len(rooms))
	copy(orderedRooms, rooms)
	sort.SliceStable(orderedRooms, func(i, j int) bool {
		if orderedRooms[i].Capacity != orderedRooms[j].Capacity {
			return orderedRooms[i].Capacity < orderedRooms[j].Capacity
		}
		return orderedRooms[i].RoomNo < orderedRooms[j].RoomNo
	})

	result := models.AllocationResult{Exam: exam}
	next := 0
	for _, room := range orderedRooms {
		if next >= len(sorted) {
			break
		}
		alloc := models.RoomAllocation{Room: room}
		for i := 0; i < room.Capacity && next < len(sorted); i++ {
			alloc.Seats = append(alloc.Seats, models.SeatAssignment{
				Student: sorted[next],
				SeatNo:  seatLabel(i),
			})
			next++
		}
		alloc.SeatedCount = len(alloc.Seats)
		result.Rooms = append(result.Rooms, alloc)
	}
	result.Allocated = next
	if next < len(sorted) {
		result.Unallocated = sorted[next:]
	}
	return result
}

// ValidateAllocation checks an allocation run for internal consistency.
// The run is valid when no student holds more than one seat. The expected
// total, when provided, is advisory and reported alongside without
// affecting validity; a capacity shortfall shows up only in the counts.
func ValidateAllocation(result models.AllocationResult, expectedTotal int) models.AllocationValidation {
	rows := 0
	distinct := make(map[string]struct{})
	for _, room := range result.Rooms {
		for _, seat := range room.Seats {
			rows++
			key := seat.Student.RegNo
			if key == "" {
				key = seat.Student.ID
			}
			distinct[key] = struct{}{}
		}
	}

	validation := models.AllocationValidation{
		AllocatedCount: rows,
		StudentCount:   len(distinct),
		ExpectedTotal:  expectedTotal,
	}
	validation.IsValid = rows == len(distinct)
	if expectedTotal > 0 {
		validation.ExpectedMatch = rows == expectedTotal
	}
	return validation
}
