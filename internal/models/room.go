package models

import "time"

// RoomType enumerates the kinds of examination venues.
type RoomType string

const (
	RoomTypeClassroom   RoomType = "classroom"
	RoomTypeLab         RoomType = "lab"
	RoomTypeDrawingHall RoomType = "drawinghall"
)

// Valid returns true when the room type is a supported value.
func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeClassroom, RoomTypeLab, RoomTypeDrawingHall:
		return true
	default:
		return false
	}
}

// Room is an examination venue. RoomNo is unique within a block.
type Room struct {
	ID        string    `db:"id" json:"id"`
	RoomNo    string    `db:"room_no" json:"room_no"`
	Block     string    `db:"block" json:"block"`
	FloorNo   int       `db:"floor_no" json:"floor_no"`
	Capacity  int       `db:"capacity" json:"capacity"`
	RoomType  RoomType  `db:"room_type" json:"room_type"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RoomFilter encapsulates search parameters for listing rooms.
type RoomFilter struct {
	Block     string
	RoomType  RoomType
	Active    *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// RoomSet groups rooms with capacity subtotals per room type.
type RoomSet struct {
	Rooms          []Room           `json:"rooms"`
	TotalCapacity  int              `json:"total_capacity"`
	CapacityByType map[RoomType]int `json:"capacity_by_type"`
}

// RoomAvailability partitions rooms for one date/time slot into available
// and occupied sets, and lists the exams competing for that slot.
type RoomAvailability struct {
	Date             string   `json:"date"`
	Time             ExamSlot `json:"time"`
	AvailableRooms   RoomSet  `json:"available_rooms"`
	OccupiedRooms    RoomSet  `json:"occupied_rooms"`
	ConflictingExams []Exam   `json:"conflicting_exams"`
}
