package models

import "time"

// SeatAllocation assigns one student to one seat in one room for an exam
// session. SeatNo follows the "A1", "B1", "A2", ... column pattern.
type SeatAllocation struct {
	ID        string    `db:"id" json:"id"`
	ExamID    string    `db:"exam_id" json:"exam_id"`
	StudentID string    `db:"student_id" json:"student_id"`
	RoomID    string    `db:"room_id" json:"room_id"`
	SeatNo    string    `db:"seat_no" json:"seat_no"`
	ExamDate  time.Time `db:"exam_date" json:"exam_date"`
	ExamTime  ExamSlot  `db:"exam_time" json:"exam_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SeatAllocationDetail is a seat allocation joined with its student, room
// and exam rows for listing, charts and exports.
type SeatAllocationDetail struct {
	SeatAllocation
	RegNo       string `db:"reg_no" json:"reg_no"`
	StudentName string `db:"student_name" json:"student_name"`
	Email       string `db:"email" json:"email"`
	Department  string `db:"department" json:"department"`
	Semester    string `db:"semester" json:"semester"`
	Subject     string `db:"subject" json:"subject"`
	SubjectCode string `db:"subject_code" json:"subject_code"`
	RoomNo      string `db:"room_no" json:"room_no"`
	Block       string `db:"block" json:"block"`
}

// AllocationFilter encapsulates search parameters for listing allocations.
type AllocationFilter struct {
	ExamID    string
	RoomID    string
	StudentID string
	Date      *time.Time
	Time      ExamSlot
	Page      int
	PageSize  int
}

// RoomOccupancy pairs a room with its seated head count for one session.
type RoomOccupancy struct {
	Room
	Seated int `db:"seated" json:"seated"`
}

// RoomAllocation is the per-room slice of a seat allocation run.
type RoomAllocation struct {
	Room        Room             `json:"room"`
	Seats       []SeatAssignment `json:"seats"`
	SeatedCount int              `json:"seated_count"`
}

// SeatAssignment pairs a student with a seat label inside one room.
type SeatAssignment struct {
	Student Student `json:"student"`
	SeatNo  string  `json:"seat_no"`
}

// AllocationResult is the outcome of one seat allocation run.
type AllocationResult struct {
	Exam        Exam             `json:"exam"`
	Rooms       []RoomAllocation `json:"rooms"`
	Allocated   int              `json:"allocated"`
	Unallocated []Student        `json:"unallocated"`
}

// AllocationValidation reports the internal consistency of an allocation run.
type AllocationValidation struct {
	IsValid        bool `json:"is_valid"`
	AllocatedCount int  `json:"allocated_count"`
	StudentCount   int  `json:"student_count"`
	ExpectedTotal  int  `json:"expected_total,omitempty"`
	ExpectedMatch  bool `json:"expected_match"`
}
