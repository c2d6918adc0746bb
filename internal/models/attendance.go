package models

import "time"

// AttendanceStatus tracks whether a seated student appeared for the exam.
type AttendanceStatus string

const (
	AttendanceNotMarked AttendanceStatus = "not_marked"
	AttendancePresent   AttendanceStatus = "present"
	AttendanceAbsent    AttendanceStatus = "absent"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceNotMarked, AttendancePresent, AttendanceAbsent:
		return true
	default:
		return false
	}
}

// ExamAttendance records presence and malpractice observations for one
// seat allocation. One row exists per allocation once marking begins.
type ExamAttendance struct {
	ID              string           `db:"id" json:"id"`
	AllocationID    string           `db:"allocation_id" json:"allocation_id"`
	Status          AttendanceStatus `db:"status" json:"status"`
	Malpractice     bool             `db:"malpractice" json:"malpractice"`
	MalpracticeNote string           `db:"malpractice_note" json:"malpractice_note,omitempty"`
	MarkedBy        string           `db:"marked_by" json:"marked_by"`
	MarkedAt        *time.Time       `db:"marked_at" json:"marked_at,omitempty"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updated_at"`
}

// AttendanceDetail joins an attendance row with its allocation, student
// and room context for invigilator views and reports.
type AttendanceDetail struct {
	AllocationID    string           `db:"allocation_id" json:"allocation_id"`
	SeatNo          string           `db:"seat_no" json:"seat_no"`
	RegNo           string           `db:"reg_no" json:"reg_no"`
	StudentName     string           `db:"student_name" json:"student_name"`
	Email           string           `db:"email" json:"email"`
	Department      string           `db:"department" json:"department"`
	Semester        string           `db:"semester" json:"semester"`
	Subject         string           `db:"subject" json:"subject"`
	RoomID          string           `db:"room_id" json:"room_id"`
	RoomNo          string           `db:"room_no" json:"room_no"`
	Block           string           `db:"block" json:"block"`
	ExamDate        time.Time        `db:"exam_date" json:"exam_date"`
	ExamTime        ExamSlot         `db:"exam_time" json:"exam_time"`
	Status          AttendanceStatus `db:"status" json:"status"`
	Malpractice     bool             `db:"malpractice" json:"malpractice"`
	MalpracticeNote string           `db:"malpractice_note" json:"malpractice_note,omitempty"`
	MarkedBy        string           `db:"marked_by" json:"marked_by"`
	MarkedAt        *time.Time       `db:"marked_at" json:"marked_at,omitempty"`
}

// AttendanceSummary aggregates marking progress for one exam session.
type AttendanceSummary struct {
	ExamDate    time.Time `db:"exam_date" json:"exam_date"`
	ExamTime    ExamSlot  `db:"exam_time" json:"exam_time"`
	Total       int       `db:"total" json:"total"`
	Present     int       `db:"present" json:"present"`
	Absent      int       `db:"absent" json:"absent"`
	NotMarked   int       `db:"not_marked" json:"not_marked"`
	Malpractice int       `db:"malpractice" json:"malpractice"`
}

// AttendanceFilter encapsulates search parameters for attendance views.
type AttendanceFilter struct {
	RoomID   string
	Date     *time.Time
	Time     ExamSlot
	Status   AttendanceStatus
	MarkedBy string
	Page     int
	PageSize int
}
