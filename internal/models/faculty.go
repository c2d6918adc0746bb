package models

import "time"

// FacultyDesignation separates teaching staff from lab support staff in
// the invigilation pool.
type FacultyDesignation string

const (
	DesignationFaculty       FacultyDesignation = "faculty"
	DesignationLabTechnician FacultyDesignation = "lab technician"
)

// Valid returns true when the designation is a supported value.
func (d FacultyDesignation) Valid() bool {
	return d == DesignationFaculty || d == DesignationLabTechnician
}

// InvigilationRole is the duty assigned to a staff member in a room.
type InvigilationRole string

const (
	RoleInvigilatorDuty  InvigilationRole = "invigilator"
	RoleChiefInvigilator InvigilationRole = "chief_invigilator"
	RoleSupervisor       InvigilationRole = "supervisor"
)

// Valid returns true when the role is a supported value.
func (r InvigilationRole) Valid() bool {
	switch r {
	case RoleInvigilatorDuty, RoleChiefInvigilator, RoleSupervisor:
		return true
	default:
		return false
	}
}

// FacultyMember is one entry of the invigilation staff pool.
type FacultyMember struct {
	ID          string             `db:"id" json:"id"`
	Name        string             `db:"name" json:"name"`
	Email       string             `db:"email" json:"email"`
	Department  string             `db:"department" json:"department"`
	Designation FacultyDesignation `db:"designation" json:"designation"`
	Active      bool               `db:"active" json:"active"`
	CreatedAt   time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `db:"updated_at" json:"updated_at"`
}

// FacultyFilter encapsulates search parameters for listing faculty.
type FacultyFilter struct {
	Department  string
	Designation FacultyDesignation
	Active      *bool
	Page        int
	PageSize    int
}

// FacultyAllocation assigns one staff member to invigilate one room for an
// exam session.
type FacultyAllocation struct {
	ID        string           `db:"id" json:"id"`
	FacultyID string           `db:"faculty_id" json:"faculty_id"`
	RoomID    string           `db:"room_id" json:"room_id"`
	ExamDate  time.Time        `db:"exam_date" json:"exam_date"`
	ExamTime  ExamSlot         `db:"exam_time" json:"exam_time"`
	Role      InvigilationRole `db:"role" json:"role"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

// FacultyAllocationDetail is a faculty allocation joined with staff and
// room rows for listing, notification and export.
type FacultyAllocationDetail struct {
	FacultyAllocation
	FacultyName string             `db:"faculty_name" json:"faculty_name"`
	Email       string             `db:"email" json:"email"`
	Department  string             `db:"department" json:"department"`
	Designation FacultyDesignation `db:"designation" json:"designation"`
	RoomNo      string             `db:"room_no" json:"room_no"`
	Block       string             `db:"block" json:"block"`
}

// FacultyAllocationFilter encapsulates search parameters for listing
// faculty allocations.
type FacultyAllocationFilter struct {
	FacultyID string
	RoomID    string
	Date      *time.Time
	Time      ExamSlot
	Page      int
	PageSize  int
}

// RoomStaffing is the per-room outcome of one faculty allocation run.
type RoomStaffing struct {
	Room         Room            `json:"room"`
	StudentCount int             `json:"student_count"`
	Faculty      []FacultyMember `json:"faculty"`
	LabTechs     []FacultyMember `json:"lab_techs"`
	Shortfall    int             `json:"shortfall"`
}

// FacultyAllocationResult is the outcome of one faculty allocation run.
type FacultyAllocationResult struct {
	Date     time.Time      `json:"date"`
	Time     ExamSlot       `json:"time"`
	Rooms    []RoomStaffing `json:"rooms"`
	Assigned int            `json:"assigned"`
}
