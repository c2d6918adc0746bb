package models

import "time"

// ExamSlot is a half-day examination session.
type ExamSlot string

const (
	SlotForenoon  ExamSlot = "FN"
	SlotAfternoon ExamSlot = "AN"
)

// Valid returns true when the slot is a supported value.
func (s ExamSlot) Valid() bool {
	return s == SlotForenoon || s == SlotAfternoon
}

// Exam is a scheduled examination session for one subject.
type Exam struct {
	ID          string    `db:"id" json:"id"`
	Subject     string    `db:"subject" json:"subject"`
	SubjectCode string    `db:"subject_code" json:"subject_code"`
	Department  string    `db:"department" json:"department"`
	Semester    string    `db:"semester" json:"semester"`
	Date        time.Time `db:"date" json:"date"`
	Time        ExamSlot  `db:"time" json:"time"`
	ExamType    ExamType  `db:"exam_type" json:"exam_type"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ExamFilter encapsulates search parameters for listing exam schedules.
type ExamFilter struct {
	Department string
	Semester   string
	Date       *time.Time
	Time       ExamSlot
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
