package models

import "time"

// ExamType distinguishes first-attempt exams from supplementary ones.
type ExamType string

const (
	ExamTypeRegular ExamType = "regular"
	ExamTypeSupply  ExamType = "supply"
)

// Valid returns true when the exam type is a supported value.
func (t ExamType) Valid() bool {
	return t == ExamTypeRegular || t == ExamTypeSupply
}

// Student represents one row of the examination roster.
type Student struct {
	ID          string     `db:"id" json:"id"`
	RegNo       string     `db:"reg_no" json:"reg_no"`
	Name        string     `db:"name" json:"name"`
	Email       string     `db:"email" json:"email"`
	Department  string     `db:"department" json:"department"`
	Semester    string     `db:"semester" json:"semester"`
	Subject     string     `db:"subject" json:"subject"`
	SubjectCode string     `db:"subject_code" json:"subject_code"`
	ExamDate    *time.Time `db:"exam_date" json:"exam_date,omitempty"`
	ExamType    ExamType   `db:"exam_type" json:"exam_type"`
	Active      bool       `db:"active" json:"active"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search     string
	Department string
	Semester   string
	Active     *bool
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
