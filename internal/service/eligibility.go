package service

import (
	"strings"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

// normalizeField lowercases and trims a free-text roster field so that
// clerical variations in spacing and case do not split cohorts.
func normalizeField(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// subjectMatches decides whether a student sits the given exam's paper.
// Subject codes are authoritative when both sides carry one. Without codes
// the free-text subject names match on containment in either direction,
// since rosters abbreviate names the schedule spells out. When neither
// side has usable subject data the student is admitted; the roster filter
// on department and semester has already scoped the cohort.
func subjectMatches(student models.Student, exam models.Exam) bool {
	studentCode := normalizeField(student.SubjectCode)
	examCode := normalizeField(exam.SubjectCode)
	if studentCode != "" && examCode != "" {
		return studentCode == examCode
	}

	studentSubject := normalizeField(student.Subject)
	examSubject := normalizeField(exam.Subject)
	if studentSubject != "" && examSubject != "" {
		return strings.Contains(studentSubject, examSubject) || strings.Contains(examSubject, studentSubject)
	}

	return true
}

// isEligible reports whether a student should be seated for an exam.
// Students whose roster row carries an exam date are additionally held to
// the exam's calendar day; rows with unparseable or missing dates are
// admitted rather than silently dropped.
func isEligible(student models.Student, exam models.Exam) bool {
	if !student.Active {
		return false
	}
	if normalizeField(student.Department) != normalizeField(exam.Department) {
		return false
	}
	if normalizeField(student.Semester) != normalizeField(exam.Semester) {
		return false
	}
	if !subjectMatches(student, exam) {
		return false
	}
	if student.ExamDate != nil && !sameCalendarDay(*student.ExamDate, exam.Date) {
		return false
	}
	return true
}

// EligibleStudents filters the roster down to students who sit the exam,
// preserving roster order. The filter is pure and never mutates its input.
func EligibleStudents(roster []models.Student, exam models.Exam) []models.Student {
	eligible := make([]models.Student, 0, len(roster))
	for _, student := range roster {
		if isEligible(student, exam) {
			eligible = append(eligible, student)
		}
	}
	return eligible
}
