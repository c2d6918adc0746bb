package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

type mockStudentRepo struct {
	students      map[string]models.Student
	existsByRegNo map[string]string
	deactivated   []string
	upserted      []models.Student
	listTotal     int
	err           error
}

func (m *mockStudentRepo) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	out := make([]models.Student, 0, len(m.students))
	for _, s := range m.students {
		out = append(out, s)
	}
	return out, m.listTotal, nil
}

func (m *mockStudentRepo) ListAll(ctx context.Context) ([]models.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Student, 0, len(m.students))
	for _, s := range m.students {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) ExistsByRegNo(ctx context.Context, regNo string, excludeID string) (bool, error) {
	if id, ok := m.existsByRegNo[regNo]; ok {
		if excludeID == "" || id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if m.students == nil {
		m.students = make(map[string]models.Student)
	}
	if student.ID == "" {
		student.ID = "generated"
	}
	m.students[student.ID] = *student
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	if m.students == nil {
		m.students = make(map[string]models.Student)
	}
	m.students[student.ID] = *student
	return nil
}

func (m *mockStudentRepo) Deactivate(ctx context.Context, id string) error {
	m.deactivated = append(m.deactivated, id)
	if s, ok := m.students[id]; ok {
		s.Active = false
		m.students[id] = s
	}
	return nil
}

func (m *mockStudentRepo) Upsert(ctx context.Context, student *models.Student) error {
	if m.err != nil {
		return m.err
	}
	m.upserted = append(m.upserted, *student)
	return nil
}

func TestStudentServiceCreate(t *testing.T) {
	repo := &mockStudentRepo{existsByRegNo: make(map[string]string)}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		RegNo:      "CS001",
		Name:       "Asha",
		Email:      "asha@example.edu",
		Department: "CSE",
		Semester:   "4",
		Subject:    "Operating Systems",
		ExamDate:   "10-04-2025",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, student.ID)
	assert.True(t, student.Active)
	assert.Equal(t, models.ExamTypeRegular, student.ExamType)
	require.NotNil(t, student.ExamDate)
	assert.Equal(t, "2025-04-10", student.ExamDate.Format("2006-01-02"))
}

func TestStudentServiceCreateDuplicateRegNo(t *testing.T) {
	repo := &mockStudentRepo{existsByRegNo: map[string]string{"CS001": "another"}}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateStudentRequest{RegNo: "CS001", Name: "A", Department: "CSE", Semester: "4"})
	require.Error(t, err)
}

func TestStudentServiceCreateRejectsBadDate(t *testing.T) {
	repo := &mockStudentRepo{existsByRegNo: make(map[string]string)}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateStudentRequest{RegNo: "CS001", Name: "A", Department: "CSE", Semester: "4", ExamDate: "sometime soon"})
	require.Error(t, err)
}

func TestStudentServiceUpdate(t *testing.T) {
	repo := &mockStudentRepo{
		students:      map[string]models.Student{"id1": {ID: "id1", RegNo: "CS001", Name: "Old", Department: "CSE", Semester: "4", Active: true}},
		existsByRegNo: make(map[string]string),
	}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	updated, err := svc.Update(context.Background(), "id1", UpdateStudentRequest{RegNo: "CS002", Name: "New", Department: "CSE", Semester: "5", Active: true})
	require.NoError(t, err)
	assert.Equal(t, "CS002", updated.RegNo)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "5", updated.Semester)
}

func TestStudentServiceDeactivate(t *testing.T) {
	repo := &mockStudentRepo{students: map[string]models.Student{"id1": {ID: "id1", RegNo: "CS001", Active: true}}}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	err := svc.Deactivate(context.Background(), "id1")
	require.NoError(t, err)
	assert.Contains(t, repo.deactivated, "id1")
}

func TestStudentServiceBulkImport(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	rows := []map[string]string{
		{"Reg No": "CS001", "Student Name": "Asha", "Dept": "CSE", "Sem": "4", "Exam Date": "10-04-2025"},
		{"Reg No": "CS002", "Student Name": "Ravi", "Dept": "CSE", "Sem": "4", "Exam Type": "supply"},
		{"Reg No": "", "Student Name": "No RegNo"},
		{"Reg No": "CS003", "Student Name": "Meena", "Exam Date": "whenever"},
	}
	result, err := svc.BulkImport(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, repo.upserted, 3)

	// Header aliases resolve to canonical fields.
	assert.Equal(t, "CSE", repo.upserted[0].Department)
	assert.Equal(t, "4", repo.upserted[0].Semester)
	require.NotNil(t, repo.upserted[0].ExamDate)
	assert.Equal(t, models.ExamTypeSupply, repo.upserted[1].ExamType)

	// Unparseable dates import without a date instead of failing the row.
	assert.Nil(t, repo.upserted[2].ExamDate)
}

func TestStudentServiceBulkImportEmpty(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, validator.New(), zap.NewNop())
	_, err := svc.BulkImport(context.Background(), nil)
	require.Error(t, err)
}
