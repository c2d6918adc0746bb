package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

func TestSeatAllocationRepositoryReplaceForExam(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSeatAllocationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM seat_allocations WHERE exam_id").
		WithArgs("exam-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO seat_allocations").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO seat_allocations").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	allocations := []models.SeatAllocation{
		{ExamID: "exam-1", StudentID: "s1", RoomID: "r1", SeatNo: "A1", ExamDate: testTime(), ExamTime: models.SlotForenoon},
		{ExamID: "exam-1", StudentID: "s2", RoomID: "r1", SeatNo: "B1", ExamDate: testTime(), ExamTime: models.SlotForenoon},
	}
	err := repo.ReplaceForExam(context.Background(), "exam-1", allocations)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatAllocationRepositoryReplaceForExamRollsBackOnError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSeatAllocationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM seat_allocations WHERE exam_id").
		WithArgs("exam-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO seat_allocations").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	allocations := []models.SeatAllocation{
		{ExamID: "exam-1", StudentID: "s1", RoomID: "r1", SeatNo: "A1", ExamDate: testTime(), ExamTime: models.SlotForenoon},
	}
	err := repo.ReplaceForExam(context.Background(), "exam-1", allocations)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatAllocationRepositoryOccupiedRoomIDs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSeatAllocationRepository(db)

	mock.ExpectQuery("SELECT DISTINCT room_id FROM seat_allocations").
		WithArgs("2025-04-10", models.SlotForenoon).
		WillReturnRows(sqlmock.NewRows([]string{"room_id"}).AddRow("r1").AddRow("r2"))

	ids, err := repo.OccupiedRoomIDs(context.Background(), testTime(), models.SlotForenoon)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
