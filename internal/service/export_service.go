package service

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
	"github.com/noah-isme/exam-seating-api/pkg/export"
)

var seatingHeaders = []string{"Seat", "Reg No", "Name", "Department", "Semester", "Subject", "Room", "Block"}

var dutyHeaders = []string{"Room", "Block", "Name", "Designation", "Department", "Email", "Role"}

// ExportService renders seating charts and duty rosters as CSV, XLSX and
// printable PDF.
type ExportService struct {
	allocations allocationReader
	duties      dutyReader
	exams       examRepository
	csv         *export.CSVExporter
	xlsx        *export.XLSXExporter
	pdf         *export.PDFExporter
	logger      *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(allocations allocationReader, duties dutyReader, exams examRepository, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		allocations: allocations,
		duties:      duties,
		exams:       exams,
		csv:         export.NewCSVExporter(),
		xlsx:        export.NewXLSXExporter(),
		pdf:         export.NewPDFExporter(),
		logger:      logger,
	}
}

func (s *ExportService) seatingSheets(ctx context.Context, examID string) ([]export.Sheet, *models.Exam, error) {
	exam, err := s.exams.FindByID(ctx, examID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam")
	}
	details, err := s.allocations.ListByExam(ctx, examID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load allocations")
	}
	if len(details) == 0 {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "no allocations for this exam")
	}

	// Rows arrive ordered by room then seat; one sheet per room.
	var sheets []export.Sheet
	var current *export.Sheet
	for _, d := range details {
		sheetName := fmt.Sprintf("Room %s", d.RoomNo)
		if d.Block != "" {
			sheetName = fmt.Sprintf("Room %s-%s", d.Block, d.RoomNo)
		}
		if current == nil || current.Name != sheetName {
			sheets = append(sheets, export.Sheet{Name: sheetName, Dataset: export.Dataset{Headers: seatingHeaders}})
			current = &sheets[len(sheets)-1]
		}
		current.Rows = append(current.Rows, map[string]string{
			"Seat":       d.SeatNo,
			"Reg No":     d.RegNo,
			"Name":       d.StudentName,
			"Department": d.Department,
			"Semester":   d.Semester,
			"Subject":    d.Subject,
			"Room":       d.RoomNo,
			"Block":      d.Block,
		})
	}
	return sheets, exam, nil
}

// SeatingWorkbook renders the exam's seating as an XLSX workbook with one
// worksheet per room.
func (s *ExportService) SeatingWorkbook(ctx context.Context, examID string) ([]byte, string, error) {
	sheets, exam, err := s.seatingSheets(ctx, examID)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.xlsx.Render(sheets)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render workbook")
	}
	return payload, exportFilename(exam, "xlsx"), nil
}

// SeatingCSV renders the exam's seating as one flat CSV.
func (s *ExportService) SeatingCSV(ctx context.Context, examID string) ([]byte, string, error) {
	sheets, exam, err := s.seatingSheets(ctx, examID)
	if err != nil {
		return nil, "", err
	}
	flat := export.Dataset{Headers: seatingHeaders}
	for _, sheet := range sheets {
		flat.Rows = append(flat.Rows, sheet.Rows...)
	}
	payload, err := s.csv.Render(flat)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return payload, exportFilename(exam, "csv"), nil
}

// SeatingChartPDF renders printable room-wise seating charts for posting
// outside exam halls.
func (s *ExportService) SeatingChartPDF(ctx context.Context, examID string) ([]byte, string, error) {
	sheets, exam, err := s.seatingSheets(ctx, examID)
	if err != nil {
		return nil, "", err
	}
	title := fmt.Sprintf("%s (%s) - %s [%s]", exam.Subject, exam.SubjectCode, exam.Date.Format("02 Jan 2006"), exam.Time)
	payload, err := s.pdf.Render(sheets, title)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return payload, exportFilename(exam, "pdf"), nil
}

// DutyRosterCSV renders the session's invigilation duties as CSV.
func (s *ExportService) DutyRosterCSV(ctx context.Context, rawDate string, slot models.ExamSlot) ([]byte, string, error) {
	date, ok := parseFlexibleDate(rawDate)
	if !ok {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unrecognised date format")
	}
	details, err := s.duties.ListBySession(ctx, date, slot)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load duties")
	}
	if len(details) == 0 {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "no duties for this session")
	}

	dataset := export.Dataset{Headers: dutyHeaders}
	for _, d := range details {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Room":        d.RoomNo,
			"Block":       d.Block,
			"Name":        d.FacultyName,
			"Designation": string(d.Designation),
			"Department":  d.Department,
			"Email":       d.Email,
			"Role":        string(d.Role),
		})
	}
	payload, err := s.csv.Render(dataset)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	filename := fmt.Sprintf("duty-roster-%s-%s.csv", dayKey(date), slot)
	return payload, filename, nil
}

func exportFilename(exam *models.Exam, ext string) string {
	return fmt.Sprintf("seating-%s-%s-%s.%s", exam.SubjectCode, dayKey(exam.Date), exam.Time, ext)
}
