package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	appErrors "github.com/campushq/coursehub/pkg/errors"
	"github.com/campushq/coursehub/pkg/export"
)

// ExportFile is a rendered grade sheet ready to stream.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders course grade sheets.
type ExportService struct {
	grades *GradeService
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs ExportService.
func NewExportService(grades *GradeService, csv *export.CSVExporter, pdf *export.PDFExporter, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{grades: grades, csv: csv, pdf: pdf, logger: logger}
}

// GradeSheet renders the course roster with scores in the requested format,
// csv or pdf. Permission follows the roster: managing teacher or staff.
func (s *ExportService) GradeSheet(ctx context.Context, actor Actor, courseID, format string) (*ExportFile, error) {
	details, err := s.grades.Roster(ctx, actor, courseID)
	if err != nil {
		return nil, err
	}

	sheet := export.Sheet{
		Title:   "Grade Sheet",
		Headers: []string{"Student ID", "Student", "Midterm", "Final", "Average"},
	}
	for _, d := range details {
		sheet.Rows = append(sheet.Rows, []string{
			d.StudentNumber,
			d.StudentName,
			formatScore(d.MidtermScore),
			formatScore(d.FinalScore),
			formatScore(d.AverageScore),
		})
	}

	switch format {
	case "csv", "":
		data, err := s.csv.Render(sheet)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("grades-%s.csv", courseID),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case "pdf":
		data, err := s.pdf.Render(sheet)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("grades-%s.pdf", courseID),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
