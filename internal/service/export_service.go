package service

import (
	"go.uber.org/zap"

	appErrors "github.com/lehrteam/stundenplan-api/pkg/errors"
	"github.com/lehrteam/stundenplan-api/pkg/export"
)

type xlsxRenderer interface {
	Render(data export.WeekData) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.WeekData) ([]byte, error)
}

// ExportService turns a week's snapshots into downloadable files.
type ExportService struct {
	people       peopleSource
	availability availabilitySource
	xlsx         xlsxRenderer
	pdf          pdfRenderer
	logger       *zap.Logger
}

// NewExportService instantiates ExportService.
func NewExportService(people peopleSource, availability availabilitySource, xlsx xlsxRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{people: people, availability: availability, xlsx: xlsx, pdf: pdf, logger: logger}
}

func (s *ExportService) weekData(weekStart string) export.WeekData {
	return export.WeekData{
		WeekStart:    weekStart,
		People:       s.people.People(),
		Availability: s.availability.WeekAvailability(weekStart),
	}
}

// XLSX renders the spreadsheet for one week and returns its bytes and
// download name.
func (s *ExportService) XLSX(weekStart string) ([]byte, string, error) {
	raw, err := s.xlsx.Render(s.weekData(weekStart))
	if err != nil {
		s.logger.Error("xlsx export failed", zap.String("week", weekStart), zap.Error(err))
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export spreadsheet")
	}
	return raw, export.XLSXFileName(weekStart), nil
}

// PDF renders the plan document for one week and returns its bytes and
// download name.
func (s *ExportService) PDF(weekStart string) ([]byte, string, error) {
	raw, err := s.pdf.Render(s.weekData(weekStart))
	if err != nil {
		s.logger.Error("pdf export failed", zap.String("week", weekStart), zap.Error(err))
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export document")
	}
	return raw, export.PDFFileName(weekStart), nil
}
