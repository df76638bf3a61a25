package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/lehrteam/stundenplan-api/internal/models"
	"github.com/lehrteam/stundenplan-api/pkg/colors"
	"github.com/lehrteam/stundenplan-api/pkg/week"
)

// PDFExporter renders the week grid onto a landscape page with a title
// and the formatted week date as subtitle.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render produces the document bytes for one week.
func (e *PDFExporter) Render(data WeekData) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Stundenplan", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Woche ab %s", week.Heading(data.WeekStart)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Spread the grid across the printable width; the equal margins keep
	// it horizontally centered.
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right
	timeColWidth := usable * 0.16
	dayColWidth := (usable - timeColWidth) / float64(len(models.WeekDays))

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(timeColWidth, 9, "Zeit", "1", 0, "C", true, 0, "")
	for _, day := range models.WeekDays {
		pdf.CellFormat(dayColWidth, 9, day.Label, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, slot := range models.TimeSlots {
		pdf.CellFormat(timeColWidth, 9, slot.Label, "1", 0, "C", false, 0, "")
		for _, day := range models.WeekDays {
			people := cellPeople(data, day.ID, slot.ID)
			if len(people) == 0 {
				pdf.SetTextColor(0, 0, 0)
				pdf.CellFormat(dayColWidth, 9, models.FreeSlotLabel, "1", 0, "C", false, 0, "")
				continue
			}

			// Tint the cell with the first person's badge color, like the
			// on-screen grid.
			r, g, b := colors.RGB(people[0].Color)
			pdf.SetFillColor(r, g, b)
			if colors.ReadableTextColor(people[0].Color) == "white" {
				pdf.SetTextColor(255, 255, 255)
			} else {
				pdf.SetTextColor(0, 0, 0)
			}
			pdf.CellFormat(dayColWidth, 9, cellNames(data, day.ID, slot.ID), "1", 0, "C", true, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
