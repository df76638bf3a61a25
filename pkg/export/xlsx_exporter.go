package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/lehrteam/stundenplan-api/internal/models"
)

const (
	planSheet   = "Stundenplan"
	personSheet = "Verfügbarkeiten"
)

// XLSXExporter renders a week into the two-sheet workbook: the plan grid
// and the per-person availability listing.
type XLSXExporter struct{}

// NewXLSXExporter constructs a spreadsheet exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Render produces the workbook bytes for one week.
func (e *XLSXExporter) Render(data WeekData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", planSheet); err != nil {
		return nil, fmt.Errorf("rename plan sheet: %w", err)
	}
	if err := e.writePlanSheet(f, data); err != nil {
		return nil, err
	}
	if err := e.writePersonSheet(f, data); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writePlanSheet fills the grid: header "Zeit, Montag..Freitag", one row
// per slot, each cell the available names or "frei".
func (e *XLSXExporter) writePlanSheet(f *excelize.File, data WeekData) error {
	header := []interface{}{"Zeit"}
	for _, day := range models.WeekDays {
		header = append(header, day.Label)
	}
	if err := setRow(f, planSheet, 1, header); err != nil {
		return err
	}

	for i, slot := range models.TimeSlots {
		row := []interface{}{slot.Label}
		for _, day := range models.WeekDays {
			row = append(row, cellNames(data, day.ID, slot.ID))
		}
		if err := setRow(f, planSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(planSheet, "A", "A", 15); err != nil {
		return fmt.Errorf("set plan column width: %w", err)
	}
	if err := f.SetColWidth(planSheet, "B", "F", 25); err != nil {
		return fmt.Errorf("set plan column width: %w", err)
	}
	return nil
}

// writePersonSheet lists every mark per person, alphabetical by name,
// with a dash placeholder row for people without any and a blank
// separator row between people.
func (e *XLSXExporter) writePersonSheet(f *excelize.File, data WeekData) error {
	if _, err := f.NewSheet(personSheet); err != nil {
		return fmt.Errorf("create person sheet: %w", err)
	}

	if err := setRow(f, personSheet, 1, []interface{}{"User", "Tag", "Zeitslot", "Von", "Bis"}); err != nil {
		return err
	}

	people := sortedPeople(data.People)
	rowIdx := 2
	for i, person := range people {
		marks := personMarks(data, person.ID)
		if len(marks) == 0 {
			if err := setRow(f, personSheet, rowIdx, []interface{}{person.Name, "-", "-", "-", "-"}); err != nil {
				return err
			}
			rowIdx++
		} else {
			for _, mark := range marks {
				slotLabel, from, to := mark.SlotID, "-", "-"
				if slot, ok := models.SlotByID(mark.SlotID); ok {
					slotLabel, from, to = slot.Label, slot.Start, slot.End
				}
				row := []interface{}{person.Name, models.WeekdayLabel(mark.Day), slotLabel, from, to}
				if err := setRow(f, personSheet, rowIdx, row); err != nil {
					return err
				}
				rowIdx++
			}
		}
		if i < len(people)-1 {
			rowIdx++
		}
	}

	widths := []struct {
		col   string
		width float64
	}{{"A", 20}, {"B", 15}, {"C", 20}, {"D", 10}, {"E", 10}}
	for _, w := range widths {
		if err := f.SetColWidth(personSheet, w.col, w.col, w.width); err != nil {
			return fmt.Errorf("set person column width: %w", err)
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}
