package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lehrteam/stundenplan-api/internal/models"
)

func annaWeek() WeekData {
	return WeekData{
		WeekStart: "2025-11-03",
		People: []models.Person{
			{ID: "p1", Name: "Anna", Color: "#EF4444"},
			{ID: "p2", Name: "Lukas", Color: "#10B981"},
		},
		Availability: []models.Availability{
			{PersonID: "p1", WeekStart: "2025-11-03", Day: models.Monday, SlotID: "08-10"},
		},
	}
}

func TestXLSXPlanSheet(t *testing.T) {
	raw, err := NewXLSXExporter().Render(annaWeek())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Stundenplan", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Zeit", header)
	monday, err := f.GetCellValue("Stundenplan", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Montag", monday)

	// Monday 08-10 holds Anna, every other data cell reads "frei".
	got, err := f.GetCellValue("Stundenplan", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Anna", got)

	freiCount := 0
	for row := 2; row <= 7; row++ {
		for _, col := range []string{"B", "C", "D", "E", "F"} {
			cell, err := f.GetCellValue("Stundenplan", col+string(rune('0'+row)))
			require.NoError(t, err)
			if cell == models.FreeSlotLabel {
				freiCount++
			}
		}
	}
	assert.Equal(t, 29, freiCount)
}

func TestXLSXPersonSheet(t *testing.T) {
	raw, err := NewXLSXExporter().Render(annaWeek())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Verfügbarkeiten")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 4)

	assert.Equal(t, []string{"User", "Tag", "Zeitslot", "Von", "Bis"}, rows[0])
	assert.Equal(t, []string{"Anna", "Montag", "08:00 - 10:00", "08:00", "10:00"}, rows[1])
	// Blank separator row between people, then Lukas's dash placeholder.
	assert.Empty(t, rows[2])
	assert.Equal(t, []string{"Lukas", "-", "-", "-", "-"}, rows[3])
}

func TestXLSXMultiplePeopleJoined(t *testing.T) {
	data := annaWeek()
	data.Availability = append(data.Availability,
		models.Availability{PersonID: "p2", WeekStart: data.WeekStart, Day: models.Monday, SlotID: "08-10"})

	raw, err := NewXLSXExporter().Render(data)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Stundenplan", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Anna, Lukas", got)
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "Stundenplan_2025-11-03.xlsx", XLSXFileName("2025-11-03"))
	assert.Equal(t, "Stundenplan_2025-11-03.pdf", PDFFileName("2025-11-03"))
}
