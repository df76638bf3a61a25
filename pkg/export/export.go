// Package export serializes a week's plan into downloadable documents.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lehrteam/stundenplan-api/internal/models"
)

// WeekData is the input both exporters share: the roster plus the marks
// of one week.
type WeekData struct {
	WeekStart    string
	People       []models.Person
	Availability []models.Availability
}

// XLSXFileName returns the download name for a week's spreadsheet.
func XLSXFileName(weekStart string) string {
	return fmt.Sprintf("Stundenplan_%s.xlsx", weekStart)
}

// PDFFileName returns the download name for a week's document.
func PDFFileName(weekStart string) string {
	return fmt.Sprintf("Stundenplan_%s.pdf", weekStart)
}

// cellPeople returns the people available for a day/slot cell in roster
// order.
func cellPeople(data WeekData, day models.Weekday, slotID string) []models.Person {
	var people []models.Person
	for _, person := range data.People {
		for _, mark := range data.Availability {
			if mark.PersonID == person.ID && mark.Day == day && mark.SlotID == slotID {
				people = append(people, person)
				break
			}
		}
	}
	return people
}

// cellNames returns the joined person names for a day/slot cell, or the
// "frei" sentinel when nobody is available.
func cellNames(data WeekData, day models.Weekday, slotID string) string {
	people := cellPeople(data, day, slotID)
	if len(people) == 0 {
		return models.FreeSlotLabel
	}

	names := make([]string, len(people))
	for i, person := range people {
		names[i] = person.Name
	}
	return strings.Join(names, ", ")
}

// sortedPeople returns the roster ordered alphabetically by name, the
// ordering of the per-person sheet.
func sortedPeople(people []models.Person) []models.Person {
	out := make([]models.Person, len(people))
	copy(out, people)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// personMarks returns one person's marks sorted by day order, then slot id.
func personMarks(data WeekData, personID string) []models.Availability {
	dayOrder := make(map[models.Weekday]int, len(models.WeekDays))
	for i, day := range models.WeekDays {
		dayOrder[day.ID] = i
	}

	var marks []models.Availability
	for _, mark := range data.Availability {
		if mark.PersonID == personID {
			marks = append(marks, mark)
		}
	}
	sort.Slice(marks, func(i, j int) bool {
		if dayOrder[marks[i].Day] != dayOrder[marks[j].Day] {
			return dayOrder[marks[i].Day] < dayOrder[marks[j].Day]
		}
		return marks[i].SlotID < marks[j].SlotID
	})
	return marks
}
