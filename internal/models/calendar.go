package models

import "fmt"

// Weekday identifies one of the five teaching days. There is no weekend;
// the calendar is strictly a Monday-to-Friday week.
type Weekday string

const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
)

// WeekdayInfo carries the display labels for a teaching day.
type WeekdayInfo struct {
	ID         Weekday `json:"id"`
	Label      string  `json:"label"`
	ShortLabel string  `json:"short_label"`
}

// WeekDays lists the teaching days in calendar order.
var WeekDays = []WeekdayInfo{
	{ID: Monday, Label: "Montag", ShortLabel: "Mo"},
	{ID: Tuesday, Label: "Dienstag", ShortLabel: "Di"},
	{ID: Wednesday, Label: "Mittwoch", ShortLabel: "Mi"},
	{ID: Thursday, Label: "Donnerstag", ShortLabel: "Do"},
	{ID: Friday, Label: "Freitag", ShortLabel: "Fr"},
}

// ParseWeekday validates a day identifier.
func ParseWeekday(raw string) (Weekday, error) {
	for _, day := range WeekDays {
		if string(day.ID) == raw {
			return day.ID, nil
		}
	}
	return "", fmt.Errorf("unknown weekday %q", raw)
}

// WeekdayLabel returns the German label for a day, falling back to the
// raw id for values outside the table.
func WeekdayLabel(day Weekday) string {
	for _, d := range WeekDays {
		if d.ID == day {
			return d.Label
		}
	}
	return string(day)
}

// TimeSlot is one of the six fixed two-hour teaching blocks. The table is
// compile-time configuration, not a stored entity.
type TimeSlot struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// TimeSlots spans 08:00-20:00 in two-hour blocks.
var TimeSlots = []TimeSlot{
	{ID: "08-10", Label: "08:00 - 10:00", Start: "08:00", End: "10:00"},
	{ID: "10-12", Label: "10:00 - 12:00", Start: "10:00", End: "12:00"},
	{ID: "12-14", Label: "12:00 - 14:00", Start: "12:00", End: "14:00"},
	{ID: "14-16", Label: "14:00 - 16:00", Start: "14:00", End: "16:00"},
	{ID: "16-18", Label: "16:00 - 18:00", Start: "16:00", End: "18:00"},
	{ID: "18-20", Label: "18:00 - 20:00", Start: "18:00", End: "20:00"},
}

// SlotByID looks up a slot in the fixed table.
func SlotByID(id string) (TimeSlot, bool) {
	for _, slot := range TimeSlots {
		if slot.ID == id {
			return slot, true
		}
	}
	return TimeSlot{}, false
}
