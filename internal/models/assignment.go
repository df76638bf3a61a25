package models

// Assignment designates at most one primary person per week/day/slot.
// It is independent of availability marks: a primary need not be marked
// available, and neither layer cross-validates the other.
type Assignment struct {
	WeekStart       string  `db:"week_start" json:"week_start"`
	Day             Weekday `db:"day" json:"day"`
	SlotID          string  `db:"slot_id" json:"slot_id"`
	PrimaryPersonID *string `db:"primary_person_id" json:"primary_person_id"`
}
