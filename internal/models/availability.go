package models

// Availability is a presence-only mark: the person can cover the given
// week/day/slot. Absence of a row means unavailable; the tuple
// (person, week, day, slot) is unique in the store.
type Availability struct {
	PersonID  string  `db:"person_id" json:"person_id"`
	WeekStart string  `db:"week_start" json:"week_start"`
	Day       Weekday `db:"day" json:"day"`
	SlotID    string  `db:"slot_id" json:"slot_id"`
}

// AvailabilityEntry addresses one cell within a week, used by the bulk
// replace operation.
type AvailabilityEntry struct {
	Day    Weekday `json:"day" validate:"required"`
	SlotID string  `json:"slot_id" validate:"required"`
}
