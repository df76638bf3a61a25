package models

// FreeSlotLabel marks a cell nobody is available for, in exports and the
// plan view alike.
const FreeSlotLabel = "frei"

// PlanCell is one day/slot cell of the aggregated week plan.
type PlanCell struct {
	Day             Weekday  `json:"day"`
	SlotID          string   `json:"slot_id"`
	People          []Person `json:"people"`
	PrimaryPersonID *string  `json:"primary_person_id"`
}

// WeekPlan is the full aggregated grid for one week.
type WeekPlan struct {
	WeekStart string        `json:"week_start"`
	Days      []WeekdayInfo `json:"days"`
	Slots     []TimeSlot    `json:"slots"`
	Cells     []PlanCell    `json:"cells"`
}
