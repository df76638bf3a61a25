package service

import (
	"go.uber.org/zap"

	"github.com/lehrteam/stundenplan-api/internal/models"
)

type peopleSource interface {
	People() []models.Person
}

type availabilitySource interface {
	WeekAvailability(weekStart string) []models.Availability
	Version() uint64
}

type assignmentSource interface {
	WeekAssignments(weekStart string) []models.Assignment
}

// PlanService aggregates the three store snapshots into the week grid
// the plan view renders.
type PlanService struct {
	people       peopleSource
	availability availabilitySource
	assignments  assignmentSource
	logger       *zap.Logger
}

// NewPlanService instantiates PlanService.
func NewPlanService(people peopleSource, availability availabilitySource, assignments assignmentSource, logger *zap.Logger) *PlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanService{people: people, availability: availability, assignments: assignments, logger: logger}
}

// Version exposes the availability snapshot version so clients can cheaply
// detect staleness.
func (s *PlanService) Version() uint64 {
	return s.availability.Version()
}

// WeekPlan builds the 5x6 grid for one week: per cell the people marked
// available (in roster order) and the primary assignment, if any.
func (s *PlanService) WeekPlan(weekStart string) *models.WeekPlan {
	people := s.people.People()
	peopleByID := make(map[string]models.Person, len(people))
	for _, person := range people {
		peopleByID[person.ID] = person
	}

	available := make(map[string]map[string]struct{})
	for _, mark := range s.availability.WeekAvailability(weekStart) {
		key := cellID(mark.Day, mark.SlotID)
		if available[key] == nil {
			available[key] = make(map[string]struct{})
		}
		available[key][mark.PersonID] = struct{}{}
	}

	primaries := make(map[string]*string)
	for _, assignment := range s.assignments.WeekAssignments(weekStart) {
		primaries[cellID(assignment.Day, assignment.SlotID)] = assignment.PrimaryPersonID
	}

	plan := &models.WeekPlan{
		WeekStart: weekStart,
		Days:      models.WeekDays,
		Slots:     models.TimeSlots,
	}
	for _, day := range models.WeekDays {
		for _, slot := range models.TimeSlots {
			key := cellID(day.ID, slot.ID)
			cell := models.PlanCell{
				Day:    day.ID,
				SlotID: slot.ID,
				People: []models.Person{},
			}
			// Roster order keeps cell listings stable across refreshes.
			for _, person := range people {
				if _, ok := available[key][person.ID]; ok {
					cell.People = append(cell.People, person)
				}
			}
			cell.PrimaryPersonID = primaries[key]
			plan.Cells = append(plan.Cells, cell)
		}
	}
	return plan
}

func cellID(day models.Weekday, slotID string) string {
	return string(day) + "-" + slotID
}
