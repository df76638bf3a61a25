package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehrteam/stundenplan-api/internal/models"
	"github.com/lehrteam/stundenplan-api/internal/realtime"
)

type cellKey struct {
	week string
	day  models.Weekday
	slot string
}

type fakeAssignmentAdapter struct {
	mu      sync.Mutex
	cells   map[cellKey]*string
	listErr error
	setErr  error
}

func newFakeAssignmentAdapter() *fakeAssignmentAdapter {
	return &fakeAssignmentAdapter{cells: make(map[cellKey]*string)}
}

func (f *fakeAssignmentAdapter) ListByWeek(_ context.Context, weekStart string) ([]models.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Assignment
	for key, person := range f.cells {
		if key.week == weekStart {
			out = append(out, models.Assignment{WeekStart: key.week, Day: key.day, SlotID: key.slot, PrimaryPersonID: person})
		}
	}
	return out, nil
}

func (f *fakeAssignmentAdapter) SetPrimary(_ context.Context, weekStart string, day models.Weekday, slotID string, primaryPersonID *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.cells[cellKey{week: weekStart, day: day, slot: slotID}] = primaryPersonID
	return nil
}

func TestSetPrimaryReloadsWeek(t *testing.T) {
	adapter := newFakeAssignmentAdapter()
	s := NewAssignmentStore(adapter, realtime.NewMemoryBroker(), nil)
	ctx := context.Background()

	anna := "anna"
	s.SetPrimary(ctx, testWeek, models.Monday, "08-10", &anna)

	assignments := s.WeekAssignments(testWeek)
	require.Len(t, assignments, 1)
	require.NotNil(t, assignments[0].PrimaryPersonID)
	assert.Equal(t, "anna", *assignments[0].PrimaryPersonID)
	assert.Empty(t, s.Err())
}

func TestSetPrimaryNilClearsCell(t *testing.T) {
	adapter := newFakeAssignmentAdapter()
	s := NewAssignmentStore(adapter, realtime.NewMemoryBroker(), nil)
	ctx := context.Background()

	anna := "anna"
	s.SetPrimary(ctx, testWeek, models.Monday, "08-10", &anna)
	s.SetPrimary(ctx, testWeek, models.Monday, "08-10", nil)

	assignments := s.WeekAssignments(testWeek)
	require.Len(t, assignments, 1)
	assert.Nil(t, assignments[0].PrimaryPersonID)
}

func TestSetPrimaryFailureSetsError(t *testing.T) {
	adapter := newFakeAssignmentAdapter()
	adapter.setErr = errors.New("down")
	s := NewAssignmentStore(adapter, realtime.NewMemoryBroker(), nil)

	anna := "anna"
	s.SetPrimary(context.Background(), testWeek, models.Monday, "08-10", &anna)

	assert.NotEmpty(t, s.Err())
	assert.Empty(t, s.WeekAssignments(testWeek))
}

func TestAssignmentSubscriptionPush(t *testing.T) {
	adapter := newFakeAssignmentAdapter()
	broker := realtime.NewMemoryBroker()
	s := NewAssignmentStore(adapter, broker, nil)
	ctx := context.Background()

	s.SubscribeToWeek(ctx, testWeek)
	defer s.Close()

	lukas := "lukas"
	adapter.mu.Lock()
	adapter.cells[cellKey{week: testWeek, day: models.Friday, slot: "16-18"}] = &lukas
	adapter.mu.Unlock()
	require.NoError(t, broker.Publish(ctx, realtime.Event{Table: realtime.TableAssignments, WeekStart: testWeek}))

	assignments := s.WeekAssignments(testWeek)
	require.Len(t, assignments, 1)
	assert.Equal(t, models.Friday, assignments[0].Day)
}

func TestAssignmentSubscribeToWeekBoundsListenerCount(t *testing.T) {
	adapter := newFakeAssignmentAdapter()
	broker := realtime.NewMemoryBroker()
	s := NewAssignmentStore(adapter, broker, nil)
	ctx := context.Background()

	weeks := consecutiveWeeks(t, 3*maxWeekSubs)
	for _, w := range weeks {
		s.SubscribeToWeek(ctx, w)
	}

	s.mu.Lock()
	active := s.subs.len()
	s.mu.Unlock()
	assert.Equal(t, maxWeekSubs, active)

	// Evicted weeks stop refreshing; recent ones still do.
	anna := "anna"
	adapter.mu.Lock()
	adapter.cells[cellKey{week: weeks[0], day: models.Monday, slot: "08-10"}] = &anna
	adapter.cells[cellKey{week: weeks[len(weeks)-1], day: models.Monday, slot: "08-10"}] = &anna
	adapter.mu.Unlock()

	require.NoError(t, broker.Publish(ctx, realtime.Event{Table: realtime.TableAssignments, WeekStart: weeks[0]}))
	assert.Empty(t, s.WeekAssignments(weeks[0]))

	require.NoError(t, broker.Publish(ctx, realtime.Event{Table: realtime.TableAssignments, WeekStart: weeks[len(weeks)-1]}))
	assert.Len(t, s.WeekAssignments(weeks[len(weeks)-1]), 1)
}
