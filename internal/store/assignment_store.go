package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/lehrteam/stundenplan-api/internal/models"
	"github.com/lehrteam/stundenplan-api/internal/realtime"
)

type assignmentAdapter interface {
	ListByWeek(ctx context.Context, weekStart string) ([]models.Assignment, error)
	SetPrimary(ctx context.Context, weekStart string, day models.Weekday, slotID string, primaryPersonID *string) error
}

// AssignmentStore mirrors primary assignments per week.
type AssignmentStore struct {
	adapter assignmentAdapter
	broker  realtime.Broker
	logger  *zap.Logger

	mu      sync.Mutex
	byWeek  map[string][]models.Assignment
	version uint64
	loading bool
	lastErr string
	subs    *weekSubs
}

// NewAssignmentStore creates an empty assignment store.
func NewAssignmentStore(adapter assignmentAdapter, broker realtime.Broker, logger *zap.Logger) *AssignmentStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentStore{
		adapter: adapter,
		broker:  broker,
		logger:  logger,
		byWeek:  make(map[string][]models.Assignment),
		subs:    newWeekSubs(),
	}
}

// WeekAssignments returns a copy of the assignments cached for a week.
func (s *AssignmentStore) WeekAssignments(weekStart string) []models.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.byWeek[weekStart]
	out := make([]models.Assignment, len(current))
	copy(out, current)
	return out
}

// Version increments on every successful snapshot replacement.
func (s *AssignmentStore) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Loading reports whether any week load is in flight.
func (s *AssignmentStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last user-facing error message, empty when healthy.
func (s *AssignmentStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// LoadWeek replaces one week's snapshot from the remote store.
func (s *AssignmentStore) LoadWeek(ctx context.Context, weekStart string) {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	assignments, err := s.adapter.ListByWeek(ctx, weekStart)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.logger.Warn("load assignments failed", zap.String("week", weekStart), zap.Error(err))
		s.lastErr = "Failed to load assignments. Please try again."
		return
	}
	s.byWeek[weekStart] = assignments
	s.version++
}

// SetPrimary upserts the designated person for one cell and reloads the
// week on success.
func (s *AssignmentStore) SetPrimary(ctx context.Context, weekStart string, day models.Weekday, slotID string, primaryPersonID *string) {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()

	if err := s.adapter.SetPrimary(ctx, weekStart, day, slotID, primaryPersonID); err != nil {
		s.logger.Warn("set primary assignment failed",
			zap.String("week", weekStart), zap.String("slot", slotID), zap.Error(err))
		s.mu.Lock()
		s.lastErr = "Failed to update assignment. Please try again."
		s.mu.Unlock()
		return
	}

	s.LoadWeek(ctx, weekStart)
}

// SubscribeToWeek starts following the week on the change feed. A repeat
// call refreshes the week's eviction rank; beyond maxWeekSubs followed
// weeks the least recently requested one is released.
func (s *AssignmentStore) SubscribeToWeek(ctx context.Context, weekStart string) {
	s.mu.Lock()
	if s.subs.has(weekStart) {
		s.subs.touch(weekStart)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	sub, err := s.broker.Subscribe(ctx, realtime.TableAssignments, weekStart, func(realtime.Event) {
		refetchCtx, cancel := context.WithTimeout(context.Background(), refetchTimeout)
		defer cancel()
		assignments, err := s.adapter.ListByWeek(refetchCtx, weekStart)
		if err != nil {
			s.logger.Warn("refetch assignments failed", zap.String("week", weekStart), zap.Error(err))
			return
		}
		s.mu.Lock()
		s.byWeek[weekStart] = assignments
		s.version++
		s.mu.Unlock()
	})
	if err != nil {
		s.logger.Warn("subscribe assignments failed", zap.String("week", weekStart), zap.Error(err))
		return
	}

	s.mu.Lock()
	if s.subs.has(weekStart) {
		s.subs.touch(weekStart)
		s.mu.Unlock()
		sub.Unsubscribe()
		return
	}
	evicted := s.subs.add(weekStart, sub)
	s.mu.Unlock()
	for _, old := range evicted {
		old.Unsubscribe()
	}
}

// UnsubscribeFromWeek releases the week's feed subscription. Safe to
// call when not subscribed.
func (s *AssignmentStore) UnsubscribeFromWeek(weekStart string) {
	s.mu.Lock()
	sub := s.subs.remove(weekStart)
	s.mu.Unlock()
	if sub != nil {
		sub.Unsubscribe()
	}
}

// Close releases every active subscription.
func (s *AssignmentStore) Close() {
	s.mu.Lock()
	subs := s.subs.drain()
	s.mu.Unlock()
	for _, sub := range subs {
		sub.Unsubscribe()
	}
}
