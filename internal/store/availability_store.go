package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/lehrteam/stundenplan-api/internal/models"
	"github.com/lehrteam/stundenplan-api/internal/realtime"
)

type availabilityAdapter interface {
	ListByWeek(ctx context.Context, weekStart string) ([]models.Availability, error)
	Toggle(ctx context.Context, personID, weekStart string, day models.Weekday, slotID string) (bool, error)
	ReplaceWeek(ctx context.Context, personID, weekStart string, entries []models.AvailabilityEntry) error
}

// AvailabilityStore mirrors availability marks per week. The loading and
// error fields are coarse, shared across all weeks.
type AvailabilityStore struct {
	adapter availabilityAdapter
	broker  realtime.Broker
	logger  *zap.Logger

	mu      sync.Mutex
	byWeek  map[string][]models.Availability
	version uint64
	loading bool
	lastErr string
	subs    *weekSubs
}

// NewAvailabilityStore creates an empty availability store.
func NewAvailabilityStore(adapter availabilityAdapter, broker realtime.Broker, logger *zap.Logger) *AvailabilityStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityStore{
		adapter: adapter,
		broker:  broker,
		logger:  logger,
		byWeek:  make(map[string][]models.Availability),
		subs:    newWeekSubs(),
	}
}

// WeekAvailability returns a copy of the marks cached for a week, empty
// when the week was never loaded.
func (s *AvailabilityStore) WeekAvailability(weekStart string) []models.Availability {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.byWeek[weekStart]
	out := make([]models.Availability, len(current))
	copy(out, current)
	return out
}

// Version increments on every successful snapshot replacement, letting
// derived views detect change without comparing slice contents.
func (s *AvailabilityStore) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Loading reports whether any week load is in flight.
func (s *AvailabilityStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last user-facing error message, empty when healthy.
func (s *AvailabilityStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// LoadWeek replaces one week's snapshot from the remote store. Failures
// set the error state instead of propagating; the previous snapshot is
// kept.
func (s *AvailabilityStore) LoadWeek(ctx context.Context, weekStart string) {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	marks, err := s.adapter.ListByWeek(ctx, weekStart)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.logger.Warn("load availability failed", zap.String("week", weekStart), zap.Error(err))
		s.lastErr = "Failed to load availability. Please try again."
		return
	}
	s.byWeek[weekStart] = marks
	s.version++
}

// Toggle flips one mark and reloads the whole week on success. The feed
// subscription may reload the same week concurrently; the duplicate
// refresh is redundant but harmless.
func (s *AvailabilityStore) Toggle(ctx context.Context, personID, weekStart string, day models.Weekday, slotID string) {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()

	if _, err := s.adapter.Toggle(ctx, personID, weekStart, day, slotID); err != nil {
		s.logger.Warn("toggle availability failed",
			zap.String("person", personID), zap.String("week", weekStart), zap.Error(err))
		s.mu.Lock()
		s.lastErr = "Failed to update availability. Please try again."
		s.mu.Unlock()
		return
	}

	s.LoadWeek(ctx, weekStart)
}

// ReplaceWeek swaps out a person's marks for one week and reloads it.
func (s *AvailabilityStore) ReplaceWeek(ctx context.Context, personID, weekStart string, entries []models.AvailabilityEntry) {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()

	if err := s.adapter.ReplaceWeek(ctx, personID, weekStart, entries); err != nil {
		s.logger.Warn("replace week availability failed",
			zap.String("person", personID), zap.String("week", weekStart), zap.Error(err))
		s.mu.Lock()
		s.lastErr = "Failed to save availability. Please try again."
		s.mu.Unlock()
		return
	}

	s.LoadWeek(ctx, weekStart)
}

// SubscribeToWeek starts following the week on the change feed. A second
// call for an already-subscribed week only refreshes its eviction rank;
// once more than maxWeekSubs weeks are followed, the least recently
// requested one is released.
func (s *AvailabilityStore) SubscribeToWeek(ctx context.Context, weekStart string) {
	s.mu.Lock()
	if s.subs.has(weekStart) {
		s.subs.touch(weekStart)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	sub, err := s.broker.Subscribe(ctx, realtime.TableAvailability, weekStart, func(realtime.Event) {
		refetchCtx, cancel := context.WithTimeout(context.Background(), refetchTimeout)
		defer cancel()
		marks, err := s.adapter.ListByWeek(refetchCtx, weekStart)
		if err != nil {
			s.logger.Warn("refetch availability failed", zap.String("week", weekStart), zap.Error(err))
			return
		}
		s.mu.Lock()
		s.byWeek[weekStart] = marks
		s.version++
		s.mu.Unlock()
	})
	if err != nil {
		s.logger.Warn("subscribe availability failed", zap.String("week", weekStart), zap.Error(err))
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
func (s *AvailabilityStore) UnsubscribeFromWeek(weekStart string) {
	s.mu.Lock()
	sub := s.subs.remove(weekStart)
	s.mu.Unlock()
	if sub != nil {
		sub.Unsubscribe()
	}
}

// Close releases every active subscription.
func (s *AvailabilityStore) Close() {
	s.mu.Lock()
	subs := s.subs.drain()
	s.mu.Unlock()
	for _, sub := range subs {
		sub.Unsubscribe()
	}
}
