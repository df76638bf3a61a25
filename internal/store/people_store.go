// Package store holds the in-memory week snapshots served to the view
// layer. Stores are constructed containers wired at the composition
// root; they mirror the remote tables via write-then-reload mutations
// and replace whole snapshots when the change feed fires.
package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lehrteam/stundenplan-api/internal/models"
	"github.com/lehrteam/stundenplan-api/internal/realtime"
)

const refetchTimeout = 5 * time.Second

type peopleAdapter interface {
	List(ctx context.Context) ([]models.Person, error)
	Create(ctx context.Context, person *models.Person) error
}

// PeopleStore mirrors the global roster. Unlike the week stores it has a
// single unpartitioned list.
type PeopleStore struct {
	adapter peopleAdapter
	broker  realtime.Broker
	logger  *zap.Logger

	mu      sync.Mutex
	people  []models.Person
	loading bool
	lastErr string
	sub     realtime.Subscription
}

// NewPeopleStore creates an empty roster store.
func NewPeopleStore(adapter peopleAdapter, broker realtime.Broker, logger *zap.Logger) *PeopleStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PeopleStore{adapter: adapter, broker: broker, logger: logger}
}

// People returns a copy of the current roster snapshot.
func (s *PeopleStore) People() []models.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Person, len(s.people))
	copy(out, s.people)
	return out
}

// Loading reports whether a load is in flight.
func (s *PeopleStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last user-facing error message, empty when healthy.
func (s *PeopleStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Load replaces the roster snapshot from the remote store. Failures set
// the error state instead of propagating.
func (s *PeopleStore) Load(ctx context.Context) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	people, err := s.adapter.List(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.logger.Warn("load people failed", zap.Error(err))
		s.people = nil
		s.lastErr = "Failed to load people. Please check your connection."
		return
	}
	s.people = people
}

// AddPerson trims the name, assigns the next palette color and creates
// the person. The new entry is appended optimistically; the feed event
// triggers the authoritative reload.
func (s *PeopleStore) AddPerson(ctx context.Context, name string) *models.Person {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil
	}

	s.mu.Lock()
	color := pickNextColor(s.people)
	s.lastErr = ""
	s.mu.Unlock()

	person := &models.Person{Name: trimmed, Color: color}
	if err := s.adapter.Create(ctx, person); err != nil {
		s.logger.Warn("add person failed", zap.String("name", trimmed), zap.Error(err))
		s.mu.Lock()
		s.lastErr = "Failed to add person. Please try again."
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.people = append(s.people, *person)
	s.mu.Unlock()
	return person
}

// Subscribe starts following roster changes on the feed. Idempotent.
func (s *PeopleStore) Subscribe(ctx context.Context) {
	s.mu.Lock()
	if s.sub != nil {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	sub, err := s.broker.Subscribe(ctx, realtime.TablePeople, "", func(realtime.Event) {
		refetchCtx, cancel := context.WithTimeout(context.Background(), refetchTimeout)
		defer cancel()
		people, err := s.adapter.List(refetchCtx)
		if err != nil {
			s.logger.Warn("refetch people failed", zap.Error(err))
			return
		}
		s.mu.Lock()
		s.people = people
		s.mu.Unlock()
	})
	if err != nil {
		s.logger.Warn("subscribe people failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	if s.sub != nil {
		s.mu.Unlock()
		sub.Unsubscribe()
		return
	}
	s.sub = sub
	s.mu.Unlock()
}

// Unsubscribe releases the feed subscription. Safe when not subscribed.
func (s *PeopleStore) Unsubscribe() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()
	if sub != nil {
		sub.Unsubscribe()
	}
}

// pickNextColor prefers an unused palette entry and falls back to a
// round-robin over the palette once every color is taken.
func pickNextColor(existing []models.Person) string {
	used := make(map[string]struct{}, len(existing))
	for _, person := range existing {
		used[person.Color] = struct{}{}
	}
	for _, color := range models.ColorPalette {
		if _, taken := used[color]; !taken {
			return color
		}
	}
	return models.ColorPalette[len(existing)%len(models.ColorPalette)]
}
