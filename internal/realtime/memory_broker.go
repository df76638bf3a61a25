package realtime

import (
	"context"
	"sync"
)

// MemoryBroker is an in-process Broker for tests and single-instance
// development runs. Delivery is synchronous within Publish.
type MemoryBroker struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]func(Event)
}

// NewMemoryBroker creates an empty in-process broker.
func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[string]map[int]func(Event))}
}

// Publish delivers the event to every subscriber of its filter.
func (b *MemoryBroker) Publish(_ context.Context, event Event) error {
	b.mu.Lock()
	var fns []func(Event)
	for _, fn := range b.subs[channelName(event.Table, event.WeekStart)] {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
	return nil
}

type memorySubscription struct {
	broker  *MemoryBroker
	channel string
	id      int
}

func (s *memorySubscription) Unsubscribe() {
	s.broker.mu.Lock()
	defer s.broker.mu.Unlock()
	delete(s.broker.subs[s.channel], s.id)
}

// Subscribe registers fn for the table/week filter.
func (b *MemoryBroker) Subscribe(_ context.Context, table, weekStart string, fn func(Event)) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	channel := channelName(table, weekStart)
	if b.subs[channel] == nil {
		b.subs[channel] = make(map[int]func(Event))
	}
	b.nextID++
	b.subs[channel][b.nextID] = fn

	return &memorySubscription{broker: b, channel: channel, id: b.nextID}, nil
}
