package store

import "github.com/lehrteam/stundenplan-api/internal/realtime"

// maxWeekSubs bounds how many per-week feed subscriptions a store keeps.
const maxWeekSubs = 8

// weekSubs tracks feed subscriptions in access order. Navigating across
// many weeks evicts the least recently used listener instead of
// accumulating one per week ever visited. Not safe for concurrent use;
// callers hold their store mutex.
type weekSubs struct {
	byWeek map[string]realtime.Subscription
	order  []string
}

func newWeekSubs() *weekSubs {
	return &weekSubs{byWeek: make(map[string]realtime.Subscription)}
}

func (w *weekSubs) has(weekStart string) bool {
	_, ok := w.byWeek[weekStart]
	return ok
}

func (w *weekSubs) len() int {
	return len(w.byWeek)
}

// touch marks the week as most recently used.
func (w *weekSubs) touch(weekStart string) {
	for i, week := range w.order {
		if week == weekStart {
			w.order = append(append(w.order[:i], w.order[i+1:]...), weekStart)
			return
		}
	}
}

// add registers a subscription and returns the ones evicted over the cap,
// oldest first. The caller releases them outside the lock.
func (w *weekSubs) add(weekStart string, sub realtime.Subscription) []realtime.Subscription {
	w.byWeek[weekStart] = sub
	w.order = append(w.order, weekStart)

	var evicted []realtime.Subscription
	for len(w.order) > maxWeekSubs {
		oldest := w.order[0]
		w.order = w.order[1:]
		if old := w.byWeek[oldest]; old != nil {
			evicted = append(evicted, old)
		}
		delete(w.byWeek, oldest)
	}
	return evicted
}

// remove detaches one week's subscription, nil when absent.
func (w *weekSubs) remove(weekStart string) realtime.Subscription {
	sub := w.byWeek[weekStart]
	delete(w.byWeek, weekStart)
	for i, week := range w.order {
		if week == weekStart {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return sub
}

// drain detaches every subscription.
func (w *weekSubs) drain() []realtime.Subscription {
	subs := make([]realtime.Subscription, 0, len(w.byWeek))
	for _, week := range w.order {
		if sub := w.byWeek[week]; sub != nil {
			subs = append(subs, sub)
		}
	}
	w.byWeek = make(map[string]realtime.Subscription)
	w.order = nil
	return subs
}
