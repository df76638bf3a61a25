// Package realtime carries week-change notifications between clients.
// Writers publish a small table+week event after every committed
// mutation; subscribers refetch the affected week rather than applying
// incremental patches. A week's data is bounded (5 days x 6 slots), so
// the full refetch stays cheap and sidesteps merge logic entirely.
package realtime

import "context"

// Resource tables announced on the feed.
const (
	TablePeople       = "people"
	TableAvailability = "availability"
	TableAssignments  = "assignments"
)

// Event announces that rows of one table changed for one week. People
// events carry no week key; the roster is global.
type Event struct {
	Table     string `json:"table"`
	WeekStart string `json:"week_start,omitempty"`
}

// Subscription is a handle to an active feed listener.
type Subscription interface {
	Unsubscribe()
}

// Broker is the change feed contract. Subscribe filters by table and
// week key; a second subscription for the same filter is independent of
// the first.
type Broker interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(ctx context.Context, table, weekStart string, fn func(Event)) (Subscription, error)
}
