package repository

import (
	"context"
	"sync"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/lehrteam/stundenplan-api/internal/realtime"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

// recordingBroker captures the events a repository publishes.
type recordingBroker struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (b *recordingBroker) Publish(_ context.Context, event realtime.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

func (b *recordingBroker) Subscribe(context.Context, string, string, func(realtime.Event)) (realtime.Subscription, error) {
	return noopSubscription{}, nil
}

func (b *recordingBroker) published() []realtime.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]realtime.Event, len(b.events))
	copy(out, b.events)
	return out
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}
