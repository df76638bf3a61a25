package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "planner"

// RedisBroker distributes week-change events over Redis pub/sub so that
// every running instance (and every connected browser, via SSE) observes
// mutations made elsewhere.
type RedisBroker struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisBroker creates a broker on an established Redis client.
func NewRedisBroker(client *redis.Client, logger *zap.Logger) *RedisBroker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisBroker{client: client, logger: logger}
}

func channelName(table, weekStart string) string {
	if weekStart == "" {
		return fmt.Sprintf("%s:%s", channelPrefix, table)
	}
	return fmt.Sprintf("%s:%s:%s", channelPrefix, table, weekStart)
}

// Publish announces an event on the channel for its table/week filter.
func (b *RedisBroker) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal feed event: %w", err)
	}
	if err := b.client.Publish(ctx, channelName(event.Table, event.WeekStart), payload).Err(); err != nil {
		return fmt.Errorf("publish feed event: %w", err)
	}
	return nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	done   chan struct{}
}

func (s *redisSubscription) Unsubscribe() {
	_ = s.pubsub.Close()
	<-s.done
}

// Subscribe listens for events matching the table/week filter and invokes
// fn for each one. The returned handle must be released when the consumer
// goes away, or listeners accumulate across week navigation.
func (b *RedisBroker) Subscribe(ctx context.Context, table, weekStart string, fn func(Event)) (Subscription, error) {
	pubsub := b.client.Subscribe(ctx, channelName(table, weekStart))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", channelName(table, weekStart), err)
	}

	sub := &redisSubscription{pubsub: pubsub, done: make(chan struct{})}

	go func() {
		defer close(sub.done)
		for msg := range pubsub.Channel() {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warn("malformed feed event", zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			fn(event)
		}
	}()

	return sub, nil
}
