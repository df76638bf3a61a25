package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/lehrteam/stundenplan-api/internal/realtime"
	appErrors "github.com/lehrteam/stundenplan-api/pkg/errors"
	"github.com/lehrteam/stundenplan-api/pkg/response"
)

type feedCounter interface {
	IncFeedEvent(table string)
}

// EventsHandler forwards week-change events to browsers over SSE so they
// can refetch the affected week.
type EventsHandler struct {
	broker  realtime.Broker
	metrics feedCounter
}

// NewEventsHandler constructs handler.
func NewEventsHandler(broker realtime.Broker, metrics feedCounter) *EventsHandler {
	return &EventsHandler{broker: broker, metrics: metrics}
}

// StreamWeek godoc
// @Summary Stream change events for a week
// @Tags Events
// @Produce text/event-stream
// @Param week path string true "Week key (Monday ISO date)"
// @Success 200 {string} string "SSE stream"
// @Router /weeks/{week}/events [get]
func (h *EventsHandler) StreamWeek(c *gin.Context) {
	weekStart, ok := weekParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	events := make(chan realtime.Event, 16)
	forward := func(event realtime.Event) {
		// Drop rather than block on a slow client; the event only says
		// "refetch", so losing one behind a queued one is harmless.
		select {
		case events <- event:
		default:
		}
	}

	filters := []struct {
		table string
		week  string
	}{
		{realtime.TableAvailability, weekStart},
		{realtime.TableAssignments, weekStart},
		{realtime.TablePeople, ""},
	}

	var subs []realtime.Subscription
	defer func() {
		for _, sub := range subs {
			sub.Unsubscribe()
		}
	}()
	for _, filter := range filters {
		sub, err := h.broker.Subscribe(ctx, filter.table, filter.week, forward)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to subscribe to change feed"))
			return
		}
		subs = append(subs, sub)
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case event := <-events:
			if h.metrics != nil {
				h.metrics.IncFeedEvent(event.Table)
			}
			c.SSEvent("change", event)
			return true
		}
	})
}
