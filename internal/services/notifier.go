package services

import (
	"context"

	"github.com/yungbote/genomelens-backend/internal/logger"
	"github.com/yungbote/genomelens-backend/internal/sse"
)

// EventNotifier pushes SSE messages to the local hub and, when a bus is
// configured, to the other backend instances. Delivery is best effort and
// never fails the caller.
type EventNotifier struct {
	log *logger.Logger
	hub *sse.SSEHub
	bus sse.Bus
}

func NewEventNotifier(log *logger.Logger, hub *sse.SSEHub, bus sse.Bus) *EventNotifier {
	return &EventNotifier{
		log: log.With("component", "EventNotifier"),
		hub: hub,
		bus: bus,
	}
}

func (n *EventNotifier) Publish(ctx context.Context, msg sse.SSEMessage) {
	if n == nil {
		return
	}
	if n.hub != nil {
		n.hub.Broadcast(msg)
	}
	if n.bus != nil {
		if err := n.bus.Publish(ctx, msg); err != nil {
			n.log.Warn("Failed to publish bus message", "channel", msg.Channel, "event", msg.Event, "error", err)
		}
	}
}
