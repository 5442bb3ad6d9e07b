// Package notifier fans route and import-history change events out to
// connected subscribers. Events carry committed state only: services publish
// after a successful transaction commit, never before.
package notifier

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/models"
)

// Topic selects which event stream a subscriber receives.
type Topic string

const (
	TopicRoutes  Topic = "routes"
	TopicImports Topic = "imports"
)

// Envelope is the wire form of every pushed event.
type Envelope struct {
	Topic   Topic `json:"topic"`
	Payload any   `json:"payload"`
}

// Subscriber is one registered event consumer. Its channel is buffered; a
// consumer that stops draining loses events instead of stalling the hub.
type Subscriber struct {
	id     uuid.UUID
	topics map[Topic]struct{}
	ch     chan Envelope
}

// C returns the subscriber's event channel. It is closed on Unsubscribe and
// on hub shutdown.
func (s *Subscriber) C() <-chan Envelope {
	return s.ch
}

const (
	broadcastBuffer  = 256
	subscriberBuffer = 16
)

// Hub is the broadcast fan-out. Publishing never blocks the caller.
type Hub struct {
	logger *logger.Logger

	mu          sync.Mutex
	subscribers map[uuid.UUID]*Subscriber
	closed      bool

	broadcast chan Envelope
}

// NewHub creates a hub. Run must be started for events to flow.
func NewHub(logger *logger.Logger) *Hub {
	logger.Debug().Msg("creating notifier hub")
	return &Hub{
		logger:      logger,
		subscribers: make(map[uuid.UUID]*Subscriber),
		broadcast:   make(chan Envelope, broadcastBuffer),
	}
}

// Run dispatches broadcast events to subscribers until ctx is cancelled,
// then closes every subscriber channel.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return ctx.Err()
		case envelope := <-h.broadcast:
			h.dispatch(envelope)
		}
	}
}

// Subscribe registers a consumer for the given topics. No topics means all
// topics.
func (h *Hub) Subscribe(topics ...Topic) *Subscriber {
	sub := &Subscriber{
		id:     uuid.New(),
		topics: make(map[Topic]struct{}, len(topics)),
		ch:     make(chan Envelope, subscriberBuffer),
	}
	for _, topic := range topics {
		sub.topics[topic] = struct{}{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.ch)
		return sub
	}
	h.subscribers[sub.id] = sub

	h.logger.Debug().
		Str("func", "Hub.Subscribe").
		Str("subscriber_id", sub.id.String()).
		Int("total", len(h.subscribers)).
		Msg("subscriber registered")
	return sub
}

// Unsubscribe removes a consumer and closes its channel. Safe to call twice.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subscribers[sub.id]; !ok {
		return
	}
	delete(h.subscribers, sub.id)
	close(sub.ch)

	h.logger.Debug().
		Str("func", "Hub.Unsubscribe").
		Str("subscriber_id", sub.id.String()).
		Int("total", len(h.subscribers)).
		Msg("subscriber removed")
}

// PublishRouteChange enqueues a committed route mutation event.
func (h *Hub) PublishRouteChange(event models.RouteChangeEvent) {
	h.publish(Envelope{Topic: TopicRoutes, Payload: event})
}

// PublishImportHistory enqueues a terminal import-history event.
func (h *Hub) PublishImportHistory(event models.ImportHistoryEvent) {
	h.publish(Envelope{Topic: TopicImports, Payload: event})
}

func (h *Hub) publish(envelope Envelope) {
	select {
	case h.broadcast <- envelope:
	default:
		h.logger.Warn().
			Str("func", "Hub.publish").
			Str("topic", string(envelope.Topic)).
			Msg("broadcast channel full, dropping event")
	}
}

func (h *Hub) dispatch(envelope Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subscribers {
		if len(sub.topics) > 0 {
			if _, ok := sub.topics[envelope.Topic]; !ok {
				continue
			}
		}
		select {
		case sub.ch <- envelope:
		default:
			h.logger.Warn().
				Str("func", "Hub.dispatch").
				Str("subscriber_id", sub.id.String()).
				Str("topic", string(envelope.Topic)).
				Msg("subscriber queue full, dropping event")
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subscribers {
		delete(h.subscribers, id)
		close(sub.ch)
	}
	h.logger.Info().Str("func", "Hub.shutdown").Msg("notifier hub stopped")
}
