package realtime

import (
	"sync"

	"go.uber.org/zap"
)

// subscriberBuffer bounds how many undelivered events a slow client may hold
// before further publishes to it are dropped.
const subscriberBuffer = 32

// Subscriber is one connected client's view of the hub. Events arrive on C
// until Close is called; a full buffer drops events rather than blocking the
// publisher.
type Subscriber struct {
	C      chan Event
	topics []string
	hub    *Hub
	once   sync.Once
}

// Close detaches the subscriber from all its topics and closes C.
func (s *Subscriber) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
		close(s.C)
	})
}

// Hub is the in-process publish/subscribe channel. Delivery is fire-and-forget
// and at most once per publish: clients not subscribed at publish time simply
// miss the event, and reconnecting does not replay history.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*Subscriber]struct{}
	logger *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		topics: make(map[string]map[*Subscriber]struct{}),
		logger: logger,
	}
}

// Subscribe registers a new subscriber on the given topics.
func (h *Hub) Subscribe(topics ...string) *Subscriber {
	sub := &Subscriber{
		C:      make(chan Event, subscriberBuffer),
		topics: topics,
		hub:    h,
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, t := range topics {
		set, ok := h.topics[t]
		if !ok {
			set = make(map[*Subscriber]struct{})
			h.topics[t] = set
		}
		set[sub] = struct{}{}
	}
	return sub
}

// Publish fans an event out to every current subscriber of the topic without
// blocking. A subscriber whose buffer is full loses the event; the state it
// describes is recoverable by re-fetching, so dropping beats stalling a
// transition.
func (h *Hub) Publish(topic string, evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.topics[topic] {
		select {
		case sub.C <- evt:
		default:
			h.logger.Warn("dropping event for slow subscriber",
				zap.String("topic", topic),
				zap.String("kind", evt.Kind))
		}
	}
}

func (h *Hub) remove(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, t := range sub.topics {
		if set, ok := h.topics[t]; ok {
			delete(set, sub)
			if len(set) == 0 {
				delete(h.topics, t)
			}
		}
	}
}
