package realtime

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func recv(t *testing.T, c <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-c:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestPublishFansOutToTopicSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a := hub.Subscribe(UserTopic("u1"))
	b := hub.Subscribe(UserTopic("u1"))
	other := hub.Subscribe(UserTopic("u2"))
	defer a.Close()
	defer b.Close()
	defer other.Close()

	hub.Publish(UserTopic("u1"), Event{Kind: EventNotification})

	if ev := recv(t, a.C); ev.Kind != EventNotification {
		t.Errorf("a got %q", ev.Kind)
	}
	if ev := recv(t, b.C); ev.Kind != EventNotification {
		t.Errorf("b got %q", ev.Kind)
	}
	select {
	case ev := <-other.C:
		t.Errorf("u2 subscriber received %q for u1's topic", ev.Kind)
	default:
	}
}

func TestNoReplayForLateSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hub.Publish(UserTopic("u1"), Event{Kind: EventNotification})

	sub := hub.Subscribe(UserTopic("u1"))
	defer sub.Close()

	select {
	case ev := <-sub.C:
		t.Errorf("late subscriber received replayed event %q", ev.Kind)
	default:
	}
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub(zap.NewNop())
	sub := hub.Subscribe(UserTopic("u1"))
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Nobody drains sub.C: once its buffer fills, publishes must drop
		// rather than stall.
		for i := 0; i < subscriberBuffer*3; i++ {
			hub.Publish(UserTopic("u1"), Event{Kind: EventMessage})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
	if got := len(sub.C); got != subscriberBuffer {
		t.Errorf("buffered events = %d, want %d", got, subscriberBuffer)
	}
}

func TestCloseDetachesSubscriber(t *testing.T) {
	hub := NewHub(zap.NewNop())
	sub := hub.Subscribe(UserTopic("u1"))
	sub.Close()
	sub.Close() // idempotent

	// Publishing after close must not panic on the closed channel.
	hub.Publish(UserTopic("u1"), Event{Kind: EventMessage})
}

func TestSubscribeMultipleTopics(t *testing.T) {
	hub := NewHub(zap.NewNop())
	sub := hub.Subscribe(UserTopic("u1"), ConversationTopic("u1", "u2"))
	defer sub.Close()

	hub.Publish(UserTopic("u1"), Event{Kind: EventNotification})
	hub.Publish(ConversationTopic("u2", "u1"), Event{Kind: EventMessage})

	kinds := map[string]bool{}
	kinds[recv(t, sub.C).Kind] = true
	kinds[recv(t, sub.C).Kind] = true
	if !kinds[EventNotification] || !kinds[EventMessage] {
		t.Errorf("got kinds %v, want both notification and message", kinds)
	}
}

func TestConversationTopicIsOrderIndependent(t *testing.T) {
	if ConversationTopic("bob", "alice") != ConversationTopic("alice", "bob") {
		t.Error("conversation topic must not depend on argument order")
	}
	if ConversationTopic("alice", "bob") != "room:alice-bob" {
		t.Errorf("topic = %q, want room:alice-bob", ConversationTopic("alice", "bob"))
	}
}
