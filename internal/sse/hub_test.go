package sse

import (
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/marketledger-backend/internal/logger"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return NewHub(log)
}

func TestBroadcastReachesSubscribedChannelOnly(t *testing.T) {
	hub := newTestHub(t)

	subscribed := hub.NewClient(uuid.New())
	hub.AddChannel(subscribed, ChannelMarket)
	other := hub.NewClient(uuid.New())
	hub.AddChannel(other, "elsewhere")

	hub.Broadcast(Message{Channel: ChannelMarket, Event: EventProductListed})

	select {
	case msg := <-subscribed.Outbound:
		if msg.Event != EventProductListed {
			t.Fatalf("event: want=%s got=%s", EventProductListed, msg.Event)
		}
	default:
		t.Fatalf("subscribed client received nothing")
	}
	select {
	case msg := <-other.Outbound:
		t.Fatalf("unsubscribed client received %v", msg)
	default:
	}
}

func TestBroadcastAfterRemoveClient(t *testing.T) {
	hub := newTestHub(t)

	client := hub.NewClient(uuid.New())
	hub.AddChannel(client, ChannelMarket)
	hub.RemoveClient(client)

	hub.Broadcast(Message{Channel: ChannelMarket, Event: EventProductPurchased})

	select {
	case msg := <-client.Outbound:
		t.Fatalf("removed client received %v", msg)
	default:
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := newTestHub(t)

	client := hub.NewClient(uuid.New())
	hub.AddChannel(client, ChannelMarket)

	// Outbound buffers 10 messages; the rest must be dropped without blocking.
	for i := 0; i < 15; i++ {
		hub.Broadcast(Message{Channel: ChannelMarket, Event: EventProductListed})
	}
	if got := len(client.Outbound); got != 10 {
		t.Fatalf("buffered messages: want=10 got=%d", got)
	}
}
