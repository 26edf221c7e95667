package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/marketledger-backend/internal/logger"
)

type Event string

const (
	EventProductListed    Event = "ProductListed"
	EventProductPurchased Event = "ProductPurchased"
)

// ChannelMarket carries the public catalog/purchase notifications.
const ChannelMarket = "market"

type Message struct {
	Channel string `json:"channel"`
	Event   Event  `json:"event"`
	Data    any    `json:"data,omitempty"`
}

type Client struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Channels map[string]bool
	Outbound chan Message
	done     chan struct{}
	Logger   *logger.Logger
}

type Hub struct {
	mu            sync.RWMutex
	logger        *logger.Logger
	subscriptions map[string]map[*Client]bool
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		logger:        log.With("component", "SSEHub"),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

func (hub *Hub) NewClient(userID uuid.UUID) *Client {
	return &Client{
		ID:       uuid.New(),
		UserID:   userID,
		Channels: make(map[string]bool),
		Outbound: make(chan Message, 10),
		done:     make(chan struct{}),
		Logger:   hub.logger,
	}
}

func (hub *Hub) AddChannel(client *Client, channel string) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	channel = strings.TrimSpace(channel)
	if channel == "" {
		return
	}

	client.Channels[channel] = true

	clients, exists := hub.subscriptions[channel]
	if !exists {
		clients = make(map[*Client]bool)
		hub.subscriptions[channel] = clients
	}
	clients[client] = true

	hub.logger.Debug("SSE client subscribed", "clientID", client.ID, "channel", channel)
}

func (hub *Hub) RemoveChannel(client *Client, channel string) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	channel = strings.TrimSpace(channel)
	if channel == "" {
		return
	}
	delete(client.Channels, channel)

	if subMap, ok := hub.subscriptions[channel]; ok {
		delete(subMap, client)
		if len(subMap) == 0 {
			delete(hub.subscriptions, channel)
		}
	}
	hub.logger.Debug("SSE client unsubscribed from channel", "clientID", client.ID, "channel", channel)
}

func (hub *Hub) RemoveClient(client *Client) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	for ch := range client.Channels {
		if subMap, ok := hub.subscriptions[ch]; ok {
			delete(subMap, client)
			if len(subMap) == 0 {
				delete(hub.subscriptions, ch)
			}
		}
	}
	client.Channels = make(map[string]bool)
	hub.logger.Debug("SSE client unsubscribed from all channels", "clientID", client.ID)
}

func (hub *Hub) Broadcast(msg Message) {
	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if msg.Channel == "" {
		return
	}
	clientsMap, ok := hub.subscriptions[msg.Channel]
	if !ok {
		return
	}
	for c := range clientsMap {
		select {
		case c.Outbound <- msg:
		default:
			hub.logger.Warn("Dropping SSE message; outbound buffer full", "clientID", c.ID)
		}
	}
}

func (hub *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request, client *Client) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported!", http.StatusInternalServerError)
		return
	}
	ctx := r.Context()

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			hub.logger.Debug("SSE client context done", "clientID", client.ID, "err", ctx.Err())
			return
		case <-client.done:
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case msg := <-client.Outbound:
			jsonBytes, err := json.Marshal(msg)
			if err != nil {
				hub.logger.Warn("Failed to marshal SSE message", "error", err)
				continue
			}
			_, _ = fmt.Fprintf(w, "event: message\n")
			_, _ = fmt.Fprintf(w, "data: %s\n\n", string(jsonBytes))
			flusher.Flush()
		}
	}
}

func (hub *Hub) CloseClient(client *Client) {
	close(client.done)
	hub.RemoveClient(client)
	close(client.Outbound)
}
