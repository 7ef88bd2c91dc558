package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"baristabox-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "baristabox_chat_events"

// Hub tracks open chat sockets per session so a reply reaches every tab
// watching that session, on this instance or, through Redis, on others.
type Hub struct {
	// Registered clients map: session id -> clients (multi-tab)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance delivery; nil runs single-instance.
	rdb        *redis.Client
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

func (h *Hub) add(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
	h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := h.clients[client.SessionID]
	for i, c := range clients {
		if c == client {
			h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.SessionID]) == 0 {
		delete(h.clients, client.SessionID)
	}
}

// Connected reports how many local sockets watch sessionID.
func (h *Hub) Connected(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// Deliver pushes frame to every socket on sessionID and publishes it for
// other instances.
func (h *Hub) Deliver(ctx context.Context, sessionID string, frame []byte) {
	h.deliverLocal(sessionID, frame)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterEvent{
			Origin:    h.instanceID,
			SessionID: sessionID,
			Frame:     frame,
		})
		if err := h.rdb.Publish(ctx, clusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to publish chat frame", map[string]interface{}{"session_id": sessionID, "error": err.Error()})
		}
	}
}

// deliverLocal drops the frame for a client whose buffer is full rather
// than blocking the sender.
func (h *Hub) deliverLocal(sessionID string, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients[sessionID] {
		select {
		case client.Send <- frame:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping frame", map[string]interface{}{"session_id": sessionID})
		}
	}
}

type clusterEvent struct {
	Origin    string          `json:"origin"`
	SessionID string          `json:"session_id"`
	Frame     json.RawMessage `json:"frame"`
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var event clusterEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			h.logger.Warn("Hub", "Redis frame parse error", map[string]interface{}{"error": err.Error()})
			continue
		}
		if event.Origin == h.instanceID {
			continue
		}
		h.deliverLocal(event.SessionID, event.Frame)
	}
}
