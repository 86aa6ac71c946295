package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans duty-status updates out to the websocket clients watching a trip.
// A redis client is optional; with one configured, updates published by other
// instances are forwarded to local clients too.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	TripID string
	Send   chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(tripID string) *Client {
	client := &Client{
		TripID: tripID,
		Send:   make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[tripID] == nil {
		h.clients[tripID] = map[*Client]struct{}{}
	}
	h.clients[tripID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if tripClients, ok := h.clients[client.TripID]; ok {
		delete(tripClients, client)
		if len(tripClients) == 0 {
			delete(h.clients, client.TripID)
		}
	}
	close(client.Send)
}

// Broadcast delivers a payload to every client watching the trip. With redis
// configured it goes through pub/sub so clients on other instances receive it
// too; local delivery then happens in subscribeRedis when the message comes
// back, keeping each client at one copy per broadcast.
func (h *Hub) Broadcast(tripID string, payload []byte) {
	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(tripID), payload).Err()
		if err == nil {
			return
		}
		log.Printf("redis publish error: %v", err)
	}

	h.deliver(tripID, payload)
}

func (h *Hub) deliver(tripID string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[tripID]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "eld:*:status")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		// pattern deliveries still carry the concrete channel name
		h.deliver(tripIDFromChannel(msg.Channel), []byte(msg.Payload))
	}
}

func redisChannel(tripID string) string {
	return "eld:" + tripID + ":status"
}

func tripIDFromChannel(ch string) string {
	// eld:{trip}:status
	const prefix = "eld:"
	const suffix = ":status"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
