package notifications_realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"opensourcetogether/internal/config"
	notifications_dto "opensourcetogether/internal/features/notifications/dto"
	cache_utils "opensourcetogether/internal/util/cache"

	"github.com/google/uuid"
)

const resubscribeDelay = 5 * time.Second

// Hub tracks the open WebSocket connections of every user on this instance.
// Events reach it through the valkey channel so that any instance can notify
// a user connected to another one.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]struct{}

	pubSub  *cache_utils.PubSub
	channel string
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewHub(pubSub *cache_utils.PubSub, channel string, logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]map[*Client]struct{}),
		pubSub:  pubSub,
		channel: channel,
		logger:  logger,
	}
}

func (h *Hub) StartWorkers() {
	h.ctx, h.cancel = context.WithCancel(context.Background())

	h.wg.Add(1)
	go h.subscribe()

	h.logger.Info("Notification hub started", "channel", h.channel)
}

func (h *Hub) Stop() {
	if h.cancel != nil {
		h.cancel()
	}
	h.wg.Wait()

	h.mu.Lock()
	for userID, clients := range h.clients {
		for client := range clients {
			client.closeSend()
		}
		delete(h.clients, userID)
	}
	h.mu.Unlock()

	h.logger.Info("Notification hub stopped")
}

// Connect registers the client with the snapshot as its first frame, ahead
// of any event broadcast afterwards.
func (h *Hub) Connect(client *Client, snapshot notifications_dto.Envelope) error {
	frame, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	client.send <- frame
	h.registerLocked(client)

	return nil
}

func (h *Hub) registerLocked(client *Client) {
	clients, ok := h.clients[client.userID]
	if !ok {
		clients = make(map[*Client]struct{})
		h.clients[client.userID] = clients
	}
	clients[client] = struct{}{}
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(client)
}

// SendToUser queues the envelope on every connection of the user and returns
// how many connections got it. A connection whose buffer is full is dropped;
// the client recovers through the unread endpoint after reconnecting.
func (h *Hub) SendToUser(userID uuid.UUID, envelope notifications_dto.Envelope) int {
	frame, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Error("Failed to encode WebSocket frame", "event", envelope.Event, "error", err)
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for client := range h.clients[userID] {
		select {
		case client.send <- frame:
			delivered++
		default:
			h.logger.Warn("Dropping slow WebSocket client", "userId", userID)
			h.removeLocked(client)
		}
	}

	return delivered
}

func (h *Hub) ConnectionCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[userID])
}

// Dispatch handles one message received from the pub/sub channel.
func (h *Hub) Dispatch(payload []byte) {
	var message notifications_dto.BroadcastMessage
	if err := json.Unmarshal(payload, &message); err != nil {
		h.logger.Warn("Skipping malformed notification message", "error", err)
		return
	}

	h.SendToUser(message.ReceiverID, message.Envelope)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}
	client.closeSend()
}

func (h *Hub) subscribe() {
	defer h.wg.Done()

	for {
		if config.IsShouldShutdown() || h.ctx.Err() != nil {
			return
		}

		err := h.pubSub.Subscribe(h.ctx, h.channel, h.Dispatch)
		if h.ctx.Err() != nil {
			return
		}

		h.logger.Error("Notification subscription interrupted, retrying",
			"channel", h.channel,
			"error", err,
			"retryIn", resubscribeDelay)

		select {
		case <-h.ctx.Done():
			return
		case <-time.After(resubscribeDelay):
		}
	}
}
