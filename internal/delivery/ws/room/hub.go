package ws_room

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/humanbelnik/planpoker/core/internal/metrics"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 64
)

// Feed is a live stream of encoded change envelopes for one room table.
type Feed interface {
	Payloads() <-chan []byte
	Close() error
}

type Subscriber interface {
	Subscribe(roomID, table string) (Feed, error)
}

type SubscriberFunc func(roomID, table string) (Feed, error)

func (f SubscriberFunc) Subscribe(roomID, table string) (Feed, error) {
	return f(roomID, table)
}

type topicKey struct {
	roomID string
	table  string
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	key  topicKey
}

type topic struct {
	clients map[*Client]bool
	feed    Feed
}

// Hub fans change envelopes out to websocket clients. Each room table is
// backed by one upstream subscription, opened with the first client and
// closed with the last.
type Hub struct {
	mu sync.Mutex

	subscriber Subscriber
	topics     map[topicKey]*topic

	logger *slog.Logger
}

type Option func(*Hub)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Hub) {
		h.logger = logger
	}
}

func NewHub(subscriber Subscriber, opts ...Option) *Hub {
	h := &Hub{
		subscriber: subscriber,
		topics:     make(map[topicKey]*topic),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterClient joins client to its room table, opening the upstream
// subscription if none exists. Subscribe runs outside the hub lock; when two
// first clients race, the loser's feed is closed and it joins the winner's.
func (h *Hub) RegisterClient(client *Client) error {
	if h.join(client) {
		return nil
	}

	feed, err := h.subscriber.Subscribe(client.key.roomID, client.key.table)
	if err != nil {
		return err
	}

	h.mu.Lock()
	t, ok := h.topics[client.key]
	if !ok {
		t = &topic{clients: make(map[*Client]bool), feed: feed}
		h.topics[client.key] = t
		go h.pump(client.key, feed)
	}
	h.addLocked(t, client)
	h.mu.Unlock()

	if ok {
		if err := feed.Close(); err != nil {
			h.logger.Warn("failed to close feed", "room_id", client.key.roomID, "table", client.key.table, "error", err)
		}
	}
	return nil
}

func (h *Hub) join(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, ok := h.topics[client.key]
	if !ok {
		return false
	}
	h.addLocked(t, client)
	return true
}

func (h *Hub) addLocked(t *topic, client *Client) {
	t.clients[client] = true
	metrics.WSClients.Inc()
	h.logger.Info("client registered", "room_id", client.key.roomID, "table", client.key.table)
}

func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.dropLocked(client) {
		h.logger.Info("client unregistered", "room_id", client.key.roomID, "table", client.key.table)
	}
}

// Clients reports how many clients follow the given room table.
func (h *Hub) Clients(roomID, table string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if t, ok := h.topics[topicKey{roomID: roomID, table: table}]; ok {
		return len(t.clients)
	}
	return 0
}

func (h *Hub) dropLocked(client *Client) bool {
	t, ok := h.topics[client.key]
	if !ok || !t.clients[client] {
		return false
	}
	delete(t.clients, client)
	close(client.send)
	metrics.WSClients.Dec()

	if len(t.clients) == 0 {
		delete(h.topics, client.key)
		if err := t.feed.Close(); err != nil {
			h.logger.Warn("failed to close feed", "room_id", client.key.roomID, "table", client.key.table, "error", err)
		}
	}
	return true
}

func (h *Hub) pump(key topicKey, feed Feed) {
	for payload := range feed.Payloads() {
		h.broadcast(key, feed, payload)
	}
}

func (h *Hub) broadcast(key topicKey, feed Feed, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, ok := h.topics[key]
	if !ok || t.feed != feed {
		return
	}
	for client := range t.clients {
		select {
		case client.send <- payload:
		default:
			// Slow consumer: drop it, the session reconnects from a fresh snapshot.
			metrics.WSDropped.Inc()
			h.logger.Warn("dropping slow client", "room_id", key.roomID, "table", key.table)
			h.dropLocked(client)
		}
	}
}

func (h *Hub) StartClientReading(client *Client) {
	defer func() {
		h.RemoveClient(client)
		client.conn.Close()
	}()

	client.conn.SetReadLimit(512)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) StartClientWriting(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
