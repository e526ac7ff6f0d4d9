package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = (pongWait * 9) / 10
	maxFrameSize = 512
	hubShards    = 16

	// HubChannel is the Redis pub/sub channel shared by every instance.
	HubChannel = "learnhub:messages"
)

// Event types pushed to connected clients.
const (
	EventMessage     = "MESSAGE"
	EventMessageRead = "MESSAGE_READ"
	EventTyping      = "TYPING"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type HubEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type hubEnvelope struct {
	Target  uint            `json:"target"`
	Payload json.RawMessage `json:"payload"`
}

type hubClient struct {
	hub     *MessageHub
	conn    *websocket.Conn
	send    chan []byte
	userID  uint
	limiter *rate.Limiter
}

type hubShard struct {
	mu      sync.RWMutex
	clients map[uint]*hubClient
}

// MessageHub pushes message events to users connected over websocket. With
// Redis configured, events go through pub/sub so any instance can deliver
// them; otherwise delivery is local only.
type MessageHub struct {
	shards [hubShards]*hubShard
	Redis  *redis.Client
}

func NewMessageHub(rdb *redis.Client) *MessageHub {
	h := &MessageHub{Redis: rdb}
	for i := range h.shards {
		h.shards[i] = &hubShard{clients: make(map[uint]*hubClient)}
	}
	return h
}

func (h *MessageHub) shard(userID uint) *hubShard {
	return h.shards[userID%hubShards]
}

// Run relays pub/sub traffic to local clients until ctx is done, then
// disconnects everyone.
func (h *MessageHub) Run(ctx context.Context) {
	defer h.closeAll()

	if h.Redis == nil {
		<-ctx.Done()
		return
	}

	pubsub := h.Redis.Subscribe(ctx, HubChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env hubEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				logger.Log.Error("Hub payload unmarshal error", zap.Error(err))
				continue
			}
			h.deliver(env.Target, env.Payload)
		}
	}
}

// Notify sends event to the user's connection. Offline users miss it; the
// message itself is already stored.
func (h *MessageHub) Notify(userID uint, event HubEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Log.Error("Hub event marshal error", zap.Error(err))
		return
	}
	monitoring.HubEvents.WithLabelValues(event.Type, "out").Inc()

	if h.Redis == nil {
		h.deliver(userID, payload)
		return
	}

	env, err := json.Marshal(hubEnvelope{Target: userID, Payload: payload})
	if err != nil {
		logger.Log.Error("Hub envelope marshal error", zap.Error(err))
		return
	}
	if err := h.Redis.Publish(context.Background(), HubChannel, env).Err(); err != nil {
		logger.Log.Warn("Hub publish failed, delivering locally", zap.Error(err))
		h.deliver(userID, payload)
	}
}

func (h *MessageHub) deliver(userID uint, payload []byte) {
	s := h.shard(userID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.clients[userID]; ok {
		select {
		case c.send <- payload:
		default:
		}
	}
}

// Online reports whether userID has a connection on this instance.
func (h *MessageHub) Online(userID uint) bool {
	s := h.shard(userID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.clients[userID]
	return ok
}

// register makes c the user's connection, dropping any older one.
func (h *MessageHub) register(c *hubClient) {
	s := h.shard(c.userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.clients[c.userID]; ok {
		close(old.send)
	} else {
		monitoring.HubConnections.Inc()
	}
	s.clients[c.userID] = c
}

func (h *MessageHub) unregister(c *hubClient) {
	s := h.shard(c.userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clients[c.userID] == c {
		delete(s.clients, c.userID)
		close(c.send)
		monitoring.HubConnections.Dec()
	}
}

func (h *MessageHub) closeAll() {
	closed := 0
	for _, s := range h.shards {
		s.mu.Lock()
		for id, c := range s.clients {
			close(c.send)
			delete(s.clients, id)
			closed++
		}
		s.mu.Unlock()
	}
	monitoring.HubConnections.Set(0)
	logger.Log.Info("Message hub stopped", zap.Int("closed_connections", closed))
}

// ServeWs upgrades the request and attaches the connection to userID.
func (h *MessageHub) ServeWs(w http.ResponseWriter, r *http.Request, userID uint) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("WebSocket upgrade failed", zap.Error(err), zap.Uint("user_id", userID))
		return
	}
	c := &hubClient{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, 64),
		userID:  userID,
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
	h.register(c)

	go c.writePump()
	go c.readPump()
}

type inboundEvent struct {
	Type string `json:"type"`
	Data struct {
		PeerID uint `json:"peerId"`
	} `json:"data"`
}

// readPump forwards typing indicators; everything else a client sends is ignored.
func (c *hubClient) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Warn("WebSocket unexpected close", zap.Error(err), zap.Uint("user_id", c.userID))
			}
			return
		}
		if !c.limiter.Allow() {
			continue
		}

		var in inboundEvent
		if err := json.Unmarshal(raw, &in); err != nil {
			continue
		}
		monitoring.HubEvents.WithLabelValues(in.Type, "in").Inc()

		if in.Type == EventTyping && in.Data.PeerID != 0 && in.Data.PeerID != c.userID {
			c.hub.Notify(in.Data.PeerID, HubEvent{
				Type: EventTyping,
				Data: map[string]uint{"userId": c.userID},
			})
		}
	}
}

func (c *hubClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
