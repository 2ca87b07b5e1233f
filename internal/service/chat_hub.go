package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"gathered_backend/internal/model"
	"gathered_backend/internal/repository"
	"gathered_backend/pkg/logger"
	"gathered_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	shardCount     = 32
	chatChannelKey = "gathered:chat"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSMessage struct {
	Type    string `json:"type"`
	GroupID uint   `json:"groupId"`
	Body    string `json:"body"`
	Sender  uint   `json:"sender,omitempty"`
	ID      string `json:"id,omitempty"`
}

type Client struct {
	Hub     *ChatHub
	Conn    *websocket.Conn
	Send    chan []byte
	UserID  uint
	Limiter *rate.Limiter
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Error("WebSocket unexpected close", zap.Error(err), zap.Uint("userId", c.UserID))
			}
			break
		}

		if !c.Limiter.Allow() {
			continue
		}

		var wsMsg WSMessage
		if err := json.Unmarshal(message, &wsMsg); err != nil {
			continue
		}

		monitoring.ChatMessageCounter.WithLabelValues("in").Inc()

		if wsMsg.Type == "MESSAGE" {
			c.Hub.HandleGroupMessage(c.UserID, wsMsg)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if n := len(c.Send); n > 0 {
				for i := 0; i < n; i++ {
					w.Write(<-c.Send)
				}
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

type shard struct {
	clients map[uint]*Client
	mu      sync.RWMutex
}

// ChatHub fans group messages out to connected members, through redis
// pubsub so multiple instances stay in sync.
type ChatHub struct {
	shards     [shardCount]*shard
	register   chan *Client
	unregister chan *Client
	Redis      *redis.Client
	ChatRepo   *repository.ChatRepository
	GroupRepo  *repository.GroupRepository
	ctx        context.Context
}

func NewChatHub(rdb *redis.Client, chatRepo *repository.ChatRepository, groupRepo *repository.GroupRepository) *ChatHub {
	h := &ChatHub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		Redis:      rdb,
		ChatRepo:   chatRepo,
		GroupRepo:  groupRepo,
		ctx:        context.Background(),
	}
	for i := 0; i < shardCount; i++ {
		h.shards[i] = &shard{
			clients: make(map[uint]*Client),
		}
	}
	return h
}

func (h *ChatHub) getShard(userID uint) *shard {
	return h.shards[userID%shardCount]
}

type PubSubMessage struct {
	TargetUsers []uint          `json:"targetUsers"`
	Payload     json.RawMessage `json:"payload"`
}

func (h *ChatHub) Run() {
	pubsub := h.Redis.Subscribe(h.ctx, chatChannelKey)
	ch := pubsub.Channel()
	for {
		select {
		case client := <-h.register:
			s := h.getShard(client.UserID)
			s.mu.Lock()
			s.clients[client.UserID] = client
			s.mu.Unlock()

		case client := <-h.unregister:
			s := h.getShard(client.UserID)
			s.mu.Lock()
			if _, ok := s.clients[client.UserID]; ok {
				delete(s.clients, client.UserID)
				close(client.Send)
			}
			s.mu.Unlock()

		case msg, ok := <-ch:
			if !ok {
				return
			}
			var psMsg PubSubMessage
			if err := json.Unmarshal([]byte(msg.Payload), &psMsg); err != nil {
				logger.Log.Error("PubSub unmarshal error", zap.Error(err))
				continue
			}
			h.pushToLocalUsers(psMsg.TargetUsers, psMsg.Payload)
		}
	}
}

// HandleGroupMessage persists an incoming message and fans it out to the
// other members of the group.
func (h *ChatHub) HandleGroupMessage(senderID uint, msg WSMessage) {
	if msg.GroupID == 0 || msg.Body == "" {
		return
	}

	group, err := h.GroupRepo.FindByID(msg.GroupID)
	if err != nil {
		return
	}
	if _, err := h.GroupRepo.FindMembership(msg.GroupID, senderID); err != nil {
		return
	}

	channel, err := h.ChatRepo.FindOrCreateChannel(msg.GroupID, group.Name)
	if err != nil {
		logger.Log.Error("chat channel lookup failed", zap.Error(err), zap.Uint("groupId", msg.GroupID))
		return
	}

	msg.Sender = senderID
	msg.ID = uuid.New().String()

	if err := h.ChatRepo.SaveMessage(&model.ChatMessage{
		MessageID: msg.ID,
		ChannelID: channel.ID,
		SenderID:  senderID,
		Body:      msg.Body,
	}); err != nil {
		logger.Log.Error("chat message save failed", zap.Error(err))
		return
	}

	members, err := h.GroupRepo.ListMembers(msg.GroupID)
	if err != nil {
		return
	}
	var ids []uint
	for _, m := range members {
		if m.UserID != senderID {
			ids = append(ids, m.UserID)
		}
	}
	h.PushToUsers(ids, msg)
}

func (h *ChatHub) PushToUsers(userIDs []uint, msg WSMessage) {
	if len(userIDs) == 0 {
		return
	}
	msgBytes, _ := json.Marshal(msg)
	psMsg := PubSubMessage{
		TargetUsers: userIDs,
		Payload:     msgBytes,
	}
	payload, _ := json.Marshal(psMsg)
	h.Redis.Publish(h.ctx, chatChannelKey, payload)
	monitoring.ChatMessageCounter.WithLabelValues("out").Inc()
}

func (h *ChatHub) pushToLocalUsers(userIDs []uint, payload []byte) {
	for _, id := range userIDs {
		s := h.getShard(id)
		s.mu.RLock()
		if client, ok := s.clients[id]; ok {
			select {
			case client.Send <- payload:
			default:
			}
		}
		s.mu.RUnlock()
	}
}

// Stop closes every connection; called on shutdown.
func (h *ChatHub) Stop() {
	closed := 0
	for i := 0; i < shardCount; i++ {
		s := h.shards[i]
		s.mu.Lock()
		for userID, client := range s.clients {
			close(client.Send)
			delete(s.clients, userID)
			closed++
		}
		s.mu.Unlock()
	}
	logger.Log.Info("ChatHub stopped", zap.Int("closedConnections", closed))
}

func ServeWs(hub *ChatHub, w http.ResponseWriter, r *http.Request, userID uint) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("WebSocket upgrade failed", zap.Error(err), zap.Uint("userId", userID))
		return
	}
	client := &Client{
		Hub:     hub,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		UserID:  userID,
		Limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}
