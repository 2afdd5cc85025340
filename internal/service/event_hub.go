package service

import (
	"context"
	"encoding/json"
	"net/http"
	"post_place_backend/pkg/logger"
	"post_place_backend/pkg/monitoring"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	shardCount     = 16

	eventChannel = "postplace:events"
)

// EventPublisher 领域事件广播抽象
// 写操作提交成功后由 handler 调用，尽力投递，不保证送达
type EventPublisher interface {
	Broadcast(event string, data interface{})
}

// Event 下发给客户端的事件封包
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsClient struct {
	hub     *EventHub
	conn    *websocket.Conn
	send    chan []byte
	userID  uint
	limiter *rate.Limiter
}

// readPump 客户端不发送业务消息，只维持连接存活并消费控制帧
func (c *wsClient) readPump() {
	defer func() {
		c.hub.dropClient(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Error("WebSocket unexpected close", zap.Error(err), zap.Uint("userId", c.userID))
			}
			break
		}
		if !c.limiter.Allow() {
			continue
		}
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if n := len(c.send); n > 0 {
				for i := 0; i < n; i++ {
					w.Write(<-c.send)
				}
			}

			if err := w.Close(); err != nil {
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

type hubShard struct {
	clients map[*wsClient]bool
	mu      sync.RWMutex
}

// EventHub 实时事件集线器
// 事件先经 Redis 频道中转，多实例部署时每个实例都会推送给本地连接；
// 未配置 Redis 时退化为单实例本地广播
type EventHub struct {
	shards     [shardCount]*hubShard
	register   chan *wsClient
	unregister chan *wsClient
	Redis      *redis.Client
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewEventHub(rdb *redis.Client) *EventHub {
	ctx, cancel := context.WithCancel(context.Background())
	h := &EventHub{
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		Redis:      rdb,
		ctx:        ctx,
		cancel:     cancel,
	}
	for i := 0; i < shardCount; i++ {
		h.shards[i] = &hubShard{clients: make(map[*wsClient]bool)}
	}
	return h
}

func (h *EventHub) getShard(userID uint) *hubShard {
	return h.shards[userID%shardCount]
}

// dropClient 注销一个连接。集线器已停止时 Run 不再消费 unregister，
// 通过 ctx 退出避免断开的连接卡住读协程
func (h *EventHub) dropClient(c *wsClient) {
	select {
	case h.unregister <- c:
	case <-h.ctx.Done():
	}
}

func (h *EventHub) Run() {
	if h.Redis != nil {
		pubsub := h.Redis.Subscribe(h.ctx, eventChannel)
		go func() {
			ch := pubsub.Channel()
			for msg := range ch {
				h.pushLocal([]byte(msg.Payload))
			}
		}()
	}

	for {
		select {
		case client := <-h.register:
			s := h.getShard(client.userID)
			s.mu.Lock()
			s.clients[client] = true
			s.mu.Unlock()
			monitoring.WSConnectedClients.Inc()

		case client := <-h.unregister:
			s := h.getShard(client.userID)
			s.mu.Lock()
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
				monitoring.WSConnectedClients.Dec()
			}
			s.mu.Unlock()

		case <-h.ctx.Done():
			return
		}
	}
}

// Broadcast 向所有连接的客户端广播事件
func (h *EventHub) Broadcast(event string, data interface{}) {
	payload, err := json.Marshal(Event{Type: event, Data: data})
	if err != nil {
		logger.Log.Error("Event marshal failed", zap.Error(err), zap.String("event", event))
		return
	}

	monitoring.WSEventCounter.WithLabelValues(event).Inc()

	if h.Redis != nil {
		if err := h.Redis.Publish(h.ctx, eventChannel, payload).Err(); err != nil {
			logger.Log.Error("Event publish failed", zap.Error(err), zap.String("event", event))
			// Redis 不可用时仍然推送本地连接
			h.pushLocal(payload)
		}
		return
	}

	h.pushLocal(payload)
}

func (h *EventHub) pushLocal(payload []byte) {
	for i := 0; i < shardCount; i++ {
		s := h.shards[i]
		s.mu.RLock()
		for client := range s.clients {
			select {
			case client.send <- payload:
			default:
				// 慢客户端直接丢弃该事件
			}
		}
		s.mu.RUnlock()
	}
}

// Stop 关闭所有连接
func (h *EventHub) Stop() {
	logger.Log.Info("EventHub stopping: closing connections...")

	closed := 0
	for i := 0; i < shardCount; i++ {
		s := h.shards[i]
		s.mu.Lock()
		for client := range s.clients {
			close(client.send)
			delete(s.clients, client)
			closed++
		}
		s.mu.Unlock()
	}

	h.cancel()
	monitoring.WSConnectedClients.Set(0)
	logger.Log.Info("EventHub stopped", zap.Int("closedConnections", closed))
}

func ServeWs(hub *EventHub, w http.ResponseWriter, r *http.Request, userID uint) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("WebSocket upgrade failed", zap.Error(err), zap.Uint("userId", userID))
		return
	}
	client := &wsClient{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		userID:  userID,
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
