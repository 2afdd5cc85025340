package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"post_place_backend/pkg/logger"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dialHub(t *testing.T, hub *EventHub, userID uint) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r, userID)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestEventHubBroadcast(t *testing.T) {
	logger.Log = zap.NewNop()

	hub := NewEventHub(nil)
	go hub.Run()
	defer hub.Stop()

	conn1 := dialHub(t, hub, 1)
	conn2 := dialHub(t, hub, 2)

	// 等连接注册完成
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast("new_post", map[string]string{"id": "p1"})

	for _, conn := range []*websocket.Conn{conn1, conn2} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)

		var event Event
		require.NoError(t, json.Unmarshal(payload, &event))
		assert.Equal(t, "new_post", event.Type)
	}
}

func TestStoppedHubDoesNotBlockDisconnect(t *testing.T) {
	logger.Log = zap.NewNop()

	hub := NewEventHub(nil)
	go hub.Run()

	client := &wsClient{hub: hub, send: make(chan []byte, 1), userID: 7}
	hub.register <- client

	hub.Stop()

	// 集线器停止后断开的连接不能卡在注销上
	done := make(chan struct{})
	go func() {
		hub.dropClient(client)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disconnect blocked after hub stop")
	}
}

func TestEventHubSlowClientDoesNotBlock(t *testing.T) {
	logger.Log = zap.NewNop()

	hub := NewEventHub(nil)
	go hub.Run()
	defer hub.Stop()

	dialHub(t, hub, 1)
	time.Sleep(50 * time.Millisecond)

	// 广播远多于发送缓冲区容量的事件，不能卡死
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			hub.Broadcast("new_post", map[string]int{"n": i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("broadcast blocked on slow client")
	}
}
