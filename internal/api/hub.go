package api

import (
	"encoding/json"
	"sync"
	"time"

	"DailySipBot/internal/tracker"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 25 * time.Second
	sendBuffer = 16
)

// wsClient — соединение виджета; всё, что пишется в conn, идёт через send и writePump.
type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

func newWSClient(conn *websocket.Conn) *wsClient {
	return &wsClient{conn: conn, send: make(chan []byte, sendBuffer)}
}

// Hub рассылает снимки трекера всем открытым виджетам. Реализует tracker.Renderer.
type Hub struct {
	mu      sync.RWMutex
	clients map[*wsClient]struct{}
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{clients: make(map[*wsClient]struct{}), log: log}
}

func (h *Hub) register(c *wsClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// unregister закрывает send; writePump после этого закрывает соединение. Повторный вызов безопасен.
func (h *Hub) unregister(c *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

type wsEvent struct {
	Type     string           `json:"type"`
	Snapshot tracker.Snapshot `json:"snapshot"`
}

func snapshotEvent(snap tracker.Snapshot) ([]byte, error) {
	return json.Marshal(wsEvent{Type: "snapshot", Snapshot: snap})
}

// Render не блокируется: клиент с переполненным буфером отключается.
func (h *Hub) Render(snap tracker.Snapshot) {
	msg, err := snapshotEvent(snap)
	if err != nil {
		h.log.Error("Ошибка сериализации снимка", zap.Error(err))
		return
	}

	var slow []*wsClient
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.Warn("Виджет не успевает читать, отключаем")
		h.unregister(c)
	}
}

// writePump — единственный писатель в conn: снимки из send и пинги.
func (h *Hub) writePump(c *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.log.Debug("Виджет отключился", zap.Error(err))
				h.unregister(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.unregister(c)
				return
			}
		}
	}
}
