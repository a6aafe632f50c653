package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Hub отслеживает открытые WebSocket-соединения, чтобы при остановке
// сервера корректно закрыть эхо-каналы.
type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]struct{}
}

// NewHub создает пустой реестр соединений.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Register добавляет соединение и возвращает функцию снятия с учета.
func (h *Hub) Register(conn *websocket.Conn) func() {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.conns, conn)
			h.mu.Unlock()
		})
	}
}

// Len возвращает число открытых соединений.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// CloseAll посылает close-фрейм и закрывает все учтенные соединения.
// Только WriteControl безопасен при параллельной записи из эхо-цикла,
// поэтому close-фрейм отправляется именно им и с дедлайном.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		_ = conn.Close()
		delete(h.conns, conn)
	}
}
