package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/kavia-common/gym-backend/internal/ws"
)

type WSHandler struct {
	Hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewWSHandler создает обработчик WebSocket-эндпоинтов.
func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{
		Hub: hub,
		upgrader: websocket.Upgrader{
			// Кросс-доменные подключения разрешены, как и в остальном API.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Echo возвращает каждое входящее сообщение без изменений, сохраняя
// тип фрейма и границы сообщений.
func (h *WSHandler) Echo(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	unregister := h.Hub.Register(conn)
	defer func() {
		unregister()
		_ = conn.Close()
	}()

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			// Закрытие с любой стороны завершает канал.
			return nil
		}

		if err := conn.WriteMessage(messageType, payload); err != nil {
			return nil
		}
	}
}

type WSUsageResponse struct {
	Note    string `json:"note"`
	Example string `json:"example"`
}

// Usage возвращает краткую справку по использованию эхо-канала.
func Usage(c echo.Context) error {
	return c.JSON(http.StatusOK, WSUsageResponse{
		Note:    "Use ws://<host>:3001/ws/echo to test a simple echo WebSocket.",
		Example: "After connecting, send any message and receive the same message back.",
	})
}
