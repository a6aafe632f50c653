package handlers

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/kavia-common/gym-backend/internal/ws"
)

func newEchoServer(t *testing.T) (*httptest.Server, *ws.Hub) {
	t.Helper()

	hub := ws.NewHub()
	handler := NewWSHandler(hub)

	e := echo.New()
	e.GET("/ws/echo", handler.Echo)

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	return server, hub
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/echo"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("expected successful dial, got %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}

// TestEchoPing проверяет, что "ping" возвращается без изменений первым сообщением.
func TestEchoPing(t *testing.T) {
	server, _ := newEchoServer(t)
	conn := dial(t, server)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
		t.Fatalf("expected write to succeed, got %v", err)
	}

	messageType, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("expected read to succeed, got %v", err)
	}

	if messageType != websocket.TextMessage {
		t.Fatalf("expected text frame, got %d", messageType)
	}
	if string(payload) != "ping" {
		t.Fatalf("expected ping, got %q", payload)
	}
}

// TestEchoBinary проверяет побайтовое эхо бинарного фрейма.
func TestEchoBinary(t *testing.T) {
	server, _ := newEchoServer(t)
	conn := dial(t, server)

	sent := []byte{0x00, 0x01, 0xFF, 0x7F, 0x80}
	if err := conn.WriteMessage(websocket.BinaryMessage, sent); err != nil {
		t.Fatalf("expected write to succeed, got %v", err)
	}

	messageType, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("expected read to succeed, got %v", err)
	}

	if messageType != websocket.BinaryMessage {
		t.Fatalf("expected binary frame, got %d", messageType)
	}
	if !bytes.Equal(payload, sent) {
		t.Fatalf("expected %v, got %v", sent, payload)
	}
}

// TestEchoMultipleMessages проверяет сохранение границ и порядка сообщений.
func TestEchoMultipleMessages(t *testing.T) {
	server, _ := newEchoServer(t)
	conn := dial(t, server)

	messages := []string{"first", "second", "third"}
	for _, msg := range messages {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatalf("expected write to succeed, got %v", err)
		}
	}

	for _, want := range messages {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("expected read to succeed, got %v", err)
		}
		if string(payload) != want {
			t.Fatalf("expected %q, got %q", want, payload)
		}
	}
}

// TestEchoCloseWithoutMessages проверяет закрытие канала без сообщений.
func TestEchoCloseWithoutMessages(t *testing.T) {
	server, hub := newEchoServer(t)
	conn := dial(t, server)

	err := conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if err != nil {
		t.Fatalf("expected close to succeed, got %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected no echoed messages after close")
	}

	// Сервер должен снять соединение с учета.
	deadline := time.Now().Add(2 * time.Second)
	for hub.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected hub to be empty, got %d connections", hub.Len())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
