package ws

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// TestHubRegisterUnregister проверяет учет и снятие соединений.
func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()
	conn := &websocket.Conn{}

	unregister := hub.Register(conn)
	if hub.Len() != 1 {
		t.Fatalf("expected 1 connection, got %d", hub.Len())
	}

	unregister()
	if hub.Len() != 0 {
		t.Fatalf("expected 0 connections, got %d", hub.Len())
	}

	// Повторный вызов не должен паниковать или менять счетчик.
	unregister()
	if hub.Len() != 0 {
		t.Fatalf("expected 0 connections after double unregister, got %d", hub.Len())
	}
}

// TestHubCloseAllWithBusyWriters проверяет, что CloseAll завершается за
// ограниченное время, даже когда по соединениям идет непрерывная запись,
// а клиенты ничего не читают.
func TestHubCloseAllWithBusyWriters(t *testing.T) {
	const connCount = 3

	hub := NewHub()
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	var writers sync.WaitGroup
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		writers.Add(1)
		unregister := hub.Register(conn)
		go func() {
			defer writers.Done()
			defer unregister()

			payload := bytes.Repeat([]byte("x"), 64*1024)
			for {
				if err := conn.WriteMessage(websocket.BinaryMessage, payload); err != nil {
					return
				}
			}
		}()
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	for i := 0; i < connCount; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("expected successful dial, got %v", err)
		}
		t.Cleanup(func() {
			_ = conn.Close()
		})
	}

	// Клиенты не читают: запись на сервере упирается в буферы и блокируется.
	deadline := time.Now().Add(5 * time.Second)
	for hub.Len() != connCount {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d connections, got %d", connCount, hub.Len())
		}
		time.Sleep(10 * time.Millisecond)
	}

	done := make(chan struct{})
	go func() {
		hub.CloseAll()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("CloseAll did not finish while connections were being written to")
	}

	if hub.Len() != 0 {
		t.Fatalf("expected 0 connections after CloseAll, got %d", hub.Len())
	}

	// Закрытие соединений должно разблокировать пишущие горутины.
	writers.Wait()
}
