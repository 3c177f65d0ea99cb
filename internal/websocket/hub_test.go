package websocket

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHub(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Mock client
	client := &Client{
		hub:  hub,
		send: make(chan []byte, 1),
	}

	// Test registration
	hub.register <- client
	// Allow the hub to process the register message
	time.Sleep(10 * time.Millisecond)

	// Test broadcast
	if err := hub.Broadcast(map[string]int{"num": 327}); err != nil {
		t.Fatalf("Broadcast returned an error: %v", err)
	}

	select {
	case received := <-client.send:
		if string(received) != `{"num":327}` {
			t.Errorf("Client received wrong message: got %s", received)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("Client did not receive broadcast message in time")
	}

	// Test unregistration
	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)
	if _, ok := <-client.send; ok {
		t.Fatal("Expected send channel to be closed after unregistration")
	}
}

func TestBroadcastWithoutRun(t *testing.T) {
	hub := NewHub()

	for i := 0; i < cap(hub.broadcast); i++ {
		if err := hub.Broadcast(i); err != nil {
			t.Fatalf("Broadcast %d returned an error: %v", i, err)
		}
	}

	done := make(chan error, 1)
	go func() { done <- hub.Broadcast("overflow") }()

	select {
	case err := <-done:
		if !errors.Is(err, ErrQueueFull) {
			t.Fatalf("Expected ErrQueueFull, got %v", err)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("Broadcast blocked on a full queue")
	}
}

func TestServeWs(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to dial websocket: %v", err)
	}
	defer conn.Close()

	// Give the hub a moment to register the connection.
	time.Sleep(50 * time.Millisecond)
	if err := hub.Broadcast(map[string]string{"type": "new_comic"}); err != nil {
		t.Fatalf("Broadcast returned an error: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read message: %v", err)
	}
	if string(msg) != `{"type":"new_comic"}` {
		t.Errorf("Got message %s", msg)
	}
}
