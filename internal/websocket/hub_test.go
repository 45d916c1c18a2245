package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
)

func testHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage("bonus", "awarded", 7, map[string]any{"stars": 5})
	if msg.Type != "bonus_awarded" {
		t.Errorf("type = %s, want bonus_awarded", msg.Type)
	}
	if msg.Entity != "bonus" || msg.Action != "awarded" || msg.ID != 7 {
		t.Errorf("unexpected message: %+v", msg)
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := testHub()
	c := &Client{hub: hub, send: make(chan []byte, 1)}

	hub.Register(c)
	if hub.ClientCount() != 1 {
		t.Errorf("client count = %d, want 1", hub.ClientCount())
	}

	hub.Unregister(c)
	if hub.ClientCount() != 0 {
		t.Errorf("client count = %d, want 0", hub.ClientCount())
	}
	if _, ok := <-c.send; ok {
		t.Error("unregister should close the send channel")
	}

	// Unregistering twice must not panic on the closed channel.
	hub.Unregister(c)
}

func TestHubBroadcast(t *testing.T) {
	hub := testHub()
	c := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(c)

	hub.Broadcast(NewMessage("wallet", "updated", 3, nil))

	select {
	case data := <-c.send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("unmarshal broadcast: %v", err)
		}
		if msg.Type != "wallet_updated" || msg.ID != 3 {
			t.Errorf("unexpected message: %+v", msg)
		}
	default:
		t.Fatal("expected a queued message")
	}
}

func TestHubBroadcastSkipsSlowClient(t *testing.T) {
	hub := testHub()
	slow := &Client{hub: hub, send: make(chan []byte)} // no buffer, never read
	hub.Register(slow)

	// Must not block.
	hub.Broadcast(NewMessage("completion", "approved", 1, nil))
	hub.Broadcast(NewMessage("completion", "approved", 2, nil))
}
