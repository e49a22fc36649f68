package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubClient(h *Hub, userID string) *Client {
	return &Client{hub: h, UserID: userID, Send: make(chan []byte, 4)}
}

func register(t *testing.T, h *Hub, c *Client) {
	t.Helper()
	select {
	case h.Register <- c:
	case <-time.After(time.Second):
		t.Fatal("hub did not accept registration")
	}
}

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.Send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestHub_DeliversOnlyToOwner(t *testing.T) {
	h := NewHub()
	go h.Run()

	owner := newHubClient(h, "u1")
	stranger := newHubClient(h, "u2")
	register(t, h, owner)
	register(t, h, stranger)

	h.NotifyUser("u1", NewTaskMessage("task.created", map[string]string{"id": "t1"}))

	msg := receive(t, owner)
	var decoded Message
	require.NoError(t, json.Unmarshal(msg, &decoded))
	assert.Equal(t, "task.created", decoded.Action)

	select {
	case unexpected := <-stranger.Send:
		t.Fatalf("stranger received %s", unexpected)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_DeliversToAllOwnerConnections(t *testing.T) {
	h := NewHub()
	go h.Run()

	first := newHubClient(h, "u1")
	second := newHubClient(h, "u1")
	register(t, h, first)
	register(t, h, second)

	h.NotifyUser("u1", NewTaskMessage("task.deleted", map[string]string{"id": "t1"}))

	assert.NotEmpty(t, receive(t, first))
	assert.NotEmpty(t, receive(t, second))
}

func TestHub_UnregisterStopsDelivery(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := newHubClient(h, "u1")
	register(t, h, client)

	select {
	case h.Unregister <- client:
	case <-time.After(time.Second):
		t.Fatal("hub did not accept unregistration")
	}

	// The send channel is closed on unregister.
	select {
	case _, ok := <-client.Send:
		assert.False(t, ok, "send channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
}
