package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-service/internal/models"
)

func TestHubAddAndRemoveClient(t *testing.T) {
	hub := NewHub()

	hub.AddClient("chat-1", nil, ConnInfo{ConnID: "c1", UserID: "alice"})
	require.Len(t, hub.rooms, 1)

	info, ok := hub.getConnInfo("chat-1", nil)
	require.True(t, ok)
	assert.Equal(t, "alice", info.UserID)

	hub.RemoveClient("chat-1", nil)
	assert.Empty(t, hub.rooms)
	assert.Empty(t, hub.connInfo)
}

// dialRoomClient spins up a websocket endpoint that registers the upgraded
// connection in the hub and returns both ends of it.
func dialRoomClient(t *testing.T, hub *Hub, chatID, userID string) (client, server *websocket.Conn) {
	t.Helper()

	upgraded := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.AddClient(chatID, conn, ConnInfo{ConnID: newConnID(), UserID: userID, ConnectedAt: time.Now()})
		upgraded <- conn
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	select {
	case server = <-upgraded:
	case <-time.After(time.Second):
		t.Fatal("websocket upgrade did not complete")
	}
	t.Cleanup(func() { server.Close() })
	return client, server
}

func TestBroadcastMessageReachesAllRoomClients(t *testing.T) {
	hub := NewHub()
	aliceConn, _ := dialRoomClient(t, hub, "chat-1", "alice")
	bobConn, _ := dialRoomClient(t, hub, "chat-1", "bob")

	msg := models.Message{ID: "m1", ChatID: "chat-1", SenderID: "alice", Content: "hi", Kind: models.MessageText}
	hub.BroadcastMessage("chat-1", msg)

	for _, conn := range []*websocket.Conn{aliceConn, bobConn} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)

		var event models.ChatEvent
		require.NoError(t, json.Unmarshal(payload, &event))
		assert.Equal(t, "message", event.Type)
		require.NotNil(t, event.Message)
		assert.Equal(t, "hi", event.Message.Content)
		assert.Equal(t, "alice", event.Message.SenderID)
	}
}

func TestBroadcastMessageSkipsOtherRooms(t *testing.T) {
	hub := NewHub()
	dialRoomClient(t, hub, "chat-1", "alice")
	outsider, _ := dialRoomClient(t, hub, "chat-2", "carol")

	hub.BroadcastMessage("chat-1", models.Message{ID: "m1", ChatID: "chat-1", Content: "hi"})

	require.NoError(t, outsider.SetReadDeadline(time.Now().Add(100 * time.Millisecond)))
	_, _, err := outsider.ReadMessage()
	require.Error(t, err)
}

func TestBroadcastMessageDropsFailedClient(t *testing.T) {
	hub := NewHub()
	_, server := dialRoomClient(t, hub, "chat-1", "alice")

	// kill the registered connection so the broadcast write fails
	require.NoError(t, server.Close())

	hub.BroadcastMessage("chat-1", models.Message{ID: "m1", ChatID: "chat-1", Content: "hi"})

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	assert.Empty(t, hub.rooms)
	assert.Empty(t, hub.connInfo)
}
