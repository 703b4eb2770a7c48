package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/jobportal-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger("panic")
	os.Exit(m.Run())
}

// hubServer serves every connection as user 7.
func hubServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(7, conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestSendToUserReachesEveryConnection(t *testing.T) {
	hub := NewHub()
	srv := hubServer(t, hub)

	first, second := dial(t, srv), dial(t, srv)
	defer first.Close()
	defer second.Close()
	require.Eventually(t, func() bool { return hub.Connected(7) == 2 }, 2*time.Second, 10*time.Millisecond)

	delivered := hub.SendToUser(7, EventNotification, map[string]string{"title": "Interview scheduled"})
	assert.Equal(t, 2, delivered)
	assert.Zero(t, hub.SendToUser(8, EventNotification, nil), "nobody else is connected")

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg struct {
			Event string            `json:"event"`
			Data  map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, EventNotification, msg.Event)
		assert.Equal(t, "Interview scheduled", msg.Data["title"])
	}
}

func TestClosedConnectionIsUnregistered(t *testing.T) {
	hub := NewHub()
	srv := hubServer(t, hub)

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Connected(7) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Connected(7) == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Zero(t, hub.SendToUser(7, EventNotification, nil))
}

func TestSendToUserUnmarshalableData(t *testing.T) {
	hub := NewHub()
	assert.Zero(t, hub.SendToUser(7, EventNotification, make(chan int)))
}
