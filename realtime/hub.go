package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/jobportal-app/utils"
)

// Event types
const (
	EventNotification = "notification"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the open websocket connections of each user and pushes events
// to them. Pushes never block: a client whose buffer is full misses the
// message.
type Hub struct {
	mutex   sync.Mutex
	clients map[uint]map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uint]map[*client]struct{})}
}

// Serve registers conn for userID and blocks until the connection closes.
func (h *Hub) Serve(userID uint, conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(userID, c)

	done := make(chan struct{})
	go h.writeLoop(c, done)

	// Incoming messages are ignored; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.unregister(userID, c)
	close(done)
}

func (h *Hub) register(userID uint, c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*client]struct{})
	}
	h.clients[userID][c] = struct{}{}
	utils.InfoLogger.WithField("user_id", userID).Debug("realtime client connected")
}

func (h *Hub) unregister(userID uint, c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if set, ok := h.clients[userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, userID)
		}
	}
	c.conn.Close()
	utils.InfoLogger.WithField("user_id", userID).Debug("realtime client disconnected")
}

func (h *Hub) writeLoop(c *client, done <-chan struct{}) {
	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				utils.ErrorLogger.Printf("Error sending realtime message: %v", err)
				return
			}
		case <-done:
			return
		}
	}
}

// Connected returns how many connections userID has open.
func (h *Hub) Connected(userID uint) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients[userID])
}

// SendToUser queues an event for every connection of userID and returns the
// number of connections it was queued on.
func (h *Hub) SendToUser(userID uint, event string, data interface{}) int {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling realtime message: %v", err)
		return 0
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	delivered := 0
	for c := range h.clients[userID] {
		select {
		case c.send <- payload:
			delivered++
		default:
			utils.InfoLogger.WithFields(logrus.Fields{
				"user_id": userID,
				"event":   event,
			}).Warn("realtime client buffer full, message dropped")
		}
	}
	return delivered
}
