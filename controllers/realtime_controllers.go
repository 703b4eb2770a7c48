package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/jobportal-app/realtime"
	"github.com/yeremiapane/jobportal-app/utils"
)

type RealtimeController struct {
	Hub      *realtime.Hub
	upgrader websocket.Upgrader
}

// NewRealtimeController accepts handshakes from the given origins; "*" or
// an empty list accepts any origin.
func NewRealtimeController(hub *realtime.Hub, origins []string) *RealtimeController {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &RealtimeController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || allowed["*"] || origin == "" || allowed[origin]
			},
		},
	}
}

// NotificationsSocket streams the caller's notifications as they are created.
func (rc *RealtimeController) NotificationsSocket(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	ws, err := rc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Websocket upgrade failed: %v", err)
		return
	}
	rc.Hub.Serve(actor.UserID, ws)
}
