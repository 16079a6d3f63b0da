package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/littlelemon/floor"
	"github.com/yeremiapane/littlelemon/middlewares"
	"github.com/yeremiapane/littlelemon/utils"
)

type FloorController struct {
	Hub      *floor.Hub
	upgrader websocket.Upgrader
}

// NewFloorController accepts sockets from the configured origins only; an
// empty list or "*" accepts any origin.
func NewFloorController(hub *floor.Hub, origins []string) *FloorController {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &FloorController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || allowed["*"] || allowed[origin]
			},
		},
	}
}

// FloorHandler -> staff WebSocket feed of reservation and table events.
// Mounted behind WebSocketAuthMiddleware, which enforces the staff role.
func (fc *FloorController) FloorHandler(c *gin.Context) {
	ws, err := fc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.InfoLogger.WithError(err).Warn("floor socket upgrade failed")
		return
	}
	fc.Hub.Register(ws, c.GetString(middlewares.CtxRole))
	utils.InfoLogger.WithField("user_id", c.GetUint(middlewares.CtxUserID)).Info("floor display connected")

	// Displays only listen; reading detects the disconnect.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	fc.Hub.Unregister(ws)
}
