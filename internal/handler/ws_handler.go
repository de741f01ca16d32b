package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/openagora/agora-backend/internal/ws"
	"github.com/openagora/agora-backend/pkg/jwt"
	"github.com/openagora/agora-backend/pkg/logger"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Credentials travel in the first frame, not in cookies, so
		// cross-origin upgrades are safe to accept.
		return true
	},
}

// WSHandler upgrades /ws/notifications connections and hands them to the hub
type WSHandler struct {
	hub        *ws.Hub
	jwtManager *jwt.Manager
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(hub *ws.Hub, jwtManager *jwt.Manager) *WSHandler {
	return &WSHandler{hub: hub, jwtManager: jwtManager}
}

// Serve handles GET /ws/notifications. The socket is registered only after
// the client's authenticate frame carries a valid token.
func (h *WSHandler) Serve(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed: %v", err)
		return
	}

	client := ws.NewClient(h.hub, conn, func(token string) (string, error) {
		claims, err := h.jwtManager.VerifyToken(token)
		if err != nil {
			return "", err
		}
		return claims.UserID, nil
	})

	go client.WritePump()
	go client.ReadPump()
}
