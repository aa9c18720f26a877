package handlers

import (
	"net/http"

	"trading_platform/internal/service"
	"trading_platform/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// same-origin policy is enforced by the CORS layer; the socket itself
	// authenticates with a token
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS upgrades an authenticated connection and subscribes it to the user's
// event stream. The token travels as a query parameter because browsers
// cannot set headers on websocket dials.
func (h *Handler) WS(hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		userID, err := service.ParseJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		ws.NewClient(hub, userID, conn)
	}
}
