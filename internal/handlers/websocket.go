package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/thereayou/skillbridge/internal/realtime"
)

// WebSocketHandler принимает сокетные соединения
type WebSocketHandler struct {
	hub           *realtime.Hub
	authenticator *realtime.Authenticator
	router        *realtime.Router
	upgrader      websocket.Upgrader
}

func NewWebSocketHandler(hub *realtime.Hub, authenticator *realtime.Authenticator, router *realtime.Router) *WebSocketHandler {
	return &WebSocketHandler{
		hub:           hub,
		authenticator: authenticator,
		router:        router,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: Проверить origin в prod
				return true
			},
		},
	}
}

// HandleWebSocket аутентифицирует рукопожатие и запускает насосы.
// Отказ в аутентификации происходит до апгрейда: соединение не
// успевает создать никакого состояния.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	identity, err := h.authenticator.Authenticate(c.Request.Context(), c.Request)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := realtime.NewClient(h.hub, conn, *identity)

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.router)
}
