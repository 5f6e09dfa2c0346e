package realtime

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client — одно живое соединение, привязанное к одной личности.
// События одного соединения обрабатываются последовательно в его
// ReadPump — это и есть гарантия порядка на соединение.
type Client struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Email  string
	Role   string

	Conn *websocket.Conn
	Send chan []byte
	Hub  *Hub

	channels map[string]bool
	mu       sync.RWMutex
}

func NewClient(hub *Hub, conn *websocket.Conn, identity Identity) *Client {
	return &Client{
		ID:       uuid.New(),
		UserID:   identity.UserID,
		Email:    identity.Email,
		Role:     identity.Role,
		Conn:     conn,
		Send:     make(chan []byte, hub.cfg.SendQueueSize),
		Hub:      hub,
		channels: make(map[string]bool),
	}
}

// ReadPump читает события от клиента и отдает их роутеру
func (c *Client) ReadPump(router *Router) {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.Hub.cfg.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.Hub.cfg.PongTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.Hub.cfg.PongTimeout))
		return nil
	})

	for {
		var ev Event
		err := c.Conn.ReadJSON(&ev)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		router.Dispatch(c, &ev)
	}
}

// WritePump отправляет события клиенту и поддерживает ping/pong
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.Hub.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Hub.cfg.WriteTimeout))
			if !ok {
				// Hub закрыл канал
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			c.Conn.WriteMessage(websocket.TextMessage, message)

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Hub.cfg.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) SendEvent(name string, payload interface{}) error {
	data, err := marshalEvent(name, payload)
	if err != nil {
		return err
	}

	select {
	case c.Send <- data:
		return nil
	default:
		return ErrClientQueueFull
	}
}

func (c *Client) SendError(message string) {
	c.SendEvent(EventError, map[string]string{
		"message": message,
	})
}

func (c *Client) InChannel(channel string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.channels[channel]
}

func (c *Client) Channels() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list := make([]string, 0, len(c.channels))
	for channel := range c.channels {
		list = append(list, channel)
	}
	return list
}
