package realtime

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Config struct {
	// Интервал протокольных ping и таймаут ожидания pong —
	// единственный механизм обнаружения мертвых соединений
	PingInterval time.Duration
	PongTimeout  time.Duration

	WriteTimeout   time.Duration
	SendQueueSize  int
	MaxMessageSize int64
}

func DefaultConfig() Config {
	return Config{
		PingInterval:   54 * time.Second,
		PongTimeout:    60 * time.Second,
		WriteTimeout:   10 * time.Second,
		SendQueueSize:  256,
		MaxMessageSize: 512 * 1024,
	}
}

// Hub держит все живые соединения, граф подписок соединение-канал и
// реестр присутствия. Все состояние процесс-локально: деплой в несколько
// инстансов потребует внешней шины broadcast'ов.
type Hub struct {
	cfg      Config
	presence PresenceStore

	clients map[uuid.UUID]*Client

	// Соединения по UserID (один пользователь может держать несколько)
	userClients map[uuid.UUID]map[uuid.UUID]*Client

	// Подписки на каналы: chat:<id>, user:<id>, notifications:<id>, presence:<id>
	channels map[string]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(cfg Config, presence PresenceStore) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		cfg:         cfg,
		presence:    presence,
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uuid.UUID]map[uuid.UUID]*Client),
		channels:    make(map[string]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run запускает цикл регистрации
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

// Stop останавливает hub и закрывает все соединения
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// registerClient принимает аутентифицированное соединение: подписывает
// его на персональный канал пользователя и отмечает присутствие
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
	}
	first := len(h.userClients[client.UserID]) == 0
	h.userClients[client.UserID][client.ID] = client

	h.subscribeUnsafe(client, UserChannel(client.UserID))

	h.presence.Set(client.UserID, StatusOnline, client.ID)

	log.Printf("Client registered: %s (User: %s)", client.ID, client.UserID)

	if first {
		h.notifyUserStatusUnsafe(client.UserID, StatusOnline, EventUserOnline, client.ID)
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	// Снимаем все подписки соединения
	for channel := range client.channels {
		h.removeFromChannelUnsafe(client, channel)
	}

	if userClients, ok := h.userClients[client.UserID]; ok {
		delete(userClients, client.ID)
		if len(userClients) == 0 {
			delete(h.userClients, client.UserID)

			// Последнее соединение пользователя закрылось
			h.presence.Set(client.UserID, StatusOffline, uuid.Nil)
			h.notifyUserStatusUnsafe(client.UserID, StatusOffline, EventUserOffline, client.ID)
		}
	}

	delete(h.clients, client.ID)
	close(client.Send)

	log.Printf("Client unregistered: %s (User: %s)", client.ID, client.UserID)
}

// Subscribe добавляет соединение в канал. Идемпотентно.
func (h *Hub) Subscribe(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.subscribeUnsafe(client, channel)
}

// Unsubscribe убирает соединение из канала. Идемпотентно.
func (h *Hub) Unsubscribe(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromChannelUnsafe(client, channel)
}

func (h *Hub) subscribeUnsafe(client *Client, channel string) {
	if _, ok := h.channels[channel]; !ok {
		h.channels[channel] = make(map[uuid.UUID]*Client)
	}
	h.channels[channel][client.ID] = client

	client.mu.Lock()
	client.channels[channel] = true
	client.mu.Unlock()
}

func (h *Hub) removeFromChannelUnsafe(client *Client, channel string) {
	if subs, ok := h.channels[channel]; ok {
		delete(subs, client.ID)
		if len(subs) == 0 {
			delete(h.channels, channel)
		}
	}

	client.mu.Lock()
	delete(client.channels, channel)
	client.mu.Unlock()
}

// BroadcastToChannel рассылает данные всем подписчикам канала.
// exclude — ID соединения-отправителя, uuid.Nil = без исключений.
func (h *Hub) BroadcastToChannel(channel string, data []byte, exclude uuid.UUID) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	h.broadcastToChannelUnsafe(channel, data, exclude)
}

func (h *Hub) broadcastToChannelUnsafe(channel string, data []byte, exclude uuid.UUID) {
	for _, client := range h.channels[channel] {
		if client.ID == exclude {
			continue
		}
		select {
		case client.Send <- data:
		default:
			log.Printf("Client %s send channel full", client.ID)
		}
	}
}

// SendToUser отправляет данные всем соединениям пользователя
func (h *Hub) SendToUser(userID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.userClients[userID] {
		select {
		case client.Send <- data:
		default:
			log.Printf("Client %s send channel full", client.ID)
		}
	}
}

// BroadcastToAll рассылает данные всем живым соединениям
func (h *Hub) BroadcastToAll(data []byte, exclude uuid.UUID) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.ID == exclude {
			continue
		}
		select {
		case client.Send <- data:
		default:
		}
	}
}

// ChannelUserIDs возвращает пользователей, подписанных на канал
func (h *Hub) ChannelUserIDs(channel string) []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[uuid.UUID]bool)
	for _, client := range h.channels[channel] {
		seen[client.UserID] = true
	}

	users := make([]uuid.UUID, 0, len(seen))
	for userID := range seen {
		users = append(users, userID)
	}
	return users
}

// notifyUserStatusUnsafe шлет статусное событие всем соединениям, кроме exclude.
// TODO: рассылать только контактам пользователя, а не всему процессу
func (h *Hub) notifyUserStatusUnsafe(userID uuid.UUID, status Status, event string, exclude uuid.UUID) {
	data, err := marshalEvent(event, StatusBroadcast{
		UserID:    userID,
		Status:    status,
		Timestamp: time.Now(),
	})
	if err != nil {
		return
	}

	for _, client := range h.clients {
		if client.ID == exclude {
			continue
		}
		select {
		case client.Send <- data:
		default:
		}
	}
}

// StatusBroadcast — полезная нагрузка user:online / user:offline / user:status
type StatusBroadcast struct {
	UserID    uuid.UUID `json:"userId"`
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
