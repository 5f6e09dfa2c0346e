package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/skillbridge/internal/models"
	"gorm.io/gorm"
)

// Фейковое хранилище чатов для тестов guard'а и чат-обработчиков
type fakeChatStore struct {
	rooms     map[uuid.UUID]*models.ChatRoom
	messages  map[uuid.UUID]*models.Message
	markedIDs []uuid.UUID
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{
		rooms:    make(map[uuid.UUID]*models.ChatRoom),
		messages: make(map[uuid.UUID]*models.Message),
	}
}

func (s *fakeChatStore) GetChatRoom(id uuid.UUID) (*models.ChatRoom, error) {
	room, ok := s.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return room, nil
}

func (s *fakeChatStore) GetMessage(id uuid.UUID) (*models.Message, error) {
	msg, ok := s.messages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return msg, nil
}

func (s *fakeChatStore) MarkMessageRead(id uuid.UUID, readAt time.Time) error {
	if msg, ok := s.messages[id]; ok {
		msg.IsRead = true
		msg.ReadAt = &readAt
	}
	s.markedIDs = append(s.markedIDs, id)
	return nil
}

// addRoom создает комнату с двумя участниками и возвращает её ID
func (s *fakeChatStore) addRoom(clientUserID, specialistUserID uuid.UUID, clientName, specialistName string) uuid.UUID {
	roomID := uuid.New()
	s.rooms[roomID] = &models.ChatRoom{
		ID: roomID,
		Client: models.Client{
			UserID: clientUserID,
			User:   models.User{ID: clientUserID, FirstName: clientName},
		},
		Specialist: models.Specialist{
			UserID: specialistUserID,
			User:   models.User{ID: specialistUserID, FirstName: specialistName},
		},
	}
	return roomID
}

func (s *fakeChatStore) addMessage(roomID, senderID uuid.UUID) uuid.UUID {
	msgID := uuid.New()
	s.messages[msgID] = &models.Message{
		ID:        msgID,
		RoomID:    roomID,
		SenderID:  senderID,
		Text:      "hello",
		CreatedAt: time.Now(),
	}
	return msgID
}

type fakeNotificationStore struct {
	notifications map[uuid.UUID]*models.Notification
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{
		notifications: make(map[uuid.UUID]*models.Notification),
	}
}

func (s *fakeNotificationStore) GetNotification(id uuid.UUID) (*models.Notification, error) {
	n, ok := s.notifications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return n, nil
}

func (s *fakeNotificationStore) MarkNotificationRead(id uuid.UUID, readAt time.Time) error {
	if n, ok := s.notifications[id]; ok {
		n.ReadAt = &readAt
	}
	return nil
}

func (s *fakeNotificationStore) MarkAllNotificationsRead(userID uuid.UUID, readAt time.Time) error {
	for _, n := range s.notifications {
		if n.UserID == userID && n.ReadAt == nil {
			at := readAt
			n.ReadAt = &at
		}
	}
	return nil
}

func (s *fakeNotificationStore) CountUnreadNotifications(userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range s.notifications {
		if n.UserID == userID && n.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

func (s *fakeNotificationStore) add(userID uuid.UUID) uuid.UUID {
	id := uuid.New()
	s.notifications[id] = &models.Notification{
		ID:        id,
		UserID:    userID,
		Subject:   "test",
		CreatedAt: time.Now(),
	}
	return id
}

func newTestHub() *Hub {
	return NewHub(DefaultConfig(), NewMemoryPresence())
}

// newTestClient создает соединение без сокета: насосы не запускаются,
// события читаются прямо из Send
func newTestClient(h *Hub, userID uuid.UUID) *Client {
	c := &Client{
		ID:       uuid.New(),
		UserID:   userID,
		Send:     make(chan []byte, 64),
		Hub:      h,
		channels: make(map[string]bool),
	}
	h.registerClient(c)
	return c
}

// drainEvents забирает все накопившиеся события из очереди клиента
func drainEvents(t *testing.T, c *Client) []Event {
	t.Helper()

	var events []Event
	for {
		select {
		case data := <-c.Send:
			var ev Event
			if err := json.Unmarshal(data, &ev); err != nil {
				t.Fatalf("failed to unmarshal event: %v", err)
			}
			events = append(events, ev)
		default:
			return events
		}
	}
}

// findEvent ищет единственное событие с данным именем
func findEvent(events []Event, name string) (Event, bool) {
	for _, ev := range events {
		if ev.Event == name {
			return ev, true
		}
	}
	return Event{}, false
}

func countEvents(events []Event, name string) int {
	n := 0
	for _, ev := range events {
		if ev.Event == name {
			n++
		}
	}
	return n
}

func rawPayload(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	return data
}
