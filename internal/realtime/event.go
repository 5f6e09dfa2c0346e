package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Имена событий — стабильный контракт с фронтендом
const (
	EventError = "error"

	// Чат
	EventChatJoin        = "chat:join"
	EventChatJoined      = "chat:joined"
	EventChatLeave       = "chat:leave"
	EventChatTyping      = "chat:typing"
	EventChatMessageRead = "chat:message:read"
	EventChatMessageNew  = "chat:message:new"

	// Уведомления
	EventNotificationsSubscribe   = "notifications:subscribe"
	EventNotificationsUnsubscribe = "notifications:unsubscribe"
	EventNotificationsMarkRead    = "notifications:mark-read"
	EventNotificationsMarkAllRead = "notifications:mark-all-read"
	EventNotificationsUnreadCount = "notifications:get-unread-count"
	EventNotificationsRead        = "notifications:read"
	EventNotificationsAllRead     = "notifications:all-read"
	EventNotificationsCount       = "notifications:unread-count"
	EventNotificationNew          = "notification:new"
	EventNotificationUpdated      = "notification:updated"

	// Присутствие
	EventPresenceUpdate     = "presence:update"
	EventPresenceGetOnline  = "presence:get-online"
	EventPresenceGetUser    = "presence:get-user"
	EventPresenceJoinChat   = "presence:join-chat"
	EventPresenceLeaveChat  = "presence:leave-chat"
	EventPresenceOnline     = "presence:online-users"
	EventPresenceUserStatus = "presence:user-status"
	EventPresenceUserJoined = "presence:user-joined"
	EventPresenceUserLeft   = "presence:user-left"
	EventUserStatus         = "user:status"
	EventUserOnline         = "user:online"
	EventUserOffline        = "user:offline"
)

// Event — конверт всех сообщений через сокет в обе стороны
type Event struct {
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

func marshalEvent(name string, payload interface{}) ([]byte, error) {
	ev := Event{
		Event:     name,
		Timestamp: time.Now(),
	}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		ev.Data = data
	}

	return json.Marshal(ev)
}

// Имена каналов. Комнатные каналы чата и каналы "кто смотрит диалог"
// разделены: авторизация действует на chat:*, presence:* открыт любому
// аутентифицированному пользователю.
func ChatChannel(roomID uuid.UUID) string {
	return "chat:" + roomID.String()
}

func UserChannel(userID uuid.UUID) string {
	return "user:" + userID.String()
}

func NotificationsChannel(userID uuid.UUID) string {
	return "notifications:" + userID.String()
}

func PresenceChannel(roomID uuid.UUID) string {
	return "presence:" + roomID.String()
}
