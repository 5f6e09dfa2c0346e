package realtime

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/skillbridge/internal/models"
)

type ChatHandlers struct {
	hub   *Hub
	guard *Guard
	store ChatStore
}

func NewChatHandlers(hub *Hub, guard *Guard, store ChatStore) *ChatHandlers {
	return &ChatHandlers{hub: hub, guard: guard, store: store}
}

type roomRef struct {
	RoomID uuid.UUID `json:"roomId"`
}

type typingPayload struct {
	RoomID   uuid.UUID `json:"roomId"`
	IsTyping bool      `json:"isTyping"`
}

type typingBroadcast struct {
	RoomID   uuid.UUID `json:"roomId"`
	UserID   uuid.UUID `json:"userId"`
	UserName string    `json:"userName"`
	IsTyping bool      `json:"isTyping"`
}

type markReadPayload struct {
	MessageID uuid.UUID `json:"messageId"`
	RoomID    uuid.UUID `json:"roomId"`
}

type readReceipt struct {
	MessageID uuid.UUID `json:"messageId"`
	RoomID    uuid.UUID `json:"roomId"`
	ReadBy    uuid.UUID `json:"readBy"`
	ReadAt    time.Time `json:"readAt"`
}

// Join подписывает соединение на канал комнаты после проверки участия.
// Проверка повторяется на каждый join — долгоживущему соединению нельзя
// верить на слово после одного рукопожатия.
func (h *ChatHandlers) Join(c *Client, data json.RawMessage) {
	var p roomRef
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == uuid.Nil {
		c.SendError("invalid payload")
		return
	}

	_, err := h.guard.ChatRoomAccess(c.UserID, p.RoomID)
	switch {
	case errors.Is(err, ErrRoomNotFound):
		c.SendError("room not found")
		return
	case errors.Is(err, ErrNotParticipant):
		c.SendError("access denied")
		return
	case err != nil:
		log.Printf("chat join check failed: %v", err)
		c.SendError("internal error")
		return
	}

	h.hub.Subscribe(c, ChatChannel(p.RoomID))
	c.SendEvent(EventChatJoined, roomRef{RoomID: p.RoomID})
}

// Leave — безусловная отписка, идемпотентна, без ответа
func (h *ChatHandlers) Leave(c *Client, data json.RawMessage) {
	var p roomRef
	if err := json.Unmarshal(data, &p); err != nil {
		c.SendError("invalid payload")
		return
	}

	h.hub.Unsubscribe(c, ChatChannel(p.RoomID))
}

// Typing рассылает индикатор набора остальным участникам комнаты.
// Неавторизованный вызов молча игнорируется: событие малозначимое,
// ошибка в UI пользователю тут не нужна.
func (h *ChatHandlers) Typing(c *Client, data json.RawMessage) {
	var p typingPayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.SendError("invalid payload")
		return
	}

	room, err := h.guard.ChatRoomAccess(c.UserID, p.RoomID)
	if err != nil {
		if !errors.Is(err, ErrRoomNotFound) && !errors.Is(err, ErrNotParticipant) {
			log.Printf("chat typing check failed: %v", err)
		}
		return
	}

	ev, err := marshalEvent(EventChatTyping, typingBroadcast{
		RoomID:   p.RoomID,
		UserID:   c.UserID,
		UserName: participantName(room, c.UserID),
		IsTyping: p.IsTyping,
	})
	if err != nil {
		return
	}

	h.hub.BroadcastToChannel(ChatChannel(p.RoomID), ev, c.ID)
}

// MarkRead помечает чужое сообщение прочитанным и рассылает квитанцию
// всей комнате, включая автора. Любое несоответствие (нет сообщения,
// не та комната, нет доступа, читатель — автор) — тихий no-op.
func (h *ChatHandlers) MarkRead(c *Client, data json.RawMessage) {
	var p markReadPayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.SendError("invalid payload")
		return
	}

	if _, err := h.guard.ChatRoomAccess(c.UserID, p.RoomID); err != nil {
		if !errors.Is(err, ErrRoomNotFound) && !errors.Is(err, ErrNotParticipant) {
			log.Printf("chat mark-read check failed: %v", err)
		}
		return
	}

	msg, err := h.store.GetMessage(p.MessageID)
	if err != nil {
		return
	}

	if msg.RoomID != p.RoomID {
		return
	}

	// Автор не может прочитать собственное сообщение
	if msg.SenderID == c.UserID {
		return
	}

	readAt := time.Now()
	if err := h.store.MarkMessageRead(msg.ID, readAt); err != nil {
		log.Printf("failed to mark message read: %v", err)
		c.SendError("internal error")
		return
	}

	ev, err := marshalEvent(EventChatMessageRead, readReceipt{
		MessageID: msg.ID,
		RoomID:    p.RoomID,
		ReadBy:    c.UserID,
		ReadAt:    readAt,
	})
	if err != nil {
		return
	}

	h.hub.BroadcastToChannel(ChatChannel(p.RoomID), ev, uuid.Nil)
}

func participantName(room *models.ChatRoom, userID uuid.UUID) string {
	if room.Client.UserID == userID {
		return room.Client.User.DisplayName()
	}
	return room.Specialist.User.DisplayName()
}
