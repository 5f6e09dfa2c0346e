package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type PresenceHandlers struct {
	hub      *Hub
	presence PresenceStore
}

func NewPresenceHandlers(hub *Hub, presence PresenceStore) *PresenceHandlers {
	return &PresenceHandlers{hub: hub, presence: presence}
}

type statusPayload struct {
	Status Status `json:"status"`
}

type userRef struct {
	UserID uuid.UUID `json:"userId"`
}

type userStatusReply struct {
	UserID   uuid.UUID  `json:"userId"`
	Status   Status     `json:"status"`
	LastSeen *time.Time `json:"lastSeen"`
}

type presenceRoomBroadcast struct {
	RoomID    uuid.UUID `json:"roomId"`
	UserID    uuid.UUID `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

// UpdateStatus — явная смена статуса. offline так выставить нельзя,
// он наступает только при разрыве соединения.
func (h *PresenceHandlers) UpdateStatus(c *Client, data json.RawMessage) {
	var p statusPayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.SendError("invalid payload")
		return
	}

	if p.Status != StatusOnline && p.Status != StatusAway {
		c.SendError("invalid status")
		return
	}

	h.presence.Set(c.UserID, p.Status, c.ID)

	ev, err := marshalEvent(EventUserStatus, StatusBroadcast{
		UserID:    c.UserID,
		Status:    p.Status,
		Timestamp: time.Now(),
	})
	if err != nil {
		return
	}

	// Статус глобален, рассылка не ограничена комнатами
	h.hub.BroadcastToAll(ev, c.ID)
}

func (h *PresenceHandlers) GetOnline(c *Client) {
	c.SendEvent(EventPresenceOnline, map[string]interface{}{
		"users": h.presence.ListOnline(),
	})
}

// GetUser возвращает статус одного пользователя; для никогда не
// подключавшегося — offline без lastSeen
func (h *PresenceHandlers) GetUser(c *Client, data json.RawMessage) {
	var p userRef
	if err := json.Unmarshal(data, &p); err != nil || p.UserID == uuid.Nil {
		c.SendError("invalid payload")
		return
	}

	reply := userStatusReply{
		UserID: p.UserID,
		Status: StatusOffline,
	}

	if rec, ok := h.presence.Get(p.UserID); ok {
		lastSeen := rec.LastSeen
		reply.Status = rec.Status
		reply.LastSeen = &lastSeen
	}

	c.SendEvent(EventPresenceUserStatus, reply)
}

// JoinChat подписывает на канал "кто смотрит диалог". Канал не несет
// содержимого комнаты, поэтому проверка участия здесь не выполняется —
// границей авторизации остаются каналы сообщений и typing.
func (h *PresenceHandlers) JoinChat(c *Client, data json.RawMessage) {
	var p roomRef
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == uuid.Nil {
		c.SendError("invalid payload")
		return
	}

	h.hub.Subscribe(c, PresenceChannel(p.RoomID))

	ev, err := marshalEvent(EventPresenceUserJoined, presenceRoomBroadcast{
		RoomID:    p.RoomID,
		UserID:    c.UserID,
		Timestamp: time.Now(),
	})
	if err != nil {
		return
	}

	h.hub.BroadcastToChannel(PresenceChannel(p.RoomID), ev, c.ID)
}

func (h *PresenceHandlers) LeaveChat(c *Client, data json.RawMessage) {
	var p roomRef
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == uuid.Nil {
		c.SendError("invalid payload")
		return
	}

	h.hub.Unsubscribe(c, PresenceChannel(p.RoomID))

	ev, err := marshalEvent(EventPresenceUserLeft, presenceRoomBroadcast{
		RoomID:    p.RoomID,
		UserID:    c.UserID,
		Timestamp: time.Now(),
	})
	if err != nil {
		return
	}

	h.hub.BroadcastToChannel(PresenceChannel(p.RoomID), ev, c.ID)
}
