package realtime

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationHandlers struct {
	hub   *Hub
	store NotificationStore
}

func NewNotificationHandlers(hub *Hub, store NotificationStore) *NotificationHandlers {
	return &NotificationHandlers{hub: hub, store: store}
}

type notificationRef struct {
	NotificationID uuid.UUID `json:"notificationId"`
}

// Subscribe подписывает на алиас-канал уведомлений. Канал строится из
// личности соединения, чужой указать нельзя. Идемпотентно.
func (h *NotificationHandlers) Subscribe(c *Client) {
	h.hub.Subscribe(c, NotificationsChannel(c.UserID))
}

func (h *NotificationHandlers) Unsubscribe(c *Client) {
	h.hub.Unsubscribe(c, NotificationsChannel(c.UserID))
}

// MarkRead помечает уведомление прочитанным. Ответ идет только
// запросившему — уведомления приватны, broadcast'а нет.
func (h *NotificationHandlers) MarkRead(c *Client, data json.RawMessage) {
	var p notificationRef
	if err := json.Unmarshal(data, &p); err != nil || p.NotificationID == uuid.Nil {
		c.SendError("invalid payload")
		return
	}

	n, err := h.store.GetNotification(p.NotificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.SendError("notification not found")
			return
		}
		log.Printf("failed to load notification: %v", err)
		c.SendError("internal error")
		return
	}

	if n.UserID != c.UserID {
		c.SendError("access denied")
		return
	}

	if err := h.store.MarkNotificationRead(n.ID, time.Now()); err != nil {
		log.Printf("failed to mark notification read: %v", err)
		c.SendError("internal error")
		return
	}

	c.SendEvent(EventNotificationsRead, notificationRef{NotificationID: n.ID})
}

// MarkAllRead — массовое обновление, всегда успешно (no-op без непрочитанных)
func (h *NotificationHandlers) MarkAllRead(c *Client) {
	if err := h.store.MarkAllNotificationsRead(c.UserID, time.Now()); err != nil {
		log.Printf("failed to mark all notifications read: %v", err)
		c.SendError("internal error")
		return
	}

	c.SendEvent(EventNotificationsAllRead, map[string]uuid.UUID{
		"userId": c.UserID,
	})
}

func (h *NotificationHandlers) GetUnreadCount(c *Client) {
	count, err := h.store.CountUnreadNotifications(c.UserID)
	if err != nil {
		log.Printf("failed to count unread notifications: %v", err)
		c.SendError("internal error")
		return
	}

	c.SendEvent(EventNotificationsCount, map[string]int64{
		"count": count,
	})
}
