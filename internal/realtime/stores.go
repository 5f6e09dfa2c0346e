package realtime

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/skillbridge/internal/models"
)

// ChatStore — срез хранилища, нужный чат-обработчикам. Реализуется
// internal/database. GetChatRoom обязан подгружать Client.User и
// Specialist.User — по ним проверяется участие и берутся имена.
type ChatStore interface {
	GetChatRoom(id uuid.UUID) (*models.ChatRoom, error)
	GetMessage(id uuid.UUID) (*models.Message, error)
	MarkMessageRead(id uuid.UUID, readAt time.Time) error
}

type NotificationStore interface {
	GetNotification(id uuid.UUID) (*models.Notification, error)
	MarkNotificationRead(id uuid.UUID, readAt time.Time) error
	MarkAllNotificationsRead(userID uuid.UUID, readAt time.Time) error
	CountUnreadNotifications(userID uuid.UUID) (int64, error)
}
