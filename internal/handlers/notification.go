package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/skillbridge/internal/database"
	"github.com/thereayou/skillbridge/internal/middleware"
	"github.com/thereayou/skillbridge/internal/models"
	"github.com/thereayou/skillbridge/internal/realtime"
)

type NotificationHandler struct {
	db      *database.Database
	emitter *realtime.Emitter
}

func NewNotificationHandler(db *database.Database, emitter *realtime.Emitter) *NotificationHandler {
	return &NotificationHandler{db: db, emitter: emitter}
}

// List возвращает уведомления пользователя
func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := h.db.GetUserNotifications(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get notifications"})
		return
	}

	unread, _ := h.db.CountUnreadNotifications(userID)

	c.JSON(http.StatusOK, gin.H{
		"notifications": list,
		"unread_count":  unread,
	})
}

// Push сохраняет уведомление и пушит его на живые соединения адресата.
// Вызывается внутренними сервисами (бронирования, платежи), не роутером.
func (h *NotificationHandler) Push(userID uuid.UUID, subject, message, actionURL string, payload interface{}) {
	n := &models.Notification{
		UserID:    userID,
		Type:      models.NotificationTypeInApp,
		Subject:   subject,
		Message:   message,
		ActionURL: actionURL,
		Status:    models.NotificationStatusPending,
		CreatedAt: time.Now(),
	}

	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			n.Payload = data
		}
	}

	if err := h.db.SaveNotification(n); err != nil {
		log.Printf("failed to save notification: %v", err)
		return
	}

	h.emitter.EmitToUser(userID, realtime.EventNotificationNew, n)
}
