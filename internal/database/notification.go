package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/skillbridge/internal/models"
)

func (d *Database) SaveNotification(n *models.Notification) error {
	return d.db.Create(n).Error
}

func (d *Database) GetNotification(id uuid.UUID) (*models.Notification, error) {
	var n models.Notification
	if err := d.db.First(&n, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (d *Database) GetUserNotifications(userID uuid.UUID, limit, offset int) ([]models.Notification, error) {
	var list []models.Notification
	err := d.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	return list, err
}

func (d *Database) MarkNotificationRead(id uuid.UUID, readAt time.Time) error {
	return d.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Update("read_at", readAt).Error
}

// MarkAllNotificationsRead помечает все непрочитанные уведомления пользователя
func (d *Database) MarkAllNotificationsRead(userID uuid.UUID, readAt time.Time) error {
	return d.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", readAt).Error
}

func (d *Database) CountUnreadNotifications(userID uuid.UUID) (int64, error) {
	var count int64
	err := d.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}
