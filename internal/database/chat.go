package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/skillbridge/internal/models"
	"gorm.io/gorm"
)

// GetChatRoom загружает комнату вместе с пользователями обоих участников
func (d *Database) GetChatRoom(id uuid.UUID) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := d.db.
		Preload("Client.User").
		Preload("Specialist.User").
		First(&room, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetOrCreateChatRoom ищет комнату пары клиент-специалист, создавая её при первом обращении
func (d *Database) GetOrCreateChatRoom(clientID, specialistID uuid.UUID) (*models.ChatRoom, error) {
	var room models.ChatRoom

	err := d.db.
		Where("client_id = ? AND specialist_id = ?", clientID, specialistID).
		First(&room).Error

	if err == nil {
		return d.GetChatRoom(room.ID)
	}

	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	room = models.ChatRoom{
		ClientID:     clientID,
		SpecialistID: specialistID,
		CreatedAt:    time.Now(),
	}

	if err := d.db.Create(&room).Error; err != nil {
		return nil, err
	}

	return d.GetChatRoom(room.ID)
}

// GetUserChatRooms возвращает все комнаты, где пользователь — клиент или специалист
func (d *Database) GetUserChatRooms(userID uuid.UUID) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := d.db.
		Joins("JOIN clients ON clients.id = chat_rooms.client_id").
		Joins("JOIN specialists ON specialists.id = chat_rooms.specialist_id").
		Where("clients.user_id = ? OR specialists.user_id = ?", userID, userID).
		Preload("Client.User").
		Preload("Specialist.User").
		Order("chat_rooms.created_at DESC").
		Find(&rooms).Error
	return rooms, err
}

func (d *Database) SaveMessage(message *models.Message) error {
	return d.db.Create(message).Error
}

func (d *Database) GetMessage(id uuid.UUID) (*models.Message, error) {
	var message models.Message
	if err := d.db.First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (d *Database) MarkMessageRead(id uuid.UUID, readAt time.Time) error {
	return d.db.Model(&models.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_read": true, "read_at": readAt}).Error
}

// GetRoomMessages получает сообщения комнаты с пагинацией
func (d *Database) GetRoomMessages(roomID uuid.UUID, limit int, beforeID *uuid.UUID) ([]models.Message, error) {
	var messages []models.Message

	query := d.db.Where("room_id = ?", roomID)

	// Если указан beforeID, получаем сообщения до него
	if beforeID != nil {
		var beforeMsg models.Message
		if err := d.db.First(&beforeMsg, "id = ?", beforeID).Error; err == nil {
			query = query.Where("created_at < ?", beforeMsg.CreatedAt)
		}
	}

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Preload("Sender").
		Find(&messages).Error

	if err != nil {
		return nil, err
	}

	// Разворачиваем порядок, чтобы старые сообщения были первыми
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (d *Database) CountUnreadMessages(roomID, userID uuid.UUID) (int64, error) {
	var count int64
	err := d.db.Model(&models.Message{}).
		Where("room_id = ? AND sender_id != ? AND is_read = false", roomID, userID).
		Count(&count).Error
	return count, err
}
