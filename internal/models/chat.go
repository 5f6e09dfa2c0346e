package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatRoom — комната между одним клиентом и одним специалистом.
// Пара (client_id, specialist_id) уникальна, комната создается лениво
// при первом обращении. Состав участников неизменен.
type ChatRoom struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_rooms_pair"`
	SpecialistID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_rooms_pair"`
	CreatedAt    time.Time

	// Связи
	Client     Client     `gorm:"foreignKey:ClientID"`
	Specialist Specialist `gorm:"foreignKey:SpecialistID"`
	Messages   []Message  `gorm:"foreignKey:RoomID"`
}

type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RoomID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null"`
	Text      string    `gorm:"not null"`
	IsRead    bool      `gorm:"not null;default:false"`
	ReadAt    *time.Time
	CreatedAt time.Time

	// Связи
	Sender User     `gorm:"foreignKey:SenderID"`
	Room   ChatRoom `gorm:"foreignKey:RoomID"`
}
