package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Text string `json:"text" binding:"required,max=4000"`
}

// MessageResponse — то же представление уходит и в REST-ответ,
// и в пуш chat:message:new
type MessageResponse struct {
	ID        uuid.UUID  `json:"id"`
	RoomID    uuid.UUID  `json:"room_id"`
	SenderID  uuid.UUID  `json:"sender_id"`
	Text      string     `json:"text"`
	IsRead    bool       `json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type RoomResponse struct {
	ID             uuid.UUID        `json:"id"`
	ClientUserID   uuid.UUID        `json:"client_user_id"`
	ClientName     string           `json:"client_name"`
	SpecialistID   uuid.UUID        `json:"specialist_id"`
	SpecialistName string           `json:"specialist_name"`
	CreatedAt      time.Time        `json:"created_at"`
	UnreadCount    int64            `json:"unread_count"`
	LastMessage    *MessageResponse `json:"last_message,omitempty"`
}
