package realtime

import (
	"errors"

	"github.com/google/uuid"
	"github.com/thereayou/skillbridge/internal/models"
	"gorm.io/gorm"
)

// Guard проверяет право пользователя на комнатные действия. Проверка
// идет в хранилище на каждый вызов и не кешируется: соединение живет
// долго, а существование комнаты — изменяемый факт.
type Guard struct {
	store ChatStore
}

func NewGuard(store ChatStore) *Guard {
	return &Guard{store: store}
}

// ChatRoomAccess возвращает комнату, если userID — её клиент или
// специалист. ErrRoomNotFound / ErrNotParticipant иначе.
func (g *Guard) ChatRoomAccess(userID, roomID uuid.UUID) (*models.ChatRoom, error) {
	room, err := g.store.GetChatRoom(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	if room.Client.UserID != userID && room.Specialist.UserID != userID {
		return nil, ErrNotParticipant
	}

	return room, nil
}

func (g *Guard) CanJoinChatRoom(userID, roomID uuid.UUID) (bool, error) {
	_, err := g.ChatRoomAccess(userID, roomID)
	if errors.Is(err, ErrRoomNotFound) || errors.Is(err, ErrNotParticipant) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CanJoinNotificationChannel — только свой канал, без делегирования
func (g *Guard) CanJoinNotificationChannel(userID, targetUserID uuid.UUID) bool {
	return userID == targetUserID
}
