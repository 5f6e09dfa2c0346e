package realtime

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Emitter — push-интерфейс для REST-обработчиков. Создается при старте
// процесса до hub'а и раздается хендлерам; hub присоединяется позже.
// Пока hub не присоединен, Emit* — логируемый no-op: HTTP-сервер может
// начать принимать запросы раньше, чем поднимется сокетный слой, а
// запись в хранилище уже состоялась и откатывать её из-за пуша нельзя.
type Emitter struct {
	mu  sync.RWMutex
	hub *Hub
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

func (e *Emitter) Attach(hub *Hub) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hub = hub
}

func (e *Emitter) attached() *Hub {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.hub
}

// EmitToRoom пушит событие всем соединениям в канале комнаты чата
func (e *Emitter) EmitToRoom(roomID uuid.UUID, event string, payload interface{}) {
	hub := e.attached()
	if hub == nil {
		log.Printf("realtime: emitter not attached, dropping %s for room %s", event, roomID)
		return
	}

	data, err := marshalEvent(event, payload)
	if err != nil {
		log.Printf("realtime: failed to marshal %s: %v", event, err)
		return
	}

	hub.BroadcastToChannel(ChatChannel(roomID), data, uuid.Nil)
}

// EmitToUser пушит событие всем соединениям пользователя
func (e *Emitter) EmitToUser(userID uuid.UUID, event string, payload interface{}) {
	hub := e.attached()
	if hub == nil {
		log.Printf("realtime: emitter not attached, dropping %s for user %s", event, userID)
		return
	}

	data, err := marshalEvent(event, payload)
	if err != nil {
		log.Printf("realtime: failed to marshal %s: %v", event, err)
		return
	}

	hub.SendToUser(userID, data)
}

func (e *Emitter) EmitToAll(event string, payload interface{}) {
	hub := e.attached()
	if hub == nil {
		log.Printf("realtime: emitter not attached, dropping %s", event)
		return
	}

	data, err := marshalEvent(event, payload)
	if err != nil {
		log.Printf("realtime: failed to marshal %s: %v", event, err)
		return
	}

	hub.BroadcastToAll(data, uuid.Nil)
}
