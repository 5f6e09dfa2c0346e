package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOnline  Status = "online"
	StatusAway    Status = "away"
	StatusOffline Status = "offline"
)

type PresenceRecord struct {
	UserID       uuid.UUID `json:"userId"`
	Status       Status    `json:"status"`
	LastSeen     time.Time `json:"lastSeen"`
	ConnectionID uuid.UUID `json:"-"`
}

// PresenceStore — реестр статусов. Интерфейс позволяет заменить
// in-memory реализацию на внешнее хранилище при горизонтальном
// масштабировании, не трогая обработчики.
type PresenceStore interface {
	Set(userID uuid.UUID, status Status, connectionID uuid.UUID)
	Get(userID uuid.UUID) (PresenceRecord, bool)
	ListOnline() []PresenceRecord
}

// MemoryPresence хранит по одной записи на каждого пользователя,
// подключавшегося за время жизни процесса. Записи не вытесняются:
// память растет с числом уникальных пользователей. Запись перезаписывается
// безусловно (last-writer-wins) — при нескольких соединениях одного
// пользователя порядок не гарантируется.
type MemoryPresence struct {
	mu      sync.RWMutex
	records map[uuid.UUID]PresenceRecord
}

func NewMemoryPresence() *MemoryPresence {
	return &MemoryPresence{
		records: make(map[uuid.UUID]PresenceRecord),
	}
}

func (p *MemoryPresence) Set(userID uuid.UUID, status Status, connectionID uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.records[userID] = PresenceRecord{
		UserID:       userID,
		Status:       status,
		LastSeen:     time.Now(),
		ConnectionID: connectionID,
	}
}

func (p *MemoryPresence) Get(userID uuid.UUID) (PresenceRecord, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	rec, ok := p.records[userID]
	return rec, ok
}

func (p *MemoryPresence) ListOnline() []PresenceRecord {
	p.mu.RLock()
	defer p.mu.RUnlock()

	online := make([]PresenceRecord, 0)
	for _, rec := range p.records {
		if rec.Status == StatusOnline {
			online = append(online, rec)
		}
	}
	return online
}
