package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	NotificationTypeInApp = "in-app"
	NotificationTypeEmail = "email"

	NotificationStatusPending   = "pending"
	NotificationStatusDelivered = "delivered"
	NotificationStatusFailed    = "failed"
)

type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"not null;default:'in-app';check:type IN ('in-app','email')"`
	Subject   string    `gorm:"not null"`
	Message   string    `gorm:"not null"`
	ActionURL string
	Payload   json.RawMessage `gorm:"type:jsonb"`
	Status    string          `gorm:"not null;default:'pending'"`
	ReadAt    *time.Time
	CreatedAt time.Time

	// Связи
	User User `gorm:"foreignKey:UserID"`
}
