package models

import (
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Phone     string
	City      string
	CreatedAt time.Time

	// Связи
	User User `gorm:"foreignKey:UserID"`
}
