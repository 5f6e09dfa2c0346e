package models

import (
	"time"

	"github.com/google/uuid"
)

type Specialist struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Title       string    `gorm:"not null"`
	Description string
	HourlyRate  float64 `gorm:"not null;default:0"`
	Rating      float64 `gorm:"default:0"`
	ReviewCount int     `gorm:"default:0"`
	Balance     float64 `gorm:"not null;default:0"`
	IsVerified  bool    `gorm:"default:false"`
	CreatedAt   time.Time

	// Связи
	User User `gorm:"foreignKey:UserID"`
}
