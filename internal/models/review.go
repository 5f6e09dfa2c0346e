package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BookingID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ClientID     uuid.UUID `gorm:"type:uuid;not null"`
	SpecialistID uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating       int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment      string
	CreatedAt    time.Time

	// Связи
	Booking Booking `gorm:"foreignKey:BookingID"`
	Client  Client  `gorm:"foreignKey:ClientID"`
}
