package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusDeclined  = "declined"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

type Booking struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID     uuid.UUID `gorm:"type:uuid;not null;index"`
	SpecialistID uuid.UUID `gorm:"type:uuid;not null;index"`
	StartsAt     time.Time `gorm:"not null"`
	EndsAt       time.Time `gorm:"not null"`
	Status       string    `gorm:"not null;default:'pending'"`
	Price        float64   `gorm:"not null;default:0"`
	Comment      string
	CreatedAt    time.Time

	// Связи
	Client     Client     `gorm:"foreignKey:ClientID"`
	Specialist Specialist `gorm:"foreignKey:SpecialistID"`
}
