package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	WithdrawalStatusRequested = "requested"
	WithdrawalStatusApproved  = "approved"
	WithdrawalStatusRejected  = "rejected"
	WithdrawalStatusPaid      = "paid"
)

type Withdrawal struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SpecialistID uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount       float64   `gorm:"not null"`
	Status       string    `gorm:"not null;default:'requested'"`
	CreatedAt    time.Time

	// Связи
	Specialist Specialist `gorm:"foreignKey:SpecialistID"`
}
