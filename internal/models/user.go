package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	RoleClient     = "client"
	RoleSpecialist = "specialist"
	RoleAdmin      = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	FirstName    string    `gorm:"not null"`
	LastName     string    `gorm:"not null"`
	Role         string    `gorm:"not null;check:role IN ('client','specialist','admin')"`
	AvatarURL    string
	LastSeenAt   time.Time
	CreatedAt    time.Time
}

// DisplayName возвращает имя для отображения в чате
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}
