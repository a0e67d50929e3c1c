package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	ExpiresAt time.Time
	IpAddress string
	UserAgent string
	CreatedAt time.Time
}

func (s *UserSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
