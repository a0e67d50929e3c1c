package specification

import (
	"time"

	"gorm.io/gorm"

	"github.com/google/uuid"
)

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// Session Specs

type ExpiresAfter struct {
	Time time.Time
}

func (s ExpiresAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at > ?", s.Time)
}

type ExpiredBefore struct {
	Time time.Time
}

func (s ExpiredBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at <= ?", s.Time)
}
