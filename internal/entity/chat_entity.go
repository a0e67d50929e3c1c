package entity

import (
	"time"

	"github.com/google/uuid"
)

type Chat struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Chat) OwnedBy(userId uuid.UUID) bool {
	return c != nil && c.UserId == userId
}
