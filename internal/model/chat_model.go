package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Chat struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"` // User ownership for data isolation
	Title     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Chat) TableName() string {
	return "chats"
}

type ChatMessage struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ChatId    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_chat_message_position,priority:1"`
	Position  int            `gorm:"not null;uniqueIndex:idx_chat_message_position,priority:2"`
	Role      string         `gorm:"type:varchar(16);not null"`
	Content   string         `gorm:"type:text;not null"`
	Citations datatypes.JSON `gorm:"type:json"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
