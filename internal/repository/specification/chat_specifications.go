package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatID struct {
	ChatID uuid.UUID
}

func (s ByChatID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_id = ?", s.ChatID)
}

type ByChatIDs struct {
	ChatIDs []uuid.UUID
}

func (s ByChatIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_id IN ?", s.ChatIDs)
}

// PositionAfter matches messages that come after the given position in their chat.
type PositionAfter struct {
	Position int
}

func (s PositionAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("position > ?", s.Position)
}

// InConversationOrder sorts messages the way they were appended.
type InConversationOrder struct{}

func (s InConversationOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("chat_id ASC").Order("position ASC")
}
