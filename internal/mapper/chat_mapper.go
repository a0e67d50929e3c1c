package mapper

import (
	"encoding/json"

	"docchat-be/internal/entity"
	"docchat-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Chat Mappers

func (m *ChatMapper) ChatToEntity(c *model.Chat) *entity.Chat {
	if c == nil {
		return nil
	}
	return &entity.Chat{
		Id:        c.Id,
		UserId:    c.UserId,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *ChatMapper) ChatToModel(c *entity.Chat) *model.Chat {
	if c == nil {
		return nil
	}
	return &model.Chat{
		Id:        c.Id,
		UserId:    c.UserId,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	var citations []string
	if len(msg.Citations) > 0 {
		// malformed citations read as none
		_ = json.Unmarshal(msg.Citations, &citations)
	}

	return &entity.ChatMessage{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		Position:  msg.Position,
		Role:      entity.MessageRole(msg.Role),
		Content:   msg.Content,
		Citations: citations,
		CreatedAt: msg.CreatedAt,
		UpdatedAt: msg.UpdatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	var citations datatypes.JSON
	if len(msg.Citations) > 0 {
		raw, err := json.Marshal(msg.Citations)
		if err == nil {
			citations = datatypes.JSON(raw)
		}
	}

	return &model.ChatMessage{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		Position:  msg.Position,
		Role:      string(msg.Role),
		Content:   msg.Content,
		Citations: citations,
		CreatedAt: msg.CreatedAt,
		UpdatedAt: msg.UpdatedAt,
	}
}
