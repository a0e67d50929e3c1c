package service

import (
	"docchat-be/internal/dto"
	"docchat-be/internal/entity"
	"docchat-be/pkg/chatstate"
)

func toUserResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		Id:        user.Id,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func toMessageResponse(m *entity.ChatMessage) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:        m.Id,
		ChatId:    m.ChatId,
		Role:      string(m.Role),
		Content:   m.Content,
		Citations: m.Citations,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toChatResponse(chat *entity.Chat, messages []*entity.ChatMessage) *dto.ChatResponse {
	res := &dto.ChatResponse{
		Id:        chat.Id,
		Title:     chat.Title,
		UserId:    chat.UserId,
		CreatedAt: chat.CreatedAt,
		UpdatedAt: chat.UpdatedAt,
		Messages:  make([]*dto.MessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		res.Messages = append(res.Messages, toMessageResponse(m))
	}
	return res
}

func toStateMessage(m *entity.ChatMessage) chatstate.Message {
	return chatstate.Message{
		Id:        m.Id,
		ChatId:    m.ChatId,
		Role:      string(m.Role),
		Content:   m.Content,
		Citations: m.Citations,
		CreatedAt: m.CreatedAt,
	}
}

func toStateChat(chat *entity.Chat, messages []*entity.ChatMessage) chatstate.Chat {
	c := chatstate.Chat{
		Id:        chat.Id,
		Title:     chat.Title,
		CreatedAt: chat.CreatedAt,
		Messages:  make([]chatstate.Message, 0, len(messages)),
	}
	for _, m := range messages {
		c.Messages = append(c.Messages, toStateMessage(m))
	}
	return c
}
