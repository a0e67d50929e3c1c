package chatstate

import (
	"time"

	"github.com/google/uuid"
)

type ActionType string

const (
	ActionChatCreated       ActionType = "chat.created"
	ActionChatRenamed       ActionType = "chat.renamed"
	ActionChatDeleted       ActionType = "chat.deleted"
	ActionMessageAppended   ActionType = "message.appended"
	ActionMessageEdited     ActionType = "message.edited"
	ActionMessagesTruncated ActionType = "messages.truncated"
)

type Message struct {
	Id        uuid.UUID `json:"id"`
	ChatId    uuid.UUID `json:"chatId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Citations []string  `json:"citations,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Chat struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	Messages  []Message `json:"messages"`
}

// Action is one discrete change to a user's chat store.
type Action struct {
	Type    ActionType `json:"type"`
	ChatId  uuid.UUID  `json:"chatId"`
	Chat    *Chat      `json:"chat,omitempty"`
	Message *Message   `json:"message,omitempty"`
	Title   string     `json:"title,omitempty"`
	// messages.truncated keeps everything up to and including this message
	AfterMessageId uuid.UUID `json:"afterMessageId"`
}

func ChatCreated(chat Chat) Action {
	return Action{Type: ActionChatCreated, ChatId: chat.Id, Chat: &chat}
}

func ChatRenamed(chatId uuid.UUID, title string) Action {
	return Action{Type: ActionChatRenamed, ChatId: chatId, Title: title}
}

func ChatDeleted(chatId uuid.UUID) Action {
	return Action{Type: ActionChatDeleted, ChatId: chatId}
}

func MessageAppended(message Message) Action {
	return Action{Type: ActionMessageAppended, ChatId: message.ChatId, Message: &message}
}

func MessageEdited(message Message) Action {
	return Action{Type: ActionMessageEdited, ChatId: message.ChatId, Message: &message}
}

func MessagesTruncated(chatId, afterMessageId uuid.UUID) Action {
	return Action{Type: ActionMessagesTruncated, ChatId: chatId, AfterMessageId: afterMessageId}
}
