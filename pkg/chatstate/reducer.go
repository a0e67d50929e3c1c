package chatstate

import "github.com/google/uuid"

// State mirrors what a client keeps: chats newest first and the open chat.
type State struct {
	Chats         []Chat    `json:"chats"`
	CurrentChatId uuid.UUID `json:"currentChatId"`
}

// Reduce returns the state after applying action. The input is never modified.
//
// The server only publishes actions. Reduce is the contract websocket clients
// follow to fold them into their chat store, and the tests pin it.
func Reduce(state State, action Action) State {
	switch action.Type {
	case ActionChatCreated:
		if action.Chat == nil {
			return state
		}
		chats := make([]Chat, 0, len(state.Chats)+1)
		chats = append(chats, copyChat(*action.Chat))
		for _, c := range state.Chats {
			if c.Id != action.Chat.Id {
				chats = append(chats, c)
			}
		}
		return State{Chats: chats, CurrentChatId: action.Chat.Id}

	case ActionChatRenamed:
		return updateChat(state, action.ChatId, func(c *Chat) {
			c.Title = action.Title
		})

	case ActionChatDeleted:
		chats := make([]Chat, 0, len(state.Chats))
		for _, c := range state.Chats {
			if c.Id != action.ChatId {
				chats = append(chats, c)
			}
		}
		current := state.CurrentChatId
		if current == action.ChatId {
			current = uuid.Nil
		}
		return State{Chats: chats, CurrentChatId: current}

	case ActionMessageAppended:
		if action.Message == nil {
			return state
		}
		return updateChat(state, action.ChatId, func(c *Chat) {
			for i, m := range c.Messages {
				if m.Id == action.Message.Id {
					c.Messages[i] = *action.Message
					return
				}
			}
			c.Messages = append(c.Messages, *action.Message)
		})

	case ActionMessageEdited:
		if action.Message == nil {
			return state
		}
		return updateChat(state, action.ChatId, func(c *Chat) {
			for i, m := range c.Messages {
				if m.Id == action.Message.Id {
					c.Messages[i].Content = action.Message.Content
					return
				}
			}
		})

	case ActionMessagesTruncated:
		return updateChat(state, action.ChatId, func(c *Chat) {
			for i, m := range c.Messages {
				if m.Id == action.AfterMessageId {
					c.Messages = c.Messages[:i+1]
					return
				}
			}
		})
	}
	return state
}

func updateChat(state State, chatId uuid.UUID, fn func(c *Chat)) State {
	chats := make([]Chat, len(state.Chats))
	for i, c := range state.Chats {
		if c.Id == chatId {
			c = copyChat(c)
			fn(&c)
		}
		chats[i] = c
	}
	return State{Chats: chats, CurrentChatId: state.CurrentChatId}
}

func copyChat(c Chat) Chat {
	messages := make([]Message, len(c.Messages))
	copy(messages, c.Messages)
	c.Messages = messages
	return c
}
