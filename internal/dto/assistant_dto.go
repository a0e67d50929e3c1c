package dto

type AskRequest struct {
	Question string `json:"question" validate:"required"`
}

type AskResponse struct {
	UserMessage      *MessageResponse `json:"userMessage"`
	AssistantMessage *MessageResponse `json:"assistantMessage"`
}
