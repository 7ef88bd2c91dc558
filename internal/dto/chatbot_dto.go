package dto

import "time"

type CreateSessionResponse struct {
	Id       string                `json:"id"`
	Mode     string                `json:"mode"`
	Greeting *SendChatResponseChat `json:"greeting"`
}

type SendChatRequest struct {
	ChatSessionId string `json:"chat_session_id" validate:"required"`
	Chat          string `json:"chat" validate:"required,max=2000"`
}

type SendChatResponseChat struct {
	Role      string    `json:"role"`
	Chat      string    `json:"chat"`
	Flow      string    `json:"flow,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatResponse struct {
	ChatSessionId string                `json:"chat_session_id"`
	Mode          string                `json:"mode"`
	Outcome       string                `json:"outcome,omitempty"`
	Sent          *SendChatResponseChat `json:"sent"`
	Reply         *SendChatResponseChat `json:"reply"`
}

type GetChatHistoryResponse struct {
	ChatSessionId string                  `json:"chat_session_id"`
	Mode          string                  `json:"mode"`
	Stage         string                  `json:"stage,omitempty"`
	Messages      []*SendChatResponseChat `json:"messages"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}
