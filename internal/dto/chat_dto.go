package dto

import "time"

// The chat API keeps the camelCase field names the web client already
// depends on, unlike the snake_case used elsewhere.

type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
	ChatId  string `json:"chatId" validate:"required"`
	UserId  string `json:"userId"`
}

type SendMessageResponse struct {
	Response  string    `json:"response"`
	ChatId    string    `json:"chatId"`
	Timestamp time.Time `json:"timestamp"`
	MessageId string    `json:"messageId"`
}

type MessageResponse struct {
	MessageId string    `json:"messageId"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatHistoryResponse struct {
	ChatId    string            `json:"chatId"`
	Title     string            `json:"title"`
	Messages  []MessageResponse `json:"messages"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt *time.Time        `json:"updatedAt"`
}

type SessionSummaryResponse struct {
	ChatId    string     `json:"chatId"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

type ListSessionsResponse struct {
	Sessions      []SessionSummaryResponse `json:"sessions"`
	TotalSessions int64                    `json:"totalSessions"`
	CurrentPage   int                      `json:"currentPage"`
	TotalPages    int                      `json:"totalPages"`
}

type NewSessionRequest struct {
	UserId string `json:"userId"`
	Title  string `json:"title"`
}

type NewSessionResponse struct {
	ChatId    string    `json:"chatId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

type UpdateTitleRequest struct {
	ChatId string `json:"-"`
	Title  string `json:"title" validate:"required"`
	UserId string `json:"userId"`
}

type UpdateTitleResponse struct {
	ChatId string `json:"chatId"`
	Title  string `json:"title"`
}

// PublishMessageLog is the internal bus payload carrying one chat message to
// the raw-log consumer.
type PublishMessageLog struct {
	MessageId string    `json:"message_id"`
	ChatId    string    `json:"chat_id"`
	UserId    string    `json:"user_id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
