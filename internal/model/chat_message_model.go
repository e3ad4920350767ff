package model

import "time"

// ChatMessage rows are append-only; there is no UpdatedAt or soft delete on
// purpose. Removal only happens through whole-session deletion.
type ChatMessage struct {
	Id            string    `gorm:"type:varchar(64);primaryKey"`
	Text          string    `gorm:"type:text;not null"`
	Sender        string    `gorm:"type:varchar(10);not null"`
	ChatSessionId string    `gorm:"type:varchar(64);not null;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
