package model

import (
	"time"

	"gorm.io/gorm"
)

type ChatSession struct {
	Id        string         `gorm:"type:varchar(64);primaryKey"`
	UserId    string         `gorm:"type:varchar(64);not null;index"` // ownership filter for data isolation
	Title     string         `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
