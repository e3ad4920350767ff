package model

import "time"

type User struct {
	Id            string  `gorm:"type:varchar(64);primaryKey"`
	DisplayName   string  `gorm:"type:varchar(255);not null"`
	Email         *string `gorm:"type:varchar(255);uniqueIndex"`
	PasswordHash  *string `gorm:"type:varchar(255)"`
	Status        string  `gorm:"type:varchar(50);not null;default:'guest'"`
	EmailVerified bool    `gorm:"default:false"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	LastActiveAt  time.Time
}

func (User) TableName() string {
	return "users"
}

type EmailVerificationToken struct {
	Id        string    `gorm:"type:varchar(64);primaryKey"`
	UserId    string    `gorm:"type:varchar(64);not null;index"`
	Token     string    `gorm:"type:varchar(255);not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (EmailVerificationToken) TableName() string {
	return "email_verification_tokens"
}
