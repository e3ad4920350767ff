package entity

import "time"

type UserStatus string

const (
	// UserStatusGuest marks users created lazily from a chat request. They
	// have no credentials and never log in.
	UserStatusGuest   UserStatus = "guest"
	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
)

type User struct {
	Id            string // "user_<uuid>" or a caller-provided opaque id
	DisplayName   string
	Email         *string
	PasswordHash  *string
	Status        UserStatus
	EmailVerified bool
	CreatedAt     time.Time
	LastActiveAt  time.Time
}

type EmailVerificationToken struct {
	Id        string
	UserId    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
