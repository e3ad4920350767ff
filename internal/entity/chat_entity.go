package entity

import "time"

// ChatSession is the aggregate root for a conversation. Messages live inside
// the session and are only ever appended through the session's repositories;
// they have no independent lifecycle.
type ChatSession struct {
	Id        string // "chat_<uuid>", generated by the caller of Create
	UserId    string
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// ChatMessage is immutable once created. Sender is either "user" or "bot".
type ChatMessage struct {
	Id            string // "msg_<uuid>"
	Text          string
	Sender        string
	ChatSessionId string
	CreatedAt     time.Time
}

// ChatSessionSummary is the listing projection: no messages, just enough for
// a sidebar entry.
type ChatSessionSummary struct {
	Id        string
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
