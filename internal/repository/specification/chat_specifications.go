package specification

import "gorm.io/gorm"

// OwnedBy scopes a query to one user's records. Ownership is enforced here,
// as a filter, not as a separate authorization layer: a session owned by
// someone else is simply not found.
type OwnedBy struct {
	UserID string
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByChatSessionID struct {
	ChatSessionID string
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}
