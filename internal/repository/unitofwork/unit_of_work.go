package unitofwork

import (
	"context"

	"nestle-in-be/internal/repository/contract"
)

// UnitOfWork scopes repository calls to one transaction. The chat service
// relies on it to make each user/bot message pair land atomically; at most
// one transaction runs per logical state transition.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	PodRepository() contract.PodRepository
}
