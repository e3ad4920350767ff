package contract

import (
	"context"
	"time"

	"nestle-in-be/internal/entity"
	"nestle-in-be/internal/repository/specification"
)

type ChatSessionRepository interface {
	// Create fails with apperror.ConflictError on id collision; the caller
	// generates ids and retries with a fresh one.
	Create(ctx context.Context, session *entity.ChatSession) error
	// FindOne returns (nil, nil) when absent or owned by another user.
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAllSummaries(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSessionSummary, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// Rename fails with apperror.NotFoundError when no session matches
	// (id, owner).
	Rename(ctx context.Context, id, userId, title string, now time.Time) (*entity.ChatSession, error)
	// Touch bumps updated_at; every mutation of the aggregate goes through
	// this so the listing order stays by recency.
	Touch(ctx context.Context, id string, now time.Time) error
	// Delete reports whether a record was removed.
	Delete(ctx context.Context, id, userId string) (bool, error)
}
