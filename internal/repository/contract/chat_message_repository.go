package contract

import (
	"context"

	"nestle-in-be/internal/entity"
	"nestle-in-be/internal/repository/specification"
)

type ChatMessageRepository interface {
	// CreateBatch inserts messages in the given order. Run inside a unit of
	// work so a user/bot pair lands contiguously or not at all.
	CreateBatch(ctx context.Context, messages []*entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	CountBySession(ctx context.Context, sessionId string) (int64, error)
}
