// Package rawlog keeps a best-effort trail of every message that flows
// through the chat pipeline. Entries expire after thirty days; losing them
// never affects the chat flow itself.
package rawlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const retention = 30 * 24 * time.Hour

// Entry is one raw message as it crossed the wire.
type Entry struct {
	MessageId string    `json:"message_id"`
	SessionId string    `json:"session_id"`
	UserId    string    `json:"user_id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type Store struct {
	rdb *redis.Client
}

// NewStore wraps an existing redis client. A nil client yields a store whose
// writes are dropped silently.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func key(sessionId string) string {
	return fmt.Sprintf("rawlog:%s:%s", sessionId, uuid.NewString())
}

// Append records one entry under the session. Failures are returned so the
// caller can log them, but nothing downstream depends on success.
func (s *Store) Append(ctx context.Context, entry Entry) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal rawlog entry: %w", err)
	}

	if err := s.rdb.Set(ctx, key(entry.SessionId), data, retention).Err(); err != nil {
		return fmt.Errorf("failed to store rawlog entry: %w", err)
	}

	return nil
}

// Recent scans the log for entries belonging to one session. Intended for
// operator inspection, not for serving chat history.
func (s *Store) Recent(ctx context.Context, sessionId string) ([]Entry, error) {
	if s == nil || s.rdb == nil {
		return nil, nil
	}

	var entries []Entry
	iter := s.rdb.Scan(ctx, 0, fmt.Sprintf("rawlog:%s:*", sessionId), 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.rdb.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, err
		}

		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
