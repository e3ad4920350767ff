package rawlog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Without Redis the store degrades to a no-op; chat traffic must not notice.
func TestStoreWithoutRedis(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	err := store.Append(ctx, Entry{
		MessageId: "msg_1",
		SessionId: "chat_1",
		Sender:    "user",
		Text:      "hello",
		Timestamp: time.Now(),
	})
	assert.NoError(t, err)

	entries, err := store.Recent(ctx, "chat_1")
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestKeyIsUniquePerEntry(t *testing.T) {
	assert.NotEqual(t, key("chat_1"), key("chat_1"))
}
