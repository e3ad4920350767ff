package client

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// serverUnreachableText is appended as a bot message when a send fails. The
// failed exchange is never retried; the user just sends again.
const serverUnreachableText = "Error: Unable to reach the server."

const defaultTitle = "New Chat"

type Conversation struct {
	ChatId    string
	Title     string
	Messages  []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Cache keeps a local mirror of the user's conversations. Sends are
// optimistic (the user message appears before the server confirms); renames
// and deletes are pessimistic (local state changes only after the server
// accepts).
type Cache struct {
	mu     sync.Mutex
	client *Client
	userId string

	sessions map[string]*Conversation
	current  string
}

func NewCache(c *Client, userId string) *Cache {
	return &Cache{
		client:   c,
		userId:   userId,
		sessions: make(map[string]*Conversation),
	}
}

// Hydrate loads every session and its full history from the server. Sessions
// whose history fetch fails are skipped rather than aborting the whole load.
func (c *Cache) Hydrate(ctx context.Context) error {
	list, err := c.client.ListSessions(ctx, c.userId, 1, 50)
	if err != nil {
		return err
	}

	sessions := make(map[string]*Conversation, len(list.Sessions))
	for _, summary := range list.Sessions {
		history, err := c.client.GetHistory(ctx, c.userId, summary.ChatId)
		if err != nil {
			continue
		}

		conv := &Conversation{
			ChatId:    summary.ChatId,
			Title:     summary.Title,
			Messages:  history.Messages,
			CreatedAt: summary.CreatedAt,
		}
		if summary.UpdatedAt != nil {
			conv.UpdatedAt = *summary.UpdatedAt
		}
		sessions[summary.ChatId] = conv
	}

	c.mu.Lock()
	c.sessions = sessions
	c.current = ""
	c.mu.Unlock()
	return nil
}

// Sessions returns summaries ordered by recency, newest first.
func (c *Cache) Sessions() []Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Conversation, 0, len(c.sessions))
	for _, conv := range c.sessions {
		out = append(out, *conv)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// Select switches the active conversation. Purely local.
func (c *Cache) Select(chatId string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.sessions[chatId]; !ok {
		return fmt.Errorf("unknown chat session: %s", chatId)
	}
	c.current = chatId
	return nil
}

func (c *Cache) Current() (Conversation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conv, ok := c.sessions[c.current]
	if !ok {
		return Conversation{}, false
	}
	return *conv, true
}

// NewChat creates a fresh session on the server and selects it.
func (c *Cache) NewChat(ctx context.Context) (string, error) {
	res, err := c.client.CreateSession(ctx, c.userId, defaultTitle)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.sessions[res.ChatId] = &Conversation{
		ChatId:    res.ChatId,
		Title:     res.Title,
		CreatedAt: res.CreatedAt,
		UpdatedAt: res.CreatedAt,
	}
	c.current = res.ChatId
	c.mu.Unlock()
	return res.ChatId, nil
}

// deriveTitle takes the first three words of the first message.
func deriveTitle(message string) string {
	words := strings.Fields(message)
	if len(words) <= 3 {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:3], " ")
}

// Send posts the message to the active conversation, creating one when
// nothing is selected. The returned message is the bot reply, which is the
// fixed unreachable-server text when the request failed.
func (c *Cache) Send(ctx context.Context, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, fmt.Errorf("empty message")
	}

	c.mu.Lock()
	chatId := c.current
	c.mu.Unlock()

	if chatId == "" {
		var err error
		chatId, err = c.NewChat(ctx)
		if err != nil {
			return Message{}, err
		}
	}

	c.mu.Lock()
	conv := c.sessions[chatId]
	firstMessage := len(conv.Messages) == 0
	if firstMessage && conv.Title == defaultTitle {
		conv.Title = deriveTitle(text)
	}
	now := time.Now()
	conv.Messages = append(conv.Messages, Message{
		MessageId: fmt.Sprintf("local_%d", now.UnixNano()),
		Text:      text,
		Sender:    "user",
		Timestamp: now,
	})
	conv.UpdatedAt = now
	newTitle := conv.Title
	c.mu.Unlock()

	res, err := c.client.SendMessage(ctx, c.userId, chatId, text)
	if err != nil {
		errMsg := Message{
			MessageId: fmt.Sprintf("local_%d", time.Now().UnixNano()),
			Text:      serverUnreachableText,
			Sender:    "bot",
			Timestamp: time.Now(),
		}
		c.mu.Lock()
		conv.Messages = append(conv.Messages, errMsg)
		c.mu.Unlock()
		return errMsg, err
	}

	botMsg := Message{
		MessageId: res.MessageId,
		Text:      res.Response,
		Sender:    "bot",
		Timestamp: res.Timestamp,
	}
	c.mu.Lock()
	conv.Messages = append(conv.Messages, botMsg)
	conv.UpdatedAt = res.Timestamp
	c.mu.Unlock()

	// Push the locally derived title to the server. Best effort: the server
	// keeps its own first-message title when this fails.
	if firstMessage && newTitle != defaultTitle {
		if _, err := c.client.UpdateTitle(ctx, c.userId, chatId, newTitle); err == nil {
			c.mu.Lock()
			conv.Title = newTitle
			c.mu.Unlock()
		}
	}

	return botMsg, nil
}

// Rename updates a session's title, server first.
func (c *Cache) Rename(ctx context.Context, chatId, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("empty title")
	}

	if _, err := c.client.UpdateTitle(ctx, c.userId, chatId, title); err != nil {
		return err
	}

	c.mu.Lock()
	if conv, ok := c.sessions[chatId]; ok {
		conv.Title = title
	}
	c.mu.Unlock()
	return nil
}

// Delete removes a session, server first. Deleting the active conversation
// leaves nothing selected.
func (c *Cache) Delete(ctx context.Context, chatId string) error {
	if err := c.client.DeleteSession(ctx, c.userId, chatId); err != nil {
		return err
	}

	c.mu.Lock()
	delete(c.sessions, chatId)
	if c.current == chatId {
		c.current = ""
	}
	c.mu.Unlock()
	return nil
}
