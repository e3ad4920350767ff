package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubServer implements just enough of the chat API for the cache tests.
type stubServer struct {
	t         *testing.T
	failSends atomic.Bool
	sessions  map[string]*stubSession
}

type stubSession struct {
	ChatId   string
	Title    string
	Messages []Message
}

func respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status >= 400 {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": data})
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data})
}

func (s *stubServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/chat/session/new", func(w http.ResponseWriter, r *http.Request) {
		id := "chat_stub_" + time.Now().Format("150405.000000000")
		s.sessions[id] = &stubSession{ChatId: id, Title: "New Chat", Messages: []Message{
			{MessageId: "msg_greeting", Text: "Hello!", Sender: "bot", Timestamp: time.Now()},
		}}
		respond(w, 200, NewSession{ChatId: id, Title: "New Chat", CreatedAt: time.Now()})
	})

	mux.HandleFunc("POST /api/chat/message", func(w http.ResponseWriter, r *http.Request) {
		if s.failSends.Load() {
			respond(w, 500, "Internal server error")
			return
		}
		var req struct {
			Message string `json:"message"`
			ChatId  string `json:"chatId"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		sess, ok := s.sessions[req.ChatId]
		if !ok {
			respond(w, 404, "Chat session not found. Please create a new chat first.")
			return
		}
		now := time.Now()
		sess.Messages = append(sess.Messages,
			Message{MessageId: "msg_user", Text: req.Message, Sender: "user", Timestamp: now},
			Message{MessageId: "msg_bot", Text: "echo: " + req.Message, Sender: "bot", Timestamp: now},
		)
		respond(w, 200, SendResult{Response: "echo: " + req.Message, ChatId: req.ChatId, Timestamp: now, MessageId: "msg_bot"})
	})

	mux.HandleFunc("GET /api/chat/sessions/", func(w http.ResponseWriter, r *http.Request) {
		list := SessionList{Sessions: []SessionSummary{}, CurrentPage: 1, TotalPages: 1}
		for _, sess := range s.sessions {
			list.Sessions = append(list.Sessions, SessionSummary{ChatId: sess.ChatId, Title: sess.Title, CreatedAt: time.Now()})
		}
		list.TotalSessions = int64(len(list.Sessions))
		respond(w, 200, list)
	})

	mux.HandleFunc("GET /api/chat/history/", func(w http.ResponseWriter, r *http.Request) {
		chatId := strings.TrimPrefix(r.URL.Path, "/api/chat/history/")
		sess, ok := s.sessions[chatId]
		if !ok {
			respond(w, 404, "Chat session not found")
			return
		}
		respond(w, 200, History{ChatId: sess.ChatId, Title: sess.Title, Messages: sess.Messages, CreatedAt: time.Now()})
	})

	mux.HandleFunc("PUT /api/chat/session/", func(w http.ResponseWriter, r *http.Request) {
		chatId := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/chat/session/"), "/title")
		sess, ok := s.sessions[chatId]
		if !ok {
			respond(w, 404, "Chat session not found")
			return
		}
		var req struct {
			Title string `json:"title"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		sess.Title = req.Title
		respond(w, 200, TitleResult{ChatId: chatId, Title: req.Title})
	})

	mux.HandleFunc("DELETE /api/chat/session/", func(w http.ResponseWriter, r *http.Request) {
		chatId := strings.TrimPrefix(r.URL.Path, "/api/chat/session/")
		if _, ok := s.sessions[chatId]; !ok {
			respond(w, 404, "Chat session not found")
			return
		}
		delete(s.sessions, chatId)
		respond(w, 200, nil)
	})

	return mux
}

func newStub(t *testing.T) (*stubServer, *Cache) {
	stub := &stubServer{t: t, sessions: make(map[string]*stubSession)}
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)
	return stub, NewCache(New(srv.URL), "user_test")
}

func TestCacheSendCreatesSessionWhenNoneSelected(t *testing.T) {
	stub, cache := newStub(t)
	ctx := context.Background()

	bot, err := cache.Send(ctx, "what is for lunch today")
	require.NoError(t, err)
	assert.Equal(t, "echo: what is for lunch today", bot.Text)
	assert.Len(t, stub.sessions, 1)

	conv, ok := cache.Current()
	require.True(t, ok)
	// user message appended optimistically, then the bot reply
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "user", conv.Messages[0].Sender)
	assert.Equal(t, "bot", conv.Messages[1].Sender)
}

func TestCacheDerivesTitleFromFirstMessage(t *testing.T) {
	_, cache := newStub(t)
	ctx := context.Background()

	_, err := cache.Send(ctx, "book a pod for tomorrow morning")
	require.NoError(t, err)

	conv, ok := cache.Current()
	require.True(t, ok)
	assert.Equal(t, "book a pod", conv.Title)
}

func TestCacheSendFailureAppendsErrorNode(t *testing.T) {
	stub, cache := newStub(t)
	ctx := context.Background()

	_, err := cache.Send(ctx, "first message")
	require.NoError(t, err)
	conv, _ := cache.Current()
	before := len(conv.Messages)

	stub.failSends.Store(true)
	bot, err := cache.Send(ctx, "this one fails")
	assert.Error(t, err)
	assert.Equal(t, serverUnreachableText, bot.Text)

	conv, _ = cache.Current()
	// optimistic user message plus the error node, nothing retried
	assert.Len(t, conv.Messages, before+2)
	assert.Equal(t, serverUnreachableText, conv.Messages[len(conv.Messages)-1].Text)
}

func TestCacheHydrate(t *testing.T) {
	stub, cache := newStub(t)
	ctx := context.Background()

	_, err := cache.Send(ctx, "seed a conversation")
	require.NoError(t, err)

	fresh := NewCache(New("http://ignored"), "user_test")
	fresh.client = cache.client
	require.NoError(t, fresh.Hydrate(ctx))

	sessions := fresh.Sessions()
	require.Len(t, sessions, len(stub.sessions))
	// nothing selected after hydrate
	_, ok := fresh.Current()
	assert.False(t, ok)
}

func TestCacheDeleteClearsSelection(t *testing.T) {
	_, cache := newStub(t)
	ctx := context.Background()

	_, err := cache.Send(ctx, "hello there")
	require.NoError(t, err)
	conv, _ := cache.Current()

	require.NoError(t, cache.Delete(ctx, conv.ChatId))
	_, ok := cache.Current()
	assert.False(t, ok)
	assert.Empty(t, cache.Sessions())
}

func TestDeriveTitle(t *testing.T) {
	assert.Equal(t, "hello", deriveTitle("hello"))
	assert.Equal(t, "one two three", deriveTitle("one two three four five"))
	assert.Equal(t, "a b", deriveTitle("  a   b  "))
}
