package integration

import (
	"fmt"
	"strings"
	"testing"

	"nestle-in-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatAPI(t *testing.T) {
	app := newTestApp(t)
	userId := "user_chat_api"

	var chatId string

	t.Run("Create session", func(t *testing.T) {
		resp := request(t, app, "POST", "/api/chat/session/new", dto.NewSessionRequest{UserId: userId})
		assert.Equal(t, 200, resp.StatusCode)

		result := decode[dto.NewSessionResponse](t, resp)
		assert.True(t, result.Success)
		assert.True(t, strings.HasPrefix(result.Data.ChatId, "chat_"))
		assert.Equal(t, "New Chat", result.Data.Title)

		chatId = result.Data.ChatId
	})

	t.Run("New session starts with the greeting", func(t *testing.T) {
		resp := request(t, app, "GET", "/api/chat/history/"+chatId+"?userId="+userId, nil)
		assert.Equal(t, 200, resp.StatusCode)

		result := decode[dto.ChatHistoryResponse](t, resp)
		require.Len(t, result.Data.Messages, 1)
		assert.Equal(t, "bot", result.Data.Messages[0].Sender)
	})

	t.Run("Send message", func(t *testing.T) {
		resp := request(t, app, "POST", "/api/chat/message", dto.SendMessageRequest{
			Message: "hello from the integration suite",
			ChatId:  chatId,
			UserId:  userId,
		})
		assert.Equal(t, 200, resp.StatusCode)

		result := decode[dto.SendMessageResponse](t, resp)
		assert.True(t, result.Success)
		assert.Equal(t, chatId, result.Data.ChatId)
		assert.True(t, strings.HasPrefix(result.Data.MessageId, "msg_"))
		assert.NotEmpty(t, result.Data.Response)
	})

	t.Run("First exchange becomes the title", func(t *testing.T) {
		resp := request(t, app, "GET", "/api/chat/history/"+chatId+"?userId="+userId, nil)
		result := decode[dto.ChatHistoryResponse](t, resp)

		require.Len(t, result.Data.Messages, 3)
		assert.Equal(t, "hello from the integration sui...", result.Data.Title)
	})

	t.Run("Explicit rename", func(t *testing.T) {
		resp := request(t, app, "PUT", "/api/chat/session/"+chatId+"/title", dto.UpdateTitleRequest{
			Title:  "Renamed conversation",
			UserId: userId,
		})
		assert.Equal(t, 200, resp.StatusCode)

		result := decode[dto.UpdateTitleResponse](t, resp)
		assert.Equal(t, "Renamed conversation", result.Data.Title)
	})

	t.Run("Missing message and chatId rejected", func(t *testing.T) {
		resp := request(t, app, "POST", "/api/chat/message", map[string]string{"userId": userId})
		assert.Equal(t, 400, resp.StatusCode)

		result := decode[any](t, resp)
		assert.False(t, result.Success)
		assert.Equal(t, "Message and chatId are required", result.Error)
	})

	t.Run("Send to unknown session", func(t *testing.T) {
		resp := request(t, app, "POST", "/api/chat/message", dto.SendMessageRequest{
			Message: "anyone there?",
			ChatId:  "chat_does_not_exist",
			UserId:  userId,
		})
		assert.Equal(t, 404, resp.StatusCode)

		result := decode[any](t, resp)
		assert.Equal(t, "Chat session not found. Please create a new chat first.", result.Error)
	})

	t.Run("Rename unknown session", func(t *testing.T) {
		resp := request(t, app, "PUT", "/api/chat/session/chat_does_not_exist/title", dto.UpdateTitleRequest{
			Title:  "Nope",
			UserId: userId,
		})
		assert.Equal(t, 404, resp.StatusCode)

		result := decode[any](t, resp)
		assert.Equal(t, "Chat session not found", result.Error)
	})

	t.Run("Delete session twice", func(t *testing.T) {
		resp := request(t, app, "DELETE", "/api/chat/session/"+chatId+"?userId="+userId, nil)
		assert.Equal(t, 200, resp.StatusCode)

		result := decode[any](t, resp)
		assert.True(t, result.Success)
		assert.Equal(t, "Chat session deleted successfully", result.Message)

		resp = request(t, app, "DELETE", "/api/chat/session/"+chatId+"?userId="+userId, nil)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("History of deleted session", func(t *testing.T) {
		resp := request(t, app, "GET", "/api/chat/history/"+chatId+"?userId="+userId, nil)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("Anonymous session without a body", func(t *testing.T) {
		resp := request(t, app, "POST", "/api/chat/session/new", nil)
		assert.Equal(t, 200, resp.StatusCode)

		result := decode[dto.NewSessionResponse](t, resp)
		assert.True(t, result.Success)
		assert.True(t, strings.HasPrefix(result.Data.ChatId, "chat_"))
	})

	t.Run("Health check", func(t *testing.T) {
		resp := request(t, app, "GET", "/api/health", nil)
		assert.Equal(t, 200, resp.StatusCode)
	})
}

func TestChatSessionPagination(t *testing.T) {
	app := newTestApp(t)
	userId := "user_pagination"

	for i := 0; i < 45; i++ {
		resp := request(t, app, "POST", "/api/chat/session/new", dto.NewSessionRequest{
			UserId: userId,
			Title:  fmt.Sprintf("session %02d", i),
		})
		require.Equal(t, 200, resp.StatusCode)
	}

	t.Run("First page", func(t *testing.T) {
		resp := request(t, app, "GET", "/api/chat/sessions/"+userId+"?page=1&limit=20", nil)
		assert.Equal(t, 200, resp.StatusCode)

		result := decode[dto.ListSessionsResponse](t, resp)
		assert.Len(t, result.Data.Sessions, 20)
		assert.Equal(t, int64(45), result.Data.TotalSessions)
		assert.Equal(t, 1, result.Data.CurrentPage)
		assert.Equal(t, 3, result.Data.TotalPages)
	})

	t.Run("Last page is partial", func(t *testing.T) {
		resp := request(t, app, "GET", "/api/chat/sessions/"+userId+"?page=3&limit=20", nil)
		result := decode[dto.ListSessionsResponse](t, resp)
		assert.Len(t, result.Data.Sessions, 5)
	})

	t.Run("Page past the end is empty", func(t *testing.T) {
		resp := request(t, app, "GET", "/api/chat/sessions/"+userId+"?page=9&limit=20", nil)
		assert.Equal(t, 200, resp.StatusCode)

		result := decode[dto.ListSessionsResponse](t, resp)
		assert.Empty(t, result.Data.Sessions)
		assert.Equal(t, 3, result.Data.TotalPages)
	})

	t.Run("Defaults applied without query params", func(t *testing.T) {
		resp := request(t, app, "GET", "/api/chat/sessions/"+userId, nil)
		result := decode[dto.ListSessionsResponse](t, resp)
		assert.Len(t, result.Data.Sessions, 20)
		assert.Equal(t, 1, result.Data.CurrentPage)
	})

	t.Run("Other users see nothing", func(t *testing.T) {
		resp := request(t, app, "GET", "/api/chat/sessions/user_someone_else", nil)
		result := decode[dto.ListSessionsResponse](t, resp)
		assert.Empty(t, result.Data.Sessions)
		assert.Equal(t, int64(0), result.Data.TotalSessions)
	})
}
