package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"nestle-in-be/internal/apperror"
	"nestle-in-be/internal/constant"
	"nestle-in-be/internal/dto"
	"nestle-in-be/internal/pkg/logger"
	"nestle-in-be/internal/repository/unitofwork"
	"nestle-in-be/pkg/database"
	"nestle-in-be/pkg/responder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func newChatService(t *testing.T) IChatService {
	t.Helper()

	db := newTestDB(t)
	uowFactory := unitofwork.NewRepositoryFactory(db)
	log := logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "test.log"))
	return NewChatService(uowFactory, responder.New(responder.ModeKeyword), nil, nil, log)
}

func TestNewSessionSeedsGreeting(t *testing.T) {
	svc := newChatService(t)
	ctx := context.Background()

	res, err := svc.NewSession(ctx, &dto.NewSessionRequest{UserId: "user_alpha"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.ChatId, "chat_"))
	assert.Equal(t, constant.DefaultChatTitle, res.Title)

	history, err := svc.History(ctx, res.ChatId, "user_alpha")
	require.NoError(t, err)
	require.Len(t, history.Messages, 1)
	assert.Equal(t, constant.GreetingMessage, history.Messages[0].Text)
	assert.Equal(t, constant.ChatMessageSenderBot, history.Messages[0].Sender)
}

func TestNewSessionAnonymousFallback(t *testing.T) {
	svc := newChatService(t)
	ctx := context.Background()

	res, err := svc.NewSession(ctx, &dto.NewSessionRequest{})
	require.NoError(t, err)

	// The session belongs to the shared anonymous user.
	_, err = svc.History(ctx, res.ChatId, "")
	require.NoError(t, err)
	_, err = svc.History(ctx, res.ChatId, constant.AnonymousUserId)
	require.NoError(t, err)
}

func TestSendMessageToUnknownSessionFails(t *testing.T) {
	svc := newChatService(t)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, &dto.SendMessageRequest{
		Message: "hello",
		ChatId:  "chat_missing",
		UserId:  "user_alpha",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestSendMessageOwnershipIsAFilter(t *testing.T) {
	svc := newChatService(t)
	ctx := context.Background()

	res, err := svc.NewSession(ctx, &dto.NewSessionRequest{UserId: "user_alpha"})
	require.NoError(t, err)

	// Someone else's session looks exactly like a missing one.
	_, err = svc.SendMessage(ctx, &dto.SendMessageRequest{
		Message: "hi",
		ChatId:  res.ChatId,
		UserId:  "user_beta",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestSendMessageAppendsPairAndEchoesBot(t *testing.T) {
	svc := newChatService(t)
	ctx := context.Background()

	sess, err := svc.NewSession(ctx, &dto.NewSessionRequest{UserId: "user_alpha"})
	require.NoError(t, err)

	res, err := svc.SendMessage(ctx, &dto.SendMessageRequest{
		Message: "hello there",
		ChatId:  sess.ChatId,
		UserId:  "user_alpha",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.MessageId, "msg_"))
	assert.NotEmpty(t, res.Response)

	history, err := svc.History(ctx, sess.ChatId, "user_alpha")
	require.NoError(t, err)
	require.Len(t, history.Messages, 3)
	assert.Equal(t, constant.ChatMessageSenderUser, history.Messages[1].Sender)
	assert.Equal(t, "hello there", history.Messages[1].Text)
	assert.Equal(t, constant.ChatMessageSenderBot, history.Messages[2].Sender)
	assert.Equal(t, res.Response, history.Messages[2].Text)
}

func TestFirstExchangeAdoptsTitle(t *testing.T) {
	svc := newChatService(t)
	ctx := context.Background()

	sess, err := svc.NewSession(ctx, &dto.NewSessionRequest{UserId: "user_alpha"})
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, &dto.SendMessageRequest{
		Message: "where can I find the meeting pods",
		ChatId:  sess.ChatId,
		UserId:  "user_alpha",
	})
	require.NoError(t, err)

	history, err := svc.History(ctx, sess.ChatId, "user_alpha")
	require.NoError(t, err)
	assert.Equal(t, "where can I find the meeting p...", history.Title)

	// Later sends never retitle.
	_, err = svc.SendMessage(ctx, &dto.SendMessageRequest{
		Message: "a completely different topic",
		ChatId:  sess.ChatId,
		UserId:  "user_alpha",
	})
	require.NoError(t, err)

	history, err = svc.History(ctx, sess.ChatId, "user_alpha")
	require.NoError(t, err)
	assert.Equal(t, "where can I find the meeting p...", history.Title)
}

func TestShortFirstMessageKeptWhole(t *testing.T) {
	svc := newChatService(t)
	ctx := context.Background()

	sess, err := svc.NewSession(ctx, &dto.NewSessionRequest{UserId: "user_alpha"})
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, &dto.SendMessageRequest{
		Message: "short one",
		ChatId:  sess.ChatId,
		UserId:  "user_alpha",
	})
	require.NoError(t, err)

	history, err := svc.History(ctx, sess.ChatId, "user_alpha")
	require.NoError(t, err)
	assert.Equal(t, "short one", history.Title)
}

func TestExplicitRenameWinsOverAutoTitle(t *testing.T) {
	svc := newChatService(t)
	ctx := context.Background()

	sess, err := svc.NewSession(ctx, &dto.NewSessionRequest{UserId: "user_alpha"})
	require.NoError(t, err)

	_, err = svc.UpdateTitle(ctx, &dto.UpdateTitleRequest{
		ChatId: sess.ChatId,
		Title:  "My project notes",
		UserId: "user_alpha",
	})
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, &dto.SendMessageRequest{
		Message: "this would otherwise become the title",
		ChatId:  sess.ChatId,
		UserId:  "user_alpha",
	})
	require.NoError(t, err)

	history, err := svc.History(ctx, sess.ChatId, "user_alpha")
	require.NoError(t, err)
	assert.Equal(t, "My project notes", history.Title)
}

func TestListSessionsPagination(t *testing.T) {
	svc := newChatService(t)
	ctx := context.Background()

	for i := 0; i < 45; i++ {
		_, err := svc.NewSession(ctx, &dto.NewSessionRequest{
			UserId: "user_alpha",
			Title:  fmt.Sprintf("session %02d", i),
		})
		require.NoError(t, err)
	}

	page1, err := svc.ListSessions(ctx, "user_alpha", 1, 20)
	require.NoError(t, err)
	assert.Len(t, page1.Sessions, 20)
	assert.Equal(t, int64(45), page1.TotalSessions)
	assert.Equal(t, 1, page1.CurrentPage)
	assert.Equal(t, 3, page1.TotalPages)

	page3, err := svc.ListSessions(ctx, "user_alpha", 3, 20)
	require.NoError(t, err)
	assert.Len(t, page3.Sessions, 5)

	page4, err := svc.ListSessions(ctx, "user_alpha", 4, 20)
	require.NoError(t, err)
	assert.Empty(t, page4.Sessions)
	assert.Equal(t, 3, page4.TotalPages)
}

func TestListSessionsOrderedByRecency(t *testing.T) {
	svc := newChatService(t)
	ctx := context.Background()

	first, err := svc.NewSession(ctx, &dto.NewSessionRequest{UserId: "user_alpha", Title: "first"})
	require.NoError(t, err)
	second, err := svc.NewSession(ctx, &dto.NewSessionRequest{UserId: "user_alpha", Title: "second"})
	require.NoError(t, err)

	// Touching the older session moves it back to the top.
	_, err = svc.SendMessage(ctx, &dto.SendMessageRequest{
		Message: "bump",
		ChatId:  first.ChatId,
		UserId:  "user_alpha",
	})
	require.NoError(t, err)

	list, err := svc.ListSessions(ctx, "user_alpha", 1, 20)
	require.NoError(t, err)
	require.Len(t, list.Sessions, 2)
	assert.Equal(t, first.ChatId, list.Sessions[0].ChatId)
	assert.Equal(t, second.ChatId, list.Sessions[1].ChatId)
}

func TestDeleteSessionTwice(t *testing.T) {
	svc := newChatService(t)
	ctx := context.Background()

	sess, err := svc.NewSession(ctx, &dto.NewSessionRequest{UserId: "user_alpha"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(ctx, sess.ChatId, "user_alpha"))

	err = svc.DeleteSession(ctx, sess.ChatId, "user_alpha")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	// History of a deleted session is gone too.
	_, err = svc.History(ctx, sess.ChatId, "user_alpha")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeriveTitleTruncation(t *testing.T) {
	assert.Equal(t, "short", deriveTitle("short"))

	long := strings.Repeat("a", 31)
	assert.Equal(t, strings.Repeat("a", 30)+"...", deriveTitle(long))

	exact := strings.Repeat("b", 30)
	assert.Equal(t, exact, deriveTitle(exact))
}
