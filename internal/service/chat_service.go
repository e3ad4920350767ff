package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"nestle-in-be/internal/apperror"
	"nestle-in-be/internal/constant"
	"nestle-in-be/internal/dto"
	"nestle-in-be/internal/entity"
	"nestle-in-be/internal/pkg/logger"
	"nestle-in-be/internal/repository/specification"
	"nestle-in-be/internal/repository/unitofwork"
	"nestle-in-be/pkg/events"
	pktNats "nestle-in-be/pkg/nats"
	"nestle-in-be/pkg/responder"

	"github.com/google/uuid"
)

// createRetries bounds the id-collision retry loop. Collisions are
// vanishingly rare with uuid-backed ids, one retry is already generous.
const createRetries = 3

type IChatService interface {
	NewSession(ctx context.Context, req *dto.NewSessionRequest) (*dto.NewSessionResponse, error)
	SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	History(ctx context.Context, chatId, userId string) (*dto.ChatHistoryResponse, error)
	ListSessions(ctx context.Context, userId string, page, limit int) (*dto.ListSessionsResponse, error)
	UpdateTitle(ctx context.Context, req *dto.UpdateTitleRequest) (*dto.UpdateTitleResponse, error)
	DeleteSession(ctx context.Context, chatId, userId string) error
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	responder        responder.Responder
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	rsp responder.Responder,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		responder:        rsp,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

func newChatId() string {
	return fmt.Sprintf("chat_%s", uuid.NewString())
}

func newMessageId() string {
	return fmt.Sprintf("msg_%s", uuid.NewString())
}

func effectiveUserId(userId string) string {
	if userId == "" {
		return constant.AnonymousUserId
	}
	return userId
}

func displayNameFor(userId string) string {
	if userId == constant.AnonymousUserId {
		return constant.AnonymousDisplayName
	}
	return fmt.Sprintf("User %s", userId)
}

// deriveTitle turns the first real user message into the session title,
// truncated at TitleMaxLen characters.
func deriveTitle(message string) string {
	runes := []rune(message)
	if len(runes) <= constant.TitleMaxLen {
		return message
	}
	return string(runes[:constant.TitleMaxLen]) + "..."
}

// ensureUser creates the user record on first contact. A conflict means a
// concurrent request created it first, so we just read it back.
func (s *chatService) ensureUser(ctx context.Context, uow unitofwork.UnitOfWork, userId string) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	now := time.Now()
	user = &entity.User{
		Id:           userId,
		DisplayName:  displayNameFor(userId),
		Status:       entity.UserStatusGuest,
		CreatedAt:    now,
		LastActiveAt: now,
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		if apperror.IsConflict(err) {
			return uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
		}
		return nil, err
	}

	s.log.Info("chat", "created new user", map[string]interface{}{"user_id": userId})
	return user, nil
}

func (s *chatService) NewSession(ctx context.Context, req *dto.NewSessionRequest) (*dto.NewSessionResponse, error) {
	userId := effectiveUserId(req.UserId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.ensureUser(ctx, uow, userId); err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = constant.DefaultChatTitle
	}

	var session entity.ChatSession
	var greeting entity.ChatMessage
	var err error
	for attempt := 0; attempt < createRetries; attempt++ {
		now := time.Now()
		session = entity.ChatSession{
			Id:        newChatId(),
			UserId:    userId,
			Title:     title,
			CreatedAt: now,
			UpdatedAt: &now,
		}
		greeting = entity.ChatMessage{
			Id:            newMessageId(),
			Text:          constant.GreetingMessage,
			Sender:        constant.ChatMessageSenderBot,
			ChatSessionId: session.Id,
			CreatedAt:     now,
		}

		err = s.createSession(ctx, &session, &greeting)
		if err == nil || !apperror.IsConflict(err) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.NewChatSessionCreated(session.Id, userId))
	s.publishMessageLog(ctx, userId, &greeting)

	return &dto.NewSessionResponse{
		ChatId:    session.Id,
		Title:     session.Title,
		CreatedAt: session.CreatedAt,
	}, nil
}

func (s *chatService) createSession(ctx context.Context, session *entity.ChatSession, greeting *entity.ChatMessage) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return err
	}
	if err := uow.ChatMessageRepository().CreateBatch(ctx, []*entity.ChatMessage{greeting}); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *chatService) SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	userId := effectiveUserId(req.UserId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.ensureUser(ctx, uow, userId); err != nil {
		return nil, err
	}
	if err := uow.UserRepository().TouchActivity(ctx, userId, time.Now()); err != nil {
		return nil, err
	}

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: req.ChatId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		// Sending never creates a session implicitly.
		return nil, apperror.NewNotFound("Chat session not found. Please create a new chat first.")
	}

	botText := s.responder.Reply(req.Message)

	var userMsg, botMsg entity.ChatMessage
	for attempt := 0; attempt < createRetries; attempt++ {
		now := time.Now()
		userMsg = entity.ChatMessage{
			Id:            newMessageId(),
			Text:          req.Message,
			Sender:        constant.ChatMessageSenderUser,
			ChatSessionId: session.Id,
			CreatedAt:     now,
		}
		botMsg = entity.ChatMessage{
			Id:            newMessageId(),
			Text:          botText,
			Sender:        constant.ChatMessageSenderBot,
			ChatSessionId: session.Id,
			CreatedAt:     now.Add(time.Millisecond),
		}

		err = s.appendExchange(ctx, session, req.Message, &userMsg, &botMsg)
		if err == nil || !apperror.IsConflict(err) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.NewChatMessageSent(session.Id, userId, userMsg.Id, userMsg.Sender))
	s.publishEvent(ctx, events.NewChatMessageSent(session.Id, userId, botMsg.Id, botMsg.Sender))
	s.publishMessageLog(ctx, userId, &userMsg)
	s.publishMessageLog(ctx, userId, &botMsg)

	return &dto.SendMessageResponse{
		Response:  botText,
		ChatId:    session.Id,
		Timestamp: botMsg.CreatedAt,
		MessageId: botMsg.Id,
	}, nil
}

// appendExchange lands the user/bot pair in one transaction so readers never
// observe a user message without its reply.
func (s *chatService) appendExchange(ctx context.Context, session *entity.ChatSession, userText string, userMsg, botMsg *entity.ChatMessage) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().CreateBatch(ctx, []*entity.ChatMessage{userMsg, botMsg}); err != nil {
		return err
	}

	count, err := uow.ChatMessageRepository().CountBySession(ctx, session.Id)
	if err != nil {
		return err
	}

	// Exactly three messages (greeting + this pair) and an untouched default
	// title means this was the first real exchange: adopt the user's text as
	// the title. Explicit renames are never overwritten.
	if count == 3 && session.Title == constant.DefaultChatTitle {
		if _, err := uow.ChatSessionRepository().Rename(ctx, session.Id, session.UserId, deriveTitle(userText), botMsg.CreatedAt); err != nil {
			return err
		}
	} else {
		if err := uow.ChatSessionRepository().Touch(ctx, session.Id, botMsg.CreatedAt); err != nil {
			return err
		}
	}

	return uow.Commit()
}

func (s *chatService) History(ctx context.Context, chatId, userId string) (*dto.ChatHistoryResponse, error) {
	userId = effectiveUserId(userId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: chatId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFound("Chat session not found")
	}

	msgs, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: chatId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	messages := make([]dto.MessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		messages = append(messages, dto.MessageResponse{
			MessageId: msg.Id,
			Text:      msg.Text,
			Sender:    msg.Sender,
			Timestamp: msg.CreatedAt,
		})
	}

	return &dto.ChatHistoryResponse{
		ChatId:    session.Id,
		Title:     session.Title,
		Messages:  messages,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}, nil
}

func (s *chatService) ListSessions(ctx context.Context, userId string, page, limit int) (*dto.ListSessionsResponse, error) {
	userId = effectiveUserId(userId)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	summaries, err := uow.ChatSessionRepository().FindAllSummaries(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}

	total, err := uow.ChatSessionRepository().Count(ctx,
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}

	sessions := make([]dto.SessionSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		sessions = append(sessions, dto.SessionSummaryResponse{
			ChatId:    summary.Id,
			Title:     summary.Title,
			CreatedAt: summary.CreatedAt,
			UpdatedAt: summary.UpdatedAt,
		})
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &dto.ListSessionsResponse{
		Sessions:      sessions,
		TotalSessions: total,
		CurrentPage:   page,
		TotalPages:    totalPages,
	}, nil
}

func (s *chatService) UpdateTitle(ctx context.Context, req *dto.UpdateTitleRequest) (*dto.UpdateTitleResponse, error) {
	userId := effectiveUserId(req.UserId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().Rename(ctx, req.ChatId, userId, req.Title, time.Now())
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.NewChatSessionRenamed(session.Id, userId, session.Title))

	return &dto.UpdateTitleResponse{
		ChatId: session.Id,
		Title:  session.Title,
	}, nil
}

func (s *chatService) DeleteSession(ctx context.Context, chatId, userId string) error {
	userId = effectiveUserId(userId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	deleted, err := uow.ChatSessionRepository().Delete(ctx, chatId, userId)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFound("Chat session not found")
	}

	s.publishEvent(ctx, events.NewChatSessionDeleted(chatId, userId))
	return nil
}

func (s *chatService) publishEvent(ctx context.Context, evt events.Event) {
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("chat", "failed to publish event", map[string]interface{}{
			"event": evt.EventType(),
			"error": err.Error(),
		})
	}
}

func (s *chatService) publishMessageLog(ctx context.Context, userId string, msg *entity.ChatMessage) {
	if s.publisherService == nil {
		return
	}

	payload := dto.PublishMessageLog{
		MessageId: msg.Id,
		ChatId:    msg.ChatSessionId,
		UserId:    userId,
		Sender:    msg.Sender,
		Text:      msg.Text,
		Timestamp: msg.CreatedAt,
	}
	msgJson, err := json.Marshal(payload)
	if err != nil {
		s.log.Warn("chat", "failed to marshal message-log payload", map[string]interface{}{
			"message_id": msg.Id,
			"error":      err.Error(),
		})
		return
	}

	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		s.log.Warn("chat", "failed to publish message log", map[string]interface{}{
			"message_id": msg.Id,
			"error":      err.Error(),
		})
	}
}
