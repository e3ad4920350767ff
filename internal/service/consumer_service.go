package service

import (
	"context"
	"encoding/json"

	"nestle-in-be/internal/dto"
	"nestle-in-be/internal/pkg/logger"
	"nestle-in-be/pkg/rawlog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the message-log topic into the raw-log store. The
// store is best effort, so failures are logged and the message is acked
// either way; a lost log entry must never stall the bus.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	store     *rawlog.Store
	log       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	store *rawlog.Store,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		store:     store,
		log:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.PublishMessageLog
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "failed to unmarshal message-log payload", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	entry := rawlog.Entry{
		MessageId: payload.MessageId,
		SessionId: payload.ChatId,
		UserId:    payload.UserId,
		Sender:    payload.Sender,
		Text:      payload.Text,
		Timestamp: payload.Timestamp,
	}

	if err := cs.store.Append(ctx, entry); err != nil {
		cs.log.Warn("consumer", "failed to append raw-log entry", map[string]interface{}{
			"message_id": payload.MessageId,
			"error":      err.Error(),
		})
	}
}
