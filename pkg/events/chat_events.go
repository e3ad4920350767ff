package events

import "time"

const (
	TypeChatSessionCreated = "chat.session.created"
	TypeChatSessionRenamed = "chat.session.renamed"
	TypeChatSessionDeleted = "chat.session.deleted"
	TypeChatMessageSent    = "chat.message.sent"
	TypePodBooked          = "pod.booked"
)

func NewChatSessionCreated(sessionId, userId string) Event {
	return BaseEvent{
		Type: TypeChatSessionCreated,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"user_id":    userId,
		},
		OccurredAt: time.Now(),
	}
}

func NewChatSessionRenamed(sessionId, userId, title string) Event {
	return BaseEvent{
		Type: TypeChatSessionRenamed,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"user_id":    userId,
			"title":      title,
		},
		OccurredAt: time.Now(),
	}
}

func NewChatSessionDeleted(sessionId, userId string) Event {
	return BaseEvent{
		Type: TypeChatSessionDeleted,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"user_id":    userId,
		},
		OccurredAt: time.Now(),
	}
}

func NewChatMessageSent(sessionId, userId, messageId, sender string) Event {
	return BaseEvent{
		Type: TypeChatMessageSent,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"user_id":    userId,
			"message_id": messageId,
			"sender":     sender,
		},
		OccurredAt: time.Now(),
	}
}

func NewPodBooked(bookingId string, podId int, userId, timeSlot string) Event {
	return BaseEvent{
		Type: TypePodBooked,
		Data: map[string]interface{}{
			"booking_id": bookingId,
			"pod_id":     podId,
			"user_id":    userId,
			"time_slot":  timeSlot,
		},
		OccurredAt: time.Now(),
	}
}
