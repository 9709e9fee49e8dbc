package domain

import (
	"context"
	"time"
)

type ChatMessage struct {
	ID         string     `json:"id"`
	SenderID   string     `json:"sender_id"`
	ReceiverID string     `json:"receiver_id"`
	Body       string     `json:"body"`
	CreatedAt  time.Time  `json:"created_at"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
}

type SendMessageInput struct {
	ReceiverID string `json:"receiver_id" validate:"required,uuid"`
	Body       string `json:"body" validate:"required,max=4000"`
}

type ChatRepository interface {
	Create(ctx context.Context, m *ChatMessage) error
	ListConversation(ctx context.Context, userA, userB string, limit, offset int) ([]ChatMessage, int64, error)
	MarkConversationRead(ctx context.Context, readerID, otherID string, at time.Time) error
}

type ChatUsecase interface {
	SendMessage(ctx context.Context, senderID string, input *SendMessageInput) (*ChatMessage, error)
	ListConversation(ctx context.Context, userID, otherID string, page, pageSize int) ([]ChatMessage, int64, error)
	MarkConversationRead(ctx context.Context, userID, otherID string) error
}
