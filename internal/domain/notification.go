package domain

import (
	"context"
	"time"
)

// Notification types
const (
	NotificationTypeSystem           = "system"
	NotificationTypeInvitationIncome = "invitation_income"
	NotificationTypeInvitationStatus = "invitation_status"
	NotificationTypeChatMessage      = "chat_message"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	EntityID  *string   `json:"entity_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// SendNotificationInput describes a dispatch request. SenderID, when set,
// makes the dispatcher re-check the communication gate at send time and
// silently drop the notification if the pair may no longer interact.
type SendNotificationInput struct {
	RecipientID string
	Title       string
	Message     string
	Type        string
	EntityID    *string
	SenderID    *string
}

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Notification, int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkMultipleRead(ctx context.Context, userID string, ids []string) error
	MarkAllRead(ctx context.Context, userID string) error
}

// NotificationUsecase persists notifications and pushes them to the
// per-user live channel. Send is fire-and-forget from the caller's side:
// it never fails the triggering business operation.
type NotificationUsecase interface {
	Send(ctx context.Context, input *SendNotificationInput)
	List(ctx context.Context, userID string, page, pageSize int) ([]Notification, int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkMultipleRead(ctx context.Context, userID string, ids []string) error
	MarkAllRead(ctx context.Context, userID string) error
}
