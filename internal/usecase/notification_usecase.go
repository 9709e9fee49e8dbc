package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-jobmatch-backend/internal/domain"
	"go-jobmatch-backend/pkg/apperror"
	"go-jobmatch-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NotificationChannel is the per-user pub/sub topic the websocket feed
// subscribes to.
func NotificationChannel(userID string) string {
	return "user_notifications:" + userID
}

type notificationUsecase struct {
	repo        domain.NotificationRepository
	gate        domain.GateUsecase
	redisClient *redis.Client
}

// NewNotificationUsecase creates the dispatcher. redisClient may be nil,
// in which case notifications are persisted but not pushed live.
func NewNotificationUsecase(repo domain.NotificationRepository, gate domain.GateUsecase, redisClient *redis.Client) domain.NotificationUsecase {
	return &notificationUsecase{
		repo:        repo,
		gate:        gate,
		redisClient: redisClient,
	}
}

// Send persists the notification and pushes it to the recipient's live
// channel. It deliberately returns nothing: a failed dispatch is logged
// and dropped, never surfaced to the triggering operation. When SenderID
// is present the communication gate is re-checked at send time, so a
// block established after the action was queued still suppresses the
// notification.
func (uc *notificationUsecase) Send(ctx context.Context, input *domain.SendNotificationInput) {
	log := logger.With("notification_dispatcher")

	if input.SenderID != nil {
		if err := uc.gate.CanCommunicate(ctx, input.RecipientID, *input.SenderID); err != nil {
			log.Debug("notification dropped by communication gate",
				"recipient", input.RecipientID, "sender", *input.SenderID, "reason", err.Error())
			return
		}
	}

	n := &domain.Notification{
		ID:        uuid.NewString(),
		UserID:    input.RecipientID,
		Title:     input.Title,
		Message:   input.Message,
		Type:      input.Type,
		EntityID:  input.EntityID,
		IsRead:    false,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		log.Error("failed to persist notification", "recipient", input.RecipientID, "error", err)
		return
	}

	// Live push is best effort. The persisted row is the durable source
	// of truth; a publish that reaches no connected client is simply lost.
	if uc.redisClient == nil {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		log.Error("failed to marshal notification payload", "id", n.ID, "error", err)
		return
	}
	if err := uc.redisClient.Publish(ctx, NotificationChannel(n.UserID), payload).Err(); err != nil {
		log.Warn("failed to publish notification", "id", n.ID, "error", err)
	}
}

func (uc *notificationUsecase) List(ctx context.Context, userID string, page, pageSize int) ([]domain.Notification, int64, error) {
	limit, offset := paginate(page, pageSize)
	items, total, err := uc.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return items, total, nil
}

func (uc *notificationUsecase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := uc.repo.UnreadCount(ctx, userID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return count, nil
}

func (uc *notificationUsecase) MarkRead(ctx context.Context, userID, id string) error {
	if err := uc.repo.MarkRead(ctx, userID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Notification not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (uc *notificationUsecase) MarkMultipleRead(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := uc.repo.MarkMultipleRead(ctx, userID, ids); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *notificationUsecase) MarkAllRead(ctx context.Context, userID string) error {
	if err := uc.repo.MarkAllRead(ctx, userID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
