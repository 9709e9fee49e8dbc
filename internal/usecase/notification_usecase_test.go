package usecase_test

import (
	"context"
	"testing"

	"go-jobmatch-backend/internal/domain"
	"go-jobmatch-backend/internal/usecase"
	"go-jobmatch-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNotificationSend(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.NewString()
	senderID := uuid.NewString()

	t.Run("Should persist a gated notification when the pair may interact", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		gate := new(MockGate)
		gate.On("CanCommunicate", ctx, recipientID, senderID).Return(nil)
		repo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == recipientID && n.Type == domain.NotificationTypeChatMessage && !n.IsRead
		})).Return(nil)

		uc := usecase.NewNotificationUsecase(repo, gate, nil)
		uc.Send(ctx, &domain.SendNotificationInput{
			RecipientID: recipientID,
			Title:       "New message",
			Type:        domain.NotificationTypeChatMessage,
			SenderID:    &senderID,
		})
		repo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("Should drop silently when the gate denies at send time", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		gate := new(MockGate)
		gate.On("CanCommunicate", ctx, recipientID, senderID).
			Return(apperror.Forbidden("Communication between these users is blocked"))

		uc := usecase.NewNotificationUsecase(repo, gate, nil)
		uc.Send(ctx, &domain.SendNotificationInput{
			RecipientID: recipientID,
			Title:       "New message",
			Type:        domain.NotificationTypeChatMessage,
			SenderID:    &senderID,
		})
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Should skip the gate for system notifications", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		gate := new(MockGate)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		uc := usecase.NewNotificationUsecase(repo, gate, nil)
		uc.Send(ctx, &domain.SendNotificationInput{
			RecipientID: recipientID,
			Title:       "Welcome",
			Type:        domain.NotificationTypeSystem,
		})
		gate.AssertNotCalled(t, "CanCommunicate")
		repo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("Should swallow persistence failures", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		gate := new(MockGate)
		repo.On("Create", ctx, mock.Anything).Return(assert.AnError)

		uc := usecase.NewNotificationUsecase(repo, gate, nil)
		// Must not panic or surface anything to the caller
		uc.Send(ctx, &domain.SendNotificationInput{
			RecipientID: recipientID,
			Title:       "Welcome",
			Type:        domain.NotificationTypeSystem,
		})
	})
}

func TestNotificationRead(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	t.Run("Should scope MarkRead to the owner", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		repo.On("MarkRead", ctx, userID, "n-1").Return(domain.ErrNotFound)

		uc := usecase.NewNotificationUsecase(repo, new(MockGate), nil)
		err := uc.MarkRead(ctx, userID, "n-1")
		assert.Equal(t, 404, appCode(t, err))
	})

	t.Run("Should treat an empty batch as a no-op", func(t *testing.T) {
		repo := new(MockNotificationRepo)

		uc := usecase.NewNotificationUsecase(repo, new(MockGate), nil)
		assert.NoError(t, uc.MarkMultipleRead(ctx, userID, nil))
		repo.AssertNotCalled(t, "MarkMultipleRead")
	})

	t.Run("Should pass MarkAllRead through", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		repo.On("MarkAllRead", ctx, userID).Return(nil)

		uc := usecase.NewNotificationUsecase(repo, new(MockGate), nil)
		assert.NoError(t, uc.MarkAllRead(ctx, userID))
	})
}
