package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-jobmatch-backend/internal/domain"
	"go-jobmatch-backend/pkg/apperror"
	"go-jobmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type chatUsecase struct {
	chatRepo domain.ChatRepository
	gate     domain.GateUsecase
	notifier domain.NotificationUsecase
	validate *validator.Validate
}

func NewChatUsecase(
	chatRepo domain.ChatRepository,
	gate domain.GateUsecase,
	notifier domain.NotificationUsecase,
	validate *validator.Validate,
) domain.ChatUsecase {
	return &chatUsecase{
		chatRepo: chatRepo,
		gate:     gate,
		notifier: notifier,
		validate: validate,
	}
}

// SendMessage persists a direct message after the communication gate
// clears the pair, then notifies the receiver. The notification carries
// the sender id so a block landing between persist and dispatch still
// suppresses it.
func (uc *chatUsecase) SendMessage(ctx context.Context, senderID string, input *domain.SendMessageInput) (*domain.ChatMessage, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(validation.FormatValidationErrors(err))
	}

	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, apperror.BadRequest("Message body must not be empty")
	}

	if err := uc.gate.CanCommunicate(ctx, senderID, input.ReceiverID); err != nil {
		return nil, err
	}

	msg := &domain.ChatMessage{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: input.ReceiverID,
		Body:       body,
		CreatedAt:  time.Now(),
	}
	if err := uc.chatRepo.Create(ctx, msg); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.notifier.Send(ctx, &domain.SendNotificationInput{
		RecipientID: input.ReceiverID,
		Title:       "New message",
		Message:     fmt.Sprintf("You have a new message: %s", preview(body)),
		Type:        domain.NotificationTypeChatMessage,
		EntityID:    &msg.ID,
		SenderID:    &senderID,
	})

	return msg, nil
}

func (uc *chatUsecase) ListConversation(ctx context.Context, userID, otherID string, page, pageSize int) ([]domain.ChatMessage, int64, error) {
	limit, offset := paginate(page, pageSize)
	items, total, err := uc.chatRepo.ListConversation(ctx, userID, otherID, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return items, total, nil
}

func (uc *chatUsecase) MarkConversationRead(ctx context.Context, userID, otherID string) error {
	if err := uc.chatRepo.MarkConversationRead(ctx, userID, otherID, time.Now()); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func preview(body string) string {
	const max = 80
	if len(body) <= max {
		return body
	}
	return body[:max] + "…"
}
