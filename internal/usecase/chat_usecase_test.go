package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"go-jobmatch-backend/internal/domain"
	"go-jobmatch-backend/internal/usecase"
	"go-jobmatch-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockChatRepo struct {
	mock.Mock
}

func (m *MockChatRepo) Create(ctx context.Context, msg *domain.ChatMessage) error {
	return m.Called(ctx, msg).Error(0)
}
func (m *MockChatRepo) ListConversation(ctx context.Context, userA, userB string, limit, offset int) ([]domain.ChatMessage, int64, error) {
	args := m.Called(ctx, userA, userB, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.ChatMessage), args.Get(1).(int64), args.Error(2)
}
func (m *MockChatRepo) MarkConversationRead(ctx context.Context, readerID, otherID string, at time.Time) error {
	return m.Called(ctx, readerID, otherID, at).Error(0)
}

func TestChatSendMessage(t *testing.T) {
	ctx := context.Background()
	senderID := uuid.NewString()
	receiverID := uuid.NewString()

	t.Run("Should persist the message and notify the receiver", func(t *testing.T) {
		chatRepo := new(MockChatRepo)
		gate := new(MockGate)
		notifier := new(MockNotifier)
		gate.On("CanCommunicate", ctx, senderID, receiverID).Return(nil)
		chatRepo.On("Create", ctx, mock.MatchedBy(func(msg *domain.ChatMessage) bool {
			return msg.SenderID == senderID && msg.Body == "Hello there"
		})).Return(nil)
		notifier.On("Send", ctx, mock.MatchedBy(func(in *domain.SendNotificationInput) bool {
			return in.RecipientID == receiverID &&
				in.Type == domain.NotificationTypeChatMessage &&
				in.SenderID != nil && *in.SenderID == senderID
		})).Return()

		uc := usecase.NewChatUsecase(chatRepo, gate, notifier, validator.New())
		msg, err := uc.SendMessage(ctx, senderID, &domain.SendMessageInput{
			ReceiverID: receiverID,
			Body:       "  Hello there  ",
		})
		assert.NoError(t, err)
		assert.Equal(t, "Hello there", msg.Body)
		notifier.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("Should refuse a message across a block", func(t *testing.T) {
		chatRepo := new(MockChatRepo)
		gate := new(MockGate)
		notifier := new(MockNotifier)
		gate.On("CanCommunicate", ctx, senderID, receiverID).
			Return(apperror.Forbidden("Communication between these users is blocked"))

		uc := usecase.NewChatUsecase(chatRepo, gate, notifier, validator.New())
		_, err := uc.SendMessage(ctx, senderID, &domain.SendMessageInput{
			ReceiverID: receiverID,
			Body:       "Hello",
		})
		assert.Equal(t, 403, appCode(t, err))
		chatRepo.AssertNotCalled(t, "Create")
		notifier.AssertNotCalled(t, "Send")
	})

	t.Run("Should reject a blank body", func(t *testing.T) {
		uc := usecase.NewChatUsecase(new(MockChatRepo), new(MockGate), new(MockNotifier), validator.New())
		_, err := uc.SendMessage(ctx, senderID, &domain.SendMessageInput{
			ReceiverID: receiverID,
			Body:       "   ",
		})
		assert.Equal(t, 400, appCode(t, err))
	})

	t.Run("Should reject a body over the limit", func(t *testing.T) {
		uc := usecase.NewChatUsecase(new(MockChatRepo), new(MockGate), new(MockNotifier), validator.New())
		_, err := uc.SendMessage(ctx, senderID, &domain.SendMessageInput{
			ReceiverID: receiverID,
			Body:       strings.Repeat("a", 4001),
		})
		assert.Equal(t, 400, appCode(t, err))
	})
}
