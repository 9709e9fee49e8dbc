package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobmatch-backend/internal/domain"
	"go-jobmatch-backend/pkg/apperror"

	"github.com/google/uuid"
)

type gateUsecase struct {
	userRepo      domain.UserRepository
	blackListRepo domain.BlackListRepository
}

// NewGateUsecase creates the communication gate. Every cross-user action
// (invitations, favorites, chat, notification dispatch) goes through it
// before touching shared state.
func NewGateUsecase(userRepo domain.UserRepository, blackListRepo domain.BlackListRepository) domain.GateUsecase {
	return &gateUsecase{
		userRepo:      userRepo,
		blackListRepo: blackListRepo,
	}
}

// CanCommunicate returns nil when userA and userB may interact. The error
// carries the specific denial reason so callers can surface it.
func (uc *gateUsecase) CanCommunicate(ctx context.Context, userA, userB string) error {
	if userA == userB {
		return apperror.Forbidden("You cannot interact with yourself")
	}

	a, err := uc.userRepo.GetByID(ctx, userA)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal(err)
	}
	b, err := uc.userRepo.GetByID(ctx, userB)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal(err)
	}

	if a.IsDeleted || b.IsDeleted {
		return apperror.Forbidden("This account is no longer available")
	}
	if a.Role == domain.RoleAdmin || b.Role == domain.RoleAdmin {
		return apperror.Forbidden("Administrators cannot participate in communication")
	}

	blocked, err := uc.blackListRepo.ExistsBetween(ctx, userA, userB)
	if err != nil {
		return apperror.Internal(err)
	}
	if blocked {
		return apperror.Forbidden("Communication between these users is blocked")
	}

	return nil
}

// ToggleBlock creates or lifts a block. Creating one also removes every
// favorite connecting the two users and rejects their Sent/Accepted
// invitations, all in one storage transaction. Lifting a block restores
// nothing.
func (uc *gateUsecase) ToggleBlock(ctx context.Context, userID, blockedUserID string, shouldBlock bool) error {
	if userID == blockedUserID {
		return apperror.Forbidden("You cannot block yourself")
	}

	blocker, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal(err)
	}
	target, err := uc.userRepo.GetByID(ctx, blockedUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User to block not found")
		}
		return apperror.Internal(err)
	}

	if target.Role == domain.RoleAdmin {
		return apperror.Forbidden("Administrators cannot be blocked")
	}
	// Same-role blocking is a domain rule violation, not merely redundant:
	// students and employers only ever communicate across roles.
	if blocker.Role == target.Role {
		return apperror.Forbidden("You may only block users of the opposite role")
	}

	if !shouldBlock {
		if err := uc.blackListRepo.Delete(ctx, userID, blockedUserID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return apperror.Internal(err)
		}
		return nil
	}

	exists, err := uc.blackListRepo.Exists(ctx, userID, blockedUserID)
	if err != nil {
		return apperror.Internal(err)
	}
	if exists {
		// Idempotent: blocking an already blocked user is a success
		return nil
	}

	entry := &domain.BlackListEntry{
		ID:            uuid.NewString(),
		UserID:        userID,
		BlockedUserID: blockedUserID,
		BlockedAt:     time.Now(),
	}
	if err := uc.blackListRepo.CreateWithCascade(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost a race against a concurrent block of the same pair
			return nil
		}
		return apperror.Internal(err)
	}
	return nil
}

func (uc *gateUsecase) ListBlocked(ctx context.Context, userID string, page, pageSize int) ([]domain.BlockedUser, int64, error) {
	limit, offset := paginate(page, pageSize)
	users, total, err := uc.blackListRepo.ListBlocked(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return users, total, nil
}
