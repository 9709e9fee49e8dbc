package domain

import (
	"context"
	"time"
)

// BlackListEntry is a directional block record. Communication between two
// users is denied when a row exists in either direction.
type BlackListEntry struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	BlockedUserID string    `json:"blocked_user_id"`
	BlockedAt     time.Time `json:"blocked_at"`
}

// BlockedUser is a list row joined with the blocked account's display data.
type BlockedUser struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	BlockedAt   time.Time `json:"blocked_at"`
}

type BlackListRepository interface {
	// ExistsBetween reports whether a block row exists in either direction.
	ExistsBetween(ctx context.Context, userA, userB string) (bool, error)
	Exists(ctx context.Context, userID, blockedUserID string) (bool, error)
	// CreateWithCascade inserts the block row and, in the same transaction,
	// removes every favorite connecting the two users and rejects every
	// Sent or Accepted invitation between them. All of it commits together
	// or none of it does.
	CreateWithCascade(ctx context.Context, entry *BlackListEntry) error
	Delete(ctx context.Context, userID, blockedUserID string) error
	ListBlocked(ctx context.Context, userID string, limit, offset int) ([]BlockedUser, int64, error)
}

// GateUsecase is the single choke point every cross-user action consults
// before mutating shared state.
type GateUsecase interface {
	// CanCommunicate returns nil when the two users may interact, or a
	// typed error carrying the specific denial reason.
	CanCommunicate(ctx context.Context, userA, userB string) error
	ToggleBlock(ctx context.Context, userID, blockedUserID string, shouldBlock bool) error
	ListBlocked(ctx context.Context, userID string, page, pageSize int) ([]BlockedUser, int64, error)
}
