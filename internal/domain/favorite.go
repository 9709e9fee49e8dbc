package domain

import (
	"context"
	"time"
)

// Favorite targets either a user profile or a vacancy. A vacancy favorite
// still connects the favoriting student to the vacancy's employer, which
// is what the block cascade cares about.
type Favorite struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	TargetUserID *string   `json:"target_user_id,omitempty"`
	VacancyID    *string   `json:"vacancy_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	// Joined data for list responses
	TargetName   *string `json:"target_name,omitempty"`
	VacancyTitle *string `json:"vacancy_title,omitempty"`
}

type FavoriteRepository interface {
	Create(ctx context.Context, f *Favorite) error
	Delete(ctx context.Context, userID, id string) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Favorite, int64, error)
}

type FavoriteUsecase interface {
	AddProfile(ctx context.Context, userID, targetUserID string) (*Favorite, error)
	AddVacancy(ctx context.Context, userID, vacancyID string) (*Favorite, error)
	Remove(ctx context.Context, userID, favoriteID string) error
	ListMine(ctx context.Context, userID string, page, pageSize int) ([]Favorite, int64, error)
}
