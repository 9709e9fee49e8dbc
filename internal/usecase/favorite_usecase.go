package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobmatch-backend/internal/domain"
	"go-jobmatch-backend/pkg/apperror"

	"github.com/google/uuid"
)

type favoriteUsecase struct {
	favoriteRepo domain.FavoriteRepository
	vacancyRepo  domain.VacancyRepository
	gate         domain.GateUsecase
}

func NewFavoriteUsecase(
	favoriteRepo domain.FavoriteRepository,
	vacancyRepo domain.VacancyRepository,
	gate domain.GateUsecase,
) domain.FavoriteUsecase {
	return &favoriteUsecase{
		favoriteRepo: favoriteRepo,
		vacancyRepo:  vacancyRepo,
		gate:         gate,
	}
}

// AddProfile favorites another user's profile, gate-checked so blocked
// pairs cannot favorite each other. Re-adding is an idempotent success.
func (uc *favoriteUsecase) AddProfile(ctx context.Context, userID, targetUserID string) (*domain.Favorite, error) {
	if err := uc.gate.CanCommunicate(ctx, userID, targetUserID); err != nil {
		return nil, err
	}

	f := &domain.Favorite{
		ID:           uuid.NewString(),
		UserID:       userID,
		TargetUserID: &targetUserID,
		CreatedAt:    time.Now(),
	}
	if err := uc.favoriteRepo.Create(ctx, f); err != nil {
		return nil, apperror.Internal(err)
	}
	return f, nil
}

// AddVacancy favorites a vacancy. The gate check runs against the
// vacancy's employer: a vacancy favorite still connects the student to
// that employer, which is also why the block cascade removes it.
func (uc *favoriteUsecase) AddVacancy(ctx context.Context, userID, vacancyID string) (*domain.Favorite, error) {
	vacancy, err := uc.vacancyRepo.GetByID(ctx, vacancyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Vacancy not found")
		}
		return nil, apperror.Internal(err)
	}

	if err := uc.gate.CanCommunicate(ctx, userID, vacancy.EmployerID); err != nil {
		return nil, err
	}

	f := &domain.Favorite{
		ID:        uuid.NewString(),
		UserID:    userID,
		VacancyID: &vacancyID,
		CreatedAt: time.Now(),
	}
	if err := uc.favoriteRepo.Create(ctx, f); err != nil {
		return nil, apperror.Internal(err)
	}
	return f, nil
}

func (uc *favoriteUsecase) Remove(ctx context.Context, userID, favoriteID string) error {
	if err := uc.favoriteRepo.Delete(ctx, userID, favoriteID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Favorite not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (uc *favoriteUsecase) ListMine(ctx context.Context, userID string, page, pageSize int) ([]domain.Favorite, int64, error) {
	limit, offset := paginate(page, pageSize)
	items, total, err := uc.favoriteRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return items, total, nil
}
