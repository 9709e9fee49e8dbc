package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobmatch-backend/internal/domain"
	"go-jobmatch-backend/pkg/apperror"
	"go-jobmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type authUsecase struct {
	userRepo domain.UserRepository
	validate *validator.Validate
}

func NewAuthUsecase(userRepo domain.UserRepository, validate *validator.Validate) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		validate: validate,
	}
}

func (uc *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// UpdateProfile applies the changed fields and recalculates the
// registration stage from the resulting profile state before saving.
func (uc *authUsecase) UpdateProfile(ctx context.Context, userID string, upd *domain.ProfileUpdate) (*domain.User, error) {
	if err := uc.validate.Struct(upd); err != nil {
		return nil, apperror.BadRequest(validation.FormatValidationErrors(err))
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	if upd.FirstName != nil {
		user.FirstName = upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = upd.LastName
	}
	if upd.CompanyName != nil {
		user.CompanyName = upd.CompanyName
	}
	if upd.About != nil {
		user.About = upd.About
	}
	if upd.City != nil {
		user.City = upd.City
	}

	inputs := domain.StageInputs{}
	switch user.Role {
	case domain.RoleStudent:
		inputs.PublishedResumes, err = uc.userRepo.CountPublishedResumes(ctx, userID)
	case domain.RoleEmployer:
		inputs.ActiveVacancies, err = uc.userRepo.CountActiveVacancies(ctx, userID)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user.RegistrationStage = domain.CalculateStage(user, inputs)
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// DeleteAccount soft-deletes the account. The row stays behind for audit
// and invitation snapshots; the gate denies all communication with it.
func (uc *authUsecase) DeleteAccount(ctx context.Context, userID string) error {
	if err := uc.userRepo.SoftDelete(ctx, userID, time.Now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal(err)
	}
	return nil
}
