package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-jobmatch-backend/internal/domain"
	"go-jobmatch-backend/internal/usecase"
	"go-jobmatch-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCanCommunicate(t *testing.T) {
	ctx := context.Background()
	student := testStudent("student-1")
	employer := testEmployer("employer-1")

	t.Run("Should allow two eligible users of opposite roles", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		blRepo := new(MockBlackListRepo)
		userRepo.On("GetByID", ctx, student.ID).Return(student, nil)
		userRepo.On("GetByID", ctx, employer.ID).Return(employer, nil)
		blRepo.On("ExistsBetween", ctx, student.ID, employer.ID).Return(false, nil)

		uc := usecase.NewGateUsecase(userRepo, blRepo)
		assert.NoError(t, uc.CanCommunicate(ctx, student.ID, employer.ID))
	})

	t.Run("Should deny self interaction without hitting storage", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		blRepo := new(MockBlackListRepo)

		uc := usecase.NewGateUsecase(userRepo, blRepo)
		err := uc.CanCommunicate(ctx, student.ID, student.ID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "yourself")
		userRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("Should deny when either party is an admin", func(t *testing.T) {
		admin := testAdmin("admin-1")
		userRepo := new(MockUserRepo)
		blRepo := new(MockBlackListRepo)
		userRepo.On("GetByID", ctx, student.ID).Return(student, nil)
		userRepo.On("GetByID", ctx, admin.ID).Return(admin, nil)

		uc := usecase.NewGateUsecase(userRepo, blRepo)
		err := uc.CanCommunicate(ctx, student.ID, admin.ID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Administrators")
		blRepo.AssertNotCalled(t, "ExistsBetween")
	})

	t.Run("Should deny when either party is soft-deleted", func(t *testing.T) {
		deleted := testEmployer("employer-deleted")
		deleted.IsDeleted = true
		userRepo := new(MockUserRepo)
		blRepo := new(MockBlackListRepo)
		userRepo.On("GetByID", ctx, student.ID).Return(student, nil)
		userRepo.On("GetByID", ctx, deleted.ID).Return(deleted, nil)

		uc := usecase.NewGateUsecase(userRepo, blRepo)
		err := uc.CanCommunicate(ctx, student.ID, deleted.ID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no longer available")
	})

	t.Run("Should deny regardless of which side placed the block", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		blRepo := new(MockBlackListRepo)
		userRepo.On("GetByID", ctx, student.ID).Return(student, nil)
		userRepo.On("GetByID", ctx, employer.ID).Return(employer, nil)
		// The repo query is symmetric, one lookup covers both directions
		blRepo.On("ExistsBetween", ctx, student.ID, employer.ID).Return(true, nil)

		uc := usecase.NewGateUsecase(userRepo, blRepo)
		err := uc.CanCommunicate(ctx, student.ID, employer.ID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "blocked")

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, 403, appErr.Code)
	})

	t.Run("Should return NotFound for a missing party", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		blRepo := new(MockBlackListRepo)
		userRepo.On("GetByID", ctx, student.ID).Return(student, nil)
		userRepo.On("GetByID", ctx, "ghost").Return(nil, domain.ErrNotFound)

		uc := usecase.NewGateUsecase(userRepo, blRepo)
		err := uc.CanCommunicate(ctx, student.ID, "ghost")
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestToggleBlock(t *testing.T) {
	ctx := context.Background()
	student := testStudent("student-1")
	employer := testEmployer("employer-1")

	t.Run("Should create the block with one cascading call", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		blRepo := new(MockBlackListRepo)
		userRepo.On("GetByID", ctx, student.ID).Return(student, nil)
		userRepo.On("GetByID", ctx, employer.ID).Return(employer, nil)
		blRepo.On("Exists", ctx, student.ID, employer.ID).Return(false, nil)
		blRepo.On("CreateWithCascade", ctx, mock.MatchedBy(func(e *domain.BlackListEntry) bool {
			return e.UserID == student.ID && e.BlockedUserID == employer.ID && e.ID != ""
		})).Return(nil)

		uc := usecase.NewGateUsecase(userRepo, blRepo)
		assert.NoError(t, uc.ToggleBlock(ctx, student.ID, employer.ID, true))
		blRepo.AssertNumberOfCalls(t, "CreateWithCascade", 1)
	})

	t.Run("Should succeed without a second cascade when already blocked", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		blRepo := new(MockBlackListRepo)
		userRepo.On("GetByID", ctx, student.ID).Return(student, nil)
		userRepo.On("GetByID", ctx, employer.ID).Return(employer, nil)
		blRepo.On("Exists", ctx, student.ID, employer.ID).Return(true, nil)

		uc := usecase.NewGateUsecase(userRepo, blRepo)
		assert.NoError(t, uc.ToggleBlock(ctx, student.ID, employer.ID, true))
		blRepo.AssertNotCalled(t, "CreateWithCascade")
	})

	t.Run("Should treat a lost creation race as success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		blRepo := new(MockBlackListRepo)
		userRepo.On("GetByID", ctx, student.ID).Return(student, nil)
		userRepo.On("GetByID", ctx, employer.ID).Return(employer, nil)
		blRepo.On("Exists", ctx, student.ID, employer.ID).Return(false, nil)
		blRepo.On("CreateWithCascade", ctx, mock.Anything).Return(domain.ErrConflict)

		uc := usecase.NewGateUsecase(userRepo, blRepo)
		assert.NoError(t, uc.ToggleBlock(ctx, student.ID, employer.ID, true))
	})

	t.Run("Should unblock idempotently", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		blRepo := new(MockBlackListRepo)
		userRepo.On("GetByID", ctx, student.ID).Return(student, nil)
		userRepo.On("GetByID", ctx, employer.ID).Return(employer, nil)
		blRepo.On("Delete", ctx, student.ID, employer.ID).Return(domain.ErrNotFound)

		uc := usecase.NewGateUsecase(userRepo, blRepo)
		assert.NoError(t, uc.ToggleBlock(ctx, student.ID, employer.ID, false))
	})

	t.Run("Should refuse blocking a user of the same role", func(t *testing.T) {
		otherStudent := testStudent("student-2")
		userRepo := new(MockUserRepo)
		blRepo := new(MockBlackListRepo)
		userRepo.On("GetByID", ctx, student.ID).Return(student, nil)
		userRepo.On("GetByID", ctx, otherStudent.ID).Return(otherStudent, nil)

		uc := usecase.NewGateUsecase(userRepo, blRepo)
		err := uc.ToggleBlock(ctx, student.ID, otherStudent.ID, true)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "opposite role")
	})

	t.Run("Should refuse blocking an admin", func(t *testing.T) {
		admin := testAdmin("admin-1")
		userRepo := new(MockUserRepo)
		blRepo := new(MockBlackListRepo)
		userRepo.On("GetByID", ctx, student.ID).Return(student, nil)
		userRepo.On("GetByID", ctx, admin.ID).Return(admin, nil)

		uc := usecase.NewGateUsecase(userRepo, blRepo)
		err := uc.ToggleBlock(ctx, student.ID, admin.ID, true)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Administrators cannot be blocked")
	})

	t.Run("Should refuse blocking yourself", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		blRepo := new(MockBlackListRepo)

		uc := usecase.NewGateUsecase(userRepo, blRepo)
		err := uc.ToggleBlock(ctx, student.ID, student.ID, true)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "yourself")
	})
}
