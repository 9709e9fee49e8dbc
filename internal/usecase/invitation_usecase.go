package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-jobmatch-backend/internal/domain"
	"go-jobmatch-backend/pkg/apperror"
	"go-jobmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const msgActiveInvitationExists = "An active invitation already exists for this vacancy"

type invitationUsecase struct {
	invitationRepo domain.InvitationRepository
	userRepo       domain.UserRepository
	vacancyRepo    domain.VacancyRepository
	gate           domain.GateUsecase
	notifier       domain.NotificationUsecase
	validate       *validator.Validate
	ttl            time.Duration
}

// NewInvitationUsecase creates the invitation lifecycle usecase. ttl is
// how long a freshly created invitation stays open before the sweep
// expires it.
func NewInvitationUsecase(
	invitationRepo domain.InvitationRepository,
	userRepo domain.UserRepository,
	vacancyRepo domain.VacancyRepository,
	gate domain.GateUsecase,
	notifier domain.NotificationUsecase,
	validate *validator.Validate,
	ttl time.Duration,
) domain.InvitationUsecase {
	return &invitationUsecase{
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		vacancyRepo:    vacancyRepo,
		gate:           gate,
		notifier:       notifier,
		validate:       validate,
		ttl:            ttl,
	}
}

// Create validates every precondition before any write: sender stage,
// communication gate, role/type compatibility, vacancy ownership, and
// the one-active-invitation rule. The partial unique index in storage
// arbitrates creation races; its violation surfaces as the same Conflict
// the precondition check would have produced.
func (uc *invitationUsecase) Create(ctx context.Context, senderID string, input *domain.CreateInvitationInput) (*domain.Invitation, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(validation.FormatValidationErrors(err))
	}

	sender, err := uc.userRepo.GetByID(ctx, senderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	if !domain.StageAtLeast(sender.RegistrationStage, domain.StageProfileFilled) {
		return nil, apperror.Forbidden("Complete your profile before sending invitations")
	}

	receiver, err := uc.userRepo.GetByID(ctx, input.ReceiverID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Receiver not found")
		}
		return nil, apperror.Internal(err)
	}

	if err := uc.gate.CanCommunicate(ctx, senderID, input.ReceiverID); err != nil {
		return nil, err
	}

	// The type fixes the direction: a response originates from the
	// student, an offer from the employer.
	var studentID, employerID string
	switch input.Type {
	case domain.InvitationTypeResponse:
		if sender.Role != domain.RoleStudent || receiver.Role != domain.RoleEmployer {
			return nil, apperror.Forbidden("A response can only be sent by a student to an employer")
		}
		studentID, employerID = sender.ID, receiver.ID
	case domain.InvitationTypeOffer:
		if sender.Role != domain.RoleEmployer || receiver.Role != domain.RoleStudent {
			return nil, apperror.Forbidden("An offer can only be sent by an employer to a student")
		}
		studentID, employerID = receiver.ID, sender.ID
	}

	var snapshotVacancyTitle *string
	if input.VacancyID != nil {
		vacancy, err := uc.vacancyRepo.GetByID(ctx, *input.VacancyID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, apperror.NotFound("Vacancy not found")
			}
			return nil, apperror.Internal(err)
		}
		if vacancy.EmployerID != employerID {
			return nil, apperror.Forbidden("The vacancy does not belong to the employer party")
		}
		title := vacancy.Title
		snapshotVacancyTitle = &title
	}

	message := input.Message
	if message != nil {
		trimmed := strings.TrimSpace(*message)
		if trimmed == "" {
			message = nil
		} else {
			message = &trimmed
		}
	}

	exists, err := uc.invitationRepo.ActiveExists(ctx, studentID, employerID, input.VacancyID, input.Type)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict(msgActiveInvitationExists)
	}

	now := time.Now()
	studentName := sender.DisplayName()
	employerName := receiver.DisplayName()
	if input.Type == domain.InvitationTypeOffer {
		studentName, employerName = receiver.DisplayName(), sender.DisplayName()
	}

	inv := &domain.Invitation{
		ID:                   uuid.NewString(),
		StudentID:            studentID,
		EmployerID:           employerID,
		VacancyID:            input.VacancyID,
		ResumeID:             input.ResumeID,
		Type:                 input.Type,
		Status:               domain.InvitationStatusSent,
		Message:              message,
		SnapshotVacancyTitle: snapshotVacancyTitle,
		SnapshotStudentName:  &studentName,
		SnapshotEmployerName: &employerName,
		CreatedAt:            now,
		UpdatedAt:            now,
		ExpiredAt:            now.Add(uc.ttl),
	}

	if err := uc.invitationRepo.Create(ctx, inv); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Concurrent create against the same tuple: the unique index
			// picked a winner, this call lost
			return nil, apperror.Conflict(msgActiveInvitationExists)
		}
		return nil, apperror.Internal(err)
	}

	uc.notifier.Send(ctx, &domain.SendNotificationInput{
		RecipientID: receiver.ID,
		Title:       incomeTitle(input.Type),
		Message:     fmt.Sprintf("%s sent you a new %s", sender.DisplayName(), invitationNoun(input.Type)),
		Type:        domain.NotificationTypeInvitationIncome,
		EntityID:    &inv.ID,
		SenderID:    &sender.ID,
	})

	return inv, nil
}

// ChangeStatus drives the status machine. Accept and reject belong to the
// receiver of the invitation, cancel to its sender; everything but Sent
// is terminal.
func (uc *invitationUsecase) ChangeStatus(ctx context.Context, actorID, invitationID, newStatus string) (*domain.Invitation, error) {
	switch newStatus {
	case domain.InvitationStatusAccepted, domain.InvitationStatusRejected, domain.InvitationStatusCancelled:
	default:
		return nil, apperror.BadRequest("Status must be accepted, rejected or cancelled")
	}

	inv, err := uc.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Invitation not found")
		}
		return nil, apperror.Internal(err)
	}
	if actorID != inv.StudentID && actorID != inv.EmployerID {
		// Non-parties never learn the invitation exists
		return nil, apperror.NotFound("Invitation not found")
	}

	if !inv.CanTransition(newStatus) {
		return nil, apperror.UnprocessableEntity("Invitation is already resolved")
	}

	switch newStatus {
	case domain.InvitationStatusCancelled:
		if actorID != inv.SenderID() {
			return nil, apperror.Forbidden("Only the sender can cancel an invitation")
		}
	default:
		if actorID != inv.ReceiverID() {
			return nil, apperror.Forbidden("Only the receiver can accept or reject an invitation")
		}
	}

	if newStatus == domain.InvitationStatusAccepted {
		actor, err := uc.userRepo.GetByID(ctx, actorID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if !domain.StageAtLeast(actor.RegistrationStage, domain.StageProfileFilled) {
			return nil, apperror.Forbidden("Complete your profile before accepting invitations")
		}
	}

	now := time.Now()
	if err := uc.invitationRepo.UpdateStatus(ctx, invitationID, newStatus, now); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Raced against a concurrent transition or the sweep
			return nil, apperror.UnprocessableEntity("Invitation is already resolved")
		}
		return nil, apperror.Internal(err)
	}
	inv.Status = newStatus
	inv.UpdatedAt = now

	other := inv.StudentID
	if actorID == inv.StudentID {
		other = inv.EmployerID
	}
	uc.notifier.Send(ctx, &domain.SendNotificationInput{
		RecipientID: other,
		Title:       "Invitation update",
		Message:     statusDescription(inv, newStatus),
		Type:        domain.NotificationTypeInvitationStatus,
		EntityID:    &inv.ID,
		SenderID:    &actorID,
	})

	return inv, nil
}

func (uc *invitationUsecase) GetByID(ctx context.Context, actorID, invitationID string) (*domain.Invitation, error) {
	inv, err := uc.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Invitation not found")
		}
		return nil, apperror.Internal(err)
	}
	if actorID != inv.StudentID && actorID != inv.EmployerID {
		return nil, apperror.NotFound("Invitation not found")
	}
	return inv, nil
}

func (uc *invitationUsecase) ListMine(ctx context.Context, userID string, filter domain.InvitationFilter, page, pageSize int) ([]domain.Invitation, int64, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, apperror.NotFound("User not found")
		}
		return nil, 0, apperror.Internal(err)
	}
	limit, offset := paginate(page, pageSize)
	items, total, err := uc.invitationRepo.ListForUser(ctx, userID, user.Role, filter, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return items, total, nil
}

// Sweep expires every invitation still Sent past its deadline. The guard
// lives in the UPDATE's WHERE clause, so racing user transitions simply
// win and the row is skipped; re-running immediately is a no-op. No
// notification is dispatched for expiration.
func (uc *invitationUsecase) Sweep(ctx context.Context, now time.Time) (int64, error) {
	count, err := uc.invitationRepo.ExpireDue(ctx, now)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return count, nil
}

func incomeTitle(invType string) string {
	if invType == domain.InvitationTypeOffer {
		return "New job offer"
	}
	return "New response"
}

func invitationNoun(invType string) string {
	if invType == domain.InvitationTypeOffer {
		return "job offer"
	}
	return "response"
}

func statusDescription(inv *domain.Invitation, status string) string {
	noun := invitationNoun(inv.Type)
	subject := noun
	if inv.SnapshotVacancyTitle != nil {
		subject = fmt.Sprintf("%s for %q", noun, *inv.SnapshotVacancyTitle)
	}
	switch status {
	case domain.InvitationStatusAccepted:
		return fmt.Sprintf("Your %s was accepted", subject)
	case domain.InvitationStatusRejected:
		return fmt.Sprintf("Your %s was rejected", subject)
	case domain.InvitationStatusCancelled:
		return fmt.Sprintf("The %s was cancelled by the sender", subject)
	default:
		return fmt.Sprintf("The %s changed its state", subject)
	}
}
