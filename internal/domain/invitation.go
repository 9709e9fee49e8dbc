package domain

import (
	"context"
	"time"
)

// Invitation statuses. Sent is the only non-terminal state; every other
// status is final and no transition is defined out of it.
const (
	InvitationStatusSent      = "sent"
	InvitationStatusAccepted  = "accepted"
	InvitationStatusRejected  = "rejected"
	InvitationStatusExpired   = "expired"
	InvitationStatusCancelled = "cancelled"
)

// Invitation types. A response is student → employer, an offer is
// employer → student. The type fixes who the receiver of the invitation
// is for the whole lifecycle.
const (
	InvitationTypeResponse = "response"
	InvitationTypeOffer    = "offer"
)

// Invitation is a directed interaction record between a student and an
// employer. Snapshot fields are captured once at creation so the record
// stays intelligible after the referenced vacancy or profile is renamed
// or soft-deleted.
type Invitation struct {
	ID                   string    `json:"id"`
	StudentID            string    `json:"student_id"`
	EmployerID           string    `json:"employer_id"`
	VacancyID            *string   `json:"vacancy_id,omitempty"`
	ResumeID             *string   `json:"resume_id,omitempty"`
	Type                 string    `json:"type"`
	Status               string    `json:"status"`
	Message              *string   `json:"message,omitempty"`
	SnapshotVacancyTitle *string   `json:"snapshot_vacancy_title,omitempty"`
	SnapshotStudentName  *string   `json:"snapshot_student_name,omitempty"`
	SnapshotEmployerName *string   `json:"snapshot_employer_name,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
	ExpiredAt            time.Time `json:"expired_at"`
}

// SenderID returns the party that originated the invitation.
func (i *Invitation) SenderID() string {
	if i.Type == InvitationTypeOffer {
		return i.EmployerID
	}
	return i.StudentID
}

// ReceiverID returns the party the invitation is addressed to, i.e. the
// only party allowed to accept or reject it.
func (i *Invitation) ReceiverID() string {
	if i.Type == InvitationTypeOffer {
		return i.StudentID
	}
	return i.EmployerID
}

// CanTransition reports whether the status machine defines a move from
// the invitation's current status to the target. Only Sent has outgoing
// transitions.
func (i *Invitation) CanTransition(to string) bool {
	if i.Status != InvitationStatusSent {
		return false
	}
	switch to {
	case InvitationStatusAccepted, InvitationStatusRejected,
		InvitationStatusExpired, InvitationStatusCancelled:
		return true
	}
	return false
}

// InvitationFilter narrows invitation listings. Direction is from the
// requesting user's point of view: "incoming" or "outgoing".
type InvitationFilter struct {
	Direction string
	Status    string
	Type      string
}

type CreateInvitationInput struct {
	ReceiverID string  `json:"receiver_id" validate:"required,uuid"`
	VacancyID  *string `json:"vacancy_id" validate:"omitempty,uuid"`
	ResumeID   *string `json:"resume_id" validate:"omitempty,uuid"`
	Message    *string `json:"message" validate:"omitempty,max=1000"`
	Type       string  `json:"type" validate:"required,oneof=response offer"`
}

type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByID(ctx context.Context, id string) (*Invitation, error)
	// ActiveExists checks the one-Sent-per-tuple invariant up front; the
	// partial unique index remains the backstop for concurrent creates.
	ActiveExists(ctx context.Context, studentID, employerID string, vacancyID *string, invType string) (bool, error)
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
	// ExpireDue transitions every invitation still Sent with expired_at
	// earlier than now to Expired and returns the number of rows touched.
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
	ListForUser(ctx context.Context, userID, role string, filter InvitationFilter, limit, offset int) ([]Invitation, int64, error)
}

type InvitationUsecase interface {
	Create(ctx context.Context, senderID string, input *CreateInvitationInput) (*Invitation, error)
	ChangeStatus(ctx context.Context, actorID, invitationID, newStatus string) (*Invitation, error)
	GetByID(ctx context.Context, actorID, invitationID string) (*Invitation, error)
	ListMine(ctx context.Context, userID string, filter InvitationFilter, page, pageSize int) ([]Invitation, int64, error)
	Sweep(ctx context.Context, now time.Time) (int64, error)
}
