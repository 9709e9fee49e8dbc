package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors, returned by repositories and translated to
// apperror at the usecase layer
var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource already exists")
)

// User roles
const (
	RoleStudent  = "student"
	RoleEmployer = "employer"
	RoleAdmin    = "admin"
)

// Registration stages, recalculated from profile state on every mutation
const (
	StageAnonymous      = "anonymous"
	StageProfileFilled  = "profile_filled"
	StageFullyActivated = "fully_activated"
)

type User struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	Role              string     `json:"role"`
	FirstName         *string    `json:"first_name,omitempty"`
	LastName          *string    `json:"last_name,omitempty"`
	CompanyName       *string    `json:"company_name,omitempty"`
	About             *string    `json:"about,omitempty"`
	City              *string    `json:"city,omitempty"`
	RegistrationStage string     `json:"registration_stage"`
	IsDeleted         bool       `json:"-"`
	DeletedAt         *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// DisplayName is the name shown to the counterpart: full name for students,
// company name for employers, email as the fallback. Also used to populate
// invitation snapshot fields.
func (u *User) DisplayName() string {
	switch u.Role {
	case RoleEmployer:
		if u.CompanyName != nil && *u.CompanyName != "" {
			return *u.CompanyName
		}
	default:
		if u.FirstName != nil && u.LastName != nil && *u.FirstName != "" && *u.LastName != "" {
			return *u.FirstName + " " + *u.LastName
		}
	}
	return u.Email
}

type ProfileUpdate struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=100,valid_name"`
	LastName    *string `json:"last_name" validate:"omitempty,max=100,valid_name"`
	CompanyName *string `json:"company_name" validate:"omitempty,max=200"`
	About       *string `json:"about" validate:"omitempty,max=2000,no_emoji"`
	City        *string `json:"city" validate:"omitempty,max=100,valid_name"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	SoftDelete(ctx context.Context, id string, at time.Time) error

	// Stage calculator inputs
	CountPublishedResumes(ctx context.Context, userID string) (int, error)
	CountActiveVacancies(ctx context.Context, userID string) (int, error)
}

type AuthUsecase interface {
	GetCurrentUser(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, upd *ProfileUpdate) (*User, error)
	DeleteAccount(ctx context.Context, userID string) error
}
