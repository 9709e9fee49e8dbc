package domain

import (
	"context"
	"time"
)

type Vacancy struct {
	ID          string    `json:"id"`
	EmployerID  string    `json:"employer_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	City        *string   `json:"city,omitempty"`
	SalaryFrom  *int      `json:"salary_from,omitempty"`
	SalaryTo    *int      `json:"salary_to,omitempty"`
	Skills      []string  `json:"skills"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type VacancyRepository interface {
	GetByID(ctx context.Context, id string) (*Vacancy, error)
	ListByEmployer(ctx context.Context, employerID string, limit, offset int) ([]Vacancy, int64, error)
}
