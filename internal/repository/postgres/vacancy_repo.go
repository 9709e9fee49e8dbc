package postgres

import (
	"context"
	"errors"

	"go-jobmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type vacancyRepo struct {
	db *pgxpool.Pool
}

func NewVacancyRepository(db *pgxpool.Pool) domain.VacancyRepository {
	return &vacancyRepo{db: db}
}

func (r *vacancyRepo) GetByID(ctx context.Context, id string) (*domain.Vacancy, error) {
	query := `
		SELECT id, employer_id, title, description, city, salary_from, salary_to, skills, is_active, created_at, updated_at
		FROM vacancies WHERE id = $1`
	var v domain.Vacancy
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.EmployerID, &v.Title, &v.Description, &v.City,
		&v.SalaryFrom, &v.SalaryTo, pq.Array(&v.Skills), &v.IsActive,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *vacancyRepo) ListByEmployer(ctx context.Context, employerID string, limit, offset int) ([]domain.Vacancy, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM vacancies WHERE employer_id = $1`
	if err := r.db.QueryRow(ctx, countQuery, employerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, employer_id, title, description, city, salary_from, salary_to, skills, is_active, created_at, updated_at
		FROM vacancies
		WHERE employer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, employerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vacancies []domain.Vacancy
	for rows.Next() {
		var v domain.Vacancy
		if err := rows.Scan(
			&v.ID, &v.EmployerID, &v.Title, &v.Description, &v.City,
			&v.SalaryFrom, &v.SalaryTo, pq.Array(&v.Skills), &v.IsActive,
			&v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		vacancies = append(vacancies, v)
	}
	return vacancies, total, rows.Err()
}
