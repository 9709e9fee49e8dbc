package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, email, role, first_name, last_name, company_name, about, city,
	registration_stage, is_deleted, deleted_at, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Role, &u.FirstName, &u.LastName, &u.CompanyName, &u.About, &u.City,
		&u.RegistrationStage, &u.IsDeleted, &u.DeletedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, role, first_name, last_name, company_name, about, city,
			registration_stage, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, $10, $11)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.Role, user.FirstName, user.LastName, user.CompanyName,
		user.About, user.City, user.RegistrationStage, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND is_deleted = false`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, company_name = $4, about = $5, city = $6,
			registration_stage = $7, updated_at = $8
		WHERE id = $1 AND is_deleted = false`
	result, err := r.db.Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.CompanyName, user.About, user.City,
		user.RegistrationStage, user.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE users SET is_deleted = true, deleted_at = $2, updated_at = $2 WHERE id = $1 AND is_deleted = false`
	result, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) CountPublishedResumes(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM resumes WHERE student_id = $1 AND is_published = true`
	var count int
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *userRepo) CountActiveVacancies(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM vacancies WHERE employer_id = $1 AND is_active = true`
	var count int
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}
