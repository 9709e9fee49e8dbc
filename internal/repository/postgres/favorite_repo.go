package postgres

import (
	"context"

	"go-jobmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type favoriteRepo struct {
	db *pgxpool.Pool
}

func NewFavoriteRepository(db *pgxpool.Pool) domain.FavoriteRepository {
	return &favoriteRepo{db: db}
}

// Create upserts a favorite. Re-favoriting the same target keeps the
// original row, so the operation is idempotent and the returned id and
// timestamp always reflect the stored row.
func (r *favoriteRepo) Create(ctx context.Context, f *domain.Favorite) error {
	query := `
		INSERT INTO favorites (id, user_id, target_user_id, vacancy_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, COALESCE(target_user_id, '00000000-0000-0000-0000-000000000000'::uuid),
			COALESCE(vacancy_id, '00000000-0000-0000-0000-000000000000'::uuid))
		DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		f.ID, f.UserID, f.TargetUserID, f.VacancyID, f.CreatedAt,
	).Scan(&f.ID, &f.CreatedAt)
}

func (r *favoriteRepo) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM favorites WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *favoriteRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Favorite, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM favorites WHERE user_id = $1`
	if err := r.db.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT f.id, f.user_id, f.target_user_id, f.vacancy_id, f.created_at,
			COALESCE(NULLIF(TRIM(COALESCE(u.first_name, '') || ' ' || COALESCE(u.last_name, '')), ''), u.company_name) AS target_name,
			v.title AS vacancy_title
		FROM favorites f
		LEFT JOIN users u ON u.id = f.target_user_id
		LEFT JOIN vacancies v ON v.id = f.vacancy_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var favorites []domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.TargetUserID, &f.VacancyID, &f.CreatedAt, &f.TargetName, &f.VacancyTitle); err != nil {
			return nil, 0, err
		}
		favorites = append(favorites, f)
	}
	return favorites, total, rows.Err()
}
