package postgres

import (
	"context"

	"go-jobmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type blackListRepo struct {
	db *pgxpool.Pool
}

func NewBlackListRepository(db *pgxpool.Pool) domain.BlackListRepository {
	return &blackListRepo{db: db}
}

func (r *blackListRepo) ExistsBetween(ctx context.Context, userA, userB string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM black_lists
			WHERE (user_id = $1 AND blocked_user_id = $2)
			   OR (user_id = $2 AND blocked_user_id = $1)
		)`
	var exists bool
	err := r.db.QueryRow(ctx, query, userA, userB).Scan(&exists)
	return exists, err
}

func (r *blackListRepo) Exists(ctx context.Context, userID, blockedUserID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM black_lists WHERE user_id = $1 AND blocked_user_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, userID, blockedUserID).Scan(&exists)
	return exists, err
}

// CreateWithCascade is the block transaction script: insert the block
// row, remove every favorite connecting the two users (both directions,
// including vacancy favorites whose vacancy belongs to the other party),
// and reject every invitation between them still Sent or Accepted. All
// three commit as one unit; a concurrent reader never observes the block
// without the cleanup.
func (r *blackListRepo) CreateWithCascade(ctx context.Context, entry *domain.BlackListEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	insertBlock := `
		INSERT INTO black_lists (id, user_id, blocked_user_id, blocked_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := tx.Exec(ctx, insertBlock, entry.ID, entry.UserID, entry.BlockedUserID, entry.BlockedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}

	deleteFavorites := `
		DELETE FROM favorites f
		WHERE (f.user_id = $1 AND f.target_user_id = $2)
		   OR (f.user_id = $2 AND f.target_user_id = $1)
		   OR (f.user_id = $1 AND f.vacancy_id IN (SELECT id FROM vacancies WHERE employer_id = $2))
		   OR (f.user_id = $2 AND f.vacancy_id IN (SELECT id FROM vacancies WHERE employer_id = $1))`
	if _, err := tx.Exec(ctx, deleteFavorites, entry.UserID, entry.BlockedUserID); err != nil {
		return err
	}

	rejectInvitations := `
		UPDATE invitations
		SET status = 'rejected', updated_at = $3
		WHERE status IN ('sent', 'accepted')
		  AND ((student_id = $1 AND employer_id = $2) OR (student_id = $2 AND employer_id = $1))`
	if _, err := tx.Exec(ctx, rejectInvitations, entry.UserID, entry.BlockedUserID, entry.BlockedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *blackListRepo) Delete(ctx context.Context, userID, blockedUserID string) error {
	query := `DELETE FROM black_lists WHERE user_id = $1 AND blocked_user_id = $2`
	result, err := r.db.Exec(ctx, query, userID, blockedUserID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *blackListRepo) ListBlocked(ctx context.Context, userID string, limit, offset int) ([]domain.BlockedUser, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM black_lists WHERE user_id = $1`
	if err := r.db.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT b.blocked_user_id,
			COALESCE(NULLIF(TRIM(COALESCE(u.first_name, '') || ' ' || COALESCE(u.last_name, '')), ''),
				COALESCE(u.company_name, u.email)) AS display_name,
			u.role, b.blocked_at
		FROM black_lists b
		JOIN users u ON u.id = b.blocked_user_id
		WHERE b.user_id = $1
		ORDER BY b.blocked_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var blocked []domain.BlockedUser
	for rows.Next() {
		var bu domain.BlockedUser
		if err := rows.Scan(&bu.UserID, &bu.DisplayName, &bu.Role, &bu.BlockedAt); err != nil {
			return nil, 0, err
		}
		blocked = append(blocked, bu)
	}
	return blocked, total, rows.Err()
}
