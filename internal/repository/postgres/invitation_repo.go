package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type invitationRepo struct {
	db *pgxpool.Pool
}

func NewInvitationRepository(db *pgxpool.Pool) domain.InvitationRepository {
	return &invitationRepo{db: db}
}

const invitationColumns = `id, student_id, employer_id, vacancy_id, resume_id, type, status, message,
	snapshot_vacancy_title, snapshot_student_name, snapshot_employer_name,
	created_at, updated_at, expired_at`

func scanInvitation(row pgx.Row) (*domain.Invitation, error) {
	var inv domain.Invitation
	err := row.Scan(
		&inv.ID, &inv.StudentID, &inv.EmployerID, &inv.VacancyID, &inv.ResumeID,
		&inv.Type, &inv.Status, &inv.Message,
		&inv.SnapshotVacancyTitle, &inv.SnapshotStudentName, &inv.SnapshotEmployerName,
		&inv.CreatedAt, &inv.UpdatedAt, &inv.ExpiredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// Create inserts a new invitation. The partial unique index over
// (student_id, employer_id, vacancy_id, type) for status = 'sent' is the
// race arbiter: a violation maps to domain.ErrConflict.
func (r *invitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitations (id, student_id, employer_id, vacancy_id, resume_id, type, status, message,
			snapshot_vacancy_title, snapshot_student_name, snapshot_employer_name,
			created_at, updated_at, expired_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.Exec(ctx, query,
		inv.ID, inv.StudentID, inv.EmployerID, inv.VacancyID, inv.ResumeID,
		inv.Type, inv.Status, inv.Message,
		inv.SnapshotVacancyTitle, inv.SnapshotStudentName, inv.SnapshotEmployerName,
		inv.CreatedAt, inv.UpdatedAt, inv.ExpiredAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *invitationRepo) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1`
	return scanInvitation(r.db.QueryRow(ctx, query, id))
}

// ActiveExists answers the one-Sent-per-tuple precondition. A NULL vacancy
// participates in the tuple: two general invitations of the same type
// between the same pair collide.
func (r *invitationRepo) ActiveExists(ctx context.Context, studentID, employerID string, vacancyID *string, invType string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM invitations
			WHERE student_id = $1 AND employer_id = $2
			  AND vacancy_id IS NOT DISTINCT FROM $3
			  AND type = $4 AND status = 'sent'
		)`
	var exists bool
	err := r.db.QueryRow(ctx, query, studentID, employerID, vacancyID, invType).Scan(&exists)
	return exists, err
}

// UpdateStatus transitions an invitation out of Sent. The status guard in
// the WHERE clause makes concurrent transitions lose cleanly: zero rows
// affected means someone else resolved the invitation first.
func (r *invitationRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	query := `UPDATE invitations SET status = $2, updated_at = $3 WHERE id = $1 AND status = 'sent'`
	result, err := r.db.Exec(ctx, query, id, status, at)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invitationRepo) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE invitations
		SET status = 'expired', updated_at = $1
		WHERE status = 'sent' AND expired_at < $1`
	result, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *invitationRepo) ListForUser(ctx context.Context, userID, role string, filter domain.InvitationFilter, limit, offset int) ([]domain.Invitation, int64, error) {
	where := `(student_id = $1 OR employer_id = $1)`
	args := []interface{}{userID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}
	// Direction from the requesting user's point of view. Which column
	// holds the user and which type means "outgoing" depends on the role.
	if filter.Direction != "" {
		outgoingType := domain.InvitationTypeResponse
		if role == domain.RoleEmployer {
			outgoingType = domain.InvitationTypeOffer
		}
		args = append(args, outgoingType)
		if filter.Direction == "outgoing" {
			where += fmt.Sprintf(" AND type = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND type <> $%d", len(args))
		}
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM invitations WHERE ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM invitations WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		invitationColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var invitations []domain.Invitation
	for rows.Next() {
		var inv domain.Invitation
		if err := rows.Scan(
			&inv.ID, &inv.StudentID, &inv.EmployerID, &inv.VacancyID, &inv.ResumeID,
			&inv.Type, &inv.Status, &inv.Message,
			&inv.SnapshotVacancyTitle, &inv.SnapshotStudentName, &inv.SnapshotEmployerName,
			&inv.CreatedAt, &inv.UpdatedAt, &inv.ExpiredAt,
		); err != nil {
			return nil, 0, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, total, rows.Err()
}
