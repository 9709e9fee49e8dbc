package postgres

import (
	"context"
	"time"

	"go-jobmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type chatRepo struct {
	db *pgxpool.Pool
}

func NewChatRepository(db *pgxpool.Pool) domain.ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) Create(ctx context.Context, m *domain.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, sender_id, receiver_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, m.ID, m.SenderID, m.ReceiverID, m.Body, m.CreatedAt)
	return err
}

func (r *chatRepo) ListConversation(ctx context.Context, userA, userB string, limit, offset int) ([]domain.ChatMessage, int64, error) {
	where := `(sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)`

	var total int64
	countQuery := `SELECT COUNT(*) FROM chat_messages WHERE ` + where
	if err := r.db.QueryRow(ctx, countQuery, userA, userB).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, sender_id, receiver_id, body, created_at, read_at
		FROM chat_messages
		WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.db.Query(ctx, query, userA, userB, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var messages []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Body, &m.CreatedAt, &m.ReadAt); err != nil {
			return nil, 0, err
		}
		messages = append(messages, m)
	}
	return messages, total, rows.Err()
}

func (r *chatRepo) MarkConversationRead(ctx context.Context, readerID, otherID string, at time.Time) error {
	query := `
		UPDATE chat_messages SET read_at = $3
		WHERE receiver_id = $1 AND sender_id = $2 AND read_at IS NULL`
	_, err := r.db.Exec(ctx, query, readerID, otherID, at)
	return err
}
