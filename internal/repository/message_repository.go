package repository

import (
	"context"

	"lynxhire/internal/database"
	"lynxhire/internal/domain/message"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, m message.Message) (message.Message, error)
	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]message.Message, error)
	Thread(ctx context.Context, userID, otherID uuid.UUID) ([]message.Message, error)
	MarkRead(ctx context.Context, senderID, recipientID uuid.UUID) error
}

type PostgresMessageRepository struct {
	db database.DB
}

func NewPostgresMessageRepository(db database.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func collectMessages(rows database.Rows) ([]message.Message, error) {
	defer rows.Close()

	out := make([]message.Message, 0)
	for rows.Next() {
		var m message.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m message.Message) (message.Message, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO messages (id, sender_id, recipient_id, content) VALUES ($1, $2, $3, $4) RETURNING is_read, created_at`,
		m.ID, m.SenderID, m.RecipientID, m.Content,
	)
	if err := row.Scan(&m.IsRead, &m.CreatedAt); err != nil {
		return message.Message{}, err
	}
	return m, nil
}

// ListForUser returns messages sent or received by userID, newest first.
func (r *PostgresMessageRepository) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]message.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, sender_id, recipient_id, content, is_read, created_at
		 FROM messages
		 WHERE sender_id = $1 OR recipient_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

func (r *PostgresMessageRepository) Thread(ctx context.Context, userID, otherID uuid.UUID) ([]message.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, sender_id, recipient_id, content, is_read, created_at
		 FROM messages
		 WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
		 ORDER BY created_at ASC`,
		userID, otherID,
	)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

func (r *PostgresMessageRepository) MarkRead(ctx context.Context, senderID, recipientID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE messages SET is_read = true WHERE sender_id = $1 AND recipient_id = $2 AND is_read = false`,
		senderID, recipientID,
	)
	return err
}
