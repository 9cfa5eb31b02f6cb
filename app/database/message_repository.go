package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lysyi3m/portfolio-api/app/contact"
)

var _ MessageRepository = (*MessageRepositoryImpl)(nil)

type MessageRepositoryImpl struct {
	db *DB
}

func NewMessageRepository(db *DB) *MessageRepositoryImpl {
	return &MessageRepositoryImpl{db: db}
}

func (r *MessageRepositoryImpl) CreateMessage(ctx context.Context, msg contact.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contact_messages (id, name, email, message, status, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, msg.ID, msg.Name, msg.Email, msg.Message, string(msg.Status), formatTimestamp(msg.SubmittedAt))

	if err != nil {
		return fmt.Errorf("failed to insert contact message: %w", err)
	}

	return nil
}

// ListMessages returns one page of messages, newest first, and the total
// number of messages matching the status filter.
func (r *MessageRepositoryImpl) ListMessages(ctx context.Context, filter contact.ListFilter) ([]contact.Message, int, error) {
	filter = filter.Normalize()

	var where []string
	var args []any
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_messages "+whereClause, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count contact messages: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, message, status, submitted_at, updated_at
		FROM contact_messages
		`+whereClause+`
		ORDER BY submitted_at DESC, rowid DESC
		LIMIT ? OFFSET ?
	`, append(args, filter.Limit, filter.Skip)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	messages := make([]contact.Message, 0, filter.Limit)
	for rows.Next() {
		var msg contact.Message
		var status, submittedAt string
		var updatedAt sql.NullString

		err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Message, &status, &submittedAt, &updatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact message row: %w", err)
		}

		msg.Status = contact.Status(status)
		if msg.SubmittedAt, err = parseTimestamp(submittedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to read submitted_at for %s: %w", msg.ID, err)
		}
		if msg.UpdatedAt, err = parseNullTimestamp(updatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to read updated_at for %s: %w", msg.ID, err)
		}

		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating contact message rows: %w", err)
	}

	return messages, total, nil
}

// UpdateMessageStatus reports false when no message has the given id.
func (r *MessageRepositoryImpl) UpdateMessageStatus(ctx context.Context, id string, status contact.Status, updatedAt time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE contact_messages
		SET status = ?, updated_at = ?
		WHERE id = ?
	`, string(status), formatTimestamp(updatedAt), id)
	if err != nil {
		return false, fmt.Errorf("failed to update contact message status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

func (r *MessageRepositoryImpl) GetMessageCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_messages").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get contact message count: %w", err)
	}
	return count, nil
}
