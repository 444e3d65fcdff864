package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/courier/internal/core/chat"
	"github.com/example/courier/internal/core/status"
	"github.com/example/courier/internal/ports/secondary"
)

// MessageRepository implements secondary.MessageRepository with SQLite.
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new SQLite message repository.
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = "id, conversation_id, sender_id, body, attachment_url, status, created_at, updated_at"

// Create appends a message and bumps the conversation's last-activity
// timestamp in one transaction.
func (r *MessageRepository) Create(ctx context.Context, message *secondary.MessageRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO messages (id, conversation_id, sender_id, body, attachment_url, status, created_at, updated_at)
		VALUES (?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, ?, ?)
	`, message.ID, message.ConversationID, message.SenderID, message.Body, message.AttachmentURL,
		message.Status, message.CreatedAt, message.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE conversations SET updated_at = ? WHERE id = ?",
		message.CreatedAt, message.ConversationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update conversation activity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit message: %w", err)
	}

	return nil
}

// GetByID retrieves a message by its ID.
func (r *MessageRepository) GetByID(ctx context.Context, id string) (*secondary.MessageRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+messageColumns+" FROM messages WHERE id = ?", id)

	record, err := scanMessage(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("message %s: %w", id, chat.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return record, nil
}

// ListWindow retrieves the slice [offset, offset+limit) of a conversation's
// messages in ascending (created_at, id) order.
func (r *MessageRepository) ListWindow(ctx context.Context, conversationID string, offset, limit int) ([]*secondary.MessageRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at ASC, id ASC
		LIMIT ? OFFSET ?
	`, conversationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var records []*secondary.MessageRecord
	for rows.Next() {
		record, err := scanMessage(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Count returns the total number of messages in a conversation.
func (r *MessageRepository) Count(ctx context.Context, conversationID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages WHERE conversation_id = ?",
		conversationID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

// Last returns the most recent message of a conversation, or nil when empty.
func (r *MessageRepository) Last(ctx context.Context, conversationID string) (*secondary.MessageRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, conversationID)

	record, err := scanMessage(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last message: %w", err)
	}

	return record, nil
}

// SetStatus updates a single message's status.
func (r *MessageRepository) SetStatus(ctx context.Context, id, newStatus string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE messages SET status = ?, updated_at = ? WHERE id = ?",
		newStatus, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set message status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("message %s: %w", id, chat.ErrNotFound)
	}

	return nil
}

// MarkConversationRead marks all incoming unread messages as read in a
// single set-based update.
func (r *MessageRepository) MarkConversationRead(ctx context.Context, conversationID, actorID string) (int, error) {
	return r.bulkMarkRead(ctx, `
		UPDATE messages SET status = ?, updated_at = ?
		WHERE conversation_id = ? AND sender_id != ? AND status != ?
	`, string(status.Read), time.Now().UTC(), conversationID, actorID, string(status.Read))
}

// MarkMessagesRead marks incoming sent/delivered messages as read.
func (r *MessageRepository) MarkMessagesRead(ctx context.Context, conversationID, actorID string) (int, error) {
	return r.bulkMarkRead(ctx, `
		UPDATE messages SET status = ?, updated_at = ?
		WHERE conversation_id = ? AND sender_id != ? AND status IN (?, ?)
	`, string(status.Read), time.Now().UTC(), conversationID, actorID, string(status.Sent), string(status.Delivered))
}

// MarkOwnMessagesRead marks the actor's own sent messages as read.
func (r *MessageRepository) MarkOwnMessagesRead(ctx context.Context, conversationID, actorID string) (int, error) {
	return r.bulkMarkRead(ctx, `
		UPDATE messages SET status = ?, updated_at = ?
		WHERE conversation_id = ? AND sender_id = ? AND status = ?
	`, string(status.Read), time.Now().UTC(), conversationID, actorID, string(status.Sent))
}

func (r *MessageRepository) bulkMarkRead(ctx context.Context, query string, args ...any) (int, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count marked messages: %w", err)
	}

	return int(rowsAffected), nil
}

// UnreadCount returns the number of messages not sent by userID and not yet
// read. Computed fresh on every call.
func (r *MessageRepository) UnreadCount(ctx context.Context, conversationID, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages WHERE conversation_id = ? AND sender_id != ? AND status != ?",
		conversationID, userID, string(status.Read),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get unread count: %w", err)
	}
	return count, nil
}

// scanMessage scans one message row, mapping NULL body/attachment to "".
func scanMessage(scan func(...any) error) (*secondary.MessageRecord, error) {
	var (
		record     secondary.MessageRecord
		body       sql.NullString
		attachment sql.NullString
	)
	err := scan(&record.ID, &record.ConversationID, &record.SenderID, &body, &attachment,
		&record.Status, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, err
	}
	record.Body = body.String
	record.AttachmentURL = attachment.String
	return &record, nil
}

// Ensure MessageRepository implements the interface.
var _ secondary.MessageRepository = (*MessageRepository)(nil)
