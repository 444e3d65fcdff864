// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/courier/internal/core/chat"
	"github.com/example/courier/internal/ports/secondary"
)

// ConversationRepository implements secondary.ConversationRepository with SQLite.
type ConversationRepository struct {
	db *sql.DB
}

// NewConversationRepository creates a new SQLite conversation repository.
func NewConversationRepository(db *sql.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// FindOrCreate returns the conversation for the normalized pair, creating it
// if needed. The insert targets the UNIQUE(user_lo, user_hi) constraint with
// ON CONFLICT DO NOTHING, so two racing calls both land on the single
// surviving row.
func (r *ConversationRepository) FindOrCreate(ctx context.Context, userLo, userHi string) (*secondary.ConversationRecord, error) {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO conversations (id, user_lo, user_hi, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_lo, user_hi) DO NOTHING
	`, uuid.NewString(), userLo, userHi, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	record := &secondary.ConversationRecord{}
	err = r.db.QueryRowContext(ctx,
		"SELECT id, user_lo, user_hi, created_at, updated_at FROM conversations WHERE user_lo = ? AND user_hi = ?",
		userLo, userHi,
	).Scan(&record.ID, &record.UserLo, &record.UserHi, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	return record, nil
}

// GetByID retrieves a conversation by its ID.
func (r *ConversationRepository) GetByID(ctx context.Context, id string) (*secondary.ConversationRecord, error) {
	record := &secondary.ConversationRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_lo, user_hi, created_at, updated_at FROM conversations WHERE id = ?",
		id,
	).Scan(&record.ID, &record.UserLo, &record.UserHi, &record.CreatedAt, &record.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("conversation %s: %w", id, chat.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	return record, nil
}

// ListForUser retrieves a user's conversations ordered by last activity descending.
func (r *ConversationRepository) ListForUser(ctx context.Context, userID string) ([]*secondary.ConversationRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_lo, user_hi, created_at, updated_at
		FROM conversations
		WHERE user_lo = ? OR user_hi = ?
		ORDER BY updated_at DESC
	`, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ConversationRecord
	for rows.Next() {
		record := &secondary.ConversationRecord{}
		if err := rows.Scan(&record.ID, &record.UserLo, &record.UserHi, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Ensure ConversationRepository implements the interface.
var _ secondary.ConversationRepository = (*ConversationRepository)(nil)
