// Package secondary defines the secondary ports (driven adapters) for the
// application: the interfaces through which the messaging services drive
// persistence.
package secondary

import (
	"context"
	"time"
)

// ConversationRepository defines the secondary port for conversation persistence.
type ConversationRepository interface {
	// FindOrCreate returns the conversation for the normalized pair
	// (userLo, userHi), creating it atomically if it does not exist.
	// The implementation must rely on a uniqueness constraint, not a
	// read-then-write, so concurrent calls for the same pair yield one row.
	FindOrCreate(ctx context.Context, userLo, userHi string) (*ConversationRecord, error)

	// GetByID retrieves a conversation by its ID.
	GetByID(ctx context.Context, id string) (*ConversationRecord, error)

	// ListForUser retrieves all conversations a user participates in,
	// ordered by last activity descending.
	ListForUser(ctx context.Context, userID string) ([]*ConversationRecord, error)
}

// ConversationRecord represents a conversation as stored in persistence.
// The participant pair is normalized: UserLo < UserHi.
type ConversationRecord struct {
	ID        string
	UserLo    string
	UserHi    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MessageRepository defines the secondary port for message persistence.
//
// All bulk read-marking methods are single set-based updates: they either
// apply to the whole matched set or fail entirely, and they return the
// number of rows changed so repeated calls report 0.
type MessageRepository interface {
	// Create appends a message and bumps the owning conversation's
	// last-activity timestamp in the same transaction.
	Create(ctx context.Context, message *MessageRecord) error

	// GetByID retrieves a message by its ID.
	GetByID(ctx context.Context, id string) (*MessageRecord, error)

	// ListWindow retrieves the half-open slice [offset, offset+limit) of a
	// conversation's messages in ascending (created_at, id) order.
	ListWindow(ctx context.Context, conversationID string, offset, limit int) ([]*MessageRecord, error)

	// Count returns the total number of messages in a conversation.
	Count(ctx context.Context, conversationID string) (int, error)

	// Last returns the most recent message of a conversation, or nil when
	// the conversation is empty.
	Last(ctx context.Context, conversationID string) (*MessageRecord, error)

	// SetStatus updates a single message's status.
	SetStatus(ctx context.Context, id, status string) error

	// MarkConversationRead marks every message not sent by actorID and not
	// already read as read. Returns the number of messages changed.
	MarkConversationRead(ctx context.Context, conversationID, actorID string) (int, error)

	// MarkMessagesRead marks messages not sent by actorID that are currently
	// sent or delivered as read. Returns the number of messages changed.
	MarkMessagesRead(ctx context.Context, conversationID, actorID string) (int, error)

	// MarkOwnMessagesRead marks actorID's own sent messages as read,
	// recording that the other side has seen them. Returns the number of
	// messages changed.
	MarkOwnMessagesRead(ctx context.Context, conversationID, actorID string) (int, error)

	// UnreadCount returns the number of messages in the conversation not
	// sent by userID and not yet read. Always computed fresh, never stored.
	UnreadCount(ctx context.Context, conversationID, userID string) (int, error)
}

// MessageRecord represents a message as stored in persistence. Body and
// AttachmentURL use the empty string for absence; at least one is set.
type MessageRecord struct {
	ID             string
	ConversationID string
	SenderID       string
	Body           string
	AttachmentURL  string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
