// Package primary defines the primary ports (driving adapters) for the
// application: the service interfaces and the DTOs exchanged at the boundary.
//
// Every operation takes the acting participant explicitly. There is no
// ambient current-user context; transports resolve identity and pass it in.
package primary

import "context"

// MessagingService defines the primary port for direct-messaging operations.
type MessagingService interface {
	// StartConversation finds or creates the conversation between the actor
	// and another user. Exactly one conversation ever exists per pair.
	StartConversation(ctx context.Context, req StartConversationRequest) (*ConversationSummary, error)

	// ListConversations lists the actor's conversations, most recently
	// active first, with last-message preview and the actor's unread count.
	ListConversations(ctx context.Context, actorID string) ([]*ConversationSummary, error)

	// ListMessages returns one page of conversation history. Page 1 holds
	// the newest messages; higher pages reach further back.
	ListMessages(ctx context.Context, req ListMessagesRequest) (*MessagePage, error)

	// SendMessage appends a message to a conversation.
	SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error)

	// SetMessageStatus updates a single message's delivery status.
	SetMessageStatus(ctx context.Context, req SetMessageStatusRequest) (*Message, error)

	// MarkConversationRead marks all incoming messages as read.
	// Returns the number of messages changed; idempotent.
	MarkConversationRead(ctx context.Context, conversationID, actorID string) (int, error)

	// MarkMessagesAsRead marks incoming sent/delivered messages as read.
	MarkMessagesAsRead(ctx context.Context, conversationID, actorID string) (int, error)

	// MarkMyMessagesAsRead marks the actor's own sent messages as read by
	// the other side. Note the inversion versus MarkConversationRead: this
	// one is about outgoing messages.
	MarkMyMessagesAsRead(ctx context.Context, conversationID, actorID string) (int, error)

	// UnreadCount returns the actor's unread count for a conversation.
	UnreadCount(ctx context.Context, conversationID, actorID string) (int, error)
}

// StartConversationRequest contains parameters for finding or creating a
// conversation.
type StartConversationRequest struct {
	ActorID string
	OtherID string
}

// SendMessageRequest contains parameters for appending a message.
// Text and AttachmentURL may not both be empty.
type SendMessageRequest struct {
	ConversationID string
	SenderID       string
	Text           string
	AttachmentURL  string
}

// SetMessageStatusRequest contains parameters for a status transition.
type SetMessageStatusRequest struct {
	MessageID string
	Status    string
	ActorID   string
}

// ListMessagesRequest contains parameters for one history page.
// Page defaults to 1, PageSize to 20 (capped at 100).
type ListMessagesRequest struct {
	ConversationID string
	ActorID        string
	Page           int
	PageSize       int
}

// Message represents a message entity at the port boundary.
// IsRead is derived from Status; it is never stored independently.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	Text           string
	AttachmentURL  string
	Status         string
	IsRead         bool
	CreatedAt      string
	UpdatedAt      string
}

// ConversationSummary represents a conversation at the port boundary,
// enriched with the data a conversation list needs.
type ConversationSummary struct {
	ID           string
	Participants [2]string
	CreatedAt    string
	UpdatedAt    string
	LastMessage  *Message // nil when the conversation is empty
	UnreadCount  int      // unread count for the requesting actor
}

// MessagePage is one window of conversation history in ascending
// chronological order. NextPage/PreviousPage are 0 at the boundaries.
type MessagePage struct {
	Count        int
	HasNext      bool
	HasPrevious  bool
	NextPage     int
	PreviousPage int
	Messages     []*Message
}
