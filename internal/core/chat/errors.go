// Package chat contains the pure domain rules shared by the messaging
// services: error kinds, participant-pair normalization, and membership
// checks. Nothing here touches persistence.
package chat

import "errors"

// Domain error kinds. Services wrap these with context via fmt.Errorf("%w");
// transport adapters classify them with errors.Is to pick a response code.
var (
	// ErrNotParticipant means the acting user is not a member of the target
	// conversation. Surfaced as access-denied.
	ErrNotParticipant = errors.New("not a participant of this conversation")

	// ErrNotFound means the conversation or message does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPair means a user attempted to start a conversation with
	// themselves.
	ErrInvalidPair = errors.New("conversation requires two distinct participants")

	// ErrInvalidStatus means a status value outside the enumerated set.
	ErrInvalidStatus = errors.New("invalid message status")

	// ErrEmptyMessage means a message with neither text nor attachment.
	ErrEmptyMessage = errors.New("message must contain text or an attachment")
)
