// Package status defines the delivery lifecycle of a message.
//
// The normal flow is sent → delivered → read, with failed reachable from
// sent or delivered. Bulk read-marking additionally takes the sent → read
// shortcut: "read" is the operationally meaningful terminal state, while
// "delivered" is advisory and may be skipped. Transitions are deliberately
// permissive beyond membership in the enumerated set; see CanSetStatus.
package status

import (
	"fmt"

	"github.com/example/courier/internal/core/chat"
)

// Status is the delivery lifecycle tag of a message.
type Status string

const (
	Sent      Status = "sent"
	Delivered Status = "delivered"
	Read      Status = "read"
	Failed    Status = "failed"
)

// All lists the enumerated statuses in lifecycle order.
func All() []Status {
	return []Status{Sent, Delivered, Read, Failed}
}

// Valid reports whether s is one of the four enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case Sent, Delivered, Read, Failed:
		return true
	}
	return false
}

// IsRead reports whether the status is the read terminal state. This is the
// only source of a message's "read" flag; it is never stored separately.
func (s Status) IsRead() bool {
	return s == Read
}

// Parse converts a raw string into a Status, rejecting values outside the
// enumerated set.
func Parse(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("status %q: %w", raw, chat.ErrInvalidStatus)
	}
	return s, nil
}

// CanSetStatus evaluates whether an actor may set a message to newStatus.
// Rules:
//   - Actor must be a participant of the owning conversation
//   - newStatus must be in the enumerated set
//
// Monotonicity is not enforced: a caller may move read back to sent, for
// example when re-driving delivery after a failure.
func CanSetStatus(userLo, userHi, actorID string, newStatus Status) error {
	if err := chat.CheckParticipant(userLo, userHi, actorID); err != nil {
		return err
	}
	if !newStatus.Valid() {
		return fmt.Errorf("status %q: %w", newStatus, chat.ErrInvalidStatus)
	}
	return nil
}
