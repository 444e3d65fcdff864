package chat

import "fmt"

// NormalizePair orders two participant IDs into the canonical (lo, hi) form
// used as the conversation's composite key. The unordered pair {a, b} always
// normalizes to the same key, which is what makes the per-pair uniqueness
// constraint work.
func NormalizePair(a, b string) (lo, hi string, err error) {
	if a == "" || b == "" {
		return "", "", fmt.Errorf("participant id is required: %w", ErrInvalidPair)
	}
	if a == b {
		return "", "", fmt.Errorf("cannot start a conversation with yourself: %w", ErrInvalidPair)
	}
	if a < b {
		return a, b, nil
	}
	return b, a, nil
}

// IsParticipant reports whether userID is one of the conversation's two
// participants, given the normalized pair.
func IsParticipant(userLo, userHi, userID string) bool {
	return userID != "" && (userID == userLo || userID == userHi)
}

// CheckParticipant returns ErrNotParticipant when userID is outside the pair.
func CheckParticipant(userLo, userHi, userID string) error {
	if !IsParticipant(userLo, userHi, userID) {
		return fmt.Errorf("user %s: %w", userID, ErrNotParticipant)
	}
	return nil
}
