// Package sqlite_test contains integration tests for SQLite repositories.
//
// All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema; do not hardcode CREATE TABLE statements here.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/courier/internal/db"
	"github.com/example/courier/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// A fresh pool connection would get its own empty in-memory database,
	// so pin everything to a single connection.
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedConversation inserts a conversation for the given pair and returns its ID.
// Participants must already be in normalized (lo, hi) order.
func seedConversation(t *testing.T, testDB *sql.DB, userLo, userHi string) string {
	t.Helper()

	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := testDB.Exec(
		"INSERT INTO conversations (id, user_lo, user_hi, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		id, userLo, userHi, now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed conversation: %v", err)
	}
	return id
}

// seedMessage inserts a message with the given sender and status, spacing
// creation timestamps so chronological order matches insertion order.
func seedMessage(t *testing.T, testDB *sql.DB, conversationID, senderID, body, status string, at time.Time) string {
	t.Helper()

	id := uuid.NewString()
	_, err := testDB.Exec(
		"INSERT INTO messages (id, conversation_id, sender_id, body, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, conversationID, senderID, body, status, at, at,
	)
	if err != nil {
		t.Fatalf("failed to seed message: %v", err)
	}
	return id
}

// newMessageRecord builds a MessageRecord ready for Create.
func newMessageRecord(conversationID, senderID, body string, at time.Time) *secondary.MessageRecord {
	return &secondary.MessageRecord{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
		Status:         "sent",
		CreatedAt:      at,
		UpdatedAt:      at,
	}
}
