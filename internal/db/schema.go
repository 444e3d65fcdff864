package db

// SchemaSQL is the complete schema for fresh courier installs. It reflects
// the current state after all migrations.
//
// This is the single source of truth for the database schema. Tests load it
// through GetSchemaSQL() instead of hardcoding CREATE TABLE statements, so
// any drift between repository code and schema fails immediately with
// "no such column" during tests.
//
// When adding new columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Conversations (one per unordered participant pair)
--
-- The pair is stored normalized: user_lo < user_hi lexicographically. The
-- UNIQUE constraint over the normalized pair is what makes concurrent
-- find-or-create race-safe: both racing inserts target the same key and
-- exactly one row survives.
CREATE TABLE IF NOT EXISTS conversations (
	id TEXT PRIMARY KEY,
	user_lo TEXT NOT NULL,
	user_hi TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	CHECK(user_lo < user_hi),
	UNIQUE(user_lo, user_hi)
);

-- Messages (append-only conversation log)
--
-- Content is immutable after creation; only status and updated_at change.
-- There is no stored is_read flag: "read" is derived from status.
CREATE TABLE IF NOT EXISTS messages (
	id TEXT PRIMARY KEY,
	conversation_id TEXT NOT NULL,
	sender_id TEXT NOT NULL,
	body TEXT,
	attachment_url TEXT,
	status TEXT NOT NULL CHECK(status IN ('sent', 'delivered', 'read', 'failed')) DEFAULT 'sent',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	FOREIGN KEY (conversation_id) REFERENCES conversations(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_conversations_user_lo ON conversations(user_lo, updated_at DESC);
CREATE INDEX IF NOT EXISTS idx_conversations_user_hi ON conversations(user_hi, updated_at DESC);
CREATE INDEX IF NOT EXISTS idx_messages_conversation_created ON messages(conversation_id, created_at, id);
CREATE INDEX IF NOT EXISTS idx_messages_conversation_status ON messages(conversation_id, status, sender_id);
`

// InitSchema creates the schema on fresh installs and runs any pending
// migrations on existing databases.
func InitSchema() error {
	database, err := GetDB()
	if err != nil {
		return err
	}

	if _, err := database.Exec(SchemaSQL); err != nil {
		return err
	}

	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
