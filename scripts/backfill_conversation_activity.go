// +build ignore

package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Conversation activity backfill.
//
// Databases imported from older dumps can carry conversations whose
// updated_at predates their newest message. This resets updated_at to
// the latest message's created_at so list ordering is correct again.

type staleConversation struct {
	ID          string
	UpdatedAt   string
	LastMessage string
}

func main() {
	dryRun := flag.Bool("dry-run", false, "Preview backfill without executing")
	flag.Parse()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting home dir: %v\n", err)
		os.Exit(1)
	}
	dbPath := filepath.Join(homeDir, ".courier", "courier.db")

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	stale, err := findStaleConversations(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding conversations: %v\n", err)
		os.Exit(1)
	}

	if len(stale) == 0 {
		fmt.Println("No conversations need backfill")
		return
	}

	fmt.Printf("Found %d conversation(s) to backfill:\n\n", len(stale))
	for _, c := range stale {
		fmt.Printf("  %s: updated_at %s -> %s\n", c.ID, c.UpdatedAt, c.LastMessage)
	}
	fmt.Println()

	if *dryRun {
		fmt.Println("=== DRY RUN - No changes made ===")
		return
	}

	fmt.Println("=== Executing backfill ===")
	fmt.Println()

	fixed := 0
	for _, c := range stale {
		_, err := db.Exec("UPDATE conversations SET updated_at = ? WHERE id = ?", c.LastMessage, c.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error updating %s: %v\n", c.ID, err)
			continue
		}
		fmt.Printf("✓ Backfilled %s\n", c.ID)
		fixed++
	}

	fmt.Printf("\n=== Backfill complete: %d/%d conversations updated ===\n", fixed, len(stale))
}

func findStaleConversations(db *sql.DB) ([]staleConversation, error) {
	query := `
		SELECT c.id, c.updated_at, MAX(m.created_at) AS last_message
		FROM conversations c
		JOIN messages m ON m.conversation_id = c.id
		GROUP BY c.id
		HAVING c.updated_at < last_message
		ORDER BY c.id
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stale []staleConversation
	for rows.Next() {
		var c staleConversation
		if err := rows.Scan(&c.ID, &c.UpdatedAt, &c.LastMessage); err != nil {
			return nil, err
		}
		stale = append(stale, c)
	}

	return stale, rows.Err()
}
