package sqlite

import (
	"path/filepath"
	"testing"
)

func TestDriverName(t *testing.T) {
	switch DriverName() {
	case "sqlite":
		if IsCGO() {
			t.Error("IsCGO() should be false for the purego driver")
		}
	case "sqlite3":
		if !IsCGO() {
			t.Error("IsCGO() should be true for the cgo driver")
		}
	default:
		t.Errorf("unknown driver name: %s", DriverName())
	}
}

func TestOpenRoundTrip(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE words (id INTEGER PRIMARY KEY, text TEXT)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO words (text) VALUES (?)`, "מֶלֶךְ"); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	var text string
	if err := db.QueryRow(`SELECT text FROM words WHERE id = 1`).Scan(&text); err != nil {
		t.Fatalf("failed to query: %v", err)
	}
	if text != "מֶלֶךְ" {
		t.Errorf("expected Hebrew text back, got '%s'", text)
	}
}

// TestOpenEnforcesForeignKeys verifies the DSN pragmas reach the
// connection. SQLite parses FOREIGN KEY clauses but ignores them
// unless the pragma is on.
func TestOpenEnforcesForeignKeys(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`
		CREATE TABLE words (id INTEGER PRIMARY KEY, text TEXT);
		CREATE TABLE syllables (
			word_id INTEGER NOT NULL,
			text TEXT,
			FOREIGN KEY (word_id) REFERENCES words(id)
		);
	`); err != nil {
		t.Fatalf("failed to create tables: %v", err)
	}

	if _, err := db.Exec(`INSERT INTO syllables (word_id, text) VALUES (99, ?)`, "מֶ"); err == nil {
		t.Error("expected an orphan syllable row to violate the foreign key")
	}
}

func TestOpenUsesWAL(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var mode string
	if err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode); err != nil {
		t.Fatalf("failed to read journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}
