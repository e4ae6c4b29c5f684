// Package store persists syllabification runs to SQLite. A run is one
// analysis pass over a single corpus file; its words and syllables are
// written inside per-unit transactions and queried back by reference.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/havarot/core/errors"
	"github.com/FocuswithJustin/havarot/core/havarot"
	"github.com/FocuswithJustin/havarot/core/sqlite"
	"github.com/FocuswithJustin/havarot/internal/corpus"
)

const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		source_hash TEXT NOT NULL,
		preset TEXT NOT NULL DEFAULT '',
		started_at TEXT NOT NULL,
		finished_at TEXT,
		words INTEGER NOT NULL DEFAULT 0,
		syllables INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS words (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		ref TEXT NOT NULL,
		seq INTEGER NOT NULL,
		text TEXT NOT NULL,
		trailer TEXT NOT NULL DEFAULT '',
		divine_name INTEGER NOT NULL DEFAULT 0,
		not_hebrew INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);
	CREATE TABLE IF NOT EXISTS syllables (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		word_id INTEGER NOT NULL,
		seq INTEGER NOT NULL,
		text TEXT NOT NULL,
		onset TEXT,
		nucleus TEXT,
		coda TEXT,
		vowel_name TEXT NOT NULL DEFAULT '',
		closed INTEGER NOT NULL DEFAULT 0,
		accented INTEGER NOT NULL DEFAULT 0,
		final INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (word_id) REFERENCES words(id)
	);
	CREATE INDEX IF NOT EXISTS idx_words_ref ON words(run_id, ref);
	CREATE INDEX IF NOT EXISTS idx_syllables_word ON syllables(word_id);
`

// Store persists analysis runs, words, and syllables.
type Store struct {
	db *sql.DB
}

// Run is one analysis pass over a single corpus source.
type Run struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	SourceHash string    `json:"source_hash"`
	Preset     string    `json:"preset,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Words      int       `json:"words"`
	Syllables  int       `json:"syllables"`
}

// StructureRow mirrors a syllable's onset/nucleus/coda split. It is nil
// for structurally contradictory syllables (the Divine Name).
type StructureRow struct {
	Onset   string `json:"onset"`
	Nucleus string `json:"nucleus"`
	Coda    string `json:"coda"`
}

// SyllableRow is one stored syllable.
type SyllableRow struct {
	Seq       int           `json:"seq"`
	Text      string        `json:"text"`
	Structure *StructureRow `json:"structure"`
	VowelName string        `json:"vowelName,omitempty"`
	Closed    bool          `json:"isClosed"`
	Accented  bool          `json:"isAccented"`
	Final     bool          `json:"isFinal"`
}

// WordRow is one stored word with its syllables.
type WordRow struct {
	RunID      string        `json:"runId"`
	Ref        string        `json:"ref"`
	Seq        int           `json:"seq"`
	Text       string        `json:"text"`
	Trailer    string        `json:"trailer,omitempty"`
	DivineName bool          `json:"isDivineName"`
	NotHebrew  bool          `json:"isNotHebrew"`
	Syllables  []SyllableRow `json:"syllables"`
}

// Stats summarizes everything in the store.
type Stats struct {
	Runs      int            `json:"runs"`
	Words     int            `json:"words"`
	Syllables int            `json:"syllables"`
	Refs      int            `json:"refs"`
	Vowels    map[string]int `json:"vowels,omitempty"`
}

// Open opens the store at path, creating the schema if needed.
func Open(path string) (*Store, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.NewIO("migrate", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginRun records the start of an analysis pass. sourceHash is the
// content hash of the corpus file (corpus.Document.Hash).
func (s *Store) BeginRun(source, preset, sourceHash string) (*Run, error) {
	run := &Run{
		ID:         uuid.New().String(),
		Source:     source,
		SourceHash: sourceHash,
		Preset:     preset,
		StartedAt:  time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, source, source_hash, preset, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.SourceHash, run.Preset, run.StartedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}
	return run, nil
}

// InsertWords stores one analyzed unit's words and syllables in a
// single transaction. It returns the number of syllables written.
func (s *Store) InsertWords(runID, ref string, words []*havarot.Word) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	wordStmt, err := tx.Prepare(
		`INSERT INTO words (run_id, ref, seq, text, trailer, divine_name, not_hebrew)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare word insert: %w", err)
	}
	defer wordStmt.Close()

	sylStmt, err := tx.Prepare(
		`INSERT INTO syllables (word_id, seq, text, onset, nucleus, coda, vowel_name, closed, accented, final)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare syllable insert: %w", err)
	}
	defer sylStmt.Close()

	count := 0
	for i, w := range words {
		res, err := wordStmt.Exec(runID, ref, i, w.Text(), w.Trailer(), w.IsDivineName(), w.IsNotHebrew())
		if err != nil {
			return 0, fmt.Errorf("failed to insert word: %w", err)
		}
		wordID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to read word id: %w", err)
		}

		for j, syl := range w.Syllables() {
			// Contradictory structures store NULLs, mirroring the
			// null structure in the JSON document.
			var onset, nucleus, coda any
			if o, serr := syl.Onset(); serr == nil {
				n, _ := syl.Nucleus()
				c, _ := syl.Coda()
				onset, nucleus, coda = o, n, c
			}

			_, err := sylStmt.Exec(wordID, j, syl.Text(), onset, nucleus, coda,
				syl.VowelName(), syl.IsClosed(), syl.IsAccented(), syl.IsFinal())
			if err != nil {
				return 0, fmt.Errorf("failed to insert syllable: %w", err)
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return count, nil
}

// FinishRun stamps the run finished and records its totals.
func (s *Store) FinishRun(runID string, words, syllables int) error {
	res, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, words = ?, syllables = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), words, syllables, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NewNotFound("run", runID)
	}
	return nil
}

// Runs lists all runs, most recent first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, source, source_hash, preset, started_at, COALESCE(finished_at, ''), words, syllables
		 FROM runs ORDER BY rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &r.Source, &r.SourceHash, &r.Preset, &started, &finished, &r.Words, &r.Syllables); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		if finished != "" {
			r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

const selectWords = `
	SELECT w.id, w.run_id, w.ref, w.seq, w.text, w.trailer, w.divine_name, w.not_hebrew,
	       s.seq, s.text, s.onset, s.nucleus, s.coda, s.vowel_name, s.closed, s.accented, s.final
	FROM words w
	JOIN syllables s ON s.word_id = w.id`

// LookupRef returns stored words for a reference key. Exact keys match
// directly; an OSIS reference naming a book, chapter, or verse range
// also matches every stored verse it contains.
func (s *Store) LookupRef(refKey string) ([]WordRow, error) {
	refKey = strings.TrimSpace(refKey)
	if refKey == "" {
		return nil, errors.NewValidation("ref", "must not be empty")
	}

	parsed, parseErr := corpus.ParseRef(refKey)

	var rows *sql.Rows
	var err error
	if parseErr != nil {
		// Non-OSIS keys ("line:3") match exactly.
		rows, err = s.db.Query(selectWords+` WHERE w.ref = ? ORDER BY w.ref, w.id, s.seq`, refKey)
	} else {
		rows, err = s.db.Query(selectWords+` WHERE w.ref = ? OR w.ref LIKE ? ORDER BY w.ref, w.id, s.seq`,
			refKey, parsed.Book+".%")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var out []WordRow
	var lastID int64 = -1
	for rows.Next() {
		var (
			wordID              int64
			w                   WordRow
			syl                 SyllableRow
			onset, nucleus, cda sql.NullString
		)
		err := rows.Scan(&wordID, &w.RunID, &w.Ref, &w.Seq, &w.Text, &w.Trailer, &w.DivineName, &w.NotHebrew,
			&syl.Seq, &syl.Text, &onset, &nucleus, &cda, &syl.VowelName, &syl.Closed, &syl.Accented, &syl.Final)
		if err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}

		if parseErr == nil && !refContains(parsed, refKey, w.Ref) {
			continue
		}

		if onset.Valid {
			syl.Structure = &StructureRow{Onset: onset.String, Nucleus: nucleus.String, Coda: cda.String}
		}

		if wordID != lastID {
			out = append(out, w)
			lastID = wordID
		}
		last := &out[len(out)-1]
		last.Syllables = append(last.Syllables, syl)
	}
	return out, rows.Err()
}

// refContains reports whether the lookup reference covers a stored key.
func refContains(parsed *corpus.Ref, refKey, stored string) bool {
	if stored == refKey {
		return true
	}
	other, err := corpus.ParseRef(stored)
	if err != nil {
		return false
	}
	return parsed.Contains(other)
}

// Stats summarizes run, word, syllable, and vowel counts.
func (s *Store) Stats() (*Stats, error) {
	st := &Stats{Vowels: make(map[string]int)}

	counts := []struct {
		query string
		dst   *int
	}{
		{`SELECT COUNT(*) FROM runs`, &st.Runs},
		{`SELECT COUNT(*) FROM words`, &st.Words},
		{`SELECT COUNT(*) FROM syllables`, &st.Syllables},
		{`SELECT COUNT(DISTINCT ref) FROM words`, &st.Refs},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}

	rows, err := s.db.Query(
		`SELECT vowel_name, COUNT(*) FROM syllables WHERE vowel_name != '' GROUP BY vowel_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to count vowels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("failed to scan vowel count: %w", err)
		}
		st.Vowels[name] = n
	}
	return st, rows.Err()
}
