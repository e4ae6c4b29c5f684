package store

import (
	"path/filepath"
	"testing"

	"github.com/FocuswithJustin/havarot/core/errors"
	"github.com/FocuswithJustin/havarot/core/havarot"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func analyzeWords(t *testing.T, input string) []*havarot.Word {
	t.Helper()
	text, err := havarot.NewText(input, nil)
	if err != nil {
		t.Fatalf("NewText(%q) failed: %v", input, err)
	}
	return text.Words()
}

// TestOpenCreatesSchema verifies the schema applies and is idempotent.
func TestOpenCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Runs != 0 || stats.Words != 0 || stats.Syllables != 0 {
		t.Errorf("Fresh store should be empty: %+v", stats)
	}
	s.Close()

	// Reopening must not fail on existing tables.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	s2.Close()
}

// TestBeginRun verifies run creation and listing.
func TestBeginRun(t *testing.T) {
	s := openTestStore(t)

	run, err := s.BeginRun("wlc.txt", "tiberian", "deadbeef")
	if err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	if len(run.ID) != 36 {
		t.Errorf("Run ID should be a UUID, got %q", run.ID)
	}
	if run.StartedAt.IsZero() {
		t.Error("StartedAt should be set")
	}

	runs, err := s.Runs()
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.ID != run.ID || got.Source != "wlc.txt" || got.Preset != "tiberian" || got.SourceHash != "deadbeef" {
		t.Errorf("Stored run = %+v", got)
	}
	if !got.FinishedAt.IsZero() {
		t.Error("Unfinished run should have zero FinishedAt")
	}
}

// TestInsertWordsAndLookup verifies the full word/syllable round trip.
func TestInsertWordsAndLookup(t *testing.T) {
	s := openTestStore(t)
	run, err := s.BeginRun("sample.txt", "", "abc123")
	if err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}

	count, err := s.InsertWords(run.ID, "line:1", analyzeWords(t, "מֶלֶךְ"))
	if err != nil {
		t.Fatalf("InsertWords failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Syllable count = %d, want 2", count)
	}

	words, err := s.LookupRef("line:1")
	if err != nil {
		t.Fatalf("LookupRef failed: %v", err)
	}
	if len(words) != 1 {
		t.Fatalf("Expected 1 word, got %d", len(words))
	}

	w := words[0]
	if w.Text != "מֶלֶךְ" || w.RunID != run.ID || w.Seq != 0 {
		t.Errorf("Word = %+v", w)
	}
	if len(w.Syllables) != 2 {
		t.Fatalf("Expected 2 syllables, got %d", len(w.Syllables))
	}

	first := w.Syllables[0]
	if first.Text != "מֶ" || first.Closed || first.Final {
		t.Errorf("First syllable = %+v", first)
	}
	if first.Structure == nil || first.Structure.Onset != "מ" || first.Structure.Coda != "" {
		t.Errorf("First structure = %+v", first.Structure)
	}
	if first.VowelName != "SEGOL" {
		t.Errorf("VowelName = %q, want SEGOL", first.VowelName)
	}

	last := w.Syllables[1]
	if !last.Closed || !last.Final {
		t.Errorf("Last syllable flags = %+v", last)
	}
	if last.Structure == nil || last.Structure.Coda != "ך" {
		t.Errorf("Last structure = %+v", last.Structure)
	}
}

// TestLookupContainment verifies OSIS reference containment queries.
func TestLookupContainment(t *testing.T) {
	s := openTestStore(t)
	run, err := s.BeginRun("wlc.xml", "", "abc")
	if err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}

	words := analyzeWords(t, "מֶלֶךְ")
	for _, ref := range []string{"Gen.1.1", "Gen.1.2", "Gen.2.1", "Exod.1.1"} {
		if _, err := s.InsertWords(run.ID, ref, words); err != nil {
			t.Fatalf("InsertWords(%s) failed: %v", ref, err)
		}
	}

	tests := []struct {
		ref  string
		want int
	}{
		{"Gen.1.1", 1},
		{"Gen.1", 2},
		{"Gen", 3},
		{"Gen.1.1-2", 2},
		{"Gen.3", 0},
		{"Exod.1.1", 1},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := s.LookupRef(tt.ref)
			if err != nil {
				t.Fatalf("LookupRef(%s) failed: %v", tt.ref, err)
			}
			if len(got) != tt.want {
				t.Errorf("LookupRef(%s) = %d words, want %d", tt.ref, len(got), tt.want)
			}
		})
	}
}

// TestLookupDivineName verifies null structures survive the round trip.
func TestLookupDivineName(t *testing.T) {
	s := openTestStore(t)
	run, err := s.BeginRun("sample.txt", "", "abc")
	if err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	if _, err := s.InsertWords(run.ID, "Gen.2.4", analyzeWords(t, "יְהוָה")); err != nil {
		t.Fatalf("InsertWords failed: %v", err)
	}

	words, err := s.LookupRef("Gen.2.4")
	if err != nil {
		t.Fatalf("LookupRef failed: %v", err)
	}
	if len(words) != 1 {
		t.Fatalf("Expected 1 word, got %d", len(words))
	}
	if !words[0].DivineName {
		t.Error("Word should be flagged as the Divine Name")
	}

	sawNull := false
	for _, syl := range words[0].Syllables {
		if syl.Structure == nil {
			sawNull = true
		}
	}
	if !sawNull {
		t.Error("Divine Name should have a null-structure syllable")
	}
}

// TestLookupEmptyRef verifies the validation error.
func TestLookupEmptyRef(t *testing.T) {
	s := openTestStore(t)

	_, err := s.LookupRef("  ")
	if err == nil {
		t.Fatal("Expected error for empty ref")
	}
	var ve *errors.ValidationError
	if !errors.As(err, &ve) || ve.Field != "ref" {
		t.Errorf("Expected ref ValidationError, got %v", err)
	}
}

// TestFinishRun verifies totals and the not-found case.
func TestFinishRun(t *testing.T) {
	s := openTestStore(t)
	run, err := s.BeginRun("sample.txt", "", "abc")
	if err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}

	if err := s.FinishRun(run.ID, 12, 29); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	runs, err := s.Runs()
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	got := runs[0]
	if got.Words != 12 || got.Syllables != 29 {
		t.Errorf("Totals = %d/%d, want 12/29", got.Words, got.Syllables)
	}
	if got.FinishedAt.IsZero() {
		t.Error("FinishedAt should be set")
	}

	err = s.FinishRun("no-such-run", 0, 0)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

// TestRunsOrder verifies most-recent-first listing.
func TestRunsOrder(t *testing.T) {
	s := openTestStore(t)

	first, err := s.BeginRun("a.txt", "", "h1")
	if err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	second, err := s.BeginRun("b.txt", "", "h2")
	if err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}

	runs, err := s.Runs()
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second.ID || runs[1].ID != first.ID {
		t.Errorf("Runs out of order: %s, %s", runs[0].Source, runs[1].Source)
	}
}

// TestStats verifies aggregate counts.
func TestStats(t *testing.T) {
	s := openTestStore(t)
	run, err := s.BeginRun("sample.txt", "", "abc")
	if err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}

	if _, err := s.InsertWords(run.ID, "line:1", analyzeWords(t, "מֶלֶךְ מַדּוּעַ")); err != nil {
		t.Fatalf("InsertWords failed: %v", err)
	}
	if _, err := s.InsertWords(run.ID, "line:2", analyzeWords(t, "מֶלֶךְ")); err != nil {
		t.Fatalf("InsertWords failed: %v", err)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if stats.Runs != 1 {
		t.Errorf("Runs = %d, want 1", stats.Runs)
	}
	if stats.Words != 3 {
		t.Errorf("Words = %d, want 3", stats.Words)
	}
	// מֶלֶךְ has 2 syllables, מַדּוּעַ has 3.
	if stats.Syllables != 7 {
		t.Errorf("Syllables = %d, want 7", stats.Syllables)
	}
	if stats.Refs != 2 {
		t.Errorf("Refs = %d, want 2", stats.Refs)
	}
	if stats.Vowels["SEGOL"] != 4 {
		t.Errorf("SEGOL count = %d, want 4", stats.Vowels["SEGOL"])
	}
}
