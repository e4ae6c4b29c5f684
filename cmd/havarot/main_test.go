package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/FocuswithJustin/havarot/core/errors"
	"github.com/FocuswithJustin/havarot/internal/store"
	"github.com/FocuswithJustin/havarot/internal/validation"
)

func createTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

// useConfig points the global --config flag at a file for one test.
func useConfig(t *testing.T, path string) {
	t.Helper()
	prev := CLI.Config
	CLI.Config = path
	t.Cleanup(func() { CLI.Config = prev })
}

func TestSyllabifyCmd_Run(t *testing.T) {
	cmd := &SyllabifyCmd{Input: "מֶלֶךְ דָּבָר"}
	if err := cmd.Run(); err != nil {
		t.Errorf("SyllabifyCmd.Run() error = %v", err)
	}
}

func TestSyllabifyCmd_RunJSON(t *testing.T) {
	cmd := &SyllabifyCmd{Input: "מַדּוּעַ", JSON: true}
	if err := cmd.Run(); err != nil {
		t.Errorf("SyllabifyCmd.Run() error = %v", err)
	}
}

func TestSyllabifyCmd_RunFile(t *testing.T) {
	tempDir := t.TempDir()
	path := createTestFile(t, tempDir, "verse.txt", "בְּרֵאשִׁית בָּרָא\n")

	cmd := &SyllabifyCmd{Input: path, File: true}
	if err := cmd.Run(); err != nil {
		t.Errorf("SyllabifyCmd.Run() error = %v", err)
	}
}

func TestSyllabifyCmd_RunFileMissing(t *testing.T) {
	cmd := &SyllabifyCmd{
		Input: filepath.Join(t.TempDir(), "nonexistent.txt"),
		File:  true,
	}
	if err := cmd.Run(); err == nil {
		t.Error("expected error for nonexistent input file, got nil")
	}
}

func TestSyllabifyCmd_RunInvalidPath(t *testing.T) {
	cmd := &SyllabifyCmd{Input: "verse\x00.txt", File: true}
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected error for path with null byte, got nil")
	}
	if !errors.Is(err, validation.ErrInvalidCharacter) {
		t.Errorf("expected ErrInvalidCharacter, got %v", err)
	}
}

func TestSyllabifyCmd_RunNoVowels(t *testing.T) {
	cmd := &SyllabifyCmd{Input: "מלך"}
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected error for unpointed text, got nil")
	}
	if !errors.Is(err, errors.ErrNoVowels) {
		t.Errorf("expected ErrNoVowels, got %v", err)
	}
}

func TestSyllabifyCmd_RunUnknownSchema(t *testing.T) {
	cmd := &SyllabifyCmd{Input: "מֶלֶךְ", Schema: "klingon"}
	err := cmd.Run()
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAnalyzeCmd_Run(t *testing.T) {
	tempDir := t.TempDir()
	createTestFile(t, tempDir, "kings.txt", "מֶלֶךְ\nדָּבָר סֵפֶר\n")
	storePath := filepath.Join(tempDir, "analysis.db")

	cmd := &AnalyzeCmd{
		Globs: []string{filepath.Join(tempDir, "*.txt")},
		Store: storePath,
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("AnalyzeCmd.Run() error = %v", err)
	}

	st, err := store.Open(storePath)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer st.Close()

	runs, err := st.Runs()
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Words != 3 || runs[0].Syllables != 6 {
		t.Errorf("run = %+v, want 3 words and 6 syllables", runs[0])
	}
	if runs[0].FinishedAt.IsZero() {
		t.Error("run should be finished")
	}
}

func TestAnalyzeCmd_RunNoGlobs(t *testing.T) {
	cmd := &AnalyzeCmd{Store: filepath.Join(t.TempDir(), "empty.db")}
	err := cmd.Run()
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing globs, got %v", err)
	}
}

func TestAnalyzeCmd_RunMissingCorpus(t *testing.T) {
	tempDir := t.TempDir()
	cmd := &AnalyzeCmd{
		Globs: []string{filepath.Join(tempDir, "absent.txt")},
		Store: filepath.Join(tempDir, "analysis.db"),
	}
	if err := cmd.Run(); err == nil {
		t.Error("expected error for missing corpus file, got nil")
	}
}

func TestAnalyzeCmd_RunFromConfig(t *testing.T) {
	tempDir := t.TempDir()
	createTestFile(t, tempDir, "gen.txt", "בְּרֵאשִׁית בָּרָא\n")
	storePath := filepath.Join(tempDir, "config.db")

	configPath := createTestFile(t, tempDir, "havarot.yaml",
		"analysis:\n"+
			"  schema: tiberian\n"+
			"corpus:\n"+
			"  globs:\n"+
			"    - \""+filepath.Join(tempDir, "*.txt")+"\"\n"+
			"  store: "+storePath+"\n")
	useConfig(t, configPath)

	cmd := &AnalyzeCmd{}
	if err := cmd.Run(); err != nil {
		t.Fatalf("AnalyzeCmd.Run() error = %v", err)
	}

	st, err := store.Open(storePath)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer st.Close()

	runs, err := st.Runs()
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Preset != "tiberian" {
		t.Errorf("preset = %q, want tiberian", runs[0].Preset)
	}
}

func TestLookupCmd_Run(t *testing.T) {
	tempDir := t.TempDir()
	createTestFile(t, tempDir, "kings.txt", "מֶלֶךְ\n")
	storePath := filepath.Join(tempDir, "analysis.db")

	analyze := &AnalyzeCmd{
		Globs: []string{filepath.Join(tempDir, "kings.txt")},
		Store: storePath,
	}
	if err := analyze.Run(); err != nil {
		t.Fatalf("AnalyzeCmd.Run() error = %v", err)
	}

	cmd := &LookupCmd{Ref: "line:1", Store: storePath}
	if err := cmd.Run(); err != nil {
		t.Errorf("LookupCmd.Run() error = %v", err)
	}

	jsonCmd := &LookupCmd{Ref: "line:1", Store: storePath, JSON: true}
	if err := jsonCmd.Run(); err != nil {
		t.Errorf("LookupCmd.Run() with JSON error = %v", err)
	}
}

func TestLookupCmd_RunNotFound(t *testing.T) {
	tempDir := t.TempDir()
	createTestFile(t, tempDir, "kings.txt", "מֶלֶךְ\n")
	storePath := filepath.Join(tempDir, "analysis.db")

	analyze := &AnalyzeCmd{
		Globs: []string{filepath.Join(tempDir, "kings.txt")},
		Store: storePath,
	}
	if err := analyze.Run(); err != nil {
		t.Fatalf("AnalyzeCmd.Run() error = %v", err)
	}

	cmd := &LookupCmd{Ref: "Gen.1.1", Store: storePath}
	err := cmd.Run()
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRunsCmd_RunEmpty(t *testing.T) {
	cmd := &RunsCmd{Store: filepath.Join(t.TempDir(), "empty.db")}
	if err := cmd.Run(); err != nil {
		t.Errorf("RunsCmd.Run() error = %v", err)
	}
}

func TestStatsCmd_Run(t *testing.T) {
	tempDir := t.TempDir()
	createTestFile(t, tempDir, "kings.txt", "מֶלֶךְ\n")
	storePath := filepath.Join(tempDir, "analysis.db")

	analyze := &AnalyzeCmd{
		Globs: []string{filepath.Join(tempDir, "kings.txt")},
		Store: storePath,
	}
	if err := analyze.Run(); err != nil {
		t.Fatalf("AnalyzeCmd.Run() error = %v", err)
	}

	cmd := &StatsCmd{Store: storePath}
	if err := cmd.Run(); err != nil {
		t.Errorf("StatsCmd.Run() error = %v", err)
	}
}

func TestVersionCmd_Run(t *testing.T) {
	cmd := &VersionCmd{}
	if err := cmd.Run(); err != nil {
		t.Errorf("VersionCmd.Run() error = %v", err)
	}
}
