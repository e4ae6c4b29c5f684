// Command havarot syllabifies fully pointed Hebrew text.
// It provides commands for one-shot analysis, batch corpus runs, store
// queries, and a live analysis server.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/havarot/core/errors"
	"github.com/FocuswithJustin/havarot/core/havarot"
	"github.com/FocuswithJustin/havarot/core/sqlite"
	"github.com/FocuswithJustin/havarot/internal/config"
	"github.com/FocuswithJustin/havarot/internal/corpus"
	"github.com/FocuswithJustin/havarot/internal/logging"
	"github.com/FocuswithJustin/havarot/internal/store"
	"github.com/FocuswithJustin/havarot/internal/validation"
	"github.com/FocuswithJustin/havarot/internal/web"
)

const version = "0.1.0"

// defaultConfigPath is consulted when --config is not given.
const defaultConfigPath = "havarot.yaml"

// CLI defines the command-line interface for havarot.
var CLI struct {
	// Global flags
	Config   string `help:"Path to YAML configuration file" type:"path"`
	LogLevel string `name:"log-level" help:"Log level" default:"info" enum:"debug,info,warn,error"`
	LogText  bool   `name:"log-text" help:"Log in human-readable text instead of JSON"`

	Syllabify SyllabifyCmd `cmd:"" help:"Syllabify Hebrew text and print the analysis"`
	Analyze   AnalyzeCmd   `cmd:"" help:"Batch-analyze corpus files into a SQLite store"`
	Lookup    LookupCmd    `cmd:"" help:"Fetch stored analyses by scripture reference"`
	Runs      RunsCmd      `cmd:"" help:"List analysis runs in a store"`
	Stats     StatsCmd     `cmd:"" help:"Summarize words, syllables, and vowels in a store"`
	Serve     ServeCmd     `cmd:"" help:"Start the live analysis server"`
	Version   VersionCmd   `cmd:"" help:"Print version information"`
}

// loadConfig reads the file named by --config, falling back to
// havarot.yaml in the working directory, then to built-in defaults.
func loadConfig() (*config.Config, error) {
	if CLI.Config != "" {
		return config.LoadFromFile(CLI.Config)
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return config.LoadFromFile(defaultConfigPath)
	}
	return config.DefaultConfig(), nil
}

// resolveStore picks the store path from the flag or config and validates it.
func resolveStore(flag string, cfg *config.Config) (string, error) {
	path := flag
	if path == "" {
		path = cfg.Corpus.Store
	}
	if err := validation.ValidatePath(path); err != nil {
		return "", fmt.Errorf("invalid store path: %w", err)
	}
	return path, nil
}

// SyllabifyCmd analyzes a single text and prints it.
type SyllabifyCmd struct {
	Input  string `arg:"" optional:"" help:"Hebrew text, or a file path with --file; stdin when omitted"`
	File   bool   `help:"Treat the input argument as a file path"`
	JSON   bool   `help:"Emit the full analysis document as JSON"`
	Schema string `help:"Schema preset (tiberian or traditional)"`
}

func (c *SyllabifyCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	input := c.Input
	switch {
	case c.File:
		if err := validation.ValidatePath(c.Input); err != nil {
			return fmt.Errorf("invalid input path: %w", err)
		}
		data, err := os.ReadFile(c.Input)
		if err != nil {
			return errors.NewIO("read", c.Input, err)
		}
		input = string(data)
	case input == "":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return errors.NewIO("read", "stdin", err)
		}
		input = string(data)
	}

	opts := cfg.EngineOptions()
	if c.Schema != "" {
		opts.Schema = c.Schema
	}

	text, err := havarot.NewText(input, opts)
	if err != nil {
		return err
	}

	if c.JSON {
		out, err := json.MarshalIndent(text, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	printAnalysis(text)
	return nil
}

// printAnalysis writes a word-per-block table of the analysis.
func printAnalysis(text *havarot.Text) {
	for _, w := range text.Words() {
		label := w.Text()
		switch {
		case w.IsDivineName():
			label += "  (divine name)"
		case w.IsNotHebrew():
			label += "  (not Hebrew)"
		}
		fmt.Println(label)
		for i, s := range w.Syllables() {
			fmt.Printf("  %d. %s\t%s\t%s\n", i+1, s.Text(), vowelLabel(s), syllableFlags(s))
		}
	}
}

func vowelLabel(s *havarot.Syllable) string {
	if name := s.VowelName(); name != "" {
		return name
	}
	return "-"
}

func syllableFlags(s *havarot.Syllable) string {
	flags := []string{"open"}
	if s.IsClosed() {
		flags[0] = "closed"
	}
	if s.IsAccented() {
		flags = append(flags, "accented")
	}
	if s.IsFinal() {
		flags = append(flags, "final")
	}
	return strings.Join(flags, " ")
}

// AnalyzeCmd batch-analyzes corpus files into a store.
type AnalyzeCmd struct {
	Globs  []string `arg:"" optional:"" help:"Corpus files or doublestar patterns; config globs when omitted"`
	Store  string   `help:"SQLite store path (default from config)" type:"path"`
	Schema string   `help:"Schema preset (tiberian or traditional)"`
}

func (c *AnalyzeCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	globs := c.Globs
	if len(globs) == 0 {
		globs = cfg.Corpus.Globs
	}
	if len(globs) == 0 {
		return errors.NewValidation("globs", "no corpus patterns given or configured")
	}

	storePath, err := resolveStore(c.Store, cfg)
	if err != nil {
		return err
	}

	opts := cfg.EngineOptions()
	preset := cfg.Analysis.Schema
	if c.Schema != "" {
		opts.Schema = c.Schema
		preset = c.Schema
	}

	st, err := store.Open(storePath)
	if err != nil {
		return err
	}
	defer st.Close()

	docs, err := corpus.Load(globs)
	if err != nil {
		return err
	}

	var totalWords, totalSyllables int
	for _, doc := range docs {
		logging.CorpusLoaded(doc.Path, doc.Format, len(doc.Units))
		started := time.Now()

		run, err := st.BeginRun(doc.Path, preset, doc.Hash)
		if err != nil {
			return err
		}

		var words, syllables, skipped int
		for _, unit := range doc.Units {
			text, err := havarot.NewText(unit.Text, opts)
			if err != nil {
				logging.AnalysisError(doc.Path, "syllabify", err, "ref", unit.Ref)
				skipped++
				continue
			}
			words += len(text.Words())
			syllables += len(text.Syllables())
			if _, err := st.InsertWords(run.ID, unit.Ref, text.Words()); err != nil {
				return err
			}
		}

		if err := st.FinishRun(run.ID, words, syllables); err != nil {
			return err
		}
		logging.AnalysisEvent(doc.Path, words, syllables, time.Since(started))

		fmt.Printf("%s: %d units, %d words, %d syllables", doc.Path, len(doc.Units), words, syllables)
		if skipped > 0 {
			fmt.Printf(" (%d units skipped)", skipped)
		}
		fmt.Println()

		totalWords += words
		totalSyllables += syllables
	}

	fmt.Printf("stored %d runs in %s (%d words, %d syllables)\n",
		len(docs), storePath, totalWords, totalSyllables)
	return nil
}

// LookupCmd fetches stored analyses by reference.
type LookupCmd struct {
	Ref   string `arg:"" help:"Reference key (Gen.1.1, Gen.1.1-Gen.1.3, or line:2)"`
	Store string `help:"SQLite store path (default from config)" type:"path"`
	JSON  bool   `help:"Emit matching words as JSON"`
}

func (c *LookupCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	storePath, err := resolveStore(c.Store, cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(storePath)
	if err != nil {
		return err
	}
	defer st.Close()

	rows, err := st.LookupRef(c.Ref)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.NewNotFound("reference", c.Ref)
	}

	if c.JSON {
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	for _, row := range rows {
		parts := make([]string, len(row.Syllables))
		for i, syl := range row.Syllables {
			parts[i] = syl.Text
		}
		fmt.Printf("%s\t%s\t%s\n", row.Ref, row.Text, strings.Join(parts, "·"))
	}
	return nil
}

// RunsCmd lists analysis runs.
type RunsCmd struct {
	Store string `help:"SQLite store path (default from config)" type:"path"`
}

func (c *RunsCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	storePath, err := resolveStore(c.Store, cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(storePath)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, run := range runs {
		state := "running"
		if !run.FinishedAt.IsZero() {
			state = run.FinishedAt.Format(time.RFC3339)
		}
		preset := run.Preset
		if preset == "" {
			preset = "-"
		}
		fmt.Printf("%s  %s  preset=%s  words=%d  syllables=%d  finished=%s\n",
			run.ID[:8], run.Source, preset, run.Words, run.Syllables, state)
	}
	return nil
}

// StatsCmd summarizes a store.
type StatsCmd struct {
	Store string `help:"SQLite store path (default from config)" type:"path"`
}

func (c *StatsCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	storePath, err := resolveStore(c.Store, cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(storePath)
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("runs:      %d\n", stats.Runs)
	fmt.Printf("refs:      %d\n", stats.Refs)
	fmt.Printf("words:     %d\n", stats.Words)
	fmt.Printf("syllables: %d\n", stats.Syllables)

	if len(stats.Vowels) > 0 {
		names := make([]string, 0, len(stats.Vowels))
		for name := range stats.Vowels {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if stats.Vowels[names[i]] != stats.Vowels[names[j]] {
				return stats.Vowels[names[i]] > stats.Vowels[names[j]]
			}
			return names[i] < names[j]
		})
		fmt.Println("vowels:")
		for _, name := range names {
			fmt.Printf("  %-12s %d\n", name, stats.Vowels[name])
		}
	}
	return nil
}

// ServeCmd starts the live analysis server.
type ServeCmd struct {
	Port     int           `help:"HTTP server port (overrides config)"`
	Store    string        `help:"SQLite store path for run history" type:"path"`
	Watch    []string      `help:"Corpus patterns to re-analyze and broadcast on change"`
	Debounce time.Duration `help:"Delay before re-analyzing changed files" default:"500ms"`
	Schema   string        `help:"Schema preset (tiberian or traditional)"`
}

func (c *ServeCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	port := c.Port
	if port == 0 {
		port = cfg.Server.Port
	}
	// An empty store path runs the server without run history.
	storePath := c.Store
	if storePath == "" {
		storePath = cfg.Corpus.Store
	}
	if storePath != "" {
		if err := validation.ValidatePath(storePath); err != nil {
			return fmt.Errorf("invalid store path: %w", err)
		}
	}
	watch := c.Watch
	if len(watch) == 0 {
		watch = cfg.Server.Watch
	}

	opts := cfg.EngineOptions()
	preset := cfg.Analysis.Schema
	if c.Schema != "" {
		opts.Schema = c.Schema
		preset = c.Schema
	}

	return web.Start(web.Config{
		Port:           port,
		StorePath:      storePath,
		Watch:          watch,
		AllowedOrigins: cfg.Server.Origins,
		Options:        opts,
		Preset:         preset,
		Debounce:       c.Debounce,
	})
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("havarot version %s (sqlite driver: %s)\n", version, sqlite.DriverName())
	return nil
}

// initLogging applies the global logging flags.
func initLogging() {
	level := logging.LevelInfo
	switch CLI.LogLevel {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}
	format := logging.FormatJSON
	if CLI.LogText {
		format = logging.FormatText
	}
	logging.InitLogger(level, format)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("havarot"),
		kong.Description("Hebrew syllabification engine and corpus analyzer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	initLogging()
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
