// Package config loads analysis configuration from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/havarot/core/errors"
	"github.com/FocuswithJustin/havarot/core/havarot"
)

// Config is the full configuration document. Zero values defer to the
// engine and server defaults, so an empty file is valid.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Server   ServerConfig   `yaml:"server"`
}

// AnalysisConfig selects syllabification options. The heuristic fields
// are pointers so a file can distinguish unset from off.
type AnalysisConfig struct {
	// Schema is a preset name: "tiberian", "traditional", or empty to
	// use the individual fields.
	Schema string `yaml:"schema"`
	// Sqnmlvy, LongVowels, WawShureq, and QametsQatan override the
	// engine defaults when set.
	Sqnmlvy     *bool `yaml:"sqnmlvy"`
	LongVowels  *bool `yaml:"longVowels"`
	WawShureq   *bool `yaml:"wawShureq"`
	QametsQatan *bool `yaml:"qametsQatan"`
	// HolemHaser is empty to preserve holam haser for vav, or
	// "remove" to rewrite it to a plain holam.
	HolemHaser string `yaml:"holemHaser"`
	// AllowNoNiqqud admits text without vowel points.
	AllowNoNiqqud bool `yaml:"allowNoNiqqud"`
}

// CorpusConfig points at the texts to analyze.
type CorpusConfig struct {
	// Globs are doublestar patterns resolved against the working
	// directory.
	Globs []string `yaml:"globs"`
	// Store is the SQLite database path for analysis results.
	Store string `yaml:"store"`
}

// ServerConfig configures the live analysis server.
type ServerConfig struct {
	// Port is the listen port.
	Port int `yaml:"port"`
	// Watch lists corpus patterns re-analyzed and broadcast on change.
	Watch []string `yaml:"watch"`
	// Origins restricts CORS to the listed origins, empty allows all.
	Origins []string `yaml:"origins"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Store: "havarot.db",
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}

// Validate checks the configuration for unknown option values.
func (c *Config) Validate() error {
	switch c.Analysis.Schema {
	case "", havarot.SchemaTiberian, havarot.SchemaTraditional:
	default:
		return errors.NewValidation("analysis.schema", "unrecognized schema "+c.Analysis.Schema)
	}
	switch c.Analysis.HolemHaser {
	case "", havarot.HolemHaserRemove:
	default:
		return errors.NewValidation("analysis.holemHaser", "unrecognized mode "+c.Analysis.HolemHaser)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// EngineOptions converts the analysis section into engine options.
// When Schema is set it resolves inside the engine and overrides the
// individual heuristic fields.
func (c *Config) EngineOptions() *havarot.Options {
	opts := havarot.DefaultOptions()
	a := c.Analysis
	if a.Sqnmlvy != nil {
		opts.Sqnmlvy = *a.Sqnmlvy
	}
	if a.LongVowels != nil {
		opts.LongVowels = *a.LongVowels
	}
	if a.WawShureq != nil {
		opts.WawShureq = *a.WawShureq
	}
	if a.QametsQatan != nil {
		opts.QametsQatan = *a.QametsQatan
	}
	opts.Schema = a.Schema
	opts.HolemHaser = a.HolemHaser
	opts.AllowNoNiqqud = a.AllowNoNiqqud
	return opts
}
