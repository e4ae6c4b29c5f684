package havarot

import "github.com/FocuswithJustin/havarot/core/errors"

// Schema presets.
const (
	// SchemaTiberian enables only the sqnmlvy heuristic.
	SchemaTiberian = "tiberian"
	// SchemaTraditional enables every heuristic.
	SchemaTraditional = "traditional"
)

// HolemHaserRemove rewrites holam haser for vav to a plain holam
// before the correction passes run.
const HolemHaserRemove = "remove"

// Options configures text normalization and syllabification. The zero
// value disables every heuristic; use DefaultOptions for the standard
// configuration or set Schema to a preset.
type Options struct {
	// Sqnmlvy treats a sheva on shin, sin, samekh, qof, nun, mem,
	// lamed, vav, or yod as vocal when the letter follows a
	// word-initial vav or he pointed with patah and has lost its
	// expected strong dagesh.
	Sqnmlvy bool

	// LongVowels treats a sheva as vocal when the previous cluster
	// carries a long vowel (qamats, tsere, holam) or is a mater.
	LongVowels bool

	// WawShureq treats a sheva as vocal when the previous cluster is a
	// shureq without a meteg.
	WawShureq bool

	// QametsQatan enables the qamats qatan correction pass.
	QametsQatan bool

	// HolemHaser is empty to preserve holam haser for vav, or
	// HolemHaserRemove to rewrite it to a plain holam.
	HolemHaser string

	// Schema selects a preset. When set it overrides the four
	// heuristic fields; when empty the field values stand.
	Schema string

	// AllowNoNiqqud bypasses the vowel-point validation at
	// construction.
	AllowNoNiqqud bool
}

// DefaultOptions returns the standard configuration: every heuristic
// enabled, holam haser preserved.
func DefaultOptions() *Options {
	return &Options{
		Sqnmlvy:     true,
		LongVowels:  true,
		WawShureq:   true,
		QametsQatan: true,
	}
}

// normalized validates o and applies any Schema preset, returning the
// effective options. A nil receiver yields the defaults.
func (o *Options) normalized() (*Options, error) {
	if o == nil {
		return DefaultOptions(), nil
	}
	eff := *o
	switch o.Schema {
	case "":
	case SchemaTiberian:
		eff.Sqnmlvy = true
		eff.LongVowels = false
		eff.WawShureq = false
		eff.QametsQatan = false
	case SchemaTraditional:
		eff.Sqnmlvy = true
		eff.LongVowels = true
		eff.WawShureq = true
		eff.QametsQatan = true
	default:
		return nil, errors.NewValidation("schema", "unrecognized schema "+o.Schema)
	}
	switch o.HolemHaser {
	case "", HolemHaserRemove:
	default:
		return nil, errors.NewValidation("holemHaser", "unrecognized mode "+o.HolemHaser)
	}
	return &eff, nil
}
