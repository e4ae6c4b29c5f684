package havarot

import (
	"strings"

	"github.com/FocuswithJustin/havarot/core/errors"
	"github.com/FocuswithJustin/havarot/core/hebrew"
)

// Syllable is an ordered run of clusters with the three flags the
// syllabification algorithm assigns. Parts and structure are computed
// on first access and cached; repeated calls return the identical
// values, never a recomputation.
type Syllable struct {
	clusters []*Cluster
	word     *Word
	index    int

	isClosed   bool
	isAccented bool
	isFinal    bool

	parts      []*SyllablePart
	partsBuilt bool

	structure   *Structure
	structErr   error
	structBuilt bool
}

// SyllableFlags carries the flags for a standalone syllable.
type SyllableFlags struct {
	Closed   bool
	Accented bool
	Final    bool
}

// NewSyllable builds a standalone syllable, one with no owning word.
// Next and Previous on it return nil and gemination never applies.
// Pass nil flags for all false.
func NewSyllable(clusters []*Cluster, flags *SyllableFlags) *Syllable {
	s := newSyllable(clusters)
	if flags != nil {
		s.isClosed = flags.Closed
		s.isAccented = flags.Accented
		s.isFinal = flags.Final
	}
	return s
}

func newSyllable(clusters []*Cluster) *Syllable {
	s := &Syllable{clusters: clusters}
	for _, c := range clusters {
		c.syllable = s
	}
	return s
}

// Text returns the syllable's clusters as a string.
func (s *Syllable) Text() string {
	var b strings.Builder
	for _, c := range s.clusters {
		b.WriteString(c.Text())
	}
	return b.String()
}

// Clusters returns the syllable's clusters in order.
func (s *Syllable) Clusters() []*Cluster {
	return s.clusters
}

// Chars returns the syllable's characters in order.
func (s *Syllable) Chars() []*Char {
	var chars []*Char
	for _, c := range s.clusters {
		chars = append(chars, c.chars...)
	}
	return chars
}

// Word returns the owning word, or nil for a standalone syllable.
func (s *Syllable) Word() *Word {
	return s.word
}

// IsClosed reports whether the syllable ends in a coda consonant that
// is not a mater.
func (s *Syllable) IsClosed() bool {
	return s.isClosed
}

// IsAccented reports whether the syllable carries the word's stress.
func (s *Syllable) IsAccented() bool {
	return s.isAccented
}

// IsFinal reports whether the syllable is the last of its word.
func (s *Syllable) IsFinal() bool {
	return s.isFinal
}

// Next returns the following syllable of the same word, or nil at the
// word boundary. It never crosses into the next word.
func (s *Syllable) Next() *Syllable {
	if s.word == nil || s.index+1 >= len(s.word.syllables) {
		return nil
	}
	return s.word.syllables[s.index+1]
}

// Previous returns the preceding syllable of the same word, or nil at
// the word boundary.
func (s *Syllable) Previous() *Syllable {
	if s.word == nil || s.index == 0 {
		return nil
	}
	return s.word.syllables[s.index-1]
}

// Parts returns the syllable's typed parts, building them on first
// call. The returned slice is the cached value itself.
func (s *Syllable) Parts() []*SyllablePart {
	if !s.partsBuilt {
		s.parts = buildParts(s)
		s.partsBuilt = true
	}
	return s.parts
}

// Structure returns the onset, nucleus, coda decomposition, building
// it on first call. A syllable whose parts place a vowel after a coda
// consonant has no valid structure; the same error comes back on every
// call.
func (s *Syllable) Structure() (*Structure, error) {
	if !s.structBuilt {
		s.structure, s.structErr = buildStructure(s)
		s.structBuilt = true
	}
	return s.structure, s.structErr
}

// Onset returns the onset consonants as a string.
func (s *Syllable) Onset() (string, error) {
	st, err := s.Structure()
	if err != nil {
		return "", err
	}
	return st.Onset(), nil
}

// Nucleus returns the nucleus as a string.
func (s *Syllable) Nucleus() (string, error) {
	st, err := s.Structure()
	if err != nil {
		return "", err
	}
	return st.Nucleus(), nil
}

// Coda returns the coda as a string, gemination included.
func (s *Syllable) Coda() (string, error) {
	st, err := s.Structure()
	if err != nil {
		return "", err
	}
	return st.Coda(), nil
}

// CodaNoGemination returns the written coda, leaving out any coda
// realized by the next syllable's doubled onset.
func (s *Syllable) CodaNoGemination() (string, error) {
	st, err := s.Structure()
	if err != nil {
		return "", err
	}
	return st.CodaNoGemination(), nil
}

// Vowel returns the syllable's vowel spelling: the nucleus when it is
// a recognized spelling, shureq included, otherwise the first
// recognized vowel character anywhere in the syllable's text. Empty
// when the syllable has none.
func (s *Syllable) Vowel() string {
	if st, err := s.Structure(); err == nil {
		nucleus := st.Nucleus()
		if _, ok := hebrew.NameFromVowel(nucleus); ok {
			return nucleus
		}
	}
	for _, ch := range s.Chars() {
		if hebrew.IsNiqqud(ch.r) {
			return ch.Text()
		}
	}
	return ""
}

// VowelName returns the canonical name of Vowel, or empty.
func (s *Syllable) VowelName() string {
	v := s.Vowel()
	if v == "" {
		return ""
	}
	name, _ := hebrew.NameFromVowel(v)
	return name
}

// HasVowelName reports whether the named vowel occurs in the syllable.
// Sheva counts only when it is the syllable's nucleus, not a silent
// coda sheva; shureq requires a cluster flagged shureq. An
// unrecognized name is an error.
func (s *Syllable) HasVowelName(name string) (bool, error) {
	spelling, ok := hebrew.VowelFromName(name)
	if !ok {
		return false, errors.NewUnknownName(name)
	}
	switch name {
	case hebrew.NameShureq:
		for _, c := range s.clusters {
			if c.isShureq {
				return true, nil
			}
		}
		return false, nil
	case hebrew.NameSheva:
		if len(s.clusters) == 0 {
			return false, nil
		}
		return s.clusters[0].HasSheva(), nil
	default:
		return strings.Contains(s.Text(), spelling), nil
	}
}
