package havarot

import "github.com/FocuswithJustin/havarot/core/hebrew"

// divineName is the consonantal skeleton of the Tetragrammaton.
const divineName = "יהוה"

// Word is one whitespace or maqqef delimited stretch of text together
// with the whitespace or maqqef that followed it.
type Word struct {
	text      string
	trailer   string
	syllables []*Syllable
}

func newWord(text, trailer string, opts *Options) *Word {
	w := &Word{text: text, trailer: trailer}
	w.syllabify(opts)
	return w
}

func (w *Word) syllabify(opts *Options) {
	clusters := buildClusters(newChars([]rune(w.text)))
	if len(clusters) == 0 {
		return
	}
	classifyShevas(clusters, opts)
	syls := syllabify(clusters, w.degenerate(clusters))
	for i, s := range syls {
		s.word = w
		s.index = i
	}
	w.syllables = syls
}

// degenerate reports whether the word bypasses syllabification: the
// Divine Name is read as one unit by convention, and a word with
// nothing that can carry a nucleus has nothing to partition.
func (w *Word) degenerate(clusters []*Cluster) bool {
	if w.IsDivineName() {
		return true
	}
	for _, c := range clusters {
		if c.HasVowel() || c.HasSheva() || c.isShureq {
			return false
		}
	}
	return true
}

// Text returns the word's text without its trailer.
func (w *Word) Text() string {
	return w.text
}

// Trailer returns the whitespace, maqqef, or both that followed the
// word in its text.
func (w *Word) Trailer() string {
	return w.trailer
}

// Syllables returns the word's syllables in order.
func (w *Word) Syllables() []*Syllable {
	return w.syllables
}

// Clusters returns the word's clusters in order.
func (w *Word) Clusters() []*Cluster {
	var clusters []*Cluster
	for _, s := range w.syllables {
		clusters = append(clusters, s.clusters...)
	}
	return clusters
}

// Chars returns the word's characters in order.
func (w *Word) Chars() []*Char {
	var chars []*Char
	for _, s := range w.syllables {
		chars = append(chars, s.Chars()...)
	}
	return chars
}

// IsDivineName reports whether the word's consonantal skeleton is the
// Tetragrammaton.
func (w *Word) IsDivineName() bool {
	return string(hebrew.StripMarks([]rune(w.text))) == divineName
}

// IsNotHebrew reports whether the word contains no Hebrew character.
func (w *Word) IsNotHebrew() bool {
	for _, r := range w.text {
		if hebrew.IsHebrew(r) {
			return false
		}
	}
	return w.text != ""
}
