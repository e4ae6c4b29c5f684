package havarot

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/FocuswithJustin/havarot/core/errors"
	"github.com/FocuswithJustin/havarot/core/hebrew"
)

// Text is the root of the analysis graph: the normalized, sequenced,
// corrected input and the words built from it. Build one Text per
// input string; a finished Text is read-only and its accessors are
// safe to share.
type Text struct {
	original string
	text     string
	options  *Options
	words    []*Word
}

// NewText normalizes, sequences, and corrects input, then splits and
// syllabifies it. Construction fails when the options are invalid or
// when the text carries no niqqud at all, unless AllowNoNiqqud is set.
func NewText(input string, opts *Options) (*Text, error) {
	eff, err := opts.normalized()
	if err != nil {
		return nil, err
	}

	normalized := norm.NFD.String(strings.TrimSpace(input))
	corrected := applyCorrections(sequenceRunes([]rune(normalized)), eff)

	if !eff.AllowNoNiqqud && !containsNiqqud(corrected) {
		verr := errors.NewValidation("text", "must contain vowel points")
		verr.Err = errors.ErrNoVowels
		return nil, verr
	}

	t := &Text{
		original: input,
		text:     string(corrected),
		options:  eff,
	}
	t.words = splitWords(corrected, eff)
	return t, nil
}

// applyCorrections runs the qamats qatan and holam waw passes over
// each whitespace-delimited token. Maqqef compounds stay whole here;
// the qamats qatan rule for kol needs to see across the maqqef.
func applyCorrections(rs []rune, opts *Options) []rune {
	out := make([]rune, 0, len(rs))
	for i := 0; i < len(rs); {
		if unicode.IsSpace(rs[i]) {
			out = append(out, rs[i])
			i++
			continue
		}
		j := i
		for j < len(rs) && !unicode.IsSpace(rs[j]) {
			j++
		}
		token := rs[i:j]
		if opts.QametsQatan {
			token = convertQamatsQatan(token)
		}
		token = reorderHolamWaw(token, opts.HolemHaser == HolemHaserRemove)
		out = append(out, token...)
		i = j
	}
	return out
}

func containsNiqqud(rs []rune) bool {
	for _, r := range rs {
		if hebrew.IsNiqqud(r) {
			return true
		}
	}
	return false
}

// splitWords breaks the corrected text into words at whitespace and
// maqqef. The maqqef goes into the trailer of the word it follows, so
// concatenating every word's text and trailer reproduces the text.
func splitWords(rs []rune, opts *Options) []*Word {
	var words []*Word
	for i := 0; i < len(rs); {
		j := i
		for j < len(rs) && !unicode.IsSpace(rs[j]) {
			j++
		}
		k := j
		for k < len(rs) && unicode.IsSpace(rs[k]) {
			k++
		}
		words = splitToken(words, rs[i:j], string(rs[j:k]), opts)
		i = k
	}
	return words
}

func splitToken(words []*Word, token []rune, ws string, opts *Options) []*Word {
	start := 0
	for m := 0; m <= len(token); m++ {
		if m < len(token) && token[m] != hebrew.Maqqef {
			continue
		}
		text := string(token[start:m])
		trailer := string(hebrew.Maqqef)
		if m == len(token) {
			trailer = ws
		}
		switch {
		case text != "":
			words = append(words, newWord(text, trailer, opts))
		case len(words) > 0:
			words[len(words)-1].trailer += trailer
		case trailer != "":
			// a token opening with maqqef: keep the mark as a word of
			// its own rather than losing it
			words = append(words, newWord(trailer, "", opts))
		}
		start = m + 1
	}
	return words
}

// Original returns the input string as given.
func (t *Text) Original() string {
	return t.original
}

// Text returns the normalized, sequenced, corrected text.
func (t *Text) Text() string {
	return t.text
}

// Options returns the effective options after schema resolution.
func (t *Text) Options() *Options {
	return t.options
}

// Words returns the text's words in order.
func (t *Text) Words() []*Word {
	return t.words
}

// Syllables returns every syllable of every word in order.
func (t *Text) Syllables() []*Syllable {
	var syls []*Syllable
	for _, w := range t.words {
		syls = append(syls, w.syllables...)
	}
	return syls
}

// Clusters returns every cluster of every word in order.
func (t *Text) Clusters() []*Cluster {
	var clusters []*Cluster
	for _, w := range t.words {
		clusters = append(clusters, w.Clusters()...)
	}
	return clusters
}

// Chars returns every character of every word in order. Whitespace
// and maqqef trailers are not part of any word's characters.
func (t *Text) Chars() []*Char {
	var chars []*Char
	for _, w := range t.words {
		chars = append(chars, w.Chars()...)
	}
	return chars
}
