package havarot

import "github.com/FocuswithJustin/havarot/core/hebrew"

// Char is a single character of sequenced text.
type Char struct {
	r       rune
	seqPos  int
	cluster *Cluster
}

func newChar(r rune) *Char {
	return &Char{r: r, seqPos: hebrew.SeqClass(r)}
}

func newChars(rs []rune) []*Char {
	chars := make([]*Char, len(rs))
	for i, r := range rs {
		chars[i] = newChar(r)
	}
	return chars
}

// Text returns the character as a string.
func (c *Char) Text() string {
	return string(c.r)
}

// Rune returns the underlying rune.
func (c *Char) Rune() rune {
	return c.r
}

// SequencePosition returns the character's sequence class: 0 for a
// consonant, 1 for dagesh/mapiq/rafe, 2 for the shin and sin dots,
// 3 for vowel points including sheva, 4 for accents, and higher values
// for characters that never sort within a mark run.
func (c *Char) SequencePosition() int {
	return c.seqPos
}

// Cluster returns the cluster that owns this character, or nil for a
// character that has not been clustered.
func (c *Char) Cluster() *Cluster {
	return c.cluster
}

func charText(chars []*Char) string {
	rs := make([]rune, len(chars))
	for i, c := range chars {
		rs[i] = c.r
	}
	return string(rs)
}
