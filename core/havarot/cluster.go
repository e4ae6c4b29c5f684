package havarot

import "github.com/FocuswithJustin/havarot/core/hebrew"

// Cluster is one orthographic unit of a word: a consonant with the
// marks sequenced onto it, or a run of punctuation or non-Hebrew
// characters. The shureq and mater flags are assigned once by the
// builder, the sheva classification once by syllabification;
// everything else derives from the characters.
type Cluster struct {
	chars    []*Char
	syllable *Syllable

	isShureq bool
	isMater  bool
	sheva    shevaState
}

func newCluster(chars []*Char) *Cluster {
	c := &Cluster{chars: chars}
	for _, ch := range chars {
		ch.cluster = c
	}
	return c
}

// Text returns the cluster's characters as a string.
func (c *Cluster) Text() string {
	return charText(c.chars)
}

// Chars returns the cluster's characters in sequence order.
func (c *Cluster) Chars() []*Char {
	return c.chars
}

// Syllable returns the syllable that owns this cluster, or nil for a
// cluster that has not been syllabified.
func (c *Cluster) Syllable() *Syllable {
	return c.syllable
}

// IsShureq reports whether the cluster is a vav and dagesh acting as
// the vowel shureq.
func (c *Cluster) IsShureq() bool {
	return c.isShureq
}

// IsMater reports whether the cluster is a bare he, vav, yod, or alef
// lengthening the previous cluster's vowel.
func (c *Cluster) IsMater() bool {
	return c.isMater
}

// HasVowel reports whether the cluster carries a vowel point. Sheva is
// not counted; see HasSheva.
func (c *Cluster) HasVowel() bool {
	for _, ch := range c.chars {
		if hebrew.IsVowelPoint(ch.r) {
			return true
		}
	}
	return false
}

// HasSheva reports whether the cluster carries a sheva.
func (c *Cluster) HasSheva() bool {
	for _, ch := range c.chars {
		if hebrew.IsSheva(ch.r) {
			return true
		}
	}
	return false
}

// HasVocalSheva reports whether the cluster's sheva was classified
// vocal. The classification happens during syllabification; on a
// cluster that never went through it, both sheva predicates are false.
func (c *Cluster) HasVocalSheva() bool {
	return c.sheva == shevaVocal
}

// HasSilentSheva reports whether the cluster's sheva was classified
// silent.
func (c *Cluster) HasSilentSheva() bool {
	return c.sheva == shevaSilent
}

// HasDagesh reports whether the cluster carries a dagesh or mapiq.
func (c *Cluster) HasDagesh() bool {
	for _, ch := range c.chars {
		if hebrew.IsDagesh(ch.r) {
			return true
		}
	}
	return false
}

// HasMeteg reports whether the cluster carries a meteg.
func (c *Cluster) HasMeteg() bool {
	for _, ch := range c.chars {
		if hebrew.IsMeteg(ch.r) {
			return true
		}
	}
	return false
}

// HasTaamim reports whether the cluster carries a cantillation mark.
// Meteg is not counted; it marks secondary stress, not the accent.
func (c *Cluster) HasTaamim() bool {
	for _, ch := range c.chars {
		if hebrew.IsTaam(ch.r) {
			return true
		}
	}
	return false
}

// HasLongVowel reports whether the cluster carries qamats, tsere, or
// holam.
func (c *Cluster) HasLongVowel() bool {
	for _, ch := range c.chars {
		if hebrew.IsLongVowel(ch.r) {
			return true
		}
	}
	return false
}

// IsPunctuation reports whether the cluster is Hebrew punctuation such
// as sof pasuq or paseq.
func (c *Cluster) IsPunctuation() bool {
	for _, ch := range c.chars {
		if ch.seqPos != hebrew.ClassPunctuation {
			return false
		}
	}
	return len(c.chars) > 0
}

// IsNotHebrew reports whether the cluster contains no Hebrew character
// at all.
func (c *Cluster) IsNotHebrew() bool {
	for _, ch := range c.chars {
		if hebrew.IsHebrew(ch.r) {
			return false
		}
	}
	return len(c.chars) > 0
}

func (c *Cluster) firstRune() rune {
	if len(c.chars) == 0 {
		return 0
	}
	return c.chars[0].r
}

// vocalic reports whether the cluster can carry a syllable: it has a
// vowel point or is a shureq.
func (c *Cluster) vocalic() bool {
	return c.HasVowel() || c.isShureq
}

// buildClusters groups a word's sequenced characters into clusters and
// classifies shureq and mater clusters.
//
// The walk starts a new cluster at each consonant and absorbs every
// following mark into it. Hebrew punctuation and non-Hebrew characters
// accumulate in runs of their own kind; a mark with no preceding
// consonant opens a degenerate mark cluster rather than being dropped.
func buildClusters(chars []*Char) []*Cluster {
	var clusters []*Cluster
	var cur []*Char
	mode := hebrew.ClassConsonant

	flush := func() {
		if len(cur) > 0 {
			clusters = append(clusters, newCluster(cur))
			cur = nil
		}
	}

	for _, ch := range chars {
		switch class := ch.seqPos; {
		case class == hebrew.ClassConsonant:
			flush()
			mode = hebrew.ClassConsonant
			cur = []*Char{ch}
		case class <= hebrew.ClassAccent:
			if mode != hebrew.ClassConsonant {
				flush()
				mode = hebrew.ClassConsonant
			}
			cur = append(cur, ch)
		case class == hebrew.ClassPunctuation:
			if mode != hebrew.ClassPunctuation {
				flush()
				mode = hebrew.ClassPunctuation
			}
			cur = append(cur, ch)
		default:
			if mode != hebrew.ClassOther {
				flush()
				mode = hebrew.ClassOther
			}
			cur = append(cur, ch)
		}
	}
	flush()

	classifyClusters(clusters)
	return clusters
}

// classifyClusters assigns the shureq and mater flags in one pass.
// Mater lookahead uses the raw vav-dagesh shape of the next cluster,
// so the two classifications cannot depend on each other's results.
func classifyClusters(clusters []*Cluster) {
	for i, c := range clusters {
		var prev, next *Cluster
		if i > 0 {
			prev = clusters[i-1]
		}
		if i+1 < len(clusters) {
			next = clusters[i+1]
		}
		if isShureqShape(c) && (prev == nil || !prev.isMater) {
			c.isShureq = true
			continue
		}
		c.isMater = isMater(c, prev, next)
	}
}

// isShureqShape reports whether the cluster is a vav bearing a dagesh
// and no vowel of its own.
func isShureqShape(c *Cluster) bool {
	return c.firstRune() == hebrew.Vav && c.HasDagesh() && !c.HasVowel() && !c.HasSheva()
}

// materVowels maps each mater letter to the vowels it lengthens.
var materVowels = map[rune][]rune{
	hebrew.He:   {hebrew.Qamats, hebrew.Segol, hebrew.Tsere, hebrew.Holam},
	hebrew.Vav:  {hebrew.Holam},
	hebrew.Yod:  {hebrew.Hiriq, hebrew.Tsere, hebrew.Segol},
	hebrew.Alef: {hebrew.Qamats, hebrew.Tsere, hebrew.Segol, hebrew.Holam},
}

// isMater reports whether cluster c lengthens prev's vowel. A letter
// with any vowel, sheva, or dagesh of its own is never a mater (a he
// with dagesh is mapiq he, consonantal), and a letter directly before
// a shureq is that syllable's onset rather than a mater.
func isMater(c, prev, next *Cluster) bool {
	if prev == nil || c.HasVowel() || c.HasSheva() || c.HasDagesh() {
		return false
	}
	if next != nil && isShureqShape(next) {
		return false
	}
	vowels, ok := materVowels[c.firstRune()]
	if !ok {
		return false
	}
	for _, ch := range prev.chars {
		for _, v := range vowels {
			if ch.r == v {
				return true
			}
		}
	}
	return false
}
