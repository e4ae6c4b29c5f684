package havarot

import "github.com/FocuswithJustin/havarot/core/hebrew"

// shevaVocal and shevaSilent classify the sheva of a cluster. Clusters
// without a sheva stay shevaNone.
type shevaState int

const (
	shevaNone shevaState = iota
	shevaVocal
	shevaSilent
)

// sqnmlvyLetters are the letters that historically keep a vocal sheva
// after a word-initial consecutive vav or article he when their strong
// dagesh has dropped.
var sqnmlvyLetters = map[rune]bool{
	hebrew.Shin:   true,
	hebrew.Samekh: true,
	hebrew.Qof:    true,
	hebrew.Nun:    true,
	hebrew.Mem:    true,
	hebrew.Lamed:  true,
	hebrew.Vav:    true,
	hebrew.Yod:    true,
}

// classifyShevas decides vocal or silent for every sheva-bearing
// cluster of one word and records the result on the cluster. Rules are
// ordered and the first match wins:
//
//	 1. last cluster of the word               silent
//	 2. no vowel-capable cluster before it     vocal
//	 3. previous cluster bears a sheva         vocal
//	 4. next cluster bears a sheva             silent
//	 5. the cluster bears a dagesh             vocal
//	 6. sqnmlvy letter after initial vav or    vocal   (option)
//	    he pointed with patah
//	 7. previous cluster is a shureq           vocal unless the shureq
//	                                           has a meteg  (option)
//	 8. previous cluster bears a meteg         vocal
//	 9. previous cluster has a long vowel or   vocal   (option)
//	    is a mater
//	10. otherwise                              silent
//
// Rule 4 sits above the option rules so that the first of two
// consecutive shevas is silent even when the preceding vowel is long.
// Rule 7 decides the shureq case completely: a sheva after a shureq
// with meteg is silent, never rescued by rules 8 or 9.
func classifyShevas(clusters []*Cluster, opts *Options) {
	last := lastLetterCluster(clusters)
	for i, c := range clusters {
		if !c.HasSheva() {
			continue
		}
		c.sheva = classifySheva(clusters, i, last, opts)
	}
}

func classifySheva(clusters []*Cluster, i, last int, opts *Options) shevaState {
	c := clusters[i]
	var prev, next *Cluster
	if i > 0 {
		prev = clusters[i-1]
	}
	if i+1 < len(clusters) {
		next = clusters[i+1]
	}

	switch {
	case i == last:
		return shevaSilent
	case firstVowelCapable(clusters, i):
		return shevaVocal
	case prev != nil && prev.HasSheva():
		return shevaVocal
	case next != nil && next.HasSheva():
		return shevaSilent
	case c.HasDagesh():
		return shevaVocal
	case opts.Sqnmlvy && i == 1 && sqnmlvyLetters[c.firstRune()] && !c.HasDagesh() && vavOrHeWithPatah(prev):
		return shevaVocal
	case prev != nil && prev.isShureq:
		if opts.WawShureq && !prev.HasMeteg() {
			return shevaVocal
		}
		return shevaSilent
	case prev != nil && prev.HasMeteg():
		return shevaVocal
	case opts.LongVowels && prev != nil && (prev.HasLongVowel() || prev.isMater):
		return shevaVocal
	default:
		return shevaSilent
	}
}

// lastLetterCluster returns the index of the word's last cluster,
// skipping trailing punctuation and non-Hebrew runs, or -1.
func lastLetterCluster(clusters []*Cluster) int {
	for i := len(clusters) - 1; i >= 0; i-- {
		if !clusters[i].IsPunctuation() && !clusters[i].IsNotHebrew() {
			return i
		}
	}
	return -1
}

// firstVowelCapable reports whether no cluster before i carries a
// vowel, sheva, or shureq. A sheva there is word-initial for
// syllabification purposes and always vocal.
func firstVowelCapable(clusters []*Cluster, i int) bool {
	for _, c := range clusters[:i] {
		if c.HasVowel() || c.HasSheva() || c.isShureq {
			return false
		}
	}
	return true
}

func vavOrHeWithPatah(c *Cluster) bool {
	if c == nil {
		return false
	}
	r := c.firstRune()
	if r != hebrew.Vav && r != hebrew.He {
		return false
	}
	for _, ch := range c.chars {
		if ch.r == hebrew.Patah {
			return true
		}
	}
	return false
}

// syllabify partitions a word's clusters into syllables and assigns
// the closed, accented, and final flags. Degenerate words, the Divine
// Name and words with nothing to carry a nucleus, come back as a
// single syllable.
//
// The walk runs right to left, accumulating clusters and closing a
// syllable at each nucleus: a full vowel, a shureq, or a vocal sheva.
// A shureq first pulls in the bare consonant directly before it as its
// onset. Whatever is left at the word start, prefixed conjunctions and
// the like never leave leftovers but defective spellings can, joins
// the first syllable.
func syllabify(clusters []*Cluster, degenerate bool) []*Syllable {
	if len(clusters) == 0 {
		return nil
	}
	if degenerate {
		syl := newSyllable(clusters)
		syl.isFinal = true
		syl.isClosed = closedSyllable(clusters, true)
		return applyAccents([]*Syllable{syl})
	}

	var groups [][]*Cluster
	var acc []*Cluster
	for i := len(clusters) - 1; i >= 0; i-- {
		c := clusters[i]
		acc = append([]*Cluster{c}, acc...)

		closes := false
		switch {
		case c.isShureq:
			if i > 0 && bareConsonant(clusters[i-1]) {
				acc = append([]*Cluster{clusters[i-1]}, acc...)
				i--
			}
			closes = true
		case c.HasVowel():
			closes = true
		case c.HasVocalSheva():
			closes = true
		}
		if closes {
			groups = append([][]*Cluster{acc}, groups...)
			acc = nil
		}
	}
	if len(acc) > 0 {
		if len(groups) == 0 {
			groups = [][]*Cluster{acc}
		} else {
			groups[0] = append(acc, groups[0]...)
		}
	}

	syls := make([]*Syllable, len(groups))
	for i, g := range groups {
		syl := newSyllable(g)
		syl.isFinal = i == len(groups)-1
		syl.isClosed = closedSyllable(g, syl.isFinal)
		syls[i] = syl
	}
	return applyAccents(syls)
}

// bareConsonant reports whether the cluster is a consonant with no
// vowel, sheva, or mater role, eligible to serve as a shureq's onset.
func bareConsonant(c *Cluster) bool {
	return hebrew.IsConsonant(c.firstRune()) &&
		!c.HasVowel() && !c.HasSheva() && !c.isShureq && !c.isMater
}

// closedSyllable reports whether a syllable's last letter cluster is a
// coda consonant. A final furtive patah counts as closed: its vowel is
// read before the final guttural, which closes the syllable.
func closedSyllable(clusters []*Cluster, final bool) bool {
	for i := len(clusters) - 1; i >= 0; i-- {
		c := clusters[i]
		if c.IsPunctuation() || c.IsNotHebrew() {
			continue
		}
		switch {
		case c.vocalic():
			return final && furtiveCluster(c)
		case c.isMater:
			return false
		case c.HasSheva():
			// A trailing sheva cluster is a silent coda unless it is
			// the syllable's own nucleus.
			for j := i - 1; j >= 0; j-- {
				if clusters[j].vocalic() || clusters[j].HasSheva() {
					return true
				}
			}
			return false
		default:
			return hebrew.IsConsonant(c.firstRune())
		}
	}
	return false
}

// furtiveCluster reports whether the cluster spells a furtive patah: a
// mapiq he, or a het or ayin without dagesh, pointed with patah.
func furtiveCluster(c *Cluster) bool {
	chars := c.chars
	if len(chars) < 2 {
		return false
	}
	switch chars[0].r {
	case hebrew.He:
		return len(chars) >= 3 && chars[1].r == hebrew.Dagesh && chars[2].r == hebrew.Patah
	case hebrew.Het, hebrew.Ayin:
		return chars[1].r == hebrew.Patah
	}
	return false
}

// applyAccents flags every syllable carrying a cantillation mark, or
// the last syllable when the word has none.
func applyAccents(syls []*Syllable) []*Syllable {
	accented := false
	for _, s := range syls {
		for _, c := range s.clusters {
			if c.HasTaamim() {
				s.isAccented = true
				accented = true
				break
			}
		}
	}
	if !accented && len(syls) > 0 {
		syls[len(syls)-1].isAccented = true
	}
	return syls
}
