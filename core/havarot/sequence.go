package havarot

import (
	"sort"

	"github.com/FocuswithJustin/havarot/core/hebrew"
)

// Sequence returns s with every run of marks re-sorted into Masoretic
// order: dagesh before ligature dots, dots before vowels, vowels before
// accents. Ties keep their original order, so two accents on one
// consonant never swap. Characters outside a mark run are untouched,
// and sequencing already-sequenced text is a no-op.
//
// Unicode canonical ordering is not sufficient here: NFD places the
// dagesh after the vowel points (combining class 21 versus 10-20), the
// opposite of the order the cluster builder relies on.
func Sequence(s string) string {
	return string(sequenceRunes([]rune(s)))
}

func sequenceRunes(in []rune) []rune {
	out := make([]rune, len(in))
	copy(out, in)
	for i := 0; i < len(out); {
		if !hebrew.IsMark(out[i]) {
			i++
			continue
		}
		j := i
		for j < len(out) && hebrew.IsMark(out[j]) {
			j++
		}
		run := out[i:j]
		sort.SliceStable(run, func(a, b int) bool {
			return hebrew.SeqClass(run[a]) < hebrew.SeqClass(run[b])
		})
		i = j
	}
	return out
}
