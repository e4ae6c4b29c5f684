package havarot

import "github.com/FocuswithJustin/havarot/core/hebrew"

// reorderHolamWaw normalizes the codepoint order of holam written on a
// vav. Keyboards and sources disagree on whether the holam of a mater
// vav is typed before or after the vav. When the consonant preceding
// the vav has no vowel of its own, the vav is the mater and the holam
// belongs to that consonant, so the holam is moved to directly after
// the consonant and its dagesh or ligature dots. When the preceding
// consonant already has a vowel the vav is consonantal and the holam
// stays put.
//
// removeHaser additionally rewrites holam haser for vav (U+05BA) to a
// plain holam, for callers that do not distinguish the two glyph
// forms.
func reorderHolamWaw(word []rune, removeHaser bool) []rune {
	found := false
	haser := false
	for _, r := range word {
		switch r {
		case hebrew.Holam:
			found = true
		case hebrew.HolamHaser:
			found = true
			haser = true
		}
	}
	if !found {
		return word
	}
	if removeHaser && haser {
		out := append([]rune(nil), word...)
		for i, r := range out {
			if r == hebrew.HolamHaser {
				out[i] = hebrew.Holam
			}
		}
		word = out
	}

	stripped, pos := hebrew.StripTaamim(word)

	// Collect moves against the stripped view first. Each move deletes
	// the holam at from and reinserts it at to; spans never overlap.
	type move struct{ from, to int }
	var moves []move
	for i := 0; i+1 < len(stripped); i++ {
		if stripped[i] != hebrew.Vav {
			continue
		}
		h := stripped[i+1]
		if h != hebrew.Holam && h != hebrew.HolamHaser {
			continue
		}
		// Walk back over the vav's neighbor, skipping dagesh, dots,
		// and meteg. Only a bare consonant takes the holam: landing on
		// a vowel or sheva means the vav is consonantal.
		j := i - 1
		for j >= 0 && (s1or2(stripped[j]) || hebrew.IsMeteg(stripped[j])) {
			j--
		}
		if j < 0 || !hebrew.IsConsonant(stripped[j]) {
			continue
		}
		to := j + 1
		for to < i && s1or2(stripped[to]) {
			to++
		}
		moves = append(moves, move{from: pos[i+1], to: pos[to]})
	}

	if len(moves) == 0 {
		return word
	}

	out := append([]rune(nil), word...)
	// Apply in descending order of from so earlier positions stay valid.
	for k := len(moves) - 1; k >= 0; k-- {
		m := moves[k]
		h := out[m.from]
		out = append(out[:m.from], out[m.from+1:]...)
		rest := append([]rune(nil), out[m.to:]...)
		out = append(out[:m.to], h)
		out = append(out, rest...)
	}
	return sequenceRunes(out)
}

// s1or2 reports whether r is a dagesh, rafe, or ligature dot.
func s1or2(r rune) bool {
	c := hebrew.SeqClass(r)
	return c == hebrew.ClassDagesh || c == hebrew.ClassLigature
}
