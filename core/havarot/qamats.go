package havarot

import "github.com/FocuswithJustin/havarot/core/hebrew"

// convertQamatsQatan rewrites a plain qamats to qamats qatan where a
// fixed rule table identifies the short reading. It operates on one
// word token (maqqef chains intact) over the taamim-stripped view and
// replaces characters in place, so cantillation content never moves.
// With no matching rule the token is returned unchanged.
//
// The table is deliberately conservative:
//
//	R1  kaf (+dagesh) + qamats + lamed + maqqef        kol-compounds
//	R2  qamats + letter (+dagesh) + hataf qamats       vowel harmony
//	R3  qamats + letter + sheva + letter + full vowel  closed unaccented syllable
//
// A meteg directly after the candidate qamats marks the long reading
// and blocks every rule. R3 requires a full vowel after the sheva
// letter, which keeps suffixed forms with a following vocal sheva
// untouched.
func convertQamatsQatan(word []rune) []rune {
	found := false
	for _, r := range word {
		if r == hebrew.Qamats {
			found = true
			break
		}
	}
	if !found {
		return word
	}

	stripped, pos := hebrew.StripTaamim(word)
	var out []rune
	for i, r := range stripped {
		if r != hebrew.Qamats {
			continue
		}
		if i+1 < len(stripped) && stripped[i+1] == hebrew.Meteg {
			continue
		}
		if !kolRule(stripped, i) && !hatafRule(stripped, i) && !closedRule(stripped, i) {
			continue
		}
		if out == nil {
			out = append([]rune(nil), word...)
		}
		out[pos[i]] = hebrew.QamatsQatan
	}
	if out == nil {
		return word
	}
	return out
}

// kolRule matches the qamats of kaf(+dagesh)+qamats+lamed+maqqef.
func kolRule(s []rune, i int) bool {
	k := i - 1
	if k >= 0 && s[k] == hebrew.Dagesh {
		k--
	}
	if k < 0 || s[k] != hebrew.Kaf {
		return false
	}
	return i+2 < len(s) && s[i+1] == hebrew.Lamed && s[i+2] == hebrew.Maqqef
}

// hatafRule matches a qamats whose next letter carries hataf qamats.
func hatafRule(s []rune, i int) bool {
	j := i + 1
	if j >= len(s) || !hebrew.IsConsonant(s[j]) {
		return false
	}
	j = skipConsonantMarks(s, j+1)
	return j < len(s) && s[j] == hebrew.HatafQamats
}

// closedRule matches a qamats in a closed unaccented non-final
// syllable: the next letter carries a silent sheva (no dagesh on it)
// and the letter after that a full vowel.
func closedRule(s []rune, i int) bool {
	j := i + 1
	if j >= len(s) || !hebrew.IsConsonant(s[j]) {
		return false
	}
	j++
	// ligature dots may intervene, a dagesh may not: a dagesh there
	// doubles the letter and makes the sheva vocal.
	for j < len(s) && (s[j] == hebrew.ShinDot || s[j] == hebrew.SinDot) {
		j++
	}
	if j >= len(s) || s[j] != hebrew.Sheva {
		return false
	}
	j++
	if j >= len(s) || !hebrew.IsConsonant(s[j]) {
		return false
	}
	j = skipConsonantMarks(s, j+1)
	return j < len(s) && hebrew.IsVowelPoint(s[j])
}

// skipConsonantMarks advances past dagesh, rafe, and ligature dots.
func skipConsonantMarks(s []rune, j int) int {
	for j < len(s) {
		switch s[j] {
		case hebrew.Dagesh, hebrew.Rafe, hebrew.ShinDot, hebrew.SinDot:
			j++
		default:
			return j
		}
	}
	return j
}
