package hebrew

// StripTaamim returns word with every cantillation mark removed, plus a
// position map from each stripped index back to the index in word.
// Meteg and all points survive; only U+0591–U+05AF is dropped. The
// correction passes match patterns on the stripped view and splice
// results into the original through the map.
func StripTaamim(word []rune) ([]rune, []int) {
	stripped := make([]rune, 0, len(word))
	pos := make([]int, 0, len(word))
	for i, r := range word {
		if IsTaam(r) {
			continue
		}
		stripped = append(stripped, r)
		pos = append(pos, i)
	}
	return stripped, pos
}

// StripMarks returns word with every mark removed, leaving only the
// consonant skeleton and any non-mark characters. Used for Divine Name
// detection and reference keys.
func StripMarks(word []rune) []rune {
	out := make([]rune, 0, len(word))
	for _, r := range word {
		if IsMark(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}
