// Package hebrew provides character-level classification for pointed
// Hebrew text: rune constants for the Hebrew Unicode block, sequence
// classes for Masoretic mark ordering, and the predicates the
// syllabification engine is built on.
package hebrew

// Letters U+05D0–U+05EA plus the Yiddish digraph ligatures U+05F0–U+05F2.
const (
	Alef       = 'א'
	Bet        = 'ב'
	Gimel      = 'ג'
	Dalet      = 'ד'
	He         = 'ה'
	Vav        = 'ו'
	Zayin      = 'ז'
	Het        = 'ח'
	Tet        = 'ט'
	Yod        = 'י'
	FinalKaf   = 'ך'
	Kaf        = 'כ'
	Lamed      = 'ל'
	FinalMem   = 'ם'
	Mem        = 'מ'
	FinalNun   = 'ן'
	Nun        = 'נ'
	Samekh     = 'ס'
	Ayin       = 'ע'
	FinalPe    = 'ף'
	Pe         = 'פ'
	FinalTsadi = 'ץ'
	Tsadi      = 'צ'
	Qof        = 'ק'
	Resh       = 'ר'
	Shin       = 'ש'
	Tav        = 'ת'
)

// Points and marks.
const (
	Sheva       = 'ְ'
	HatafSegol  = 'ֱ'
	HatafPatah  = 'ֲ'
	HatafQamats = 'ֳ'
	Hiriq       = 'ִ'
	Tsere       = 'ֵ'
	Segol       = 'ֶ'
	Patah       = 'ַ'
	Qamats      = 'ָ'
	Holam       = 'ֹ'
	HolamHaser  = 'ֺ' // holam haser for vav
	Qubuts      = 'ֻ'
	Dagesh      = 'ּ' // also mapiq
	Meteg       = 'ֽ'
	Rafe        = 'ֿ'
	ShinDot     = 'ׁ'
	SinDot      = 'ׂ'
	UpperDot    = 'ׄ'
	LowerDot    = 'ׅ'
	QamatsQatan = 'ׇ'
)

// Punctuation.
const (
	Maqqef     = '־'
	Paseq      = '׀'
	SofPasuq   = '׃'
	NunHafukha = '׆'
	Geresh     = '׳'
	Gershayim  = '״'
)

// Sequence classes. A consonant's trailing marks sort by class:
// dagesh/mapiq before the shin/sin dots, dots before vowels, vowels
// before accents. Unicode canonical ordering puts the dagesh after the
// vowels, which is why the sequencer re-sorts.
const (
	ClassConsonant   = 0
	ClassDagesh      = 1 // dagesh, mapiq, rafe
	ClassLigature    = 2 // shin and sin dots
	ClassVowel       = 3 // vowel points including sheva
	ClassAccent      = 4 // cantillation, meteg, puncta
	ClassDigit       = 8
	ClassPunctuation = 9
	ClassOther       = 10
)

// SeqClass returns the sequence class of r. Classes 1 through 4 are
// marks and sort within a run; every other class breaks a mark run.
func SeqClass(r rune) int {
	switch {
	case IsConsonant(r):
		return ClassConsonant
	case r == Dagesh, r == Rafe:
		return ClassDagesh
	case r == ShinDot, r == SinDot:
		return ClassLigature
	case IsNiqqud(r):
		return ClassVowel
	case IsTaam(r), r == Meteg, r == UpperDot, r == LowerDot:
		return ClassAccent
	case r >= '0' && r <= '9':
		return ClassDigit
	case IsHebrewPunctuation(r):
		return ClassPunctuation
	default:
		return ClassOther
	}
}

// IsMark reports whether r sorts within a mark run (classes 1-4).
func IsMark(r rune) bool {
	c := SeqClass(r)
	return c >= ClassDagesh && c <= ClassAccent
}

// IsConsonant reports whether r is a Hebrew letter.
func IsConsonant(r rune) bool {
	return (r >= Alef && r <= Tav) || (r >= 'װ' && r <= 'ײ')
}

// IsNiqqud reports whether r is any vowel point, sheva included.
func IsNiqqud(r rune) bool {
	return (r >= Sheva && r <= Qubuts) || r == QamatsQatan
}

// IsVowelPoint reports whether r is a full vowel point. Sheva is
// excluded; its vocal or silent reading is decided per word.
func IsVowelPoint(r rune) bool {
	return (r >= HatafSegol && r <= Qubuts) || r == QamatsQatan
}

// IsSheva reports whether r is the sheva point.
func IsSheva(r rune) bool {
	return r == Sheva
}

// IsDagesh reports whether r is the dagesh point. Mapiq shares the
// codepoint.
func IsDagesh(r rune) bool {
	return r == Dagesh
}

// IsRafe reports whether r is the rafe mark.
func IsRafe(r rune) bool {
	return r == Rafe
}

// IsMeteg reports whether r is the meteg mark.
func IsMeteg(r rune) bool {
	return r == Meteg
}

// IsShinDot reports whether r is the shin dot.
func IsShinDot(r rune) bool {
	return r == ShinDot
}

// IsSinDot reports whether r is the sin dot.
func IsSinDot(r rune) bool {
	return r == SinDot
}

// IsLongVowel reports whether r is an unambiguously long vowel point:
// qamats, tsere, or either holam.
func IsLongVowel(r rune) bool {
	return r == Qamats || r == Tsere || r == Holam || r == HolamHaser
}

// IsTaam reports whether r is a cantillation mark (U+0591–U+05AF).
// Meteg is not a taam; it survives StripTaamim.
func IsTaam(r rune) bool {
	return r >= '֑' && r <= '֯'
}

// IsHebrewPunctuation reports whether r is one of the Hebrew
// punctuation characters.
func IsHebrewPunctuation(r rune) bool {
	switch r {
	case Maqqef, Paseq, SofPasuq, NunHafukha, Geresh, Gershayim:
		return true
	}
	return false
}

// IsHebrew reports whether r belongs to the Hebrew block or the
// Alphabetic Presentation Forms carrying Hebrew ligatures.
func IsHebrew(r rune) bool {
	return (r >= '֐' && r <= '׿') || (r >= 'יִ' && r <= 'ﭏ')
}
