package hebrew

// Canonical vowel names. These are the only names the engine
// recognizes; anything else is an unknown-name error at the API
// surface.
const (
	NameSheva       = "SHEVA"
	NameHatafSegol  = "HATAF_SEGOL"
	NameHatafPatah  = "HATAF_PATAH"
	NameHatafQamats = "HATAF_QAMATS"
	NameHiriq       = "HIRIQ"
	NameTsere       = "TSERE"
	NameSegol       = "SEGOL"
	NamePatah       = "PATAH"
	NameQamats      = "QAMATS"
	NameHolam       = "HOLAM"
	NameHolamHaser  = "HOLAM_HASER"
	NameQubuts      = "QUBUTS"
	NameQamatsQatan = "QAMATS_QATAN"
	NameShureq      = "SHUREQ"
)

// vowelByName maps each canonical name to its spelling. Shureq is the
// only two-character spelling (vav+dagesh).
var vowelByName = map[string]string{
	NameSheva:       string(Sheva),
	NameHatafSegol:  string(HatafSegol),
	NameHatafPatah:  string(HatafPatah),
	NameHatafQamats: string(HatafQamats),
	NameHiriq:       string(Hiriq),
	NameTsere:       string(Tsere),
	NameSegol:       string(Segol),
	NamePatah:       string(Patah),
	NameQamats:      string(Qamats),
	NameHolam:       string(Holam),
	NameHolamHaser:  string(HolamHaser),
	NameQubuts:      string(Qubuts),
	NameQamatsQatan: string(QamatsQatan),
	NameShureq:      string([]rune{Vav, Dagesh}),
}

var nameByVowel = func() map[string]string {
	m := make(map[string]string, len(vowelByName))
	for name, vowel := range vowelByName {
		m[vowel] = name
	}
	return m
}()

// IsVowelName reports whether name is a recognized canonical vowel name.
func IsVowelName(name string) bool {
	_, ok := vowelByName[name]
	return ok
}

// VowelFromName returns the spelling for a canonical vowel name.
func VowelFromName(name string) (string, bool) {
	v, ok := vowelByName[name]
	return v, ok
}

// NameFromVowel returns the canonical name for a vowel spelling.
func NameFromVowel(vowel string) (string, bool) {
	n, ok := nameByVowel[vowel]
	return n, ok
}
