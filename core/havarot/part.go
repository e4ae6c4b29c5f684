package havarot

// PartType tags a SyllablePart.
type PartType string

// Part types.
const (
	PartConsonant  PartType = "consonant"
	PartVowel      PartType = "vowel"
	PartHebrewMark PartType = "mark"
	PartNonHebrew  PartType = "non-hebrew"
)

// ConsonantRole distinguishes where a consonant part sits in its
// syllable.
type ConsonantRole string

// Consonant roles. RoleGemination marks a coda realized by the doubled
// onset of the following syllable.
const (
	RoleNone       ConsonantRole = ""
	RoleOnset      ConsonantRole = "onset"
	RoleCoda       ConsonantRole = "coda"
	RoleGemination ConsonantRole = "gemination"
)

// SyllablePart is one typed constituent of a syllable: a consonant
// with its dots, a vowel, a bare Hebrew mark, or a run of non-Hebrew
// characters. Parts are built once per syllable by the structure
// engine and never mutated afterwards.
type SyllablePart struct {
	partType PartType
	role     ConsonantRole
	chars    []*Char
	syllable *Syllable
}

func newPart(t PartType, syl *Syllable, chars ...*Char) *SyllablePart {
	return &SyllablePart{partType: t, chars: chars, syllable: syl}
}

func newConsonantPart(role ConsonantRole, syl *Syllable, chars ...*Char) *SyllablePart {
	return &SyllablePart{partType: PartConsonant, role: role, chars: chars, syllable: syl}
}

// Type returns the part's type tag.
func (p *SyllablePart) Type() PartType {
	return p.partType
}

// Role returns the consonant role, or RoleNone for non-consonant
// parts.
func (p *SyllablePart) Role() ConsonantRole {
	return p.role
}

// IsOnset reports whether the part is an onset consonant.
func (p *SyllablePart) IsOnset() bool {
	return p.role == RoleOnset
}

// IsCoda reports whether the part is a coda consonant, whether written
// or realized by gemination.
func (p *SyllablePart) IsCoda() bool {
	return p.role == RoleCoda || p.role == RoleGemination
}

// IsGemination reports whether the part is a coda realized by the
// following syllable's doubled onset.
func (p *SyllablePart) IsGemination() bool {
	return p.role == RoleGemination
}

// Chars returns the part's characters.
func (p *SyllablePart) Chars() []*Char {
	return p.chars
}

// Text returns the part's characters as a string.
func (p *SyllablePart) Text() string {
	return charText(p.chars)
}

// Syllable returns the syllable the part belongs to.
func (p *SyllablePart) Syllable() *Syllable {
	return p.syllable
}

func (p *SyllablePart) extend(chars ...*Char) {
	p.chars = append(p.chars, chars...)
}
