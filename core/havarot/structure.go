package havarot

import (
	"strings"

	"github.com/FocuswithJustin/havarot/core/errors"
	"github.com/FocuswithJustin/havarot/core/hebrew"
)

// Structure is a syllable's onset, nucleus, coda decomposition. The
// coda list includes gemination parts; CodaNoGemination leaves them
// out.
type Structure struct {
	onset   []*SyllablePart
	nucleus []*SyllablePart
	coda    []*SyllablePart
}

// OnsetParts returns the onset consonant parts.
func (st *Structure) OnsetParts() []*SyllablePart {
	return st.onset
}

// NucleusParts returns the vowel parts.
func (st *Structure) NucleusParts() []*SyllablePart {
	return st.nucleus
}

// CodaParts returns the coda consonant parts, gemination included.
func (st *Structure) CodaParts() []*SyllablePart {
	return st.coda
}

// Onset returns the onset as a string.
func (st *Structure) Onset() string {
	return partText(st.onset, false)
}

// Nucleus returns the nucleus as a string.
func (st *Structure) Nucleus() string {
	return partText(st.nucleus, false)
}

// Coda returns the coda as a string, gemination included.
func (st *Structure) Coda() string {
	return partText(st.coda, false)
}

// CodaNoGemination returns only the written coda.
func (st *Structure) CodaNoGemination() string {
	return partText(st.coda, true)
}

func partText(parts []*SyllablePart, skipGemination bool) string {
	var b strings.Builder
	for _, p := range parts {
		if skipGemination && p.IsGemination() {
			continue
		}
		b.WriteString(p.Text())
	}
	return b.String()
}

// buildParts walks the syllable's clusters and emits typed parts.
//
// Shureq clusters emit their vav and dagesh as a single vowel. A
// mater's letter is folded onto the vowel it lengthens instead of
// becoming a part of its own. A final furtive patah is emitted before
// its consonant, the one place part order and text order disagree.
// Everything else goes character by character: consonants open onset
// or coda parts, dagesh and the ligature dots extend the consonant
// they sit on, vowels become nuclei except for silent shevas, and
// whatever is neither Hebrew letter nor mark accumulates in non-Hebrew
// runs.
func buildParts(s *Syllable) []*SyllablePart {
	var parts []*SyllablePart
	var lastCons *SyllablePart
	var nonHebrew *SyllablePart
	vowelSeen := false

	emit := func(p *SyllablePart) {
		parts = append(parts, p)
		nonHebrew = nil
	}

	walk := func(ci int, chars []*Char) {
		for _, ch := range chars {
			switch class := ch.seqPos; {
			case class == hebrew.ClassConsonant:
				role := RoleOnset
				if vowelSeen {
					role = RoleCoda
				}
				lastCons = newConsonantPart(role, s, ch)
				emit(lastCons)
			case class == hebrew.ClassDagesh || class == hebrew.ClassLigature:
				if lastCons != nil {
					lastCons.extend(ch)
					continue
				}
				emit(newPart(PartHebrewMark, s, ch))
			case class == hebrew.ClassVowel:
				if hebrew.IsSheva(ch.r) && ci != 0 {
					emit(newPart(PartHebrewMark, s, ch))
					continue
				}
				vowelSeen = true
				emit(newPart(PartVowel, s, ch))
			case hebrew.IsHebrew(ch.r):
				emit(newPart(PartHebrewMark, s, ch))
			default:
				if nonHebrew == nil {
					nonHebrew = newPart(PartNonHebrew, s, ch)
					parts = append(parts, nonHebrew)
					continue
				}
				nonHebrew.extend(ch)
			}
		}
	}

	for ci, cluster := range s.clusters {
		chars := cluster.chars
		switch {
		case cluster.isShureq && len(chars) >= 2:
			vowelSeen = true
			emit(newPart(PartVowel, s, chars[0], chars[1]))
			walk(ci, chars[2:])
		case cluster.isMater:
			if v := lastVowelPart(parts); v != nil && len(chars) > 0 {
				v.extend(chars[0])
				walk(ci, chars[1:])
				continue
			}
			walk(ci, chars)
		case furtiveHere(s, ci):
			vowelSeen = true
			if chars[0].r == hebrew.He {
				emit(newPart(PartVowel, s, chars[2]))
				lastCons = newConsonantPart(RoleCoda, s, chars[0], chars[1])
				emit(lastCons)
				walk(ci, chars[3:])
				continue
			}
			emit(newPart(PartVowel, s, chars[1]))
			lastCons = newConsonantPart(RoleCoda, s, chars[0])
			emit(lastCons)
			walk(ci, chars[2:])
		default:
			walk(ci, chars)
		}
	}

	if g := geminationPart(s, parts); g != nil {
		parts = append(parts, g)
	}
	return parts
}

// furtiveHere reports whether the cluster at ci is a furtive patah:
// the syllable is final, nothing but punctuation or non-Hebrew runs
// follows, and the cluster is a mapiq he or a plain het or ayin
// pointed with patah.
func furtiveHere(s *Syllable, ci int) bool {
	if !s.isFinal {
		return false
	}
	for _, c := range s.clusters[ci+1:] {
		if !c.IsPunctuation() && !c.IsNotHebrew() {
			return false
		}
	}
	return furtiveCluster(s.clusters[ci])
}

func lastVowelPart(parts []*SyllablePart) *SyllablePart {
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i].partType == PartVowel {
			return parts[i]
		}
	}
	return nil
}

// geminationPart builds the coda a doubled onset realizes: when an
// open syllable with a real vowel is followed in the same word by a
// syllable whose first cluster bears a dagesh, that dagesh doubles the
// consonant and the first half closes this syllable. The part shares
// the next syllable's characters but is a part of this one.
func geminationPart(s *Syllable, parts []*SyllablePart) *SyllablePart {
	next := s.Next()
	if next == nil || len(next.clusters) == 0 {
		return nil
	}
	vowel := false
	for _, p := range parts {
		switch p.partType {
		case PartVowel:
			if p.Text() != string(hebrew.Sheva) {
				vowel = true
			}
		case PartConsonant:
			if p.IsCoda() {
				return nil
			}
		}
	}
	if !vowel {
		return nil
	}
	first := next.clusters[0]
	if first.isShureq || !first.HasDagesh() {
		return nil
	}
	var chars []*Char
	for _, ch := range first.chars {
		if ch.seqPos <= hebrew.ClassLigature {
			chars = append(chars, ch)
		}
	}
	if len(chars) == 0 {
		return nil
	}
	return newConsonantPart(RoleGemination, s, chars...)
}

// buildStructure derives onset, nucleus, and coda from part order:
// consonants before the first vowel are onset, consonants after are
// coda. A vowel after a coda consonant would put a consonant between
// two vowels inside one syllable, which the model cannot represent.
func buildStructure(s *Syllable) (*Structure, error) {
	st := &Structure{}
	vowelSeen := false
	codaSeen := false
	for _, p := range s.Parts() {
		switch p.partType {
		case PartConsonant:
			if !vowelSeen {
				st.onset = append(st.onset, p)
				continue
			}
			st.coda = append(st.coda, p)
			codaSeen = true
		case PartVowel:
			if codaSeen {
				return nil, errors.NewStructure(s.Text(), "vowel part after a coda consonant")
			}
			vowelSeen = true
			st.nucleus = append(st.nucleus, p)
		}
	}
	return st, nil
}
