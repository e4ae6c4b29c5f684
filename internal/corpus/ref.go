package corpus

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/havarot/core/errors"
)

// Ref is a parsed OSIS-style scripture reference. Plain-text corpus
// keys ("line:N") are not references and never reach ParseRef.
type Ref struct {
	// Book is the OSIS book ID (e.g., "Gen", "Isa", "1John").
	Book string `json:"book"`

	// Chapter is 1-indexed, 0 for whole-book references.
	Chapter int `json:"chapter,omitempty"`

	// Verse is 1-indexed, 0 for whole-chapter references.
	Verse int `json:"verse,omitempty"`

	// VerseEnd is the ending verse for ranges (optional).
	VerseEnd int `json:"verse_end,omitempty"`

	// SubVerse is the verse subdivision (e.g., "a", "b").
	SubVerse string `json:"sub_verse,omitempty"`

	// OSISID is the reference as written (e.g., "Gen.1.1", "Isa.40.3-5").
	OSISID string `json:"osis_id,omitempty"`
}

// refGrammar is the participle grammar for OSIS-style references.
// Examples: "Gen", "Gen.1", "Gen.1.1", "Gen.1.1a", "Gen.1.1-3", "1Kgs.2.4"
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	BookPrefix string       `@Int?`
	BookName   string       `@Ident`
	ChapterRef *chapterPart `( "." @@ )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type chapterPart struct {
	Chapter  int        `@Int`
	VerseRef *versePart `( "." @@ )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type versePart struct {
	Verse    int     `@Int`
	SubVerse *string `@SubVerse?`
	Range    *int    `( "-" @Int )?`
}

// refLexer tokenizes OSIS references. Ident starts with uppercase to
// distinguish book names from single-lowercase sub-verse letters.
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Z][A-Za-z]*`},
	{Name: "SubVerse", Pattern: `[a-z]`},
	{Name: "Punct", Pattern: `[.\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// ParseRef parses an OSIS-style reference string. Supported forms:
//   - "Gen" (whole book)
//   - "Gen.1" (whole chapter)
//   - "Gen.1.1" (single verse)
//   - "Gen.1.1a" (with sub-verse)
//   - "Gen.1.1-3" (verse range)
func ParseRef(s string) (*Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.NewParse("reference", "", "empty string")
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return nil, errors.NewParse("reference", "", fmt.Sprintf("%q: %v", s, err))
	}

	ref := &Ref{
		Book:   parsed.BookPrefix + parsed.BookName,
		OSISID: s,
	}

	if parsed.ChapterRef != nil {
		ref.Chapter = parsed.ChapterRef.Chapter

		if parsed.ChapterRef.VerseRef != nil {
			ref.Verse = parsed.ChapterRef.VerseRef.Verse

			if parsed.ChapterRef.VerseRef.SubVerse != nil {
				ref.SubVerse = *parsed.ChapterRef.VerseRef.SubVerse
			}
			if parsed.ChapterRef.VerseRef.Range != nil {
				ref.VerseEnd = *parsed.ChapterRef.VerseRef.Range
			}
		}
	}

	return ref, nil
}

// String returns the OSIS ID representation of the reference.
func (r *Ref) String() string {
	if r.OSISID != "" {
		return r.OSISID
	}

	var sb strings.Builder
	sb.WriteString(r.Book)

	if r.Chapter > 0 {
		sb.WriteString(".")
		sb.WriteString(strconv.Itoa(r.Chapter))

		if r.Verse > 0 {
			sb.WriteString(".")
			sb.WriteString(strconv.Itoa(r.Verse))
			sb.WriteString(r.SubVerse)

			if r.VerseEnd > 0 {
				sb.WriteString("-")
				sb.WriteString(strconv.Itoa(r.VerseEnd))
			}
		}
	}

	return sb.String()
}

// IsRange reports whether the reference spans multiple verses.
func (r *Ref) IsRange() bool {
	return r.VerseEnd > 0 && r.VerseEnd > r.Verse
}

// Contains reports whether this reference contains the other. A
// whole-book reference contains every chapter, a whole-chapter
// reference every verse, and a range every verse inside it.
func (r *Ref) Contains(other *Ref) bool {
	if r.Book != other.Book {
		return false
	}

	if r.Chapter == 0 {
		return true
	}
	if r.Chapter != other.Chapter {
		return false
	}

	if r.Verse == 0 {
		return true
	}

	if r.IsRange() {
		return other.Verse >= r.Verse && other.Verse <= r.VerseEnd
	}
	return r.Verse == other.Verse
}
