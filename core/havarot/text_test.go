package havarot

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/FocuswithJustin/havarot/core/errors"
)

func TestNewTextValidation(t *testing.T) {
	t.Run("no niqqud", func(t *testing.T) {
		_, err := NewText("אבג", nil)
		if err == nil {
			t.Fatal("NewText accepted unpointed text")
		}
		if !errors.Is(err, errors.ErrNoVowels) {
			t.Errorf("error %v does not wrap ErrNoVowels", err)
		}
		var verr *errors.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("error %v is not a ValidationError", err)
		}
		if verr.Field != "text" {
			t.Errorf("Field = %q, want %q", verr.Field, "text")
		}
	})

	t.Run("no niqqud allowed", func(t *testing.T) {
		text, err := NewText("אבג", &Options{AllowNoNiqqud: true})
		if err != nil {
			t.Fatal(err)
		}
		if len(text.Words()) != 1 || len(text.Syllables()) != 1 {
			t.Errorf("words = %d, syllables = %d, want 1 and 1",
				len(text.Words()), len(text.Syllables()))
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if _, err := NewText("", nil); !errors.Is(err, errors.ErrNoVowels) {
			t.Errorf("error = %v, want ErrNoVowels", err)
		}
	})

	t.Run("whitespace only allowed", func(t *testing.T) {
		text, err := NewText("   ", &Options{AllowNoNiqqud: true})
		if err != nil {
			t.Fatal(err)
		}
		if len(text.Words()) != 0 || text.Text() != "" {
			t.Errorf("words = %d, text = %q, want none", len(text.Words()), text.Text())
		}
	})

	t.Run("unknown schema", func(t *testing.T) {
		_, err := NewText("מֶלֶךְ", &Options{Schema: "klingon"})
		var verr *errors.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("error %v is not a ValidationError", err)
		}
		if verr.Field != "schema" {
			t.Errorf("Field = %q, want %q", verr.Field, "schema")
		}
		if errors.Is(err, errors.ErrNoVowels) {
			t.Error("schema error must not wrap ErrNoVowels")
		}
	})

	t.Run("unknown holem haser mode", func(t *testing.T) {
		_, err := NewText("מֶלֶךְ", &Options{HolemHaser: "bogus"})
		var verr *errors.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("error %v is not a ValidationError", err)
		}
		if verr.Field != "holemHaser" {
			t.Errorf("Field = %q, want %q", verr.Field, "holemHaser")
		}
	})
}

func TestTextRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		words int
	}{
		{"single word", "מֶלֶךְ", 1},
		{"maqqef compound", "כָּל־הָעָם", 2},
		{"verse", "בְּרֵאשִׁית בָּרָא אֱלֹהִים", 3},
		{"accents and metegs", "הַֽ֭יְחָבְרְךָ", 1},
		{"double space", "שָׁלוֹם  רָב", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := NewText(tt.input, nil)
			if err != nil {
				t.Fatal(err)
			}
			if got := len(text.Words()); got != tt.words {
				t.Fatalf("words = %d, want %d", got, tt.words)
			}
			var b strings.Builder
			for _, w := range text.Words() {
				b.WriteString(w.Text())
				b.WriteString(w.Trailer())
			}
			if b.String() != text.Text() {
				t.Errorf("words rejoin to %q, want %q", b.String(), text.Text())
			}
		})
	}
}

func TestMaqqefSplit(t *testing.T) {
	text, err := NewText("כָּל־הָעָם", nil)
	if err != nil {
		t.Fatal(err)
	}
	words := text.Words()
	if len(words) != 2 {
		t.Fatalf("words = %d, want 2", len(words))
	}
	// kaf, dagesh, qamats qatan, lamed in mark order
	if got := words[0].Text(); got != "כׇּל" {
		t.Errorf("word 0 = %q, want kol with qamats qatan", got)
	}
	if got := words[0].Trailer(); got != "־" {
		t.Errorf("word 0 trailer = %q, want maqqef", got)
	}
	if got := words[1].Text(); got != "הָעָם" {
		t.Errorf("word 1 = %q, want %q", got, "הָעָם")
	}
	if got := words[1].Trailer(); got != "" {
		t.Errorf("word 1 trailer = %q, want empty", got)
	}
	// trailers are not characters of any word
	if got := len(text.Chars()); got != 9 {
		t.Errorf("chars = %d, want 9", got)
	}
}

func TestWordNavigation(t *testing.T) {
	text, err := NewText("מֶלֶךְ מֶלֶךְ", nil)
	if err != nil {
		t.Fatal(err)
	}
	words := text.Words()
	if len(words) != 2 {
		t.Fatalf("words = %d, want 2", len(words))
	}
	first := words[0].Syllables()
	second := words[1].Syllables()
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("syllables = %d and %d, want 2 and 2", len(first), len(second))
	}

	if got := first[0].Next(); got != first[1] {
		t.Errorf("Next within word = %v, want the second syllable", got)
	}
	if got := first[1].Previous(); got != first[0] {
		t.Errorf("Previous within word = %v, want the first syllable", got)
	}
	if got := first[1].Next(); got != nil {
		t.Errorf("Next at word end = %q, want nil", got.Text())
	}
	if got := second[0].Previous(); got != nil {
		t.Errorf("Previous at word start = %q, want nil", got.Text())
	}
}

func TestStandaloneSyllable(t *testing.T) {
	clusters := buildClusters(newChars(sequenceRunes([]rune("לֶךְ"))))
	syl := NewSyllable(clusters, &SyllableFlags{Closed: true, Final: true})

	if syl.Word() != nil {
		t.Error("standalone syllable has a word")
	}
	if syl.Next() != nil || syl.Previous() != nil {
		t.Error("standalone syllable has neighbors")
	}
	if got := syl.Text(); got != "לֶךְ" {
		t.Errorf("Text = %q, want %q", got, "לֶךְ")
	}
	if !syl.IsClosed() || !syl.IsFinal() || syl.IsAccented() {
		t.Errorf("flags = %v/%v/%v, want closed and final only",
			syl.IsClosed(), syl.IsAccented(), syl.IsFinal())
	}

	st, err := syl.Structure()
	if err != nil {
		t.Fatal(err)
	}
	if st.Onset() != "ל" || st.Nucleus() != "ֶ" || st.Coda() != "ך" {
		t.Errorf("structure = %q/%q/%q, want ל/segol/ך",
			st.Onset(), st.Nucleus(), st.Coda())
	}

	bare := NewSyllable(buildClusters(newChars(sequenceRunes([]rune("בָּא")))), nil)
	if bare.IsClosed() || bare.IsAccented() || bare.IsFinal() {
		t.Error("nil flags must leave every flag false")
	}
}

func TestVowelNames(t *testing.T) {
	tests := []struct {
		name  string
		input string
		syl   int
		want  string
	}{
		{"shureq", "קוּם", 0, "SHUREQ"},
		{"patah", "מַדּוּעַ", 0, "PATAH"},
		{"shureq after onset", "מַדּוּעַ", 1, "SHUREQ"},
		{"qamats qatan", "צָהֳרַיִם", 0, "QAMATS_QATAN"},
		{"hataf qamats", "צָהֳרַיִם", 1, "HATAF_QAMATS"},
		{"qamats under meteg", "חָֽכְמָה", 0, "QAMATS"},
		{"segol", "מֶלֶךְ", 1, "SEGOL"},
		{"vocal sheva", "שְׁתַּיִם", 0, "SHEVA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syl := syllableAt(t, tt.input, tt.syl)
			if got := syl.VowelName(); got != tt.want {
				t.Errorf("VowelName(%q[%d]) = %q, want %q", tt.input, tt.syl, got, tt.want)
			}
		})
	}
}

func TestHasVowelName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		syl   int
		vowel string
		want  bool
	}{
		{"segol present", "מֶלֶךְ", 1, "SEGOL", true},
		{"silent sheva not counted", "מֶלֶךְ", 1, "SHEVA", false},
		{"nucleus sheva counted", "שְׁתַּיִם", 0, "SHEVA", true},
		{"shureq flagged", "קוּם", 0, "SHUREQ", true},
		{"holam vav is not shureq", "עָוֹן", 1, "SHUREQ", false},
		{"holam present", "עָוֹן", 1, "HOLAM", true},
		{"absent vowel", "מֶלֶךְ", 0, "HIRIQ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syl := syllableAt(t, tt.input, tt.syl)
			got, err := syl.HasVowelName(tt.vowel)
			if err != nil {
				t.Fatalf("HasVowelName(%q) error: %v", tt.vowel, err)
			}
			if got != tt.want {
				t.Errorf("HasVowelName(%q[%d], %q) = %v, want %v",
					tt.input, tt.syl, tt.vowel, got, tt.want)
			}
		})
	}
}

func TestHasVowelNameUnknown(t *testing.T) {
	syl := syllableAt(t, "מֶלֶךְ", 0)
	ok, err := syl.HasVowelName("TEST")
	if ok || err == nil {
		t.Fatalf("HasVowelName(TEST) = %v, %v, want false and an error", ok, err)
	}
	if !errors.Is(err, errors.ErrUnknownName) {
		t.Errorf("error %v does not wrap ErrUnknownName", err)
	}
	var uerr *errors.UnknownNameError
	if !errors.As(err, &uerr) {
		t.Fatalf("error %v is not an UnknownNameError", err)
	}
	if uerr.Name != "TEST" {
		t.Errorf("Name = %q, want %q", uerr.Name, "TEST")
	}
}

func TestSchemaPresets(t *testing.T) {
	t.Run("tiberian", func(t *testing.T) {
		opts := &Options{Schema: SchemaTiberian}
		text, err := NewText("וּשְׁמֹר", opts)
		if err != nil {
			t.Fatal(err)
		}
		// without the waw shureq heuristic the sheva stays silent
		if got := len(text.Syllables()); got != 2 {
			t.Errorf("syllables = %d, want 2", got)
		}
		eff := text.Options()
		if !eff.Sqnmlvy || eff.WawShureq || eff.LongVowels || eff.QametsQatan {
			t.Errorf("effective options = %+v, want sqnmlvy only", eff)
		}
		if opts.Sqnmlvy || opts.WawShureq {
			t.Error("caller's options were mutated")
		}
	})

	t.Run("traditional", func(t *testing.T) {
		text, err := NewText("וּשְׁמֹר", &Options{Schema: SchemaTraditional})
		if err != nil {
			t.Fatal(err)
		}
		if got := len(text.Syllables()); got != 3 {
			t.Errorf("syllables = %d, want 3", got)
		}
	})

	t.Run("zero options", func(t *testing.T) {
		text, err := NewText("חָכְמָה", &Options{})
		if err != nil {
			t.Fatal(err)
		}
		if got := text.Text(); got != "חָכְמָה" {
			t.Errorf("Text = %q, want the qamats untouched", got)
		}
	})

	t.Run("default qamats qatan", func(t *testing.T) {
		text, err := NewText("חָכְמָה", nil)
		if err != nil {
			t.Fatal(err)
		}
		if got := text.Text(); got != "חׇכְמָה" {
			t.Errorf("Text = %q, want the qamats rewritten", got)
		}
	})
}

func TestTextOriginal(t *testing.T) {
	input := "  מֶלֶךְ  "
	text, err := NewText(input, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := text.Original(); got != input {
		t.Errorf("Original = %q, want %q", got, input)
	}
	if got := text.Text(); got != "מֶלֶךְ" {
		t.Errorf("Text = %q, want trimmed", got)
	}
}

func TestMarshalJSON(t *testing.T) {
	t.Run("divine name", func(t *testing.T) {
		text, err := NewText("יְהוָה", nil)
		if err != nil {
			t.Fatal(err)
		}
		b, err := json.Marshal(text)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(b), `"structure":null`) {
			t.Errorf("marshal = %s, want a null structure", b)
		}
		if !strings.Contains(string(b), `"isDivineName":true`) {
			t.Errorf("marshal = %s, want isDivineName", b)
		}
	})

	t.Run("regular word", func(t *testing.T) {
		text, err := NewText("מֶלֶךְ", nil)
		if err != nil {
			t.Fatal(err)
		}
		b, err := json.Marshal(text)
		if err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{`"coda":"ך"`, `"vowelName":"SEGOL"`, `"isClosed":true`} {
			if !strings.Contains(string(b), want) {
				t.Errorf("marshal = %s, missing %s", b, want)
			}
		}
	})
}
