package havarot

import "encoding/json"

// JSON shapes for the analysis graph. Structure is null for a
// syllable without a valid onset-nucleus-coda shape, such as the
// Divine Name; everything else serializes as written.

type textJSON struct {
	Original string      `json:"original"`
	Text     string      `json:"text"`
	Words    []*wordJSON `json:"words"`
}

type wordJSON struct {
	Text         string          `json:"text"`
	Trailer      string          `json:"trailer,omitempty"`
	IsDivineName bool            `json:"isDivineName,omitempty"`
	Syllables    []*syllableJSON `json:"syllables"`
}

type syllableJSON struct {
	Text       string         `json:"text"`
	IsClosed   bool           `json:"isClosed"`
	IsAccented bool           `json:"isAccented"`
	IsFinal    bool           `json:"isFinal"`
	Vowel      string         `json:"vowel,omitempty"`
	VowelName  string         `json:"vowelName,omitempty"`
	Structure  *structureJSON `json:"structure"`
	Parts      []*partJSON    `json:"parts"`
	Clusters   []*clusterJSON `json:"clusters,omitempty"`
}

type structureJSON struct {
	Onset            string `json:"onset"`
	Nucleus          string `json:"nucleus"`
	Coda             string `json:"coda"`
	CodaNoGemination string `json:"codaNoGemination"`
}

type partJSON struct {
	Type PartType      `json:"type"`
	Role ConsonantRole `json:"role,omitempty"`
	Text string        `json:"text"`
}

type clusterJSON struct {
	Text     string `json:"text"`
	IsShureq bool   `json:"isShureq,omitempty"`
	IsMater  bool   `json:"isMater,omitempty"`
}

// MarshalJSON serializes the text with its full word and syllable
// analysis.
func (t *Text) MarshalJSON() ([]byte, error) {
	doc := textJSON{
		Original: t.original,
		Text:     t.text,
		Words:    make([]*wordJSON, len(t.words)),
	}
	for i, w := range t.words {
		doc.Words[i] = wordDoc(w)
	}
	return json.Marshal(doc)
}

// MarshalJSON serializes the word and its syllables.
func (w *Word) MarshalJSON() ([]byte, error) {
	return json.Marshal(wordDoc(w))
}

// MarshalJSON serializes the syllable with its flags, vowel, parts,
// and structure.
func (s *Syllable) MarshalJSON() ([]byte, error) {
	return json.Marshal(syllableDoc(s))
}

func wordDoc(w *Word) *wordJSON {
	doc := &wordJSON{
		Text:         w.text,
		Trailer:      w.trailer,
		IsDivineName: w.IsDivineName(),
		Syllables:    make([]*syllableJSON, len(w.syllables)),
	}
	for i, s := range w.syllables {
		doc.Syllables[i] = syllableDoc(s)
	}
	return doc
}

func syllableDoc(s *Syllable) *syllableJSON {
	doc := &syllableJSON{
		Text:       s.Text(),
		IsClosed:   s.isClosed,
		IsAccented: s.isAccented,
		IsFinal:    s.isFinal,
		Vowel:      s.Vowel(),
		VowelName:  s.VowelName(),
	}
	if st, err := s.Structure(); err == nil {
		doc.Structure = &structureJSON{
			Onset:            st.Onset(),
			Nucleus:          st.Nucleus(),
			Coda:             st.Coda(),
			CodaNoGemination: st.CodaNoGemination(),
		}
	}
	for _, p := range s.Parts() {
		doc.Parts = append(doc.Parts, &partJSON{Type: p.partType, Role: p.role, Text: p.Text()})
	}
	for _, c := range s.clusters {
		doc.Clusters = append(doc.Clusters, &clusterJSON{Text: c.Text(), IsShureq: c.isShureq, IsMater: c.isMater})
	}
	return doc
}
