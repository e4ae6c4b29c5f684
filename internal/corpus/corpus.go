// Package corpus ingests Hebrew text corpora for analysis. Corpus
// files are located by doublestar glob patterns and may be plain text
// (one unit per line), OSIS XML (one unit per verse), or either of
// those wrapped in an xz stream.
package corpus

// Corpus file formats.
const (
	FormatText = "text"
	FormatOSIS = "osis"
)

// Unit is one analyzable stretch of text keyed by its reference.
// Plain-text units are keyed "line:N"; OSIS units carry the verse
// osisID verbatim (e.g. "Gen.1.1").
type Unit struct {
	Ref  string `json:"ref"`
	Text string `json:"text"`
}

// Document is a corpus file reduced to its units. Hash identifies the
// file content as stored on disk (before any decompression).
type Document struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Lang   string `json:"lang,omitempty"`
	Hash   string `json:"hash"`
	Units  []Unit `json:"units"`
}

// Load expands the glob patterns and reads every matched file.
func Load(patterns []string) ([]*Document, error) {
	files, err := ExpandGlobs(patterns)
	if err != nil {
		return nil, err
	}

	docs := make([]*Document, 0, len(files))
	for _, f := range files {
		doc, err := ReadFile(f)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
