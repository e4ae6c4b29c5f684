package corpus

import (
	"strings"

	"github.com/FocuswithJustin/havarot/core/errors"
	"github.com/FocuswithJustin/havarot/core/xml"
)

// parseOSIS extracts verse units from an OSIS document. Both container
// verses (text inside the element) and milestone pairs (sID/eID markers
// bracketing sibling content) are supported.
func parseOSIS(path string, data []byte) (*Document, error) {
	if err := xml.Check(data); err != nil {
		return nil, errors.NewParse("OSIS", path, err.Error())
	}

	doc, err := xml.Parse(data)
	if err != nil {
		return nil, errors.NewParse("OSIS", path, err.Error())
	}

	out := &Document{Path: path, Format: FormatOSIS}
	if text, err := doc.XPathFirst("//osisText"); err == nil && text != nil {
		out.Lang = text.Attr("lang")
	}

	verses, err := doc.XPath("//verse")
	if err != nil {
		return nil, errors.NewParse("OSIS", path, err.Error())
	}

	for _, v := range verses {
		ref := v.Attr("osisID")
		if ref == "" {
			ref = v.Attr("sID")
		}
		if ref == "" {
			// eID markers close a span opened elsewhere
			continue
		}

		text := collapse(v.InnerText())
		if text == "" {
			text = collapse(milestoneText(v))
		}
		if text == "" {
			continue
		}

		out.Units = append(out.Units, Unit{Ref: ref, Text: text})
	}

	return out, nil
}

// milestoneText joins the sibling content between a verse start marker
// and the next verse element.
func milestoneText(start *xml.Node) string {
	var b strings.Builder
	for sib := start.Next(); sib != nil; sib = sib.Next() {
		if sib.IsElement() && sib.Name() == "verse" {
			break
		}
		b.WriteString(sib.InnerText())
	}
	return b.String()
}

// collapse squeezes whitespace runs to single spaces and trims the ends.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
