package corpus

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/havarot/core/errors"
)

// xzMagic is the xz stream header magic number.
var xzMagic = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}

// utf8BOM is stripped before format sniffing.
var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// ReadFile loads one corpus file. xz-compressed files are decompressed
// transparently, detected by magic number rather than extension. XML
// content is parsed as OSIS; anything else is split into line units.
func ReadFile(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}

	data, err := decompress(path, raw)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var doc *Document
	if looksLikeXML(data) {
		doc, err = parseOSIS(path, data)
		if err != nil {
			return nil, err
		}
	} else {
		doc = parseText(path, data)
	}
	doc.Hash = hashBytes(raw)
	return doc, nil
}

// hashBytes is the hex BLAKE3 digest of the file as stored on disk.
func hashBytes(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// decompress unwraps an xz stream when the magic number is present.
func decompress(path string, data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, xzMagic) {
		return data, nil
	}

	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewIO("decompress", path, err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewIO("decompress", path, err)
	}
	return out, nil
}

// looksLikeXML sniffs for a leading XML declaration or root element.
func looksLikeXML(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return bytes.HasPrefix(trimmed, []byte("<"))
}

// parseText splits plain text into one unit per non-empty line, keyed
// by the 1-based line number in the file.
func parseText(path string, data []byte) *Document {
	doc := &Document{Path: path, Format: FormatText}

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		doc.Units = append(doc.Units, Unit{
			Ref:  fmt.Sprintf("line:%d", i+1),
			Text: line,
		})
	}
	return doc
}
