// Package encoding normalizes bank CSV exports to UTF-8. Dutch bank exports
// show up as UTF-8, UTF-16 with BOM, or Windows-1252 depending on which
// download button was used.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const peekSize = 4096

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// NewUTF8Reader wraps r in a reader that yields UTF-8 regardless of the
// source encoding. A BOM decides immediately; otherwise valid UTF-8 passes
// through, chardet guesses for the rest, and Windows-1252 is the fallback.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(head, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	if len(head) >= 2 && (head[0] == 0xFF && head[1] == 0xFE || head[0] == 0xFE && head[1] == 0xFF) {
		// Endianness comes from the BOM itself.
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, dec), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	return transform.NewReader(br, guessDecoder(head)), nil
}

// guessDecoder picks a single-byte decoder for content that is not valid
// UTF-8. Windows-1252 is a superset of ISO-8859-1 and the safest default for
// Western European bank exports.
func guessDecoder(head []byte) transform.Transformer {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return charmap.Windows1252.NewDecoder()
	}

	switch result.Charset {
	case "ISO-8859-9":
		return charmap.ISO8859_9.NewDecoder()
	default:
		return charmap.Windows1252.NewDecoder()
	}
}
