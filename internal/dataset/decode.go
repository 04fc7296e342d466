package dataset

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encoding selects how source bytes are turned into text.
type Encoding string

// Supported encodings.
const (
	// EncodingAuto keeps valid UTF-8 and otherwise decodes Windows-1252.
	EncodingAuto   Encoding = "auto"
	EncodingLatin1 Encoding = "latin1"
	EncodingUTF8   Encoding = "utf-8"
)

// Valid reports whether the encoding is supported.
func (e Encoding) Valid() bool {
	switch e {
	case EncodingAuto, EncodingLatin1, EncodingUTF8:
		return true
	default:
		return false
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decode converts raw source bytes to UTF-8. It never rejects input because
// of individual byte values.
func decode(raw []byte, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingAuto, "":
		if utf8.Valid(raw) {
			return bytes.TrimPrefix(raw, utf8BOM), nil
		}
		return transformBytes(charmap.Windows1252, raw)
	case EncodingLatin1:
		return transformBytes(charmap.ISO8859_1, raw)
	case EncodingUTF8:
		return bytes.ToValidUTF8(bytes.TrimPrefix(raw, utf8BOM), []byte("\uFFFD")), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}
}

func transformBytes(cm *charmap.Charmap, raw []byte) ([]byte, error) {
	out, _, err := transform.Bytes(cm.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", cm, err)
	}
	return out, nil
}
