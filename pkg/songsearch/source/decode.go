package source

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is used when no encoding is configured.
const DefaultEncoding = "utf-8"

// aliases covers names spreadsheet exports use that the WHATWG index lacks.
var aliases = map[string]encoding.Encoding{
	"cp949": korean.EUCKR,
	"ms949": korean.EUCKR,
	"uhc":   korean.EUCKR,
}

// LookupEncoding resolves an encoding name such as "utf-8", "euc-kr" or
// "cp949". UTF-8 decoding strips a leading byte order mark.
func LookupEncoding(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	}
	if enc, ok := aliases[key]; ok {
		return enc, nil
	}
	enc, err := htmlindex.Get(key)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

// Decode converts raw catalog bytes to text.
func Decode(raw []byte, enc encoding.Encoding) (string, error) {
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decoding catalog: %w", err)
	}
	return string(out), nil
}
