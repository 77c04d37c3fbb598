package catalog

import (
	"errors"
	"strings"
	"unicode"
)

// Reasons reported to an Observer when a row is discarded.
var (
	ErrTooFewColumns  = errors.New("fewer than 3 columns")
	ErrEmptyField     = errors.New("artist, title or video id is empty")
	ErrMalformedField = errors.New("malformed quoted field")
)

// minColumns is artist, title, video id.
const minColumns = 3

// Observer receives diagnostics from the parser. It never affects the result.
type Observer interface {
	RowDiscarded(line int, reason error)
}

// Parser turns decoded CSV text into songs. The zero value is ready to use.
type Parser struct {
	Observer Observer
}

// Parse is shorthand for a Parser without an observer.
func Parse(text string) []Song {
	var p Parser
	return p.Parse(text)
}

// Parse reads text as a header line followed by artist,title,videoId rows.
// The header is skipped without validation. Rows with fewer than three
// columns, or with an empty artist, title or video id, are dropped. The
// result keeps source order and is never nil.
func (p *Parser) Parse(text string) []Song {
	body := strings.TrimLeftFunc(text, unicode.IsSpace)
	// Observer line numbers count from the start of text, including any
	// blank lines trimmed above the header.
	offset := strings.Count(text[:len(text)-len(body)], "\n")

	lines := strings.Split(strings.TrimRightFunc(body, unicode.IsSpace), "\n")
	songs := make([]Song, 0, len(lines))

	for i, line := range lines {
		if i == 0 {
			continue
		}
		song, err := parseRow(strings.TrimSuffix(line, "\r"))
		if err != nil {
			if p.Observer != nil {
				p.Observer.RowDiscarded(offset+i+1, err)
			}
			continue
		}
		songs = append(songs, song)
	}
	return songs
}

func parseRow(line string) (Song, error) {
	cols := splitColumns(line)
	if len(cols) < minColumns {
		return Song{}, ErrTooFewColumns
	}

	var fields [minColumns]string
	for i := range fields {
		if cols[i].malformed {
			return Song{}, ErrMalformedField
		}
		fields[i] = normalize(cols[i].value)
		if fields[i] == "" {
			return Song{}, ErrEmptyField
		}
	}
	return Song{Artist: fields[0], Title: fields[1], VideoID: fields[2]}, nil
}

type column struct {
	value     string
	malformed bool
}

// splitColumns tokenizes one line. A column is either a quoted span, which
// runs to the next double quote and may contain commas, or a bare run of
// characters up to the next comma. Escaped quotes ("") are not supported:
// a quoted span followed by anything other than whitespace and a comma is
// malformed, as is a bare column containing a quote.
func splitColumns(line string) []column {
	var cols []column
	rest := line
	for {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)

		var col column
		if strings.HasPrefix(rest, `"`) {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				col.malformed = true
				rest = skipToComma(rest)
			} else {
				col.value = rest[:end+2]
				rest = strings.TrimLeftFunc(rest[end+2:], unicode.IsSpace)
				if rest != "" && rest[0] != ',' {
					col.malformed = true
					rest = skipToComma(rest)
				}
			}
		} else {
			n := strings.IndexByte(rest, ',')
			if n < 0 {
				n = len(rest)
			}
			col.value = rest[:n]
			col.malformed = strings.ContainsRune(col.value, '"')
			rest = rest[n:]
		}
		cols = append(cols, col)

		if rest == "" {
			return cols
		}
		// rest starts with the separating comma.
		rest = rest[1:]
	}
}

func skipToComma(s string) string {
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[i:]
	}
	return ""
}

// normalize trims whitespace and strips one leading and one trailing quote.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
