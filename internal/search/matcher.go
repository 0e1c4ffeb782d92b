package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gopak/mgrep/internal/config"
)

// Span is a half-open byte range [Start, End) into the original line.
type Span struct {
	Start int
	End   int
}

// Decision is the outcome of evaluating one line. Span is nil for skipped
// lines and for inverted reports.
type Decision struct {
	Report bool
	Span   *Span
}

// Evaluate decides whether line is reported under opts.
//
// An empty query is found at offset 0 of every line, so without -v every line
// is reported and with -v none is.
func Evaluate(line string, opts config.SearchOptions) Decision {
	span, found := locate(line, opts.Query, opts.CaseSensitive)
	switch {
	case !opts.InvertMatch && found:
		return Decision{Report: true, Span: &span}
	case opts.InvertMatch && !found:
		return Decision{Report: true}
	default:
		return Decision{}
	}
}

func locate(line, query string, caseSensitive bool) (Span, bool) {
	if caseSensitive {
		i := strings.Index(line, query)
		if i < 0 {
			return Span{}, false
		}
		return Span{Start: i, End: i + len(query)}, true
	}
	return indexFold(line, query)
}

// indexFold finds the leftmost occurrence of needle in s comparing runes by
// their simple lowercase mapping. Offsets refer to s itself: lowercasing may
// change a rune's encoded width, so no lowered copy is ever indexed.
func indexFold(s, needle string) (Span, bool) {
	if needle == "" {
		return Span{}, true
	}
	for i := 0; i < len(s); {
		if n, ok := hasPrefixFold(s[i:], needle); ok {
			return Span{Start: i, End: i + n}, true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return Span{}, false
}

// hasPrefixFold reports whether s starts with prefix under lowercase
// comparison, and how many bytes of s the match consumed.
func hasPrefixFold(s, prefix string) (int, bool) {
	i := 0
	for _, pr := range prefix {
		if i >= len(s) {
			return 0, false
		}
		sr, size := utf8.DecodeRuneInString(s[i:])
		if sr != pr && unicode.ToLower(sr) != unicode.ToLower(pr) {
			return 0, false
		}
		i += size
	}
	return i, true
}
