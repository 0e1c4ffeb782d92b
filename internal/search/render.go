package search

import (
	"strconv"
	"strings"

	"github.com/gopak/mgrep/internal/config"
)

// Emphasizer wraps a matched substring for display.
type Emphasizer interface {
	Emphasize(s string) string
}

// EmphasizerFunc adapts a plain function to Emphasizer.
type EmphasizerFunc func(string) string

func (f EmphasizerFunc) Emphasize(s string) string { return f(s) }

type Renderer struct {
	opts     config.SearchOptions
	emphasis Emphasizer
}

// NewRenderer returns a Renderer. emphasis may be nil when highlighting is off.
func NewRenderer(opts config.SearchOptions, emphasis Emphasizer) *Renderer {
	return &Renderer{opts: opts, emphasis: emphasis}
}

// Render composes label, 1-based line number and line text. index is the
// 0-based position of the line within its file.
func (r *Renderer) Render(line string, d Decision, index int, label string) string {
	var b strings.Builder
	if r.opts.ShowFileNames {
		b.WriteString(label)
		b.WriteString(": ")
	}
	if r.opts.ShowLineNumbers {
		b.WriteString(strconv.Itoa(index + 1))
		b.WriteString(": ")
	}
	if r.opts.Highlight && r.emphasis != nil && d.Span != nil && visibleSpan(*d.Span, line) {
		s := *d.Span
		b.WriteString(line[:s.Start])
		b.WriteString(r.emphasis.Emphasize(line[s.Start:s.End]))
		b.WriteString(line[s.End:])
	} else {
		b.WriteString(line)
	}
	return b.String()
}

// visibleSpan reports whether s covers at least one byte of line. An empty
// span, as produced by an empty query, gets no emphasis.
func visibleSpan(s Span, line string) bool {
	return 0 <= s.Start && s.Start < s.End && s.End <= len(line)
}
