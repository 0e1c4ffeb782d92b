package search

import (
	"fmt"
	"io"

	"github.com/gopak/mgrep/internal/config"
)

// FileResult counts the lines reported for one scanned file.
type FileResult struct {
	Path     string
	Reported int
}

// Summary describes a completed run.
type Summary struct {
	Files    []FileResult
	Reported int
	Errors   int
}

type Searcher struct {
	opts     config.SearchOptions
	resolver *Resolver
	reader   TextReader
	renderer *Renderer
	out      io.Writer
	onError  func(error)
}

// Option customizes a Searcher.
type Option func(*Searcher)

func WithReader(r TextReader) Option { return func(s *Searcher) { s.reader = r } }

func WithIgnore(m *IgnoreMatcher) Option { return func(s *Searcher) { s.resolver.Ignore = m } }

func WithEmphasis(e Emphasizer) Option {
	return func(s *Searcher) { s.renderer = NewRenderer(s.opts, e) }
}

// WithErrorHandler receives every non-fatal per-path or per-file failure.
func WithErrorHandler(fn func(error)) Option { return func(s *Searcher) { s.onError = fn } }

func New(opts config.SearchOptions, out io.Writer, options ...Option) *Searcher {
	s := &Searcher{
		opts:     opts,
		resolver: &Resolver{Recursive: opts.Recursive},
		reader:   FileReader{},
		renderer: NewRenderer(opts, nil),
		out:      out,
		onError:  func(error) {},
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// Run scans every path argument in order, writing each reported line as soon
// as it is rendered. Failures on one path or file are passed to the error
// handler and do not stop the run.
func (s *Searcher) Run() (Summary, error) {
	var sum Summary
	for _, arg := range s.opts.FilePaths {
		for p, err := range s.resolver.Files(arg) {
			if err != nil {
				sum.Errors++
				s.onError(err)
				continue
			}
			n, err := s.searchFile(p)
			if err != nil {
				if isWriteError(err) {
					return sum, err
				}
				sum.Errors++
				s.onError(err)
				continue
			}
			sum.Files = append(sum.Files, FileResult{Path: p, Reported: n})
			sum.Reported += n
		}
	}
	return sum, nil
}

type writeError struct{ err error }

func (e writeError) Error() string { return "write output: " + e.err.Error() }

func (e writeError) Unwrap() error { return e.err }

func isWriteError(err error) bool {
	_, ok := err.(writeError)
	return ok
}

func (s *Searcher) searchFile(path string) (int, error) {
	text, err := s.reader.ReadText(path)
	if err != nil {
		return 0, err
	}
	reported := 0
	for i, line := range SplitLines(text) {
		d := Evaluate(line, s.opts)
		if !d.Report {
			continue
		}
		if _, err := fmt.Fprintln(s.out, s.renderer.Render(line, d, i, path)); err != nil {
			return reported, writeError{err: err}
		}
		reported++
	}
	return reported, nil
}
