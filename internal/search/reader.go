package search

import (
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// TextReader reads a whole file as text.
type TextReader interface {
	ReadText(path string) (string, error)
}

// FileReader is the os-backed TextReader. Content that is not valid UTF-8
// fails with ErrUnreadableFile; a leading byte order mark is dropped.
type FileReader struct{}

func (FileReader) ReadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", &PathError{Path: path, Err: err}
	}
	if !utf8.Valid(b) {
		return "", &PathError{Path: path, Err: ErrUnreadableFile}
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(b)
	if err != nil {
		return "", &PathError{Path: path, Err: ErrUnreadableFile}
	}
	return string(out), nil
}

// SplitLines splits text on "\n", dropping a trailing "\r" from each line. A
// final newline does not produce an empty last line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
