package search

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// IgnoreMatcher prunes directory traversal using gitignore-style patterns.
// A nil *IgnoreMatcher matches nothing.
type IgnoreMatcher struct {
	patterns *gitignore.GitIgnore
}

// NewIgnoreMatcher compiles patterns, skipping blank lines and comments.
func NewIgnoreMatcher(lines []string) *IgnoreMatcher {
	var patterns []string
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		patterns = append(patterns, l)
	}
	if len(patterns) == 0 {
		return nil
	}
	return &IgnoreMatcher{patterns: gitignore.CompileIgnoreLines(patterns...)}
}

// LoadIgnoreFile reads a gitignore-syntax file.
func LoadIgnoreFile(path string) (*IgnoreMatcher, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ignore file %s: %w", path, err)
	}
	return NewIgnoreMatcher(SplitLines(string(b))), nil
}

// Matches reports whether p, found while traversing root, is ignored.
func (m *IgnoreMatcher) Matches(root, p string, isDir bool) bool {
	if m == nil || m.patterns == nil {
		return false
	}
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if isDir {
		rel += "/"
	}
	return m.patterns.MatchesPath(rel)
}
