package console

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gopak/mgrep/internal/search"
)

// HighlightColors lists the accepted highlight_color values.
var HighlightColors = []string{"red", "green", "yellow", "blue", "magenta", "cyan"}

var colorAttrs = map[string]color.Attribute{
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
}

// NewHighlighter returns an Emphasizer that wraps matches in the named color.
// Escape codes are emitted even when stdout is not a terminal. An empty name
// means red.
func NewHighlighter(name string) (search.Emphasizer, error) {
	if name == "" {
		name = "red"
	}
	attr, ok := colorAttrs[name]
	if !ok {
		return nil, fmt.Errorf("unknown highlight color %q", name)
	}
	c := color.New(attr)
	c.EnableColor()
	return search.EmphasizerFunc(func(s string) string { return c.Sprint(s) }), nil
}
