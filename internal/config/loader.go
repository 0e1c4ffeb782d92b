package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultDir returns the directory holding mgrep's YAML files.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mgrep")
}

// FilesIn lists the YAML files of dir. A missing directory yields no files.
func FilesIn(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return sortedYAML(files), nil
}

// LoadFromFiles merges YAML files in sorted order; later files switch on
// additional defaults and override scalar settings.
func LoadFromFiles(files []string) (Config, error) {
	combined := Config{}
	for _, f := range sortedYAML(files) {
		b, err := os.ReadFile(f)
		if err != nil {
			return Config{}, err
		}
		part, err := decode(b)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", f, err)
		}
		combined = mergeConfig(combined, part)
	}
	return combined, nil
}

// Load merges files like LoadFromFiles and validates the result.
func Load(files []string) (Config, error) {
	cfg, err := LoadFromFiles(files)
	if err != nil {
		return Config{}, err
	}
	if err := Validate(cfg, sortedYAML(files)...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes a single YAML document.
func Parse(b []byte) (Config, error) { return decode(b) }

// decode rejects unknown keys. An empty document decodes to the zero Config.
func decode(b []byte) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return c, nil
}

func sortedYAML(files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		lf := strings.ToLower(f)
		if strings.HasSuffix(lf, ".yaml") || strings.HasSuffix(lf, ".yml") {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

func mergeConfig(base, overlay Config) Config {
	out := base
	out.Defaults = mergeDefaults(base.Defaults, overlay.Defaults)
	if overlay.HighlightColor != "" {
		out.HighlightColor = overlay.HighlightColor
	}
	if overlay.IgnoreFile != "" {
		out.IgnoreFile = overlay.IgnoreFile
	}
	out.Log = mergeLog(base.Log, overlay.Log)
	return out
}

func mergeDefaults(a, b Defaults) Defaults {
	return Defaults{
		IgnoreCase:  a.IgnoreCase || b.IgnoreCase,
		LineNumbers: a.LineNumbers || b.LineNumbers,
		InvertMatch: a.InvertMatch || b.InvertMatch,
		Recursive:   a.Recursive || b.Recursive,
		FileNames:   a.FileNames || b.FileNames,
		Highlight:   a.Highlight || b.Highlight,
	}
}

func mergeLog(a, b Log) Log {
	out := a
	if b.File != "" {
		out.File = b.File
	}
	if b.MaxSize != 0 {
		out.MaxSize = b.MaxSize
	}
	if b.MaxBackups != 0 {
		out.MaxBackups = b.MaxBackups
	}
	if b.MaxAge != 0 {
		out.MaxAge = b.MaxAge
	}
	if b.Compress {
		out.Compress = true
	}
	return out
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) { return yaml.Marshal(cfg) }
