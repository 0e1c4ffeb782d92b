package config

// SearchOptions is the resolved configuration of one run. It is built once
// from flags and file defaults and treated as read-only afterwards.
type SearchOptions struct {
	Query           string
	FilePaths       []string
	CaseSensitive   bool
	ShowLineNumbers bool
	InvertMatch     bool
	Recursive       bool
	ShowFileNames   bool
	Highlight       bool
}

// Defaults are toggles a config file can switch on for every run.
type Defaults struct {
	IgnoreCase  bool `yaml:"ignore_case" json:"ignore_case"`
	LineNumbers bool `yaml:"line_numbers" json:"line_numbers"`
	InvertMatch bool `yaml:"invert_match" json:"invert_match"`
	Recursive   bool `yaml:"recursive" json:"recursive"`
	FileNames   bool `yaml:"file_names" json:"file_names"`
	Highlight   bool `yaml:"highlight" json:"highlight"`
}

type Log struct {
	File       string `yaml:"file" json:"file,omitempty"`
	MaxSize    int    `yaml:"max_size" json:"max_size,omitempty"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups,omitempty"`
	MaxAge     int    `yaml:"max_age" json:"max_age,omitempty"`
	Compress   bool   `yaml:"compress" json:"compress,omitempty"`
}

type Config struct {
	Defaults       Defaults `yaml:"defaults" json:"defaults"`
	HighlightColor string   `yaml:"highlight_color" json:"highlight_color,omitempty"`
	IgnoreFile     string   `yaml:"ignore_file" json:"ignore_file,omitempty"`
	Log            Log      `yaml:"log" json:"log"`
}

// Flags are the per-invocation toggles parsed from the command line.
type Flags struct {
	IgnoreCase  bool
	LineNumbers bool
	InvertMatch bool
	Recursive   bool
	FileNames   bool
	Highlight   bool
}

// Options combines command-line toggles with file defaults. A toggle is on
// when either source switches it on.
func (c Config) Options(f Flags, query string, paths []string) SearchOptions {
	d := c.Defaults
	return SearchOptions{
		Query:           query,
		FilePaths:       append([]string(nil), paths...),
		CaseSensitive:   !(f.IgnoreCase || d.IgnoreCase),
		ShowLineNumbers: f.LineNumbers || d.LineNumbers,
		InvertMatch:     f.InvertMatch || d.InvertMatch,
		Recursive:       f.Recursive || d.Recursive,
		ShowFileNames:   f.FileNames || d.FileNames,
		Highlight:       f.Highlight || d.Highlight,
	}
}
