package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logfile io.WriteCloser
	verbose bool
	stderr  io.Writer = os.Stderr
	errc              = newColor(color.FgRed)
	grayc             = newColor(color.FgHiBlack)
)

// FileConfig describes the optional rotating diagnostic log.
type FileConfig struct {
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

func init() {
	log.SetFlags(log.LstdFlags)
	log.SetOutput(io.Discard)
}

// Init sends the diagnostic log to a rotating file. An empty File keeps
// diagnostics on stderr only.
func Init(cfg FileConfig) error {
	if cfg.File == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return err
	}
	l := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
	logfile = l
	log.SetOutput(l)
	return nil
}

func Close() {
	if logfile != nil {
		_ = logfile.Close()
		logfile = nil
	}
	log.SetOutput(io.Discard)
}

// SetOutput redirects diagnostics and disables coloring for non-terminals.
func SetOutput(w io.Writer) {
	stderr = w
	colored := isTerminal(w)
	for _, c := range []*color.Color{errc, grayc} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

func newColor(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if !isTerminal(os.Stderr) {
		c.DisableColor()
	}
	return c
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func Error(msg string) {
	_, _ = fmt.Fprintln(stderr, errc.Sprint(msg))
	log.Println("[ERROR] " + msg)
}

// Info records msg in the log file only; stdout belongs to search output.
func Info(msg string) {
	log.Println("[INFO] " + msg)
}

// SetVerbose toggles verbose output to stderr.
func SetVerbose(v bool) { verbose = v }

// Debug prints only when verbose mode is enabled.
func Debug(msg string) {
	log.Println("[DEBUG] " + msg)
	if !verbose {
		return
	}
	_, _ = fmt.Fprintln(stderr, grayc.Sprint(msg))
}
