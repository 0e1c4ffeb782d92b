package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopak/mgrep/internal/config"
	"github.com/gopak/mgrep/internal/logging"
	"github.com/gopak/mgrep/internal/search"
	"github.com/gopak/mgrep/internal/ui/console"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var version = "dev"

// rootOptions holds the flag values of one invocation.
type rootOptions struct {
	cfgFile    string
	verbose    bool
	stats      bool
	ignoreFile string
	initConfig bool
	flags      config.Flags

	prompter    console.Prompter
	interactive bool
}

func Execute() error {
	return execute(NewRootCommand(), os.Args[1:])
}

// NewRootCommand builds the mgrep command with terminal defaults.
func NewRootCommand() *cobra.Command {
	o := &rootOptions{
		prompter:    console.NewSurveyPrompter(),
		interactive: isatty.IsTerminal(os.Stdin.Fd()),
	}
	return newRootCommand(o)
}

func newRootCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mgrep [OPTIONS] <query> <path...>",
		Short: "Search files for lines containing a literal string",
		Long: "mgrep prints every line of the given files that contains <query>.\n" +
			"Directories are searched one level deep, or fully with -r.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if o.initConfig {
				return nil
			}
			if len(args) < 2 {
				return usageError(fmt.Errorf("%w: expected <query> and at least one <path>", search.ErrInvalidConfiguration))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.SetOutput(cmd.ErrOrStderr())
			if o.initConfig {
				return runInitConfig(cmd, o)
			}
			return runSearch(cmd, o, args)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(fmt.Errorf("%w: %v", search.ErrInvalidConfiguration, err))
	})

	f := cmd.Flags()
	f.BoolVarP(&o.flags.IgnoreCase, "ignore-case", "i", false, "case-insensitive search")
	f.BoolVarP(&o.flags.LineNumbers, "line-number", "n", false, "print line number with output lines")
	f.BoolVarP(&o.flags.InvertMatch, "invert-match", "v", false, "select non-matching lines")
	f.BoolVarP(&o.flags.Recursive, "recursive", "r", false, "search directories recursively")
	f.BoolVarP(&o.flags.FileNames, "with-filename", "f", false, "print the file name for each match")
	f.BoolVarP(&o.flags.Highlight, "color", "c", false, "highlight the matching text")
	f.StringVar(&o.cfgFile, "config", "", "YAML config file (default: every *.yaml in ~/.config/mgrep)")
	f.StringVar(&o.ignoreFile, "ignore-file", "", "gitignore-style patterns to skip while walking directories")
	f.BoolVar(&o.stats, "stats", false, "print a per-file summary to stderr when done")
	f.BoolVar(&o.verbose, "verbose", false, "show detailed steps on stderr")
	f.BoolVar(&o.initConfig, "init-config", false, "write a config file and exit")
	f.SortFlags = false
	return cmd
}

func runSearch(cmd *cobra.Command, o *rootOptions, args []string) error {
	logging.SetVerbose(o.verbose)
	cfg, err := loadConfig(o.cfgFile)
	if err != nil {
		return usageError(fmt.Errorf("%w: %v", search.ErrInvalidConfiguration, err))
	}
	if err := logging.Init(logging.FileConfig{
		File:       expandHome(cfg.Log.File),
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		logging.Error("log file: " + err.Error())
	}
	defer logging.Close()

	opts := cfg.Options(o.flags, args[0], args[1:])
	logging.Debug(fmt.Sprintf("query=%q paths=%v case_sensitive=%t invert=%t recursive=%t",
		opts.Query, opts.FilePaths, opts.CaseSensitive, opts.InvertMatch, opts.Recursive))

	searchOpts := []search.Option{
		search.WithErrorHandler(func(err error) { logging.Error(err.Error()) }),
	}
	ignorePath := o.ignoreFile
	if ignorePath == "" {
		ignorePath = cfg.IgnoreFile
	}
	if ignorePath != "" {
		m, err := search.LoadIgnoreFile(expandHome(ignorePath))
		if err != nil {
			return usageError(fmt.Errorf("%w: %v", search.ErrInvalidConfiguration, err))
		}
		searchOpts = append(searchOpts, search.WithIgnore(m))
	}
	if opts.Highlight {
		h, err := console.NewHighlighter(cfg.HighlightColor)
		if err != nil {
			return usageError(fmt.Errorf("%w: %v", search.ErrInvalidConfiguration, err))
		}
		searchOpts = append(searchOpts, search.WithEmphasis(h))
	}

	sum, err := search.New(opts, cmd.OutOrStdout(), searchOpts...).Run()
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	logging.Info(fmt.Sprintf("searched %d files, reported %d lines, %d errors", len(sum.Files), sum.Reported, sum.Errors))
	if o.stats {
		if err := console.PrintSummary(cmd.ErrOrStderr(), sum); err != nil {
			return &ExitError{Code: 1, Err: err}
		}
	}
	if sum.Errors > 0 {
		return &ExitError{Code: 1}
	}
	return nil
}

// loadConfig reads the explicit config file, or every YAML file of the
// default directory when none is given. No config at all is fine.
func loadConfig(cfgFile string) (config.Config, error) {
	var files []string
	if cfgFile != "" {
		files = []string{cfgFile}
	} else {
		found, err := config.FilesIn(config.DefaultDir())
		if err != nil {
			return config.Config{}, err
		}
		files = found
	}
	for _, f := range files {
		logging.Debug("config: " + f)
	}
	return config.Load(files)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// printError writes a fatal diagnostic for err, if it carries one.
func printError(w io.Writer, err error) {
	var ee *ExitError
	if asExitError(err, &ee) && ee.Err == nil {
		return
	}
	logging.SetOutput(w)
	logging.Error("mgrep: " + err.Error())
	if ExitCode(err) == 2 {
		_, _ = fmt.Fprintln(w, "Run 'mgrep --help' for usage.")
	}
}
