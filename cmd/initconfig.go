package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gopak/mgrep/internal/assets"
	"github.com/gopak/mgrep/internal/config"
	"github.com/gopak/mgrep/internal/logging"
	"github.com/gopak/mgrep/internal/ui/console"
	"github.com/spf13/cobra"
)

// runInitConfig writes a config file, asking for each default when stdin is
// a terminal. An existing file is left untouched.
func runInitConfig(cmd *cobra.Command, o *rootOptions) error {
	target := o.cfgFile
	var dir string
	if target == "" {
		dir = config.DefaultDir()
		if dir == "" {
			return usageError(errors.New("cannot determine config directory; pass --config"))
		}
		target = filepath.Join(dir, assets.ConfigFileName)
	}

	var wrote bool
	var err error
	switch {
	case o.interactive && o.prompter != nil:
		data, askErr := askConfig(o.prompter)
		if askErr != nil {
			return &ExitError{Code: 1, Err: askErr}
		}
		wrote, err = assets.WriteConfigIfMissing(target, data)
	case dir != "":
		target, wrote, err = assets.WriteDefaultConfigIfMissing(dir)
	default:
		wrote, err = assets.WriteConfigIfMissing(target, assets.DefaultConfig())
	}
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	if !wrote {
		logging.Error("config already exists: " + target)
		return &ExitError{Code: 1}
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "wrote "+target)
	return err
}

// askConfig walks the user through the embedded defaults and returns the
// resulting YAML.
func askConfig(p console.Prompter) ([]byte, error) {
	base, err := config.Parse(assets.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("embedded config: %w", err)
	}
	cfg, err := console.AskConfig(p, base)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return config.Marshal(cfg)
}
