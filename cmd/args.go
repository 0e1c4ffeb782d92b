package cmd

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gopak/mgrep/internal/search"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs cmd with args after moving every token that is not one of
// its flags behind "--", so queries like "->" or "-1" stay positional.
func execute(cmd *cobra.Command, args []string) error {
	cmd.InitDefaultHelpFlag()
	cmd.InitDefaultVersionFlag()
	split, err := splitArgs(cmd.Flags(), args)
	if err != nil {
		return usageError(fmt.Errorf("%w: %v", search.ErrInvalidConfiguration, err))
	}
	cmd.SetArgs(split)
	return cmd.Execute()
}

// splitArgs returns the recognised flags of args in order, followed by "--"
// and the remaining tokens. A value flag given without "=" takes the next
// token as its value. An explicit "--" ends flag recognition.
func splitArgs(fs *pflag.FlagSet, args []string) ([]string, error) {
	flags := []string{}
	var rest []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			rest = append(rest, args[i+1:]...)
			break
		}
		if f, inline, ok := longFlag(fs, a); ok {
			flags = append(flags, a)
			if !inline && takesValue(f) {
				if i+1 == len(args) {
					return nil, fmt.Errorf("flag needs an argument: %s", a)
				}
				i++
				flags = append(flags, args[i])
			}
			continue
		}
		if shortFlags(fs, a) {
			flags = append(flags, a)
			continue
		}
		rest = append(rest, a)
	}
	if len(rest) == 0 {
		return flags, nil
	}
	return append(append(flags, "--"), rest...), nil
}

func longFlag(fs *pflag.FlagSet, a string) (*pflag.Flag, bool, bool) {
	name, ok := strings.CutPrefix(a, "--")
	if !ok || name == "" {
		return nil, false, false
	}
	name, _, inline := strings.Cut(name, "=")
	f := fs.Lookup(name)
	return f, inline, f != nil
}

// shortFlags reports whether a is a group of boolean shorthands such as -in.
func shortFlags(fs *pflag.FlagSet, a string) bool {
	if len(a) < 2 || a[0] != '-' || a[1] == '-' {
		return false
	}
	for i := 1; i < len(a); i++ {
		if a[i] >= utf8.RuneSelf {
			return false
		}
		f := fs.ShorthandLookup(a[i : i+1])
		if f == nil || takesValue(f) {
			return false
		}
	}
	return true
}

func takesValue(f *pflag.Flag) bool {
	return f.NoOptDefVal == "" && f.Value.Type() != "bool"
}
