package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gopak/mgrep/internal/assets"
	"github.com/gopak/mgrep/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, o *rootOptions, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if o == nil {
		o = &rootOptions{}
	}
	cmd := newRootCommand(o)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := execute(cmd, args)
	return stdout.String(), stderr.String(), err
}

func fixture(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(p, []byte("Hello\nworld\nHELLO again\n"), 0o644))
	return p
}

func TestRoot_CaseInsensitiveNumbered(t *testing.T) {
	a := fixture(t)
	out, _, err := runCmd(t, nil, "-i", "-n", "hello", a)
	require.NoError(t, err)
	assert.Equal(t, "1: Hello\n3: HELLO again\n", out)

	out, _, err = runCmd(t, nil, "hello", "-i", "-n", "-v", a)
	require.NoError(t, err)
	assert.Equal(t, "2: world\n", out)
}

func TestRoot_CombinedAndRepeatedFlags(t *testing.T) {
	a := fixture(t)
	out, _, err := runCmd(t, nil, "-in", "-i", "hello", a)
	require.NoError(t, err)
	assert.Equal(t, "1: Hello\n3: HELLO again\n", out)
}

func TestRoot_FileNamesAndHighlight(t *testing.T) {
	a := fixture(t)
	out, _, err := runCmd(t, nil, "-f", "-c", "world", a)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, a+": \x1b[31mworld"), out)
}

func TestRoot_EmptyQueryHighlightsNothing(t *testing.T) {
	a := fixture(t)
	out, _, err := runCmd(t, nil, "-c", "", a)
	require.NoError(t, err)
	assert.Equal(t, "Hello\nworld\nHELLO again\n", out)
}

func TestRoot_MissingPathStillPrintsMatches(t *testing.T) {
	a := fixture(t)
	missing := filepath.Join(filepath.Dir(a), "missing.txt")
	out, errOut, err := runCmd(t, nil, "world", missing, a)
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.Equal(t, "world\n", out)
	assert.Contains(t, errOut, "missing.txt")
}

func TestRoot_MissingArgumentsIsUsageError(t *testing.T) {
	for _, args := range [][]string{{}, {"hello"}} {
		out, _, err := runCmd(t, nil, args...)
		require.Error(t, err)
		assert.Equal(t, 2, ExitCode(err))
		assert.True(t, errors.Is(err, search.ErrInvalidConfiguration))
		assert.Empty(t, out)
	}
}

func TestRoot_DashLeadingQuery(t *testing.T) {
	p := filepath.Join(t.TempDir(), "code.txt")
	require.NoError(t, os.WriteFile(p, []byte("foo -> bar\nx = -1\n"), 0o644))

	for _, tc := range []struct {
		args []string
		want string
	}{
		{[]string{"->", p}, "foo -> bar\n"},
		{[]string{"-1", p}, "x = -1\n"},
		{[]string{"-n", "-1", p}, "2: x = -1\n"},
		{[]string{"-1", "-n", p}, "2: x = -1\n"},
		{[]string{"-x", p}, ""},
		{[]string{"--", "-n", p}, ""},
		{[]string{"--bogus", p}, ""},
	} {
		out, _, err := runCmd(t, nil, tc.args...)
		require.NoError(t, err, tc.args)
		assert.Equal(t, tc.want, out, tc.args)
	}
}

func TestRoot_FlagMissingValueIsUsageError(t *testing.T) {
	a := fixture(t)
	_, errOut, err := runCmd(t, nil, "hello", a, "--config")
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
	assert.True(t, errors.Is(err, search.ErrInvalidConfiguration))
	assert.Empty(t, errOut)
}

func TestSplitArgs(t *testing.T) {
	fs := newRootCommand(&rootOptions{}).Flags()
	for _, tc := range []struct {
		in, want []string
	}{
		{
			[]string{"-in", "->", "--config", "c.yaml", "a.txt", "--ignore-file=ig", "--", "-r"},
			[]string{"-in", "--config", "c.yaml", "--ignore-file=ig", "--", "->", "a.txt", "-r"},
		},
		{[]string{"-i"}, []string{"-i"}},
		{nil, []string{}},
		{[]string{"-ix", "-é", "-"}, []string{"--", "-ix", "-é", "-"}},
	} {
		got, err := splitArgs(fs, tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := splitArgs(fs, []string{"hello", "--config"})
	assert.ErrorContains(t, err, "--config")
}

func TestRoot_HelpGoesToStdout(t *testing.T) {
	a := fixture(t)
	out, _, err := runCmd(t, nil, "-i", "-h", "hello", a)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "--ignore-case")
	assert.NotContains(t, out, "HELLO again")
}

func TestRoot_ConfigDefaults(t *testing.T) {
	a := fixture(t)
	cfg := filepath.Join(t.TempDir(), "mgrep.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("defaults:\n  ignore_case: true\n  line_numbers: true\n"), 0o644))
	out, _, err := runCmd(t, nil, "--config", cfg, "hello", a)
	require.NoError(t, err)
	assert.Equal(t, "1: Hello\n3: HELLO again\n", out)
}

func TestRoot_InvalidConfigIsFatal(t *testing.T) {
	a := fixture(t)
	cfg := filepath.Join(t.TempDir(), "mgrep.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("highlight_color: purple\n"), 0o644))
	out, _, err := runCmd(t, nil, "--config", cfg, "hello", a)
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
	assert.Empty(t, out)
}

func TestRoot_IgnoreFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vendor"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("needle\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor", "skip.txt"), []byte("needle\n"), 0o644))
	ignore := filepath.Join(t.TempDir(), "ignore")
	require.NoError(t, os.WriteFile(ignore, []byte("vendor/\n"), 0o644))

	out, _, err := runCmd(t, nil, "-r", "-f", "--ignore-file", ignore, "needle", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "keep.txt")+": needle\n", out)
}

func TestRoot_Stats(t *testing.T) {
	a := fixture(t)
	out, errOut, err := runCmd(t, nil, "--stats", "-i", "hello", a)
	require.NoError(t, err)
	assert.Equal(t, "Hello\nHELLO again\n", out)
	assert.Contains(t, errOut, a)
}

func TestRoot_InitConfigNonInteractive(t *testing.T) {
	target := filepath.Join(t.TempDir(), "conf", "config.yaml")
	out, _, err := runCmd(t, nil, "--init-config", "--config", target)
	require.NoError(t, err)
	assert.Contains(t, out, target)
	b, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, assets.DefaultConfig(), b)

	_, errOut, err := runCmd(t, nil, "--init-config", "--config", target)
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.Contains(t, errOut, "already exists")
}

func TestRoot_InitConfigDefaultDir(t *testing.T) {
	out, _, err := runCmd(t, nil, "--init-config")
	require.NoError(t, err)
	target := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "mgrep", assets.ConfigFileName)
	assert.Equal(t, "wrote "+target+"\n", out)
	b, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, assets.DefaultConfig(), b)
}

type answerAll struct{ yes bool }

func (a answerAll) Confirm(string, bool) (bool, error) { return a.yes, nil }

func (answerAll) Select(string, []string, string) (string, error) { return "green", nil }

func TestRoot_InitConfigInteractive(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.yaml")
	o := &rootOptions{prompter: answerAll{yes: true}, interactive: true}
	_, _, err := runCmd(t, o, "--init-config", "--config", target)
	require.NoError(t, err)

	a := fixture(t)
	out, _, err := runCmd(t, nil, "--config", target, "HELLO", a)
	require.NoError(t, err)
	assert.Equal(t, a+": 2: world\n", out, "written defaults enable every toggle")
}
