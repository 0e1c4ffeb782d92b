package assets

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
)

//go:embed default-config.yaml
var defaultConfig []byte

// ConfigSchema is the JSON schema every merged config must satisfy.
//
//go:embed config.schema.json
var ConfigSchema []byte

// ConfigFileName is the file name used inside the config directory.
const ConfigFileName = "config.yaml"

// DefaultConfig returns a copy of the embedded default config file.
func DefaultConfig() []byte { return append([]byte(nil), defaultConfig...) }

// WriteConfigIfMissing writes data to p unless p already exists, creating
// parent directories as needed. It reports whether it wrote anything.
func WriteConfigIfMissing(p string, data []byte) (bool, error) {
	if p == "" {
		return false, errors.New("empty config path")
	}
	if _, err := os.Stat(p); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return false, err
	}
	return true, os.WriteFile(p, data, 0o644)
}

// WriteDefaultConfigIfMissing writes the embedded default config as
// config.yaml inside targetDir.
func WriteDefaultConfigIfMissing(targetDir string) (string, bool, error) {
	if targetDir == "" {
		return "", false, errors.New("empty targetDir")
	}
	p := filepath.Join(targetDir, ConfigFileName)
	wrote, err := WriteConfigIfMissing(p, defaultConfig)
	return p, wrote, err
}
