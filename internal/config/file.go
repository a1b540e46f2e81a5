package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// fileDefaults mirrors the optional TOML defaults file. Every field is a
// pointer so an absent key can be told apart from a zero value.
type fileDefaults struct {
	Path     *string  `toml:"path"`
	Source   *string  `toml:"source"`
	Dest     *string  `toml:"dest"`
	Conflict *string  `toml:"conflict"`
	Exclude  []string `toml:"exclude"`
	LogDir   *string  `toml:"log_dir"`
	Yes      *bool    `toml:"yes"`
}

// DefaultsPath returns the location of the optional defaults file,
// ~/.config/folder-manager/config.toml. Returns empty string when the home
// directory cannot be determined.
func DefaultsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "folder-manager", "config.toml")
}

// LoadDefaults reads the TOML defaults file at path. A missing file is not
// an error; an unreadable or malformed file is.
func LoadDefaults(path string) (*fileDefaults, error) {
	if path == "" {
		return &fileDefaults{}, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's own config location
	if errors.Is(err, fs.ErrNotExist) {
		return &fileDefaults{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read defaults file %s: %w", path, err)
	}

	var defaults fileDefaults

	err = toml.Unmarshal(data, &defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to parse defaults file %s: %w", path, err)
	}

	return &defaults, nil
}

// applyTo copies the file defaults into cfg. Command-line flags parsed after
// this call override whatever was applied here.
func (fd *fileDefaults) applyTo(cfg *Config) {
	if fd.Path != nil {
		cfg.Path = *fd.Path
	}

	if fd.Source != nil {
		cfg.SourcePath = *fd.Source
	}

	if fd.Dest != nil {
		cfg.DestPath = *fd.Dest
	}

	if fd.Conflict != nil {
		if mode, err := ParseConflictMode(*fd.Conflict); err == nil {
			cfg.Conflict = mode
		}
	}

	if len(fd.Exclude) > 0 {
		cfg.Exclude = append([]string{}, fd.Exclude...)
	}

	if fd.LogDir != nil {
		cfg.LogDir = *fd.LogDir
	}

	if fd.Yes != nil {
		cfg.SkipConfirmation = *fd.Yes
	}
}
