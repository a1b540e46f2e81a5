// Package config handles application configuration: command-line argument
// parsing layered over an optional TOML defaults file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
)

// ConflictMode controls how the flattener resolves destination name collisions.
type ConflictMode int

const (
	// ConflictRename - auto-rename conflicting files as "name (n).ext"
	ConflictRename ConflictMode = iota
	// ConflictSkip - leave the conflicting file where it is
	ConflictSkip
)

// String returns the string representation of ConflictMode
func (cm ConflictMode) String() string {
	switch cm {
	case ConflictRename:
		return "rename"
	case ConflictSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// ParseConflictMode parses a string into a ConflictMode
func ParseConflictMode(s string) (ConflictMode, error) {
	switch strings.ToLower(s) {
	case "rename":
		return ConflictRename, nil
	case "skip":
		return ConflictSkip, nil
	default:
		return ConflictRename, fmt.Errorf("invalid conflict mode: %s (valid: rename, skip)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (cm *ConflictMode) UnmarshalText(text []byte) error {
	parsed, err := ParseConflictMode(string(text))
	if err != nil {
		return err
	}

	*cm = parsed

	return nil
}

// Tool identifies which folder tool to launch directly, bypassing tab selection.
type Tool int

const (
	// ToolNone - start interactive, no tool preselected
	ToolNone Tool = iota
	// ToolPrune - delete empty folder structures
	ToolPrune
	// ToolClone - duplicate a folder hierarchy (folders only)
	ToolClone
	// ToolCount - count files at root level and recursively
	ToolCount
	// ToolFlatten - move all nested files into the root
	ToolFlatten
)

// String returns the string representation of Tool
func (t Tool) String() string {
	switch t {
	case ToolPrune:
		return "prune"
	case ToolClone:
		return "clone"
	case ToolCount:
		return "count"
	case ToolFlatten:
		return "flatten"
	case ToolNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseTool parses a string into a Tool
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(s) {
	case "prune":
		return ToolPrune, nil
	case "clone":
		return ToolClone, nil
	case "count":
		return ToolCount, nil
	case "flatten":
		return ToolFlatten, nil
	default:
		return ToolNone, fmt.Errorf("invalid tool: %s (valid: prune, clone, count, flatten)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (t *Tool) UnmarshalText(text []byte) error {
	parsed, err := ParseTool(string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// Config holds the application configuration
type Config struct {
	Tool             Tool         `arg:"-t,--tool" help:"Tool to launch directly: prune|clone|count|flatten"`
	Path             string       `arg:"-p,--path" help:"Root folder for prune, count, and flatten"`
	SourcePath       string       `arg:"-s,--source" help:"Source folder for clone"`
	DestPath         string       `arg:"-d,--dest" help:"Destination folder for clone"`
	SkipConfirmation bool         `arg:"-y,--yes" help:"Skip confirmation screens (the dry-run preview still runs)"`
	Conflict         ConflictMode `arg:"--conflict" default:"rename" help:"Flatten collision handling: rename|skip"`
	Exclude          []string     `arg:"--exclude,separate" help:"Glob patterns to exclude from scans (may repeat)"`
	LogDir           string       `arg:"--log-dir" help:"Directory for session log files (default: ./logs)"`
	InteractiveMode  bool         `arg:"-"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "A folder inspection and restructuring tool with a rich Terminal UI"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "folder-manager 1.0.0"
}

// ParseFlags parses the defaults file and command-line flags and returns configuration
func ParseFlags() (*Config, error) {
	cfg := &Config{
		Conflict: ConflictRename,
	}

	fileDefaults, err := LoadDefaults(DefaultsPath())
	if err != nil {
		return nil, err
	}

	fileDefaults.applyTo(cfg)

	arg.MustParse(cfg)

	return PostProcessConfig(cfg)
}

// PostProcessConfig applies post-processing logic to a parsed config
func PostProcessConfig(cfg *Config) (*Config, error) {
	// No tool requested means fully interactive mode
	if cfg.Tool == ToolNone {
		cfg.InteractiveMode = true

		return cfg, nil
	}

	err := cfg.ValidatePaths()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// ValidatePaths validates the paths required by the selected tool
func (cfg *Config) ValidatePaths() error {
	switch cfg.Tool {
	case ToolClone:
		err := ValidateDir(cfg.SourcePath, "source")
		if err != nil {
			return err
		}

		if cfg.DestPath == "" {
			return fmt.Errorf("destination path is required")
		}

		return nil

	case ToolPrune, ToolCount, ToolFlatten:
		return ValidateDir(cfg.Path, "root")

	case ToolNone:
		return nil

	default:
		return fmt.Errorf("unknown tool: %v", cfg.Tool)
	}
}

// ValidateDir checks that path names an existing directory.
// The label is used in error messages ("source", "root", ...).
func ValidateDir(path, label string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%s path is required", label)
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s path does not exist: %s", label, path)
	}

	if err != nil {
		return fmt.Errorf("cannot access %s path: %w", label, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%s path is not a directory: %s", label, path)
	}

	return nil
}
