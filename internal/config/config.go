// Package config provides hierarchical configuration management for docsync using koanf.
// Configuration is loaded with priority: environment variables > explicit --config file >
// project config (.docsync/config.yml) > user config (~/.config/docsync/config.yml) > defaults.
// Project config may also be written as JSON (.docsync/config.json).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ariel-frischer/docsync/internal/git"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "DOCSYNC_"

// ConfigSource tracks where a configuration layer came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceFile    ConfigSource = "file"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the docsync CLI tool configuration
type Configuration struct {
	// ReadmePath is the README rewritten by 'docsync readme'.
	ReadmePath string `koanf:"readme_path" yaml:"readme_path" json:"readme_path" validate:"required"`
	// ChangelogPath is the CHANGELOG holding the status table.
	ChangelogPath string `koanf:"changelog_path" yaml:"changelog_path" json:"changelog_path" validate:"required"`
	// LogPath is the combined test runner output scanned for markers.
	LogPath string `koanf:"log_path" yaml:"log_path" json:"log_path" validate:"required"`
	// ScanRows bounds how many table rows are searched for an existing version.
	ScanRows int `koanf:"scan_rows" yaml:"scan_rows" json:"scan_rows" validate:"min=1,max=100"`
	// UseRepoRoot resolves relative paths against the git worktree root instead of the working directory.
	UseRepoRoot bool `koanf:"use_repo_root" yaml:"use_repo_root" json:"use_repo_root"`
	// WatchDebounce coalesces bursts of log writes in 'docsync watch'.
	WatchDebounce time.Duration `koanf:"watch_debounce" yaml:"watch_debounce" json:"watch_debounce" validate:"gte=0"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// UserConfigPath overrides the user config path (default: UserConfigPath())
	UserConfigPath string
	// ProjectDir is the directory holding .docsync/ (default: current directory)
	ProjectDir string
	// ConfigFile is an explicit config file passed with --config. It must exist.
	ConfigFile string
}

// Loaded is a Configuration together with the layers it was assembled from.
type Loaded struct {
	*Configuration
	Sources []Layer
}

// Layer names one configuration source that contributed values.
type Layer struct {
	Source ConfigSource
	Path   string
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load() (*Configuration, error) {
	loaded, err := LoadWithOptions(LoadOptions{})
	if err != nil {
		return nil, err
	}
	return loaded.Configuration, nil
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Loaded, error) {
	k := koanf.New(".")
	loaded := &Loaded{Sources: []Layer{{Source: SourceDefault}}}

	loadDefaults(k)

	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath, _ = UserConfigPath()
	}
	if fileExists(userPath) {
		if err := loadFile(k, userPath, "user"); err != nil {
			return nil, err
		}
		loaded.Sources = append(loaded.Sources, Layer{Source: SourceUser, Path: userPath})
	}

	projectPath := findProjectConfig(opts.ProjectDir)
	if projectPath != "" {
		if err := loadFile(k, projectPath, "project"); err != nil {
			return nil, err
		}
		loaded.Sources = append(loaded.Sources, Layer{Source: SourceProject, Path: projectPath})
	}

	if opts.ConfigFile != "" {
		if !fileExists(opts.ConfigFile) {
			return nil, fmt.Errorf("config file %s: %w", opts.ConfigFile, os.ErrNotExist)
		}
		if err := loadFile(k, opts.ConfigFile, "explicit"); err != nil {
			return nil, err
		}
		loaded.Sources = append(loaded.Sources, Layer{Source: SourceFile, Path: opts.ConfigFile})
	}

	if err := validateEnvironment(); err != nil {
		return nil, err
	}
	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}
	if hasEnvOverrides() {
		loaded.Sources = append(loaded.Sources, Layer{Source: SourceEnv})
	}

	cfg, err := finalizeConfig(k)
	if err != nil {
		return nil, err
	}
	loaded.Configuration = cfg
	return loaded, nil
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// findProjectConfig returns the project config file, preferring YAML over JSON.
func findProjectConfig(dir string) string {
	if dir == "" {
		dir = "."
	}
	yamlPath := filepath.Join(dir, ProjectConfigPath())
	if fileExists(yamlPath) {
		return yamlPath
	}
	jsonPath := filepath.Join(dir, ProjectJSONConfigPath())
	if fileExists(jsonPath) {
		return jsonPath
	}
	return ""
}

// loadFile validates and loads a config file, picking the parser by extension
func loadFile(k *koanf.Koanf, path, configType string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
		}
		return nil
	}
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged layers
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.ReadmePath = expandHomePath(cfg.ReadmePath)
	cfg.ChangelogPath = expandHomePath(cfg.ChangelogPath)
	cfg.LogPath = expandHomePath(cfg.LogPath)

	return &cfg, nil
}

// Resolve returns a copy of the configuration with relative paths joined to root.
func (c *Configuration) Resolve(root string) *Configuration {
	out := *c
	out.ReadmePath = git.ResolvePath(root, c.ReadmePath)
	out.ChangelogPath = git.ResolvePath(root, c.ChangelogPath)
	out.LogPath = git.ResolvePath(root, c.LogPath)
	return &out
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func hasEnvOverrides() bool {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, EnvPrefix) {
			return true
		}
	}
	return false
}

// envTransform converts environment variable names to config keys
// Example: DOCSYNC_SCAN_ROWS -> scan_rows
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
