package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"renamecommit.dev/renamecommit/internal/git"
)

// Environment variables read by Load
const (
	EnvConfigPath     = "RENAME_LAST_COMMIT_CONFIG"
	EnvBackend        = "RENAME_LAST_COMMIT_BACKEND"
	EnvGitBinary      = "RENAME_LAST_COMMIT_GIT"
	EnvTimeout        = "RENAME_LAST_COMMIT_TIMEOUT"
	EnvLogFile        = "RENAME_LAST_COMMIT_LOG_FILE"
	EnvNonInteractive = "RENAME_LAST_COMMIT_NON_INTERACTIVE"
)

// Config holds user-level settings
type Config struct {
	Backend        string        `yaml:"backend"`
	GitBinary      string        `yaml:"git_binary"`
	CommandTimeout time.Duration `yaml:"command_timeout"`
	LogFile        string        `yaml:"log_file"`
	NonInteractive bool          `yaml:"non_interactive"`

	// Path is the file the config was read from, empty when none existed
	Path string `yaml:"-"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Backend:        git.BackendExec,
		GitBinary:      git.DefaultGitBinary,
		CommandTimeout: git.DefaultCommandTimeout,
	}
}

// DefaultPath returns the config file location used when RENAME_LAST_COMMIT_CONFIG is unset
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "rename-last-commit", "config.yaml")
}

// Load reads the config file and applies environment overrides.
// A missing file yields defaults; a malformed one is an error.
func Load() (*Config, error) {
	return LoadWithEnv(os.Getenv)
}

// LoadWithEnv is Load with an injectable environment lookup
func LoadWithEnv(getenv func(string) string) (*Config, error) {
	cfg := Default()

	path := getenv(EnvConfigPath)
	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.readFile(filepath.Clean(path)); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	c.Path = path
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := getenv(EnvGitBinary); v != "" {
		c.GitBinary = v
	}
	if v := getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		c.CommandTimeout = d
	}
	if v := getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := getenv(EnvNonInteractive); v != "" {
		nonInteractive, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvNonInteractive, v, err)
		}
		c.NonInteractive = nonInteractive
	}
	return nil
}

// Validate rejects settings the rest of the program cannot honor
func (c *Config) Validate() error {
	switch c.Backend {
	case git.BackendExec, git.BackendGoGit:
	default:
		return fmt.Errorf("invalid backend %q (expected %q or %q)", c.Backend, git.BackendExec, git.BackendGoGit)
	}
	if c.GitBinary == "" {
		return fmt.Errorf("git_binary must not be empty")
	}
	if c.CommandTimeout <= 0 {
		return fmt.Errorf("command_timeout must be positive, got %s", c.CommandTimeout)
	}
	return nil
}

// RunnerOptions returns the git runner options implied by the config
func (c *Config) RunnerOptions() []git.RunnerOption {
	return []git.RunnerOption{
		git.WithGitBinary(c.GitBinary),
		git.WithTimeout(c.CommandTimeout),
	}
}
