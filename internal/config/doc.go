// Package config loads rename-last-commit settings.
//
// Settings are layered, later layers winning:
//   - Built-in defaults
//   - The YAML config file (RENAME_LAST_COMMIT_CONFIG or $XDG_CONFIG_HOME/rename-last-commit/config.yaml)
//   - RENAME_LAST_COMMIT_* environment variables
//   - Command-line flags, applied by the cli package
package config
