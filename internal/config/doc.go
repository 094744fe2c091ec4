// Package config loads gitwrap CLI configuration.
//
// It handles:
//   - The YAML config file (--config, $GITWRAP_CONFIG, or ~/.config/gitwrap/config.yaml)
//   - Environment overrides for the git binary, log file and debug mode
//   - Defaults when no file exists
package config
