// Package config loads and validates the wordcut TOML configuration.
//
// Load resolves the config path (explicit flag, ~/.config/wordcut/config.toml,
// or a project-local wordcut.toml), applies defaults, expands ~ in every path
// field, and validates editor tuning values before anything else starts.
package config
