// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.tasker/tasker.toml or OS-specific config directory)
// 3. Project config file (tasker.toml or .tasker.toml in the current directory)
// 4. Environment variables (TASKER_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.tasker/tasker.toml (preferred)
// - Windows: %APPDATA%\tasker\tasker.toml
// - macOS: ~/Library/Application Support/tasker/tasker.toml
// - Linux/BSD: $XDG_CONFIG_HOME/tasker/tasker.toml or ~/.config/tasker/tasker.toml
package config
