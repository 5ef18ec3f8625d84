package config

import (
	"flag"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/tasker-go/internal/logging"
	"github.com/nibzard/tasker-go/internal/task"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.tasker/tasker.toml or OS-specific config dir)
// 3. Project config file (tasker.toml or .tasker.toml in current directory)
// 4. Environment variables
// 5. CLI flags
//
// Flags are registered on fs and parsed from args; the caller reads the
// remaining arguments from fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

// loadConfigFile loads TOML config from the given file. Keys the file
// does not set keep their current values.
func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config keys: %v", undecoded)
	}
	cfg.Files = append(cfg.Files, path)
	return nil
}

// finalizeConfig expands paths and validates enumerated values.
func finalizeConfig(cfg *Config) error {
	cfg.TaskDir = expandPath(cfg.TaskDir)
	if cfg.TaskDir == "" {
		cfg.TaskDir = DefaultTaskDir
	}

	rules, err := task.ParseRules(cfg.FilterRules)
	if err != nil {
		return err
	}
	cfg.FilterRules = string(rules)

	policy, err := task.ParseCollisionPolicy(cfg.OnCollision)
	if err != nil {
		return err
	}
	cfg.OnCollision = string(policy)

	if !logging.ValidLevel(cfg.LogLevel) {
		return fmt.Errorf("invalid log level %q (expected debug|info|warn|error|fatal)", cfg.LogLevel)
	}
	if !logging.ValidFormat(cfg.LogFormat) {
		return fmt.Errorf("invalid log format %q (expected text|json|logfmt)", cfg.LogFormat)
	}
	return nil
}
