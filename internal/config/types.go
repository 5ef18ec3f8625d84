package config

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/tasker-go/internal/logging"
	"github.com/nibzard/tasker-go/internal/task"
	"github.com/nibzard/tasker-go/internal/taskdir"
)

// Default values.
const (
	DefaultTaskDir     = taskdir.DefaultDir
	DefaultFilterRules = string(task.RulesLiteral)
	DefaultOnCollision = string(task.CollisionOverwrite)
)

// Config holds the full configuration for tasker.
type Config struct {
	// Directory scanned for task files
	TaskDir string `toml:"task_dir"`

	// Classification table used by filter (literal|strict)
	FilterRules string `toml:"filter_rules"`

	// What add does when the file exists (overwrite|fail|append)
	OnCollision string `toml:"on_collision"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Config files that were applied, lowest priority first (computed)
	Files []string `toml:"-"`
}

// Rules returns the filter rules. finalizeConfig has already validated
// the value.
func (c *Config) Rules() task.Rules {
	r, err := task.ParseRules(c.FilterRules)
	if err != nil {
		return task.RulesLiteral
	}
	return r
}

// CollisionPolicy returns the add collision policy.
func (c *Config) CollisionPolicy() task.CollisionPolicy {
	p, err := task.ParseCollisionPolicy(c.OnCollision)
	if err != nil {
		return task.CollisionOverwrite
	}
	return p
}

// LogOptions returns the logging options.
func (c *Config) LogOptions() logging.Options {
	return logging.Options{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		Timestamps: c.LogTimestamps,
		Caller:     c.LogCaller,
		Prefix:     logging.DefaultPrefix,
	}
}

// WriteTOML encodes the effective configuration.
func (c *Config) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func setDefaults(cfg *Config) {
	cfg.TaskDir = DefaultTaskDir
	cfg.FilterRules = DefaultFilterRules
	cfg.OnCollision = DefaultOnCollision

	logOpts := logging.DefaultOptions()
	cfg.LogLevel = logOpts.Level
	cfg.LogFormat = logOpts.Format
	cfg.LogTimestamps = logOpts.Timestamps
	cfg.LogCaller = logOpts.Caller
}
