package config

import (
	"flag"
)

// parseFlags defines the global flags on fs and parses args.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasker", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.TaskDir, "dir", cfg.TaskDir, "Directory holding task files")
	fs.StringVar(&cfg.FilterRules, "rules", cfg.FilterRules, "Filter rules: literal or strict")
	fs.StringVar(&cfg.OnCollision, "on-collision", cfg.OnCollision, "When add targets an existing file: overwrite, fail or append")

	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error, fatal")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text, json, logfmt")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in log output")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in log output")

	return fs.Parse(args)
}
