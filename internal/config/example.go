package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Tasker configuration file
# Values can be overridden by TASKER_* environment variables or CLI flags

# Directory holding task files (supports ~ and $VAR expansion)
task_dir = "."

# Filter rules:
#   literal - due:      past or today, or [Complete] anywhere in the file
#             upcoming: future, or [Incomplete] anywhere in the file
#   strict  - due:      not [Complete] and past or today
#             upcoming: not [Complete] and in the future
filter_rules = "literal"

# What add does when the target file already exists: overwrite, fail, append
on_collision = "overwrite"

# Logging (written to stderr)
log_level = "info"       # debug, info, warn, error, fatal
log_format = "text"      # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
