// Package cmd implements the CLI command structure for tasker.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasker-go/internal/config"
	"github.com/nibzard/tasker-go/internal/logging"
	"github.com/nibzard/tasker-go/internal/task"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// now is the clock used by filter classification.
var now = time.Now

// env bundles what every subcommand needs.
type env struct {
	cfg    *config.Config
	logger *log.Logger
	store  *task.Store
}

func newEnv(cfg *config.Config) *env {
	logger := logging.New(stderr, cfg.LogOptions())
	store := task.NewStore(cfg.TaskDir,
		task.WithCollisionPolicy(cfg.CollisionPolicy()),
		task.WithLogger(logger),
	)
	return &env{cfg: cfg, logger: logger, store: store}
}

func (e *env) filterOptions() task.FilterOptions {
	return task.FilterOptions{Rules: e.cfg.Rules(), Today: now}
}

// Run executes the tasker CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasker", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// No subcommand starts the interactive prompt
	subcommand := "repl"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	e := newEnv(cfg)
	e.logger.Debug("starting", "command", subcommand, "dir", cfg.TaskDir, "rules", cfg.FilterRules, "config_files", cfg.Files)

	switch subcommand {
	case "repl":
		return e.replCommand(ctx, remainingArgs)
	case "add":
		return e.addCommand(remainingArgs)
	case "view":
		return e.viewCommand(remainingArgs)
	case "delete", "rm":
		return e.deleteCommand(remainingArgs)
	case "filter":
		return e.filterCommand(remainingArgs)
	case "ls", "list":
		return e.lsCommand(remainingArgs)
	case "tui":
		return e.tuiCommand(ctx, remainingArgs)
	case "doctor":
		return e.doctorCommand(remainingArgs)
	case "config":
		return e.configCommand(remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// newFlagSet returns a flag set for a subcommand.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("tasker "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// oneArg returns the single positional argument of a subcommand.
func oneArg(fs *flag.FlagSet, usage string) (string, error) {
	remaining := fs.Args()
	if len(remaining) != 1 {
		return "", fmt.Errorf("usage: tasker %s", usage)
	}
	return remaining[0], nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "tasker version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	lines := []string{
		"Tasker - plain text task files with due dates",
		"",
		"Usage:",
		"  tasker [options] [command] [args]",
		"",
		"Commands:",
		"  repl                      Interactive prompt (default command)",
		"  add -name N -title T -due YYYY-MM-DD [-description D]",
		"                            Write a new task file",
		"  view <name>               Print a task file",
		"  delete <name>             Remove a task file",
		"  filter [-rules R] <due|upcoming>",
		"                            List due or upcoming tasks",
		"  ls [-v] [status]          List tasks by due date (complete|incomplete|unmarked)",
		"  tui [all|due|upcoming]    Launch terminal UI",
		"  doctor [-v]               Check the task directory and validate task files",
		"  config [example]          Print the effective or an example config",
		"  version                   Show version information",
		"  help                      Show this help message",
		"",
		"Global Options:",
	}
	fmt.Fprintln(w, strings.Join(lines, "\n"))
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(stderr)
}
