package cmd

import (
	"fmt"

	"github.com/nibzard/tasker-go/internal/config"
)

// configCommand prints the effective configuration, or an example file.
func (e *env) configCommand(args []string) error {
	fs := newFlagSet("config")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch remaining := fs.Args(); {
	case len(remaining) == 0:
		return e.cfg.WriteTOML(stdout)
	case len(remaining) == 1 && remaining[0] == "example":
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	default:
		return fmt.Errorf("usage: tasker config [example]")
	}
}
