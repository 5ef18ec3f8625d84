package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/nibzard/tasker-go/internal/task"
)

// doctorCommand checks the task directory, config, and every task file.
func (e *env) doctorCommand(args []string) error {
	fs := newFlagSet("doctor")
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	out := stdout
	fmt.Fprintln(out, "Tasker Doctor")
	fmt.Fprintln(out, "=============")
	fmt.Fprintln(out)

	allOK := true

	// Check config
	fmt.Fprintln(out, "Config:")
	if len(e.cfg.Files) == 0 {
		fmt.Fprintln(out, "  ✅ Files: none (defaults)")
	} else {
		fmt.Fprintf(out, "  ✅ Files: %s\n", strings.Join(e.cfg.Files, ", "))
	}
	fmt.Fprintf(out, "  ✅ Filter rules: %s\n", e.cfg.FilterRules)
	fmt.Fprintf(out, "  ✅ On collision: %s\n", e.cfg.OnCollision)
	fmt.Fprintln(out)

	// Check task directory
	dir := e.store.Dir()
	fmt.Fprintf(out, "Task directory: %s\n", dir)
	info, err := os.Stat(dir)
	switch {
	case err != nil:
		fmt.Fprintf(out, "  ❌ Error: %v\n", err)
		allOK = false
	case !info.IsDir():
		fmt.Fprintln(out, "  ❌ Error: path is not a directory")
		allOK = false
	default:
		fmt.Fprintln(out, "  ✅ OK")
	}
	fmt.Fprintln(out)

	// Validate task files
	if allOK {
		ok, err := e.checkTaskFiles(*verbose)
		if err != nil {
			return err
		}
		allOK = ok
	}

	if allOK {
		fmt.Fprintln(out, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(out, "⚠️  Some checks failed. Affected tasks will be skipped by filter.")
	return fmt.Errorf("doctor checks failed")
}

// checkTaskFiles validates each task file against the task schema.
func (e *env) checkTaskFiles(verbose bool) (bool, error) {
	out := stdout
	entries, err := e.store.Scan()
	if err != nil {
		return false, err
	}

	fmt.Fprintf(out, "Task files: %d\n", len(entries))
	allOK := true
	for _, entry := range entries {
		data, err := os.ReadFile(entry.Path)
		if err != nil {
			fmt.Fprintf(out, "  ❌ %s: %v\n", entry.Name, err)
			allOK = false
			continue
		}
		result := task.Validate(data)
		if !result.Valid {
			fmt.Fprintf(out, "  ❌ %s:\n", entry.Name)
			for _, verr := range result.Errors {
				fmt.Fprintf(out, "     - %v\n", verr)
			}
			allOK = false
			continue
		}
		if verbose {
			fmt.Fprintf(out, "  ✅ %s\n", entry.Name)
		}
	}
	if allOK && !verbose {
		fmt.Fprintln(out, "  ✅ OK")
	}
	fmt.Fprintln(out)
	return allOK, nil
}
