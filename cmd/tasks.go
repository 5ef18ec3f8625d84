package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/nibzard/tasker-go/internal/repl"
	"github.com/nibzard/tasker-go/internal/task"
	"github.com/nibzard/tasker-go/internal/ui"
)

// replCommand runs the interactive prompt on the standard streams.
func (e *env) replCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	session := repl.New(e.store, stdin, stdout,
		repl.WithLogger(e.logger),
		repl.WithFilterOptions(e.filterOptions()),
	)
	return session.Run(ctx)
}

// addCommand writes a task file from flags.
func (e *env) addCommand(args []string) error {
	fs := newFlagSet("add")
	name := fs.String("name", "", "Task file name, e.g. milk.txt")
	title := fs.String("title", "", "Task title")
	description := fs.String("description", "", "Task description")
	due := fs.String("due", "", "Due date (YYYY-MM-DD)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *name == "" || *title == "" || *due == "" {
		return fmt.Errorf("usage: tasker add -name N -title T -due YYYY-MM-DD [-description D]")
	}

	dueDate, err := task.ParseDate(*due)
	if err != nil {
		return err
	}
	draft := task.Draft{
		Title:       strings.TrimSpace(*title),
		Description: strings.TrimSpace(*description),
		Due:         dueDate,
	}
	path, err := e.store.Add(*name, draft)
	if err != nil {
		return err
	}
	e.logger.Debug("task added", "path", path)
	fmt.Fprintf(stdout, "Task '%s' added successfully.\n", draft.Title)
	return nil
}

// viewCommand prints a task file.
func (e *env) viewCommand(args []string) error {
	fs := newFlagSet("view")
	if err := fs.Parse(args); err != nil {
		return err
	}
	name, err := oneArg(fs, "view <name>")
	if err != nil {
		return err
	}
	return e.store.View(name, stdout)
}

// deleteCommand removes a task file.
func (e *env) deleteCommand(args []string) error {
	fs := newFlagSet("delete")
	if err := fs.Parse(args); err != nil {
		return err
	}
	name, err := oneArg(fs, "delete <name>")
	if err != nil {
		return err
	}
	if err := e.store.Delete(name); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Task '%s' deleted successfully.\n", name)
	return nil
}

// filterCommand prints the due or upcoming tasks.
func (e *env) filterCommand(args []string) error {
	fs := newFlagSet("filter")
	rulesName := fs.String("rules", e.cfg.FilterRules, "Filter rules: literal or strict")
	if err := fs.Parse(args); err != nil {
		return err
	}
	mode, err := oneArg(fs, "filter [-rules literal|strict] <due|upcoming>")
	if err != nil {
		return err
	}
	rules, err := task.ParseRules(*rulesName)
	if err != nil {
		return err
	}

	opts := e.filterOptions()
	opts.Rules = rules
	result, err := e.store.Filter(mode, opts)
	if err != nil {
		return err
	}
	_, err = result.WriteTo(stdout)
	return err
}

// lsCommand lists task files sorted by due date.
func (e *env) lsCommand(args []string) error {
	fs := newFlagSet("ls")
	verbose := fs.Bool("v", false, "Show more details")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	var status task.Status
	if len(remaining) == 1 {
		s, err := task.ParseStatus(remaining[0])
		if err != nil {
			return err
		}
		status = s
	}

	listings, err := e.store.List()
	if err != nil {
		return err
	}
	task.SortListings(listings)

	printed := 0
	for _, l := range listings {
		if status != "" && (l.Record == nil || l.Record.Status() != status) {
			continue
		}
		printListing(l, *verbose)
		printed++
	}
	if printed == 0 {
		fmt.Fprintln(stdout, "No tasks found.")
	}
	return nil
}

func printListing(l task.Listing, verbose bool) {
	if l.Err != nil {
		fmt.Fprintf(stdout, "  ❓ %-10s  %s\n", "", l.Name)
		if verbose {
			fmt.Fprintf(stdout, "      %v\n", l.Err)
		}
		return
	}
	r := l.Record
	fmt.Fprintf(stdout, "  %s %s  %s  %s\n", r.Status().Icon(), task.FormatDate(r.Due), l.Name, r.Title)
	if verbose && r.Description != "" {
		fmt.Fprintf(stdout, "      %s\n", r.Description)
	}
}

// tuiCommand launches the TUI.
func (e *env) tuiCommand(ctx context.Context, args []string) error {
	fs := newFlagSet("tui")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	tabName := ""
	if len(remaining) == 1 {
		tabName = remaining[0]
	}
	tab, err := ui.ParseTab(tabName)
	if err != nil {
		return err
	}
	return ui.RunTUI(ctx, e.store, e.filterOptions(), ui.WithTab(tab))
}
