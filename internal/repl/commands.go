package repl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nibzard/tasker-go/internal/task"
)

// AddSeparator splits the fields of an add command.
const AddSeparator = `\\`

// User-facing messages.
const (
	Banner = "Welcome to Tasker!"

	AddUsage    = `add \\<title>\\<description>\\<due_date>`
	ViewUsage   = "view <filename>"
	DeleteUsage = "delete <filename>"
	FilterUsage = "filter <due | upcoming>"

	FileNamePrompt = "Give your file a name and extension you will easily remember:"

	MsgInvalidCommand      = "Invalid command"
	MsgInvalidFilterOption = "Invalid filter option."
	MsgInvalidDate         = "Invalid date format. Use format: YYYY-MM-DD"
	MsgEmptyTitle          = "Title must not be empty."
	MsgReadDirFailed       = "Failed to read task directory."
	MsgOpenFailed          = "Failed to open task file."
	MsgDeleteFailed        = "Failed to delete task file."
	MsgCreateFailed        = "Failed to create task file."
)

func (s *Session) writeMenu() {
	s.println("Commands:")
	for _, usage := range []string{AddUsage, ViewUsage, DeleteUsage, FilterUsage} {
		s.printf("- %s\n", usage)
	}
	s.println("- list")
	s.println("- help")
	s.println("- quit")
	s.println()
}

func (s *Session) usage(u string) {
	s.printf("Invalid input format. Use: %s\n", u)
}

// Execute runs one command line and reports whether the session should
// keep reading.
func (s *Session) Execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	name := commandName(fields[0])
	s.logger.Debug("command", "name", name, "args", len(fields)-1)

	switch name {
	case "add":
		return s.add(ctx, line)
	case "view":
		if len(fields) != 2 {
			s.usage(ViewUsage)
			return true
		}
		s.view(fields[1])
	case "delete":
		if len(fields) != 2 {
			s.usage(DeleteUsage)
			return true
		}
		s.delete(fields[1])
	case "filter":
		if len(fields) != 2 {
			s.usage(FilterUsage)
			return true
		}
		s.runFilter(fields[1])
	case "list", "ls":
		s.list()
	case "help":
		s.writeMenu()
	case "quit", "exit":
		return false
	default:
		s.println(MsgInvalidCommand)
	}
	return true
}

// commandName returns the command word, which may run straight into the
// first add separator.
func commandName(word string) string {
	name, _, _ := strings.Cut(word, AddSeparator)
	return name
}

// ParseAddLine splits an add command line into a draft. The line must hold
// exactly four fields separated by AddSeparator, the first being the
// command word.
func ParseAddLine(line string) (task.Draft, error) {
	parts := strings.Split(line, AddSeparator)
	if len(parts) != 4 {
		return task.Draft{}, fmt.Errorf("%w: want 4 fields, got %d", task.ErrInvalidInput, len(parts))
	}
	due, err := task.ParseDate(parts[3])
	if err != nil {
		return task.Draft{}, err
	}
	return task.Draft{
		Title:       strings.TrimSpace(parts[1]),
		Description: strings.TrimSpace(parts[2]),
		Due:         due,
	}, nil
}

func (s *Session) add(ctx context.Context, line string) bool {
	draft, err := ParseAddLine(line)
	if err != nil {
		s.logger.Debug("add rejected", "err", err)
		if errors.Is(err, task.ErrInvalidInput) {
			s.usage(AddUsage)
		} else {
			s.println(MsgInvalidDate)
		}
		return true
	}

	s.println(FileNamePrompt)
	name, err := s.readLine(ctx)
	if err != nil {
		s.logger.Debug("add abandoned", "err", err)
		return false
	}

	if _, err := s.store.Add(name, draft); err != nil {
		s.logger.Debug("add failed", "name", name, "err", err)
		switch {
		case errors.Is(err, task.ErrEmptyTitle):
			s.println(MsgEmptyTitle)
		case errors.Is(err, task.ErrTaskExists):
			s.printf("Task file '%s' already exists.\n", strings.TrimSpace(name))
		default:
			s.println(MsgCreateFailed)
		}
		return true
	}
	s.printf("Task '%s' added successfully.\n", draft.Title)
	return true
}

func (s *Session) view(name string) {
	if err := s.store.View(name, s.out); err != nil {
		s.logger.Debug("view failed", "name", name, "err", err)
		s.println(MsgOpenFailed)
	}
}

func (s *Session) delete(name string) {
	if err := s.store.Delete(name); err != nil {
		s.logger.Debug("delete failed", "name", name, "err", err)
		s.println(MsgDeleteFailed)
		return
	}
	s.printf("Task '%s' deleted successfully.\n", name)
}

func (s *Session) runFilter(mode string) {
	result, err := s.store.Filter(mode, s.filter)
	if err != nil {
		s.logger.Debug("filter failed", "mode", mode, "err", err)
		s.reportScanError(err)
		return
	}
	if _, err := result.WriteTo(s.out); err != nil {
		s.logger.Error("write filter result", "err", err)
	}
}

func (s *Session) list() {
	listings, err := s.store.List()
	if err != nil {
		s.logger.Debug("list failed", "err", err)
		s.reportScanError(err)
		return
	}
	if len(listings) == 0 {
		s.println("No tasks found.")
		return
	}
	for _, l := range listings {
		if l.Err != nil {
			s.printf("❓ ----------  %s\n", l.Name)
			continue
		}
		s.printf("%s %s  %s\n", l.Record.Status().Icon(), task.FormatDate(l.Record.Due), l.Name)
	}
}

func (s *Session) reportScanError(err error) {
	var dre *task.DirectoryReadError
	switch {
	case errors.Is(err, task.ErrInvalidFilterOption):
		s.println(MsgInvalidFilterOption)
	case errors.As(err, &dre):
		s.println(MsgReadDirFailed)
	default:
		s.println(err)
	}
}
