package task

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFilterOption is returned for a filter mode other than due or upcoming.
	ErrInvalidFilterOption = errors.New("invalid filter option")

	// ErrNoDueDate means a task file has no "Due Date:" line.
	ErrNoDueDate = errors.New("no due date line")

	// ErrInvalidDate means a due date is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")

	// ErrEmptyTitle is returned when a task title is blank after trimming.
	ErrEmptyTitle = errors.New("title must not be empty")

	// ErrInvalidName is returned for an empty task file name or one containing a path separator.
	ErrInvalidName = errors.New("invalid task file name")

	// ErrTaskExists is returned when the fail collision policy meets an existing file.
	ErrTaskExists = errors.New("task file already exists")

	// ErrInvalidEncoding means a task file is not valid UTF-8.
	ErrInvalidEncoding = errors.New("task file is not valid UTF-8")

	// ErrIsDirectory is returned when delete targets a directory.
	ErrIsDirectory = errors.New("is a directory, not a task file")

	// ErrInvalidInput is returned when an add command does not split into its fields.
	ErrInvalidInput = errors.New("invalid input format")
)

// DirectoryReadError is returned when the task directory cannot be listed.
type DirectoryReadError struct {
	Dir string
	Err error
}

func (e *DirectoryReadError) Error() string {
	return fmt.Sprintf("read task directory %s: %v", e.Dir, e.Err)
}

// Unwrap returns the underlying error.
func (e *DirectoryReadError) Unwrap() error {
	return e.Err
}

// DateError reports a due date that failed to parse.
type DateError struct {
	Value string
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("parse due date %q: %v", e.Value, e.Err)
}

// Unwrap exposes both ErrInvalidDate and the underlying parse error.
func (e *DateError) Unwrap() []error {
	return []error{ErrInvalidDate, e.Err}
}
