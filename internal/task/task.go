package task

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DateLayout is the on-disk form of a due date.
const DateLayout = "2006-01-02"

// Line prefixes of the task file format.
const (
	TitlePrefix       = "Title:"
	DescriptionPrefix = "Description:"
	DueDatePrefix     = "Due Date:"
)

// Completion markers searched for in a task body.
const (
	MarkerComplete   = "[Complete]"
	MarkerIncomplete = "[Incomplete]"
)

// Field names returned by Fields and checked by Validate.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDueDate     = "due_date"
	FieldStatus      = "status"
)

// Status is the completion state derived from the markers in a task body.
type Status string

const (
	StatusComplete   Status = "complete"
	StatusIncomplete Status = "incomplete"
	StatusUnmarked   Status = "unmarked"
)

// ParseStatus parses a status name.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusComplete, StatusIncomplete, StatusUnmarked:
		return st, nil
	default:
		return "", fmt.Errorf("unknown status %q (expected complete|incomplete|unmarked)", s)
	}
}

// Icon returns the marker used when listing tasks.
func (s Status) Icon() string {
	switch s {
	case StatusComplete:
		return "✅"
	case StatusIncomplete:
		return "🔄"
	default:
		return "📝"
	}
}

// Record is a task file as read from disk.
type Record struct {
	Name        string // file name, the handle for view and delete
	Path        string
	Title       string
	Description string
	Due         time.Time
	Body        string
}

// Stem returns the file name without its extension, which is how
// filter output titles a task.
func (r *Record) Stem() string {
	return strings.TrimSuffix(r.Name, filepath.Ext(r.Name))
}

// Complete reports whether the body carries the [Complete] marker.
func (r *Record) Complete() bool {
	return strings.Contains(r.Body, MarkerComplete)
}

// Incomplete reports whether the body carries the [Incomplete] marker.
func (r *Record) Incomplete() bool {
	return strings.Contains(r.Body, MarkerIncomplete)
}

// Status returns the record's completion state. [Complete] wins when
// both markers are present.
func (r *Record) Status() Status {
	return statusOf(r.Body)
}

func statusOf(body string) Status {
	switch {
	case strings.Contains(body, MarkerComplete):
		return StatusComplete
	case strings.Contains(body, MarkerIncomplete):
		return StatusIncomplete
	default:
		return StatusUnmarked
	}
}

// Draft holds the fields of a task that has not been written yet.
type Draft struct {
	Title       string
	Description string
	Due         time.Time
}

// Validate checks the draft before it is written.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Format renders a draft in the task file format.
func Format(d Draft) []byte {
	return []byte(fmt.Sprintf("%s %s\n%s %s\n%s %s\n",
		TitlePrefix, strings.TrimSpace(d.Title),
		DescriptionPrefix, strings.TrimSpace(d.Description),
		DueDatePrefix, FormatDate(d.Due),
	))
}

// ParseDate parses a YYYY-MM-DD date. Surrounding whitespace is ignored.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &DateError{Value: s, Err: err}
	}
	return t, nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CalendarDate strips the clock from t, keeping its calendar date in t's
// own location. The result is midnight UTC so it compares directly with
// dates returned by ParseDate.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Parse reads a task file body. It fails with ErrNoDueDate when no line
// starts with "Due Date:" and with a *DateError when the date is not
// YYYY-MM-DD.
func Parse(name, path string, content []byte) (*Record, error) {
	body := string(content)
	fields := Fields(content)

	value, ok := fields[FieldDueDate]
	if !ok {
		return nil, ErrNoDueDate
	}
	due, err := ParseDate(value)
	if err != nil {
		return nil, err
	}

	return &Record{
		Name:        name,
		Path:        path,
		Title:       fields[FieldTitle],
		Description: fields[FieldDescription],
		Due:         due,
		Body:        body,
	}, nil
}

// Fields returns the tagged fields of a task file without interpreting
// them. Only the first line carrying each prefix counts. A field is absent
// from the map when no line carries its prefix.
func Fields(content []byte) map[string]string {
	fields := make(map[string]string, 3)
	for _, line := range lines(string(content)) {
		switch {
		case strings.HasPrefix(line, TitlePrefix):
			setOnce(fields, FieldTitle, strings.TrimSpace(strings.TrimPrefix(line, TitlePrefix)))
		case strings.HasPrefix(line, DescriptionPrefix):
			setOnce(fields, FieldDescription, strings.TrimSpace(strings.TrimPrefix(line, DescriptionPrefix)))
		case strings.HasPrefix(line, DueDatePrefix):
			setOnce(fields, FieldDueDate, dueDateValue(line))
		}
	}
	return fields
}

// dueDateValue takes the text between the first and second colon, so
// "Due Date: 2024-01-01" yields "2024-01-01".
func dueDateValue(line string) string {
	parts := strings.Split(line, ":")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func setOnce(fields map[string]string, key, value string) {
	if _, ok := fields[key]; !ok {
		fields[key] = value
	}
}

func lines(s string) []string {
	out := strings.Split(s, "\n")
	for i, line := range out {
		out[i] = strings.TrimSuffix(line, "\r")
	}
	return out
}
