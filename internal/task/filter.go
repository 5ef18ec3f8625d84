package task

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Mode selects which classification a filter applies.
type Mode string

const (
	ModeDue      Mode = "due"
	ModeUpcoming Mode = "upcoming"
)

// ParseMode validates a filter mode argument.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeDue, ModeUpcoming:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFilterOption, s)
	}
}

// Rules names a classification truth table.
type Rules string

const (
	// RulesLiteral matches on the marker OR the date comparison.
	RulesLiteral Rules = "literal"
	// RulesStrict excludes completed tasks and matches on the date alone.
	RulesStrict Rules = "strict"
)

// ParseRules parses a rules name. An empty string selects literal.
func ParseRules(s string) (Rules, error) {
	switch r := Rules(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return RulesLiteral, nil
	case RulesLiteral, RulesStrict:
		return r, nil
	default:
		return "", fmt.Errorf("unknown filter rules %q (expected literal|strict)", s)
	}
}

// Classify reports whether rec matches mode on the calendar date today.
func (r Rules) Classify(mode Mode, rec *Record, today time.Time) bool {
	today = CalendarDate(today)
	due := CalendarDate(rec.Due)
	pastOrToday := !due.After(today)

	switch r {
	case RulesStrict:
		if rec.Complete() {
			return false
		}
		if mode == ModeDue {
			return pastOrToday
		}
		return !pastOrToday
	default:
		if mode == ModeDue {
			return rec.Complete() || pastOrToday
		}
		return rec.Incomplete() || !pastOrToday
	}
}

// FilterOptions configures Store.Filter.
type FilterOptions struct {
	Rules Rules
	// Today returns the current time. Only its local calendar date is used.
	// Nil means time.Now.
	Today func() time.Time
}

// Match is one task reported by a filter.
type Match struct {
	Title string
	Path  string
	Due   time.Time
}

// Result holds the matches of one filter run in directory order.
type Result struct {
	Mode    Mode
	Matches []Match
}

// Empty reports whether nothing matched.
func (r *Result) Empty() bool {
	return len(r.Matches) == 0
}

// WriteTo prints each match as a Title/Path pair, or a notice naming the
// mode when nothing matched.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	var total int64
	write := func(format string, args ...any) error {
		n, err := fmt.Fprintf(w, format, args...)
		total += int64(n)
		return err
	}

	if r.Empty() {
		err := write("No %s tasks found.\n", r.Mode)
		return total, err
	}
	for _, m := range r.Matches {
		if err := write("Title: %s\nPath: %s\n", m.Title, m.Path); err != nil {
			return total, err
		}
	}
	return total, nil
}

// Filter scans the task directory and returns the files matching mode.
// An invalid mode fails with ErrInvalidFilterOption before the directory
// is read. Files that cannot be read or carry no valid due date are
// skipped.
func (s *Store) Filter(mode string, opts FilterOptions) (*Result, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	rules := opts.Rules
	if rules == "" {
		rules = RulesLiteral
	}
	now := opts.Today
	if now == nil {
		now = time.Now
	}
	today := CalendarDate(now())

	entries, err := s.Scan()
	if err != nil {
		return nil, err
	}

	result := &Result{Mode: m}
	for _, e := range entries {
		rec, err := s.Load(e)
		if err != nil {
			s.logger.Debug("skipping task file", "path", e.Path, "err", err)
			continue
		}
		if !rules.Classify(m, rec, today) {
			continue
		}
		result.Matches = append(result.Matches, Match{
			Title: e.Stem,
			Path:  e.Path,
			Due:   rec.Due,
		})
	}

	s.logger.Debug("filter finished", "mode", m, "rules", rules, "scanned", len(entries), "matched", len(result.Matches))
	return result, nil
}
