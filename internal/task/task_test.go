package task

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDateRoundTrip(t *testing.T) {
	start := time.Date(1999, 12, 25, 0, 0, 0, 0, time.UTC)
	end := time.Date(2001, 3, 5, 0, 0, 0, 0, time.UTC)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		s := d.Format(DateLayout)
		got, err := ParseDate(s)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", s, err)
		}
		if !got.Equal(d) {
			t.Fatalf("ParseDate(%q): got %v, want %v", s, got, d)
		}
		if FormatDate(got) != s {
			t.Fatalf("FormatDate(ParseDate(%q)) = %q", s, FormatDate(got))
		}
	}

	for _, s := range []string{"2024-02-29", "0001-01-01", "9999-12-31", " 2024-06-01 "} {
		got, err := ParseDate(s)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", s, err)
			continue
		}
		if FormatDate(got) != strings.TrimSpace(s) {
			t.Errorf("round trip %q: got %q", s, FormatDate(got))
		}
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, s := range []string{"", "not-a-date", "2023-02-29", "2024-13-01", "2024/01/01", "01-01-2024"} {
		t.Run(s, func(t *testing.T) {
			_, err := ParseDate(s)
			if err == nil {
				t.Fatalf("ParseDate(%q): expected error", s)
			}
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("expected ErrInvalidDate, got %v", err)
			}
			var de *DateError
			if !errors.As(err, &de) || de.Value != s {
				t.Errorf("expected *DateError for %q, got %v", s, err)
			}
		})
	}
}

func TestCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	at := time.Date(2026, 10, 19, 23, 59, 0, 0, loc)
	got := CalendarDate(at)
	want := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CalendarDate: got %v, want %v", got, want)
	}
}

func TestFormat(t *testing.T) {
	due, _ := ParseDate("2024-01-01")
	got := string(Format(Draft{Title: "  Buy milk ", Description: "Semi-skimmed", Due: due}))
	want := "Title: Buy milk\nDescription: Semi-skimmed\nDue Date: 2024-01-01\n"
	if got != want {
		t.Errorf("Format: got %q, want %q", got, want)
	}
}

func TestDraftValidate(t *testing.T) {
	due, _ := ParseDate("2024-01-01")

	if err := (Draft{Title: "ok", Due: due}).Validate(); err != nil {
		t.Errorf("expected valid draft, got %v", err)
	}
	if err := (Draft{Title: "   ", Due: due}).Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
	first, err := ParseDate("0001-01-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if err := (Draft{Title: "ok", Due: first}).Validate(); err != nil {
		t.Errorf("0001-01-01 is a valid due date, got %v", err)
	}
}

func TestParse(t *testing.T) {
	t.Run("fields created by Format", func(t *testing.T) {
		due, _ := ParseDate("2030-05-17")
		content := Format(Draft{Title: "Ship", Description: "v1 release", Due: due})

		rec, err := Parse("ship.txt", "ship.txt", content)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if rec.Title != "Ship" || rec.Description != "v1 release" {
			t.Errorf("unexpected fields: %+v", rec)
		}
		if !rec.Due.Equal(due) {
			t.Errorf("Due: got %v, want %v", rec.Due, due)
		}
		if rec.Stem() != "ship" {
			t.Errorf("Stem: got %q", rec.Stem())
		}
	})

	t.Run("first due date line wins", func(t *testing.T) {
		content := []byte("Due Date: 2020-01-01\nDue Date: 2999-01-01\n")
		rec, err := Parse("a.txt", "a.txt", content)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if FormatDate(rec.Due) != "2020-01-01" {
			t.Errorf("Due: got %s", FormatDate(rec.Due))
		}
	})

	t.Run("CRLF line endings", func(t *testing.T) {
		content := []byte("Title: x\r\nDue Date: 2021-07-04\r\n")
		rec, err := Parse("x.txt", "x.txt", content)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if FormatDate(rec.Due) != "2021-07-04" {
			t.Errorf("Due: got %s", FormatDate(rec.Due))
		}
	})

	t.Run("prefix must start the line", func(t *testing.T) {
		_, err := Parse("a.txt", "a.txt", []byte("Title: a\n  Due Date: 2020-01-01\n"))
		if !errors.Is(err, ErrNoDueDate) {
			t.Errorf("expected ErrNoDueDate, got %v", err)
		}
	})

	t.Run("text after a second colon is ignored", func(t *testing.T) {
		_, err := Parse("a.txt", "a.txt", []byte("Due Date: 2020-01-01 10:30\n"))
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("expected ErrInvalidDate for %q, got %v", "2020-01-01 10", err)
		}
	})

	t.Run("missing due date", func(t *testing.T) {
		_, err := Parse("a.txt", "a.txt", []byte("Title: a\nDescription: b\n"))
		if !errors.Is(err, ErrNoDueDate) {
			t.Errorf("expected ErrNoDueDate, got %v", err)
		}
	})

	t.Run("unparsable due date", func(t *testing.T) {
		_, err := Parse("a.txt", "a.txt", []byte("Due Date: not-a-date\n"))
		var de *DateError
		if !errors.As(err, &de) {
			t.Fatalf("expected *DateError, got %v", err)
		}
		if de.Value != "not-a-date" {
			t.Errorf("DateError.Value: got %q", de.Value)
		}
	})
}

func TestStatus(t *testing.T) {
	tests := []struct {
		body string
		want Status
	}{
		{"Title: a\n[Complete]\n", StatusComplete},
		{"Title: a\nnotes [Incomplete] here\n", StatusIncomplete},
		{"Title: a\n", StatusUnmarked},
		{"[Incomplete] then [Complete]", StatusComplete},
		{"[complete] lowercase", StatusUnmarked},
	}
	for _, tt := range tests {
		rec := &Record{Body: tt.body}
		if got := rec.Status(); got != tt.want {
			t.Errorf("Status(%q): got %q, want %q", tt.body, got, tt.want)
		}
	}
}

func TestFields(t *testing.T) {
	fields := Fields([]byte("Title:  Spaced  \nDescription:\nOther: x\n"))
	if fields[FieldTitle] != "Spaced" {
		t.Errorf("title: got %q", fields[FieldTitle])
	}
	if v, ok := fields[FieldDescription]; !ok || v != "" {
		t.Errorf("description: got %q, present %v", v, ok)
	}
	if _, ok := fields[FieldDueDate]; ok {
		t.Error("due_date should be absent")
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"complete", "Incomplete", " unmarked "} {
		if _, err := ParseStatus(s); err != nil {
			t.Errorf("ParseStatus(%q): %v", s, err)
		}
	}
	if _, err := ParseStatus("done"); err == nil {
		t.Error("expected error for unknown status")
	}
	if StatusComplete.Icon() == StatusUnmarked.Icon() {
		t.Error("complete and unmarked should list with different icons")
	}
}
