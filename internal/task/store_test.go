package task

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeFile creates a file in dir for the test.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestStoreAdd(t *testing.T) {
	t.Run("writes the task file format", func(t *testing.T) {
		dir := t.TempDir()
		store := NewStore(dir)

		path, err := store.Add("milk.txt", Draft{Title: "Buy milk", Description: "2L", Due: mustDate(t, "2024-01-01")})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if path != filepath.Join(dir, "milk.txt") {
			t.Errorf("path: got %q", path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		want := "Title: Buy milk\nDescription: 2L\nDue Date: 2024-01-01\n"
		if string(data) != want {
			t.Errorf("content: got %q, want %q", data, want)
		}
	})

	t.Run("rejects empty title", func(t *testing.T) {
		store := NewStore(t.TempDir())
		_, err := store.Add("a.txt", Draft{Title: " ", Due: mustDate(t, "2024-01-01")})
		if !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("expected ErrEmptyTitle, got %v", err)
		}
	})

	t.Run("rejects bad names", func(t *testing.T) {
		store := NewStore(t.TempDir())
		for _, name := range []string{"", "  ", "..", "sub/a.txt", `..\a.txt`} {
			_, err := store.Add(name, Draft{Title: "a", Due: mustDate(t, "2024-01-01")})
			if !errors.Is(err, ErrInvalidName) {
				t.Errorf("Add(%q): expected ErrInvalidName, got %v", name, err)
			}
		}
	})

	t.Run("overwrite policy replaces content", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.txt", "old content that is longer than the new one\n[Complete]\n")
		store := NewStore(dir)

		if _, err := store.Add("a.txt", Draft{Title: "new", Due: mustDate(t, "2024-01-01")}); err != nil {
			t.Fatalf("Add: %v", err)
		}
		data, _ := os.ReadFile(filepath.Join(dir, "a.txt"))
		if strings.Contains(string(data), "old content") || strings.Contains(string(data), MarkerComplete) {
			t.Errorf("expected old content to be gone, got %q", data)
		}
	})

	t.Run("fail policy keeps existing file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.txt", "keep me\n")
		store := NewStore(dir, WithCollisionPolicy(CollisionFail))

		_, err := store.Add("a.txt", Draft{Title: "new", Due: mustDate(t, "2024-01-01")})
		if !errors.Is(err, ErrTaskExists) {
			t.Fatalf("expected ErrTaskExists, got %v", err)
		}
		data, _ := os.ReadFile(filepath.Join(dir, "a.txt"))
		if string(data) != "keep me\n" {
			t.Errorf("existing file modified: %q", data)
		}
	})

	t.Run("append policy keeps both", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.txt", "first\n")
		store := NewStore(dir, WithCollisionPolicy(CollisionAppend))

		if _, err := store.Add("a.txt", Draft{Title: "second", Due: mustDate(t, "2024-01-01")}); err != nil {
			t.Fatalf("Add: %v", err)
		}
		data, _ := os.ReadFile(filepath.Join(dir, "a.txt"))
		if !strings.HasPrefix(string(data), "first\nTitle: second\n") {
			t.Errorf("unexpected content: %q", data)
		}
	})

	t.Run("earliest representable date", func(t *testing.T) {
		dir := t.TempDir()
		path, err := NewStore(dir).Add("first.txt", Draft{Title: "first", Due: mustDate(t, "0001-01-01")})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		data, _ := os.ReadFile(path)
		if !strings.Contains(string(data), "Due Date: 0001-01-01\n") {
			t.Errorf("unexpected content: %q", data)
		}
	})

	t.Run("name without task extension is still written", func(t *testing.T) {
		dir := t.TempDir()
		store := NewStore(dir)
		if _, err := store.Add("notes.md", Draft{Title: "x", Due: mustDate(t, "2024-01-01")}); err != nil {
			t.Fatalf("Add: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "notes.md")); err != nil {
			t.Errorf("expected file: %v", err)
		}
	})
}

func TestParseCollisionPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    CollisionPolicy
		wantErr bool
	}{
		{"", CollisionOverwrite, false},
		{"overwrite", CollisionOverwrite, false},
		{"FAIL", CollisionFail, false},
		{" append ", CollisionAppend, false},
		{"merge", "", true},
	}
	for _, tt := range tests {
		got, err := ParseCollisionPolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCollisionPolicy(%q): err %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCollisionPolicy(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStoreView(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "Title: a\r\nDescription: b\nno trailing newline")
	store := NewStore(dir)

	var buf bytes.Buffer
	if err := store.View("a.txt", &buf); err != nil {
		t.Fatalf("View: %v", err)
	}
	want := "Title: a\nDescription: b\nno trailing newline\n"
	if buf.String() != want {
		t.Errorf("View: got %q, want %q", buf.String(), want)
	}

	if err := store.View("missing.txt", &buf); err == nil {
		t.Error("expected error viewing a missing file")
	} else if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestStoreViewLongLine(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("x", 70000)
	writeFile(t, dir, "long.txt", "Title: "+long+"\nDue Date: 2020-01-01")

	var buf bytes.Buffer
	if err := NewStore(dir).View("long.txt", &buf); err != nil {
		t.Fatalf("View: %v", err)
	}
	want := "Title: " + long + "\nDue Date: 2020-01-01\n"
	if buf.String() != want {
		t.Errorf("View: got %d bytes, want %d", buf.Len(), len(want))
	}
}

func TestStoreDelete(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "x")
	store := NewStore(dir)

	if err := store.Delete("a.txt"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected file to be gone, stat err %v", err)
	}
	if err := store.Delete("a.txt"); err == nil {
		t.Error("expected error deleting a missing file")
	}

	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete("sub"); !errors.Is(err, ErrIsDirectory) {
		t.Errorf("expected ErrIsDirectory, got %v", err)
	}
	if info, err := os.Stat(sub); err != nil || !info.IsDir() {
		t.Errorf("directory should survive delete, stat err %v", err)
	}
}

func TestStoreScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "Due Date: 2020-01-01\n")
	writeFile(t, dir, "notes.md", "Due Date: 2020-01-01\n")
	writeFile(t, dir, "README", "Due Date: 2020-01-01\n")
	writeFile(t, dir, "upper.TXT", "Due Date: 2020-01-01\n")
	if err := os.Mkdir(filepath.Join(dir, "folder.txt"), 0755); err != nil {
		t.Fatal(err)
	}

	entries, err := NewStore(dir).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %+v", entries)
	}
	e := entries[0]
	if e.Name != "a.txt" || e.Stem != "a" || e.Path != filepath.Join(dir, "a.txt") {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestStoreScanMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	_, err := NewStore(dir).Scan()

	var dre *DirectoryReadError
	if !errors.As(err, &dre) {
		t.Fatalf("expected *DirectoryReadError, got %v", err)
	}
	if dre.Dir != dir {
		t.Errorf("Dir: got %q, want %q", dre.Dir, dir)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected to unwrap to os.ErrNotExist, got %v", err)
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.txt", "Title: g\nDue Date: 2020-01-01\n")
	writeFile(t, dir, "nodate.txt", "Title: n\n")
	writeFile(t, dir, "baddate.txt", "Due Date: soon\n")

	listings, err := NewStore(dir).List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listings) != 3 {
		t.Fatalf("expected 3 listings, got %d", len(listings))
	}

	byName := make(map[string]Listing)
	for _, l := range listings {
		byName[l.Name] = l
	}
	if l := byName["good.txt"]; l.Err != nil || l.Record == nil || l.Record.Title != "g" {
		t.Errorf("good.txt: %+v", l)
	}
	if l := byName["nodate.txt"]; !errors.Is(l.Err, ErrNoDueDate) || l.Record != nil {
		t.Errorf("nodate.txt: %+v", l)
	}
	if l := byName["baddate.txt"]; !errors.Is(l.Err, ErrInvalidDate) {
		t.Errorf("baddate.txt: %+v", l)
	}
}

func TestSortListings(t *testing.T) {
	early := &Record{Due: mustDate(t, "2020-01-01")}
	late := &Record{Due: mustDate(t, "2030-01-01")}
	listings := []Listing{
		{Entry: Entry{Name: "broken.txt"}, Err: ErrNoDueDate},
		{Entry: Entry{Name: "z.txt"}, Record: late},
		{Entry: Entry{Name: "b.txt"}, Record: early},
		{Entry: Entry{Name: "a.txt"}, Record: early},
		{Entry: Entry{Name: "abroken.txt"}, Err: ErrNoDueDate},
	}
	SortListings(listings)

	want := []string{"a.txt", "b.txt", "z.txt", "abroken.txt", "broken.txt"}
	for i, l := range listings {
		if l.Name != want[i] {
			t.Fatalf("order: got %v at %d, want %v", l.Name, i, want)
		}
	}
}
