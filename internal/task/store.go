package task

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasker-go/internal/taskdir"
)

// CollisionPolicy decides what Add does when the target file already exists.
type CollisionPolicy string

const (
	// CollisionOverwrite truncates the existing file.
	CollisionOverwrite CollisionPolicy = "overwrite"
	// CollisionFail refuses to touch the existing file.
	CollisionFail CollisionPolicy = "fail"
	// CollisionAppend writes the new task after the existing content.
	CollisionAppend CollisionPolicy = "append"
)

// ParseCollisionPolicy parses a policy name. An empty string selects overwrite.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch p := CollisionPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return CollisionOverwrite, nil
	case CollisionOverwrite, CollisionFail, CollisionAppend:
		return p, nil
	default:
		return "", fmt.Errorf("unknown collision policy %q (expected overwrite|fail|append)", s)
	}
}

func (p CollisionPolicy) openFlags() int {
	switch p {
	case CollisionFail:
		return os.O_WRONLY | os.O_CREATE | os.O_EXCL
	case CollisionAppend:
		return os.O_WRONLY | os.O_CREATE | os.O_APPEND
	default:
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
}

// Entry is an eligible task file found in the task directory.
type Entry struct {
	Name string
	Stem string
	Path string
}

// Listing is the outcome of loading one entry. Exactly one of Record and
// Err is set.
type Listing struct {
	Entry
	Record *Record
	Err    error
}

// Store reads and writes task files in a single directory.
type Store struct {
	dir       string
	collision CollisionPolicy
	logger    *log.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCollisionPolicy sets the policy Add applies to existing files.
func WithCollisionPolicy(p CollisionPolicy) StoreOption {
	return func(s *Store) {
		s.collision = p
	}
}

// WithLogger sets the logger used for skips and warnings.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore returns a store rooted at dir. An empty dir means the current
// working directory.
func NewStore(dir string, opts ...StoreOption) *Store {
	if dir == "" {
		dir = taskdir.DefaultDir
	}
	s := &Store{
		dir:       dir,
		collision: CollisionOverwrite,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the task directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the location of a task file name inside the store.
func (s *Store) Path(name string) string {
	return taskdir.Path(s.dir, name)
}

// Add writes a new task file called name and returns its path.
func (s *Store) Add(name string, d Draft) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return "", err
	}
	if !taskdir.IsTaskFile(name) {
		s.logger.Warn("task file does not end in "+taskdir.Ext+" and will not appear in filter results", "name", name)
	}

	path := s.Path(name)
	f, err := os.OpenFile(path, s.collision.openFlags(), 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("create task file %s: %w", name, ErrTaskExists)
		}
		return "", fmt.Errorf("create task file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(Format(d)); err != nil {
		return "", fmt.Errorf("write task file: %w", err)
	}
	s.logger.Debug("task written", "path", path, "policy", s.collision)
	return path, nil
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q must not contain a path separator", ErrInvalidName, name)
	}
	return nil
}

// View copies the task file to w line by line. Lines of any length are
// copied and CRLF endings are written as LF.
func (s *Store) View(name string, w io.Writer) error {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return fmt.Errorf("open task file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if _, werr := fmt.Fprintln(w, line); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read task file: %w", err)
		}
	}
}

// Delete removes the task file called name.
func (s *Store) Delete(name string) error {
	path := s.Path(name)
	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("delete task file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("delete task file %s: %w", name, ErrIsDirectory)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete task file: %w", err)
	}
	s.logger.Debug("task deleted", "name", name)
	return nil
}

// Scan lists the eligible task files in the directory. Only a failure to
// list the directory itself is an error.
func (s *Store) Scan() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &DirectoryReadError{Dir: s.dir, Err: err}
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !taskdir.IsTaskFile(name) {
			continue
		}
		entries = append(entries, Entry{
			Name: name,
			Stem: taskdir.Stem(name),
			Path: s.Path(name),
		})
	}
	return entries, nil
}

// Load reads and parses one entry.
func (s *Store) Load(e Entry) (*Record, error) {
	data, err := os.ReadFile(e.Path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("read task file %s: %w", e.Name, ErrInvalidEncoding)
	}
	return Parse(e.Name, e.Path, data)
}

// List scans the directory and loads every eligible file. Per-file
// failures are recorded on the listing rather than returned.
func (s *Store) List() ([]Listing, error) {
	entries, err := s.Scan()
	if err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(entries))
	for _, e := range entries {
		rec, err := s.Load(e)
		listings = append(listings, Listing{Entry: e, Record: rec, Err: err})
	}
	return listings, nil
}

// SortListings orders listings by due date, then by name. Listings that
// failed to load sort last.
func SortListings(listings []Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		a, b := listings[i], listings[j]
		if (a.Record == nil) != (b.Record == nil) {
			return a.Record != nil
		}
		if a.Record != nil && !a.Record.Due.Equal(b.Record.Due) {
			return a.Record.Due.Before(b.Record.Due)
		}
		return a.Name < b.Name
	})
}
