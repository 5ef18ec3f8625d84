// Package repl implements the interactive task prompt.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasker-go/internal/logging"
	"github.com/nibzard/tasker-go/internal/task"
)

// Session reads commands line by line and runs them against a store.
type Session struct {
	store  *task.Store
	in     io.Reader
	out    io.Writer
	logger *log.Logger
	filter task.FilterOptions

	reader *lineReader
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for command diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFilterOptions sets the rules and clock used by the filter command.
func WithFilterOptions(opts task.FilterOptions) Option {
	return func(s *Session) {
		s.filter = opts
	}
}

// New returns a session reading from in and writing to out.
func New(store *task.Store, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		store:  store,
		in:     in,
		out:    out,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run prints the banner and menu, then executes commands until the input
// ends, a quit command is read, or ctx is cancelled. Command failures are
// reported to the user and never end the session.
func (s *Session) Run(ctx context.Context) error {
	defer s.close()

	s.println(Banner)
	s.println()
	s.writeMenu()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := s.readLine(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !s.Execute(ctx, line) {
			return ctx.Err()
		}
	}
}

func (s *Session) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Session) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

func (s *Session) readLine(ctx context.Context) (string, error) {
	if s.reader == nil {
		s.reader = newLineReader(s.in)
	}
	return s.reader.next(ctx)
}

func (s *Session) close() {
	if s.reader != nil {
		s.reader.stop()
		s.reader = nil
	}
}

// lineReader reads lines of any length on its own goroutine so a blocked
// read does not hold up cancellation.
type lineReader struct {
	lines chan string
	done  chan struct{}
	err   error // valid once lines is closed
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{
		lines: make(chan string),
		done:  make(chan struct{}),
	}
	go func() {
		defer close(lr.lines)
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
				select {
				case lr.lines <- line:
				case <-lr.done:
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					lr.err = err
				}
				return
			}
		}
	}()
	return lr
}

func (lr *lineReader) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lr.lines:
		if !ok {
			if lr.err != nil {
				return "", fmt.Errorf("read input: %w", lr.err)
			}
			return "", io.EOF
		}
		return line, nil
	}
}

func (lr *lineReader) stop() {
	close(lr.done)
}
