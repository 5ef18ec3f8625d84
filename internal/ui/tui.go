// Package ui provides optional terminal interfaces.
package ui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasker-go/internal/task"
)

// Tab selects which tasks the TUI lists.
type Tab int

const (
	TabAll Tab = iota
	TabDue
	TabUpcoming
)

func (t Tab) String() string {
	switch t {
	case TabDue:
		return "Due"
	case TabUpcoming:
		return "Upcoming"
	default:
		return "All"
	}
}

// ParseTab parses a tab name. An empty string selects all tasks.
func ParseTab(s string) (Tab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return TabAll, nil
	case string(task.ModeDue):
		return TabDue, nil
	case string(task.ModeUpcoming):
		return TabUpcoming, nil
	default:
		return TabAll, fmt.Errorf("%w: %q", task.ErrInvalidFilterOption, s)
	}
}

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiModel)

// WithTab sets the tab shown on start.
func WithTab(t Tab) TUIOption {
	return func(m *tuiModel) {
		m.tab = t
	}
}

// WithRefreshInterval sets how often the task directory is rescanned.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(m *tuiModel) {
		if d > 0 {
			m.tickInterval = d
		}
	}
}

// RunTUI starts the task browser over store.
func RunTUI(ctx context.Context, store *task.Store, filter task.FilterOptions, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(store, filter, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	activeTab     = lipgloss.NewStyle().Bold(true).Underline(true)
	inactiveTab   = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	detailStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle   = lipgloss.NewStyle().Faint(true)
)

type tuiModel struct {
	store        *task.Store
	filter       task.FilterOptions
	tab          Tab
	listings     []task.Listing
	due          map[string]bool // paths matching the due filter
	upcoming     map[string]bool
	loadErr      error
	cursor       int
	showDetail   bool
	detail       string
	detailErr    error
	showHelp     bool
	tickInterval time.Duration
}

type tickMsg time.Time

func newTUIModel(store *task.Store, filter task.FilterOptions, opts ...TUIOption) *tuiModel {
	m := &tuiModel{
		store:        store,
		filter:       filter,
		tickInterval: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		case "0":
			m.setTab(TabAll)
		case "1":
			m.setTab(TabDue)
		case "2":
			m.setTab(TabUpcoming)
		case "tab":
			m.setTab((m.tab + 1) % 3)
		case "j", "down":
			m.move(1)
		case "k", "up":
			m.move(-1)
		case "enter":
			m.toggleDetail()
		case "esc":
			m.showDetail = false
		}
		return m, nil
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	writeTabs(&b, m.tab)

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Error reading task directory:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	writeList(&b, m.visible(), m.cursor)
	if m.showDetail {
		writeDetail(&b, m.detail, m.detailErr)
	}
	fmt.Fprintf(&b, "Directory: %s  Rules: %s\n\n", m.store.Dir(), m.rules())
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) rules() task.Rules {
	if m.filter.Rules == "" {
		return task.RulesLiteral
	}
	return m.filter.Rules
}

func (m *tuiModel) refresh() {
	listings, err := m.store.List()
	if err != nil {
		m.loadErr = err
		m.listings = nil
		return
	}
	task.SortListings(listings)

	due, err := m.matching(task.ModeDue)
	if err != nil {
		m.loadErr = err
		return
	}
	upcoming, err := m.matching(task.ModeUpcoming)
	if err != nil {
		m.loadErr = err
		return
	}

	m.loadErr = nil
	m.listings = listings
	m.due = due
	m.upcoming = upcoming
	m.clampCursor()
	if m.showDetail {
		m.loadDetail()
	}
}

func (m *tuiModel) matching(mode task.Mode) (map[string]bool, error) {
	result, err := m.store.Filter(string(mode), m.filter)
	if err != nil {
		return nil, err
	}
	paths := make(map[string]bool, len(result.Matches))
	for _, match := range result.Matches {
		paths[match.Path] = true
	}
	return paths, nil
}

// visible returns the listings shown on the current tab.
func (m *tuiModel) visible() []task.Listing {
	if m.tab == TabAll {
		return m.listings
	}
	set := m.due
	if m.tab == TabUpcoming {
		set = m.upcoming
	}
	var out []task.Listing
	for _, l := range m.listings {
		if set[l.Path] {
			out = append(out, l)
		}
	}
	return out
}

func (m *tuiModel) setTab(t Tab) {
	m.tab = t
	m.cursor = 0
	m.showDetail = false
}

func (m *tuiModel) move(delta int) {
	m.cursor += delta
	m.clampCursor()
	if m.showDetail {
		m.loadDetail()
	}
}

func (m *tuiModel) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) toggleDetail() {
	if m.showDetail {
		m.showDetail = false
		return
	}
	if len(m.visible()) == 0 {
		return
	}
	m.showDetail = true
	m.loadDetail()
}

func (m *tuiModel) loadDetail() {
	items := m.visible()
	if len(items) == 0 {
		m.showDetail = false
		return
	}
	var buf bytes.Buffer
	m.detailErr = m.store.View(items[m.cursor].Name, &buf)
	m.detail = buf.String()
}

func writeTitle(b *strings.Builder) {
	b.WriteString(titleStyle.Render("Tasker") + "\n\n")
}

func writeTabs(b *strings.Builder, current Tab) {
	tabs := make([]string, 0, 3)
	for i, t := range []Tab{TabAll, TabDue, TabUpcoming} {
		label := fmt.Sprintf("%d %s", i, t)
		if t == current {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, inactiveTab.Render(label))
		}
	}
	b.WriteString(strings.Join(tabs, "   ") + "\n\n")
}

func writeList(b *strings.Builder, items []task.Listing, cursor int) {
	if len(items) == 0 {
		b.WriteString("  No tasks.\n\n")
		return
	}
	for i, l := range items {
		line := formatListing(l)
		if i == cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")
}

func formatListing(l task.Listing) string {
	if l.Err != nil {
		return fmt.Sprintf("❓ %-10s  %s", "", l.Name)
	}
	line := fmt.Sprintf("%s %s  %s", l.Record.Status().Icon(), task.FormatDate(l.Record.Due), l.Name)
	if l.Record.Title != "" {
		line += "  " + l.Record.Title
	}
	return line
}

func writeDetail(b *strings.Builder, body string, err error) {
	if err != nil {
		b.WriteString(errorStyle.Render(err.Error()) + "\n\n")
		return
	}
	b.WriteString(detailStyle.Render(strings.TrimRight(body, "\n")) + "\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  0            All tasks\n")
	b.WriteString("  1            Due tasks\n")
	b.WriteString("  2            Upcoming tasks\n")
	b.WriteString("  tab          Next tab\n")
	b.WriteString("  j/k, ↓/↑     Move\n")
	b.WriteString("  enter        Toggle task details\n")
	b.WriteString("  esc          Close task details\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(footerStyle.Render(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s", interval)) + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
