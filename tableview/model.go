package tableview

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/iw2rmb/trueke/table"
)

// Model is a Bubble Tea component that renders and interacts with a
// table.Controller.
type Model[T any] struct {
	cfg Config[T]
	ctl *table.Controller[T]
	log *zap.Logger

	focused bool
	width   int
	height  int

	viewport viewport.Model
	filter   textinput.Model
	help     help.Model

	// filtering is true while the filter input owns key input.
	filtering bool

	// cursorRow indexes the current window; cursorCol indexes visible columns.
	cursorRow int
	cursorCol int

	menu actionMenu

	observer *intersectionObserver

	layout   layout
	rendered renderKey
}

type actionMenu struct {
	open  bool
	rowID int
	index int
}

// renderKey captures everything the rendered content depends on.
type renderKey struct {
	version   uint64
	cursorRow int
	cursorCol int
	focused   bool
	filtering bool
	menu      actionMenu
	width     int
	height    int
}

func New[T any](rows []T, cfg Config[T]) Model[T] {
	cfg = normalizeConfig(cfg)

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Filter..."

	m := Model[T]{
		cfg:      cfg,
		ctl:      table.New(rows, cfg.Table),
		log:      cfg.Logger,
		focused:  true,
		viewport: viewport.New(0, 0),
		filter:   ti,
		help:     help.New(),
	}
	if m.ctl.Mode() == table.ModeInfinite {
		m.observer = newIntersectionObserver()
	}
	m.rebuild()
	return m
}

// Controller exposes the underlying view state. Mutations made through it are
// picked up on the next Update.
func (m Model[T]) Controller() *table.Controller[T] { return m.ctl }

func (m Model[T]) Init() tea.Cmd { return nil }

func (m Model[T]) SetSize(width, height int) Model[T] {
	m.width = max(width, 0)
	m.height = max(height, 0)
	m.help.Width = m.width
	m.filter.Width = max(m.width-len(m.filter.Prompt)-1, 0)
	m.rebuild()
	m.followCursor()
	m.observeSentinel()
	return m
}

func (m Model[T]) Focus() Model[T] {
	if !m.focused {
		m.focused = true
		m.rebuild()
	}
	return m
}

func (m Model[T]) Blur() Model[T] {
	if m.focused {
		m.focused = false
		m.filtering = false
		m.filter.Blur()
		m.menu = actionMenu{}
		m.rebuild()
	}
	return m
}

func (m Model[T]) Focused() bool { return m.focused }

// Filtering reports whether the filter input currently owns key input.
func (m Model[T]) Filtering() bool { return m.filtering }

// MenuOpen reports whether the row action menu owns key input.
func (m Model[T]) MenuOpen() bool { return m.menu.open }

// SetRows replaces the table input. Stale selections are dropped.
func (m Model[T]) SetRows(rows []T) Model[T] {
	m.ctl.SetRows(rows)
	m.menu = actionMenu{}
	m.sync()
	return m
}

// Close tears down the sentinel observer. The table keeps rendering but no
// longer grows on scroll.
func (m Model[T]) Close() Model[T] {
	m.observer.disconnect()
	return m
}

// Cursor returns the cursor position: the row identity under the cursor and
// the visible column index. ok is false when the window is empty.
func (m Model[T]) Cursor() (rowID, col int, ok bool) {
	rows := m.ctl.Rows()
	if m.cursorRow < 0 || m.cursorRow >= len(rows) {
		return 0, m.cursorCol, false
	}
	return rows[m.cursorRow].ID, m.cursorCol, true
}

func (m Model[T]) Update(msg tea.Msg) (Model[T], tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
	default:
		if m.filtering {
			m.filter, cmd = m.filter.Update(msg)
		}
	}
	m.sync()
	return m, cmd
}

func (m Model[T]) View() string { return m.render() }

// sync clamps the cursor, rebuilds stale content, and lets the sentinel
// observer react to the new layout.
func (m *Model[T]) sync() {
	m.clampCursor()
	if m.currentRenderKey() != m.rendered {
		m.rebuild()
		m.followCursor()
	}
	m.observeSentinel()
}

func (m *Model[T]) currentRenderKey() renderKey {
	return renderKey{
		version:   m.ctl.Version(),
		cursorRow: m.cursorRow,
		cursorCol: m.cursorCol,
		focused:   m.focused,
		filtering: m.filtering,
		menu:      m.menu,
		width:     m.width,
		height:    m.height,
	}
}

func (m *Model[T]) clampCursor() {
	n := m.ctl.VisibleCount()
	m.cursorRow = max(0, min(m.cursorRow, n-1))
	cols := len(m.ctl.Columns())
	m.cursorCol = max(0, min(m.cursorCol, cols-1))
}

func (m *Model[T]) observeSentinel() {
	if !m.observer.active() {
		return
	}
	visible := m.ctl.HasMore() && m.sentinelVisible()
	if !m.observer.observe(visible) {
		return
	}
	if m.ctl.Grow() {
		m.log.Debug("table grew", zap.Int("visible", m.ctl.VisibleCount()), zap.Int("filtered", m.ctl.FilteredCount()))
		m.observer.rearm()
		m.rebuild()
	}
}

// sentinelVisible reports whether the sentinel line, which follows the last
// revealed row, lies inside the body viewport. Nothing is visible before
// the first size is known.
func (m *Model[T]) sentinelVisible() bool {
	if m.height <= 0 {
		return false
	}
	line := m.ctl.VisibleCount()
	top := m.viewport.YOffset
	return line >= top && line < top+m.viewport.Height
}

func (m *Model[T]) followCursor() {
	if m.height <= 0 {
		return
	}
	h := m.viewport.Height
	if h <= 0 {
		return
	}
	y := m.viewport.YOffset
	switch {
	case m.cursorRow < y:
		m.viewport.SetYOffset(m.cursorRow)
	case m.cursorRow >= y+h:
		m.viewport.SetYOffset(m.cursorRow - h + 1)
	}
}
