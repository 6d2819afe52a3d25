package tableview

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m Model[T]) updateKey(msg tea.KeyMsg) (Model[T], tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	km := m.cfg.KeyMap

	if m.filtering {
		return m.updateFilterKey(msg)
	}
	if m.menu.open {
		return m.updateMenuKey(msg), nil
	}

	switch {
	case key.Matches(msg, km.Up):
		m.cursorRow--
	case key.Matches(msg, km.Down):
		m.moveDown()
	case key.Matches(msg, km.Left):
		m.cursorCol--
	case key.Matches(msg, km.Right):
		m.cursorCol++
	case key.Matches(msg, km.Top):
		m.cursorRow = 0
	case key.Matches(msg, km.Bottom):
		m.cursorRow = m.ctl.VisibleCount() - 1

	case key.Matches(msg, km.Sort):
		if field, ok := m.cursorField(); ok {
			m.ctl.ToggleSort(field)
		}
	case key.Matches(msg, km.ToggleRow):
		if id, _, ok := m.Cursor(); ok {
			m.ctl.ToggleRow(id)
		}
	case key.Matches(msg, km.ToggleAll):
		m.ctl.ToggleAllVisible()

	case key.Matches(msg, km.Filter):
		if m.ctl.Options().EnableFiltering {
			m.filtering = true
			return m, m.filter.Focus()
		}

	case key.Matches(msg, km.NextPage):
		if m.ctl.NextPage() {
			m.cursorRow = 0
		}
	case key.Matches(msg, km.PrevPage):
		if m.ctl.PrevPage() {
			m.cursorRow = 0
		}

	case key.Matches(msg, km.Actions):
		m.openMenu()

	case key.Matches(msg, km.HideColumn):
		// The last visible column stays.
		if field, ok := m.cursorField(); ok && len(m.ctl.Columns()) > 1 {
			m.ctl.SetColumnVisible(field, false)
		}
	case key.Matches(msg, km.ShowColumns):
		m.ctl.ShowAllColumns()

	case key.Matches(msg, km.Copy):
		m.copyRows()
	}
	return m, nil
}

// moveDown advances the cursor. On the last revealed row it scrolls the body
// one line so the infinite-scroll sentinel can come into view.
func (m *Model[T]) moveDown() {
	last := m.ctl.VisibleCount() - 1
	if m.cursorRow < last {
		m.cursorRow++
		return
	}
	if m.ctl.HasMore() && m.height > 0 {
		m.viewport.SetYOffset(m.viewport.YOffset + 1)
	}
}

func (m Model[T]) updateFilterKey(msg tea.KeyMsg) (Model[T], tea.Cmd) {
	if key.Matches(msg, m.cfg.KeyMap.LeaveInput) {
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.ctl.SetFilter(m.filter.Value()) {
		m.cursorRow = 0
	}
	return m, cmd
}

func (m Model[T]) updateMenuKey(msg tea.KeyMsg) Model[T] {
	km := m.cfg.KeyMap
	n := len(m.ctl.Actions())
	switch {
	case key.Matches(msg, km.MenuClose):
		m.menu = actionMenu{}
	case key.Matches(msg, km.Up):
		m.menu.index = (m.menu.index - 1 + n) % n
	case key.Matches(msg, km.Down):
		m.menu.index = (m.menu.index + 1) % n
	case key.Matches(msg, km.MenuSelect):
		label := m.ctl.Actions()[m.menu.index].Label
		if m.ctl.InvokeAction(m.menu.rowID, m.menu.index) {
			m.log.Debug("row action dispatched", zap.String("action", label), zap.Int("row", m.menu.rowID))
		}
		m.menu = actionMenu{}
	}
	return m
}

func (m *Model[T]) openMenu() {
	if len(m.ctl.Actions()) == 0 {
		return
	}
	id, _, ok := m.Cursor()
	if !ok {
		return
	}
	m.menu = actionMenu{open: true, rowID: id}
}

func (m Model[T]) cursorField() (string, bool) {
	cols := m.ctl.Columns()
	if m.cursorCol < 0 || m.cursorCol >= len(cols) {
		return "", false
	}
	return cols[m.cursorCol].Field, true
}

// copyRows writes the selected rows that pass the filter to the clipboard as
// TSV, or the cursor row when none is selected.
func (m Model[T]) copyRows() {
	recs := m.ctl.FilteredSelected()
	if len(recs) == 0 {
		id, _, ok := m.Cursor()
		if !ok {
			return
		}
		rec, _ := m.ctl.Record(id)
		recs = []T{rec}
	}

	text := rowsTSV(m.ctl.Columns(), recs)
	if err := m.cfg.Clipboard.WriteText(text); err != nil {
		m.log.Warn("clipboard write failed", zap.Error(err))
		return
	}
	m.log.Debug("rows copied", zap.Int("rows", len(recs)))
}
