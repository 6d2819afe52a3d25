package tableview

import (
	tea "github.com/charmbracelet/bubbletea"
)

// updateMouse handles wheel scrolling and left clicks. Coordinates are
// relative to the component's top-left corner.
func (m Model[T]) updateMouse(msg tea.MouseMsg) (Model[T], tea.Cmd) {
	if isWheel(msg) {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	if !m.focused || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	l := m.layout
	switch {
	case msg.Y == l.headerY():
		m.clickHeader(msg.X)
	case msg.Y >= l.bodyY():
		m.clickBody(msg.X, msg.Y-l.bodyY())
	}
	return m, nil
}

func isWheel(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown)
}

func (m *Model[T]) clickHeader(x int) {
	if m.ctl.Options().EnableSelection && x < checkboxWidth {
		m.ctl.ToggleAllVisible()
		return
	}
	if i, ok := m.columnAt(x); ok {
		m.ctl.ToggleSort(m.layout.cols[i].Field)
	}
}

func (m *Model[T]) clickBody(x, y int) {
	if m.height > 0 {
		if y >= m.viewport.Height {
			return
		}
		y += m.viewport.YOffset
	}
	rows := m.ctl.Rows()
	if y < 0 || y >= len(rows) {
		return
	}
	m.cursorRow = y

	switch {
	case m.ctl.Options().EnableSelection && x < checkboxWidth:
		m.ctl.ToggleRow(rows[y].ID)
	case m.layout.actionsX >= 0 && x >= m.layout.actionsX:
		m.openMenu()
	default:
		if i, ok := m.columnAt(x); ok {
			m.cursorCol = i
		}
	}
}

// columnAt maps an x offset to a visible data column. The gap after a column
// belongs to it.
func (m *Model[T]) columnAt(x int) (int, bool) {
	l := m.layout
	for i := len(l.starts) - 1; i >= 0; i-- {
		if x >= l.starts[i] {
			if x >= l.starts[i]+l.widths[i]+len(columnGap) {
				return 0, false
			}
			return i, true
		}
	}
	return 0, false
}
