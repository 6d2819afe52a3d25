package tableview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/iw2rmb/trueke/internal/grapheme"
	"github.com/iw2rmb/trueke/table"
)

const (
	columnGap      = "  "
	checkboxWidth  = 3
	sortMarkWidth  = 2
	structMarker   = "{…}"
	actionsMarker  = "⋯"
	noDataText     = "No data available"
	noResultsText  = "No results."
	sentinelText   = "Loading more..."
	prevPageText   = "‹ Previous"
	nextPageText   = "Next ›"
	checkedBox     = "[x]"
	uncheckedBox   = "[ ]"
	checkedValue   = "☑"
	uncheckedValue = "☐"
)

// layout is the column geometry and pre-rendered sections of one rebuild.
type layout struct {
	cols   []table.Column
	widths []int
	// starts holds the x offset of each data column.
	starts []int
	// actionsX is the x offset of the actions marker, or -1.
	actionsX int

	top       []string
	header    string
	separator string
	body      []string
	bottom    []string
}

// headerY is the View line of the header row.
func (l layout) headerY() int { return len(l.top) }

// bodyY is the View line of the first body row.
func (l layout) bodyY() int { return len(l.top) + 2 }

func (m *Model[T]) rebuild() {
	m.rendered = m.currentRenderKey()
	if m.ctl.State() == table.StateNoData {
		m.layout = layout{actionsX: -1}
		m.viewport.SetContent("")
		return
	}

	rows := m.ctl.Rows()
	l := m.measure(rows)
	l.top = m.renderTop()
	l.header = m.renderHeader(l)
	l.separator = m.cfg.Style.Separator.Render(strings.Repeat("─", max(lineWidth(l), 1)))
	l.body = m.renderBody(l, rows)
	l.bottom = m.renderBottom()

	chrome := len(l.top) + 2 + len(l.bottom)
	bodyHeight := len(l.body)
	if m.height > 0 {
		bodyHeight = max(m.height-chrome, 1)
	}
	m.viewport.Width = m.width
	m.viewport.Height = bodyHeight
	m.viewport.SetContent(strings.Join(l.body, "\n"))
	m.layout = l
}

func (m *Model[T]) measure(rows []table.Row[T]) layout {
	opt := m.ctl.Options()
	l := layout{cols: m.ctl.Columns(), actionsX: -1}
	l.widths = make([]int, len(l.cols))
	l.starts = make([]int, len(l.cols))

	for i, col := range l.cols {
		w := grapheme.Width(col.Label()) + sortMarkWidth
		for _, r := range rows {
			w = max(w, cellWidth(table.CellFor(r.Record, col)))
		}
		l.widths[i] = min(w, m.cfg.MaxColumnWidth)
	}

	x := 0
	if opt.EnableSelection {
		x = checkboxWidth + len(columnGap)
	}
	for i := range l.cols {
		l.starts[i] = x
		x += l.widths[i] + len(columnGap)
	}
	if len(m.ctl.Actions()) > 0 {
		l.actionsX = x
	}
	return l
}

func lineWidth(l layout) int {
	if l.actionsX >= 0 {
		return l.actionsX + 1
	}
	if n := len(l.cols); n > 0 {
		return l.starts[n-1] + l.widths[n-1]
	}
	return 0
}

func (m *Model[T]) renderTop() []string {
	if !m.ctl.Options().EnableFiltering {
		return nil
	}
	return []string{m.filter.View()}
}

func (m *Model[T]) renderHeader(l layout) string {
	st := m.cfg.Style
	parts := make([]string, 0, len(l.cols)+2)
	if m.ctl.Options().EnableSelection {
		box := uncheckedBox
		if m.ctl.AllVisibleSelected() {
			box = checkedBox
		}
		parts = append(parts, st.Header.Render(box))
	}

	sort := m.ctl.Sort()
	for i, col := range l.cols {
		label := col.Label()
		style := st.Header
		if sort.Field == col.Field && sort.Dir != table.Unsorted {
			label += sortMark(sort.Dir)
			style = st.HeaderSort
		}
		parts = append(parts, style.Render(fitPlain(label, l.widths[i])))
	}
	if l.actionsX >= 0 {
		parts = append(parts, st.Header.Render(" "))
	}
	return strings.Join(parts, columnGap)
}

func sortMark(d table.SortDir) string {
	switch d {
	case table.Ascending:
		return " ▲"
	case table.Descending:
		return " ▼"
	default:
		return ""
	}
}

func (m *Model[T]) renderBody(l layout, rows []table.Row[T]) []string {
	if m.ctl.State() == table.StateNoResults {
		return []string{m.cfg.Style.Text.Render(noResultsText)}
	}

	out := make([]string, 0, len(rows)+1)
	for i, r := range rows {
		out = append(out, m.renderRow(l, r, i == m.cursorRow))
	}
	if m.ctl.HasMore() {
		out = append(out, m.cfg.Style.Sentinel.Render(sentinelText))
	}
	return out
}

func (m *Model[T]) renderRow(l layout, r table.Row[T], isCursor bool) string {
	st := m.cfg.Style
	rowStyle := st.Text
	switch {
	case isCursor && m.focused:
		rowStyle = st.CursorRow
	case r.Selected:
		rowStyle = st.SelectedRow
	}

	gap := rowStyle.Render(columnGap)
	parts := make([]string, 0, len(l.cols)+2)
	if m.ctl.Options().EnableSelection {
		box := uncheckedBox
		if r.Selected {
			box = checkedBox
		}
		parts = append(parts, rowStyle.Render(box))
	}
	for i, col := range l.cols {
		cell := table.CellFor(r.Record, col)
		text := fitCell(cell, l.widths[i])
		style := rowStyle
		if cell.Kind == table.CellStructured {
			style = st.Marker.Inherit(rowStyle)
		}
		if isCursor && m.focused && i == m.cursorCol {
			style = st.CursorCell
		}
		parts = append(parts, style.Render(text))
	}
	if l.actionsX >= 0 {
		parts = append(parts, rowStyle.Render(actionsMarker))
	}
	return strings.Join(parts, gap)
}

// cellText is the single-line display form of a cell before fitting.
func cellText(c table.Cell) string {
	switch c.Kind {
	case table.CellEmpty:
		return ""
	case table.CellBool:
		if c.Checked {
			return checkedValue
		}
		return uncheckedValue
	case table.CellStructured:
		return structMarker
	default:
		return grapheme.SingleLine(c.Text)
	}
}

func cellWidth(c table.Cell) int {
	if c.Kind == table.CellCustom {
		return ansi.StringWidth(grapheme.SingleLine(c.Text))
	}
	return grapheme.Width(cellText(c))
}

// fitCell truncates or pads a cell to width. Custom cells may carry ANSI
// styling and are measured accordingly.
func fitCell(c table.Cell, width int) string {
	text := cellText(c)
	if c.Kind != table.CellCustom {
		return fitPlain(text, width)
	}
	if ansi.StringWidth(text) > width {
		text = ansi.Truncate(text, width, "…")
	}
	if w := ansi.StringWidth(text); w < width {
		text += strings.Repeat(" ", width-w)
	}
	return text
}

func fitPlain(text string, width int) string {
	return grapheme.PadRight(grapheme.Truncate(text, width, "…"), width)
}

func (m *Model[T]) renderBottom() []string {
	var out []string
	if d, ok := m.focusedDetail(); ok {
		out = append(out, strings.Split(m.cfg.Style.Detail.Render(d), "\n")...)
	}
	if m.menu.open {
		out = append(out, strings.Split(m.renderMenu(), "\n")...)
	}
	if line := m.renderFooter(); line != "" {
		out = append(out, line)
	}
	if m.cfg.ShowHelp {
		out = append(out, m.help.View(m.cfg.KeyMap))
	}
	return out
}

// focusedDetail returns the detail surface of the structured cell under the
// cursor.
func (m *Model[T]) focusedDetail() (string, bool) {
	if !m.focused || m.menu.open {
		return "", false
	}
	rows := m.ctl.Rows()
	cols := m.ctl.Columns()
	if m.cursorRow < 0 || m.cursorRow >= len(rows) || m.cursorCol < 0 || m.cursorCol >= len(cols) {
		return "", false
	}
	cell := table.CellFor(rows[m.cursorRow].Record, cols[m.cursorCol])
	if cell.Kind != table.CellStructured {
		return "", false
	}
	return detailText(cell.Detail, m.cfg.MaxDetailLines, m.cfg.HighlightDetail), true
}

func (m *Model[T]) renderMenu() string {
	st := m.cfg.Style
	lines := []string{st.MenuLabel.Render("Actions")}
	for i, a := range m.ctl.Actions() {
		style := st.MenuItem
		if i == m.menu.index {
			style = st.MenuSelected
		}
		lines = append(lines, style.Render(a.Label))
	}
	return st.Menu.Render(strings.Join(lines, "\n"))
}

func (m *Model[T]) renderFooter() string {
	st := m.cfg.Style
	var parts []string

	if m.ctl.Mode() == table.ModePaged {
		prev, next := st.PagerDisabled, st.PagerDisabled
		if m.ctl.CanPrevPage() {
			prev = st.Pager
		}
		if m.ctl.CanNextPage() {
			next = st.Pager
		}
		parts = append(parts,
			prev.Render(prevPageText),
			st.Status.Render(fmt.Sprintf("Page %d of %d", m.ctl.Page()+1, m.ctl.PageCount())),
			next.Render(nextPageText),
		)
	}
	if m.ctl.Options().EnableSelection {
		parts = append(parts, st.Status.Render(fmt.Sprintf("%d of %d row(s) selected.", len(m.ctl.FilteredSelectedIDs()), m.ctl.FilteredCount())))
	}
	return strings.Join(parts, "  ")
}

func (m *Model[T]) render() string {
	if m.ctl.State() == table.StateNoData {
		return m.cfg.Style.Empty.Render(noDataText)
	}

	l := m.layout
	out := make([]string, 0, len(l.top)+2+len(l.body)+len(l.bottom))
	out = append(out, l.top...)
	out = append(out, l.header, l.separator)
	if m.height > 0 {
		out = append(out, m.viewport.View())
	} else {
		out = append(out, l.body...)
	}
	out = append(out, l.bottom...)

	if m.width > 0 {
		for i, line := range out {
			out[i] = clipLines(line, m.width)
		}
	}
	return strings.Join(out, "\n")
}

func clipLines(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "")
	}
	return strings.Join(lines, "\n")
}
