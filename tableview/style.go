package tableview

import "github.com/charmbracelet/lipgloss"

// Style controls the table's rendering. The zero value renders plain text.
type Style struct {
	Header     lipgloss.Style
	HeaderSort lipgloss.Style
	Separator  lipgloss.Style

	Text        lipgloss.Style
	SelectedRow lipgloss.Style
	CursorRow   lipgloss.Style
	CursorCell  lipgloss.Style

	Marker   lipgloss.Style
	Sentinel lipgloss.Style
	Empty    lipgloss.Style

	Detail lipgloss.Style

	Menu         lipgloss.Style
	MenuLabel    lipgloss.Style
	MenuItem     lipgloss.Style
	MenuSelected lipgloss.Style

	Pager         lipgloss.Style
	PagerDisabled lipgloss.Style
	Status        lipgloss.Style
}

func DefaultStyle() Style {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	accent := lipgloss.Color("208")
	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	return Style{
		Header:     lipgloss.NewStyle().Bold(true),
		HeaderSort: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Separator:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),

		Text:        lipgloss.NewStyle(),
		SelectedRow: lipgloss.NewStyle().Background(lipgloss.Color("236")),
		CursorRow:   lipgloss.NewStyle().Background(lipgloss.Color("237")),
		CursorCell:  lipgloss.NewStyle().Reverse(true),

		Marker:   lipgloss.NewStyle().Foreground(accent),
		Sentinel: muted.Italic(true),
		Empty:    border.Padding(1, 4),

		Detail: border,

		Menu:         border,
		MenuLabel:    lipgloss.NewStyle().Bold(true),
		MenuItem:     lipgloss.NewStyle(),
		MenuSelected: lipgloss.NewStyle().Reverse(true),

		Pager:         lipgloss.NewStyle(),
		PagerDisabled: muted.Faint(true),
		Status:        muted,
	}
}
