package tableview

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/trueke/table"
)

type memClipboard struct {
	s   string
	err error
}

func (c *memClipboard) WriteText(s string) error {
	if c.err != nil {
		return c.err
	}
	c.s = s
	return nil
}

func plainView(m Model[offer]) string {
	return strings.Join(viewLines(m), "\n")
}

func ids(recs []offer) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestUpdate_SpaceTogglesCursorRow(t *testing.T) {
	var got [][]string
	m := New(sampleOffers(), Config[offer]{Table: table.Options[offer]{
		EnableSelection:   true,
		OnSelectionChange: func(sel []offer) { got = append(got, ids(sel)) },
	}})

	m = press(m, "down", "space", "down", "space", "up", "space")

	want := [][]string{{"e2"}, {"e2", "e3"}, {"e3"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("selection callbacks (-want +got):\n%s", diff)
	}
}

func TestUpdate_CtrlASelectsCurrentPage(t *testing.T) {
	m := New(sampleOffers(), Config[offer]{Table: table.Options[offer]{
		EnableSelection:  true,
		EnablePagination: true,
		PageSize:         2,
	}})
	m = press(m, "n", "ctrl+a")
	if diff := cmp.Diff([]string{"e3", "e4"}, ids(m.Controller().Selected())); diff != "" {
		t.Fatalf("selected (-want +got):\n%s", diff)
	}
	if !strings.Contains(plainView(m), "2 of 5 row(s) selected.") {
		t.Fatalf("status line missing:\n%s", plainView(m))
	}
}

func TestUpdate_SortKeyCyclesCursorColumn(t *testing.T) {
	m := New(sampleOffers(), Config[offer]{})
	m = press(m, "right", "right", "s")
	if got := m.Controller().Sort(); got != (table.SortKey{Field: "price", Dir: table.Ascending}) {
		t.Fatalf("sort after s: got %+v", got)
	}
	if !strings.Contains(plainView(m), "price ▲") {
		t.Fatalf("header missing ascending mark:\n%s", m.View())
	}
	m = press(m, "s")
	if !strings.Contains(plainView(m), "price ▼") {
		t.Fatalf("header missing descending mark:\n%s", m.View())
	}
}

func TestUpdate_PagerKeysAndFooter(t *testing.T) {
	m := New(sampleOffers(), Config[offer]{Table: table.Options[offer]{EnablePagination: true, PageSize: 2}})
	if !strings.Contains(plainView(m), "Page 1 of 3") {
		t.Fatalf("footer missing page 1:\n%s", m.View())
	}
	m = press(m, "n", "n", "n")
	if got := m.Controller().Page(); got != 2 {
		t.Fatalf("page: got %d, want 2", got)
	}
	if !strings.Contains(plainView(m), "Page 3 of 3") {
		t.Fatalf("footer missing page 3:\n%s", m.View())
	}
	m = press(m, "p")
	if got := m.Controller().Page(); got != 1 {
		t.Fatalf("page after p: got %d, want 1", got)
	}
}

func TestUpdate_FilterInputFiltersOnEveryKeystroke(t *testing.T) {
	m := New(sampleOffers(), Config[offer]{Table: table.Options[offer]{EnableFiltering: true}})

	m = press(m, "/")
	if !m.Filtering() {
		t.Fatalf("filter input not focused after /")
	}
	// "o" hits titles and the Brand value of the structured meta column.
	m = press(m, "o")
	if got := m.Controller().FilteredCount(); got != 3 {
		t.Fatalf("after 'o': got %d rows, want 3", got)
	}
	m = press(m, "u")
	if got := m.Controller().Filter(); got != "ou" {
		t.Fatalf("filter text: got %q, want %q", got, "ou")
	}
	if got := m.Controller().FilteredCount(); got != 1 {
		t.Fatalf("after 'ou': got %d rows, want 1", got)
	}

	m = press(m, "esc")
	if m.Filtering() {
		t.Fatalf("filter input still focused after esc")
	}
	// Keys go back to the table once the input is left.
	m = press(m, "s")
	if got := m.Controller().Filter(); got != "ou" {
		t.Fatalf("filter changed after leaving input: %q", got)
	}
}

func TestUpdate_RowActionMenuDispatchesRecord(t *testing.T) {
	var got []string
	m := New(sampleOffers(), Config[offer]{Table: table.Options[offer]{
		EnableRowActions: true,
		RowActions: []table.RowAction[offer]{
			{Label: "View details", Handler: func(o offer) { got = append(got, "view:"+o.ID) }},
			{Label: "Cancel offer", Handler: func(o offer) { got = append(got, "cancel:"+o.ID) }},
		},
	}})

	m = press(m, "down", "a")
	if !strings.Contains(plainView(m), "Cancel offer") {
		t.Fatalf("menu not rendered:\n%s", m.View())
	}
	m = press(m, "down", "enter")
	if diff := cmp.Diff([]string{"cancel:e2"}, got); diff != "" {
		t.Fatalf("dispatches (-want +got):\n%s", diff)
	}
	if strings.Contains(plainView(m), "Cancel offer") {
		t.Fatalf("menu still open after dispatch")
	}

	m = press(m, "a", "esc")
	if len(got) != 1 {
		t.Fatalf("esc dispatched an action")
	}
}

func TestUpdate_CopyWritesTSV(t *testing.T) {
	clip := &memClipboard{}
	m := New(sampleOffers(), Config[offer]{
		Table: table.Options[offer]{
			Columns:         []table.Column{{Field: "id", Header: "ID"}, {Field: "meta", Header: "Meta"}},
			EnableSelection: true,
		},
		Clipboard: clip,
	})

	m = press(m, "y")
	if want := "ID\tMeta\ne1\t{\"Brand\":\"Canon\"}"; clip.s != want {
		t.Fatalf("cursor row copy:\n got: %q\nwant: %q", clip.s, want)
	}

	m = press(m, "down", "space", "down", "space", "y")
	if want := "ID\tMeta\ne2\t\ne3\t"; clip.s != want {
		t.Fatalf("selection copy:\n got: %q\nwant: %q", clip.s, want)
	}
}

func TestUpdate_FilterNarrowsReportedSelection(t *testing.T) {
	var got [][]string
	clip := &memClipboard{}
	m := New(sampleOffers(), Config[offer]{
		Table: table.Options[offer]{
			Columns:           []table.Column{{Field: "id", Header: "ID"}, {Field: "title", Header: "Title"}},
			EnableSelection:   true,
			EnableFiltering:   true,
			OnSelectionChange: func(sel []offer) { got = append(got, ids(sel)) },
		},
		Clipboard: clip,
	})
	m = press(m, "space", "down", "space")

	m.Controller().SetFilter("canon")
	m, _ = m.Update(nil)
	if diff := cmp.Diff([][]string{{"e1"}, {"e1", "e2"}, {"e1"}}, got); diff != "" {
		t.Fatalf("selection callbacks (-want +got):\n%s", diff)
	}
	if !strings.Contains(plainView(m), "1 of 1 row(s) selected.") {
		t.Fatalf("status line missing:\n%s", plainView(m))
	}

	m = press(m, "y")
	if want := "ID\tTitle\ne1\tCanon AE-1"; clip.s != want {
		t.Fatalf("filtered copy:\n got: %q\nwant: %q", clip.s, want)
	}
}

func TestUpdate_CopyFailureIsIgnored(t *testing.T) {
	m := New(sampleOffers(), Config[offer]{Clipboard: &memClipboard{err: errors.New("no clipboard")}})
	m = press(m, "y")
	if m.View() == "" {
		t.Fatalf("view empty after clipboard failure")
	}
}

func TestUpdate_HideAndShowColumns(t *testing.T) {
	m := New(sampleOffers(), Config[offer]{})
	m = press(m, "c")
	if m.Controller().ColumnVisible("id") {
		t.Fatalf("id column still visible")
	}
	m = press(m, "C")
	if !m.Controller().ColumnVisible("id") {
		t.Fatalf("id column not restored")
	}
}

func TestUpdate_BlurredIgnoresKeys(t *testing.T) {
	m := New(sampleOffers(), Config[offer]{Table: table.Options[offer]{EnableSelection: true}})
	m = m.Blur()
	m = press(m, "space", "s")
	if len(m.Controller().SelectedIDs()) != 0 || m.Controller().Sort().Dir != table.Unsorted {
		t.Fatalf("blurred model reacted to keys")
	}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	m := New(sampleOffers(), Config[offer]{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 50, Height: 5})
	if got := len(viewLines(m)); got != 5 {
		t.Fatalf("view height: got %d, want 5", got)
	}
}
