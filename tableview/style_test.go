package tableview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/trueke/table"
)

func styledModel() Model[offer] {
	return New(sampleOffers(), Config[offer]{
		Style: DefaultStyle(),
		Table: table.Options[offer]{EnableSelection: true},
	})
}

func TestDefaultStyle_FollowsColorProfile(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.Ascii) })

	m := press(styledModel(), "space")
	if !strings.Contains(m.View(), "\x1b[") {
		t.Fatalf("no escape sequences under ANSI256:\n%q", m.View())
	}
	// Styling never changes the text itself.
	if got, want := viewLines(m)[2], "[x]  e1    Canon AE-1   120      ☑       {…}"; got != want {
		t.Fatalf("first row:\n got: %q\nwant: %q", got, want)
	}

	lipgloss.SetColorProfile(termenv.Ascii)
	if v := styledModel().View(); strings.Contains(v, "\x1b[") {
		t.Fatalf("escape sequences under Ascii:\n%q", v)
	}
}
