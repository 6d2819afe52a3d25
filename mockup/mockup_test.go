package mockup

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestRender_Macbook(t *testing.T) {
	var buf bytes.Buffer
	lines := []string{"\x1b[1mTitle\x1b[0m  <Price>", "", "Canon AE-1  120"}
	if err := Render(&buf, Macbook, lines); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`<svg width="680" height="390"`,
		`viewBox="0 0 680 390"`,
		`id="macbook-screen-0"`,
		`Title  &lt;Price&gt;`,
		`Canon AE-1  120`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b") {
		t.Fatalf("output contains escape sequences")
	}
	if got := strings.Count(out, "<text"); got != 2 {
		t.Fatalf("text elements: got %d, want 2", got)
	}
}

func TestRender_ClipsToGrid(t *testing.T) {
	sc := IPad.Screens()[0]
	cols, rows := sc.Grid()
	if cols != 72 || rows != 52 {
		t.Fatalf("grid: got %dx%d, want 72x52", cols, rows)
	}

	lines := make([]string, rows+5)
	for i := range lines {
		lines[i] = fmt.Sprintf("%03d%s", i, strings.Repeat("x", cols))
	}
	var buf bytes.Buffer
	if err := Render(&buf, IPad, lines); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if got := strings.Count(out, "<text"); got != rows {
		t.Fatalf("text elements: got %d, want %d", got, rows)
	}
	if want := "000" + strings.Repeat("x", cols-3) + "<"; !strings.Contains(out, want) {
		t.Fatalf("first line not clipped to %d columns", cols)
	}
}

func TestRender_DualMonitorScreens(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, DualMonitor, []string{"left"}, []string{"right"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `url(#dual-monitor-screen-1)`) || !strings.Contains(out, ">right<") {
		t.Fatalf("right screen missing:\n%s", out)
	}

	err := Render(&buf, Monitor, []string{"a"}, []string{"b"})
	if err == nil {
		t.Fatalf("expected error for extra screen")
	}
}

func TestRender_UnknownFrame(t *testing.T) {
	err := Render(&bytes.Buffer{}, Frame(42), nil)
	if !errors.Is(err, ErrUnknownFrame) {
		t.Fatalf("got %v, want ErrUnknownFrame", err)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRender_ReportsWriteError(t *testing.T) {
	if err := Render(failWriter{}, Monitor); err == nil || err.Error() != "disk full" {
		t.Fatalf("got %v, want disk full", err)
	}
}

func TestParseFrame(t *testing.T) {
	for _, f := range Frames() {
		got, err := ParseFrame(strings.ToUpper(f.String()))
		if err != nil || got != f {
			t.Fatalf("ParseFrame(%q) = %v, %v", f.String(), got, err)
		}
	}
	if _, err := ParseFrame("watch"); !errors.Is(err, ErrUnknownFrame) {
		t.Fatalf("got %v, want ErrUnknownFrame", err)
	}
	if w, h := DualMonitor.Size(); w != 940 || h != 379 {
		t.Fatalf("DualMonitor size: got %dx%d", w, h)
	}
}
