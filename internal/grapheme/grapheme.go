package grapheme

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cluster is one user-perceived character and its terminal cell width.
type Cluster struct {
	Text  string
	Width int
}

// Clusters segments text into grapheme clusters in visual order.
func Clusters(text string) []Cluster {
	var (
		out   []Cluster
		c     string
		state = -1
	)
	for text != "" {
		c, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		out = append(out, Cluster{Text: c, Width: ClusterWidth(c)})
	}
	return out
}

// ClusterWidth returns the terminal cell width of one grapheme cluster.
func ClusterWidth(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		if fallback := uniseg.StringWidth(cluster); fallback > w {
			w = fallback
		}
	}
	return w
}

// Width returns the terminal cell width of text.
func Width(text string) int {
	w := 0
	for _, c := range Clusters(text) {
		w += c.Width
	}
	return w
}

// SingleLine collapses control whitespace so text fits one table row.
func SingleLine(text string) string {
	if !strings.ContainsFunc(text, isLineBreaking) {
		return text
	}
	return strings.Map(func(r rune) rune {
		if isLineBreaking(r) {
			return ' '
		}
		return r
	}, text)
}

func isLineBreaking(r rune) bool {
	return r == '\n' || r == '\r' || r == '\t' || (unicode.IsControl(r) && r != '\x1b')
}

// Truncate cuts text to at most width cells without splitting a grapheme.
// When text is cut, tail is appended within the width budget.
func Truncate(text string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if Width(text) <= width {
		return text
	}

	budget := width - Width(tail)
	if budget < 0 {
		budget = 0
		tail = ""
	}

	var sb strings.Builder
	used := 0
	for _, c := range Clusters(text) {
		if used+c.Width > budget {
			break
		}
		sb.WriteString(c.Text)
		used += c.Width
	}
	sb.WriteString(tail)
	return sb.String()
}

// PadRight appends spaces until text occupies width cells.
func PadRight(text string, width int) string {
	if w := Width(text); w < width {
		return text + strings.Repeat(" ", width-w)
	}
	return text
}
