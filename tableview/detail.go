package tableview

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// detailText prepares the pretty-printed structure of a focused structured
// cell, clipped to maxLines.
func detailText(detail string, maxLines int, highlight bool) string {
	lines := strings.Split(detail, "\n")
	if len(lines) > maxLines {
		lines = append(lines[:maxLines-1], "…")
	}
	text := strings.Join(lines, "\n")
	if !highlight {
		return text
	}

	var sb strings.Builder
	if err := quick.Highlight(&sb, text, "json", "terminal256", "monokai"); err != nil {
		return text
	}
	return strings.TrimRight(sb.String(), "\n")
}
