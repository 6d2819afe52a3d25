package tableview

import (
	"strings"

	"github.com/atotto/clipboard"

	"github.com/iw2rmb/trueke/table"
)

// Clipboard receives copied rows.
//
// Errors must not crash the UI; failures are logged and ignored.
type Clipboard interface {
	WriteText(s string) error
}

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteText(s string) error { return clipboard.WriteAll(s) }

// rowsTSV renders rows as tab-separated values with a header line.
// Structured values are written as compact JSON.
func rowsTSV[T any](cols []table.Column, rows []T) string {
	var sb strings.Builder
	for i, col := range cols {
		if i > 0 {
			sb.WriteByte('\t')
		}
		sb.WriteString(tsvField(col.Label()))
	}
	for _, rec := range rows {
		sb.WriteByte('\n')
		for i, col := range cols {
			if i > 0 {
				sb.WriteByte('\t')
			}
			sb.WriteString(tsvField(table.CellFor(rec, col).Text))
		}
	}
	return sb.String()
}

func tsvField(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(s)
}
