package tableview

import (
	"go.uber.org/zap"

	"github.com/iw2rmb/trueke/table"
)

const (
	DefaultMaxColumnWidth = 50
	defaultDetailLines    = 12
)

// Config configures the table Model.
type Config[T any] struct {
	// Table is forwarded to table.New.
	Table table.Options[T]

	// Rendering options.
	Style  Style
	KeyMap KeyMap
	// MaxColumnWidth caps a column in terminal cells. Default: 50.
	MaxColumnWidth int
	// MaxDetailLines caps the structured-cell detail panel. Default: 12.
	MaxDetailLines int
	// HighlightDetail colors the detail JSON.
	HighlightDetail bool
	// ShowHelp renders the short key help under the table.
	ShowHelp bool

	// Clipboard receives copied rows. Default: the system clipboard.
	Clipboard Clipboard

	// Logger receives debug events. Default: no-op.
	Logger *zap.Logger
}

func normalizeConfig[T any](cfg Config[T]) Config[T] {
	if cfg.MaxColumnWidth <= 0 {
		cfg.MaxColumnWidth = DefaultMaxColumnWidth
	}
	if cfg.MaxDetailLines <= 0 {
		cfg.MaxDetailLines = defaultDetailLines
	}
	if isZeroKeyMap(cfg.KeyMap) {
		cfg.KeyMap = DefaultKeyMap()
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = SystemClipboard{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}
