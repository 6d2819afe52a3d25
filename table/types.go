package table

// Column maps a record field to a display column.
type Column struct {
	// Field is the record field name the column reads.
	Field string
	// Header is the display label. Empty means Field.
	Header string
	// Render optionally replaces the default cell dispatch.
	Render func(v any) string
}

// Label returns the header label, falling back to the field name.
func (c Column) Label() string {
	if c.Header != "" {
		return c.Header
	}
	return c.Field
}

// RowAction is a labeled per-row action. Handler receives the full record.
type RowAction[T any] struct {
	Label   string
	Handler func(rec T)
}

// Options configures a Controller. The zero value renders every row at once
// with inferred columns and no selection, filtering, or row actions.
type Options[T any] struct {
	// Columns overrides column inference from the first record.
	Columns []Column

	EnableSelection   bool
	OnSelectionChange func(selected []T)

	EnablePagination bool
	// PageSize is the classic page size and the infinite-scroll growth step.
	// Default: 10.
	PageSize int

	EnableRowActions bool
	RowActions       []RowAction[T]

	EnableFiltering bool

	// InfiniteScroll takes precedence over EnablePagination when both are set.
	InfiniteScroll bool
}

const DefaultPageSize = 10

// Mode identifies the active windowing mode.
type Mode uint8

const (
	// ModeAll renders every filtered and sorted row.
	ModeAll Mode = iota
	// ModePaged windows rows into fixed-size pages.
	ModePaged
	// ModeInfinite reveals a growing prefix of rows.
	ModeInfinite
)

func (m Mode) String() string {
	switch m {
	case ModePaged:
		return "paged"
	case ModeInfinite:
		return "infinite"
	default:
		return "all"
	}
}

// SortDir is a column sort direction.
type SortDir uint8

const (
	Unsorted SortDir = iota
	Ascending
	Descending
)

func (d SortDir) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "none"
	}
}

// next returns the direction after one header activation.
func (d SortDir) next() SortDir {
	switch d {
	case Unsorted:
		return Ascending
	case Ascending:
		return Descending
	default:
		return Unsorted
	}
}

// SortKey is the active single-column sort. Dir == Unsorted means no sort.
type SortKey struct {
	Field string
	Dir   SortDir
}

// Row is one row of the current window.
type Row[T any] struct {
	ID       int
	Record   T
	Selected bool
}

// EmptyState distinguishes "no input" from "nothing matched".
type EmptyState uint8

const (
	StateRows EmptyState = iota
	StateNoData
	StateNoResults
)
