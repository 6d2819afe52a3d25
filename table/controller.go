package table

import (
	"slices"
	"sort"
	"strings"
)

// Controller derives a windowed, sorted, filtered projection of records and
// tracks the selection. It is not safe for concurrent use.
type Controller[T any] struct {
	opt      Options[T]
	explicit bool

	rows   []T
	cols   []Column
	hidden map[string]bool

	filter string
	sort   SortKey

	selected map[int]struct{}
	// reported is the filtered selection last passed to OnSelectionChange.
	reported []int

	page  int
	grown int

	view      []int
	viewValid bool

	version uint64
}

// New creates a Controller over rows. Options are normalized: PageSize
// defaults to DefaultPageSize.
func New[T any](rows []T, opt Options[T]) *Controller[T] {
	if opt.PageSize <= 0 {
		opt.PageSize = DefaultPageSize
	}
	c := &Controller[T]{
		opt:      opt,
		explicit: len(opt.Columns) > 0,
		rows:     rows,
		hidden:   make(map[string]bool),
		selected: make(map[int]struct{}),
		grown:    opt.PageSize,
	}
	c.resolveColumns()
	return c
}

func (c *Controller[T]) Options() Options[T] { return c.opt }

// Version increases on every change to the derived view or the selection.
func (c *Controller[T]) Version() uint64 { return c.version }

func (c *Controller[T]) Mode() Mode {
	switch {
	case c.opt.InfiniteScroll:
		return ModeInfinite
	case c.opt.EnablePagination:
		return ModePaged
	default:
		return ModeAll
	}
}

func (c *Controller[T]) PageSize() int { return c.opt.PageSize }

// Len is the number of input records.
func (c *Controller[T]) Len() int { return len(c.rows) }

// Record returns the input record with identity id.
func (c *Controller[T]) Record(id int) (T, bool) {
	if !c.validID(id) {
		var zero T
		return zero, false
	}
	return c.rows[id], true
}

// SetRows replaces the input. Selections whose identity no longer exists are
// dropped, and the selection callback fires if any were.
func (c *Controller[T]) SetRows(rows []T) {
	c.rows = rows
	c.resolveColumns()
	c.invalidate()

	dropped := false
	for id := range c.selected {
		if !c.validID(id) {
			delete(c.selected, id)
			dropped = true
		}
	}
	c.clampPage()
	c.version++
	if dropped {
		c.notifySelection()
	} else {
		c.refreshSelection()
	}
}

func (c *Controller[T]) resolveColumns() {
	switch {
	case c.explicit:
		c.cols = slices.Clone(c.opt.Columns)
	case len(c.rows) > 0:
		c.cols = InferColumns(c.rows[0])
	default:
		c.cols = nil
	}
}

// Columns returns the visible columns. It is empty when there is no input.
func (c *Controller[T]) Columns() []Column {
	if len(c.rows) == 0 {
		return nil
	}
	out := make([]Column, 0, len(c.cols))
	for _, col := range c.cols {
		if !c.hidden[col.Field] {
			out = append(out, col)
		}
	}
	return out
}

// AllColumns returns every resolved column, hidden ones included.
func (c *Controller[T]) AllColumns() []Column {
	if len(c.rows) == 0 {
		return nil
	}
	return slices.Clone(c.cols)
}

func (c *Controller[T]) ColumnVisible(field string) bool {
	return c.hasColumn(field) && !c.hidden[field]
}

// SetColumnVisible shows or hides a column. Hidden columns do not take part in
// filtering.
func (c *Controller[T]) SetColumnVisible(field string, visible bool) bool {
	if !c.hasColumn(field) || c.hidden[field] == !visible {
		return false
	}
	if visible {
		delete(c.hidden, field)
	} else {
		c.hidden[field] = true
	}
	c.invalidate()
	c.clampPage()
	c.version++
	c.refreshSelection()
	return true
}

// ShowAllColumns clears every hidden flag.
func (c *Controller[T]) ShowAllColumns() bool {
	if len(c.hidden) == 0 {
		return false
	}
	clear(c.hidden)
	c.invalidate()
	c.clampPage()
	c.version++
	c.refreshSelection()
	return true
}

func (c *Controller[T]) hasColumn(field string) bool {
	for _, col := range c.cols {
		if col.Field == field {
			return true
		}
	}
	return false
}

func (c *Controller[T]) Filter() string { return c.filter }

// SetFilter sets the global filter text and resets classic pagination to the
// first page. It is a no-op when filtering is disabled.
func (c *Controller[T]) SetFilter(q string) bool {
	if !c.opt.EnableFiltering || q == c.filter {
		return false
	}
	c.filter = q
	c.page = 0
	c.invalidate()
	c.version++
	c.refreshSelection()
	return true
}

func (c *Controller[T]) Sort() SortKey { return c.sort }

// ToggleSort cycles field through unsorted, ascending, and descending.
// Activating a different column starts it at ascending and clears the
// previous one.
func (c *Controller[T]) ToggleSort(field string) bool {
	dir := Ascending
	if c.sort.Field == field {
		dir = c.sort.Dir.next()
	}
	return c.SetSort(field, dir)
}

// SetSort sets the sort explicitly and resets classic pagination to the first
// page.
func (c *Controller[T]) SetSort(field string, dir SortDir) bool {
	if dir != Unsorted && !c.hasColumn(field) {
		return false
	}
	next := SortKey{Field: field, Dir: dir}
	if dir == Unsorted {
		next = SortKey{}
	}
	if next == c.sort {
		return false
	}
	c.sort = next
	c.page = 0
	c.invalidate()
	c.version++
	return true
}

// FilteredCount is the number of records that pass the filter.
func (c *Controller[T]) FilteredCount() int { return len(c.ensureView()) }

// State reports which placeholder, if any, a renderer should show.
func (c *Controller[T]) State() EmptyState {
	switch {
	case len(c.rows) == 0:
		return StateNoData
	case c.FilteredCount() == 0:
		return StateNoResults
	default:
		return StateRows
	}
}

// Rows returns the current window: the active page, the revealed prefix, or
// every row, depending on Mode.
func (c *Controller[T]) Rows() []Row[T] {
	ids := c.windowIDs()
	out := make([]Row[T], len(ids))
	for i, id := range ids {
		_, sel := c.selected[id]
		out[i] = Row[T]{ID: id, Record: c.rows[id], Selected: sel}
	}
	return out
}

func (c *Controller[T]) windowIDs() []int {
	view := c.ensureView()
	switch c.Mode() {
	case ModePaged:
		start := c.page * c.opt.PageSize
		if start >= len(view) {
			return nil
		}
		end := min(start+c.opt.PageSize, len(view))
		return view[start:end]
	case ModeInfinite:
		return view[:c.VisibleCount()]
	default:
		return view
	}
}

func (c *Controller[T]) invalidate() { c.viewValid = false }

func (c *Controller[T]) ensureView() []int {
	if c.viewValid {
		return c.view
	}

	view := make([]int, 0, len(c.rows))
	q := strings.ToLower(c.filter)
	cols := c.Columns()
	for id, rec := range c.rows {
		if q == "" || matchesFilter(rec, cols, q) {
			view = append(view, id)
		}
	}

	if c.sort.Dir != Unsorted {
		field := c.sort.Field
		sort.SliceStable(view, func(i, j int) bool {
			a, _ := FieldValue(c.rows[view[i]], field)
			b, _ := FieldValue(c.rows[view[j]], field)
			return CompareValues(a, b) < 0
		})
		if c.sort.Dir == Descending {
			slices.Reverse(view)
		}
	}

	c.view = view
	c.viewValid = true
	return view
}

func matchesFilter(rec any, cols []Column, lowerQuery string) bool {
	for _, col := range cols {
		v, _ := FieldValue(rec, col.Field)
		s, ok := FilterText(v)
		if ok && containsFold(s, lowerQuery) {
			return true
		}
	}
	return false
}

func (c *Controller[T]) validID(id int) bool { return id >= 0 && id < len(c.rows) }
