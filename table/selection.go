package table

import (
	"slices"
	"sort"
)

// IsSelected reports whether row id is selected.
func (c *Controller[T]) IsSelected(id int) bool {
	_, ok := c.selected[id]
	return ok
}

// ToggleRow flips the selection of row id.
func (c *Controller[T]) ToggleRow(id int) bool {
	return c.SetRowSelected(id, !c.IsSelected(id))
}

// SetRowSelected sets the selection of row id. It reports whether the
// selection changed; the callback fires only on change.
func (c *Controller[T]) SetRowSelected(id int, selected bool) bool {
	if !c.opt.EnableSelection || !c.validID(id) || c.IsSelected(id) == selected {
		return false
	}
	if selected {
		c.selected[id] = struct{}{}
	} else {
		delete(c.selected, id)
	}
	c.version++
	c.notifySelection()
	return true
}

// AllVisibleSelected reports whether the current window is non-empty and
// fully selected.
func (c *Controller[T]) AllVisibleSelected() bool {
	ids := c.windowIDs()
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if !c.IsSelected(id) {
			return false
		}
	}
	return true
}

// ToggleAllVisible selects every row of the current window, or clears them if
// all are already selected. Rows outside the window are untouched.
func (c *Controller[T]) ToggleAllVisible() bool {
	if !c.opt.EnableSelection {
		return false
	}
	ids := c.windowIDs()
	if len(ids) == 0 {
		return false
	}

	if c.AllVisibleSelected() {
		for _, id := range ids {
			delete(c.selected, id)
		}
	} else {
		for _, id := range ids {
			c.selected[id] = struct{}{}
		}
	}
	c.version++
	c.notifySelection()
	return true
}

// ClearSelection deselects every row.
func (c *Controller[T]) ClearSelection() bool {
	if len(c.selected) == 0 {
		return false
	}
	clear(c.selected)
	c.version++
	c.notifySelection()
	return true
}

// SelectedIDs returns selected identities in ascending order.
func (c *Controller[T]) SelectedIDs() []int {
	out := make([]int, 0, len(c.selected))
	for id := range c.selected {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Selected returns every selected record in input order, including rows the
// current filter hides.
func (c *Controller[T]) Selected() []T {
	return c.recordsOf(c.SelectedIDs())
}

// FilteredSelectedIDs returns the selected identities that pass the current
// filter, in ascending order.
func (c *Controller[T]) FilteredSelectedIDs() []int {
	out := make([]int, 0, len(c.selected))
	for _, id := range c.ensureView() {
		if c.IsSelected(id) {
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}

// FilteredSelected returns the selected records that pass the current filter,
// in input order. This is the set reported to OnSelectionChange.
func (c *Controller[T]) FilteredSelected() []T {
	return c.recordsOf(c.FilteredSelectedIDs())
}

func (c *Controller[T]) recordsOf(ids []int) []T {
	out := make([]T, len(ids))
	for i, id := range ids {
		out[i] = c.rows[id]
	}
	return out
}

// notifySelection reports the filtered selection after the selection itself
// changed.
func (c *Controller[T]) notifySelection() {
	if !c.opt.EnableSelection {
		return
	}
	ids := c.FilteredSelectedIDs()
	c.reported = ids
	if c.opt.OnSelectionChange != nil {
		c.opt.OnSelectionChange(c.recordsOf(ids))
	}
}

// refreshSelection reports the filtered selection after the view changed,
// only when the reported identities differ from the last report.
func (c *Controller[T]) refreshSelection() {
	if !c.opt.EnableSelection || len(c.selected) == 0 && len(c.reported) == 0 {
		return
	}
	if slices.Equal(c.FilteredSelectedIDs(), c.reported) {
		return
	}
	c.notifySelection()
}
