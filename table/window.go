package table

// Page is the zero-based classic page index.
func (c *Controller[T]) Page() int { return c.page }

// PageCount is at least 1, so an empty result is one empty page.
func (c *Controller[T]) PageCount() int {
	n := c.FilteredCount()
	if n == 0 {
		return 1
	}
	return (n + c.opt.PageSize - 1) / c.opt.PageSize
}

func (c *Controller[T]) CanPrevPage() bool {
	return c.Mode() == ModePaged && c.page > 0
}

func (c *Controller[T]) CanNextPage() bool {
	return c.Mode() == ModePaged && c.page < c.PageCount()-1
}

func (c *Controller[T]) NextPage() bool {
	if !c.CanNextPage() {
		return false
	}
	c.page++
	c.version++
	return true
}

func (c *Controller[T]) PrevPage() bool {
	if !c.CanPrevPage() {
		return false
	}
	c.page--
	c.version++
	return true
}

// SetPage moves to page n clamped into [0, PageCount()-1].
func (c *Controller[T]) SetPage(n int) bool {
	if c.Mode() != ModePaged {
		return false
	}
	n = max(0, min(n, c.PageCount()-1))
	if n == c.page {
		return false
	}
	c.page = n
	c.version++
	return true
}

func (c *Controller[T]) clampPage() {
	if last := c.PageCount() - 1; c.page > last {
		c.page = last
	}
}

// VisibleCount is the number of rows in the current window. In ModeInfinite
// it is the revealed prefix length, never more than FilteredCount.
func (c *Controller[T]) VisibleCount() int {
	n := c.FilteredCount()
	switch c.Mode() {
	case ModeInfinite:
		return min(c.grown, n)
	case ModePaged:
		start := c.page * c.opt.PageSize
		if start >= n {
			return 0
		}
		return min(c.opt.PageSize, n-start)
	default:
		return n
	}
}

// HasMore reports whether Grow can reveal more rows.
func (c *Controller[T]) HasMore() bool {
	return c.Mode() == ModeInfinite && c.VisibleCount() < c.FilteredCount()
}

// Grow reveals one more PageSize step of rows, clamped to FilteredCount. The
// revealed count never shrinks.
func (c *Controller[T]) Grow() bool {
	if c.Mode() != ModeInfinite {
		return false
	}
	next := min(c.grown+c.opt.PageSize, c.FilteredCount())
	if next <= c.grown {
		return false
	}
	c.grown = next
	c.version++
	return true
}
