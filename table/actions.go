package table

// Actions returns the configured row actions, or nil when row actions are
// disabled.
func (c *Controller[T]) Actions() []RowAction[T] {
	if !c.opt.EnableRowActions {
		return nil
	}
	return c.opt.RowActions
}

// InvokeAction calls action index with the full record of row id. The
// controller performs no side effect beyond the dispatch.
func (c *Controller[T]) InvokeAction(id, index int) bool {
	actions := c.Actions()
	if index < 0 || index >= len(actions) || !c.validID(id) {
		return false
	}
	h := actions[index].Handler
	if h == nil {
		return false
	}
	h(c.rows[id])
	return true
}
