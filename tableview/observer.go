package tableview

// intersectionObserver watches the infinite-scroll sentinel line.
//
// It fires on the rising edge of visibility. After a growth the layout moves
// the sentinel, so the host re-arms the observer.
type intersectionObserver struct {
	connected    bool
	intersecting bool
}

func newIntersectionObserver() *intersectionObserver {
	return &intersectionObserver{connected: true}
}

// observe records the sentinel visibility and reports whether it just became
// visible. A disconnected observer never fires.
func (o *intersectionObserver) observe(visible bool) bool {
	if o == nil || !o.connected {
		return false
	}
	fired := visible && !o.intersecting
	o.intersecting = visible
	return fired
}

func (o *intersectionObserver) rearm() {
	if o != nil {
		o.intersecting = false
	}
}

func (o *intersectionObserver) disconnect() {
	if o != nil {
		o.connected = false
		o.intersecting = false
	}
}

func (o *intersectionObserver) active() bool { return o != nil && o.connected }
