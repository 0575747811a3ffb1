package matcher

import "github.com/arcline/femtobook/internal/core"

// directory resolves an order id to its live *core.Order in O(1) for
// CANCEL and match-side removals.
//
// ids below capacity use the dense slice for O(1) access; ids at or
// above capacity — a producer submitting a deliberately out-of-range id
// as a fire-and-forget escape hatch — overflow into a map instead of
// being rejected outright, so they remain both matchable and
// cancellable. A non-nil entry always references an order linked into
// the book under that same id, across both halves.
type directory struct {
	dense    []*core.Order
	overflow map[uint64]*core.Order
}

func newDirectory(capacity uint64) *directory {
	return &directory{dense: make([]*core.Order, capacity)}
}

func (d *directory) set(id uint64, o *core.Order) {
	if id < uint64(len(d.dense)) {
		d.dense[id] = o
		return
	}
	if o == nil {
		delete(d.overflow, id)
		return
	}
	if d.overflow == nil {
		d.overflow = make(map[uint64]*core.Order)
	}
	d.overflow[id] = o
}

func (d *directory) get(id uint64) *core.Order {
	if id < uint64(len(d.dense)) {
		return d.dense[id]
	}
	return d.overflow[id]
}

func (d *directory) clear(id uint64) { d.set(id, nil) }
