// Package arena implements the preallocated Order pool: O(1) acquire and release with no dynamic allocation on
// the matching hot path.
package arena

import "github.com/arcline/femtobook/internal/core"

// OrderArena is a fixed-capacity pool of core.Order records. At
// construction every slot is threaded into a singly-linked free list via
// the order's internal free-list link. Single-threaded access only: the
// arena is never exposed across a goroutine boundary.
type OrderArena struct {
	pool      []core.Order
	freeHead  *core.Order
	allocated uint64
}

// New allocates a pool of the given capacity and links every slot into
// the free list.
func New(capacity uint64) *OrderArena {
	a := &OrderArena{pool: make([]core.Order, capacity)}
	for i := range a.pool {
		if i+1 < len(a.pool) {
			a.pool[i].Next = &a.pool[i+1]
		}
	}
	if len(a.pool) > 0 {
		a.freeHead = &a.pool[0]
	}
	return a
}

// Acquire pops the free-list head and returns it zeroed, or nil if the
// pool is exhausted. O(1).
func (a *OrderArena) Acquire() *core.Order {
	if a.freeHead == nil {
		return nil
	}
	o := a.freeHead
	a.freeHead = o.Next
	*o = core.Order{}
	a.allocated++
	return o
}

// Release pushes order back onto the free list. Safe to call with nil
// (no-op).
func (a *OrderArena) Release(order *core.Order) {
	if order == nil {
		return
	}
	order.Prev = nil
	order.Next = a.freeHead
	a.freeHead = order
	a.allocated--
}

// AllocatedCount returns the number of orders currently checked out of
// the pool.
func (a *OrderArena) AllocatedCount() uint64 { return a.allocated }

// AvailableCount returns the number of orders still free.
func (a *OrderArena) AvailableCount() uint64 { return uint64(len(a.pool)) - a.allocated }

// Capacity returns the pool's fixed size.
func (a *OrderArena) Capacity() uint64 { return uint64(len(a.pool)) }
