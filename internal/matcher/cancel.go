package matcher

import "github.com/arcline/femtobook/internal/core"

// handleCancel removes orderID from the book and frees its arena slot. An
// unknown or already-terminal ID is a silent no-op: cancels that race
// against a fill are expected, not erroneous.
func (m *Matcher) handleCancel(orderID uint64) {
	order := m.directory.get(orderID)
	if order == nil {
		return
	}

	m.book.Remove(order)
	m.publishLevelUpdate(order.Side, order.Price, m.book.Level(order.Price, order.Side))
	order.Status = core.Cancelled
	m.directory.clear(orderID)
	m.arena.Release(order)
}
