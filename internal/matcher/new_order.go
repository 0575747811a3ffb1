package matcher

import "github.com/arcline/femtobook/internal/core"

// handleNew validates and admits a NEW command, then routes it to the
// order-type-specific handler.
func (m *Matcher) handleNew(cmd core.Command, start int64) {
	if !m.book.InBounds(cmd.Price) {
		m.stats.OrdersRejected++
		m.stats.RejectedInvalidInput++
		m.logger.Warn("rejecting NEW: price out of bounds",
			zapOrderID(cmd.OrderID), zapReason(core.InvalidPrice))
		return
	}
	if cmd.Quantity == 0 {
		m.stats.OrdersRejected++
		m.stats.RejectedInvalidInput++
		m.logger.Warn("rejecting NEW: zero quantity",
			zapOrderID(cmd.OrderID), zapReason(core.InvalidQuantity))
		return
	}

	order := m.arena.Acquire()
	if order == nil {
		m.stats.OrdersRejected++
		m.stats.RejectedPoolExhausted++
		m.logger.Warn("rejecting NEW: order pool exhausted",
			zapOrderID(cmd.OrderID), zapReason(core.PoolExhausted))
		return
	}

	order.ID = cmd.OrderID
	order.Side = cmd.Side
	order.Type = cmd.OrderType
	order.Price = cmd.Price
	order.Remaining = cmd.Quantity
	order.OriginalQuantity = cmd.Quantity
	order.Status = core.Pending
	order.Timestamp = cmd.ProducerTimestamp

	m.directory.set(order.ID, order)

	switch order.Type {
	case core.FOK:
		m.handleFOK(order, start)
	case core.IOC:
		m.handleIOC(order, start)
	default:
		m.handleLimit(order, start)
	}
}

func (m *Matcher) handleLimit(order *core.Order, start int64) {
	filled := m.cross(order, start)
	if order.Remaining == 0 {
		order.Status = core.Filled
		m.directory.clear(order.ID)
		m.arena.Release(order)
		return
	}
	if filled > 0 {
		order.Status = core.PartialFill
	} else {
		order.Status = core.Pending
	}
	m.book.Add(order)
	m.publishLevelUpdate(order.Side, order.Price, m.book.Level(order.Price, order.Side))
}

func (m *Matcher) handleIOC(order *core.Order, start int64) {
	m.cross(order, start)
	if order.Remaining == 0 {
		order.Status = core.Filled
	} else {
		order.Status = core.Cancelled
	}
	m.directory.clear(order.ID)
	m.arena.Release(order)
}

// handleFOK implements the fill-or-kill pre-check and atomic cross: the
// fillable-quantity check and the cross happen under the same
// single-threaded sequential history, so no intervening command can
// invalidate the pre-check between the two steps.
func (m *Matcher) handleFOK(order *core.Order, start int64) {
	if m.fillable(order) < order.Remaining {
		order.Status = core.Rejected
		m.stats.OrdersRejected++
		m.stats.RejectedFOKLiquidity++
		m.logger.Warn("rejecting FOK: insufficient liquidity",
			zapOrderID(order.ID), zapReason(core.FOKInsufficientLiquidity))
		m.directory.clear(order.ID)
		m.arena.Release(order)
		return
	}

	m.cross(order, start)
	// The pre-check guarantees a full fill; order.Remaining must be 0 here.
	order.Status = core.Filled
	m.directory.clear(order.ID)
	m.arena.Release(order)
}
